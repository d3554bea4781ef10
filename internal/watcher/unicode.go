package watcher

import "golang.org/x/text/unicode/norm"

// normalizePath applies Unicode NFC normalization to a path component
// reported by the OS. macOS's HFS+/APFS layer reports decomposed (NFD)
// filenames for anything containing accented characters; without
// recomposition, the same logical path can appear under two different
// byte sequences depending on which syscall produced it, breaking the
// debouncer's path-equality assumptions. Grounded in mutagen's
// decomposes-to-precomposed handling for POSIX filesystems.
func normalizePath(path string) string {
	if norm.NFC.IsNormalString(path) {
		return path
	}
	return norm.NFC.String(path)
}
