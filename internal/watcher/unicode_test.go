package watcher

import (
	"testing"
	"unicode/utf8"
)

// decomposedE is "e" (U+0065) followed by a combining acute accent
// (U+0301) -- the NFD form HFS+/APFS report on disk. composedE is the
// single precomposed code point U+00E9 -- the NFC form. Built from
// explicit rune values, not typed literals, so the two are guaranteed
// byte-distinct regardless of how this source file itself is encoded.
var (
	decomposedE = string(rune(0x65)) + string(rune(0x301))
	composedE   = string(rune(0xe9))
)

func TestNormalizePathComposesDecomposedAccents(t *testing.T) {
	decomposed := "caf" + decomposedE
	composed := "caf" + composedE

	if decomposed == composed {
		t.Fatal("test fixture is broken: decomposed and composed forms must differ byte-for-byte")
	}
	if len(decomposed) <= len(composed) {
		t.Fatal("test fixture is broken: NFD form must be longer in bytes than NFC form")
	}

	got := normalizePath(decomposed)
	if got != composed {
		t.Fatalf("normalizePath(%q) = %q, want %q", decomposed, got, composed)
	}
	if !utf8.ValidString(got) {
		t.Fatal("normalizePath produced invalid UTF-8")
	}
}

func TestNormalizePathLeavesAlreadyComposedUnchanged(t *testing.T) {
	composed := "caf" + composedE + ".txt"
	if got := normalizePath(composed); got != composed {
		t.Fatalf("normalizePath(%q) = %q, want unchanged", composed, got)
	}
}

func TestNormalizePathLeavesASCIIUnchanged(t *testing.T) {
	if got := normalizePath("/a/b/c.go"); got != "/a/b/c.go" {
		t.Fatalf("normalizePath changed an ASCII path: %q", got)
	}
}
