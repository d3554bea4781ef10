//go:build linux

package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/watchfiles-go/internal/logging"
)

// These exercise the real fsnotify-backed path (handle/mapOp) against the
// kernel's inotify implementation, since the rest of the test suite forces
// polling. Linux-only: inotify's Modify/Rename reporting is the one the
// spec's Modify and Rename scenarios describe; other platforms' native
// backends have their own quirks (spec §8, Windows bulk-move note) that
// this test does not attempt to cover.
func newNativeTestBackend(t *testing.T, root string) (*nativeBackend, *eventChannel) {
	t.Helper()
	ch := newEventChannel(64)
	cfg := Config{Roots: []string{root}, Recursive: true}
	nb, err := newNativeBackend(cfg, ch, logging.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = nb.Close() })

	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	go func() { _ = nb.Run(stop) }()

	return nb, ch
}

func popUntil(t *testing.T, ch *eventChannel, want ChangeRecord, within time.Duration) {
	t.Helper()
	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		ev, ok := ch.Pop(deadline)
		if !ok {
			continue
		}
		if ev.Kind == want.Kind && ev.Path == want.Path {
			return
		}
	}
	t.Fatalf("did not observe %+v within %v", want, within)
}

func TestNativeBackendReportsAdd(t *testing.T) {
	dir := t.TempDir()
	_, ch := newNativeTestBackend(t, dir)

	target := filepath.Join(dir, "added.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	popUntil(t, ch, ChangeRecord{Kind: Added, Path: target}, 2*time.Second)
}

func TestNativeBackendReportsModify(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "modified.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	_, ch := newNativeTestBackend(t, dir)

	require.NoError(t, os.WriteFile(target, []byte("xy"), 0o644))

	popUntil(t, ch, ChangeRecord{Kind: Modified, Path: target}, 2*time.Second)
}

func TestNativeBackendReportsRenameAsDelete(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old.txt")
	dst := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	_, ch := newNativeTestBackend(t, dir)

	require.NoError(t, os.Rename(src, dst))

	popUntil(t, ch, ChangeRecord{Kind: Deleted, Path: src}, 2*time.Second)
}

func TestNativeBackendAutoRegistersNewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	_, ch := newNativeTestBackend(t, dir)

	sub := filepath.Join(dir, "subdir")
	require.NoError(t, os.Mkdir(sub, 0o755))
	popUntil(t, ch, ChangeRecord{Kind: Added, Path: sub}, 2*time.Second)

	// give the auto-registration goroutine time to add the watch before
	// creating a file inside the new subdirectory.
	time.Sleep(100 * time.Millisecond)

	nested := filepath.Join(sub, "nested.txt")
	require.NoError(t, os.WriteFile(nested, []byte("x"), 0o644))
	popUntil(t, ch, ChangeRecord{Kind: Added, Path: nested}, 2*time.Second)
}

func TestMapOpUnknownOpIsIgnored(t *testing.T) {
	kind, ok := mapOp(0)
	assert.False(t, ok)
	assert.Equal(t, ChangeKind(0), kind)
}
