package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/fsnotify/fsnotify"

	werrors "github.com/conneroisu/watchfiles-go/internal/errors"
	"github.com/conneroisu/watchfiles-go/internal/logging"
)

// supportedNativePlatforms lists the GOOS values fsnotify backs with a
// real kernel-notification implementation; everything else is treated as
// "unsupported platform" per spec §4.1's fallback rule.
var supportedNativePlatforms = map[string]bool{
	"linux": true, "darwin": true, "windows": true,
	"freebsd": true, "openbsd": true, "netbsd": true, "dragonfly": true, "solaris": true,
}

func isUnsupportedPlatform(err error) bool {
	return !supportedNativePlatforms[runtime.GOOS]
}

// nativeBackend subscribes to OS filesystem notifications for each
// configured root via fsnotify and publishes RawEvents to the event
// channel. fsnotify has no native recursive mode, so recursive roots
// register one watch per directory, same as the teacher's
// FileWatcher.AddRecursive.
type nativeBackend struct {
	cfg    Config
	out    *eventChannel
	logger logging.Logger

	watcher *fsnotify.Watcher
	roots   map[string]bool // set of configured roots

	mu     sync.Mutex
	closed bool
}

func newNativeBackend(cfg Config, out *eventChannel, logger logging.Logger) (*nativeBackend, error) {
	if isUnsupportedPlatform(nil) {
		return nil, werrors.NewBackendFailed(nil)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	nb := &nativeBackend{
		cfg:     cfg,
		out:     out,
		logger:  logger,
		watcher: w,
		roots:   make(map[string]bool, len(cfg.Roots)),
	}

	for _, root := range cfg.Roots {
		nb.roots[root] = true
		if err := nb.register(root, cfg.Recursive); err != nil {
			w.Close()
			return nil, err
		}
	}

	return nb, nil
}

// register adds root (and, if recursive, every subdirectory) to the
// underlying fsnotify watcher.
func (nb *nativeBackend) register(root string, recursive bool) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsPermission(err) {
			if nb.cfg.IgnorePermissionDenied {
				return nil
			}
			return werrors.NewPermissionDenied(root, err)
		}
		return werrors.NewPathNotFound(root, err)
	}

	if !info.IsDir() {
		return nb.watcher.Add(root)
	}

	if !recursive {
		return nb.watcher.Add(root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) && nb.cfg.IgnorePermissionDenied {
				return nil
			}
			if os.IsPermission(err) {
				return werrors.NewPermissionDenied(path, err)
			}
			return err
		}
		if d.IsDir() {
			return nb.watcher.Add(path)
		}
		return nil
	})
}

// Run translates fsnotify events into RawEvents until stop fires or the
// underlying watcher's channel closes.
func (nb *nativeBackend) Run(stop <-chan struct{}) error {
	for {
		select {
		case <-stop:
			return nil
		case ev, ok := <-nb.watcher.Events:
			if !ok {
				return nil
			}
			nb.handle(ev)
		case err, ok := <-nb.watcher.Errors:
			if !ok {
				return nil
			}
			nb.logger.Warn(context.Background(), err, "native backend error")
		}
	}
}

func (nb *nativeBackend) handle(ev fsnotify.Event) {
	if !nb.cfg.Recursive && !nb.isDirectChild(ev.Name) {
		return
	}

	kind, ok := mapOp(ev.Op)
	if !ok {
		return
	}

	// A rename-within-scope destination arrives as fsnotify.Create for the
	// new name on most platforms (the source side was already reported as
	// Rename/Remove), matching spec §4.2's "Deleted on source, Added on
	// destination" rule without extra bookkeeping here.
	if ev.Op&fsnotify.Rename == fsnotify.Rename {
		kind = Deleted
	}

	raw := RawEvent{Kind: kind, Path: normalizePath(ev.Name)}

	if nb.cfg.Debug {
		nb.logger.Debug(context.Background(), "raw event", "kind", kind.String(), "path", raw.Path)
	}

	nb.out.Push(raw)

	if nb.cfg.Recursive && kind == Added {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			_ = nb.register(ev.Name, true)
		}
	}
}

func (nb *nativeBackend) isDirectChild(path string) bool {
	dir := filepath.Dir(path)
	return nb.roots[dir]
}

func mapOp(op fsnotify.Op) (ChangeKind, bool) {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return Added, true
	case op&fsnotify.Remove == fsnotify.Remove:
		return Deleted, true
	case op&fsnotify.Rename == fsnotify.Rename:
		return Deleted, true
	case op&fsnotify.Write == fsnotify.Write:
		return Modified, true
	case op&fsnotify.Chmod == fsnotify.Chmod:
		return Modified, true
	default:
		return 0, false
	}
}

// Close releases the underlying fsnotify watcher. Idempotent.
func (nb *nativeBackend) Close() error {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	if nb.closed {
		return nil
	}
	nb.closed = true
	return nb.watcher.Close()
}
