package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/conneroisu/watchfiles-go/internal/logging"
)

// pollingBackend detects changes by periodically walking each root and
// diffing modification times against the previous snapshot, the same
// strategy as mutagen's poll() loop: no OS notification API is used, so
// this backend works anywhere os.Stat and filepath.WalkDir work, at the
// cost of only seeing changes at PollDelayMs granularity and missing
// anything whose mtime doesn't change (e.g. a write that preserves mtime
// within the same tick).
type pollingBackend struct {
	cfg    Config
	out    *eventChannel
	logger logging.Logger
}

func newPollingBackend(cfg Config, out *eventChannel, logger logging.Logger) *pollingBackend {
	return &pollingBackend{cfg: cfg, out: out, logger: logger}
}

// snapshot maps an absolute path to its last-modified time.
type snapshot map[string]time.Time

func (pb *pollingBackend) scan() snapshot {
	snap := make(snapshot)
	for _, root := range pb.cfg.Roots {
		pb.scanRoot(root, snap)
	}
	return snap
}

func (pb *pollingBackend) scanRoot(root string, snap snapshot) {
	info, err := os.Stat(root)
	if err != nil {
		return
	}
	if !info.IsDir() {
		snap[root] = info.ModTime()
		return
	}

	if !pb.cfg.Recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return
		}
		snap[root] = info.ModTime()
		for _, entry := range entries {
			entryInfo, err := entry.Info()
			if err != nil {
				continue
			}
			snap[filepath.Join(root, entry.Name())] = entryInfo.ModTime()
		}
		return
	}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) && pb.cfg.IgnorePermissionDenied {
				return nil
			}
			return nil
		}
		entryInfo, err := d.Info()
		if err != nil {
			return nil
		}
		snap[path] = entryInfo.ModTime()
		return nil
	})
}

// diff compares two snapshots and pushes RawEvents for every addition,
// removal, and mtime change it finds.
func (pb *pollingBackend) diff(prev, cur snapshot) {
	for path, mtime := range cur {
		prevMtime, existed := prev[path]
		if !existed {
			pb.emit(Added, path)
			continue
		}
		if !mtime.Equal(prevMtime) {
			pb.emit(Modified, path)
		}
	}
	for path := range prev {
		if _, stillExists := cur[path]; !stillExists {
			pb.emit(Deleted, path)
		}
	}
}

func (pb *pollingBackend) emit(kind ChangeKind, path string) {
	raw := RawEvent{Kind: kind, Path: normalizePath(path)}
	if pb.cfg.Debug {
		pb.logger.Debug(context.Background(), "raw event", "kind", kind.String(), "path", raw.Path)
	}
	pb.out.Push(raw)
}

// Run polls every PollDelayMs until stop fires.
func (pb *pollingBackend) Run(stop <-chan struct{}) error {
	delay := time.Duration(pb.cfg.PollDelayMs) * time.Millisecond
	if delay <= 0 {
		delay = DefaultPollDelayMs * time.Millisecond
	}

	prev := pb.scan()
	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return nil
		case <-ticker.C:
			cur := pb.scan()
			pb.diff(prev, cur)
			prev = cur
		}
	}
}

// Close is a no-op: the polling backend holds no OS handles between ticks.
func (pb *pollingBackend) Close() error {
	return nil
}
