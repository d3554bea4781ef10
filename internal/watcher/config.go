package watcher

import (
	"os"
	"path/filepath"

	werrors "github.com/conneroisu/watchfiles-go/internal/errors"
)

// Config is the immutable configuration created once per watch session.
type Config struct {
	// Roots is the non-empty ordered sequence of absolute paths to watch.
	// Each must exist at construction time.
	Roots []string
	// Recursive controls whether subdirectories of each root are observed.
	// When false, only direct children of each root are observed.
	Recursive bool
	// ForcePolling selects the polling backend unconditionally.
	ForcePolling bool
	// PollDelayMs is the polling backend's sample interval, in
	// milliseconds. Must be >= 1.
	PollDelayMs int
	// IgnorePermissionDenied silently skips permission-denied conditions
	// during enumeration instead of failing.
	IgnorePermissionDenied bool
	// Debug traces every raw event to a diagnostic sink before filtering.
	Debug bool
}

// DefaultPollDelayMs is used when a Config does not set PollDelayMs.
const DefaultPollDelayMs = 300

// Validate normalizes and checks the configuration, returning
// errors.WatchError{Kind: PathNotFound} for any root that does not exist.
// Roots are resolved to absolute paths as a side effect.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return werrors.NewPathNotFound("", nil)
	}
	if c.PollDelayMs <= 0 {
		c.PollDelayMs = DefaultPollDelayMs
	}

	resolved := make([]string, len(c.Roots))
	for i, root := range c.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return werrors.NewPathNotFound(root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			if os.IsPermission(err) {
				if c.IgnorePermissionDenied {
					resolved[i] = abs
					continue
				}
				return werrors.NewPermissionDenied(abs, err)
			}
			return werrors.NewPathNotFound(abs, err)
		}
		_ = info
		resolved[i] = abs
	}
	c.Roots = resolved
	return nil
}
