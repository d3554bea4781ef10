package watcher

import (
	"os"
	"runtime"
	"strings"

	"github.com/conneroisu/watchfiles-go/internal/logging"
)

// ForcePollingEnvVar is the environment variable read by the backend
// selector's auto_force_polling hook (spec §4.1, §6).
const ForcePollingEnvVar = "WATCHFILES_FORCE_POLLING"

// Backend is the tagged-variant capability set {construct, watch, close}
// that the native and polling backends both implement. A Backend owns no
// consumer-facing state beyond pushing RawEvents into the eventChannel it
// was constructed with; Run blocks until stop fires or a fatal error
// occurs.
type Backend interface {
	// Run subscribes/polls until stop is closed, pushing RawEvents into
	// the channel supplied at construction. A non-nil return is a fatal
	// backend failure.
	Run(stop <-chan struct{}) error
	// Close releases any OS handles held by the backend. Idempotent.
	Close() error
}

// selectBackend implements the three-step selection rule of spec §4.1:
// force_polling wins, then the WSL auto-polling heuristic (subject to the
// environment override), then a native backend with fallback to polling
// if native construction reports an unsupported platform.
func selectBackend(cfg Config, out *eventChannel, logger logging.Logger) (Backend, error) {
	if cfg.ForcePolling {
		return newPollingBackend(cfg, out, logger), nil
	}
	if autoForcePolling() {
		return newPollingBackend(cfg, out, logger), nil
	}

	backend, err := newNativeBackend(cfg, out, logger)
	if err != nil {
		if isUnsupportedPlatform(err) {
			return newPollingBackend(cfg, out, logger), nil
		}
		return nil, err
	}
	return backend, nil
}

// pollingOverride is the three-way reading of ForcePollingEnvVar: nil means
// no override, true forces polling on, false forces it off regardless of
// the WSL heuristic.
func pollingOverride() *bool {
	raw, ok := os.LookupEnv(ForcePollingEnvVar)
	if !ok || raw == "" {
		return nil
	}
	lower := strings.ToLower(raw)
	switch lower {
	case "false", "disable", "disabled":
		v := false
		return &v
	default:
		v := true
		return &v
	}
}

// autoForcePolling reports whether polling should be auto-selected because
// the process appears to be running under WSL, unless the environment
// variable explicitly overrides that decision.
func autoForcePolling() bool {
	if override := pollingOverride(); override != nil {
		return *override
	}
	return isWSL()
}

// isWSL detects the Windows Subsystem for Linux signature in the kernel
// release string, matching spec §4.1's "microsoft-standard" substring rule.
func isWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	release, err := kernelRelease()
	if err != nil {
		return false
	}
	return strings.Contains(release, "microsoft-standard")
}
