// Package config loads a watcher.Config and debounce parameters from
// CLI flags and WATCHFILES_* environment variables via viper. Each value
// is read behind a viper.IsSet guard, so an unset key falls back to a
// programmatic default instead of viper's zero value.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/conneroisu/watchfiles-go/internal/watcher"
)

// Defaults mirror the original watchfiles library's watch()/awatch()
// defaults.
const (
	DefaultDebounceMs = 1600
	DefaultStepMs     = 50
)

// WatchParams carries the debounce-loop parameters, kept separate from
// watcher.Config because they govern Debouncer.Watch rather than session
// construction.
type WatchParams struct {
	DebounceMs int
	StepMs     int
	TimeoutMs  int
}

// Load builds a watcher.Config and WatchParams from whatever flags have
// already been bound into viper (see cmd.init) plus WATCHFILES_*
// environment variables. roots comes from positional CLI arguments, not
// from viper, since watch paths are never meant to live in a config file.
func Load(roots []string) (watcher.Config, WatchParams, error) {
	cfg := watcher.Config{
		Roots:                  roots,
		Recursive:              viperBoolDefault("recursive", true),
		ForcePolling:           viperBoolDefault("force-polling", false),
		PollDelayMs:            viperIntDefault("poll-delay-ms", watcher.DefaultPollDelayMs),
		IgnorePermissionDenied: viperBoolDefault("ignore-permission-denied", envTruthy("WATCHFILES_IGNORE_PERMISSION_DENIED")),
		Debug:                  viperBoolDefault("debug", false),
	}

	params := WatchParams{
		DebounceMs: viperIntDefault("debounce", DefaultDebounceMs),
		StepMs:     viperIntDefault("step", DefaultStepMs),
		TimeoutMs:  viperIntDefault("timeout", 0),
	}

	if err := cfg.Validate(); err != nil {
		return watcher.Config{}, WatchParams{}, err
	}

	return cfg, params, nil
}

func viperBoolDefault(key string, def bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return def
}

func viperIntDefault(key string, def int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return def
}

// envTruthy implements the three-way truthiness rule shared by
// WATCHFILES_FORCE_POLLING and WATCHFILES_IGNORE_PERMISSION_DENIED:
// unset/empty is false, the words "false"/"disable"/"disabled" are false
// (case-insensitive), and any other non-empty value is true.
func envTruthy(name string) bool {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false
	}
	switch strings.ToLower(raw) {
	case "false", "disable", "disabled":
		return false
	default:
		return true
	}
}
