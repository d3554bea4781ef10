// Package internal contains the implementation packages behind
// watchfiles-go.
//
// # Package Organization
//
//   - watcher: the change-detection and debouncing engine — backend
//     selection, native and polling backends, the event channel, the
//     debouncer, normalization/filtering, and the synchronous and
//     cooperative-asynchronous iterator facades.
//   - config: loads a watcher.Config from CLI flags and WATCHFILES_*
//     environment variables via viper.
//   - filters: ignore-dir and ignore-pattern predicates usable as the
//     consumer-supplied filter passed to watcher.Open.
//   - runner: subprocess lifecycle for reload-on-change consumers.
//   - errors: the fatal-error taxonomy shared by every exposed contract.
//   - logging: structured, component-tagged logging built on log/slog.
package internal
