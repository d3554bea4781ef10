// Package errors implements the fatal-error taxonomy described by the
// change-detection engine's error handling design: construction-time
// failures are eager, per-call failures surface from the next watch call,
// and Timeout/Stop are normal outcomes rather than errors.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Kind identifies a category of WatchError.
type Kind string

const (
	// KindPathNotFound: a configured root does not exist at session
	// construction time.
	KindPathNotFound Kind = "path_not_found"
	// KindPermissionDenied: enumeration of a root or subtree was denied.
	KindPermissionDenied Kind = "permission_denied"
	// KindWatcherClosed: watch was called on a closed session.
	KindWatcherClosed Kind = "watcher_closed"
	// KindStopEventMalformed: the supplied stop capability has no usable
	// IsSet method. Kept for taxonomy completeness; StopEvent is a Go
	// interface, so callers can't hand in a malformed implementation
	// the way a dynamically-typed caller could, and nothing in this
	// module constructs this kind today.
	KindStopEventMalformed Kind = "stop_event_malformed"
	// KindBackendFailed: the backend thread terminated unexpectedly.
	KindBackendFailed Kind = "backend_failed"
	// KindInterrupted: a user-visible interrupt was delivered while the
	// facade was configured to raise it.
	KindInterrupted Kind = "interrupted"
)

// WatchError is a structured error carrying the context needed to decide
// whether a failure is recoverable and where it occurred.
type WatchError struct {
	Kind        Kind
	Message     string
	Path        string
	Cause       error
	Recoverable bool
}

// Error implements the error interface.
func (e *WatchError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *WatchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *WatchError with the same Kind, so callers
// can write errors.Is(err, &WatchError{Kind: KindWatcherClosed}).
func (e *WatchError) Is(target error) bool {
	var t *WatchError
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func newError(kind Kind, message, path string, cause error, recoverable bool) *WatchError {
	return &WatchError{Kind: kind, Message: message, Path: path, Cause: cause, Recoverable: recoverable}
}

// NewPathNotFound builds the fatal error raised when a watch root does not
// exist at session construction time.
func NewPathNotFound(path string, cause error) *WatchError {
	return newError(KindPathNotFound, "path does not exist", path, cause, false)
}

// NewPermissionDenied builds the fatal error raised when enumeration of a
// root or subtree is denied and ignore_permission_denied is not set.
func NewPermissionDenied(path string, cause error) *WatchError {
	return newError(KindPermissionDenied, "permission denied", path, cause, false)
}

// NewWatcherClosed builds the error returned when watch is called on a
// closed session.
func NewWatcherClosed() *WatchError {
	return newError(KindWatcherClosed, "session is closed", "", nil, false)
}

// NewStopEventMalformed builds the error returned when the supplied stop
// capability cannot be used.
func NewStopEventMalformed(cause error) *WatchError {
	return newError(KindStopEventMalformed, "stop event is malformed", "", cause, false)
}

// NewBackendFailed builds the fatal error surfaced on the next watch call
// after the backend's producer goroutine has terminated unexpectedly.
func NewBackendFailed(cause error) *WatchError {
	return newError(KindBackendFailed, "backend terminated unexpectedly", "", cause, false)
}

// NewInterrupted builds the error raised to the consumer when a facade
// configured with raise_interrupt observes a signal.
func NewInterrupted() *WatchError {
	return newError(KindInterrupted, "interrupted", "", nil, true)
}

// IsRecoverable reports whether err is a *WatchError marked recoverable.
func IsRecoverable(err error) bool {
	var we *WatchError
	if errors.As(err, &we) {
		return we.Recoverable
	}
	return false
}

// IsKind reports whether err is a *WatchError of the given kind.
func IsKind(err error, kind Kind) bool {
	var we *WatchError
	if errors.As(err, &we) {
		return we.Kind == kind
	}
	return false
}

// Logger is the minimal logging capability ErrorHandler depends on; it is
// satisfied by logging.Logger without importing that package here, avoiding
// a dependency cycle between errors and logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// Notifier receives fatal errors for out-of-band reporting (e.g. to a
// diagnostic sink). The core ships no implementation; callers wire their
// own.
type Notifier interface {
	NotifyError(ctx context.Context, err *WatchError) error
}

// Handler centralizes error logging and optional notification for the CLI
// front-end and subprocess runner, which see fatal errors coming back out
// of the core's exposed contracts.
type Handler struct {
	logger   Logger
	notifier Notifier
}

// NewHandler constructs a Handler. Either argument may be nil.
func NewHandler(logger Logger, notifier Notifier) *Handler {
	return &Handler{logger: logger, notifier: notifier}
}

// Handle logs err (if non-nil) and, for fatal WatchErrors, notifies the
// configured Notifier.
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var we *WatchError
	if errors.As(err, &we) {
		if h.logger != nil {
			h.logger.Error(ctx, we, "fatal watch error", "kind", we.Kind, "path", we.Path)
		}
		if h.notifier != nil && !we.Recoverable {
			_ = h.notifier.NotifyError(ctx, we)
		}
		return
	}

	if h.logger != nil {
		h.logger.Error(ctx, err, "unclassified error")
	}
}
