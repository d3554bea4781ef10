package watcher

import (
	"sync"

	werrors "github.com/conneroisu/watchfiles-go/internal/errors"
	"github.com/conneroisu/watchfiles-go/internal/logging"
)

// Session owns the lifetime of one backend, its event channel, and the
// debouncer reading from it. It is the unit a consumer opens, repeatedly
// calls Watch against, and eventually closes; closing is idempotent and
// makes every subsequent Watch return a WatchError{Kind: WatcherClosed}.
type Session struct {
	cfg       Config
	logger    logging.Logger
	channel   *eventChannel
	backend   Backend
	debouncer *Debouncer

	stopBackend chan struct{}
	backendDone chan struct{}

	mu     sync.Mutex
	closed bool
}

// Open validates cfg, selects a backend, and starts its producer
// goroutine. A nil logger defaults to logging.Discard.
func Open(cfg Config, filter FilterFunc, logger logging.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.Discard
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	channel := newEventChannel(0)
	backend, err := selectBackend(cfg, channel, logger)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:         cfg,
		logger:      logger,
		channel:     channel,
		backend:     backend,
		debouncer:   NewDebouncer(channel, filter),
		stopBackend: make(chan struct{}),
		backendDone: make(chan struct{}),
	}

	go s.runBackend()

	return s, nil
}

func (s *Session) runBackend() {
	defer close(s.backendDone)
	if err := s.backend.Run(s.stopBackend); err != nil {
		s.channel.Fail(werrors.NewBackendFailed(err))
	}
}

// Watch runs one debounce cycle. It returns a WatchError{Kind:
// WatcherClosed} if the session has already been closed, and translates a
// BackendFailedOutcome into a WatchError{Kind: BackendFailed}.
func (s *Session) Watch(debounceMs, stepMs, timeoutMs int, stop StopEvent) (Outcome, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, werrors.NewWatcherClosed()
	}

	outcome := s.debouncer.Watch(debounceMs, stepMs, timeoutMs, stop)
	if failed, ok := outcome.(BackendFailedOutcome); ok {
		return nil, werrors.NewBackendFailed(failed.Err)
	}
	return outcome, nil
}

// Close stops the backend and releases its resources. Idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.stopBackend)
	<-s.backendDone
	s.channel.Close()
	return s.backend.Close()
}

// Dropped returns the number of raw events dropped so far due to event
// channel overflow; exposed for diagnostics and tests.
func (s *Session) Dropped() int64 {
	return s.channel.Dropped()
}
