package watcher

import (
	"context"
	"os"
	"os/signal"
	"sync"

	werrors "github.com/conneroisu/watchfiles-go/internal/errors"
	"github.com/conneroisu/watchfiles-go/internal/logging"
)

// IteratorOptions configures either facade's debounce parameters and the
// two timeout/signal behaviors that differ between a library caller that
// wants every batch and one that wants periodic timeout wakeups.
type IteratorOptions struct {
	DebounceMs, StepMs, TimeoutMs int
	// YieldOnTimeout, when true, yields an empty ChangeBatch on Timeout
	// instead of silently looping.
	YieldOnTimeout bool
	// RaiseInterrupt, when true, surfaces an OS interrupt as a fatal
	// WatchError{Kind: Interrupted} instead of ending the sequence quietly.
	RaiseInterrupt bool
	// Stop is an optional caller-supplied stop capability, ORed with the
	// facade's own interrupt-signal flag.
	Stop StopEvent
}

// SyncIterator exposes a Session as a lazy sequence of ChangeBatch values
// per spec §4.7. Construction installs the iterator's interrupt-signal
// handling; Close releases it along with the session, guaranteed even on
// an exceptional exit from the consuming loop.
type SyncIterator struct {
	session *Session
	opts    IteratorOptions
	logger  logging.Logger

	signalFlag   Settable
	combinedStop StopEvent
	sigCh        chan os.Signal

	closeOnce sync.Once
}

// NewSyncIterator wraps session as a synchronous iterator facade.
func NewSyncIterator(session *Session, opts IteratorOptions, logger logging.Logger) *SyncIterator {
	if logger == nil {
		logger = logging.Discard
	}
	signalFlag := NewStopEvent()
	it := &SyncIterator{
		session:    session,
		opts:       opts,
		logger:     logger,
		signalFlag: signalFlag,
		sigCh:      make(chan os.Signal, 1),
	}
	it.combinedStop = AnyStop(opts.Stop, signalFlag)
	signal.Notify(it.sigCh, os.Interrupt)
	go it.watchSignals()
	return it
}

func (it *SyncIterator) watchSignals() {
	if _, ok := <-it.sigCh; ok {
		it.signalFlag.Set()
	}
}

// Next blocks until a batch is ready to deliver, the sequence terminates,
// or a fatal error occurs. ok is false exactly when the sequence has
// ended (Stop, or an un-raised Signal); callers should stop calling Next
// once ok is false.
func (it *SyncIterator) Next() (batch ChangeBatch, err error, ok bool) {
	for {
		outcome, err := it.session.Watch(it.opts.DebounceMs, it.opts.StepMs, it.opts.TimeoutMs, it.combinedStop)
		if err != nil {
			return nil, err, false
		}

		switch o := outcome.(type) {
		case ChangesOutcome:
			return o.Batch, nil, true

		case TimeoutOutcome:
			if it.opts.YieldOnTimeout {
				return NewChangeBatch(), nil, true
			}
			continue

		case StopOutcome:
			if it.signalFlag.IsSet() {
				if it.opts.RaiseInterrupt {
					return nil, werrors.NewInterrupted(), false
				}
				it.logger.Warn(context.Background(), nil, "watch interrupted by signal")
				return nil, nil, false
			}
			return nil, nil, false

		case BackendFailedOutcome:
			return nil, werrors.NewBackendFailed(o.Err), false

		default:
			return nil, nil, false
		}
	}
}

// Close stops signal delivery and closes the underlying session.
// Idempotent.
func (it *SyncIterator) Close() error {
	var closeErr error
	it.closeOnce.Do(func() {
		signal.Stop(it.sigCh)
		close(it.sigCh)
		closeErr = it.session.Close()
	})
	return closeErr
}
