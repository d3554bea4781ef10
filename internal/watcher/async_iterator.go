package watcher

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc"

	werrors "github.com/conneroisu/watchfiles-go/internal/errors"
	"github.com/conneroisu/watchfiles-go/internal/logging"
)

// DefaultAsyncTimeoutMs returns the platform-dependent default timeout_ms
// used by AsyncIterator when the caller leaves TimeoutMs unset: 1000ms on
// Windows, 5000ms elsewhere. The bound exists so interrupt handling stays
// responsive on platforms where an OS signal cannot pre-empt a blocking
// call already in flight.
func DefaultAsyncTimeoutMs() int {
	if runtime.GOOS == "windows" {
		return 1000
	}
	return 5000
}

// AsyncIterator is the cooperative-asynchronous counterpart of
// SyncIterator (spec §4.8). Debouncer.Watch runs on a worker goroutine
// managed by a panics-propagating conc.WaitGroup; Next awaits that
// goroutine cooperatively via a context, so cancelling the context
// observed by Next causes the worker to see stop_event within one step_ms
// tick instead of leaking it.
type AsyncIterator struct {
	session *Session
	opts    IteratorOptions
	logger  logging.Logger

	cancelFlag   Settable
	combinedStop StopEvent
	sigCh        chan os.Signal

	closeOnce sync.Once
}

// NewAsyncIterator wraps session as an asynchronous iterator facade. If
// opts.TimeoutMs is zero, DefaultAsyncTimeoutMs() is substituted, since
// the asynchronous facade never waits unboundedly by default.
func NewAsyncIterator(session *Session, opts IteratorOptions, logger logging.Logger) *AsyncIterator {
	if logger == nil {
		logger = logging.Discard
	}
	if opts.TimeoutMs <= 0 {
		opts.TimeoutMs = DefaultAsyncTimeoutMs()
	}

	cancelFlag := NewStopEvent()
	it := &AsyncIterator{
		session:    session,
		opts:       opts,
		logger:     logger,
		cancelFlag: cancelFlag,
		sigCh:      make(chan os.Signal, 1),
	}
	it.combinedStop = AnyStop(opts.Stop, cancelFlag)
	signal.Notify(it.sigCh, os.Interrupt)
	go it.watchSignals()
	return it
}

func (it *AsyncIterator) watchSignals() {
	if _, ok := <-it.sigCh; ok {
		it.cancelFlag.Set()
	}
}

type asyncResult struct {
	outcome Outcome
	err     error
}

// Next awaits one debounce cycle. If ctx is cancelled while the worker is
// still running, Next sets the combined stop capability, waits for the
// worker to observe it and return, and only then reports ctx's error — the
// worker is never abandoned mid-flight.
func (it *AsyncIterator) Next(ctx context.Context) (batch ChangeBatch, err error, ok bool) {
	for {
		res, cancelled := it.awaitOne(ctx)
		if cancelled {
			return nil, ctx.Err(), false
		}
		if res.err != nil {
			return nil, res.err, false
		}

		switch o := res.outcome.(type) {
		case ChangesOutcome:
			return o.Batch, nil, true

		case TimeoutOutcome:
			if it.opts.YieldOnTimeout {
				return NewChangeBatch(), nil, true
			}
			continue

		case StopOutcome:
			return nil, nil, false

		case BackendFailedOutcome:
			return nil, werrors.NewBackendFailed(o.Err), false

		default:
			return nil, nil, false
		}
	}
}

// awaitOne runs a single Debouncer.Watch call on a worker goroutine and
// awaits it cooperatively. cancelled is true if ctx was done first, in
// which case the worker is still guaranteed to have returned by the time
// awaitOne itself returns.
func (it *AsyncIterator) awaitOne(ctx context.Context) (res asyncResult, cancelled bool) {
	resultCh := make(chan asyncResult, 1)

	var wg conc.WaitGroup
	wg.Go(func() {
		// Send even when Watch panics, so the await below returns and
		// wg.Wait re-raises the recovered panic on this goroutine.
		var res asyncResult
		defer func() { resultCh <- res }()
		res.outcome, res.err = it.session.Watch(it.opts.DebounceMs, it.opts.StepMs, it.opts.TimeoutMs, it.combinedStop)
	})

	select {
	case res = <-resultCh:
		wg.Wait()
		return res, false

	case <-ctx.Done():
		it.cancelFlag.Set()
		res = <-resultCh
		wg.Wait()
		return res, true
	}
}

// Close stops signal delivery and closes the underlying session.
// Idempotent.
func (it *AsyncIterator) Close() error {
	var closeErr error
	it.closeOnce.Do(func() {
		signal.Stop(it.sigCh)
		close(it.sigCh)
		closeErr = it.session.Close()
	})
	return closeErr
}
