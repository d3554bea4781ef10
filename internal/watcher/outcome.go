package watcher

// Outcome is the closed tagged-variant result of Debouncer.Watch, modeled
// as an interface with an unexported marker method rather than a sentinel
// value mixed with a collection, per the design note about keeping the
// contract unambiguous across a Go/non-Go boundary.
type Outcome interface {
	outcome()
}

// ChangesOutcome carries at least one accumulated, normalized, filtered
// change: the debounce rule fired with a non-empty batch.
type ChangesOutcome struct {
	Batch ChangeBatch
}

func (ChangesOutcome) outcome() {}

// TimeoutOutcome reports that timeout_ms elapsed with no events
// accumulated during the call.
type TimeoutOutcome struct{}

func (TimeoutOutcome) outcome() {}

// StopOutcome reports that the supplied stop_event became set before any
// delivery condition fired.
type StopOutcome struct{}

func (StopOutcome) outcome() {}

// SignalOutcome reports that the synchronous facade observed an OS
// interrupt signal while Watch was blocked. Debouncer.Watch never returns
// it, since it has no notion of OS signals.
//
// Taxonomy completeness: SyncIterator currently distinguishes signal
// delivery by checking its own signal flag after receiving StopOutcome,
// rather than constructing this type directly, so nothing in this
// module constructs SignalOutcome today. It is kept as a named variant
// for callers that want to match on it explicitly.
type SignalOutcome struct{}

func (SignalOutcome) outcome() {}

// BackendFailedOutcome reports a fatal backend fault, e.g. the producer
// goroutine terminated and recorded a failure on the event channel. The
// facade translates this into a fatal error for the consumer.
type BackendFailedOutcome struct {
	Err error
}

func (BackendFailedOutcome) outcome() {}
