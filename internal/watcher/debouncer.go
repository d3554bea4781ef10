package watcher

import "time"

// Debouncer implements the central state machine of spec §4.5: it pops
// RawEvents from a bounded event channel, accumulates them across a
// quiescence window bounded above by an absolute timeout, and on delivery
// normalizes and filters the accumulated set into a ChangeBatch. Each pop
// waits until the nearest applicable deadline, computed by explicit time
// comparisons rather than nested sleeps: the step and session-timeout
// deadlines while waiting for the first event of a cycle, and the step and
// debounce-cap deadlines once a cycle has begun. Because the session
// timeout is not consulted during accumulation, a call that has received
// an event can return after timeoutMs.
type Debouncer struct {
	channel *eventChannel
	filter  FilterFunc
}

// NewDebouncer constructs a Debouncer reading from channel and applying
// filter (which may be nil) to every delivered batch.
func NewDebouncer(channel *eventChannel, filter FilterFunc) *Debouncer {
	return &Debouncer{channel: channel, filter: filter}
}

// Watch runs one debounce cycle and returns the resulting Outcome. A
// timeoutMs of zero means no absolute bound on the call's duration.
// stop is polled before every pop; setting it mid-call returns
// StopOutcome within at most one stepMs tick.
func (d *Debouncer) Watch(debounceMs, stepMs, timeoutMs int, stop StopEvent) Outcome {
	step := time.Duration(stepMs) * time.Millisecond
	debounce := time.Duration(debounceMs) * time.Millisecond

	t0 := time.Now()
	var overallDeadline time.Time
	hasOverallDeadline := timeoutMs != 0
	if hasOverallDeadline {
		overallDeadline = t0.Add(time.Duration(timeoutMs) * time.Millisecond)
	}

	for {
		if err := d.channel.Failure(); err != nil {
			return BackendFailedOutcome{Err: err}
		}
		if stop != nil && stop.IsSet() {
			return StopOutcome{}
		}

		deadline := time.Now().Add(step)
		if hasOverallDeadline && overallDeadline.Before(deadline) {
			deadline = overallDeadline
		}

		ev, ok := d.channel.Pop(deadline)
		if err := d.channel.Failure(); err != nil {
			return BackendFailedOutcome{Err: err}
		}
		if !ok {
			if hasOverallDeadline && !time.Now().Before(overallDeadline) {
				return TimeoutOutcome{}
			}
			// Step-deadline expired with nothing accumulated yet; keep
			// waiting for the first event of a cycle.
			continue
		}

		batch, delivered := d.accumulate(ev, step, debounce, stop)
		if !delivered {
			// stop fired mid-accumulation.
			if err := d.channel.Failure(); err != nil {
				return BackendFailedOutcome{Err: err}
			}
			return StopOutcome{}
		}
		if len(batch) == 0 {
			// Entire accumulated batch was filtered away; this cycle is
			// not reported to the consumer, per spec §4.5.
			continue
		}
		return ChangesOutcome{Batch: batch}
	}
}

// accumulate runs the inner accumulation loop once a first event has
// arrived, returning the normalized and filtered batch. delivered is
// false when stop is observed set before the batch is handed back.
//
// The overall session deadline (timeoutMs) bounds how long Watch waits
// for the *first* event of a cycle; it is not consulted here. Once a
// cycle has a non-empty accumulator, only the step-quiescence and
// debounce-cap deadlines govern delivery, matching watchfiles' own
// debouncer: a full step recv always runs to completion before the
// accumulated batch is handed back.
func (d *Debouncer) accumulate(first RawEvent, step, debounce time.Duration, stop StopEvent) (ChangeBatch, bool) {
	raw := []RawEvent{first}
	firstEventTime := time.Now()

	for {
		if stop != nil && stop.IsSet() {
			return nil, false
		}
		if time.Since(firstEventTime) >= debounce {
			return normalize(raw, d.filter), true
		}

		deadline := time.Now().Add(step)
		debounceDeadline := firstEventTime.Add(debounce)
		if debounceDeadline.Before(deadline) {
			deadline = debounceDeadline
		}

		ev, ok := d.channel.Pop(deadline)
		if !ok {
			if stop != nil && stop.IsSet() {
				return nil, false
			}
			// Step-quiet or debounce-cap deadline reached with a
			// non-empty accumulator: deliver regardless of which of the
			// two boundaries fired (tie-break rule of spec §4.5).
			return normalize(raw, d.filter), true
		}

		raw = append(raw, ev)
	}
}
