package watcher

import "sync/atomic"

// StopEvent is the cooperative-cancellation capability threaded through
// Debouncer.Watch. Implementations must make IsSet safe to call
// concurrently from both the backend/debouncer goroutine and whichever
// goroutine eventually calls Set.
type StopEvent interface {
	IsSet() bool
}

// Settable is implemented by StopEvents that can be set from the facade
// side, e.g. on receipt of an interrupt signal or a cancelled context.
type Settable interface {
	StopEvent
	Set()
}

// NewStopEvent returns a fresh, unset Settable stop capability.
func NewStopEvent() Settable {
	return &flagStopEvent{}
}

type flagStopEvent struct {
	set atomic.Bool
}

func (f *flagStopEvent) IsSet() bool {
	return f.set.Load()
}

func (f *flagStopEvent) Set() {
	f.set.Store(true)
}

// anyStopEvent observes true as soon as any of its members does, letting a
// facade-internal signal flag and a caller-supplied stop_event cancel the
// same Debouncer.Watch call without the debouncer knowing about either one
// specifically.
type anyStopEvent struct {
	events []StopEvent
}

// AnyStop combines stop capabilities so that IsSet reports true as soon as
// any of them does. A nil member is ignored.
func AnyStop(events ...StopEvent) StopEvent {
	filtered := make([]StopEvent, 0, len(events))
	for _, e := range events {
		if e != nil {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &anyStopEvent{events: filtered}
}

func (a *anyStopEvent) IsSet() bool {
	for _, e := range a.events {
		if e.IsSet() {
			return true
		}
	}
	return false
}
