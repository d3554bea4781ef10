// Package watcher implements the change-detection and debouncing engine:
// a native watcher backed by fsnotify (with a polling fallback), a
// debouncing coordinator that collects raw events across a quiescence
// window, and synchronous and cooperative-asynchronous facades that yield
// deduplicated, filtered batches of changes to a consumer.
package watcher

import "fmt"

// ChangeKind is a tagged variant with exactly three values, matching the
// wire encoding used across the package boundary: the integers 1, 2, 3 and
// the lowercase names "added", "modified", "deleted".
type ChangeKind int

const (
	Added ChangeKind = iota + 1
	Modified
	Deleted
)

// String returns the lowercase wire name of the kind.
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Int returns the wire integer value of the kind.
func (k ChangeKind) Int() int {
	return int(k)
}

// RawEvent is a (kind, path) pair as reported by a backend, before
// debouncing or deduplication.
type RawEvent struct {
	Kind ChangeKind
	Path string
}

// ChangeRecord is a (kind, path) pair as delivered to consumers. It has the
// same shape as RawEvent but is guaranteed deduplicated within a batch.
type ChangeRecord struct {
	Kind ChangeKind
	Path string
}

// ChangeBatch is an unordered set of ChangeRecord; no entry appears twice.
type ChangeBatch map[ChangeRecord]struct{}

// NewChangeBatch builds a batch out of already-deduplicated records.
func NewChangeBatch(records ...ChangeRecord) ChangeBatch {
	b := make(ChangeBatch, len(records))
	for _, r := range records {
		b[r] = struct{}{}
	}
	return b
}

// Add inserts a record into the batch.
func (b ChangeBatch) Add(r ChangeRecord) {
	b[r] = struct{}{}
}

// Contains reports whether r is present in the batch.
func (b ChangeBatch) Contains(r ChangeRecord) bool {
	_, ok := b[r]
	return ok
}

// Slice returns the batch's records in unspecified order.
func (b ChangeBatch) Slice() []ChangeRecord {
	out := make([]ChangeRecord, 0, len(b))
	for r := range b {
		out = append(out, r)
	}
	return out
}

// FilterFunc is the consumer-supplied predicate applied to every candidate
// ChangeRecord after normalization. A nil FilterFunc keeps every record.
type FilterFunc func(kind ChangeKind, path string) bool
