package watcher

// normalize collapses a slice of RawEvent into a deduplicated, filtered
// ChangeBatch. Duplicate (kind, path) pairs collapse to one record; no
// further cross-kind reconciliation is performed, so Added and Modified
// records for the same path both survive if both were observed.
func normalize(raw []RawEvent, filter FilterFunc) ChangeBatch {
	batch := make(ChangeBatch, len(raw))
	for _, ev := range raw {
		if filter != nil && !filter(ev.Kind, ev.Path) {
			continue
		}
		batch.Add(ChangeRecord{Kind: ev.Kind, Path: ev.Path})
	}
	return batch
}
