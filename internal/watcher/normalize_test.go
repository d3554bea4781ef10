package watcher

import "testing"

func TestNormalizeDedupsIdenticalPairs(t *testing.T) {
	raw := []RawEvent{
		{Kind: Modified, Path: "/a"},
		{Kind: Modified, Path: "/a"},
		{Kind: Added, Path: "/b"},
	}
	batch := normalize(raw, nil)
	if len(batch) != 2 {
		t.Fatalf("expected 2 records after dedup, got %d", len(batch))
	}
}

func TestNormalizeAppliesFilter(t *testing.T) {
	raw := []RawEvent{
		{Kind: Added, Path: "/keep.go"},
		{Kind: Added, Path: "/drop.txt"},
	}
	onlyGo := func(kind ChangeKind, path string) bool {
		return path == "/keep.go"
	}
	batch := normalize(raw, onlyGo)
	if len(batch) != 1 {
		t.Fatalf("expected 1 record after filtering, got %d", len(batch))
	}
	if !batch.Contains(ChangeRecord{Kind: Added, Path: "/keep.go"}) {
		t.Fatal("expected surviving record to be /keep.go")
	}
}

func TestNormalizeNilFilterKeepsEverything(t *testing.T) {
	raw := []RawEvent{{Kind: Deleted, Path: "/x"}}
	batch := normalize(raw, nil)
	if len(batch) != 1 {
		t.Fatalf("expected 1 record, got %d", len(batch))
	}
}
