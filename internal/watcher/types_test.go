package watcher

import "testing"

func TestChangeKindStringAndInt(t *testing.T) {
	cases := []struct {
		kind ChangeKind
		str  string
		i    int
	}{
		{Added, "added", 1},
		{Modified, "modified", 2},
		{Deleted, "deleted", 3},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.str {
			t.Errorf("String() = %q, want %q", got, c.str)
		}
		if got := c.kind.Int(); got != c.i {
			t.Errorf("Int() = %d, want %d", got, c.i)
		}
	}
}

func TestChangeBatchDedup(t *testing.T) {
	b := NewChangeBatch()
	r := ChangeRecord{Kind: Added, Path: "/a"}
	b.Add(r)
	b.Add(r)
	if len(b.Slice()) != 1 {
		t.Fatalf("expected one record after duplicate Add, got %d", len(b.Slice()))
	}
	if !b.Contains(r) {
		t.Fatal("expected batch to contain r")
	}
}

func TestChangeBatchPreservesDistinctKindsSamePath(t *testing.T) {
	b := NewChangeBatch(
		ChangeRecord{Kind: Added, Path: "/a"},
		ChangeRecord{Kind: Modified, Path: "/a"},
	)
	if len(b.Slice()) != 2 {
		t.Fatalf("expected Added and Modified for the same path to both survive, got %d records", len(b.Slice()))
	}
}
