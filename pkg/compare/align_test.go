package compare

import "testing"

func TestAlignAllMatch(t *testing.T) {
	orig := []string{"one", "two", "three"}
	mod := []string{"one", "two", "three"}

	out := Align(orig, mod, 0.4)
	if len(out) != 3 {
		t.Fatalf("expected 3 alignment records, got %d", len(out))
	}
	for i, rec := range out {
		if rec.Kind != AlignMatch || rec.OrigIdx != i || rec.ModIdx != i {
			t.Fatalf("record %d: expected match(%d,%d), got %+v", i, i, i, rec)
		}
	}
}

func TestAlignPureInsert(t *testing.T) {
	out := Align(nil, []string{"new paragraph one", "new paragraph two"}, 0.4)
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	for _, rec := range out {
		if rec.Kind != AlignInsert {
			t.Fatalf("expected all inserts, got %+v", rec)
		}
	}
}

func TestAlignPureDelete(t *testing.T) {
	out := Align([]string{"old paragraph one", "old paragraph two"}, nil, 0.4)
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	for _, rec := range out {
		if rec.Kind != AlignDelete {
			t.Fatalf("expected all deletes, got %+v", rec)
		}
	}
}

func TestAlignOrderPreserved(t *testing.T) {
	orig := []string{"alpha one two three", "inserted nowhere", "gamma four five six"}
	mod := []string{"alpha one two three", "beta new text here today", "gamma four five six"}

	out := Align(orig, mod, 0.4)

	// Source order must be preserved: orig indices non-decreasing across
	// match/delete records, mod indices non-decreasing across match/insert.
	lastOrig, lastMod := -1, -1
	for _, rec := range out {
		if rec.OrigIdx >= 0 {
			if rec.OrigIdx < lastOrig {
				t.Fatalf("orig index went backwards: %+v", out)
			}
			lastOrig = rec.OrigIdx
		}
		if rec.ModIdx >= 0 {
			if rec.ModIdx < lastMod {
				t.Fatalf("mod index went backwards: %+v", out)
			}
			lastMod = rec.ModIdx
		}
	}
}

func TestAlignEmptyBoth(t *testing.T) {
	out := Align(nil, nil, 0.4)
	if len(out) != 0 {
		t.Fatalf("expected no records, got %+v", out)
	}
}
