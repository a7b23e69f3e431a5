package compare

import "testing"

func TestSimilarityIdentical(t *testing.T) {
	if got := Similarity("same text", "same text"); got != 1.0 {
		t.Fatalf("expected 1.0, got %v", got)
	}
}

func TestSimilarityBothEmptyAfterTrim(t *testing.T) {
	if got := Similarity("   ", ""); got != 1.0 {
		t.Fatalf("expected 1.0 for both blank, got %v", got)
	}
}

func TestSimilarityOneEmpty(t *testing.T) {
	if got := Similarity("something", "   "); got != 0.0 {
		t.Fatalf("expected 0.0, got %v", got)
	}
}

func TestSimilarityWordReorder(t *testing.T) {
	// Identical word sets, different order: Jaccard should be 1.0 regardless
	// of how charSeqRatio scores the reordering.
	got := Similarity("the quick brown fox", "fox brown quick the")
	if got != 1.0 {
		t.Fatalf("expected word-set Jaccard to dominate at 1.0, got %v", got)
	}
}

func TestSimilarityCloseVariant(t *testing.T) {
	got := Similarity("The quick brown fox jumps over the lazy dog.", "The quick brown fox leaps over the lazy dog.")
	if got < 0.7 {
		t.Fatalf("expected a high similarity for a single-word edit, got %v", got)
	}
}

func TestSimilarityUnrelated(t *testing.T) {
	got := Similarity("Completely unrelated sentence about cats.", "Totally different paragraph discussing finance.")
	if got > 0.4 {
		t.Fatalf("expected low similarity for unrelated text, got %v", got)
	}
}
