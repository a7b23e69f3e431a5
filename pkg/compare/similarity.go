package compare

import (
	"strings"

	"github.com/zjamron/redline/pkg/compare/internal/seqmatch"
)

// Similarity returns a normalized similarity between a and b in [0,1]:
// 1.0 if byte-identical, 1.0 if both are empty after trimming, 0.0 if
// exactly one is empty after trimming, otherwise max(jaccard, seqRatio) —
// word-set Jaccard over lowercased whitespace-separated tokens, and a
// longest-matching-block character ratio over lowercased full strings.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	ta, tb := strings.TrimSpace(a), strings.TrimSpace(b)
	if ta == "" && tb == "" {
		return 1.0
	}
	if ta == "" || tb == "" {
		return 0.0
	}

	jaccard := wordJaccard(ta, tb)
	seqRatio := charSeqRatio(ta, tb)
	if jaccard > seqRatio {
		return jaccard
	}
	return seqRatio
}

func wordJaccard(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range wa {
		if wb[w] {
			intersection++
		}
	}
	union := len(wa) + len(wb) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

func charSeqRatio(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	return seqmatch.Ratio(ra, rb)
}
