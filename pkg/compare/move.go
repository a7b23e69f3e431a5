package compare

import (
	"regexp"
	"sort"
	"strings"
)

var collapseSpace = regexp.MustCompile(`\s+`)

func normalizeForMove(text string) string {
	return collapseSpace.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// moveCandidate is one delete or insert eligible for move pairing.
type moveCandidate struct {
	Index int // index into the caller's own indexing space
	Norm  string
}

// greedyMovePairs implements the move detector's matching procedure from
// spec §4.4: longest deletes first, each claiming the best unused insert
// above the threshold; ties among inserts go to the earliest index.
func greedyMovePairs(dels, inss []moveCandidate, cfg Config) map[int]int {
	if len(dels) == 0 || len(inss) == 0 {
		return nil
	}

	sorted := make([]moveCandidate, len(dels))
	copy(sorted, dels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return wordCount(sorted[i].Norm) > wordCount(sorted[j].Norm)
	})

	used := make(map[int]bool, len(inss))
	pairs := make(map[int]int, len(dels))

	for _, d := range sorted {
		best := -1
		bestSim := 0.0
		for _, ins := range inss {
			if used[ins.Index] {
				continue
			}
			sim := Similarity(d.Norm, ins.Norm)
			if sim >= cfg.MoveSimilarityThreshold && sim > bestSim {
				bestSim = sim
				best = ins.Index
			}
		}
		if best >= 0 {
			pairs[d.Index] = best
			used[best] = true
		}
	}
	return pairs
}

// DetectMoves rewrites delete/insert segment pairs to MoveSource/MoveDest
// when their normalized text is mutually similar above
// cfg.MoveSimilarityThreshold, and each side has at least cfg.MinMoveWords
// words. Pairing is one-to-one and greedy, longest deletion first (spec
// §4.4); segments that aren't part of a pair are returned unchanged.
func DetectMoves(segments []Segment, cfg Config) []Segment {
	var dels, inss []moveCandidate
	for i, s := range segments {
		words := wordCount(s.Text)
		if words < cfg.MinMoveWords {
			continue
		}
		switch s.Kind {
		case Delete:
			dels = append(dels, moveCandidate{Index: i, Norm: normalizeForMove(s.Text)})
		case Insert:
			inss = append(inss, moveCandidate{Index: i, Norm: normalizeForMove(s.Text)})
		}
	}

	pairs := greedyMovePairs(dels, inss, cfg)
	if len(pairs) == 0 {
		return segments
	}

	destOf := make(map[int]bool, len(pairs))
	for _, insIdx := range pairs {
		destOf[insIdx] = true
	}

	out := make([]Segment, len(segments))
	for i, s := range segments {
		switch {
		case isMoveSource(pairs, i):
			out[i] = Segment{Text: s.Text, Kind: MoveSource}
		case destOf[i]:
			out[i] = Segment{Text: s.Text, Kind: MoveDest}
		default:
			out[i] = s
		}
	}
	return out
}

func isMoveSource(pairs map[int]int, idx int) bool {
	_, ok := pairs[idx]
	return ok
}

// DetectParagraphMoves is the paragraph-level variant described in spec
// §4.4: deletions and insertions are whole unmatched paragraphs, indexed by
// their position in the orchestrator's entry stream. It returns the
// same delIdx->insIdx mapping greedyMovePairs produces, letting the
// orchestrator relabel those paragraphs' segments.
func DetectParagraphMoves(delTexts map[int]string, insTexts map[int]string, cfg Config) map[int]int {
	var dels, inss []moveCandidate
	for idx, text := range delTexts {
		if wordCount(text) < cfg.MinMoveWords {
			continue
		}
		dels = append(dels, moveCandidate{Index: idx, Norm: normalizeForMove(text)})
	}
	for idx, text := range insTexts {
		if wordCount(text) < cfg.MinMoveWords {
			continue
		}
		inss = append(inss, moveCandidate{Index: idx, Norm: normalizeForMove(text)})
	}
	// Stable, deterministic order regardless of map iteration order.
	sort.Slice(dels, func(i, j int) bool { return dels[i].Index < dels[j].Index })
	sort.Slice(inss, func(i, j int) bool { return inss[i].Index < inss[j].Index })

	return greedyMovePairs(dels, inss, cfg)
}
