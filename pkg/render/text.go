// Package render turns a compare.Result into output formats: a plain-text
// unified-diff-style rendering for curl/API clients, and HTML for the
// browser view. Neither renderer runs any diffing of its own — pkg/compare
// has already produced the segment stream; render only formats it.
package render

import (
	"fmt"
	"strings"

	"github.com/zjamron/redline/pkg/compare"
)

// marker is the line-prefix used by Text for each segment kind, matching
// the +/-/space convention of a unified diff, extended with </> for moves.
func marker(kind compare.SegmentKind) string {
	switch kind {
	case compare.Insert:
		return "+ "
	case compare.Delete:
		return "- "
	case compare.MoveSource:
		return "< "
	case compare.MoveDest:
		return "> "
	default:
		return "  "
	}
}

// Text renders a compare.Result as a sequence of marked lines, one line per
// annotated paragraph, with a summary header. It is used for non-browser
// clients (curl, scripts).
func Text(result compare.Result) string {
	var b strings.Builder
	writeSummary(&b, result.Stats)

	for _, p := range result.Paragraphs {
		if p.IsTableRow {
			b.WriteString("[table] ")
		}
		for i, s := range p.Segments {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(marker(s.Kind))
			b.WriteString(s.Text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func writeSummary(b *strings.Builder, stats compare.Statistics) {
	fmt.Fprintf(b, "--- %d inserted, %d deleted, %d moved, %d unchanged (%.1f%% changed) ---\n",
		stats.Insertions, stats.Deletions, stats.Moves, stats.Unchanged, stats.ChangePercent())
}
