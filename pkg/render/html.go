package render

import (
	"html"
	"html/template"
	"strings"

	"github.com/zjamron/redline/pkg/compare"
)

// cssClass is the CSS class HTML uses for each segment kind.
func cssClass(kind compare.SegmentKind) string {
	switch kind {
	case compare.Insert:
		return "ins"
	case compare.Delete:
		return "del"
	case compare.MoveSource:
		return "move-src"
	case compare.MoveDest:
		return "move-dst"
	default:
		return ""
	}
}

// HTML renders a compare.Result as a sequence of <p>/<span> markup, one
// element per annotated paragraph, with change-kind CSS classes applied
// per segment. The result is meant to be embedded directly into a
// html/template page via the pre-escaped template.HTML type, since every
// piece of document text passing through here is escaped up front.
func HTML(result compare.Result) template.HTML {
	var b strings.Builder
	for _, p := range result.Paragraphs {
		tag := "p"
		if p.IsHeading {
			tag = "h3"
		}
		b.WriteByte('<')
		b.WriteString(tag)
		if p.IsTableRow {
			b.WriteString(` class="table-row"`)
		}
		b.WriteByte('>')
		for _, s := range p.Segments {
			writeSegment(&b, s)
		}
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteString(">\n")
	}
	return template.HTML(b.String())
}

func writeSegment(b *strings.Builder, s compare.Segment) {
	class := cssClass(s.Kind)
	escaped := html.EscapeString(s.Text)
	if class == "" {
		b.WriteString(escaped)
		return
	}
	b.WriteString(`<span class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	b.WriteString(escaped)
	b.WriteString(`</span>`)
}
