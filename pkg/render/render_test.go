package render

import (
	"strings"
	"testing"

	"github.com/zjamron/redline/pkg/compare"
)

func sampleResult() compare.Result {
	return compare.Result{
		Success: true,
		Paragraphs: []compare.AnnotatedParagraph{
			{
				Segments: []compare.Segment{
					{Text: "The quick brown ", Kind: compare.Equal},
					{Text: "fox", Kind: compare.Delete},
					{Text: "wolf", Kind: compare.Insert},
					{Text: " jumps.", Kind: compare.Equal},
				},
			},
			{
				IsHeading: true,
				Segments: []compare.Segment{
					{Text: "Section Title", Kind: compare.Equal},
				},
			},
		},
		Stats: compare.Statistics{Insertions: 1, Deletions: 1, Unchanged: 8},
	}
}

func TestTextIncludesMarkersAndSummary(t *testing.T) {
	out := Text(sampleResult())
	if !strings.Contains(out, "- fox") {
		t.Fatalf("expected a delete marker, got %q", out)
	}
	if !strings.Contains(out, "+ wolf") {
		t.Fatalf("expected an insert marker, got %q", out)
	}
	if !strings.Contains(out, "1 inserted, 1 deleted") {
		t.Fatalf("expected a summary line, got %q", out)
	}
}

func TestHTMLEscapesAndClasses(t *testing.T) {
	result := compare.Result{
		Paragraphs: []compare.AnnotatedParagraph{
			{Segments: []compare.Segment{{Text: "<script>", Kind: compare.Insert}}},
		},
	}
	out := string(HTML(result))
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected escaped output, got %q", out)
	}
	if !strings.Contains(out, `class="ins"`) {
		t.Fatalf("expected an ins class, got %q", out)
	}
}

func TestHTMLHeadingTag(t *testing.T) {
	out := string(HTML(sampleResult()))
	if !strings.Contains(out, "<h3>") {
		t.Fatalf("expected an h3 tag for the heading paragraph, got %q", out)
	}
}
