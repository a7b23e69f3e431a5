package jsondoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zjamron/redline/pkg/compare"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	input := `{
		"paragraphs": [{"text": "Hello world.", "heading": true}],
		"tables": [[[{"text": "A"}, {"text": "B"}]]],
		"sections": [{"header": [{"text": "Confidential"}]}]
	}`

	doc, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	roundTripped, err := Decode(&buf)
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if len(roundTripped.Paragraphs) != 1 || roundTripped.Paragraphs[0].Text != "Hello world." {
		t.Fatalf("unexpected paragraphs after round-trip: %+v", roundTripped.Paragraphs)
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader("not json"))
	if err == nil {
		t.Fatalf("expected an error for malformed input")
	}
}

func TestDocumentImplementsDocumentView(t *testing.T) {
	doc := &Document{
		Paragraphs: []Paragraph{{Text: "First."}, {Text: "Second.", Heading: true}},
		Tables: []Table{
			{{{Text: "Name"}, {Text: "Qty"}}, {{Text: "Widget"}, {Text: "10"}}},
		},
		Sections: []Section{
			{Header: []Paragraph{{Text: "Report Header"}}, Footer: nil},
		},
	}

	var view compare.DocumentView = doc

	paras := view.Paragraphs()
	if len(paras) != 2 || !paras[1].IsHeading {
		t.Fatalf("unexpected paragraphs: %+v", paras)
	}

	tables := view.Tables()
	if len(tables) != 1 || len(tables[0]) != 2 || len(tables[0][0]) != 2 {
		t.Fatalf("unexpected tables: %+v", tables)
	}
	if tables[0][1][0].Text != "Widget" {
		t.Fatalf("unexpected cell text: %+v", tables[0][1][0])
	}

	sections := view.Sections()
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if header := sections[0].Header(); len(header) != 1 || header[0].Text != "Report Header" {
		t.Fatalf("unexpected header: %+v", header)
	}
	if footer := sections[0].Footer(); footer != nil {
		t.Fatalf("expected nil footer, got %+v", footer)
	}
}

func TestEmptyDocument(t *testing.T) {
	doc := &Document{}
	var view compare.DocumentView = doc
	if len(view.Paragraphs()) != 0 {
		t.Fatalf("expected no paragraphs")
	}
	if len(view.Tables()) != 0 {
		t.Fatalf("expected no tables")
	}
	if len(view.Sections()) != 0 {
		t.Fatalf("expected no sections")
	}
}
