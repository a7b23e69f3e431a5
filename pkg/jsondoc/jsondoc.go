// Package jsondoc is the reference compare.DocumentView adapter: it decodes
// the redline service's own JSON document format and exposes it to
// pkg/compare without that package ever knowing JSON exists.
package jsondoc

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zjamron/redline/pkg/compare"
)

// Paragraph is one paragraph on the wire.
type Paragraph struct {
	Text    string `json:"text"`
	Heading bool   `json:"heading,omitempty"`
}

// Cell is one table cell on the wire.
type Cell struct {
	Text string `json:"text"`
}

// Row is an ordered list of cells.
type Row []Cell

// Table is an ordered list of rows.
type Table []Row

// Section is one section's header/footer paragraph lists on the wire. Any
// of the four may be omitted, meaning that region is absent.
type Section struct {
	Header          []Paragraph `json:"header,omitempty"`
	FirstPageHeader []Paragraph `json:"first_page_header,omitempty"`
	Footer          []Paragraph `json:"footer,omitempty"`
	FirstPageFooter []Paragraph `json:"first_page_footer,omitempty"`
}

// Document is the full wire format for one side of a comparison: a flat
// body, zero or more tables, and zero or more sections.
type Document struct {
	Paragraphs []Paragraph `json:"paragraphs"`
	Tables     []Table     `json:"tables,omitempty"`
	Sections   []Section   `json:"sections,omitempty"`
}

// Decode reads a Document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("jsondoc: decode: %w", err)
	}
	return &doc, nil
}

// Encode writes doc to w.
func Encode(w io.Writer, doc *Document) error {
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("jsondoc: encode: %w", err)
	}
	return nil
}

// Paragraphs implements compare.DocumentView.
func (d *Document) Paragraphs() []compare.Paragraph {
	out := make([]compare.Paragraph, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		out[i] = compare.Paragraph{Text: p.Text, IsHeading: p.Heading}
	}
	return out
}

// Tables implements compare.DocumentView.
func (d *Document) Tables() []compare.Table {
	out := make([]compare.Table, len(d.Tables))
	for i, t := range d.Tables {
		out[i] = convertTable(t, i)
	}
	return out
}

func convertTable(t Table, tableIdx int) compare.Table {
	out := make(compare.Table, len(t))
	for r, row := range t {
		cRow := make(compare.Row, len(row))
		for c, cell := range row {
			cRow[c] = compare.Cell{Text: cell.Text, Row: r, Col: c}
		}
		out[r] = cRow
	}
	return out
}

// Sections implements compare.DocumentView.
func (d *Document) Sections() []compare.SectionView {
	out := make([]compare.SectionView, len(d.Sections))
	for i, s := range d.Sections {
		out[i] = sectionView{s}
	}
	return out
}

// sectionView adapts one wire Section to compare.SectionView.
type sectionView struct {
	s Section
}

func (v sectionView) Header() []compare.Paragraph          { return convertParagraphs(v.s.Header) }
func (v sectionView) FirstPageHeader() []compare.Paragraph { return convertParagraphs(v.s.FirstPageHeader) }
func (v sectionView) Footer() []compare.Paragraph          { return convertParagraphs(v.s.Footer) }
func (v sectionView) FirstPageFooter() []compare.Paragraph { return convertParagraphs(v.s.FirstPageFooter) }

func convertParagraphs(paras []Paragraph) []compare.Paragraph {
	if len(paras) == 0 {
		return nil
	}
	out := make([]compare.Paragraph, len(paras))
	for i, p := range paras {
		out[i] = compare.Paragraph{Text: p.Text, IsHeading: p.Heading}
	}
	return out
}
