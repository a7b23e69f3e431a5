package compare

import (
	"strings"

	"github.com/zjamron/redline/pkg/compare/internal/seqmatch"
)

// DiffWords tokenizes origText and modText and runs a longest-common-
// subsequence diff over the token streams, emitting equal/delete/insert
// segments in source order. A "replace" opcode is emitted as a delete
// segment immediately followed by an insert segment, never interleaved.
// Empty-text segments are elided.
//
// Concatenating the returned segments' text, keeping {Equal, Delete} and
// dropping {Insert}, reproduces origText; keeping {Equal, Insert} and
// dropping {Delete} reproduces modText (the round-trip property; move
// detection, if run afterwards, preserves it since it only relabels kinds).
func DiffWords(origText, modText string) []Segment {
	origTokens := Tokenize(origText)
	modTokens := Tokenize(modText)

	m := seqmatch.New(tokenTexts(origTokens), tokenTexts(modTokens))
	var out []Segment

	for _, op := range m.OpCodes() {
		switch op.Tag {
		case seqmatch.OpEqual:
			appendSegment(&out, joinTokens(origTokens, op.I1, op.I2), Equal)
		case seqmatch.OpDelete:
			appendSegment(&out, joinTokens(origTokens, op.I1, op.I2), Delete)
		case seqmatch.OpInsert:
			appendSegment(&out, joinTokens(modTokens, op.J1, op.J2), Insert)
		case seqmatch.OpReplace:
			appendSegment(&out, joinTokens(origTokens, op.I1, op.I2), Delete)
			appendSegment(&out, joinTokens(modTokens, op.J1, op.J2), Insert)
		}
	}
	return out
}

func appendSegment(out *[]Segment, text string, kind SegmentKind) {
	if text == "" {
		return
	}
	*out = append(*out, Segment{Text: text, Kind: kind})
}

func joinTokens(tokens []Token, i1, i2 int) string {
	var b strings.Builder
	for _, t := range tokens[i1:i2] {
		b.WriteString(t.Text)
	}
	return b.String()
}
