package compare

import "strings"

// heldKind marks a body-pipeline entry awaiting paragraph-level move
// resolution, as opposed to one already finalized (a match result).
type heldKind int

const (
	heldNone heldKind = iota
	heldInsert
	heldDelete
)

// bodyEntry is one position in the orchestrator's output stream for a
// single body/header/footer pipeline run, in alignment order.
type bodyEntry struct {
	final     *AnnotatedParagraph
	held      heldKind
	text      string
	isHeading bool
}

func paragraphTexts(paras []Paragraph) []string {
	out := make([]string, len(paras))
	for i, p := range paras {
		out[i] = p.Text
	}
	return out
}

// diffParagraphs runs the word differ plus word-level move detection on a
// matched paragraph pair, handling the "one side empty after trim" open
// question (spec §9): treated as unchanged, keeping the non-empty side's
// text verbatim rather than diffing against nothing.
func diffParagraphs(origText, modText string, cfg Config) []Segment {
	trimOrig, trimMod := strings.TrimSpace(origText), strings.TrimSpace(modText)

	switch {
	case trimOrig == trimMod:
		if modText == "" {
			return nil
		}
		return []Segment{{Text: modText, Kind: Equal}}
	case trimOrig == "" || trimMod == "":
		nonEmpty := modText
		if trimMod == "" {
			nonEmpty = origText
		}
		if nonEmpty == "" {
			return nil
		}
		return []Segment{{Text: nonEmpty, Kind: Equal}}
	default:
		return DetectMoves(DiffWords(origText, modText), cfg)
	}
}

// compareBody implements spec §4.6 steps 1-3 over one pair of ordered
// paragraph lists: body paragraphs, or one header/footer region. It is
// reused for both by the orchestrator.
func compareBody(origParas, modParas []Paragraph, cfg Config) ([]AnnotatedParagraph, Statistics) {
	alignments := Align(paragraphTexts(origParas), paragraphTexts(modParas), cfg.ParagraphSimilarityThreshold)

	var entries []bodyEntry
	for _, a := range alignments {
		switch a.Kind {
		case AlignMatch:
			origText := origParas[a.OrigIdx].Text
			modText := modParas[a.ModIdx].Text
			segments := diffParagraphs(origText, modText, cfg)
			entries = append(entries, bodyEntry{
				final: &AnnotatedParagraph{
					Segments:  segments,
					IsHeading: modParas[a.ModIdx].IsHeading,
				},
			})
		case AlignInsert:
			modText := modParas[a.ModIdx].Text
			if strings.TrimSpace(modText) == "" {
				continue
			}
			entries = append(entries, bodyEntry{
				held:      heldInsert,
				text:      modText,
				isHeading: modParas[a.ModIdx].IsHeading,
			})
		case AlignDelete:
			origText := origParas[a.OrigIdx].Text
			if strings.TrimSpace(origText) == "" {
				continue
			}
			entries = append(entries, bodyEntry{
				held:      heldDelete,
				text:      origText,
				isHeading: origParas[a.OrigIdx].IsHeading,
			})
		}
	}

	delTexts := make(map[int]string)
	insTexts := make(map[int]string)
	for idx, e := range entries {
		switch e.held {
		case heldDelete:
			delTexts[idx] = e.text
		case heldInsert:
			insTexts[idx] = e.text
		}
	}
	pairs := DetectParagraphMoves(delTexts, insTexts, cfg)
	usedIns := make(map[int]bool, len(pairs))
	for _, insIdx := range pairs {
		usedIns[insIdx] = true
	}

	out := make([]AnnotatedParagraph, 0, len(entries))
	var stats Statistics
	for idx, e := range entries {
		var ap AnnotatedParagraph
		switch {
		case e.final != nil:
			ap = *e.final
		case e.held == heldDelete:
			kind := Delete
			if _, ok := pairs[idx]; ok {
				kind = MoveSource
			}
			ap = AnnotatedParagraph{Segments: []Segment{{Text: e.text, Kind: kind}}, IsHeading: e.isHeading}
		case e.held == heldInsert:
			kind := Insert
			if usedIns[idx] {
				kind = MoveDest
			}
			ap = AnnotatedParagraph{Segments: []Segment{{Text: e.text, Kind: kind}}, IsHeading: e.isHeading}
		}
		addSegmentStats(&stats, ap.Segments)
		out = append(out, ap)
	}
	return out, stats
}

func addSegmentStats(stats *Statistics, segments []Segment) {
	for _, s := range segments {
		words := wordCount(s.Text)
		switch s.Kind {
		case Insert:
			stats.Insertions += words
		case Delete:
			stats.Deletions += words
		case MoveSource, MoveDest:
			stats.Moves += words
		case Equal:
			stats.Unchanged += words
		}
	}
}

// compareTables implements spec §4.6 step 4.
func compareTables(origTables, modTables []Table, cfg Config) ([]AnnotatedParagraph, Statistics) {
	var out []AnnotatedParagraph
	var stats Statistics

	maxTables := len(origTables)
	if len(modTables) > maxTables {
		maxTables = len(modTables)
	}

	for i := 0; i < maxTables; i++ {
		switch {
		case i < len(origTables) && i < len(modTables):
			rows, rowStats := compareTableRows(origTables[i], modTables[i], cfg)
			out = append(out, rows...)
			stats.Add(rowStats)
		case i < len(modTables):
			for _, row := range modTables[i] {
				ap := wholeRowSegment(row, Insert)
				addSegmentStats(&stats, ap.Segments)
				out = append(out, ap)
			}
		case i < len(origTables):
			for _, row := range origTables[i] {
				ap := wholeRowSegment(row, Delete)
				addSegmentStats(&stats, ap.Segments)
				out = append(out, ap)
			}
		}
	}
	return out, stats
}

func wholeRowSegment(row Row, kind SegmentKind) AnnotatedParagraph {
	text := row.Text()
	if text == "" {
		return AnnotatedParagraph{IsTableRow: true}
	}
	return AnnotatedParagraph{
		Segments:   []Segment{{Text: text, Kind: kind}},
		IsTableRow: true,
	}
}

func rowTexts(table Table) []string {
	out := make([]string, len(table))
	for i, r := range table {
		out[i] = r.Text()
	}
	return out
}

func compareTableRows(origTable, modTable Table, cfg Config) ([]AnnotatedParagraph, Statistics) {
	alignments := Align(rowTexts(origTable), rowTexts(modTable), cfg.RowSimilarityThreshold)

	var out []AnnotatedParagraph
	var stats Statistics

	for _, a := range alignments {
		switch a.Kind {
		case AlignMatch:
			ap := diffTableRow(origTable[a.OrigIdx], modTable[a.ModIdx], cfg)
			addSegmentStats(&stats, ap.Segments)
			out = append(out, ap)
		case AlignInsert:
			ap := wholeRowSegment(modTable[a.ModIdx], Insert)
			addSegmentStats(&stats, ap.Segments)
			out = append(out, ap)
		case AlignDelete:
			ap := wholeRowSegment(origTable[a.OrigIdx], Delete)
			addSegmentStats(&stats, ap.Segments)
			out = append(out, ap)
		}
	}
	return out, stats
}

var cellSeparator = Segment{Text: " | ", Kind: Equal}

// diffTableRow compares cells pairwise between a matched row pair. Embedded
// newlines inside a cell are treated as logical sub-paragraph boundaries
// but are not recursed into a nested paragraph aligner (spec §9, third open
// question) — the word differ runs directly over the cell's full text.
func diffTableRow(origRow, modRow Row, cfg Config) AnnotatedParagraph {
	maxCols := len(origRow)
	if len(modRow) > maxCols {
		maxCols = len(modRow)
	}

	var segments []Segment
	for col := 0; col < maxCols; col++ {
		switch {
		case col < len(origRow) && col < len(modRow):
			origCell, modCell := origRow[col].Text, modRow[col].Text
			if strings.TrimSpace(origCell) == strings.TrimSpace(modCell) {
				if modCell != "" {
					segments = append(segments, Segment{Text: modCell, Kind: Equal})
				}
			} else {
				cellSegs := DetectMoves(DiffWords(origCell, modCell), cfg)
				segments = append(segments, cellSegs...)
			}
		case col < len(modRow):
			if modRow[col].Text != "" {
				segments = append(segments, Segment{Text: modRow[col].Text, Kind: Insert})
			}
		case col < len(origRow):
			if origRow[col].Text != "" {
				segments = append(segments, Segment{Text: origRow[col].Text, Kind: Delete})
			}
		}
		if col < maxCols-1 {
			segments = append(segments, cellSeparator)
		}
	}

	return AnnotatedParagraph{Segments: segments, IsTableRow: true}
}

// Compare is the orchestrator: spec §4.6's public compare operation. It
// calls the aligner, differ, and move detector in a fixed order over body
// paragraphs, tables, and header/footer regions, accumulating one
// Statistics record, and returns the full annotated stream.
//
// Per-region absence (e.g. a missing first-page header on one side) is
// never an error; it is skipped silently. A nil orig or mod is a caller
// error. An internal invariant violation (an empty segment, a statistics
// mismatch, or unbalanced move pairs) is returned as a failed Result rather
// than panicking past the caller, but is never silently discarded. The
// round-trip property is not re-checked here.
func Compare(orig, mod DocumentView, cfg Config) Result {
	if orig == nil || mod == nil {
		return Result{Err: &CallerError{Detail: "orig and mod document views must not be nil"}}
	}

	var out []AnnotatedParagraph
	var stats Statistics

	bodyOut, bodyStats := compareBody(orig.Paragraphs(), mod.Paragraphs(), cfg)
	out = append(out, bodyOut...)
	stats.Add(bodyStats)

	tableOut, tableStats := compareTables(orig.Tables(), mod.Tables(), cfg)
	out = append(out, tableOut...)
	stats.Add(tableStats)

	origSections, modSections := orig.Sections(), mod.Sections()
	sectionCount := len(origSections)
	if len(modSections) < sectionCount {
		sectionCount = len(modSections)
	}
	for i := 0; i < sectionCount; i++ {
		for _, region := range [...]struct {
			origFn, modFn func() []Paragraph
		}{
			{origSections[i].Header, modSections[i].Header},
			{origSections[i].FirstPageHeader, modSections[i].FirstPageHeader},
			{origSections[i].Footer, modSections[i].Footer},
			{origSections[i].FirstPageFooter, modSections[i].FirstPageFooter},
		} {
			op, mp := region.origFn(), region.modFn()
			if len(op) == 0 || len(mp) == 0 {
				continue
			}
			regionOut, regionStats := compareBody(op, mp, cfg)
			out = append(out, regionOut...)
			stats.Add(regionStats)
		}
	}

	if err := checkInvariants(out, stats); err != nil {
		return Result{Err: err}
	}

	return Result{Success: true, Paragraphs: out, Stats: stats}
}

// checkInvariants re-derives word counts and move bijection from the
// emitted stream and compares them against the accumulated Statistics,
// catching the "internal invariant violation" class of bug spec §7 and §8
// call out explicitly (these must never be masked).
func checkInvariants(paragraphs []AnnotatedParagraph, stats Statistics) error {
	var recomputed Statistics
	moveSources, moveDests := 0, 0
	for _, p := range paragraphs {
		for _, s := range p.Segments {
			if s.Text == "" {
				return &InvariantError{Invariant: "non-empty segment text", Detail: "emitted segment with empty text"}
			}
			words := wordCount(s.Text)
			switch s.Kind {
			case Insert:
				recomputed.Insertions += words
			case Delete:
				recomputed.Deletions += words
			case MoveSource:
				recomputed.Moves += words
				moveSources++
			case MoveDest:
				recomputed.Moves += words
				moveDests++
			case Equal:
				recomputed.Unchanged += words
			}
		}
	}
	if recomputed != stats {
		return &InvariantError{
			Invariant: "conservation of words",
			Detail:    "accumulated statistics do not match the emitted segment stream",
		}
	}
	if moveSources != moveDests {
		return &InvariantError{
			Invariant: "move pairing bijection",
			Detail:    "move_source and move_dest counts differ",
		}
	}
	return nil
}
