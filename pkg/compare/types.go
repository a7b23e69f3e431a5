// Package compare implements the diff and alignment engine for document
// redlining: fuzzy paragraph alignment, word-level diffing, and move
// detection, emitting a normalized stream of annotated segments plus
// aggregate change statistics.
//
// The package is a synchronous, single-threaded pure computation: it does
// no I/O and holds no state across calls to Compare. Input documents are
// consumed through the DocumentView/SectionView interfaces; output is a
// slice of AnnotatedParagraph plus a Statistics record, meant to be handed
// to a separate renderer.
package compare

// Token is a maximal run of whitespace or non-whitespace characters within
// a paragraph's text, in reading order.
type Token struct {
	Text       string
	Whitespace bool
}

// SegmentKind labels an emitted Segment.
type SegmentKind int

const (
	Equal SegmentKind = iota
	Insert
	Delete
	MoveSource
	MoveDest
)

func (k SegmentKind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case MoveSource:
		return "move_source"
	case MoveDest:
		return "move_dest"
	default:
		return "unknown"
	}
}

// Segment is a contiguous piece of output text labeled with its kind. Text
// is always non-empty.
type Segment struct {
	Text string
	Kind SegmentKind
}

// AnnotatedParagraph is one row of the engine's output stream.
type AnnotatedParagraph struct {
	Segments    []Segment
	IsHeading   bool
	IsTableRow  bool
}

// Statistics accumulates word counts by change category. Each counts
// whitespace-separated tokens of emitted segment text exactly once, at
// emission time.
type Statistics struct {
	Insertions int
	Deletions  int
	Moves      int
	Unchanged  int
}

// Total returns the sum of all four counters: the total word count of
// every emitted segment.
func (s Statistics) Total() int {
	return s.Insertions + s.Deletions + s.Moves + s.Unchanged
}

// ChangePercent returns the percentage of total words that were inserted,
// deleted, or moved. Returns 0 when Total() is 0.
func (s Statistics) ChangePercent() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	changed := s.Insertions + s.Deletions + s.Moves
	return float64(changed) * 100 / float64(total)
}

// Add accumulates other's counters into s.
func (s *Statistics) Add(other Statistics) {
	s.Insertions += other.Insertions
	s.Deletions += other.Deletions
	s.Moves += other.Moves
	s.Unchanged += other.Unchanged
}

// AlignKind labels one AlignmentRecord.
type AlignKind int

const (
	AlignMatch AlignKind = iota
	AlignInsert
	AlignDelete
)

// AlignmentRecord maps one original paragraph index to one modified
// paragraph index (or -1, for insert/delete).
type AlignmentRecord struct {
	OrigIdx int
	ModIdx  int
	Kind    AlignKind
}

// Paragraph is an ordered unit of document text with heading metadata. The
// engine never mutates a Paragraph; it only reads Text.
type Paragraph struct {
	Text      string
	IsHeading bool
}

// Cell is one table cell. Text may contain embedded newlines; the engine
// does not split a cell on them, and the word differ treats them as
// ordinary whitespace.
type Cell struct {
	Text string
	Row  int
	Col  int
}

// Row is an ordered sequence of cells.
type Row []Cell

// Table is an ordered sequence of rows.
type Table []Row

// Text returns the cells of the row joined by " | ", used as the row's
// similarity/alignment proxy per spec.
func (r Row) Text() string {
	return joinCells(r)
}

func joinCells(r Row) string {
	if len(r) == 0 {
		return ""
	}
	out := r[0].Text
	for _, c := range r[1:] {
		out += " | " + c.Text
	}
	return out
}

// DocumentView is the read-only input adapter contract: an ordered
// paragraph list, an ordered table list, and an ordered section list.
// Adapters (e.g. pkg/jsondoc) implement this over whatever source format
// they parse; the engine never depends on a concrete format.
type DocumentView interface {
	Paragraphs() []Paragraph
	Tables() []Table
	Sections() []SectionView
}

// SectionView exposes the four optional header/footer paragraph lists for
// one document section. A nil/empty list means that region is absent on
// this side and is skipped silently by the orchestrator.
type SectionView interface {
	Header() []Paragraph
	FirstPageHeader() []Paragraph
	Footer() []Paragraph
	FirstPageFooter() []Paragraph
}
