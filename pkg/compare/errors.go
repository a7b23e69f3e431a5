package compare

import "fmt"

// InvariantError marks an internal invariant violation (spec §7, kind 3):
// an empty segment, a statistics balance check or a move pairing check
// that failed. These are
// never expected in correct input and are never swallowed — they indicate
// an engine bug, not a document problem.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("compare: invariant violated (%s): %s", e.Invariant, e.Detail)
}

// CallerError marks an unsupported input shape handed to Compare, surfaced
// immediately rather than processed (spec §7, kind 1).
type CallerError struct {
	Detail string
}

func (e *CallerError) Error() string {
	return fmt.Sprintf("compare: invalid input: %s", e.Detail)
}

// Result is what Compare returns: either a successful stream+stats, or a
// document-level failure. Region-level failures (spec §7, kind 2) never
// surface here — they're skipped silently during orchestration.
type Result struct {
	Success    bool
	Paragraphs []AnnotatedParagraph
	Stats      Statistics
	Err        error
}
