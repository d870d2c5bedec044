package model

// BreakType represents an explicit break carried by a run.
type BreakType int

const (
	BreakNone BreakType = iota
	BreakLine
	BreakPage
)

// Font holds run-level character formatting. Size is in points; a zero Size
// means "not set". The pipeline rewrites Name, Size and Bold; the remaining
// fields are carried through so runs it never touches keep their look.
type Font struct {
	Name      string
	Size      float64
	Bold      bool
	Italic    bool
	Underline string
	Strike    bool
	Color     string
	Highlight string
}

// Run represents a contiguous text span sharing one style record. A run may
// instead (or additionally) carry a non-text payload preserved verbatim from
// the source document: an embedded drawing, a math block or a field code.
type Run struct {
	Text string
	Font Font

	// Drawing holds the raw inner XML of an embedded w:drawing element,
	// preserved byte-for-byte so images survive the round trip untouched.
	Drawing string

	// Math holds the raw XML of an m:oMath block, preserved verbatim.
	Math string

	// Field holds a field instruction code such as "PAGE" when the run is a
	// field rather than literal text.
	Field string

	// Break marks an explicit line or page break carried by the run.
	Break BreakType

	// HyperlinkID is the relationship ID of the enclosing hyperlink, or
	// empty for plain runs. Consecutive runs sharing a HyperlinkID are
	// regrouped into one hyperlink element on write.
	HyperlinkID string
}

// IsText reports whether the run is a plain text span (possibly empty) with
// no embedded payload.
func (r *Run) IsText() bool {
	return r.Drawing == "" && r.Math == "" && r.Field == "" && r.Break == BreakNone
}

// Clone returns a copy of the run sharing no mutable state with the
// original.
func (r *Run) Clone() *Run {
	c := *r
	return &c
}
