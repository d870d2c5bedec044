package model

import "strings"

// Alignment represents horizontal paragraph alignment.
type Alignment int

const (
	AlignUnset Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "unset"
	}
}

// Indent holds paragraph indentation in centimeters. A negative FirstLine
// combined with a positive Left produces a hanging indent. Set distinguishes
// explicit values from inherited ones: unset indentation is not written
// back, so paragraphs the pipeline never touches keep whatever their named
// style provides.
type Indent struct {
	Set       bool
	FirstLine float64
	Left      float64
	Right     float64
}

// Spacing holds paragraph spacing. Before and After are in points; Line is
// a line-spacing multiplier (1.0 = single, 1.5 = one-and-a-half). Unset
// spacing is not written back.
type Spacing struct {
	Set    bool
	Before float64
	After  float64
	Line   float64
}

// Paragraph represents a paragraph: an ordered sequence of runs plus
// paragraph-level formatting.
type Paragraph struct {
	Runs []*Run

	Alignment       Alignment
	Indent          Indent
	Spacing         Spacing
	PageBreakBefore bool

	// StyleID is the named style reference from the source document, kept
	// for diagnostics. The pipeline formats by direct properties, not named
	// styles.
	StyleID string

	// NumID and NumLevel carry native list-numbering metadata when the
	// source paragraph is part of a numbered/bulleted list definition.
	// An empty NumID means no native numbering.
	NumID    string
	NumLevel int
}

func (p *Paragraph) Type() BlockType { return BlockTypeParagraph }

// Text returns the paragraph's logical text: the ordered concatenation of
// its runs' text.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// HasText reports whether the paragraph contains any non-whitespace text.
func (p *Paragraph) HasText() bool {
	return strings.TrimSpace(p.Text()) != ""
}

// HasImage reports whether any run carries an embedded image.
func (p *Paragraph) HasImage() bool {
	for _, r := range p.Runs {
		if r.Drawing != "" {
			return true
		}
	}
	return false
}

// HasNumbering reports whether the paragraph carries native list-numbering
// metadata.
func (p *Paragraph) HasNumbering() bool {
	return p.NumID != ""
}

// IsEmpty reports whether the paragraph has neither text nor an embedded
// image.
func (p *Paragraph) IsEmpty() bool {
	return !p.HasText() && !p.HasImage()
}

// AddRun appends a new text run and returns it.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text}
	p.Runs = append(p.Runs, r)
	return r
}

// InsertRun inserts a run at position i. Inserting at len(p.Runs) appends.
func (p *Paragraph) InsertRun(i int, r *Run) {
	if i < 0 {
		i = 0
	}
	if i > len(p.Runs) {
		i = len(p.Runs)
	}
	p.Runs = append(p.Runs, nil)
	copy(p.Runs[i+1:], p.Runs[i:])
	p.Runs[i] = r
}

// RemoveRun removes the run at position i.
func (p *Paragraph) RemoveRun(i int) {
	if i < 0 || i >= len(p.Runs) {
		return
	}
	p.Runs = append(p.Runs[:i], p.Runs[i+1:]...)
}

// LastTextRun returns the index of the last run containing text, or -1 when
// every run is empty of text. Runs holding only images, fields or breaks are
// skipped.
func (p *Paragraph) LastTextRun() int {
	for i := len(p.Runs) - 1; i >= 0; i-- {
		if p.Runs[i].Text != "" {
			return i
		}
	}
	return -1
}
