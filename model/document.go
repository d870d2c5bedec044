package model

// BlockType represents the type of a document block.
type BlockType int

const (
	BlockTypeUnknown BlockType = iota
	BlockTypeParagraph
	BlockTypeTable
)

func (bt BlockType) String() string {
	switch bt {
	case BlockTypeParagraph:
		return "Paragraph"
	case BlockTypeTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Block is the interface for top-level document content: a paragraph or a
// table, in document order.
type Block interface {
	Type() BlockType
}

// Document represents a complete document: an ordered sequence of blocks
// plus one or more section records.
//
// A Document is exclusively owned by one pipeline invocation for its
// lifetime: created on load, mutated in place by successive stages,
// persisted once, then discarded.
type Document struct {
	Blocks   []Block
	Sections []*Section
}

// Section holds page-level settings for a run of blocks. Dimensions are in
// centimeters.
type Section struct {
	PageWidth  float64
	PageHeight float64
	Margins    Margins

	// HeaderRef and FooterRef are the relationship IDs of the header and
	// footer parts attached to this section, or empty when absent.
	HeaderRef string
	FooterRef string

	// PageNumbers requests a centered page-number field in the section
	// footer. The adapter materializes the footer part on write.
	PageNumbers bool
}

// Margins holds the four page margins in centimeters.
type Margins struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// NewDocument creates a new empty document with a single default section.
func NewDocument() *Document {
	return &Document{
		Sections: []*Section{{
			// ISO A4 portrait.
			PageWidth:  21.0,
			PageHeight: 29.7,
		}},
	}
}

// AppendBlock adds a block to the end of the document.
func (d *Document) AppendBlock(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// InsertBlockBefore inserts a block before index i. Inserting at
// len(d.Blocks) appends.
func (d *Document) InsertBlockBefore(i int, b Block) {
	if i < 0 {
		i = 0
	}
	if i > len(d.Blocks) {
		i = len(d.Blocks)
	}
	d.Blocks = append(d.Blocks, nil)
	copy(d.Blocks[i+1:], d.Blocks[i:])
	d.Blocks[i] = b
}

// InsertBlockAfter inserts a block immediately after index i.
func (d *Document) InsertBlockAfter(i int, b Block) {
	d.InsertBlockBefore(i+1, b)
}

// RemoveBlock removes the block at index i.
func (d *Document) RemoveBlock(i int) {
	if i < 0 || i >= len(d.Blocks) {
		return
	}
	d.Blocks = append(d.Blocks[:i], d.Blocks[i+1:]...)
}

// ParagraphAt returns the paragraph at block index i, or nil when the index
// is out of range or the block is not a paragraph.
func (d *Document) ParagraphAt(i int) *Paragraph {
	if i < 0 || i >= len(d.Blocks) {
		return nil
	}
	p, _ := d.Blocks[i].(*Paragraph)
	return p
}

// TableAt returns the table at block index i, or nil when the index is out
// of range or the block is not a table.
func (d *Document) TableAt(i int) *Table {
	if i < 0 || i >= len(d.Blocks) {
		return nil
	}
	t, _ := d.Blocks[i].(*Table)
	return t
}

// Paragraphs returns all top-level paragraphs in document order. Paragraphs
// inside table cells are not included.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.Blocks {
		if p, ok := b.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// AllParagraphs returns every paragraph in the document, including those
// nested inside table cells, in document order.
func (d *Document) AllParagraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.Blocks {
		switch blk := b.(type) {
		case *Paragraph:
			out = append(out, blk)
		case *Table:
			for _, row := range blk.Rows {
				for _, cell := range row {
					out = append(out, cell.Paragraphs...)
				}
			}
		}
	}
	return out
}

// TableCount returns the number of top-level tables.
func (d *Document) TableCount() int {
	n := 0
	for _, b := range d.Blocks {
		if b.Type() == BlockTypeTable {
			n++
		}
	}
	return n
}
