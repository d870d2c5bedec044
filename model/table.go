package model

import "strings"

// Table represents a table: a grid of cells organized in rows.
type Table struct {
	Rows [][]*Cell

	// StyleID is the named table style from the source document.
	StyleID string

	// Props and Grid carry the source table's properties and column grid as
	// raw XML. The pipeline does not reformat tables, so both round-trip
	// verbatim. RowProps holds the per-row properties, parallel to Rows.
	Props    string
	Grid     string
	RowProps []string
}

func (t *Table) Type() BlockType { return BlockTypeTable }

// Cell represents a single table cell containing its own paragraphs.
type Cell struct {
	Paragraphs []*Paragraph

	// GridSpan is the number of grid columns the cell spans (1 = no span).
	GridSpan int

	// VMergeContinue marks a cell that continues a vertical merge started
	// in the row above.
	VMergeContinue bool

	// Props carries the source cell's properties as raw XML.
	Props string
}

// NewTable creates a table with the given dimensions, every cell holding
// one empty paragraph.
func NewTable(rows, cols int) *Table {
	t := &Table{Rows: make([][]*Cell, rows)}
	for i := 0; i < rows; i++ {
		t.Rows[i] = make([]*Cell, cols)
		for j := 0; j < cols; j++ {
			t.Rows[i][j] = NewCell()
		}
	}
	return t
}

// NewCell creates a cell holding a single empty paragraph.
func NewCell() *Cell {
	return &Cell{
		Paragraphs: []*Paragraph{{}},
		GridSpan:   1,
	}
}

// Text returns a plain text representation of the table, cells separated by
// tabs and rows by newlines.
func (t *Table) Text() string {
	var sb strings.Builder
	for i, row := range t.Rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteString("\t")
			}
			sb.WriteString(cell.Text())
		}
	}
	return sb.String()
}

// Text returns the cell's text: its paragraphs' text joined by newlines.
func (c *Cell) Text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}
