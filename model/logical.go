package model

// LogicalText is a paragraph's logical text materialized as runes together
// with a position-to-run map. Edits keep the map consistent so the result
// can be written back to the original runs without merging differently
// styled spans: replacement text always lands in the run containing the
// edit's start position, and trailing runs simply lose their part of a
// range that spans a boundary.
type LogicalText struct {
	para  *Paragraph
	Runes []rune
	runOf []int // runOf[i] = index into para.Runs owning Runes[i]
}

// NewLogicalText materializes the logical text of a paragraph.
func NewLogicalText(p *Paragraph) *LogicalText {
	lt := &LogicalText{para: p}
	for i, r := range p.Runs {
		for _, ch := range r.Text {
			lt.Runes = append(lt.Runes, ch)
			lt.runOf = append(lt.runOf, i)
		}
	}
	return lt
}

// String returns the current logical text.
func (lt *LogicalText) String() string {
	return string(lt.Runes)
}

// Len returns the logical text length in runes.
func (lt *LogicalText) Len() int {
	return len(lt.Runes)
}

// Replace substitutes Runes[start:end] with repl. The replacement runes are
// assigned to the run owning position start.
func (lt *LogicalText) Replace(start, end int, repl string) {
	if start < 0 || end > len(lt.Runes) || start > end {
		return
	}

	owner := 0
	switch {
	case start < len(lt.Runes):
		owner = lt.runOf[start]
	case len(lt.runOf) > 0:
		owner = lt.runOf[len(lt.runOf)-1]
	}

	rr := []rune(repl)
	newRunes := make([]rune, 0, len(lt.Runes)-(end-start)+len(rr))
	newRunes = append(newRunes, lt.Runes[:start]...)
	newRunes = append(newRunes, rr...)
	newRunes = append(newRunes, lt.Runes[end:]...)

	newRunOf := make([]int, 0, len(newRunes))
	newRunOf = append(newRunOf, lt.runOf[:start]...)
	for range rr {
		newRunOf = append(newRunOf, owner)
	}
	newRunOf = append(newRunOf, lt.runOf[end:]...)

	lt.Runes = newRunes
	lt.runOf = newRunOf
}

// SetRune overwrites a single rune in place.
func (lt *LogicalText) SetRune(i int, ch rune) {
	if i >= 0 && i < len(lt.Runes) {
		lt.Runes[i] = ch
	}
}

// WriteBack distributes the logical text over the paragraph's runs. Runs
// that lost all their runes end up with empty text; their style record and
// any non-text payload are kept.
func (lt *LogicalText) WriteBack() {
	parts := make(map[int][]rune, len(lt.para.Runs))
	for i, ch := range lt.Runes {
		parts[lt.runOf[i]] = append(parts[lt.runOf[i]], ch)
	}
	for i, r := range lt.para.Runs {
		r.Text = string(parts[i])
	}
}
