package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gost-tools/gostdoc/model"
)

// sectionHeadings is the closed set of section heading texts, compared
// against the trimmed, upper-cased paragraph text.
var sectionHeadings = map[string]bool{
	"ВВЕДЕНИЕ":                       true,
	"ЗАКЛЮЧЕНИЕ":                     true,
	"СПИСОК ИСПОЛЬЗОВАННЫХ ИСТОЧНИКОВ": true,
	"БИБЛИОГРАФИЧЕСКИЙ СПИСОК":       true,
	"СПИСОК ЛИТЕРАТУРЫ":              true,
	"СОДЕРЖАНИЕ":                     true,
	"ОГЛАВЛЕНИЕ":                     true,
	"АННОТАЦИЯ":                      true,
	"РЕФЕРАТ":                        true,
}

var (
	appendixPattern  = regexp.MustCompile(`^ПРИЛОЖЕНИЕ\s+[А-ЯЁA-Z]`)
	heading1Pattern  = regexp.MustCompile(`^\d+\.?\s+\S`)
	heading2Pattern  = regexp.MustCompile(`^\d+\.\d+`)
	heading3Pattern  = regexp.MustCompile(`^\d+\.\d+\.\d+`)
	figurePattern    = regexp.MustCompile(`^Рисунок\s*\d*\s*[-–—]`)
	tablePattern     = regexp.MustCompile(`^Таблица\s+\d+\s*[-–—]`)
	formulaTail      = regexp.MustCompile(`\(\d+(\.\d+)?\)\s*$`)
	numberedItem     = regexp.MustCompile(`^\d+[.)]\s`)
	letteredItem     = regexp.MustCompile(`^[a-zа-яё][.)]\s`)
	headingTrimRegex = regexp.MustCompile(`^\d+\.?\s+`)
)

// bulletRunes are characters that introduce a bulleted list item.
const bulletRunes = "-–—•*●◦·"

// Classifier assigns a category to each paragraph of one block-sequence
// snapshot. It must be rebuilt after any structural edit.
type Classifier struct {
	bibStart int // block index of the first bibliography entry, -1 if none
	bibEnd   int // block index one past the last bibliography entry
}

// New builds a classifier for the document's current block sequence,
// locating the bibliography range (between the bibliography heading and the
// next appendix heading, or the document end).
func New(doc *model.Document) *Classifier {
	c := &Classifier{bibStart: -1, bibEnd: -1}

	for i, b := range doc.Blocks {
		p, ok := b.(*model.Paragraph)
		if !ok {
			continue
		}
		upper := strings.ToUpper(strings.TrimSpace(p.Text()))

		if c.bibStart < 0 {
			if isBibliographyHeading(upper) {
				c.bibStart = i + 1
				c.bibEnd = len(doc.Blocks)
			}
			continue
		}
		if appendixPattern.MatchString(upper) {
			c.bibEnd = i
			break
		}
	}

	return c
}

// Classify returns the category of the paragraph at block index i. The
// block index is only consulted for the bibliography range; everything else
// derives from the paragraph alone.
func (c *Classifier) Classify(i int, p *model.Paragraph) model.Category {
	if p.IsEmpty() {
		return model.CategoryEmpty
	}

	text := strings.TrimSpace(p.Text())
	upper := strings.ToUpper(text)

	if sectionHeadings[upper] {
		return model.CategorySectionHeading
	}
	if appendixPattern.MatchString(upper) {
		return model.CategoryAppendixHeading
	}

	switch {
	case heading3Pattern.MatchString(text):
		return model.CategoryHeading3
	case heading2Pattern.MatchString(text):
		return model.CategoryHeading2
	case isNumberedHeading1(text):
		return model.CategoryHeading1
	}

	if figurePattern.MatchString(text) {
		return model.CategoryFigureCaption
	}
	if tablePattern.MatchString(text) {
		return model.CategoryTableCaption
	}
	if isFormulaLine(text) {
		return model.CategoryFormula
	}
	if isListItem(p, text) {
		return model.CategoryListItem
	}
	if c.bibStart >= 0 && i >= c.bibStart && i < c.bibEnd {
		return model.CategoryBibliography
	}

	return model.CategoryRegular
}

// InBibliography reports whether block index i lies inside the detected
// bibliography range.
func (c *Classifier) InBibliography(i int) bool {
	return c.bibStart >= 0 && i >= c.bibStart && i < c.bibEnd
}

func isBibliographyHeading(upper string) bool {
	return strings.Contains(upper, "СПИСОК ИСПОЛЬЗОВАННЫХ ИСТОЧНИКОВ") ||
		strings.Contains(upper, "БИБЛИОГРАФИЧЕСКИЙ СПИСОК") ||
		strings.Contains(upper, "СПИСОК ЛИТЕРАТУРЫ")
}

// isNumberedHeading1 matches level-1 numbered headings such as
// "1 ОБЗОР ЛИТЕРАТУРЫ". The body after the number must be upper-case:
// that is what separates a heading from a numbered list item like
// "1. Первый пункт", which falls through to the list rules.
func isNumberedHeading1(text string) bool {
	if heading2Pattern.MatchString(text) {
		return false
	}
	if !heading1Pattern.MatchString(text) {
		return false
	}
	body := headingTrimRegex.ReplaceAllString(text, "")
	hasLetter := false
	for _, r := range body {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if unicode.IsLower(r) {
			return false
		}
	}
	return hasLetter
}

// isFormulaLine matches display-formula lines: a trailing equation number
// like "(3)" or "(2.1)", or an explanation line starting with "где".
func isFormulaLine(text string) bool {
	if formulaTail.MatchString(text) {
		return true
	}
	return strings.HasPrefix(text, "где ") || strings.HasPrefix(text, "где ")
}

func isListItem(p *model.Paragraph, text string) bool {
	if p.HasNumbering() {
		return true
	}
	if numberedItem.MatchString(text) || letteredItem.MatchString(strings.ToLower(text)) {
		return true
	}
	r := []rune(text)
	if len(r) >= 2 && strings.ContainsRune(bulletRunes, r[0]) && unicode.IsSpace(r[1]) {
		return true
	}
	return false
}
