package structure

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc/model"
	"github.com/gost-tools/gostdoc/style"
)

var (
	figureCaptionPrefix = regexp.MustCompile(`^\s*Рисунок\s*\d*\s*[-–—]`)
	tableCaptionPrefix  = regexp.MustCompile(`^\s*Таблица\s+\d+\s*[-–—]`)
)

// reconcileCaptions renumbers or inserts figure and table captions.
//
// Figures: every image-bearing paragraph bumps the figure counter; when the
// following paragraph already looks like a figure caption its number is
// rewritten to the counter (and its dash glyph normalized), otherwise a new
// centered caption is inserted right after the image.
//
// Tables get the same locate-and-fix treatment against the paragraph
// immediately above the table, where the caption belongs. The original
// behaviour appended table captions at the end of the document
// unconditionally; see DESIGN.md for the recorded divergence.
func (e *Editor) reconcileCaptions(doc *model.Document, boundary int) {
	figures, tables := 0, 0

	for i := boundary; i < len(doc.Blocks); i++ {
		switch b := doc.Blocks[i].(type) {
		case *model.Paragraph:
			if !b.HasImage() {
				continue
			}
			figures++
			if next := doc.ParagraphAt(i + 1); next != nil && figureCaptionPrefix.MatchString(next.Text()) {
				e.renumberCaption(next, figureCaptionPrefix, "Рисунок", figures)
				continue
			}
			caption := e.newCaption(fmt.Sprintf("Рисунок %d – ", figures), model.CategoryFigureCaption)
			doc.InsertBlockAfter(i, caption)
			e.log.Debug("figure caption inserted", zap.Int("figure", figures), zap.Int("index", i+1))
			i++

		case *model.Table:
			tables++
			if prev := doc.ParagraphAt(i - 1); i-1 >= boundary && prev != nil && tableCaptionPrefix.MatchString(prev.Text()) {
				e.renumberCaption(prev, tableCaptionPrefix, "Таблица", tables)
				continue
			}
			caption := e.newCaption(fmt.Sprintf("Таблица %d – ", tables), model.CategoryTableCaption)
			doc.InsertBlockBefore(i, caption)
			e.log.Debug("table caption inserted", zap.Int("table", tables), zap.Int("index", i))
			i++
		}
	}
}

// renumberCaption rewrites an existing caption prefix to carry the given
// number and a normalized en-dash, leaving the descriptive tail and its
// run styling untouched.
func (e *Editor) renumberCaption(p *model.Paragraph, prefix *regexp.Regexp, word string, number int) {
	text := p.Text()
	loc := prefix.FindStringIndex(text)
	if loc == nil {
		return
	}
	start := utf8.RuneCountInString(text[:loc[0]])
	end := utf8.RuneCountInString(text[:loc[1]])

	lt := model.NewLogicalText(p)
	lt.Replace(start, end, fmt.Sprintf("%s %d –", word, number))
	lt.WriteBack()
}

// newCaption builds a caption paragraph already styled for its category.
func (e *Editor) newCaption(text string, cat model.Category) *model.Paragraph {
	p := &model.Paragraph{}
	p.AddRun(text)
	style.Apply(p, cat, e.cfg)
	return p
}
