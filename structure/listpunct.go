package structure

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc/classify"
	"github.com/gost-tools/gostdoc/model"
)

// terminalPunctuation is the set of existing terminal characters a list
// item may end with; any of them is replaced rather than appended to.
const terminalPunctuation = ".;,:!"

// enforceListPunctuation groups consecutive list items into maximal runs
// (blank paragraphs between items do not break a run) and fixes their
// terminal punctuation: every item but the last ends with a semicolon, the
// last with a period. A single-item run ends with a period. Items inside
// the bibliography range are left alone; bibliography entries have their
// own punctuation conventions.
func (e *Editor) enforceListPunctuation(doc *model.Document, boundary int) {
	cls := classify.New(doc)

	i := boundary
	for i < len(doc.Blocks) {
		p := doc.ParagraphAt(i)
		if p == nil || cls.InBibliography(i) || cls.Classify(i, p) != model.CategoryListItem {
			i++
			continue
		}

		items := []int{i}
		j := i + 1
		for j < len(doc.Blocks) {
			q := doc.ParagraphAt(j)
			if q == nil {
				break
			}
			cat := cls.Classify(j, q)
			if cat == model.CategoryEmpty {
				j++
				continue
			}
			if cat == model.CategoryListItem && !cls.InBibliography(j) {
				items = append(items, j)
				j++
				continue
			}
			break
		}

		for k, idx := range items {
			term := ';'
			if k == len(items)-1 {
				term = '.'
			}
			e.setTerminal(doc.ParagraphAt(idx), term)
		}
		e.log.Debug("list punctuation enforced", zap.Int("items", len(items)), zap.Int("start", i))

		i = j
	}
}

// setTerminal makes the paragraph end with the given punctuation mark. An
// existing terminal from the replaceable set is swapped in place; otherwise
// the mark is appended. When the paragraph's tail is a non-text element
// (hyperlink, field, image), a new trailing text run is appended after it
// instead of mutating the element.
func (e *Editor) setTerminal(p *model.Paragraph, term rune) {
	if p == nil {
		return
	}

	// Find the last run carrying any content.
	last := -1
	for i := len(p.Runs) - 1; i >= 0; i-- {
		r := p.Runs[i]
		if r.Text != "" || !r.IsText() {
			last = i
			break
		}
	}
	if last < 0 {
		return
	}

	r := p.Runs[last]
	if r.Text == "" || !r.IsText() || r.HyperlinkID != "" {
		p.AddRun(string(term))
		return
	}

	runes := []rune(r.Text)
	end := len(runes)
	for end > 0 && unicode.IsSpace(runes[end-1]) {
		end--
	}
	if end == 0 {
		p.AddRun(string(term))
		return
	}

	if strings.ContainsRune(terminalPunctuation, runes[end-1]) {
		runes[end-1] = term
	} else {
		tail := append([]rune{term}, runes[end:]...)
		runes = append(runes[:end], tail...)
	}
	r.Text = string(runes)
}
