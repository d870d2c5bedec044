package structure

import (
	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc/classify"
	"github.com/gost-tools/gostdoc/model"
)

// placePageBreaks ensures section headings, appendix headings and level-1
// numbered headings start a new page. Blank paragraphs sitting directly
// above such a heading are deleted first (an explicit break makes them
// pointless), indices are re-resolved, and the page-break-before flag is
// set on the heading itself.
func (e *Editor) placePageBreaks(doc *model.Document, boundary int) {
	cls := classify.New(doc)

	for i := boundary; i < len(doc.Blocks); i++ {
		p := doc.ParagraphAt(i)
		if p == nil {
			continue
		}
		if !cls.Classify(i, p).IsPageBreakHeading() {
			continue
		}

		removed := 0
		for i-1 >= boundary {
			prev := doc.ParagraphAt(i - 1)
			if prev == nil || !prev.IsEmpty() {
				break
			}
			doc.RemoveBlock(i - 1)
			i--
			removed++
		}
		if removed > 0 {
			// Removal shifted every index; classification must be redone.
			cls = classify.New(doc)
			e.log.Debug("blank paragraphs removed above heading",
				zap.Int("count", removed), zap.Int("heading", i))
		}

		p.PageBreakBefore = true
	}
}
