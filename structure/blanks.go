package structure

import (
	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc/model"
)

// pruneBlankParagraphs collapses every run of two or more consecutive
// empty paragraphs (no text, no image) down to a single one. An empty
// paragraph carrying an embedded image is never considered blank and is
// never deleted.
func (e *Editor) pruneBlankParagraphs(doc *model.Document, boundary int) {
	removed := 0

	i := boundary
	for i < len(doc.Blocks) {
		p := doc.ParagraphAt(i)
		if p == nil || !p.IsEmpty() {
			i++
			continue
		}
		// Keep the first blank, remove the rest of the streak.
		for i+1 < len(doc.Blocks) {
			q := doc.ParagraphAt(i + 1)
			if q == nil || !q.IsEmpty() {
				break
			}
			doc.RemoveBlock(i + 1)
			removed++
		}
		i++
	}

	if removed > 0 {
		e.log.Debug("blank paragraphs pruned", zap.Int("count", removed))
	}
}
