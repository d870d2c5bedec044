package normalize

import (
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/gost-tools/gostdoc/classify"
	"github.com/gost-tools/gostdoc/model"
)

// Normalizer applies the ordered text-transform passes. The zero value is
// not usable; construct with New.
type Normalizer struct {
	log *zap.Logger
}

// New creates a Normalizer. A nil logger disables logging.
func New(log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{log: log}
}

// Apply normalizes every in-scope paragraph of the document, starting at
// the title boundary. It must run after all structural edits: the
// classifier built here stays valid for the whole walk because
// normalization never changes paragraph order or count.
func (n *Normalizer) Apply(doc *model.Document, boundary int) {
	cls := classify.New(doc)
	for i := boundary; i < len(doc.Blocks); i++ {
		p := doc.ParagraphAt(i)
		if p == nil {
			continue
		}
		cat := cls.Classify(i, p)
		if cat == model.CategoryEmpty {
			continue
		}
		n.Paragraph(p, cat)
	}
}

// Paragraph runs the full pass sequence over one paragraph. The order is
// fixed and not commutative: spacing must settle before dashes, dashes
// before colons, and the within-run passes before quote unification.
func (n *Normalizer) Paragraph(p *model.Paragraph, cat model.Category) {
	// Pass 0: Unicode NFC, so that composed and decomposed input compare
	// equal for every later pass. NFC is a fixed point.
	for _, r := range p.Runs {
		if r.Text != "" {
			r.Text = norm.NFC.String(r.Text)
		}
	}

	// Pass 1: space collapse (within runs, then across run boundaries).
	if collapseSpaces(p) {
		n.log.Debug("pass applied", zap.String("pass", "spaces"))
	}

	// Passes 2-3 share one logical-text materialization.
	lt := model.NewLogicalText(p)
	dashed := n.dashes(lt)
	coloned := n.colons(lt)
	if dashed || coloned {
		lt.WriteBack()
		if dashed {
			n.log.Debug("pass applied", zap.String("pass", "dashes"))
		}
		if coloned {
			n.log.Debug("pass applied", zap.String("pass", "colons"))
		}
	}

	// Passes 4-5 are confined to single runs.
	if n.expandAbbreviations(p) {
		n.log.Debug("pass applied", zap.String("pass", "abbreviations"))
	}
	if insertNonBreakingSpaces(p) {
		n.log.Debug("pass applied", zap.String("pass", "nbsp"))
	}

	// Passes 6-7 need the final logical text.
	lt = model.NewLogicalText(p)
	quoted := n.quotes(lt)
	decapped := cat == model.CategoryListItem && decapitalizeListItem(lt)
	if quoted || decapped {
		lt.WriteBack()
		if quoted {
			n.log.Debug("pass applied", zap.String("pass", "quotes"))
		}
		if decapped {
			n.log.Debug("pass applied", zap.String("pass", "listcase"))
		}
	}
}
