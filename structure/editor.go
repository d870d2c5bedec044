package structure

import (
	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc/model"
	"github.com/gost-tools/gostdoc/style"
)

// Editor mutates document structure according to the formatting rules.
// Construct with New.
type Editor struct {
	log *zap.Logger
	cfg style.Config
}

// New creates an Editor. A nil logger disables logging.
func New(log *zap.Logger, cfg style.Config) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{log: log, cfg: cfg}
}

// Apply runs all structural edits over the in-scope part of the document,
// in a fixed order: captions, page breaks, list punctuation, blank
// pruning. Blocks below the title boundary are never touched.
func (e *Editor) Apply(doc *model.Document, boundary int) {
	e.reconcileCaptions(doc, boundary)
	e.placePageBreaks(doc, boundary)
	e.enforceListPunctuation(doc, boundary)
	e.pruneBlankParagraphs(doc, boundary)
}
