package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc/classify"
	"github.com/gost-tools/gostdoc/model"
	"github.com/gost-tools/gostdoc/normalize"
	"github.com/gost-tools/gostdoc/structure"
	"github.com/gost-tools/gostdoc/style"
)

// Pipeline runs the formatting stages over documents. One Pipeline may be
// shared across goroutines: its configuration is immutable and each Run
// call owns its document exclusively.
type Pipeline struct {
	log *zap.Logger
	cfg style.Config
}

// New creates a Pipeline with the given configuration. A nil logger
// disables logging.
func New(cfg style.Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{log: log, cfg: cfg}
}

// Run mutates the document in place through every formatting stage and
// returns advisory statistics. On error the document must be discarded,
// never persisted: partial output is not permitted.
func (pl *Pipeline) Run(doc *model.Document) (stats Statistics, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("formatting stage panicked: %v", r)
		}
	}()

	if doc == nil {
		return Statistics{}, fmt.Errorf("nil document")
	}

	pl.log.Info("applying page setup")
	pl.pageSetup(doc)

	boundary := classify.Boundary(doc)
	pl.log.Info("title boundary resolved", zap.Int("boundary", boundary))

	pl.log.Info("classifying and styling paragraphs")
	pl.applyStyles(doc, boundary)

	pl.log.Info("editing document structure")
	structure.New(pl.log, pl.cfg).Apply(doc, boundary)

	pl.log.Info("normalizing text")
	normalize.New(pl.log).Apply(doc, boundary)

	stats = Collect(doc, boundary)
	stats.Log(pl.log)

	return stats, nil
}

// pageSetup applies the configured margins to every section and requests
// page numbering in the footer.
func (pl *Pipeline) pageSetup(doc *model.Document) {
	for _, s := range doc.Sections {
		s.Margins = pl.cfg.Margins
		s.PageNumbers = true
	}
}

// applyStyles classifies every in-scope paragraph and applies the style
// rule table. Classification is computed fresh here and thrown away: the
// structural editor that runs next invalidates it.
func (pl *Pipeline) applyStyles(doc *model.Document, boundary int) {
	cls := classify.New(doc)
	for i := boundary; i < len(doc.Blocks); i++ {
		p := doc.ParagraphAt(i)
		if p == nil {
			continue
		}
		style.Apply(p, cls.Classify(i, p), pl.cfg)
	}
}
