package pipeline

import (
	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc/classify"
	"github.com/gost-tools/gostdoc/model"
)

// Statistics summarizes what the pipeline saw and did. It is advisory
// output only, not part of the functional contract.
type Statistics struct {
	Categories map[model.Category]int
	Figures    int
	Tables     int
	Formulas   int
}

// Collect gathers statistics over the in-scope part of the document. It is
// read-only.
func Collect(doc *model.Document, boundary int) Statistics {
	st := Statistics{Categories: make(map[model.Category]int)}
	cls := classify.New(doc)

	for i := boundary; i < len(doc.Blocks); i++ {
		switch b := doc.Blocks[i].(type) {
		case *model.Paragraph:
			cat := cls.Classify(i, b)
			st.Categories[cat]++
			if b.HasImage() {
				st.Figures++
			}
			if cat == model.CategoryFormula {
				st.Formulas++
			}
		case *model.Table:
			st.Tables++
		}
	}

	return st
}

// Log writes the summary through the given logger.
func (st Statistics) Log(log *zap.Logger) {
	fields := []zap.Field{
		zap.Int("figures", st.Figures),
		zap.Int("tables", st.Tables),
		zap.Int("formulas", st.Formulas),
	}
	for cat, n := range st.Categories {
		fields = append(fields, zap.Int(cat.String(), n))
	}
	log.Info("formatting statistics", fields...)
}
