package style

import (
	"strings"

	"github.com/gost-tools/gostdoc/model"
)

// ParagraphStyle is the paragraph-level formatting produced by the rule
// table.
type ParagraphStyle struct {
	Alignment       model.Alignment
	Indent          model.Indent
	Spacing         model.Spacing
	PageBreakBefore bool
}

// RunStyle is the run-level formatting produced by the rule table, applied
// to every run of the paragraph uniformly.
type RunStyle struct {
	FontName string
	FontSize float64
	Bold     bool
}

// For returns the styles for a category. The whereClause flag selects the
// explanation-line variant of a formula ("где ..." lines are justified with
// an indent instead of centered). The second return is false for Empty
// paragraphs, which are left untouched.
func For(cat model.Category, whereClause bool, cfg Config) (ParagraphStyle, RunStyle, bool) {
	if cat == model.CategoryEmpty {
		return ParagraphStyle{}, RunStyle{}, false
	}

	// Defaults shared by every non-empty category.
	ps := ParagraphStyle{
		Alignment: model.AlignJustify,
		Indent:    model.Indent{Set: true, FirstLine: cfg.FirstLineIndent},
		Spacing:   model.Spacing{Set: true, Before: 0, After: 0, Line: cfg.LineSpacing},
	}
	rs := RunStyle{FontName: cfg.FontName, FontSize: cfg.FontSize}

	switch cat {
	case model.CategorySectionHeading, model.CategoryHeading1:
		ps.Alignment = model.AlignCenter
		ps.Indent.FirstLine = 0
		ps.PageBreakBefore = true
		rs.Bold = true
		rs.FontSize = cfg.HeadingFontSize

	case model.CategoryHeading2, model.CategoryHeading3:
		rs.Bold = true

	case model.CategoryAppendixHeading:
		ps.Alignment = model.AlignCenter
		ps.Indent.FirstLine = 0
		ps.PageBreakBefore = true
		rs.Bold = true

	case model.CategoryFigureCaption:
		ps.Alignment = model.AlignCenter
		ps.Indent.FirstLine = 0

	case model.CategoryTableCaption:
		ps.Alignment = model.AlignLeft
		ps.Indent.FirstLine = 0

	case model.CategoryFormula:
		if !whereClause {
			ps.Alignment = model.AlignCenter
			ps.Indent.FirstLine = 0
		}

	case model.CategoryListItem:
		// Justified with the base indent; nothing beyond the defaults.

	case model.CategoryBibliography:
		ps.Indent.FirstLine = -cfg.FirstLineIndent
		ps.Indent.Left = cfg.FirstLineIndent

	case model.CategoryRegular:
		// Defaults.
	}

	return ps, rs, true
}

// Apply applies the rule table to one paragraph. Empty paragraphs are left
// unchanged. Runs carrying non-text payloads keep their payload; only the
// font record is rewritten.
func Apply(p *model.Paragraph, cat model.Category, cfg Config) {
	whereClause := strings.HasPrefix(strings.TrimSpace(p.Text()), "где")
	ps, rs, ok := For(cat, whereClause, cfg)
	if !ok {
		return
	}

	p.Alignment = ps.Alignment
	p.Indent = ps.Indent
	p.Spacing = ps.Spacing
	p.PageBreakBefore = ps.PageBreakBefore

	for _, r := range p.Runs {
		r.Font.Name = rs.FontName
		r.Font.Size = rs.FontSize
		r.Font.Bold = rs.Bold
	}
}
