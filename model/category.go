package model

// Category is the classification result for a paragraph. Categories are
// mutually exclusive and computed fresh by the classify package whenever
// they are needed; they are never cached across a structural edit.
type Category int

const (
	CategoryRegular Category = iota
	CategoryEmpty
	CategorySectionHeading
	CategoryAppendixHeading
	CategoryHeading1
	CategoryHeading2
	CategoryHeading3
	CategoryFigureCaption
	CategoryTableCaption
	CategoryFormula
	CategoryListItem
	CategoryBibliography
)

func (c Category) String() string {
	switch c {
	case CategoryEmpty:
		return "Empty"
	case CategorySectionHeading:
		return "SectionHeading"
	case CategoryAppendixHeading:
		return "AppendixHeading"
	case CategoryHeading1:
		return "NumberedHeading1"
	case CategoryHeading2:
		return "NumberedHeading2"
	case CategoryHeading3:
		return "NumberedHeading3"
	case CategoryFigureCaption:
		return "FigureCaption"
	case CategoryTableCaption:
		return "TableCaption"
	case CategoryFormula:
		return "FormulaLine"
	case CategoryListItem:
		return "ListItem"
	case CategoryBibliography:
		return "BibliographyEntry"
	case CategoryRegular:
		return "RegularParagraph"
	default:
		return "Unknown"
	}
}

// IsPageBreakHeading reports whether the category is any heading kind that
// starts a new page: section headings, appendix headings and level-1
// numbered headings.
func (c Category) IsPageBreakHeading() bool {
	return c == CategorySectionHeading || c == CategoryAppendixHeading || c == CategoryHeading1
}
