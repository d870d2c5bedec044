package style

import "github.com/gost-tools/gostdoc/model"

// Config is the immutable formatting configuration passed into one pipeline
// invocation. Distances are in centimeters, font sizes in points.
type Config struct {
	FontName        string
	FontSize        float64
	HeadingFontSize float64
	LineSpacing     float64
	FirstLineIndent float64
	Margins         model.Margins
}

// DefaultConfig returns the GOST 7.32 defaults: Times New Roman 14 pt,
// 1.5 line spacing, 1.25 cm first-line indent, margins 3/1.5/2/2 cm.
func DefaultConfig() Config {
	return Config{
		FontName:        "Times New Roman",
		FontSize:        14,
		HeadingFontSize: 16,
		LineSpacing:     1.5,
		FirstLineIndent: 1.25,
		Margins: model.Margins{
			Left:   3,
			Right:  1.5,
			Top:    2,
			Bottom: 2,
		},
	}
}
