package classify

import (
	"strings"

	"github.com/gost-tools/gostdoc/model"
)

// contentsMarkers are the texts that terminate the cover page.
var contentsMarkers = map[string]bool{
	"СОДЕРЖАНИЕ": true,
	"ОГЛАВЛЕНИЕ": true,
}

// Boundary returns the title boundary: the block index of the first
// paragraph whose trimmed, upper-cased text is a contents marker. Blocks
// below the boundary form the unformatted cover page and must not be read
// or written by any later stage. When no marker exists the boundary is 0
// and nothing is excluded.
func Boundary(doc *model.Document) int {
	for i, b := range doc.Blocks {
		p, ok := b.(*model.Paragraph)
		if !ok {
			continue
		}
		if contentsMarkers[strings.ToUpper(strings.TrimSpace(p.Text()))] {
			return i
		}
	}
	return 0
}
