package normalize

import (
	"unicode"

	"github.com/gost-tools/gostdoc/model"
)

// decapitalizeListItem lower-cases the leading letter of a list item: the
// first alphabetic character of the logical text. A letter followed by
// another uppercase letter is treated as the start of an acronym and left
// alone.
func decapitalizeListItem(lt *model.LogicalText) bool {
	for i := 0; i < lt.Len(); i++ {
		ch := lt.Runes[i]
		if !unicode.IsLetter(ch) {
			continue
		}
		if !unicode.IsUpper(ch) {
			return false
		}
		if i+1 < lt.Len() && unicode.IsUpper(lt.Runes[i+1]) {
			return false
		}
		lt.SetRune(i, unicode.ToLower(ch))
		return true
	}
	return false
}
