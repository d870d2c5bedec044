package normalize

import (
	"unicode"

	"github.com/gost-tools/gostdoc/model"
)

// colons strips any space or non-breaking space before a colon, then
// lower-cases the first letter of the word following a colon and a space,
// unless that word's second character is also uppercase (acronym guard).
// Both checks span run boundaries, since the colon frequently ends one run
// while the word begins in the next.
func (n *Normalizer) colons(lt *model.LogicalText) bool {
	changed := false

	for i := 0; i < lt.Len(); i++ {
		if lt.Runes[i] != ':' {
			continue
		}
		j := i
		for j > 0 && isSpaceLike(lt.Runes[j-1]) {
			j--
		}
		if j < i {
			lt.Replace(j, i, "")
			changed = true
			i = j
		}
	}

	for i := 0; i+1 < lt.Len(); i++ {
		if lt.Runes[i] != ':' || !isSpaceLike(lt.Runes[i+1]) {
			continue
		}
		k := i + 1
		for k < lt.Len() && isSpaceLike(lt.Runes[k]) {
			k++
		}
		if k >= lt.Len() {
			break
		}
		ch := lt.Runes[k]
		if !unicode.IsUpper(ch) {
			continue
		}
		var next rune
		if k+1 < lt.Len() {
			next = lt.Runes[k+1]
		}
		if unicode.IsUpper(next) {
			// Looks like an acronym; leave it.
			continue
		}
		lt.SetRune(k, unicode.ToLower(ch))
		changed = true
	}

	return changed
}
