package normalize

import (
	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc/model"
)

func isSpaceLike(ch rune) bool {
	return ch == ' ' || ch == '\u00a0'
}

// dashes normalizes dash glyphs over the logical text: em-dashes become
// en-dashes everywhere, and a hyphen flanked by spaces (or non-breaking
// spaces) becomes a spaced en-dash. A hyphen with whitespace evidence on
// only one side is undecidable between punctuation dash and word-joining
// hyphen and is left unchanged.
func (n *Normalizer) dashes(lt *model.LogicalText) bool {
	changed := false

	for i, ch := range lt.Runes {
		if ch == '—' {
			lt.SetRune(i, '–')
			changed = true
		}
	}

	for i := 0; i < lt.Len(); {
		if lt.Runes[i] != '-' {
			i++
			continue
		}
		leftSpace := i > 0 && isSpaceLike(lt.Runes[i-1])
		rightSpace := i+1 < lt.Len() && isSpaceLike(lt.Runes[i+1])
		switch {
		case leftSpace && rightSpace:
			lt.Replace(i-1, i+2, " – ")
			changed = true
			i += 2
		case leftSpace != rightSpace:
			n.log.Debug("ambiguous hyphen left unchanged",
				zap.Int("position", i),
				zap.String("text", lt.String()))
			i++
		default:
			// Word-joining hyphen.
			i++
		}
	}

	return changed
}
