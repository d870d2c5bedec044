package normalize

import (
	"unicode"

	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc/model"
)

// quoteCandidates are the straight, curly and low quotation glyphs that get
// unified into directional guillemets.
var quoteCandidates = map[rune]bool{
	'"': true, '“': true, '”': true, '„': true, '‟': true,
	'\'': true, '‘': true, '’': true,
}

func isOpenContext(ch rune) bool {
	return isSpaceLike(ch) || ch == '(' || ch == '[' || ch == '{' || ch == '«'
}

func isCloseContext(ch rune) bool {
	if isSpaceLike(ch) {
		return true
	}
	switch ch {
	case '.', ',', ';', ':', '!', '?', ')', ']', '}', '»':
		return true
	}
	return false
}

// quotes unifies quotation glyphs into guillemets. One boolean "open" state
// persists across the entire paragraph (across run boundaries): each glyph
// flips it, emitting « on the transition into open and » on the transition
// out. Existing guillemets update the state without being rewritten. When
// the neighboring whitespace/bracket context plainly contradicts the state
// (evidence from both sides), the context wins; an apostrophe between two
// letters is never touched.
func (n *Normalizer) quotes(lt *model.LogicalText) bool {
	open := false
	changed := false

	for i := 0; i < lt.Len(); i++ {
		ch := lt.Runes[i]
		if ch == '«' {
			open = true
			continue
		}
		if ch == '»' {
			open = false
			continue
		}
		if !quoteCandidates[ch] {
			continue
		}

		if (ch == '\'' || ch == '’') &&
			i > 0 && i+1 < lt.Len() &&
			unicode.IsLetter(lt.Runes[i-1]) && unicode.IsLetter(lt.Runes[i+1]) {
			// Apostrophe inside a word (d'Artagnan), not a quote.
			continue
		}

		prevOpens := i == 0 || isOpenContext(lt.Runes[i-1])
		nextCloses := i+1 >= lt.Len() || isCloseContext(lt.Runes[i+1])

		makeOpen := !open
		if makeOpen && !prevOpens && nextCloses {
			// State expects an opening quote but both neighbors say this
			// one closes; trust the local context.
			n.log.Debug("quote state overridden by context", zap.Int("position", i))
			makeOpen = false
		} else if !makeOpen && prevOpens && !nextCloses {
			n.log.Debug("quote state overridden by context", zap.Int("position", i))
			makeOpen = true
		}

		if makeOpen {
			lt.SetRune(i, '«')
			open = true
		} else {
			lt.SetRune(i, '»')
			open = false
		}
		changed = true
	}

	return changed
}
