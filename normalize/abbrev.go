package normalize

import (
	"unicode"

	"go.uber.org/zap"

	"github.com/gost-tools/gostdoc/model"
)

// abbreviations is the fixed expansion table, longest phrases first so that
// "и т.д." wins over any shorter overlap.
var abbreviations = []struct{ from, to string }{
	{"и т.д.", "и так далее"},
	{"и т.п.", "и тому подобное"},
	{"и др.", "и другие"},
	{"т.к.", "так как"},
	{"т.е.", "то есть"},
}

// expandAbbreviations replaces fixed abbreviated phrases with their full
// forms. Matching is confined to a single run: an abbreviation split across
// runs is left alone. An occurrence preceded by a comma or by a capitalized
// initial ("А.", "Ivanov, т.к.") is skipped to avoid corrupting name
// initials and clause structure.
func (n *Normalizer) expandAbbreviations(p *model.Paragraph) bool {
	changed := false
	for _, r := range p.Runs {
		if r.Text == "" {
			continue
		}
		if nt := expandInRun(r.Text); nt != r.Text {
			n.log.Debug("abbreviation expanded", zap.String("before", r.Text), zap.String("after", nt))
			r.Text = nt
			changed = true
		}
	}
	return changed
}

func expandInRun(text string) string {
	runes := []rune(text)
	for _, abbr := range abbreviations {
		from := []rune(abbr.from)
		to := []rune(abbr.to)
		for i := 0; i+len(from) <= len(runes); {
			if !runesEqual(runes[i:i+len(from)], from) || !atWordStart(runes, i) {
				i++
				continue
			}
			if guardedBefore(runes, i) {
				i += len(from)
				continue
			}
			rest := append([]rune{}, runes[i+len(from):]...)
			runes = append(runes[:i], append(to, rest...)...)
			i += len(to)
		}
	}
	return string(runes)
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// atWordStart reports whether position i begins a word: start of text or
// preceded by whitespace or an opening bracket/quote.
func atWordStart(runes []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev := runes[i-1]
	return isSpaceLike(prev) || prev == '(' || prev == '[' || prev == '«'
}

// guardedBefore reports whether the occurrence at i is protected from
// expansion: the nearest preceding non-space character is a comma, or the
// text immediately before is a capitalized initial such as "А.".
func guardedBefore(runes []rune, i int) bool {
	j := i
	for j > 0 && isSpaceLike(runes[j-1]) {
		j--
	}
	if j == 0 {
		return false
	}
	if runes[j-1] == ',' {
		return true
	}
	if runes[j-1] == '.' && j >= 2 && unicode.IsUpper(runes[j-2]) {
		return true
	}
	return false
}
