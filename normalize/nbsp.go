package normalize

import (
	"regexp"

	"github.com/gost-tools/gostdoc/model"
)

const nbsp = "\u00a0"

// nbspRules bind tokens to the words they must not be separated from by a
// line break. Each rule converts an ordinary space into a non-breaking one
// (or inserts one where § and № are glued to the number). All rules operate
// within a single run.
var nbspRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	// After § and № signs: "§ 5", "§5" → "§ 5" with NBSP.
	{regexp.MustCompile(`([§№]) ?([0-9A-Za-zА-Яа-яЁё])`), "$1" + nbsp + "$2"},
	// After abbreviation heads: "рис. 5", "см. таблицу".
	{regexp.MustCompile(`(^|[^А-Яа-яЁёA-Za-z])(рис\.|табл\.|гл\.|стр\.|см\.|гг\.|др\.|руб\.) (\S)`), "$1$2" + nbsp + "$3"},
	// Between an initial and a following capitalized word: "С. Пушкин".
	{regexp.MustCompile(`(^|[^А-Яа-яЁёA-Za-z])([А-ЯЁA-Z]\.) ([А-ЯЁA-Z])`), "$1$2" + nbsp + "$3"},
	// Between a four-digit year and "г."/"гг.".
	{regexp.MustCompile(`(\d{4}) (гг?\.)`), "$1" + nbsp + "$2"},
	// Between a day number and a month name. RE2's \b is ASCII-only and
	// never fires next to Cyrillic letters, so the trailing context is
	// matched explicitly instead.
	{regexp.MustCompile(`(^|[^0-9])(\d{1,2}) (января|февраля|марта|апреля|мая|июня|июля|августа|сентября|октября|ноября|декабря)($|[^А-Яа-яЁёA-Za-z])`), "$1$2" + nbsp + "$3$4"},
	// Between a numeral and a unit of measure.
	{regexp.MustCompile(`(\d) ((?:мм|см|км|кг|мин|млн|млрд|тыс|шт|руб|коп|мл|[мгтсчл]|%)\.?)($|[^А-Яа-яЁёA-Za-z0-9])`), "$1" + nbsp + "$2$3"},
}

// insertNonBreakingSpaces applies the fixed non-breaking-space rules within
// every run.
func insertNonBreakingSpaces(p *model.Paragraph) bool {
	changed := false
	for _, r := range p.Runs {
		if r.Text == "" {
			continue
		}
		nt := r.Text
		// A replacement can expose the next match site (a chain of
		// initials overlaps itself), so the rules run to a fixed point.
		// Every rule turns a plain space into a non-breaking one and
		// never produces a new plain space, so the loop terminates.
		for {
			prev := nt
			for _, rule := range nbspRules {
				nt = rule.re.ReplaceAllString(nt, rule.repl)
			}
			if nt == prev {
				break
			}
		}
		if nt != r.Text {
			r.Text = nt
			changed = true
		}
	}
	return changed
}
