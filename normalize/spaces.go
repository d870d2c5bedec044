package normalize

import (
	"regexp"
	"strings"

	"github.com/gost-tools/gostdoc/model"
)

var multiSpace = regexp.MustCompile(` {2,}`)

// collapseSpaces collapses repeated spaces within each run, then strips a
// duplicate space straddling a run boundary: when one run ends with a space
// and the next begins with one, the leading space of the latter is removed.
// A run reduced to bare whitespace by the strip is blanked entirely.
func collapseSpaces(p *model.Paragraph) bool {
	changed := false

	for _, r := range p.Runs {
		if r.Text == "" {
			continue
		}
		if nt := multiSpace.ReplaceAllString(r.Text, " "); nt != r.Text {
			r.Text = nt
			changed = true
		}
	}

	prevEndsSpace := false
	havePrev := false
	for _, r := range p.Runs {
		if r.Text == "" {
			continue
		}
		if havePrev && prevEndsSpace && strings.HasPrefix(r.Text, " ") {
			nt := strings.TrimPrefix(r.Text, " ")
			if strings.TrimSpace(nt) == "" {
				nt = ""
			}
			r.Text = nt
			changed = true
			if nt == "" {
				// The previous run still ends with a space; keep scanning.
				continue
			}
		}
		havePrev = true
		prevEndsSpace = strings.HasSuffix(r.Text, " ")
	}

	return changed
}
