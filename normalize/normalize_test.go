package normalize

import (
	"strings"
	"testing"

	"github.com/gost-tools/gostdoc/model"
)

func paraOf(runs ...string) *model.Paragraph {
	p := &model.Paragraph{}
	for _, t := range runs {
		p.AddRun(t)
	}
	return p
}

func normalizeText(t *testing.T, cat model.Category, runs ...string) string {
	t.Helper()
	p := paraOf(runs...)
	New(nil).Paragraph(p, cat)
	return p.Text()
}

func TestParagraphPasses(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"double spaces", "два  слова", "два слова"},
		{"many spaces", "три    слова   здесь", "три слова здесь"},

		{"em dash", "слово — слово", "слово – слово"},
		{"spaced hyphen", "слово - слово", "слово – слово"},
		{"word-joining hyphen", "кто-нибудь", "кто-нибудь"},
		{"range hyphen kept", "страницы 5-10", "страницы 5-10"},

		{"space before colon", "Раздел : начало", "Раздел: начало"},
		{"lowercase after colon", "Вывод: Результат получен", "Вывод: результат получен"},
		{"acronym after colon kept", "Стандарт: ГОСТ 7.32", "Стандарт: ГОСТ 7.32"},

		{"expand etc", "фрукты и овощи и т.д.", "фрукты и овощи и так далее"},
		{"expand ie", "метод прост т.е. понятен", "метод прост то есть понятен"},
		{"initial guards others", "Иванов А. и др.", "Иванов А. и др."},
		{"comma guards expansion", "Иванов, т.к. опоздал", "Иванов, т.к. опоздал"},

		{"straight quotes", `term "тест" here`, "term «тест» here"},
		{"curly quotes", "слово “тест” слово", "слово «тест» слово"},
		{"low quotes", "слово „тест” слово", "слово «тест» слово"},
		{"guillemets untouched", "слово «тест» слово", "слово «тест» слово"},
		{"apostrophe kept", "d'Artagnan пришел", "d'Artagnan пришел"},

		{"nbsp after see", "см. таблицу", "см.\u00a0таблицу"},
		{"nbsp unit", "масса 5 кг и длина 3 см", "масса 5\u00a0кг и длина 3\u00a0см"},
		{"nbsp unit with period", "объем 10 мл. Далее", "объем 10\u00a0мл. Далее"},
		{"nbsp month", "5 января началось", "5\u00a0января началось"},
		{"nbsp year", "в 2020 г. началось", "в 2020\u00a0г. началось"},
		{"nbsp paragraph sign", "согласно § 5 правил", "согласно §\u00a05 правил"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeText(t, model.CategoryRegular, tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// The same logical text must normalize identically no matter how the source
// happens to split it into runs.
func TestRunSplitInvariance(t *testing.T) {
	tests := []struct {
		name   string
		splits [][]string
	}{
		{
			"quote split from word",
			[][]string{
				{`Он сказал "привет" вслух`},
				{`Он сказал "`, `привет" вслух`},
				{`Он сказал `, `"`, `привет`, `"`, ` вслух`},
			},
		},
		{
			"dash split at boundary",
			[][]string{
				{"слово - слово"},
				{"слово ", "- слово"},
				{"слово -", " слово"},
			},
		},
		{
			"colon split at boundary",
			[][]string{
				{"Вывод: Результат"},
				{"Вывод:", " Результат"},
				{"Вывод: ", "Результат"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := normalizeText(t, model.CategoryRegular, tt.splits[0]...)
			for i, split := range tt.splits[1:] {
				if got := normalizeText(t, model.CategoryRegular, split...); got != want {
					t.Errorf("split %d: got %q, want %q", i+1, got, want)
				}
			}
		})
	}
}

func TestParagraphIsIdempotent(t *testing.T) {
	inputs := []string{
		`Он сказал: "Привет" и т.д. — вот так`,
		"масса 5 кг, длина 2 - 3 см",
		"Раздел : ГОСТ и «термин»",
	}
	for _, in := range inputs {
		p := paraOf(in)
		n := New(nil)
		n.Paragraph(p, model.CategoryRegular)
		once := p.Text()
		n.Paragraph(p, model.CategoryRegular)
		if got := p.Text(); got != once {
			t.Errorf("second pass changed %q to %q", once, got)
		}
	}
}

// In a chain of initials the second insertion site only appears once the
// first non-breaking space is in place; a single call must still finish
// the job, and a repeat call must change nothing.
func TestInitialsChain(t *testing.T) {
	want := "Иванов И.\u00a0И.\u00a0Основы теории"
	p := paraOf("Иванов И. И. Основы теории")
	n := New(nil)

	n.Paragraph(p, model.CategoryRegular)
	if got := p.Text(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	n.Paragraph(p, model.CategoryRegular)
	if got := p.Text(); got != want {
		t.Errorf("second pass changed %q to %q", want, got)
	}
}

// Every paragraph leaves the quote pass with balanced, alternating
// guillemets.
func TestQuoteBalance(t *testing.T) {
	inputs := []string{
		`"один" и "два"`,
		`сказал "привет" и ушел`,
		"смесь «старых» и \"новых\" кавычек",
		`“curly” and „low” forms`,
	}
	for _, in := range inputs {
		got := normalizeText(t, model.CategoryRegular, in)
		if o, c := strings.Count(got, "«"), strings.Count(got, "»"); o != c {
			t.Errorf("%q normalized to %q: %d opening vs %d closing", in, got, o, c)
		}
	}
}

func TestQuoteContextOverride(t *testing.T) {
	// The glyph sits in closing context while the alternation state expects
	// an opening quote; local evidence wins.
	got := normalizeText(t, model.CategoryRegular, `слово" дальше`)
	if got != "слово» дальше" {
		t.Errorf("got %q, want %q", got, "слово» дальше")
	}
}

func TestListItemDecapitalized(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"capital lowered", "- Первый пункт", "- первый пункт"},
		{"already lower", "- первый пункт", "- первый пункт"},
		{"acronym kept", "- ГОСТ требует", "- ГОСТ требует"},
		{"numbered item", "1. Первый пункт", "1. первый пункт"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeText(t, model.CategoryListItem, tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegularParagraphKeepsCapital(t *testing.T) {
	got := normalizeText(t, model.CategoryRegular, "Обычное предложение.")
	if got != "Обычное предложение." {
		t.Errorf("got %q", got)
	}
}

func TestNFCComposition(t *testing.T) {
	// "й" written as base letter plus combining breve must compose.
	got := normalizeText(t, model.CategoryRegular, "согласни\u0306")
	if got != "согласнй" {
		t.Errorf("got %q", got)
	}
}

func TestCrossRunSpaceCollapse(t *testing.T) {
	p := paraOf("конец ", " начало")
	New(nil).Paragraph(p, model.CategoryRegular)
	if got := p.Text(); got != "конец начало" {
		t.Errorf("got %q, want %q", got, "конец начало")
	}
}

func TestApplySkipsPreBoundaryBlocks(t *testing.T) {
	doc := model.NewDocument()
	title := paraOf(`Название  с  "кавычками"`)
	doc.AppendBlock(title)
	doc.AppendBlock(paraOf("СОДЕРЖАНИЕ"))
	body := paraOf(`текст с "кавычками"`)
	doc.AppendBlock(body)

	New(nil).Apply(doc, 1)

	if got := title.Text(); got != `Название  с  "кавычками"` {
		t.Errorf("pre-boundary paragraph changed: %q", got)
	}
	if got := body.Text(); got != "текст с «кавычками»" {
		t.Errorf("in-scope paragraph = %q", got)
	}
}
