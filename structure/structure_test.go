package structure

import (
	"strings"
	"testing"

	"github.com/gost-tools/gostdoc/model"
	"github.com/gost-tools/gostdoc/style"
)

func textPara(text string) *model.Paragraph {
	p := &model.Paragraph{}
	if text != "" {
		p.AddRun(text)
	}
	return p
}

func imagePara() *model.Paragraph {
	p := &model.Paragraph{}
	p.Runs = append(p.Runs, &model.Run{Drawing: "<w:drawing></w:drawing>"})
	return p
}

func newEditor() *Editor {
	return New(nil, style.DefaultConfig())
}

func blockTexts(t *testing.T, doc *model.Document) []string {
	t.Helper()
	var out []string
	for _, b := range doc.Blocks {
		switch blk := b.(type) {
		case *model.Paragraph:
			out = append(out, blk.Text())
		case *model.Table:
			out = append(out, "[table]")
		}
	}
	return out
}

func TestFigureCaptionInserted(t *testing.T) {
	doc := model.NewDocument()
	doc.AppendBlock(textPara("Текст до рисунка."))
	doc.AppendBlock(imagePara())
	doc.AppendBlock(textPara("Текст после рисунка."))

	newEditor().reconcileCaptions(doc, 0)

	caption := doc.ParagraphAt(2)
	if caption == nil || caption.Text() != "Рисунок 1 – " {
		t.Fatalf("blocks = %q", blockTexts(t, doc))
	}
	if caption.Alignment != model.AlignCenter {
		t.Errorf("caption alignment = %v, want center", caption.Alignment)
	}
}

func TestFigureCaptionRenumbered(t *testing.T) {
	doc := model.NewDocument()
	doc.AppendBlock(imagePara())
	doc.AppendBlock(textPara("Рисунок 7 - Схема установки"))
	doc.AppendBlock(imagePara())
	doc.AppendBlock(textPara("Рисунок 3 – График зависимости"))

	newEditor().reconcileCaptions(doc, 0)

	if got := doc.ParagraphAt(1).Text(); got != "Рисунок 1 – Схема установки" {
		t.Errorf("first caption = %q", got)
	}
	if got := doc.ParagraphAt(3).Text(); got != "Рисунок 2 – График зависимости" {
		t.Errorf("second caption = %q", got)
	}
}

// The caption's descriptive tail may live in its own run; renumbering must
// only touch the prefix and keep the tail's run intact.
func TestFigureCaptionRenumberSplitRuns(t *testing.T) {
	doc := model.NewDocument()
	doc.AppendBlock(imagePara())
	caption := &model.Paragraph{}
	caption.AddRun("Рисунок 9 — ")
	caption.AddRun("Схема установки")
	doc.AppendBlock(caption)

	newEditor().reconcileCaptions(doc, 0)

	if got := caption.Text(); got != "Рисунок 1 – Схема установки" {
		t.Fatalf("caption = %q", got)
	}
	if got := caption.Runs[len(caption.Runs)-1].Text; got != "Схема установки" {
		t.Errorf("tail run = %q, want untouched tail", got)
	}
}

func TestTableCaptionInsertedBeforeTable(t *testing.T) {
	doc := model.NewDocument()
	doc.AppendBlock(textPara("Текст перед таблицей."))
	doc.AppendBlock(model.NewTable(2, 2))

	newEditor().reconcileCaptions(doc, 0)

	got := blockTexts(t, doc)
	want := []string{"Текст перед таблицей.", "Таблица 1 – ", "[table]"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("blocks = %q, want %q", got, want)
	}
	if caption := doc.ParagraphAt(1); caption.Alignment != model.AlignLeft {
		t.Errorf("caption alignment = %v, want left", caption.Alignment)
	}
}

func TestTableCaptionRenumbered(t *testing.T) {
	doc := model.NewDocument()
	doc.AppendBlock(textPara("Таблица 5 - Результаты"))
	doc.AppendBlock(model.NewTable(1, 1))
	doc.AppendBlock(textPara("Таблица 9 – Сравнение"))
	doc.AppendBlock(model.NewTable(1, 1))

	newEditor().reconcileCaptions(doc, 0)

	if got := doc.ParagraphAt(0).Text(); got != "Таблица 1 – Результаты" {
		t.Errorf("first caption = %q", got)
	}
	if got := doc.ParagraphAt(2).Text(); got != "Таблица 2 – Сравнение" {
		t.Errorf("second caption = %q", got)
	}
}

func TestCaptionsBeforeBoundaryIgnored(t *testing.T) {
	doc := model.NewDocument()
	doc.AppendBlock(imagePara()) // logo on the title page
	doc.AppendBlock(textPara("СОДЕРЖАНИЕ"))
	doc.AppendBlock(imagePara())

	newEditor().reconcileCaptions(doc, 1)

	if got := len(doc.Blocks); got != 4 {
		t.Fatalf("block count = %d, want 4", got)
	}
	if doc.ParagraphAt(1) == nil || doc.ParagraphAt(1).Text() != "СОДЕРЖАНИЕ" {
		t.Errorf("title-page blocks were edited: %q", blockTexts(t, doc))
	}
	if got := doc.ParagraphAt(3).Text(); got != "Рисунок 1 – " {
		t.Errorf("in-scope caption = %q", got)
	}
}

func TestPageBreaksOnHeadings(t *testing.T) {
	doc := model.NewDocument()
	doc.AppendBlock(textPara("Текст введения."))
	doc.AppendBlock(textPara(""))
	doc.AppendBlock(textPara(""))
	heading := textPara("1 ОСНОВНАЯ ЧАСТЬ")
	doc.AppendBlock(heading)
	sub := textPara("1.1 Подраздел")
	doc.AppendBlock(sub)

	newEditor().placePageBreaks(doc, 0)

	if !heading.PageBreakBefore {
		t.Error("level-1 heading did not get a page break")
	}
	if sub.PageBreakBefore {
		t.Error("level-2 heading must not get a page break")
	}
	if got := len(doc.Blocks); got != 3 {
		t.Errorf("blank paragraphs above heading not removed: %q", blockTexts(t, doc))
	}
}

func TestListPunctuation(t *testing.T) {
	doc := model.NewDocument()
	doc.AppendBlock(textPara("Рассмотрим:"))
	doc.AppendBlock(textPara("- первый пункт"))
	doc.AppendBlock(textPara("- второй пункт,"))
	doc.AppendBlock(textPara(""))
	doc.AppendBlock(textPara("- третий пункт."))
	doc.AppendBlock(textPara("Продолжение текста."))

	newEditor().enforceListPunctuation(doc, 0)

	wants := map[int]string{
		1: "- первый пункт;",
		2: "- второй пункт;",
		4: "- третий пункт.",
	}
	for i, want := range wants {
		if got := doc.ParagraphAt(i).Text(); got != want {
			t.Errorf("item %d = %q, want %q", i, got, want)
		}
	}
}

func TestListPunctuationSingleItem(t *testing.T) {
	doc := model.NewDocument()
	doc.AppendBlock(textPara("- единственный пункт"))

	newEditor().enforceListPunctuation(doc, 0)

	if got := doc.ParagraphAt(0).Text(); got != "- единственный пункт." {
		t.Errorf("item = %q", got)
	}
}

func TestListPunctuationTrailingSpaceAndTailRun(t *testing.T) {
	doc := model.NewDocument()
	p := &model.Paragraph{}
	p.AddRun("- пункт со ")
	p.AddRun("хвостом   ")
	doc.AppendBlock(p)

	newEditor().enforceListPunctuation(doc, 0)

	if got := p.Text(); got != "- пункт со хвостом.   " {
		t.Errorf("item = %q", got)
	}
}

func TestBibliographyEntriesNotPunctuated(t *testing.T) {
	doc := model.NewDocument()
	doc.AppendBlock(textPara("СПИСОК ЛИТЕРАТУРЫ"))
	doc.AppendBlock(textPara("1. Иванов И. И. Основы теории"))
	doc.AppendBlock(textPara("2. Петров П. П. Практикум"))

	newEditor().enforceListPunctuation(doc, 0)

	if got := doc.ParagraphAt(1).Text(); got != "1. Иванов И. И. Основы теории" {
		t.Errorf("entry = %q, want untouched", got)
	}
}

func TestPruneBlankParagraphs(t *testing.T) {
	doc := model.NewDocument()
	doc.AppendBlock(textPara("Первый абзац."))
	doc.AppendBlock(textPara(""))
	doc.AppendBlock(textPara(""))
	doc.AppendBlock(textPara(""))
	doc.AppendBlock(textPara("Второй абзац."))
	doc.AppendBlock(imagePara())

	newEditor().pruneBlankParagraphs(doc, 0)

	got := blockTexts(t, doc)
	if len(got) != 4 {
		t.Fatalf("blocks = %q", got)
	}
	if !doc.ParagraphAt(3).HasImage() {
		t.Error("image paragraph was pruned")
	}
}

func TestApplyOrderEndToEnd(t *testing.T) {
	doc := model.NewDocument()
	doc.AppendBlock(textPara("СОДЕРЖАНИЕ"))
	doc.AppendBlock(textPara(""))
	doc.AppendBlock(textPara(""))
	doc.AppendBlock(textPara("ВВЕДЕНИЕ"))
	doc.AppendBlock(imagePara())
	doc.AppendBlock(textPara("- пункт один"))
	doc.AppendBlock(textPara("- пункт два"))

	newEditor().Apply(doc, 0)

	texts := blockTexts(t, doc)
	joined := strings.Join(texts, "|")
	if !strings.Contains(joined, "Рисунок 1 – ") {
		t.Errorf("no figure caption in %q", texts)
	}
	if !strings.Contains(joined, "пункт один;") || !strings.Contains(joined, "пункт два.") {
		t.Errorf("list punctuation missing in %q", texts)
	}
	for _, b := range doc.Blocks {
		if p, ok := b.(*model.Paragraph); ok && strings.TrimSpace(p.Text()) == "ВВЕДЕНИЕ" && !p.PageBreakBefore {
			t.Error("section heading did not get a page break")
		}
	}
}
