package docx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/gost-tools/gostdoc/model"
)

const fixtureContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Default Extension="png" ContentType="image/png"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const fixtureRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const fixtureDocRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com/" TargetMode="External"/>
</Relationships>`

// buildDocx assembles an in-memory DOCX archive around the given body XML.
func buildDocx(t *testing.T, body string, extra map[string][]byte) []byte {
	t.Helper()

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">
<w:body>` + body + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name string, data []byte) {
		t.Helper()
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	write("[Content_Types].xml", []byte(fixtureContentTypes))
	write("_rels/.rels", []byte(fixtureRootRels))
	write("word/_rels/document.xml.rels", []byte(fixtureDocRels))
	write("word/document.xml", []byte(document))
	for name, data := range extra {
		write(name, data)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing fixture archive: %v", err)
	}
	return buf.Bytes()
}

func openFixture(t *testing.T, body string) *File {
	t.Helper()
	f, err := OpenBytes(buildDocx(t, body, nil))
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	return f
}

func TestOpenParsesParagraphs(t *testing.T) {
	f := openFixture(t, `
<w:p>
<w:pPr><w:jc w:val="center"/><w:ind w:firstLine="567" w:left="1134"/><w:spacing w:before="120" w:after="0" w:line="360" w:lineRule="auto"/></w:pPr>
<w:r><w:rPr><w:rFonts w:ascii="Arial" w:hAnsi="Arial"/><w:b/><w:sz w:val="28"/></w:rPr><w:t>Заголовок</w:t></w:r>
</w:p>
<w:p><w:r><w:t xml:space="preserve">Обычный текст.</w:t></w:r></w:p>`)

	doc := f.Document()
	if got := len(doc.Blocks); got != 2 {
		t.Fatalf("block count = %d, want 2", got)
	}

	p := doc.ParagraphAt(0)
	if p.Alignment != model.AlignCenter {
		t.Errorf("alignment = %v, want center", p.Alignment)
	}
	if !p.Indent.Set || p.Indent.FirstLine != 1.0 || p.Indent.Left != 2.0 {
		t.Errorf("indent = %+v", p.Indent)
	}
	if !p.Spacing.Set || p.Spacing.Before != 6.0 || p.Spacing.Line != 1.5 {
		t.Errorf("spacing = %+v", p.Spacing)
	}
	r := p.Runs[0]
	if r.Text != "Заголовок" {
		t.Errorf("text = %q", r.Text)
	}
	if r.Font.Name != "Arial" || !r.Font.Bold || r.Font.Size != 14 {
		t.Errorf("font = %+v", r.Font)
	}

	if got := doc.ParagraphAt(1).Text(); got != "Обычный текст." {
		t.Errorf("second paragraph = %q", got)
	}
}

func TestOpenPreservesRunAndHyperlinkOrder(t *testing.T) {
	f := openFixture(t, `
<w:p>
<w:r><w:t>до </w:t></w:r>
<w:hyperlink r:id="rId5"><w:r><w:t>ссылка</w:t></w:r></w:hyperlink>
<w:r><w:t> после</w:t></w:r>
</w:p>`)

	p := f.Document().ParagraphAt(0)
	if got := p.Text(); got != "до ссылка после" {
		t.Fatalf("text = %q", got)
	}
	if len(p.Runs) != 3 {
		t.Fatalf("run count = %d, want 3", len(p.Runs))
	}
	if p.Runs[1].HyperlinkID != "rId5" {
		t.Errorf("hyperlink id = %q, want rId5", p.Runs[1].HyperlinkID)
	}
	if p.Runs[0].HyperlinkID != "" || p.Runs[2].HyperlinkID != "" {
		t.Error("plain runs must carry no hyperlink id")
	}
}

func TestOpenTabsAndBreaks(t *testing.T) {
	f := openFixture(t, `
<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br w:type="page"/><w:t>c</w:t></w:r></w:p>`)

	p := f.Document().ParagraphAt(0)
	if got := p.Text(); got != "a\tbc" {
		t.Fatalf("text = %q", got)
	}
	var pageBreaks int
	for _, r := range p.Runs {
		if r.Break == model.BreakPage {
			pageBreaks++
		}
	}
	if pageBreaks != 1 {
		t.Errorf("page breaks = %d, want 1", pageBreaks)
	}
}

func TestOpenPreservesDrawing(t *testing.T) {
	f := openFixture(t, `
<w:p><w:r><w:drawing><wp:inline><wp:extent cx="100" cy="100"/></wp:inline></w:drawing></w:r></w:p>`)

	p := f.Document().ParagraphAt(0)
	if !p.HasImage() {
		t.Fatal("image not detected")
	}
	d := p.Runs[0].Drawing
	if !strings.HasPrefix(d, "<w:drawing>") || !strings.Contains(d, `<wp:extent cx="100" cy="100"/>`) {
		t.Errorf("drawing = %q", d)
	}
}

func TestOpenFields(t *testing.T) {
	f := openFixture(t, `
<w:p><w:fldSimple w:instr=" PAGE "><w:r><w:t>7</w:t></w:r></w:fldSimple></w:p>
<w:p>
<w:r><w:fldChar w:fldCharType="begin"/></w:r>
<w:r><w:instrText> NUMPAGES </w:instrText></w:r>
<w:r><w:fldChar w:fldCharType="separate"/></w:r>
<w:r><w:t>42</w:t></w:r>
<w:r><w:fldChar w:fldCharType="end"/></w:r>
</w:p>`)

	doc := f.Document()
	simple := doc.ParagraphAt(0).Runs[0]
	if simple.Field != "PAGE" || simple.Text != "7" {
		t.Errorf("fldSimple run = %+v", simple)
	}

	p := doc.ParagraphAt(1)
	if len(p.Runs) != 1 {
		t.Fatalf("complex field collapsed to %d runs, want 1", len(p.Runs))
	}
	if p.Runs[0].Field != "NUMPAGES" || p.Runs[0].Text != "42" {
		t.Errorf("complex field run = %+v", p.Runs[0])
	}
}

func TestOpenMath(t *testing.T) {
	f := openFixture(t, `
<w:p><m:oMath><m:r><m:t>x</m:t></m:r></m:oMath></w:p>`)

	p := f.Document().ParagraphAt(0)
	if len(p.Runs) != 1 || p.Runs[0].Math == "" {
		t.Fatalf("runs = %+v", p.Runs)
	}
	if !strings.HasPrefix(p.Runs[0].Math, "<m:oMath>") {
		t.Errorf("math = %q", p.Runs[0].Math)
	}
}

func TestOpenTable(t *testing.T) {
	f := openFixture(t, `
<w:tbl>
<w:tblPr><w:tblStyle w:val="TableGrid"/></w:tblPr>
<w:tblGrid><w:gridCol w:w="4000"/><w:gridCol w:w="4000"/></w:tblGrid>
<w:tr><w:tc><w:tcPr><w:gridSpan w:val="2"/></w:tcPr><w:p><w:r><w:t>шапка</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:p><w:r><w:t>а</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>б</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>`)

	doc := f.Document()
	tbl := doc.TableAt(0)
	if tbl == nil {
		t.Fatal("table not parsed")
	}
	if tbl.StyleID != "TableGrid" {
		t.Errorf("style = %q", tbl.StyleID)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d", len(tbl.Rows))
	}
	if got := tbl.Rows[0][0].GridSpan; got != 2 {
		t.Errorf("grid span = %d, want 2", got)
	}
	if got := tbl.Text(); got != "шапка\nа\tб" {
		t.Errorf("table text = %q", got)
	}
}

func TestOpenSectionProperties(t *testing.T) {
	f := openFixture(t, `
<w:p><w:r><w:t>текст</w:t></w:r></w:p>
<w:sectPr><w:pgSz w:w="11907" w:h="16839"/><w:pgMar w:top="1134" w:right="850" w:bottom="1134" w:left="1701"/></w:sectPr>`)

	sec := f.Document().Sections[0]
	if sec.Margins.Top != 2.0 || sec.Margins.Left != 3.0 {
		t.Errorf("margins = %+v", sec.Margins)
	}
	if sec.PageWidth < 20.9 || sec.PageWidth > 21.1 {
		t.Errorf("page width = %v", sec.PageWidth)
	}
}

func TestOpenRejectsNonDocx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("hello.txt")
	io.WriteString(w, "not a document")
	zw.Close()

	if _, err := OpenBytes(buf.Bytes()); err == nil {
		t.Error("OpenBytes accepted an archive without word/document.xml")
	}
}

func TestRoundTrip(t *testing.T) {
	f := openFixture(t, `
<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t>Заголовок</w:t></w:r></w:p>
<w:p><w:r><w:t>до </w:t></w:r><w:hyperlink r:id="rId5"><w:r><w:t>ссылка</w:t></w:r></w:hyperlink></w:p>
<w:p><w:r><w:drawing><wp:inline></wp:inline></w:drawing></w:r></w:p>
<w:tbl><w:tblPr/><w:tblGrid/><w:tr><w:tc><w:p><w:r><w:t>ячейка</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:sectPr><w:pgSz w:w="11907" w:h="16839"/><w:pgMar w:top="1134" w:right="850" w:bottom="1134" w:left="1701"/></w:sectPr>`)

	data, err := f.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	g, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("reopening written archive: %v", err)
	}

	doc := g.Document()
	if got := doc.ParagraphAt(0).Text(); got != "Заголовок" {
		t.Errorf("paragraph 0 = %q", got)
	}
	if doc.ParagraphAt(0).Alignment != model.AlignCenter {
		t.Error("alignment lost in round trip")
	}
	if !doc.ParagraphAt(0).Runs[0].Font.Bold {
		t.Error("bold lost in round trip")
	}
	if got := doc.ParagraphAt(1).Text(); got != "до ссылка" {
		t.Errorf("paragraph 1 = %q", got)
	}
	if got := doc.ParagraphAt(1).Runs[1].HyperlinkID; got != "rId5" {
		t.Errorf("hyperlink id after round trip = %q", got)
	}
	if !doc.ParagraphAt(2).HasImage() {
		t.Error("drawing lost in round trip")
	}
	if got := doc.TableAt(3).Text(); got != "ячейка" {
		t.Errorf("table text = %q", got)
	}
	if doc.Sections[0].Margins.Left != 3.0 {
		t.Errorf("margins after round trip = %+v", doc.Sections[0].Margins)
	}
}

func TestSaveGeneratesFooter(t *testing.T) {
	f := openFixture(t, `
<w:p><w:r><w:t>текст</w:t></w:r></w:p>
<w:sectPr><w:pgSz w:w="11907" w:h="16839"/><w:pgMar w:top="1134" w:right="850" w:bottom="1134" w:left="1701"/></w:sectPr>`)

	f.Document().Sections[0].PageNumbers = true
	data, err := f.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading written archive: %v", err)
	}
	parts := make(map[string]string)
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", zf.Name, err)
		}
		content, _ := io.ReadAll(rc)
		rc.Close()
		parts[zf.Name] = string(content)
	}

	footer, ok := parts["word/footer1.xml"]
	if !ok {
		t.Fatal("footer part not generated")
	}
	if !strings.Contains(footer, "PAGE") || !strings.Contains(footer, `<w:jc w:val="center"/>`) {
		t.Errorf("footer = %q", footer)
	}
	if !strings.Contains(parts["word/document.xml"], "footerReference") {
		t.Error("section properties lack the footer reference")
	}
	if !strings.Contains(parts["word/_rels/document.xml.rels"], "footer1.xml") {
		t.Error("relationships lack the footer entry")
	}
	if !strings.Contains(parts["[Content_Types].xml"], "/word/footer1.xml") {
		t.Error("content types lack the footer override")
	}
}

func TestImages(t *testing.T) {
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatalf("encoding fixture image: %v", err)
	}
	data := buildDocx(t, `<w:p><w:r><w:t>текст</w:t></w:r></w:p>`, map[string][]byte{
		"word/media/image1.png": img.Bytes(),
	})

	f, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	images := f.Images()
	if len(images) != 1 {
		t.Fatalf("image count = %d, want 1", len(images))
	}
	got := images[0]
	if got.Format != "png" || got.Width != 4 || got.Height != 2 {
		t.Errorf("image info = %+v", got)
	}
}
