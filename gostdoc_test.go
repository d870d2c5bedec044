package gostdoc

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gost-tools/gostdoc/docx"
	"github.com/gost-tools/gostdoc/model"
)

const fixtureContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const fixtureRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// sampleReport builds an in-memory DOCX with a title page, a contents
// marker and a body paragraph that needs both styling and text cleanup.
func sampleReport(t *testing.T) []byte {
	t.Helper()

	para := func(text string) string {
		return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
	}
	body := para("МИНИСТЕРСТВО НАУКИ") +
		para("Отчет о работе") +
		para("СОДЕРЖАНИЕ") +
		para("ВВЕДЕНИЕ") +
		para("Работа посвящена &quot;исследованию&quot; метода.")
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>` + body + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, data string) {
		t.Helper()
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	write("[Content_Types].xml", fixtureContentTypes)
	write("_rels/.rels", fixtureRootRels)
	write("word/document.xml", document)
	if err := zw.Close(); err != nil {
		t.Fatalf("closing fixture archive: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytes(t *testing.T) {
	out, stats, err := FromBytes(sampleReport(t)).Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if len(stats.Categories) == 0 {
		t.Error("statistics report no paragraph categories")
	}

	f, err := docx.OpenBytes(out)
	if err != nil {
		t.Fatalf("reopening formatted document: %v", err)
	}
	doc := f.Document()

	var haveQuotes, haveHeading bool
	for _, b := range doc.Blocks {
		p, ok := b.(*model.Paragraph)
		if !ok {
			continue
		}
		switch p.Text() {
		case "Работа посвящена «исследованию» метода.":
			haveQuotes = true
		case "ВВЕДЕНИЕ":
			haveHeading = true
			if p.Alignment != model.AlignCenter {
				t.Errorf("heading alignment = %v, want center", p.Alignment)
			}
		case "МИНИСТЕРСТВО НАУКИ":
			if p.Alignment != model.AlignUnset {
				t.Error("title-page paragraph was restyled")
			}
		}
	}
	if !haveQuotes {
		t.Error("quotes were not unified in the body")
	}
	if !haveHeading {
		t.Error("heading paragraph missing from the output")
	}

	// The formatted archive must carry a page-number footer.
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatal(err)
	}
	var haveFooter bool
	for _, zf := range zr.File {
		if strings.HasPrefix(zf.Name, "word/footer") {
			haveFooter = true
		}
	}
	if !haveFooter {
		t.Error("no footer part in the formatted archive")
	}
}

func TestOpenAndFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "report.docx")
	if err := os.WriteFile(in, sampleReport(t), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "report_gost.docx")

	stats, err := Open(in).Format(out)
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if len(stats.Categories) == 0 {
		t.Error("statistics report no paragraph categories")
	}
	if _, err := docx.Open(out); err != nil {
		t.Fatalf("output is not a readable document: %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent.docx")).Format("out.docx"); err == nil {
		t.Error("Open of a missing file must fail at Format time")
	}
}

func TestFromBytesRejectsGarbage(t *testing.T) {
	if _, _, err := FromBytes([]byte("not a zip archive")).Bytes(); err == nil {
		t.Error("garbage input must fail")
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must returned %d", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(0, os.ErrNotExist)
}
