package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gost-tools/gostdoc/model"
)

const (
	contentTypesPart = "[Content_Types].xml"
	documentRelsPart = "word/_rels/document.xml.rels"

	footerRelType     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	footerContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
)

// documentNamespaces is the namespace boilerplate Word declares on the
// document root. Declaring the full set keeps carried-through drawing and
// math XML valid without rewriting its prefixes.
const documentNamespaces = `xmlns:wpc="http://schemas.microsoft.com/office/word/2010/wordprocessingCanvas"` +
	` xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"` +
	` xmlns:o="urn:schemas-microsoft-com:office:office"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
	` xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"` +
	` xmlns:v="urn:schemas-microsoft-com:vml"` +
	` xmlns:wp14="http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:w10="urn:schemas-microsoft-com:office:word"` +
	` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:w14="http://schemas.microsoft.com/office/word/2010/wordml"` +
	` xmlns:w15="http://schemas.microsoft.com/office/word/2012/wordml"` +
	` xmlns:wpg="http://schemas.microsoft.com/office/word/2010/wordprocessingGroup"` +
	` xmlns:wpi="http://schemas.microsoft.com/office/word/2010/wordprocessingInk"` +
	` xmlns:wne="http://schemas.microsoft.com/office/word/2006/wordml"` +
	` xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"` +
	` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
	` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"` +
	` mc:Ignorable="w14 w15 wp14"`

// Save writes the document, with the current state of the model, to a new
// DOCX file.
func (f *File) Save(filename string) error {
	data, err := f.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

// Bytes serializes the document to an in-memory DOCX archive. The document
// part is regenerated from the model; every other part is copied from the
// source archive, except the footer part when page numbering was requested.
func (f *File) Bytes() ([]byte, error) {
	if err := f.ensureFooter(); err != nil {
		return nil, err
	}
	f.parts[documentPart] = writeDocumentXML(f.doc)
	f.parts[documentRelsPart] = f.rels.serialize()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	written := make(map[string]bool, len(f.parts))
	for _, name := range f.order {
		if err := writePart(zw, name, f.parts[name]); err != nil {
			return nil, err
		}
		written[name] = true
	}
	// Parts added during this save (the generated footer) go at the end.
	var added []string
	for name := range f.parts {
		if !written[name] {
			added = append(added, name)
		}
	}
	sort.Strings(added)
	for _, name := range added {
		if err := writePart(zw, name, f.parts[name]); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing part %s: %w", name, err)
	}
	return nil
}

// ensureFooter materializes the page-number footer when a section requests
// it: either overwriting the section's existing footer part or creating a
// new part wired through the relationships and content types.
func (f *File) ensureFooter() error {
	sec := f.section()
	if !sec.PageNumbers {
		return nil
	}

	if sec.FooterRef != "" {
		if target := f.rels.targetFor(sec.FooterRef); target != "" {
			name := resolvePartName(target)
			if _, exists := f.parts[name]; !exists {
				f.order = append(f.order, name)
			}
			f.parts[name] = footerXML()
			return f.registerContentType("/"+name, footerContentType)
		}
	}

	name := f.freeFooterName()
	sec.FooterRef = f.rels.add(footerRelType, strings.TrimPrefix(name, "word/"))
	f.parts[name] = footerXML()
	return f.registerContentType("/"+name, footerContentType)
}

func (f *File) section() *model.Section {
	if len(f.doc.Sections) == 0 {
		f.doc.Sections = []*model.Section{{PageWidth: 21.0, PageHeight: 29.7}}
	}
	return f.doc.Sections[0]
}

func (f *File) registerContentType(partName, contentType string) error {
	ct, err := parseContentTypes(f.parts[contentTypesPart])
	if err != nil {
		return fmt.Errorf("parsing %s: %w", contentTypesPart, err)
	}
	ct.ensureOverride(partName, contentType)
	f.parts[contentTypesPart] = ct.serialize()
	return nil
}

// freeFooterName picks the first footerN.xml name not taken by an existing
// part.
func (f *File) freeFooterName() string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("word/footer%d.xml", n)
		if _, exists := f.parts[name]; !exists {
			return name
		}
	}
}

// resolvePartName turns a relationship target into an archive part name.
// Targets are relative to word/ unless rooted.
func resolvePartName(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return "word/" + target
}

// footerXML is the footer part: a single centered paragraph holding a PAGE
// field.
func footerXML() []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:ftr ` + documentNamespaces + `>`)
	sb.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>`)
	sb.WriteString(`<w:r><w:fldChar w:fldCharType="begin"/></w:r>`)
	sb.WriteString(`<w:r><w:instrText xml:space="preserve"> PAGE </w:instrText></w:r>`)
	sb.WriteString(`<w:r><w:fldChar w:fldCharType="end"/></w:r>`)
	sb.WriteString(`</w:p></w:ftr>`)
	return []byte(sb.String())
}

// writeDocumentXML regenerates word/document.xml from the model.
func writeDocumentXML(doc *model.Document) []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:document ` + documentNamespaces + `>`)
	sb.WriteString(`<w:body>`)
	for _, blk := range doc.Blocks {
		switch b := blk.(type) {
		case *model.Paragraph:
			writeParagraph(&sb, b)
		case *model.Table:
			writeTable(&sb, b)
		}
	}
	if len(doc.Sections) > 0 {
		writeSectPr(&sb, doc.Sections[0])
	}
	sb.WriteString(`</w:body></w:document>`)
	return []byte(sb.String())
}

func writeSectPr(sb *strings.Builder, s *model.Section) {
	sb.WriteString(`<w:sectPr>`)
	if s.HeaderRef != "" {
		sb.WriteString(`<w:headerReference w:type="default" r:id="` + escapeAttr(s.HeaderRef) + `"/>`)
	}
	if s.FooterRef != "" {
		sb.WriteString(`<w:footerReference w:type="default" r:id="` + escapeAttr(s.FooterRef) + `"/>`)
	}
	fmt.Fprintf(sb, `<w:pgSz w:w="%d" w:h="%d"/>`, cmToTwips(s.PageWidth), cmToTwips(s.PageHeight))
	fmt.Fprintf(sb, `<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="708" w:footer="708" w:gutter="0"/>`,
		cmToTwips(s.Margins.Top), cmToTwips(s.Margins.Right), cmToTwips(s.Margins.Bottom), cmToTwips(s.Margins.Left))
	sb.WriteString(`</w:sectPr>`)
}

func writeParagraph(sb *strings.Builder, p *model.Paragraph) {
	sb.WriteString(`<w:p>`)
	writeParagraphProps(sb, p)

	for i := 0; i < len(p.Runs); {
		r := p.Runs[i]
		if r.HyperlinkID == "" {
			writeRun(sb, r)
			i++
			continue
		}
		// Consecutive runs sharing a hyperlink ID regroup under one wrapper.
		sb.WriteString(`<w:hyperlink r:id="` + escapeAttr(r.HyperlinkID) + `">`)
		for i < len(p.Runs) && p.Runs[i].HyperlinkID == r.HyperlinkID {
			writeRun(sb, p.Runs[i])
			i++
		}
		sb.WriteString(`</w:hyperlink>`)
	}

	sb.WriteString(`</w:p>`)
}

func writeParagraphProps(sb *strings.Builder, p *model.Paragraph) {
	if p.StyleID == "" && !p.PageBreakBefore && p.NumID == "" &&
		!p.Spacing.Set && !p.Indent.Set && p.Alignment == model.AlignUnset {
		return
	}
	sb.WriteString(`<w:pPr>`)
	if p.StyleID != "" {
		sb.WriteString(`<w:pStyle w:val="` + escapeAttr(p.StyleID) + `"/>`)
	}
	if p.PageBreakBefore {
		sb.WriteString(`<w:pageBreakBefore/>`)
	}
	if p.NumID != "" {
		fmt.Fprintf(sb, `<w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%s"/></w:numPr>`, p.NumLevel, escapeAttr(p.NumID))
	}
	if p.Spacing.Set {
		fmt.Fprintf(sb, `<w:spacing w:before="%d" w:after="%d"`, ptToTwentieths(p.Spacing.Before), ptToTwentieths(p.Spacing.After))
		if p.Spacing.Line > 0 {
			fmt.Fprintf(sb, ` w:line="%d" w:lineRule="auto"`, lineSpacingToOOXML(p.Spacing.Line))
		}
		sb.WriteString(`/>`)
	}
	if p.Indent.Set {
		fmt.Fprintf(sb, `<w:ind w:left="%d"`, cmToTwips(p.Indent.Left))
		if p.Indent.Right != 0 {
			fmt.Fprintf(sb, ` w:right="%d"`, cmToTwips(p.Indent.Right))
		}
		if p.Indent.FirstLine >= 0 {
			fmt.Fprintf(sb, ` w:firstLine="%d"`, cmToTwips(p.Indent.FirstLine))
		} else {
			fmt.Fprintf(sb, ` w:hanging="%d"`, cmToTwips(-p.Indent.FirstLine))
		}
		sb.WriteString(`/>`)
	}
	if p.Alignment != model.AlignUnset {
		sb.WriteString(`<w:jc w:val="` + jcValue(p.Alignment) + `"/>`)
	}
	sb.WriteString(`</w:pPr>`)
}

func jcValue(a model.Alignment) string {
	switch a {
	case model.AlignLeft:
		return "left"
	case model.AlignCenter:
		return "center"
	case model.AlignRight:
		return "right"
	default:
		return "both"
	}
}

func writeRun(sb *strings.Builder, r *model.Run) {
	// Math blocks sit at paragraph level, outside any w:r.
	if r.Math != "" {
		sb.WriteString(r.Math)
		return
	}
	if r.Field != "" {
		sb.WriteString(`<w:fldSimple w:instr="` + escapeAttr(" "+r.Field+" ") + `">`)
		sb.WriteString(`<w:r>`)
		writeRunProps(sb, r.Font)
		if r.Text != "" {
			writeRunText(sb, r.Text)
		}
		sb.WriteString(`</w:r></w:fldSimple>`)
		return
	}

	sb.WriteString(`<w:r>`)
	writeRunProps(sb, r.Font)
	if r.Drawing != "" {
		sb.WriteString(r.Drawing)
	}
	switch r.Break {
	case model.BreakPage:
		sb.WriteString(`<w:br w:type="page"/>`)
	case model.BreakLine:
		sb.WriteString(`<w:br/>`)
	}
	if r.Text != "" {
		writeRunText(sb, r.Text)
	}
	sb.WriteString(`</w:r>`)
}

func writeRunProps(sb *strings.Builder, f model.Font) {
	if f == (model.Font{}) {
		return
	}
	sb.WriteString(`<w:rPr>`)
	if f.Name != "" {
		name := escapeAttr(f.Name)
		sb.WriteString(`<w:rFonts w:ascii="` + name + `" w:hAnsi="` + name + `" w:cs="` + name + `"/>`)
	}
	if f.Bold {
		sb.WriteString(`<w:b/>`)
	}
	if f.Italic {
		sb.WriteString(`<w:i/>`)
	}
	if f.Strike {
		sb.WriteString(`<w:strike/>`)
	}
	if f.Color != "" {
		sb.WriteString(`<w:color w:val="` + escapeAttr(f.Color) + `"/>`)
	}
	if f.Size > 0 {
		fmt.Fprintf(sb, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, ptToHalfPoints(f.Size), ptToHalfPoints(f.Size))
	}
	if f.Highlight != "" {
		sb.WriteString(`<w:highlight w:val="` + escapeAttr(f.Highlight) + `"/>`)
	}
	if f.Underline != "" {
		sb.WriteString(`<w:u w:val="` + escapeAttr(f.Underline) + `"/>`)
	}
	sb.WriteString(`</w:rPr>`)
}

// writeRunText emits the run's text, turning tabs and newlines back into
// their WordprocessingML elements.
func writeRunText(sb *strings.Builder, text string) {
	flush := func(s string) {
		if s != "" {
			sb.WriteString(`<w:t xml:space="preserve">` + escapeText(s) + `</w:t>`)
		}
	}
	start := 0
	for i, ch := range text {
		switch ch {
		case '\t':
			flush(text[start:i])
			sb.WriteString(`<w:tab/>`)
			start = i + 1
		case '\n':
			flush(text[start:i])
			sb.WriteString(`<w:br/>`)
			start = i + 1
		}
	}
	flush(text[start:])
}

func writeTable(sb *strings.Builder, t *model.Table) {
	sb.WriteString(`<w:tbl>`)
	if t.Props != "" {
		sb.WriteString(`<w:tblPr>` + t.Props + `</w:tblPr>`)
	} else {
		sb.WriteString(`<w:tblPr/>`)
	}
	if t.Grid != "" {
		sb.WriteString(`<w:tblGrid>` + t.Grid + `</w:tblGrid>`)
	} else {
		sb.WriteString(`<w:tblGrid/>`)
	}
	for i, row := range t.Rows {
		sb.WriteString(`<w:tr>`)
		if i < len(t.RowProps) && t.RowProps[i] != "" {
			sb.WriteString(`<w:trPr>` + t.RowProps[i] + `</w:trPr>`)
		}
		for _, cell := range row {
			sb.WriteString(`<w:tc>`)
			if cell.Props != "" {
				sb.WriteString(`<w:tcPr>` + cell.Props + `</w:tcPr>`)
			}
			if len(cell.Paragraphs) == 0 {
				sb.WriteString(`<w:p/>`)
			}
			for _, p := range cell.Paragraphs {
				writeParagraph(sb, p)
			}
			sb.WriteString(`</w:tc>`)
		}
		sb.WriteString(`</w:tr>`)
	}
	sb.WriteString(`</w:tbl>`)
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
