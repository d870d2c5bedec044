package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gost-tools/gostdoc/model"
)

const documentPart = "word/document.xml"

// File is an opened DOCX archive: the parsed document model plus every
// archive part, held in memory so Save can copy untouched parts verbatim.
type File struct {
	parts map[string][]byte
	order []string
	doc   *model.Document
	rels  *relationships
}

// Open reads and parses a DOCX file.
func Open(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return OpenBytes(data)
}

// OpenBytes parses a DOCX archive held in memory.
func OpenBytes(data []byte) (*File, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	f := &File{parts: make(map[string][]byte)}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", zf.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", zf.Name, err)
		}
		f.parts[zf.Name] = content
		f.order = append(f.order, zf.Name)
	}

	body, ok := f.parts[documentPart]
	if !ok {
		return nil, fmt.Errorf("not a DOCX file: missing %s", documentPart)
	}

	var docXML documentXML
	if err := xml.Unmarshal(body, &docXML); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", documentPart, err)
	}

	f.rels, err = parseRelationships(f.parts["word/_rels/document.xml.rels"])
	if err != nil {
		return nil, fmt.Errorf("parsing document relationships: %w", err)
	}

	f.doc = buildDocument(&docXML)
	return f, nil
}

// Document returns the parsed document model. The model is owned by the
// caller until Save; mutations are reflected in the written file.
func (f *File) Document() *model.Document {
	return f.doc
}

// buildDocument converts the parsed XML tree into the document model.
func buildDocument(dx *documentXML) *model.Document {
	doc := model.NewDocument()
	for _, blk := range dx.Body.Blocks {
		switch {
		case blk.Paragraph != nil:
			doc.AppendBlock(buildParagraph(blk.Paragraph))
		case blk.Table != nil:
			doc.AppendBlock(buildTable(blk.Table))
		}
	}
	if dx.Body.SectPr != nil {
		doc.Sections = []*model.Section{buildSection(dx.Body.SectPr)}
	}
	return doc
}

func buildSection(sx *sectPrXML) *model.Section {
	s := &model.Section{
		// ISO A4 portrait unless the document says otherwise.
		PageWidth:  21.0,
		PageHeight: 29.7,
	}
	if sx.PgSz != nil {
		if sx.PgSz.W != nil {
			s.PageWidth = twipsToCm(*sx.PgSz.W)
		}
		if sx.PgSz.H != nil {
			s.PageHeight = twipsToCm(*sx.PgSz.H)
		}
	}
	if sx.PgMar != nil {
		if sx.PgMar.Top != nil {
			s.Margins.Top = twipsToCm(*sx.PgMar.Top)
		}
		if sx.PgMar.Bottom != nil {
			s.Margins.Bottom = twipsToCm(*sx.PgMar.Bottom)
		}
		if sx.PgMar.Left != nil {
			s.Margins.Left = twipsToCm(*sx.PgMar.Left)
		}
		if sx.PgMar.Right != nil {
			s.Margins.Right = twipsToCm(*sx.PgMar.Right)
		}
	}
	for _, ref := range sx.HeaderRefs {
		if ref.Type == "default" || s.HeaderRef == "" {
			s.HeaderRef = ref.ID
		}
	}
	for _, ref := range sx.FooterRefs {
		if ref.Type == "default" || s.FooterRef == "" {
			s.FooterRef = ref.ID
		}
	}
	return s
}

func buildParagraph(px *paragraphXML) *model.Paragraph {
	p := &model.Paragraph{}
	applyParagraphProps(p, px.Props)

	fld := &fieldState{}
	for _, item := range px.Items {
		switch {
		case item.Run != nil:
			appendRun(p, item.Run, "", fld)
		case item.Hyperlink != nil:
			for i := range item.Hyperlink.Runs {
				appendRun(p, &item.Hyperlink.Runs[i], item.Hyperlink.ID, fld)
			}
		case item.FldSimple != nil:
			r := &model.Run{Field: strings.TrimSpace(item.FldSimple.Instr)}
			for i := range item.FldSimple.Runs {
				inner := &item.FldSimple.Runs[i]
				if r.Font == (model.Font{}) {
					r.Font = buildFont(inner.Props)
				}
				for _, it := range inner.Items {
					if it.Kind == runItemText {
						r.Text += it.Text
					}
				}
			}
			p.Runs = append(p.Runs, r)
		case item.Math != "":
			p.Runs = append(p.Runs, &model.Run{Math: item.Math})
		}
	}
	// A field left unterminated at the paragraph end is kept as a field run
	// so its instruction is not lost.
	if fld.active {
		p.Runs = append(p.Runs, fld.finish(""))
	}
	return p
}

func applyParagraphProps(p *model.Paragraph, props *pPrXML) {
	if props == nil {
		return
	}
	if props.Style != nil {
		p.StyleID = props.Style.Val
	}
	p.PageBreakBefore = onFlag(props.PageBreak)
	if props.NumPr != nil && props.NumPr.NumID != nil {
		p.NumID = props.NumPr.NumID.Val
		if props.NumPr.Ilvl != nil {
			p.NumLevel, _ = strconv.Atoi(props.NumPr.Ilvl.Val)
		}
	}
	if props.Jc != nil {
		p.Alignment = buildAlignment(props.Jc.Val)
	}
	if props.Ind != nil {
		p.Indent.Set = true
		if props.Ind.FirstLine != nil {
			p.Indent.FirstLine = twipsToCm(*props.Ind.FirstLine)
		}
		if props.Ind.Hanging != nil {
			p.Indent.FirstLine = -twipsToCm(*props.Ind.Hanging)
		}
		if props.Ind.Left != nil {
			p.Indent.Left = twipsToCm(*props.Ind.Left)
		} else if props.Ind.Start != nil {
			p.Indent.Left = twipsToCm(*props.Ind.Start)
		}
		if props.Ind.Right != nil {
			p.Indent.Right = twipsToCm(*props.Ind.Right)
		} else if props.Ind.End != nil {
			p.Indent.Right = twipsToCm(*props.Ind.End)
		}
	}
	if props.Spacing != nil {
		p.Spacing.Set = true
		if props.Spacing.Before != nil {
			p.Spacing.Before = twentiethsToPt(*props.Spacing.Before)
		}
		if props.Spacing.After != nil {
			p.Spacing.After = twentiethsToPt(*props.Spacing.After)
		}
		// Only multiplier-based line spacing maps onto the model; exact and
		// atLeast rules are dropped.
		if props.Spacing.Line != nil && (props.Spacing.LineRule == "" || props.Spacing.LineRule == "auto") {
			p.Spacing.Line = lineSpacingFromOOXML(*props.Spacing.Line)
		}
	}
}

func buildAlignment(val string) model.Alignment {
	switch val {
	case "left", "start":
		return model.AlignLeft
	case "center":
		return model.AlignCenter
	case "right", "end":
		return model.AlignRight
	case "both", "justify", "distribute":
		return model.AlignJustify
	default:
		return model.AlignUnset
	}
}

func buildFont(props *rPrXML) model.Font {
	if props == nil {
		return model.Font{}
	}
	f := model.Font{
		Bold:   onFlag(props.Bold),
		Italic: onFlag(props.Italic),
		Strike: onFlag(props.Strike),
	}
	if props.Fonts != nil {
		switch {
		case props.Fonts.ASCII != "":
			f.Name = props.Fonts.ASCII
		case props.Fonts.HAnsi != "":
			f.Name = props.Fonts.HAnsi
		case props.Fonts.CS != "":
			f.Name = props.Fonts.CS
		}
	}
	if props.Sz != nil {
		if hp, err := strconv.Atoi(props.Sz.Val); err == nil {
			f.Size = halfPointsToPt(hp)
		}
	}
	if props.Underline != nil && props.Underline.Val != "none" {
		f.Underline = props.Underline.Val
	}
	if props.Color != nil {
		f.Color = props.Color.Val
	}
	if props.Highlight != nil && props.Highlight.Val != "none" {
		f.Highlight = props.Highlight.Val
	}
	return f
}

// fieldState accumulates a complex field (fldChar begin/separate/end) that
// may span several runs. Between begin and separate the instruction text is
// collected; between separate and end the cached display text.
type fieldState struct {
	active  bool
	display bool
	instr   strings.Builder
	text    strings.Builder
	font    model.Font
}

func (fs *fieldState) start(font model.Font) {
	fs.active = true
	fs.display = false
	fs.instr.Reset()
	fs.text.Reset()
	fs.font = font
}

func (fs *fieldState) finish(hyperlink string) *model.Run {
	r := &model.Run{
		Field:       strings.TrimSpace(fs.instr.String()),
		Text:        fs.text.String(),
		Font:        fs.font,
		HyperlinkID: hyperlink,
	}
	fs.active = false
	return r
}

// appendRun converts one w:r element into model runs, splitting at embedded
// drawings and breaks so every model run carries a single payload.
func appendRun(p *model.Paragraph, rx *runXML, hyperlink string, fld *fieldState) {
	font := buildFont(rx.Props)

	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			p.Runs = append(p.Runs, &model.Run{Text: text.String(), Font: font, HyperlinkID: hyperlink})
			text.Reset()
		}
	}

	for _, it := range rx.Items {
		if fld.active {
			switch it.Kind {
			case runItemInstrText:
				fld.instr.WriteString(it.Text)
			case runItemFldCharSeparate:
				fld.display = true
			case runItemFldCharEnd:
				p.Runs = append(p.Runs, fld.finish(hyperlink))
			case runItemText:
				if fld.display {
					fld.text.WriteString(it.Text)
				}
			}
			continue
		}
		switch it.Kind {
		case runItemText:
			text.WriteString(it.Text)
		case runItemTab:
			text.WriteString("\t")
		case runItemBreak:
			flush()
			bt := model.BreakLine
			if it.Text == "page" {
				bt = model.BreakPage
			}
			p.Runs = append(p.Runs, &model.Run{Break: bt, Font: font, HyperlinkID: hyperlink})
		case runItemDrawing:
			flush()
			p.Runs = append(p.Runs, &model.Run{Drawing: it.Text, Font: font, HyperlinkID: hyperlink})
		case runItemFldCharBegin:
			flush()
			fld.start(font)
		}
	}
	flush()
}

func buildTable(tx *tableXML) *model.Table {
	t := &model.Table{
		StyleID: tx.Style,
		Props:   tx.Props,
		Grid:    tx.Grid,
	}
	for _, rx := range tx.Rows {
		t.RowProps = append(t.RowProps, rx.Props)
		row := make([]*model.Cell, 0, len(rx.Cells))
		for _, cx := range rx.Cells {
			cell := &model.Cell{
				GridSpan:       cx.GridSpan,
				VMergeContinue: cx.VMergeContinue,
				Props:          cx.Props,
			}
			if cell.GridSpan == 0 {
				cell.GridSpan = 1
			}
			for i := range cx.Paragraphs {
				cell.Paragraphs = append(cell.Paragraphs, buildParagraph(&cx.Paragraphs[i]))
			}
			row = append(row, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
