package docx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// The read-side schema below mirrors the WordprocessingML elements the
// formatter cares about. Elements that carry content verbatim through the
// pipeline (drawings, legacy pict shapes, math) are captured as raw XML
// rather than decoded. Body and paragraph content is decoded with custom
// unmarshalers because encoding/xml's struct mapping collects repeated
// children per field, losing the relative order of paragraphs vs tables and
// runs vs hyperlinks.

// documentXML is the root of word/document.xml.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

// bodyXML holds the document body: top-level blocks in document order plus
// the trailing section properties.
type bodyXML struct {
	Blocks []blockXML
	SectPr *sectPrXML
}

// blockXML is one top-level body element. Exactly one field is set.
type blockXML struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return fmt.Errorf("decoding paragraph: %w", err)
				}
				b.Blocks = append(b.Blocks, blockXML{Paragraph: &p})
			case "tbl":
				var tbl tableXML
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return fmt.Errorf("decoding table: %w", err)
				}
				b.Blocks = append(b.Blocks, blockXML{Table: &tbl})
			case "sectPr":
				var s sectPrXML
				if err := d.DecodeElement(&s, &t); err != nil {
					return fmt.Errorf("decoding section properties: %w", err)
				}
				b.SectPr = &s
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// paragraphXML is a w:p element: optional properties plus ordered content
// items.
type paragraphXML struct {
	Props *pPrXML
	Items []paragraphItemXML
}

// paragraphItemXML is one run-level item inside a paragraph. Exactly one
// field is set.
type paragraphItemXML struct {
	Run       *runXML
	Hyperlink *hyperlinkXML
	FldSimple *fldSimpleXML

	// Math holds the complete element text of an m:oMath or m:oMathPara
	// block, wrapper included.
	Math string
}

func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				var props pPrXML
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				p.Props = &props
			case "r":
				var r runXML
				if err := d.DecodeElement(&r, &t); err != nil {
					return err
				}
				p.Items = append(p.Items, paragraphItemXML{Run: &r})
			case "hyperlink":
				var h hyperlinkXML
				if err := d.DecodeElement(&h, &t); err != nil {
					return err
				}
				p.Items = append(p.Items, paragraphItemXML{Hyperlink: &h})
			case "fldSimple":
				var f fldSimpleXML
				if err := d.DecodeElement(&f, &t); err != nil {
					return err
				}
				p.Items = append(p.Items, paragraphItemXML{FldSimple: &f})
			case "oMath", "oMathPara":
				raw, err := captureRaw(d, t, "m")
				if err != nil {
					return err
				}
				p.Items = append(p.Items, paragraphItemXML{Math: raw})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// valAttrXML is the common { w:val="..." } single-attribute element.
type valAttrXML struct {
	Val string `xml:"val,attr"`
}

// pPrXML holds the paragraph properties the formatter reads.
type pPrXML struct {
	Style     *valAttrXML `xml:"pStyle"`
	PageBreak *valAttrXML `xml:"pageBreakBefore"`
	NumPr     *numPrXML   `xml:"numPr"`
	Spacing   *spacingXML `xml:"spacing"`
	Ind       *indXML     `xml:"ind"`
	Jc        *valAttrXML `xml:"jc"`
}

type numPrXML struct {
	Ilvl  *valAttrXML `xml:"ilvl"`
	NumID *valAttrXML `xml:"numId"`
}

type spacingXML struct {
	Before   *int   `xml:"before,attr"`
	After    *int   `xml:"after,attr"`
	Line     *int   `xml:"line,attr"`
	LineRule string `xml:"lineRule,attr"`
}

type indXML struct {
	FirstLine *int `xml:"firstLine,attr"`
	Hanging   *int `xml:"hanging,attr"`
	Left      *int `xml:"left,attr"`
	Start     *int `xml:"start,attr"`
	Right     *int `xml:"right,attr"`
	End       *int `xml:"end,attr"`
}

// runXML is a w:r element: optional run properties plus ordered content.
type runXML struct {
	Props *rPrXML
	Items []runItemXML
}

type runItemKind int

const (
	runItemText runItemKind = iota
	runItemTab
	runItemBreak
	runItemDrawing
	runItemFldCharBegin
	runItemFldCharSeparate
	runItemFldCharEnd
	runItemInstrText
)

// runItemXML is one content child of a run. Text holds literal text for
// runItemText and runItemInstrText, the complete element text for
// runItemDrawing, and the w:type attribute for runItemBreak.
type runItemXML struct {
	Kind runItemKind
	Text string
}

func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				var props rPrXML
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				r.Props = &props
			case "t":
				var text struct {
					Text string `xml:",chardata"`
				}
				if err := d.DecodeElement(&text, &t); err != nil {
					return err
				}
				r.Items = append(r.Items, runItemXML{Kind: runItemText, Text: text.Text})
			case "tab":
				if err := d.Skip(); err != nil {
					return err
				}
				r.Items = append(r.Items, runItemXML{Kind: runItemTab})
			case "br", "cr":
				brType := ""
				for _, a := range t.Attr {
					if a.Name.Local == "type" {
						brType = a.Value
					}
				}
				if err := d.Skip(); err != nil {
					return err
				}
				r.Items = append(r.Items, runItemXML{Kind: runItemBreak, Text: brType})
			case "drawing", "pict", "object":
				raw, err := captureRaw(d, t, "w")
				if err != nil {
					return err
				}
				r.Items = append(r.Items, runItemXML{Kind: runItemDrawing, Text: raw})
			case "fldChar":
				kind := runItemFldCharBegin
				for _, a := range t.Attr {
					if a.Name.Local == "fldCharType" {
						switch a.Value {
						case "separate":
							kind = runItemFldCharSeparate
						case "end":
							kind = runItemFldCharEnd
						}
					}
				}
				if err := d.Skip(); err != nil {
					return err
				}
				r.Items = append(r.Items, runItemXML{Kind: kind})
			case "instrText":
				var text struct {
					Text string `xml:",chardata"`
				}
				if err := d.DecodeElement(&text, &t); err != nil {
					return err
				}
				r.Items = append(r.Items, runItemXML{Kind: runItemInstrText, Text: text.Text})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// rPrXML holds the run properties the formatter reads or carries through.
type rPrXML struct {
	Fonts     *rFontsXML  `xml:"rFonts"`
	Bold      *valAttrXML `xml:"b"`
	Italic    *valAttrXML `xml:"i"`
	Strike    *valAttrXML `xml:"strike"`
	Color     *valAttrXML `xml:"color"`
	Sz        *valAttrXML `xml:"sz"`
	Highlight *valAttrXML `xml:"highlight"`
	Underline *valAttrXML `xml:"u"`
}

type rFontsXML struct {
	ASCII string `xml:"ascii,attr"`
	HAnsi string `xml:"hAnsi,attr"`
	CS    string `xml:"cs,attr"`
}

// hyperlinkXML is a w:hyperlink wrapper. Only the run children matter; the
// relationship ID identifies the target.
type hyperlinkXML struct {
	ID   string   `xml:"id,attr"`
	Runs []runXML `xml:"r"`
}

// fldSimpleXML is the compact form of a field: instruction attribute plus
// cached result runs.
type fldSimpleXML struct {
	Instr string   `xml:"instr,attr"`
	Runs  []runXML `xml:"r"`
}

// tableXML is a w:tbl element. Properties, grid and per-row/per-cell
// properties are captured as raw XML and re-emitted verbatim; only the cell
// structure and a few tcPr fields are decoded.
type tableXML struct {
	Props string // inner XML of tblPr
	Grid  string // inner XML of tblGrid
	Style string // tblStyle w:val, for diagnostics
	Rows  []tableRowXML
}

type tableRowXML struct {
	Props string // inner XML of trPr
	Cells []tableCellXML
}

type tableCellXML struct {
	Props          string // inner XML of tcPr
	GridSpan       int
	VMergeContinue bool
	Paragraphs     []paragraphXML
}

func (t *tableXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tblPr":
				var props struct {
					Inner string      `xml:",innerxml"`
					Style *valAttrXML `xml:"tblStyle"`
				}
				if err := d.DecodeElement(&props, &el); err != nil {
					return err
				}
				t.Props = props.Inner
				if props.Style != nil {
					t.Style = props.Style.Val
				}
			case "tblGrid":
				var grid struct {
					Inner string `xml:",innerxml"`
				}
				if err := d.DecodeElement(&grid, &el); err != nil {
					return err
				}
				t.Grid = grid.Inner
			case "tr":
				var row tableRowXML
				if err := d.DecodeElement(&row, &el); err != nil {
					return err
				}
				t.Rows = append(t.Rows, row)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}

func (r *tableRowXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "trPr":
				var props struct {
					Inner string `xml:",innerxml"`
				}
				if err := d.DecodeElement(&props, &el); err != nil {
					return err
				}
				r.Props = props.Inner
			case "tc":
				var cell tableCellXML
				if err := d.DecodeElement(&cell, &el); err != nil {
					return err
				}
				r.Cells = append(r.Cells, cell)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}

func (c *tableCellXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tcPr":
				var props struct {
					Inner    string      `xml:",innerxml"`
					GridSpan *valAttrXML `xml:"gridSpan"`
					VMerge   *struct {
						Val string `xml:"val,attr"`
					} `xml:"vMerge"`
				}
				if err := d.DecodeElement(&props, &el); err != nil {
					return err
				}
				c.Props = props.Inner
				if props.GridSpan != nil {
					fmt.Sscanf(props.GridSpan.Val, "%d", &c.GridSpan)
				}
				if props.VMerge != nil && props.VMerge.Val != "restart" {
					c.VMergeContinue = true
				}
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &el); err != nil {
					return err
				}
				c.Paragraphs = append(c.Paragraphs, p)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}

// sectPrXML holds the section properties the formatter reads and rewrites.
type sectPrXML struct {
	HeaderRefs []refXML  `xml:"headerReference"`
	FooterRefs []refXML  `xml:"footerReference"`
	PgSz       *pgSzXML  `xml:"pgSz"`
	PgMar      *pgMarXML `xml:"pgMar"`
}

type refXML struct {
	Type string `xml:"type,attr"`
	ID   string `xml:"id,attr"`
}

type pgSzXML struct {
	W *int `xml:"w,attr"`
	H *int `xml:"h,attr"`
}

type pgMarXML struct {
	Top    *int `xml:"top,attr"`
	Right  *int `xml:"right,attr"`
	Bottom *int `xml:"bottom,attr"`
	Left   *int `xml:"left,attr"`
	Header *int `xml:"header,attr"`
	Footer *int `xml:"footer,attr"`
	Gutter *int `xml:"gutter,attr"`
}

// nsPrefix maps the namespace URIs that appear on carried-through elements
// to the prefixes the writer declares on the document root. Word emits
// these prefixes itself, so inner content captured verbatim stays valid.
var nsPrefix = map[string]string{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":          "w",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships":   "r",
	"http://schemas.openxmlformats.org/officeDocument/2006/math":            "m",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                 "a",
	"urn:schemas-microsoft-com:vml":                                         "v",
	"urn:schemas-microsoft-com:office:office":                               "o",
}

// captureRaw consumes the element started by start and returns its complete
// text: a reconstructed start tag (namespace prefixes re-applied), the inner
// XML verbatim, and the end tag. defaultPrefix is used when the element's
// namespace is not in nsPrefix.
func captureRaw(d *xml.Decoder, start xml.StartElement, defaultPrefix string) (string, error) {
	var body struct {
		Inner string `xml:",innerxml"`
	}
	if err := d.DecodeElement(&body, &start); err != nil {
		return "", err
	}

	prefix := defaultPrefix
	if p, ok := nsPrefix[start.Name.Space]; ok {
		prefix = p
	}
	tag := prefix + ":" + start.Name.Local

	var sb strings.Builder
	sb.WriteString("<" + tag)
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		name := a.Name.Local
		if p, ok := nsPrefix[a.Name.Space]; ok {
			name = p + ":" + name
		}
		sb.WriteString(" " + name + `="` + escapeAttr(a.Value) + `"`)
	}
	sb.WriteString(">")
	sb.WriteString(body.Inner)
	sb.WriteString("</" + tag + ">")
	return sb.String(), nil
}

// onFlag reports whether an OOXML boolean property element is on. The
// element being present with no w:val, or with any value other than "0" or
// "false", means on.
func onFlag(v *valAttrXML) bool {
	if v == nil {
		return false
	}
	return v.Val != "0" && v.Val != "false"
}
