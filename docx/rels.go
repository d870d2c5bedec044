package docx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// relationships is the parsed word/_rels/document.xml.rels part. Save
// re-serializes it, so every relationship is kept even when the formatter
// only ever adds one (the footer).
type relationships struct {
	entries []relationship
}

type relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

type relationshipsXML struct {
	XMLName xml.Name `xml:"Relationships"`
	Entries []struct {
		ID         string `xml:"Id,attr"`
		Type       string `xml:"Type,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

func parseRelationships(data []byte) (*relationships, error) {
	r := &relationships{}
	if len(data) == 0 {
		return r, nil
	}
	var parsed relationshipsXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	for _, e := range parsed.Entries {
		r.entries = append(r.entries, relationship(e))
	}
	return r, nil
}

// targetFor returns the target of the relationship with the given ID, or
// empty when unknown.
func (r *relationships) targetFor(id string) string {
	for _, e := range r.entries {
		if e.ID == id {
			return e.Target
		}
	}
	return ""
}

// add registers a new internal relationship and returns its generated ID.
func (r *relationships) add(relType, target string) string {
	max := 0
	for _, e := range r.entries {
		if n, err := strconv.Atoi(strings.TrimPrefix(e.ID, "rId")); err == nil && n > max {
			max = n
		}
	}
	id := fmt.Sprintf("rId%d", max+1)
	r.entries = append(r.entries, relationship{ID: id, Type: relType, Target: target})
	return id
}

func (r *relationships) serialize() []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, e := range r.entries {
		sb.WriteString(`<Relationship Id="` + escapeAttr(e.ID) + `" Type="` + escapeAttr(e.Type) + `" Target="` + escapeAttr(e.Target) + `"`)
		if e.TargetMode != "" {
			sb.WriteString(` TargetMode="` + escapeAttr(e.TargetMode) + `"`)
		}
		sb.WriteString(`/>`)
	}
	sb.WriteString(`</Relationships>`)
	return []byte(sb.String())
}

// contentTypes is the parsed [Content_Types].xml part.
type contentTypes struct {
	defaults  []ctDefault
	overrides []ctOverride
}

type ctDefault struct {
	Extension   string
	ContentType string
}

type ctOverride struct {
	PartName    string
	ContentType string
}

type contentTypesXML struct {
	XMLName  xml.Name `xml:"Types"`
	Defaults []struct {
		Extension   string `xml:"Extension,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Default"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

func parseContentTypes(data []byte) (*contentTypes, error) {
	ct := &contentTypes{}
	if len(data) == 0 {
		return ct, nil
	}
	var parsed contentTypesXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	for _, d := range parsed.Defaults {
		ct.defaults = append(ct.defaults, ctDefault(d))
	}
	for _, o := range parsed.Overrides {
		ct.overrides = append(ct.overrides, ctOverride(o))
	}
	return ct, nil
}

// ensureOverride registers a content type for the part unless one is
// already declared.
func (ct *contentTypes) ensureOverride(partName, contentType string) {
	for _, o := range ct.overrides {
		if o.PartName == partName {
			return
		}
	}
	ct.overrides = append(ct.overrides, ctOverride{PartName: partName, ContentType: contentType})
}

func (ct *contentTypes) serialize() []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	for _, d := range ct.defaults {
		sb.WriteString(`<Default Extension="` + escapeAttr(d.Extension) + `" ContentType="` + escapeAttr(d.ContentType) + `"/>`)
	}
	for _, o := range ct.overrides {
		sb.WriteString(`<Override PartName="` + escapeAttr(o.PartName) + `" ContentType="` + escapeAttr(o.ContentType) + `"/>`)
	}
	sb.WriteString(`</Types>`)
	return []byte(sb.String())
}
