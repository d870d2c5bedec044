// Package format identifies the format of uploaded document files so the
// front ends can tell a real .docx apart from files that merely carry the
// extension.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a recognized document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates an Office Open XML word-processing document.
	DOCX
	// DOC indicates a legacy binary Microsoft Word document.
	DOC
	// ODT indicates an OpenDocument Text document.
	ODT
	// PDF indicates a PDF document.
	PDF
	// RTF indicates a Rich Text Format document.
	RTF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	case ODT:
		return "ODT"
	case PDF:
		return "PDF"
	case RTF:
		return "RTF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case DOC:
		return ".doc"
	case ODT:
		return ".odt"
	case PDF:
		return ".pdf"
	case RTF:
		return ".rtf"
	default:
		return ""
	}
}

// Detect determines file format from the filename extension alone.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".doc":
		return DOC
	case ".odt":
		return ODT
	case ".pdf":
		return PDF
	case ".rtf":
		return RTF
	default:
		return Unknown
	}
}

// oleMagic is the compound-file header shared by legacy .doc files.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Sniff inspects file content to determine its format. It is more reliable
// than Detect: a renamed file keeps its magic bytes, and ZIP-based formats
// are told apart by the package parts they contain.
func Sniff(data []byte) Format {
	if len(data) >= 5 && bytes.HasPrefix(data, []byte("%PDF-")) {
		return PDF
	}
	if len(data) >= 5 && bytes.HasPrefix(data, []byte(`{\rtf`)) {
		return RTF
	}
	if len(data) >= len(oleMagic) && bytes.HasPrefix(data, oleMagic) {
		return DOC
	}
	if len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return sniffZip(data)
	}
	return Unknown
}

// sniffZip tells ZIP-based office formats apart by their package layout.
// A word-processing OOXML package always carries word/document.xml, and an
// OpenDocument package starts with a mimetype part.
func sniffZip(data []byte) Format {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Unknown
	}
	for _, f := range zr.File {
		switch f.Name {
		case "word/document.xml":
			return DOCX
		case "mimetype":
			if readMimetype(f) == "application/vnd.oasis.opendocument.text" {
				return ODT
			}
		}
	}
	return Unknown
}

func readMimetype(f *zip.File) string {
	rc, err := f.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()
	buf := make([]byte, 128)
	n, err := rc.Read(buf)
	if err != nil && err != io.EOF {
		return ""
	}
	return strings.TrimSpace(string(buf[:n]))
}

// IsWordDocument reports whether the content is a document the formatter can
// open. Only OOXML .docx qualifies; legacy .doc and converted formats must
// be re-saved by the user first.
func IsWordDocument(data []byte) bool {
	return Sniff(data) == DOCX
}
