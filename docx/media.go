package docx

import (
	"bytes"
	"image"
	"path"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ImageInfo describes one embedded media part.
type ImageInfo struct {
	Path   string
	Format string
	Width  int
	Height int
}

// Images inspects the archive's media parts and reports the format and
// pixel dimensions of each. Formats without a registered decoder (WMF and
// EMF vector images, typically) are reported by extension with zero
// dimensions.
func (f *File) Images() []ImageInfo {
	var out []ImageInfo
	for _, name := range f.order {
		if !strings.HasPrefix(name, "word/media/") {
			continue
		}
		info := ImageInfo{Path: name}
		cfg, format, err := image.DecodeConfig(bytes.NewReader(f.parts[name]))
		if err == nil {
			info.Format = format
			info.Width = cfg.Width
			info.Height = cfg.Height
		} else {
			info.Format = strings.TrimPrefix(path.Ext(name), ".")
		}
		out = append(out, info)
	}
	return out
}
