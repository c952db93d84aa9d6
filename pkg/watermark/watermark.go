// Package watermark stamps images with their capture date.
package watermark

import (
	"path/filepath"
	"strings"
)

// Options configure how the date watermark is drawn onto each image.
type Options struct {
	FontSize int
	Color    string
	Position string
	Opacity  float64

	// FontPath is tried first when resolving a font face; empty means
	// start with the system candidates.
	FontPath string

	// MaxEdge downscales the longest image edge to this many pixels
	// before watermarking. Zero keeps the original size.
	MaxEdge int
}

var supportedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tiff": true,
	".tif":  true,
	".bmp":  true,
}

// IsSupported reports whether the file name carries a supported image
// extension, case-insensitively.
func IsSupported(name string) bool {
	return supportedExt[strings.ToLower(filepath.Ext(name))]
}

// OutputName derives the destination file name for an input image:
// IMG_001.jpg becomes IMG_001_watermark.jpg.
func OutputName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_watermark" + ext
}
