package watermark

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
)

const jpegQuality = 95

// Render draws text onto a copy of the image at inPath and writes the
// result to outPath. The source file is never modified. Transparency is
// flattened onto white since the photographic output formats carry no alpha.
func Render(inPath, outPath, text string, o Options) error {
	src, err := imaging.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}

	base := image.Image(imaging.Clone(src))
	if o.MaxEdge > 0 {
		base = shrinkToEdge(base, o.MaxEdge)
	}
	w := base.Bounds().Dx()
	h := base.Bounds().Dy()

	face, err := resolveFace(o.FontPath, o.FontSize)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	bounds, _ := font.BoundString(face, text)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x, y := Position(o.Position, w, h, textW, textH, DefaultMargin)

	rgb := ParseColor(o.Color)
	alpha := uint8(math.Round(255 * clamp01(o.Opacity)))
	fill := color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: alpha}

	overlay := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  overlay,
		Src:  image.NewUniform(fill),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.I(y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)

	composited := imaging.Overlay(base, overlay, image.Pt(0, 0), 1.0)

	bg := imaging.New(w, h, white)
	flat := imaging.Overlay(bg, composited, image.Pt(0, 0), 1.0)

	if err := saveImage(flat, outPath); err != nil {
		return fmt.Errorf("save %s: %w", outPath, err)
	}
	return nil
}

// shrinkToEdge downscales so the longest edge is at most edge pixels.
func shrinkToEdge(img image.Image, edge int) image.Image {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w <= edge && h <= edge {
		return img
	}
	if w >= h {
		return transform.Resize(img, edge, h*edge/w, transform.Lanczos)
	}
	return transform.Resize(img, w*edge/h, edge, transform.Lanczos)
}

func saveImage(img image.Image, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.Save(path, img, imgio.PNGEncoder())
	case ".bmp":
		return imgio.Save(path, img, imgio.BMPEncoder())
	case ".tif", ".tiff":
		return saveTIFF(img, path)
	default:
		return imgio.Save(path, img, imgio.JPEGEncoder(jpegQuality))
	}
}

func saveTIFF(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
