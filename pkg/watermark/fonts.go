package watermark

import (
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"k8s.io/klog/v2"
)

// fontCandidates are tried in order when no usable font path is configured.
var fontCandidates = []string{
	"arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
	"/Library/Fonts/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/usr/share/fonts/truetype/msttcorefonts/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

var (
	fontMu    sync.Mutex
	fontCache = map[string]*opentype.Font{}
)

// resolveFace loads a font face at the requested size, trying the preferred
// path, then the system candidates, and finally the embedded Go Regular
// face. A missing font is an environment concern, never a hard failure.
func resolveFace(preferred string, size int) (font.Face, error) {
	paths := fontCandidates
	if preferred != "" {
		paths = append([]string{preferred}, fontCandidates...)
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		fnt, err := parseFont(p)
		if err != nil {
			klog.Warningf("unusable font %s: %v", p, err)
			continue
		}
		face, err := newFace(fnt, size)
		if err != nil {
			klog.Warningf("unusable font %s: %v", p, err)
			continue
		}
		return face, nil
	}

	klog.V(1).Infof("no system font found, using embedded Go Regular")
	fnt, err := parseFont("")
	if err != nil {
		return nil, err
	}
	return newFace(fnt, size)
}

// parseFont parses the font file at path, or the embedded Go Regular data
// when path is empty. Parsed fonts are cached so a batch reads each font
// file at most once.
func parseFont(path string) (*opentype.Font, error) {
	fontMu.Lock()
	defer fontMu.Unlock()

	if fnt, ok := fontCache[path]; ok {
		return fnt, nil
	}

	data := goregular.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	fontCache[path] = fnt
	return fnt, nil
}

func newFace(fnt *opentype.Font, size int) (font.Face, error) {
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
