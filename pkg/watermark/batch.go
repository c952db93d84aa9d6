package watermark

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// Processor applies a dated watermark to every supported image directly
// inside InDir, writing results to OutDir.
type Processor struct {
	InDir  string
	OutDir string
	Opts   Options

	reader *Reader
}

// NewProcessor builds a Processor sharing the given metadata reader.
func NewProcessor(inDir, outDir string, opts Options, reader *Reader) *Processor {
	return &Processor{InDir: inDir, OutDir: outDir, Opts: opts, reader: reader}
}

// Run processes the input directory sequentially and returns the success
// and failure counts. Per-file errors are logged and tallied, never fatal;
// the returned error covers only output directory creation and the scan.
func (p *Processor) Run() (int, int, error) {
	if err := os.MkdirAll(p.OutDir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("mkdir %s: %w", p.OutDir, err)
	}

	names, err := p.discover()
	if err != nil {
		return 0, 0, fmt.Errorf("scan %s: %w", p.InDir, err)
	}
	if len(names) == 0 {
		klog.Warningf("no supported images found in %s", p.InDir)
		return 0, 0, nil
	}

	klog.Infof("found %d images in %s", len(names), p.InDir)

	success, fail := 0, 0
	for _, name := range names {
		if p.ProcessFile(filepath.Join(p.InDir, name)) {
			success++
		} else {
			fail++
		}
	}
	return success, fail, nil
}

// discover lists supported image names directly inside InDir, sorted for
// deterministic processing order.
func (p *Processor) discover() ([]string, error) {
	dirents, err := godirwalk.ReadDirents(p.InDir, nil)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, de := range dirents {
		if de.IsDir() || !IsSupported(de.Name()) {
			continue
		}
		names = append(names, de.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ProcessFile watermarks a single image and reports whether it succeeded.
func (p *Processor) ProcessFile(path string) bool {
	name := filepath.Base(path)
	klog.Infof("processing %s", name)

	date, ok := p.reader.CaptureDate(path)
	if !ok {
		klog.Warningf("skipping %s: no usable timestamp", name)
		return false
	}

	out := filepath.Join(p.OutDir, OutputName(name))
	if err := Render(path, out, date, p.Opts); err != nil {
		klog.Errorf("watermark %s: %v", name, err)
		return false
	}

	klog.Infof("%s -> %s", name, filepath.Base(out))
	return true
}
