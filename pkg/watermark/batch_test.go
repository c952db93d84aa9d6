package watermark_test

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	cp "github.com/otiai10/copy"

	watermark "github.com/nju-xjk/Photo-Watermark-1/pkg/watermark"
)

func defaultOpts() watermark.Options {
	return watermark.Options{FontSize: 24, Color: "white", Position: "bottom-right", Opacity: 0.8}
}

func TestOutputName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"IMG_001.jpg", "IMG_001_watermark.jpg"},
		{"photo.PNG", "photo_watermark.PNG"},
		{"a.b.tiff", "a.b_watermark.tiff"},
	}
	for _, tc := range tests {
		if got := watermark.OutputName(tc.in); got != tc.want {
			t.Errorf("OutputName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsSupported(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.TIF", "e.tiff", "f.bmp"} {
		if !watermark.IsSupported(name) {
			t.Errorf("IsSupported(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"a.txt", "b.gif", "noext", "c.jpg.bak"} {
		if watermark.IsSupported(name) {
			t.Errorf("IsSupported(%q) = true, want false", name)
		}
	}
}

func TestRunEmptyDir(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(filepath.Join(in, "notes.txt"), []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := watermark.NewReader(false)
	defer r.Close()

	success, fail, err := watermark.NewProcessor(in, out, defaultOpts(), r).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if success != 0 || fail != 0 {
		t.Errorf("Run on empty dir = (%d, %d), want (0, 0)", success, fail)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("read out dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("empty input produced %d output files", len(entries))
	}
}

func TestRunWatermarksEverySupportedImage(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")

	src := filepath.Join(in, "a.png")
	writeSolidPNG(t, src, 120, 80, color.NRGBA{30, 60, 90, 255})
	for _, name := range []string{"b.png", "c.PNG"} {
		if err := cp.Copy(src, filepath.Join(in, name)); err != nil {
			t.Fatalf("stage fixture %s: %v", name, err)
		}
	}

	r := watermark.NewReader(false)
	defer r.Close()

	success, fail, err := watermark.NewProcessor(in, out, defaultOpts(), r).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if success != 3 || fail != 0 {
		t.Errorf("Run = (%d, %d), want (3, 0)", success, fail)
	}

	for _, name := range []string{"a_watermark.png", "b_watermark.png", "c_watermark.PNG"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}
}

func TestRunTalliesUndecodableImage(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")

	writeSolidPNG(t, filepath.Join(in, "good.png"), 64, 64, color.NRGBA{200, 200, 200, 255})
	if err := os.WriteFile(filepath.Join(in, "bad.jpg"), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := watermark.NewReader(false)
	defer r.Close()

	success, fail, err := watermark.NewProcessor(in, out, defaultOpts(), r).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if success != 1 || fail != 1 {
		t.Errorf("Run = (%d, %d), want (1, 1)", success, fail)
	}
	if _, err := os.Stat(filepath.Join(out, "bad_watermark.jpg")); !os.IsNotExist(err) {
		t.Error("failed file still produced an output")
	}
}

func TestProcessFileAbsentTimestampProducesNoOutput(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	r := watermark.NewReader(false)
	defer r.Close()

	p := watermark.NewProcessor(in, out, defaultOpts(), r)
	if p.ProcessFile(filepath.Join(in, "vanished.jpg")) {
		t.Error("ProcessFile on a missing file reported success")
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("read out dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("failed file produced %d outputs", len(entries))
	}
}
