package watermark

import (
	"os"
	"time"

	"github.com/barasher/go-exiftool"
	"github.com/rwcarlsen/goexif/exif"
	"k8s.io/klog/v2"
)

var (
	exifDate    = "2006:01:02 15:04:05"
	displayDate = "2006年01月02日"
)

// Reader extracts capture timestamps from image files.
type Reader struct {
	et *exiftool.Exiftool
}

// NewReader returns a Reader. When useExiftool is set it extracts metadata
// through the external exiftool binary; if the binary cannot be started the
// Reader degrades to the built-in EXIF parser.
func NewReader(useExiftool bool) *Reader {
	r := &Reader{}
	if useExiftool {
		et, err := exiftool.NewExiftool()
		if err != nil {
			klog.Warningf("exiftool unavailable, using built-in EXIF parser: %v", err)
		} else {
			r.et = et
		}
	}
	return r
}

// Close releases the exiftool process, if any.
func (r *Reader) Close() {
	if r.et != nil {
		r.et.Close()
	}
}

// CaptureDate returns the formatted capture date for the image at path.
// Metadata tags are tried in priority order; images without a usable tag
// fall back to the file's modification time. The boolean is false only when
// even the filesystem cannot supply a timestamp.
func (r *Reader) CaptureDate(path string) (string, bool) {
	if s, ok := r.metadataDate(path); ok {
		return s, true
	}

	fi, err := os.Stat(path)
	if err != nil {
		klog.Errorf("capture date for %s: %v", path, err)
		return "", false
	}

	klog.Warningf("no capture time in %s, using file mtime", path)
	return fi.ModTime().Format(displayDate), true
}

func (r *Reader) metadataDate(path string) (string, bool) {
	if r.et != nil {
		return r.exiftoolDate(path)
	}
	return r.goexifDate(path)
}

// goexifDate parses EXIF tags in-process without decoding pixel data.
func (r *Reader) goexifDate(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		klog.Warningf("open %s: %v", path, err)
		return "", false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		klog.V(1).Infof("no EXIF in %s: %v", path, err)
		return "", false
	}

	// DateTime covers both the EXIF and root IFD variants.
	for _, name := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTimeDigitized, exif.DateTime} {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		s, err := tag.StringVal()
		if err != nil {
			continue
		}
		if ts, err := time.Parse(exifDate, s); err == nil {
			return ts.Format(displayDate), true
		}
	}

	return "", false
}

func (r *Reader) exiftoolDate(path string) (string, bool) {
	fis := r.et.ExtractMetadata(path)
	if len(fis) == 0 {
		return "", false
	}

	fi := fis[0]
	if fi.Err != nil {
		klog.Warningf("extract fail for %q: %v", path, fi.Err)
		return "", false
	}

	for _, key := range []string{"DateTimeOriginal", "CreateDate", "DateTimeDigitized", "ModifyDate"} {
		s, err := fi.GetString(key)
		if err != nil {
			continue
		}
		if ts, err := time.Parse(exifDate, s); err == nil {
			return ts.Format(displayDate), true
		}
	}

	return "", false
}
