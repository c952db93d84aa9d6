package watermark_test

import (
	"testing"

	watermark "github.com/nju-xjk/Photo-Watermark-1/pkg/watermark"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		imgW    int
		imgH    int
		textW   int
		textH   int
		wantX   int
		wantY   int
	}{
		{"top-left", "top-left", 1000, 800, 100, 40, 20, 20},
		{"top-right", "top-right", 1000, 800, 100, 40, 880, 20},
		{"top-center", "top-center", 1000, 800, 100, 40, 450, 20},
		{"center", "center", 1000, 800, 100, 40, 450, 380},
		{"bottom-left", "bottom-left", 1000, 800, 100, 40, 20, 740},
		{"bottom-right", "bottom-right", 1000, 800, 100, 40, 880, 740},
		{"bottom-center", "bottom-center", 1000, 800, 100, 40, 450, 740},
		{"unknown keyword places bottom-right", "foo", 1000, 800, 100, 40, 880, 740},
		{"oversized text centers with floored division", "center", 100, 100, 101, 40, -1, 30},
		{"oversized text may go negative", "bottom-right", 100, 100, 150, 40, -70, 40},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := watermark.Position(tc.keyword, tc.imgW, tc.imgH, tc.textW, tc.textH, watermark.DefaultMargin)
			if x != tc.wantX || y != tc.wantY {
				t.Errorf("Position(%q, %d, %d, %d, %d) = (%d, %d), want (%d, %d)",
					tc.keyword, tc.imgW, tc.imgH, tc.textW, tc.textH, x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestPositionIsDeterministic(t *testing.T) {
	x1, y1 := watermark.Position("center", 640, 480, 120, 30, watermark.DefaultMargin)
	x2, y2 := watermark.Position("center", 640, 480, 120, 30, watermark.DefaultMargin)
	if x1 != x2 || y1 != y2 {
		t.Errorf("repeated calls differ: (%d,%d) vs (%d,%d)", x1, y1, x2, y2)
	}
}
