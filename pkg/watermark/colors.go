package watermark

import (
	"image/color"
	"strconv"
	"strings"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

var namedColors = map[string]color.NRGBA{
	"white":   white,
	"black":   {0, 0, 0, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 255, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
}

// ParseColor resolves a color spec to an opaque color. It accepts a named
// color, #RRGGBB, or rgb(r,g,b). Anything malformed resolves to white so a
// bad value can never abort a batch.
func ParseColor(spec string) color.NRGBA {
	s := strings.TrimSpace(spec)

	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c
	}

	if strings.HasPrefix(s, "#") && len(s) == 7 {
		if v, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
		}
	}

	if strings.HasPrefix(strings.ToLower(s), "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) == 3 {
			var vals [3]uint8
			ok := true
			for i, p := range parts {
				v, err := strconv.Atoi(strings.TrimSpace(p))
				if err != nil || v < 0 || v > 255 {
					ok = false
					break
				}
				vals[i] = uint8(v)
			}
			if ok {
				return color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: 255}
			}
		}
	}

	return white
}
