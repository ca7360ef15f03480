package chart

import (
	"image/color"
	"strconv"
	"strings"
)

// DefaultSeriesColor is used when a blueprint color cannot be parsed.
var DefaultSeriesColor = color.RGBA{R: 0xFF, G: 0x8C, B: 0x00, A: 0xFF}

var namedColors = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xFF},
	"white":   {0xFF, 0xFF, 0xFF, 0xFF},
	"red":     {0xFF, 0x00, 0x00, 0xFF},
	"green":   {0x00, 0x80, 0x00, 0xFF},
	"lime":    {0x00, 0xFF, 0x00, 0xFF},
	"blue":    {0x00, 0x00, 0xFF, 0xFF},
	"orange":  {0xFF, 0xA5, 0x00, 0xFF},
	"yellow":  {0xFF, 0xFF, 0x00, 0xFF},
	"purple":  {0x80, 0x00, 0x80, 0xFF},
	"magenta": {0xFF, 0x00, 0xFF, 0xFF},
	"cyan":    {0x00, 0xFF, 0xFF, 0xFF},
	"teal":    {0x00, 0x80, 0x80, 0xFF},
	"gray":    {0x80, 0x80, 0x80, 0xFF},
	"grey":    {0x80, 0x80, 0x80, 0xFF},
}

// ParseColor understands #rgb, #rrggbb, #rrggbbaa, rgb(r, g, b),
// rgba(r, g, b, a) and a few CSS color names. Alpha is ignored.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	for _, prefix := range []string{"rgba(", "rgb("} {
		if strings.HasPrefix(s, prefix) && strings.HasSuffix(s, ")") {
			return parseRGBFunc(s[len(prefix) : len(s)-1])
		}
	}
	return color.RGBA{}, false
}

// ColorOr returns the parsed color or fallback.
func ColorOr(s string, fallback color.RGBA) color.RGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return fallback
}

func parseHex(h string) (color.RGBA, bool) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	case 8:
		h = h[:6]
	default:
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, true
}

func parseRGBFunc(args string) (color.RGBA, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, false
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xFF}, true
}
