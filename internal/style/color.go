package style

import (
	"fmt"
	"strconv"
)

// Color is an sRGB triple. The zero value is black.
type Color struct {
	R, G, B int
}

// ParseHex parses "#rrggbb" or the short "#rgb" form. Malformed input
// falls back to white rather than failing the caller.
func ParseHex(s string) Color {
	switch len(s) {
	case 7:
		if s[0] != '#' {
			return Color{255, 255, 255}
		}
		r, err1 := strconv.ParseUint(s[1:3], 16, 8)
		g, err2 := strconv.ParseUint(s[3:5], 16, 8)
		b, err3 := strconv.ParseUint(s[5:7], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{255, 255, 255}
		}
		return Color{int(r), int(g), int(b)}
	case 4:
		if s[0] != '#' {
			return Color{255, 255, 255}
		}
		v, err := strconv.ParseUint(s[1:], 16, 16)
		if err != nil {
			return Color{255, 255, 255}
		}
		r := int(v >> 8 & 0xf)
		g := int(v >> 4 & 0xf)
		b := int(v & 0xf)
		return Color{r*16 + r, g*16 + g, b*16 + b}
	default:
		return Color{255, 255, 255}
	}
}

// Hex formats the color as lowercase "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

// Blend interpolates linearly toward o. t=0 yields c, t=1 yields o;
// t outside [0,1] clamps.
func (c Color) Blend(o Color, t float64) Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return Color{
		R: c.R + int(t*float64(o.R-c.R)),
		G: c.G + int(t*float64(o.G-c.G)),
		B: c.B + int(t*float64(o.B-c.B)),
	}
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
