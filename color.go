package fontc

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"github.com/gogpu/fontc/internal/image"
)

// ErrInvalidColor is returned by ParseHex for malformed input.
var ErrInvalidColor = errors.New("fontc: invalid color")

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA{}
)

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: image.ToByte(float32(c.R)),
		G: image.ToByte(float32(c.G)),
		B: image.ToByte(float32(c.B)),
		A: image.ToByte(float32(c.A)),
	}
}

// Pixel converts the color to an image pixel.
func (c RGBA) Pixel() image.Pixel {
	return image.Pixel{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Hex formats the color as #rrggbb, or #rrggbbaa when not opaque.
func (c RGBA) Hex() string {
	n := c.Color().(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa"; the leading '#' is
// optional.
func ParseHex(hex string) (RGBA, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 && len(s) != 8 {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return RGBA{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
