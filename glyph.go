package fontc

import (
	"fmt"
	"unicode"

	"github.com/gogpu/fontc/internal/image"
)

// ImageBuf is a float RGBA raster. Glyph bitmaps, layer images and the atlas
// all use it.
type ImageBuf = image.ImageBuf

// Size is a width and height in pixels.
type Size struct {
	Width, Height int
}

// Point is a pixel position.
type Point struct {
	X, Y int
}

// Box is a glyph's placement in the atlas.
type Box struct {
	X, Y, Width, Height int
}

// Padding is extra room around a glyph, per side, in pixels.
type Padding struct {
	Left, Top, Right, Bottom int
}

// Max returns the per-side maximum of p and o.
func (p Padding) Max(o Padding) Padding {
	return Padding{
		Left:   max(p.Left, o.Left),
		Top:    max(p.Top, o.Top),
		Right:  max(p.Right, o.Right),
		Bottom: max(p.Bottom, o.Bottom),
	}
}

// Add returns the per-side sum of p and o.
func (p Padding) Add(o Padding) Padding {
	return Padding{
		Left:   p.Left + o.Left,
		Top:    p.Top + o.Top,
		Right:  p.Right + o.Right,
		Bottom: p.Bottom + o.Bottom,
	}
}

// NonNegative clamps every side to at least zero.
func (p Padding) NonNegative() Padding {
	return p.Max(Padding{})
}

// IsZero reports whether no side is padded.
func (p Padding) IsZero() bool { return p == Padding{} }

// Uniform returns a padding of v on every side.
func Uniform(v int) Padding {
	return Padding{Left: v, Top: v, Right: v, Bottom: v}
}

func (p Padding) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", p.Left, p.Top, p.Right, p.Bottom)
}

// Glyph is one compiled character.
//
// Bitmap is nil for characters with no visible pixels (such as space) or
// that failed to load; such glyphs keep their advance but never receive an
// atlas Box.
type Glyph struct {
	Rune     rune
	Bitmap   *ImageBuf
	BearingX int
	BearingY int
	Advance  int
	Box      *Box
	// Rotated is set when the atlas stores the bitmap turned 90 degrees
	// clockwise.
	Rotated bool
}

// HasBitmap reports whether the glyph has pixels to place in the atlas.
func (g *Glyph) HasBitmap() bool { return !g.Bitmap.IsEmpty() }

// Display returns a printable form of the rune for logs and metadata.
func (g *Glyph) Display() string {
	if unicode.IsPrint(g.Rune) {
		return string(g.Rune)
	}
	return fmt.Sprintf("U+%04X", g.Rune)
}
