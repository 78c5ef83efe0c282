package fontc

import (
	"fmt"
	stdimage "image"
	"strings"
)

// Antialias selects how glyph outlines are rasterized.
type Antialias int

const (
	// AntialiasNormal renders smooth coverage with full hinting.
	AntialiasNormal Antialias = iota
	// AntialiasLight renders smooth coverage with vertical-only hinting.
	AntialiasLight
	// AntialiasNone renders a 1-bit silhouette.
	AntialiasNone
)

var antialiasNames = [...]string{
	AntialiasNormal: "normal",
	AntialiasLight:  "light",
	AntialiasNone:   "none",
}

func (a Antialias) String() string {
	if a < 0 || int(a) >= len(antialiasNames) {
		return fmt.Sprintf("Antialias(%d)", int(a))
	}
	return antialiasNames[a]
}

// ParseAntialias resolves "normal", "light" or "none".
func ParseAntialias(s string) (Antialias, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for i, name := range antialiasNames {
		if name == n {
			return Antialias(i), nil
		}
	}
	return 0, fmt.Errorf("unknown antialias mode %q (want normal, light or none)", s)
}

// GlyphRequest asks a Rasterizer for one glyph.
type GlyphRequest struct {
	Rune      rune
	Size      float64 // in points
	DPI       float64
	Antialias Antialias
}

// RasterGlyph is a rasterized glyph. Coverage holds one row per pixel row
// and may have zero rows for blank glyphs. BearingY is the distance from the
// baseline up to the top row.
type RasterGlyph struct {
	Coverage *stdimage.Alpha
	BearingX int
	BearingY int
	Advance  int
}

// Kerner reports the kerning offset between two characters in pixels.
type Kerner interface {
	Kerning(a, b rune) int
}

// Rasterizer loads glyph bitmaps and metrics from a font.
//
// Implementations must be safe for concurrent use when compiling with more
// than one worker.
type Rasterizer interface {
	Kerner
	LoadGlyph(req GlyphRequest) (*RasterGlyph, error)
}

// RasterContext carries what a color generator needs to rasterize a glyph
// again at a different size.
type RasterContext struct {
	Rasterizer       Rasterizer
	Size             float64
	DPI              float64
	Padding          Padding
	InternalPaddingY int
}
