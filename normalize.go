package fontc

import "math"

// Normalize rescales glyph metrics after compositing, since layers and
// post-effects (a Halfsize, for one) may have changed the bitmap sizes.
//
// The ratio is the tallest final bitmap over the raw extent span. Every
// glyph's BearingX, BearingY and Advance are scaled and rounded up, and the
// returned extents carry the scaled ascender (rounded up) and descender
// (rounded down). Glyphs are modified in place.
func Normalize(glyphs []*Glyph, raw FontExtents) FontExtents {
	out := raw
	out.MaxWidth, out.MaxHeight = 0, 0
	for _, g := range glyphs {
		if !g.HasBitmap() {
			continue
		}
		w, h := g.Bitmap.Bounds()
		out.MaxWidth = max(out.MaxWidth, w)
		out.MaxHeight = max(out.MaxHeight, h)
	}

	ratio := 1.0
	if span := raw.MaxBearingY - raw.MinBearingY; span != 0 && out.MaxHeight != 0 {
		ratio = float64(out.MaxHeight) / float64(span)
	}
	scaleUp := func(v int) int { return int(math.Ceil(float64(v) * ratio)) }

	out.Ascender = scaleUp(raw.MaxBearingY)
	out.Descender = int(math.Floor(float64(raw.MinBearingY) * ratio))
	for _, g := range glyphs {
		g.BearingX = scaleUp(g.BearingX)
		g.BearingY = scaleUp(g.BearingY)
		g.Advance = scaleUp(g.Advance)
	}
	return out
}
