package fontc

import (
	"errors"

	"github.com/gogpu/fontc/internal/image"
)

// CollectOptions configures CollectGlyphs.
type CollectOptions struct {
	Letters   []rune
	Size      float64
	DPI       float64
	Antialias Antialias

	// Padding is the extra padding from ExtraPadding.
	Padding Padding
	// InternalPaddingY is added to every glyph's BearingY.
	InternalPaddingY int
	// UseAdvanceAsWidth pads bitmaps on the right so they span the advance.
	UseAdvanceAsWidth bool
}

// CollectGlyphs rasterizes every distinct rune in opts.Letters, in
// first-occurrence order, and returns the padded coverage bitmaps together
// with the raw font extents.
//
// Glyph bitmaps hold the coverage replicated into all four channels.
// Glyphs without visible pixels, and glyphs the rasterizer fails to load,
// are returned without a bitmap and do not contribute to the extents.
func CollectGlyphs(r Rasterizer, opts CollectOptions) ([]*Glyph, FontExtents, error) {
	if len(opts.Letters) == 0 {
		return nil, FontExtents{}, ErrNoLetters
	}
	pad := opts.Padding.NonNegative()
	log := Logger()

	var ext FontExtents
	seen := make(map[rune]bool, len(opts.Letters))
	glyphs := make([]*Glyph, 0, len(opts.Letters))

	for _, c := range opts.Letters {
		if seen[c] {
			continue
		}
		seen[c] = true

		g := &Glyph{Rune: c}
		glyphs = append(glyphs, g)

		rg, err := r.LoadGlyph(GlyphRequest{Rune: c, Size: opts.Size, DPI: opts.DPI, Antialias: opts.Antialias})
		if err != nil {
			var re *RasterizerError
			if !errors.As(err, &re) {
				err = &RasterizerError{Rune: c, Err: err}
			}
			log.Warn("fontc: skipping glyph", "rune", g.Display(), "err", err)
			continue
		}

		g.BearingX = rg.BearingX + pad.Left
		g.BearingY = rg.BearingY + opts.InternalPaddingY + pad.Top
		g.Advance = rg.Advance + pad.Right

		if rg.Coverage == nil || rg.Coverage.Rect.Empty() {
			log.Debug("fontc: glyph has no bitmap", "rune", g.Display())
			continue
		}

		raw := image.FromAlpha(rg.Coverage)
		rawWidth := raw.Width()
		bm := raw.Pad(pad.Left, pad.Top, pad.Right, pad.Bottom)
		if opts.UseAdvanceAsWidth {
			if right := g.Advance - rawWidth - g.BearingX; right > 0 {
				bm = bm.Pad(0, 0, right, 0)
			}
		}
		g.Bitmap = bm

		ext.MaxBearingY = max(ext.MaxBearingY, g.BearingY)
		ext.MinBearingY = min(ext.MinBearingY, g.BearingY-bm.Height())
		ext.MaxWidth = max(ext.MaxWidth, bm.Width())
	}

	ext.Ascender = ext.MaxBearingY
	ext.Descender = ext.MinBearingY
	ext.MaxHeight = ext.Ascender - ext.Descender

	log.Debug("fontc: collected glyphs", "count", len(glyphs), "padding", pad.String(),
		"ascender", ext.Ascender, "descender", ext.Descender)
	return glyphs, ext, nil
}
