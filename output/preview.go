package output

import (
	"errors"

	"github.com/gogpu/fontc"
	"github.com/gogpu/fontc/internal/image"
)

// ErrNothingToRender is returned by RenderText when no character of the
// text has a bitmap in the font.
var ErrNothingToRender = errors.New("output: no character of the text is in the font")

// RenderText lays out text with the compiled glyphs and kerning and draws
// it over the font background with transparent alpha. Lines break at '\n'
// and are ascender minus descender apart. Characters missing from the font
// are logged and skipped.
func RenderText(r *fontc.Result, text string) (*fontc.ImageBuf, error) {
	index := make(map[rune]*fontc.Glyph, len(r.Glyphs))
	for _, g := range r.Glyphs {
		index[g.Rune] = g
	}
	ext := r.Extents
	lineHeight := max(ext.Ascender-ext.Descender, 1)

	type placed struct {
		bmp  *fontc.ImageBuf
		x, y int
	}
	var (
		items    []placed
		x        int
		baseline = ext.Ascender
		prev     rune
		minX     int
		minY     int
		maxX     int
		maxY     = lineHeight
	)
	for _, c := range text {
		if c == '\n' {
			x, prev = 0, 0
			baseline += lineHeight
			maxY = max(maxY, baseline-ext.Descender)
			continue
		}
		g, ok := index[c]
		if !ok {
			fontc.Logger().Warn("character not in font", "rune", string(c))
			continue
		}
		x += r.Kerning.Lookup(prev, c)
		if g.HasBitmap() {
			bmp := g.Bitmap
			if g.Rotated {
				bmp = bmp.Rotate90().Rotate90().Rotate90()
			}
			bx, by := x+g.BearingX, baseline-g.BearingY
			items = append(items, placed{bmp: bmp, x: bx, y: by})
			minX, minY = min(minX, bx), min(minY, by)
			maxX, maxY = max(maxX, bx+bmp.Width()), max(maxY, by+bmp.Height())
		}
		x += g.Advance
		maxX = max(maxX, x)
		prev = c
	}
	if len(items) == 0 {
		return nil, ErrNothingToRender
	}

	pad := max(r.Options.Padding, 0)
	bg := r.Options.Background.Pixel()
	bg[3] = 0
	canvas := image.Filled(maxX-minX+2*pad, maxY-minY+2*pad, bg)
	for _, it := range items {
		canvas.DrawOver(it.bmp, it.x-minX+pad, it.y-minY+pad)
	}
	return canvas, nil
}
