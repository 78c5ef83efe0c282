package fontc

import (
	"errors"
	stdimage "image"

	"github.com/gogpu/fontc/internal/image"
)

// fakeRasterizer renders every rune as a solid block whose size depends on
// the rune. Sizes are given at baseSize and scale with the requested size.
type fakeRasterizer struct {
	baseSize float64
	fixed    map[rune]*RasterGlyph
	fail     map[rune]bool
	kern     map[uint64]int
}

func newFakeRasterizer() *fakeRasterizer {
	return &fakeRasterizer{baseSize: 32}
}

func solidAlpha(w, h int) *stdimage.Alpha {
	m := stdimage.NewAlpha(stdimage.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}

func (f *fakeRasterizer) LoadGlyph(req GlyphRequest) (*RasterGlyph, error) {
	if f.fail[req.Rune] {
		return nil, errors.New("glyph not in font")
	}
	if g, ok := f.fixed[req.Rune]; ok {
		return g, nil
	}
	scale := 1
	if f.baseSize > 0 && req.Size > f.baseSize {
		scale = int(req.Size / f.baseSize)
	}
	if req.Rune == ' ' {
		return &RasterGlyph{Coverage: stdimage.NewAlpha(stdimage.Rect(0, 0, 0, 0)), Advance: 5 * scale}, nil
	}
	w := (4 + int(req.Rune)%5) * scale
	h := (6 + int(req.Rune)%7) * scale
	return &RasterGlyph{
		Coverage: solidAlpha(w, h),
		BearingX: scale,
		BearingY: h - 2*scale,
		Advance:  w + 2*scale,
	}, nil
}

func (f *fakeRasterizer) Kerning(a, b rune) int {
	return f.kern[PairKey(a, b)]
}

// emptyEffect is an effect that destroys the image.
type emptyEffect struct{ MaskOverride }

func (emptyEffect) Name() string              { return "empty" }
func (emptyEffect) Apply(*ImageBuf) *ImageBuf { return image.Blank(0, 0) }
func (emptyEffect) Padding() Padding          { return Padding{} }

// padEffect only reports padding.
type padEffect struct {
	pad Padding
	MaskOverride
}

func (padEffect) Name() string                  { return "pad" }
func (padEffect) Apply(img *ImageBuf) *ImageBuf { return img.Clone() }
func (p padEffect) Padding() Padding            { return p.pad }

func opaque(w, h int) *ImageBuf {
	return image.Filled(w, h, image.Pixel{1, 1, 1, 1})
}
