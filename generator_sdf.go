package fontc

import (
	"errors"
	"fmt"

	"github.com/gogpu/fontc/internal/filter"
	"github.com/gogpu/fontc/internal/image"
)

// DistanceField paints a signed distance field of the glyph.
//
// The glyph is rasterized again as a 1-bit silhouette Factor times larger,
// the distance field is computed at that size with a spread of Size pixels,
// and the result is halved back down to the glyph size. Edge pixels have the
// value 0.5; the value falls to 0 at Size enlarged pixels outside the glyph.
//
// The field extends past the glyph silhouette, so layers using it usually
// disable masking.
type DistanceField struct {
	Size   int
	Factor int

	canvas
}

// NewDistanceField returns a distance field generator. factor must be a
// power of two.
func NewDistanceField(size, factor int) (*DistanceField, error) {
	if size <= 0 {
		return nil, fmt.Errorf("fontc: distance field size must be positive, got %d", size)
	}
	if factor <= 0 || factor&(factor-1) != 0 {
		return nil, fmt.Errorf("fontc: distance field factor must be a power of two, got %d", factor)
	}
	return &DistanceField{Size: size, Factor: factor}, nil
}

// Name implements ColorGenerator.
func (d *DistanceField) Name() string { return "distancefield" }

// Padding makes room for the spread at the glyph size.
func (d *DistanceField) Padding() Padding {
	return Uniform(d.Size / max(d.Factor, 1))
}

// SetDimensions implements Dimensioner.
func (d *DistanceField) SetDimensions(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setSize(width, height)
}

func (d *DistanceField) selfMasked() bool { return true }

// Apply implements ColorGenerator.
func (d *DistanceField) Apply(req ColorRequest) (*ImageBuf, error) {
	d.mu.RLock()
	err := d.check(req)
	d.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	rc := req.Raster
	if rc.Rasterizer == nil || req.Glyph == nil {
		return nil, errors.New("fontc: distance field needs a rasterizer and a glyph")
	}

	f := d.Factor
	rg, err := rc.Rasterizer.LoadGlyph(GlyphRequest{
		Rune:      req.Glyph.Rune,
		Size:      rc.Size * float64(f),
		DPI:       rc.DPI,
		Antialias: AntialiasNone,
	})
	if err != nil {
		return nil, &RasterizerError{Rune: req.Glyph.Rune, Err: err}
	}
	if rg.Coverage == nil || rg.Coverage.Rect.Empty() {
		return image.Blank(req.Size.Width, req.Size.Height), nil
	}
	big := image.FromAlpha(rg.Coverage)

	// Align the enlarged bitmap with the glyph's baseline after halving.
	pad := rc.Padding.NonNegative()
	bearingY := rg.BearingY + (rc.InternalPaddingY+pad.Top)*f
	offY := bearingY - req.Glyph.BearingY*f
	left, top := pad.Left*f, pad.Top*f-offY
	w := big.Width() + left + pad.Right*f
	h := big.Height() + top + pad.Bottom*f + offY
	big = big.Crop(-left, -top, w, h)

	coverage := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			coverage[y*w+x] = big.Alpha(x, y)
		}
	}
	field := filter.SignedDistance(coverage, w, h, float64(d.Size))

	out := image.Blank(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := field[y*w+x]
			_ = out.Set(x, y, image.Pixel{v, v, v, v})
		}
	}
	halvings := 0
	for n := f; n > 1; n >>= 1 {
		halvings++
	}
	out = image.HalfSizeN(out, halvings)

	pix := out.Pix()
	for i := 0; i < len(pix); i += image.Channels {
		if pix[i] > 0 {
			pix[i+3] = 1
		} else {
			pix[i+3] = 0
		}
	}
	return out.Crop(0, 0, req.Size.Width, req.Size.Height), nil
}
