package fontc

import (
	"github.com/gogpu/fontc/internal/blend"
	"github.com/gogpu/fontc/internal/image"
)

// BlendMode combines a layer with the layers below it.
type BlendMode = blend.Mode

// Blend modes.
const (
	BlendNormal      = blend.Normal
	BlendDarken      = blend.Darken
	BlendMultiply    = blend.Multiply
	BlendColorBurn   = blend.ColorBurn
	BlendLinearBurn  = blend.LinearBurn
	BlendLighten     = blend.Lighten
	BlendScreen      = blend.Screen
	BlendColorDodge  = blend.ColorDodge
	BlendLinearDodge = blend.LinearDodge
)

// ParseBlendMode resolves names such as "multiply" or "blendmultiply".
func ParseBlendMode(name string) (BlendMode, error) { return blend.Parse(name) }

// Layer is one step of the glyph paint stack.
//
// Layers are shared read-only between glyphs; nothing in a Layer changes
// while compositing.
type Layer struct {
	Name    string
	Color   ColorGenerator
	Effects []Effect
	Blend   BlendMode
	// Opacity in [0, 1] scales all four channels of the layer.
	Opacity float64
	Mask    MaskPolicy
}

// NewLayer returns an opaque, normally blended layer.
func NewLayer(color ColorGenerator, effects ...Effect) *Layer {
	return &Layer{
		Name:    color.Name(),
		Color:   color,
		Effects: effects,
		Blend:   BlendNormal,
		Opacity: 1,
		Mask:    MaskOriginal,
	}
}

// Padding returns the room the layer needs: the color generator's padding
// plus the largest effect padding on each side.
func (l *Layer) Padding() Padding {
	var pad Padding
	if p, ok := l.Color.(Padder); ok {
		pad = p.Padding().NonNegative()
	}
	var fx Padding
	for _, e := range l.Effects {
		fx = fx.Max(e.Padding())
	}
	return pad.Add(fx.NonNegative())
}

// apply runs the layer's four steps for one glyph and returns the new
// accumulated image.
func (l *Layer) apply(req ColorRequest) (*ImageBuf, error) {
	fail := func(stage string, err error) error {
		return &CompositingError{Layer: l.Name, Stage: stage, Rune: req.Glyph.Rune, Err: err}
	}

	img, err := l.Color.Apply(req)
	if err != nil {
		return nil, fail(StageColor, err)
	}
	if img.IsEmpty() {
		return nil, fail(StageColor, nil)
	}
	// Color output is clipped to the glyph, except for generators such as
	// DistanceField whose values outside the glyph are the output. Those
	// are clipped only by the mask step.
	if sm, ok := l.Color.(selfMasked); !ok || !sm.selfMasked() {
		clipToCoverage(img, req.Mask)
	}

	for _, e := range l.Effects {
		img = e.Apply(img)
		if img.IsEmpty() {
			return nil, fail(StageEffect+" "+e.Name(), nil)
		}
	}

	applyMask(img, req.Mask, l)

	img.Clamp()
	blended := l.Blend.Apply(req.Previous, img)
	blended.Clamp()
	blended.Scale(image.Pixel{float32(l.Opacity), float32(l.Opacity), float32(l.Opacity), float32(l.Opacity)})
	out := image.Over(req.Previous, blended)
	if out.IsEmpty() {
		return nil, fail(StageBlend, nil)
	}
	return out, nil
}

// clipToCoverage zeroes the pixels of img where the coverage is zero.
func clipToCoverage(img, coverage *ImageBuf) {
	w, h := img.Bounds()
	pix := img.Pix()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if coverage.Alpha(x, y) == 0 {
				i := img.PixOffset(x, y)
				clear(pix[i : i+image.Channels])
			}
		}
	}
}
