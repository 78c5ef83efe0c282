package fontc

import (
	"math"

	"github.com/gogpu/fontc/internal/filter"
	"github.com/gogpu/fontc/internal/image"
)

// Effect transforms a layer image after its color step, or the finished
// glyph when used as a post-effect.
//
// Apply must not modify its input.
type Effect interface {
	Name() string
	Apply(img *ImageBuf) *ImageBuf
	// Padding is the room the effect needs around the glyph.
	Padding() Padding
	// MaskPolicy overrides how the layer mask treats the effect's pixels.
	MaskPolicy() MaskPolicy
}

// MaskOverride is embedded by effects to carry a per-effect mask policy.
type MaskOverride struct {
	Mask MaskPolicy
}

// MaskPolicy implements Effect.
func (m MaskOverride) MaskPolicy() MaskPolicy { return m.Mask }

// Outline draws a colored border of Width pixels around the glyph.
type Outline struct {
	Color RGBA
	// Opacity of the outline in [0, 1].
	Opacity float64
	Width   int
	// Spread blurs the outline by this radius.
	Spread int
	MaskOverride
}

// NewOutline returns an outline of the given width and color.
func NewOutline(c RGBA, width int) *Outline {
	return &Outline{Color: c, Opacity: 1, Width: width}
}

// Name implements Effect.
func (o *Outline) Name() string { return "outline" }

// Padding implements Effect.
func (o *Outline) Padding() Padding { return Uniform(max(o.Width, 0) + max(o.Spread, 0)) }

// Apply implements Effect.
func (o *Outline) Apply(img *ImageBuf) *ImageBuf {
	out := filter.Maximum(img, filter.CircleKernel(o.Width))
	if o.Spread > 0 {
		out = filter.GaussianBlur(out, o.Spread)
	}
	pix := out.Pix()
	op := float32(o.Opacity)
	c := o.Color.Pixel()
	for i := 0; i < len(pix); i += image.Channels {
		if pix[i+3] != 0 {
			pix[i+0], pix[i+1], pix[i+2] = c[0], c[1], c[2]
		}
		pix[i+3] *= op
	}
	return image.Over(out, img)
}

// DropShadow draws a blurred, offset copy of the glyph beneath it.
type DropShadow struct {
	Color RGBA
	// Opacity of the shadow in [0, 1].
	Opacity float64
	// Angle of the light source in degrees; the shadow falls away from it.
	Angle float64
	// Size is the blur radius of the shadow.
	Size int
	// Distance of the shadow from the glyph in pixels.
	Distance float64
	MaskOverride
}

// NewDropShadow returns a shadow with the conventional defaults: black,
// opaque, light from 120 degrees, blur 1, distance 3.
func NewDropShadow() *DropShadow {
	return &DropShadow{Color: Black, Opacity: 1, Angle: 120, Size: 1, Distance: 3}
}

// Name implements Effect.
func (d *DropShadow) Name() string { return "dropshadow" }

func (d *DropShadow) offset() (x, y float64) {
	a := d.Angle * math.Pi / 180
	return -math.Cos(a) * d.Distance, -math.Sin(a) * d.Distance
}

// Padding implements Effect. The y offset points up.
func (d *DropShadow) Padding() Padding {
	ox, oy := d.offset()
	s := float64(d.Size)
	var p Padding
	if v := -s + ox; v < 0 {
		p.Left = int(-v)
	}
	if v := s + ox; v > 0 {
		p.Right = int(v)
	}
	if v := s + oy; v > 0 {
		p.Top = int(v)
	}
	if v := -s + oy; v < 0 {
		p.Bottom = int(-v)
	}
	return p
}

// Apply implements Effect.
func (d *DropShadow) Apply(img *ImageBuf) *ImageBuf {
	ox, oy := d.offset()
	shadow := img.Roll(int(ox), -int(oy))
	c := d.Color.Pixel()
	c[3] = float32(d.Opacity)
	shadow.Scale(c)
	shadow = filter.GaussianBlur(shadow, d.Size)
	return image.Over(shadow, img)
}

// GaussianBlur blurs the image with a Gaussian kernel of radius Size.
type GaussianBlur struct {
	Size int
	MaskOverride
}

// Name implements Effect.
func (g *GaussianBlur) Name() string { return "gaussianblur" }

// Padding implements Effect.
func (g *GaussianBlur) Padding() Padding { return Uniform(max(g.Size, 0)) }

// Apply implements Effect.
func (g *GaussianBlur) Apply(img *ImageBuf) *ImageBuf {
	return filter.GaussianBlur(img, g.Size)
}

// KernelBlur blurs with a box kernel of radius Size whose center weighs
// Strength.
type KernelBlur struct {
	Size     int
	Strength float64
	MaskOverride
}

// Name implements Effect.
func (k *KernelBlur) Name() string { return "kernelblur" }

// Padding implements Effect.
func (k *KernelBlur) Padding() Padding { return Uniform(max(k.Size, 0)) }

// Apply implements Effect.
func (k *KernelBlur) Apply(img *ImageBuf) *ImageBuf {
	return filter.Separable(img, filter.CenterWeightedKernel(k.Size, k.Strength))
}

// Halfsize downsamples the image Factor times by two. It is typically used
// as a post-effect on fonts rendered at twice their size.
type Halfsize struct {
	Factor int
	MaskOverride
}

// Name implements Effect.
func (h *Halfsize) Name() string { return "halfsize" }

// Padding implements Effect.
func (h *Halfsize) Padding() Padding { return Padding{} }

// Apply implements Effect.
func (h *Halfsize) Apply(img *ImageBuf) *ImageBuf {
	if h.Factor <= 0 {
		return img.Clone()
	}
	return image.HalfSizeN(img, h.Factor)
}
