package fontc

import (
	"testing"

	"github.com/gogpu/fontc/internal/image"
)

func dot(w, h, x, y int) *ImageBuf {
	img := image.Blank(w, h)
	_ = img.Set(x, y, image.Pixel{1, 1, 1, 1})
	return img
}

func TestOutline(t *testing.T) {
	o := NewOutline(RGB(1, 0, 0), 1)
	if o.Padding() != Uniform(1) {
		t.Errorf("Padding() = %v, want 1 per side", o.Padding())
	}
	out := o.Apply(dot(5, 5, 2, 2))
	if got := out.At(2, 2); got != (image.Pixel{1, 1, 1, 1}) {
		t.Errorf("center = %v, want the glyph on top", got)
	}
	if got := out.At(3, 2); got != (image.Pixel{1, 0, 0, 1}) {
		t.Errorf("neighbour = %v, want outline color", got)
	}
	if got := out.At(3, 3); got[3] != 0 {
		t.Errorf("diagonal = %v, want outside the radius 1 circle", got)
	}
}

func TestOutlineOpacityAndSpread(t *testing.T) {
	o := &Outline{Color: Black, Opacity: 0.5, Width: 1, Spread: 2}
	if o.Padding() != Uniform(3) {
		t.Errorf("Padding() = %v, want 3 per side", o.Padding())
	}
	out := o.Apply(dot(9, 9, 4, 4))
	if a := out.At(5, 4)[3]; a <= 0 || a > 0.5 {
		t.Errorf("outline alpha = %v, want in (0, 0.5]", a)
	}
}

func TestDropShadowPadding(t *testing.T) {
	tests := []struct {
		shadow *DropShadow
		want   Padding
	}{
		{NewDropShadow(), Padding{Left: 0, Top: 0, Right: 2, Bottom: 3}},
		{&DropShadow{Angle: 0, Size: 1, Distance: 2}, Padding{Left: 3, Top: 1, Right: 0, Bottom: 1}},
		{&DropShadow{Angle: 90, Size: 0, Distance: 2}, Padding{Bottom: 2}},
	}
	for _, tt := range tests {
		if got := tt.shadow.Padding(); got != tt.want {
			t.Errorf("DropShadow{angle %v, size %d, distance %v}.Padding() = %v, want %v",
				tt.shadow.Angle, tt.shadow.Size, tt.shadow.Distance, got, tt.want)
		}
	}
}

func TestDropShadowApply(t *testing.T) {
	d := NewDropShadow()
	in := dot(8, 8, 2, 2)
	out := d.Apply(in)
	if got := out.At(2, 2); got != (image.Pixel{1, 1, 1, 1}) {
		t.Errorf("glyph pixel = %v, want unchanged", got)
	}
	// light from 120 degrees: the shadow falls 1 right and 2 down
	s := out.At(3, 4)
	if s[3] <= 0 || s[0] != 0 {
		t.Errorf("shadow pixel = %v, want black with alpha", s)
	}
	if in.At(3, 4)[3] != 0 {
		t.Error("Apply modified its input")
	}
}

func TestBlurEffects(t *testing.T) {
	g := &GaussianBlur{Size: 2}
	if g.Padding() != Uniform(2) {
		t.Errorf("GaussianBlur.Padding() = %v", g.Padding())
	}
	if w, h := g.Apply(dot(7, 5, 3, 2)).Bounds(); w != 7 || h != 5 {
		t.Errorf("GaussianBlur changed the size to %dx%d", w, h)
	}

	k := &KernelBlur{Size: 1, Strength: 1}
	flat := image.Filled(4, 4, image.Pixel{0.5, 0.5, 0.5, 1})
	out := k.Apply(flat)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if p := out.At(x, y); !near(p[0], 0.5) || !near(p[3], 1) {
				t.Fatalf("KernelBlur of a flat image at (%d,%d) = %v", x, y, p)
			}
		}
	}
}

func TestHalfsize(t *testing.T) {
	tests := []struct {
		factor, w, h int
	}{
		{0, 8, 6},
		{1, 4, 3},
		{2, 2, 1},
	}
	for _, tt := range tests {
		h := &Halfsize{Factor: tt.factor}
		w, ht := h.Apply(opaque(8, 6)).Bounds()
		if w != tt.w || ht != tt.h {
			t.Errorf("Halfsize{%d} = %dx%d, want %dx%d", tt.factor, w, ht, tt.w, tt.h)
		}
		if h.Padding() != (Padding{}) {
			t.Errorf("Halfsize padding = %v", h.Padding())
		}
	}
}
