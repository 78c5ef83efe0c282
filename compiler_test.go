package fontc

import (
	"context"
	"errors"
	"testing"
)

func testFont(layers ...*Layer) *Font {
	o := DefaultOptions()
	o.Letters = []rune("AB gq")
	o.TextureWidth, o.TextureHeight = 128, 128
	o.Padding = 1
	if len(layers) == 0 {
		layers = []*Layer{NewLayer(NewSolid(White))}
	}
	return &Font{Name: "test", Options: o, Layers: layers}
}

func TestCompile(t *testing.T) {
	r := newFakeRasterizer()
	r.kern = map[uint64]int{PairKey('A', 'B'): -1}
	res, err := Compile(context.Background(), testFont(), r)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Glyphs) != 5 {
		t.Fatalf("len(Glyphs) = %d, want 5", len(res.Glyphs))
	}
	for _, g := range res.Glyphs {
		if g.HasBitmap() != (g.Box != nil) {
			t.Errorf("glyph %q: bitmap %v, box %v", g.Rune, g.HasBitmap(), g.Box)
		}
	}
	if res.Glyph(' ').Box != nil {
		t.Error("space was placed in the atlas")
	}
	if res.Kerning.Lookup('A', 'B') != -1 || res.Kerning.Len() != 1 {
		t.Errorf("kerning = %v", res.Kerning.Pairs())
	}
	if w, h := res.Atlas.Image.Bounds(); w != 128 || h != 128 {
		t.Errorf("atlas = %dx%d", w, h)
	}
	if res.Extents.Ascender <= 0 || res.Extents.Descender > 0 {
		t.Errorf("extents = %+v", res.Extents)
	}
}

func TestCompileMaxSize(t *testing.T) {
	f := testFont(NewLayer(NewSolid(White), NewOutline(Black, 2)))
	res, err := Compile(context.Background(), f, newFakeRasterizer())
	if err != nil {
		t.Fatal(err)
	}
	size := res.Extents.MaxSize
	if size.Width <= 0 || size.Height <= 0 {
		t.Fatalf("Extents.MaxSize = %+v, want non-zero", size)
	}
	for _, g := range res.Glyphs {
		if !g.HasBitmap() {
			continue
		}
		if w, h := g.Bitmap.Bounds(); w > size.Width || h > size.Height {
			t.Errorf("glyph %q bitmap %dx%d exceeds Extents.MaxSize %+v", g.Rune, w, h, size)
		}
	}
}

func TestCompileParallelMatchesSequential(t *testing.T) {
	build := func(workers int) *Result {
		grad, _ := NewGradient(90, RGB(1, 0, 0), RGB(0, 1, 0), RGB(0, 0, 1))
		shadow := NewDropShadow()
		shadow.Mask = MaskPadded
		f := testFont(NewLayer(grad, shadow))
		f.Options.Letters = DefaultLetters()
		f.Options.TextureWidth, f.Options.TextureHeight = 256, 256
		f.Options.Workers = workers
		res, err := Compile(context.Background(), f, newFakeRasterizer())
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	seq, par := build(1), build(4)
	if !seq.Atlas.Image.Equal(par.Atlas.Image) {
		t.Error("parallel compile produced a different atlas")
	}
}

func TestCompileWithOnly(t *testing.T) {
	res, err := Compile(context.Background(), testFont(), newFakeRasterizer(), WithOnly("qA"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Glyphs) != 2 || res.Glyph('A') == nil || res.Glyph('q') == nil {
		t.Errorf("glyphs = %v", res.Glyphs)
	}
}

func TestCompileErrors(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	noKerning := testFont()
	noLayers := testFont()
	noLayers.Layers = nil
	badSize := testFont()
	badSize.Options.Size = 0
	tooSmall := testFont()
	tooSmall.Options.TextureWidth, tooSmall.Options.TextureHeight = 8, 8

	tests := []struct {
		name  string
		ctx   context.Context
		font  *Font
		check func(error) bool
	}{
		{"cancelled", cancelled, noKerning, func(err error) bool { return errors.Is(err, context.Canceled) }},
		{"no layers", context.Background(), noLayers, func(err error) bool { return errors.Is(err, ErrNoLayers) }},
		{"bad size", context.Background(), badSize, func(err error) bool {
			var ce *ConfigError
			return errors.As(err, &ce) && ce.Key == "size"
		}},
		{"texture too small", context.Background(), tooSmall, func(err error) bool {
			var pe *PackingError
			return errors.As(err, &pe)
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.ctx, tt.font, newFakeRasterizer())
			if !tt.check(err) {
				t.Errorf("Compile() error = %v", err)
			}
		})
	}
	if _, err := Compile(context.Background(), testFont(), nil); err == nil {
		t.Error("Compile with nil rasterizer succeeded")
	}
}

func TestCompileKerningDisabled(t *testing.T) {
	f := testFont()
	f.Options.UsePairKernings = false
	res, err := Compile(context.Background(), f, newFakeRasterizer())
	if err != nil {
		t.Fatal(err)
	}
	if res.Kerning != nil {
		t.Error("kerning built although disabled")
	}
}
