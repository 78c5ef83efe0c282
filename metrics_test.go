package fontc

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCollectGlyphsMetrics(t *testing.T) {
	r := newFakeRasterizer()
	glyphs, ext, err := CollectGlyphs(r, CollectOptions{
		Letters:          []rune("AA "),
		Size:             32,
		DPI:              72,
		Padding:          Padding{1, 2, 3, 4},
		InternalPaddingY: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(glyphs) != 2 {
		t.Fatalf("len(glyphs) = %d, want 2 (duplicates removed)", len(glyphs))
	}

	a := glyphs[0]
	// 'A' is 4x8 with bearing (1, 6) and advance 6.
	if a.BearingX != 2 || a.BearingY != 13 || a.Advance != 9 {
		t.Errorf("A metrics = (%d, %d, %d), want (2, 13, 9)", a.BearingX, a.BearingY, a.Advance)
	}
	if w, h := a.Bitmap.Bounds(); w != 8 || h != 14 {
		t.Errorf("A bitmap = %dx%d, want 8x14", w, h)
	}
	if got := a.Bitmap.At(1, 2); got != [4]float32{1, 1, 1, 1} {
		t.Errorf("A pixel (1,2) = %v, want coverage replicated", got)
	}
	if got := a.Bitmap.At(0, 0); got != [4]float32{} {
		t.Errorf("A padding pixel = %v, want zero", got)
	}

	space := glyphs[1]
	if space.HasBitmap() {
		t.Error("space has a bitmap")
	}
	if space.Advance != 8 {
		t.Errorf("space advance = %d, want 8", space.Advance)
	}

	if ext.MaxBearingY != 13 || ext.MinBearingY != -1 {
		t.Errorf("extents bearing = (%d, %d), want (13, -1)", ext.MaxBearingY, ext.MinBearingY)
	}
	if ext.Ascender != 13 || ext.Descender != -1 || ext.MaxHeight != 14 || ext.MaxWidth != 8 {
		t.Errorf("extents = %+v", ext)
	}
}

func TestCollectGlyphsUseAdvanceAsWidth(t *testing.T) {
	glyphs, _, err := CollectGlyphs(newFakeRasterizer(), CollectOptions{
		Letters:           []rune("A"),
		UseAdvanceAsWidth: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	// advance 6 - width 4 - bearing 1 leaves 1 pixel on the right.
	if w := glyphs[0].Bitmap.Width(); w != 5 {
		t.Errorf("width = %d, want 5", w)
	}
}

func TestCollectGlyphsPaddingNeverShrinks(t *testing.T) {
	for _, pad := range []Padding{{}, Uniform(1), {Left: 3}, {Bottom: 2}} {
		glyphs, _, err := CollectGlyphs(newFakeRasterizer(), CollectOptions{Letters: []rune("Q"), Padding: pad})
		if err != nil {
			t.Fatal(err)
		}
		w, h := glyphs[0].Bitmap.Bounds()
		// 'Q' is 5x10
		if w != 5+pad.Left+pad.Right || h != 10+pad.Top+pad.Bottom {
			t.Errorf("padding %v: bitmap %dx%d", pad, w, h)
		}
	}
}

func TestCollectGlyphsRasterizerError(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	r := newFakeRasterizer()
	r.fail = map[rune]bool{'B': true}
	glyphs, ext, err := CollectGlyphs(r, CollectOptions{Letters: []rune("AB")})
	if err != nil {
		t.Fatal(err)
	}
	if len(glyphs) != 2 || glyphs[1].HasBitmap() {
		t.Fatalf("failed glyph should be kept without a bitmap")
	}
	if ext.MaxWidth != 4 {
		t.Errorf("MaxWidth = %d, failed glyph must not contribute", ext.MaxWidth)
	}
	if !strings.Contains(buf.String(), "skipping glyph") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestCollectGlyphsNoLetters(t *testing.T) {
	if _, _, err := CollectGlyphs(newFakeRasterizer(), CollectOptions{}); !errors.Is(err, ErrNoLetters) {
		t.Errorf("CollectGlyphs() error = %v, want ErrNoLetters", err)
	}
}
