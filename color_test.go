package fontc

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#ffffff", White},
		{"000000", Black},
		{"#f00", RGB(1, 0, 0)},
		{"#00ff0080", RGBA{0, 1, 0, 128.0 / 255}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Errorf("ParseHex(%q) error = %v", tt.in, err)
			continue
		}
		if math.Abs(got.R-tt.want.R) > 1e-9 || math.Abs(got.G-tt.want.G) > 1e-9 ||
			math.Abs(got.B-tt.want.B) > 1e-9 || math.Abs(got.A-tt.want.A) > 1e-9 {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "#12", "#zzzzzz", "#1234567"} {
		if _, err := ParseHex(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHex(%q) error = %v, want ErrInvalidColor", bad, err)
		}
	}
}

func TestRGBAHexRoundtrip(t *testing.T) {
	for _, s := range []string{"#102030", "#a0b0c0d0"} {
		c, err := ParseHex(s)
		if err != nil {
			t.Fatal(err)
		}
		if got := c.Hex(); got != s {
			t.Errorf("ParseHex(%q).Hex() = %q", s, got)
		}
	}
}

func TestRGBAColor(t *testing.T) {
	got := RGB(1, 0.5, 0).Color().(color.NRGBA)
	want := color.NRGBA{R: 255, G: 128, B: 0, A: 255}
	if got != want {
		t.Errorf("Color() = %v, want %v", got, want)
	}
}

func TestRGBALerp(t *testing.T) {
	got := Black.Lerp(White, 0.25)
	if got.R != 0.25 || got.A != 1 {
		t.Errorf("Lerp(0.25) = %v", got)
	}
}
