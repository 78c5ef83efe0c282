package blend

import (
	"errors"
	"testing"

	"github.com/gogpu/fontc/internal/image"
)

func TestChannel(t *testing.T) {
	tests := []struct {
		mode        Mode
		base, blend float32
		want        float32
	}{
		{Normal, 0.2, 0.7, 0.7},
		{Darken, 0.2, 0.7, 0.2},
		{Multiply, 0.5, 0.5, 0.25},
		{ColorBurn, 0.5, 0.5, 0},
		{ColorBurn, 0.5, 0, 0},
		{LinearBurn, 0.75, 0.5, 0.25},
		{Lighten, 0.2, 0.7, 0.7},
		{Screen, 0.5, 0.5, 0.75},
		{ColorDodge, 0.25, 0.5, 0.5},
		{ColorDodge, 0.25, 1, 1},
		{LinearDodge, 0.25, 0.5, 0.75},
	}
	for _, tt := range tests {
		if got := tt.mode.Channel(tt.base, tt.blend); got != tt.want {
			t.Errorf("%v.Channel(%v, %v) = %v, want %v", tt.mode, tt.base, tt.blend, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		want    Mode
		wantErr bool
	}{
		{"normal", Normal, false},
		{"blendnormal", Normal, false},
		{"Multiply", Multiply, false},
		{" blendcolordodge ", ColorDodge, false},
		{"overlay", Normal, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownMode) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownMode", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNamesRoundTrip(t *testing.T) {
	for _, n := range Names() {
		m, err := Parse(n)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", n, err)
		}
		if m.String() != n {
			t.Errorf("Parse(%q).String() = %q", n, m.String())
		}
	}
}

func TestApply(t *testing.T) {
	base := image.Filled(2, 1, image.Pixel{0.5, 0.5, 0.5, 1})
	top := image.Filled(1, 1, image.Pixel{0.5, 1, 0, 0.5})

	out := Multiply.Apply(base, top)
	if w, h := out.Bounds(); w != 2 || h != 1 {
		t.Fatalf("Apply bounds = %d,%d, want 2,1", w, h)
	}
	if got, want := out.At(0, 0), (image.Pixel{0.25, 0.5, 0, 0.5}); got != want {
		t.Errorf("Multiply At(0,0) = %v, want %v", got, want)
	}
	if got := out.At(1, 0); got != (image.Pixel{}) {
		t.Errorf("Multiply At(1,0) = %v, want zero (missing blend pixel)", got)
	}

	same := Normal.Apply(base, base)
	if !same.Equal(base) {
		t.Error("Normal.Apply(base, base) should equal base")
	}
}
