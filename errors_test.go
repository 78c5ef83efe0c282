package fontc

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestConfigErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ConfigError
		want string
	}{
		{&ConfigError{Section: "outline", Key: "width", Err: io.EOF}, `section [outline] key "width"`},
		{&ConfigError{Section: "shadow", Err: io.EOF}, "section [shadow]"},
		{&ConfigError{Key: "letters", Err: io.EOF}, "letters"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); !strings.Contains(got, tt.want) {
			t.Errorf("Error() = %q, want it to contain %q", got, tt.want)
		}
		if !errors.Is(tt.err, io.EOF) {
			t.Errorf("errors.Is(%v, io.EOF) = false", tt.err)
		}
	}
}

func TestCompositingErrorUnwrap(t *testing.T) {
	err := error(&CompositingError{Layer: "glow", Stage: StageColor, Rune: 'a', Err: ErrDimensionsNotSet})
	if !errors.Is(err, ErrDimensionsNotSet) {
		t.Error("CompositingError does not unwrap to its cause")
	}
	var ce *CompositingError
	if !errors.As(err, &ce) || ce.Layer != "glow" {
		t.Errorf("errors.As = %+v", ce)
	}
	empty := &CompositingError{Layer: "x", Stage: StageEffect, Rune: 'b'}
	if !strings.Contains(empty.Error(), "zero area") {
		t.Errorf("Error() = %q", empty.Error())
	}
}

func TestPackingErrorNamesTextureSize(t *testing.T) {
	err := &PackingError{Width: 64, Height: 32, Rune: 'W'}
	if !strings.Contains(err.Error(), "(64, 32)") || !strings.Contains(err.Error(), "texturesize") {
		t.Errorf("Error() = %q", err.Error())
	}
}
