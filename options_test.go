package fontc

import (
	"errors"
	"testing"
)

func TestDefaultOptionsValid(t *testing.T) {
	o := DefaultOptions()
	if err := o.Validate(); err != nil {
		t.Fatalf("DefaultOptions().Validate() = %v, want nil", err)
	}
	if got := len(o.Letters); got != 95 {
		t.Errorf("len(DefaultOptions().Letters) = %d, want 95", got)
	}
	if got := o.RenderSize(); got != 32 {
		t.Errorf("RenderSize() = %d, want 32", got)
	}
}

func TestRenderSize(t *testing.T) {
	o := DefaultOptions()
	o.BitmapSize = 64
	if got := o.RenderSize(); got != 64 {
		t.Errorf("RenderSize() with bitmapsize 64 = %d, want 64", got)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		key    string
	}{
		{"zero size", func(o *Options) { o.Size = 0 }, "size"},
		{"negative bitmapsize", func(o *Options) { o.BitmapSize = -1 }, "bitmapsize"},
		{"zero dpi", func(o *Options) { o.DPI = 0 }, "dpi"},
		{"negative padding", func(o *Options) { o.Padding = -2 }, "padding"},
		{"zero texture width", func(o *Options) { o.TextureWidth = 0 }, "texturesize"},
		{"negative texture height", func(o *Options) { o.TextureHeight = -4 }, "texturesize"},
		{"negative offset", func(o *Options) { o.TextureOffsetX = -1 }, "textureoffset"},
		{"offset outside texture", func(o *Options) { o.TextureOffsetY = 512 }, "textureoffset"},
		{"no letters", func(o *Options) { o.Letters = nil }, "letters"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.modify(&o)
			err := o.Validate()
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Section != "default" || ce.Key != tt.key {
				t.Errorf("Validate() error at [%s] %q, want [default] %q", ce.Section, ce.Key, tt.key)
			}
		})
	}
}

func TestValidateNoLetters(t *testing.T) {
	o := DefaultOptions()
	o.Letters = []rune{}
	if err := o.Validate(); !errors.Is(err, ErrNoLetters) {
		t.Errorf("Validate() = %v, want ErrNoLetters", err)
	}
}

func TestWithOnly(t *testing.T) {
	var co compileOptions
	WithOnly("Hi!")(&co)
	for _, c := range "Hi!" {
		if !co.filter(c) {
			t.Errorf("filter(%q) = false, want true", c)
		}
	}
	if co.filter('x') {
		t.Errorf("filter('x') = true, want false")
	}
}
