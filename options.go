package fontc

import (
	"errors"
	"fmt"
)

// Options are the font-wide settings of a font description.
type Options struct {
	// Size is the nominal font size in points, reported in the metadata.
	Size int
	// BitmapSize is the size glyphs are rasterized at. Zero means Size.
	BitmapSize int
	DPI        int
	// Padding is the gap between glyphs in the atlas.
	Padding int
	// InternalPadding is added to glyph bearings (x unused, y added to
	// BearingY).
	InternalPadding   [2]int
	UseAdvanceAsWidth bool
	UsePairKernings   bool
	Letters           []rune
	Background        RGBA
	Foreground        RGBA
	Antialias         Antialias

	TextureWidth   int
	TextureHeight  int
	TextureOffsetX int
	TextureOffsetY int
	Premultiply    bool
	Packer         PackAlgorithm
	AllowRotate    bool

	// Workers composites glyphs on this many goroutines. Values below 2
	// composite on the calling goroutine.
	Workers int
}

// DefaultLetters are the printable ASCII characters 0x20-0x7e.
func DefaultLetters() []rune {
	out := make([]rune, 0, 0x7f-0x20)
	for c := rune(0x20); c < 0x7f; c++ {
		out = append(out, c)
	}
	return out
}

// DefaultOptions returns the settings used for keys a font description
// leaves out.
func DefaultOptions() Options {
	return Options{
		Size:            32,
		DPI:             72,
		UsePairKernings: true,
		Letters:         DefaultLetters(),
		Background:      Black,
		Foreground:      White,
		TextureWidth:    512,
		TextureHeight:   512,
		Packer:          PackSkylineBottomLeft,
		Workers:         1,
	}
}

// RenderSize returns the size glyphs are rasterized at.
func (o Options) RenderSize() int {
	if o.BitmapSize > 0 {
		return o.BitmapSize
	}
	return o.Size
}

// Validate reports the first invalid setting as a *ConfigError.
func (o Options) Validate() error {
	bad := func(key string, format string, args ...any) error {
		return &ConfigError{Section: "default", Key: key, Err: fmt.Errorf(format, args...)}
	}
	switch {
	case o.Size <= 0:
		return bad("size", "must be positive, got %d", o.Size)
	case o.BitmapSize < 0:
		return bad("bitmapsize", "must not be negative, got %d", o.BitmapSize)
	case o.DPI <= 0:
		return bad("dpi", "must be positive, got %d", o.DPI)
	case o.Padding < 0:
		return bad("padding", "must not be negative, got %d", o.Padding)
	case o.TextureWidth <= 0 || o.TextureHeight <= 0:
		return bad("texturesize", "must be positive, got (%d, %d)", o.TextureWidth, o.TextureHeight)
	case o.TextureOffsetX < 0 || o.TextureOffsetY < 0 ||
		o.TextureOffsetX >= o.TextureWidth || o.TextureOffsetY >= o.TextureHeight:
		return bad("textureoffset", "(%d, %d) is outside the texture", o.TextureOffsetX, o.TextureOffsetY)
	case len(o.Letters) == 0:
		return &ConfigError{Section: "default", Key: "letters", Err: ErrNoLetters}
	}
	return nil
}

// CompileOption configures a Compile call.
type CompileOption func(*compileOptions)

type compileOptions struct {
	filter func(rune) bool
}

// WithOnly restricts the compile to the requested letters that also appear
// in text. Useful for building small fonts for a known string.
func WithOnly(text string) CompileOption {
	keep := make(map[rune]bool)
	for _, r := range text {
		keep[r] = true
	}
	return func(o *compileOptions) {
		o.filter = func(r rune) bool { return keep[r] }
	}
}

var errNilRasterizer = errors.New("fontc: nil rasterizer")
