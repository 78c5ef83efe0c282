package fontc

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNoLayers is returned when a font has no layers to composite.
	ErrNoLayers = errors.New("fontc: a font must have at least one layer")

	// ErrNoLetters is returned when no characters were requested.
	ErrNoLetters = errors.New("fontc: no letters requested")

	// ErrDimensionsNotSet is returned by a color generator that needs the
	// canvas size but never received SetDimensions.
	ErrDimensionsNotSet = errors.New("fontc: color generator used before SetDimensions")

	// ErrStaleDimensions is returned when a color request does not fit the
	// canvas the generator was dimensioned for.
	ErrStaleDimensions = errors.New("fontc: color generator dimensions do not match the request")
)

// ConfigError reports an invalid font description entry.
type ConfigError struct {
	Section string
	Key     string
	Err     error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Key == "":
		return fmt.Sprintf("fontc: section [%s]: %v", e.Section, e.Err)
	case e.Section == "":
		return fmt.Sprintf("fontc: %s: %v", e.Key, e.Err)
	default:
		return fmt.Sprintf("fontc: section [%s] key %q: %v", e.Section, e.Key, e.Err)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RasterizerError reports a glyph the rasterizer could not load. It is not
// fatal: the glyph is compiled without a bitmap.
type RasterizerError struct {
	Rune rune
	Err  error
}

func (e *RasterizerError) Error() string {
	return fmt.Sprintf("fontc: cannot load glyph %q (U+%04X): %v", e.Rune, e.Rune, e.Err)
}

func (e *RasterizerError) Unwrap() error { return e.Err }

// Compositing stages reported by CompositingError.
const (
	StageColor  = "color"
	StageEffect = "effect"
	StageMask   = "mask"
	StageBlend  = "blend"
	StagePost   = "posteffect"
)

// CompositingError reports a layer step that failed or produced an image
// with no area.
type CompositingError struct {
	Layer string
	Stage string
	Rune  rune
	Err   error
}

func (e *CompositingError) Error() string {
	msg := fmt.Sprintf("fontc: layer %q %s step failed for glyph %q", e.Layer, e.Stage, e.Rune)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	} else {
		msg += ": image has zero area"
	}
	return msg
}

func (e *CompositingError) Unwrap() error { return e.Err }

// PackingError reports that the atlas texture is too small for the glyphs.
type PackingError struct {
	Width  int
	Height int
	Rune   rune
}

func (e *PackingError) Error() string {
	return fmt.Sprintf("fontc: the texture size is too small (%d, %d) to fit glyph %q; increase 'texturesize' in the font description",
		e.Width, e.Height, e.Rune)
}
