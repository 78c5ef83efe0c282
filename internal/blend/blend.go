// Package blend provides the separable blend modes used to combine a layer
// with the layers below it.
//
// A blend mode is applied independently to each of the four channels,
// alpha included: base is the running accumulator, blend the new layer.
package blend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/fontc/internal/image"
)

// ErrUnknownMode is returned by Parse for an unregistered mode name.
var ErrUnknownMode = errors.New("blend: unknown mode")

// Mode represents a blending mode.
type Mode int

const (
	// Normal returns the blend value.
	Normal Mode = iota
	// Darken selects the darker of base and blend.
	Darken
	// Multiply multiplies base and blend.
	Multiply
	// ColorBurn darkens base to reflect blend: 1 - (1-base)/blend.
	ColorBurn
	// LinearBurn adds both and subtracts one.
	LinearBurn
	// Lighten selects the lighter of base and blend.
	Lighten
	// Screen is the inverse multiply: 1 - (1-base)(1-blend).
	Screen
	// ColorDodge brightens base to reflect blend: base/(1-blend).
	ColorDodge
	// LinearDodge adds base and blend.
	LinearDodge
)

var modeNames = [...]string{
	Normal:      "normal",
	Darken:      "darken",
	Multiply:    "multiply",
	ColorBurn:   "colorburn",
	LinearBurn:  "linearburn",
	Lighten:     "lighten",
	Screen:      "screen",
	ColorDodge:  "colordodge",
	LinearDodge: "lineardodge",
}

// String returns the lowercase mode name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Parse resolves a mode name. Names are case-insensitive and may carry a
// "blend" prefix, so "multiply", "Multiply" and "blendmultiply" are equal.
func Parse(name string) (Mode, error) {
	n := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "blend")
	for m, s := range modeNames {
		if s == n {
			return Mode(m), nil
		}
	}
	return Normal, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Names returns all registered mode names in declaration order.
func Names() []string {
	return append([]string(nil), modeNames[:]...)
}

// Channel blends one channel value.
// Division by zero in ColorBurn and ColorDodge resolves to the limit value.
func (m Mode) Channel(base, blend float32) float32 {
	switch m {
	case Darken:
		return min(base, blend)
	case Multiply:
		return base * blend
	case ColorBurn:
		if blend <= 0 {
			return 0
		}
		return 1 - (1-base)/blend
	case LinearBurn:
		return base + blend - 1
	case Lighten:
		return max(base, blend)
	case Screen:
		return 1 - (1-base)*(1-blend)
	case ColorDodge:
		if blend >= 1 {
			return 1
		}
		return base / (1 - blend)
	case LinearDodge:
		return base + blend
	default:
		return blend
	}
}

// Apply returns mode(base, blend) for every channel of every pixel.
// Both images are anchored at the origin; the result covers both, and a
// pixel missing from one image reads as transparent black.
func (m Mode) Apply(base, blend *image.ImageBuf) *image.ImageBuf {
	if m == Normal && base.Width() <= blend.Width() && base.Height() <= blend.Height() {
		return blend.Clone()
	}
	w := max(base.Width(), blend.Width())
	h := max(base.Height(), blend.Height())
	out := image.Blank(w, h)
	pix := out.Pix()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bp := base.At(x, y)
			sp := blend.At(x, y)
			i := out.PixOffset(x, y)
			for c := 0; c < image.Channels; c++ {
				pix[i+c] = m.Channel(bp[c], sp[c])
			}
		}
	}
	return out
}
