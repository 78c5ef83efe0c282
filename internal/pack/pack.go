// Package pack implements online rectangle bin packing for texture atlases.
//
// A Packer places rectangles one at a time into a fixed-size bin. Placement
// failure is reported as a Rect with zero height, never as an error, so a
// caller can turn it into its own user-facing message.
//
// Packers are not safe for concurrent use.
package pack

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	// ErrUnknownAlgorithm is returned for an unrecognized algorithm.
	ErrUnknownAlgorithm = errors.New("pack: unknown algorithm")

	// ErrInvalidSize is returned when the bin has a non-positive dimension.
	ErrInvalidSize = errors.New("pack: invalid bin size")
)

// Rect is a placed rectangle. H == 0 means the request did not fit.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rect signals a failed placement.
func (r Rect) Empty() bool { return r.H == 0 }

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Packer places rectangles into a bin.
type Packer interface {
	// Pack places a w x h rectangle. When rotation is allowed the result may
	// be h x w. A zero-height result means the bin is full.
	Pack(w, h int) Rect

	// Occupancy returns the fraction of the bin area in use, in [0, 1].
	Occupancy() float64
}

// Algorithm selects a packing heuristic.
type Algorithm int

const (
	// SkylineBottomLeft places each rectangle as low as possible on a skyline.
	SkylineBottomLeft Algorithm = iota
	// SkylineMinWaste places where the least area is lost under the rectangle.
	SkylineMinWaste
	// MaxRectsBestShortSideFit minimizes the shorter leftover side.
	MaxRectsBestShortSideFit
	// MaxRectsBestLongSideFit minimizes the longer leftover side.
	MaxRectsBestLongSideFit
	// MaxRectsBestAreaFit picks the smallest free rectangle that fits.
	MaxRectsBestAreaFit
	// MaxRectsBottomLeft is the Tetris-style bottom-left rule.
	MaxRectsBottomLeft
	// MaxRectsContactPoint maximizes contact with edges and placed rectangles.
	MaxRectsContactPoint
	// Shelf fills horizontal shelves left to right.
	Shelf
)

var algorithmNames = [...]string{
	SkylineBottomLeft:        "skyline_bl",
	SkylineMinWaste:          "skyline_mw",
	MaxRectsBestShortSideFit: "maxrects_bssf",
	MaxRectsBestLongSideFit:  "maxrects_blsf",
	MaxRectsBestAreaFit:      "maxrects_baf",
	MaxRectsBottomLeft:       "maxrects_bl",
	MaxRectsContactPoint:     "maxrects_cp",
	Shelf:                    "shelf",
}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// ParseAlgorithm resolves a case-insensitive algorithm name such as
// "skyline_bl" or "MAXRECTS_BSSF".
func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for a, s := range algorithmNames {
		if s == n {
			return Algorithm(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// New creates a packer for a width x height bin.
func New(alg Algorithm, width, height int, allowRotate bool) (Packer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	switch alg {
	case SkylineBottomLeft, SkylineMinWaste:
		return newSkyline(width, height, alg == SkylineMinWaste, allowRotate), nil
	case MaxRectsBestShortSideFit, MaxRectsBestLongSideFit, MaxRectsBestAreaFit,
		MaxRectsBottomLeft, MaxRectsContactPoint:
		return newMaxRects(width, height, alg, allowRotate), nil
	case Shelf:
		return NewShelfAllocator(width, height), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, alg)
	}
}
