package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/fontc/internal/cache"
	"golang.org/x/image/math/fixed"
)

// GPOSKerner measures pair kerning by shaping each pair with HarfBuzz, so
// GPOS pair adjustments are honoured as well as the legacy kern table.
//
// GPOSKerner is safe for concurrent use. The parsed font is shared; faces
// and shapers are per call because neither is safe for concurrent use.
type GPOSKerner struct {
	font *font.Font
	size fixed.Int26_6

	shapers sync.Pool
	// advances holds the advance of each rune shaped alone; every pair
	// starting with it is measured against that.
	advances *cache.Sharded[rune, advance]
}

type advance struct {
	x  fixed.Int26_6
	ok bool
}

// NewGPOSKerner parses data and measures kerning at size points and dpi.
func NewGPOSKerner(data []byte, size, dpi float64) (*GPOSKerner, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font for shaping: %w", err)
	}
	return &GPOSKerner{
		font: face.Font,
		size: fixed.Int26_6(size * dpi / 72 * 64),
		shapers: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		advances: cache.NewSharded[rune, advance](cache.RuneHasher),
	}, nil
}

// Kerning implements fontc.Kerner. It returns the difference between the
// advance of a when followed by b and its advance alone, in whole pixels.
// Pairs the font cannot map, or that shape into a ligature, report 0.
func (k *GPOSKerner) Kerning(a, b rune) int {
	face := font.NewFace(k.font)
	hb := k.shapers.Get().(*shaping.HarfbuzzShaper)
	defer k.shapers.Put(hb)

	input := shaping.Input{
		Text:      []rune{a, b},
		RunStart:  0,
		RunEnd:    2,
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      k.size,
		Script:    language.LookupScript(a),
		Language:  language.NewLanguage("en"),
	}
	pair := hb.Shape(input)
	if len(pair.Glyphs) != 2 || pair.Glyphs[0].GlyphID == 0 || pair.Glyphs[1].GlyphID == 0 {
		return 0
	}

	single := k.advances.GetOrCreate(a, func() advance {
		input.Text = []rune{a}
		input.RunEnd = 1
		out := hb.Shape(input)
		if len(out.Glyphs) != 1 {
			return advance{}
		}
		return advance{x: out.Glyphs[0].Advance, ok: true}
	})
	if !single.ok {
		return 0
	}
	return (pair.Glyphs[0].Advance - single.x).Round()
}
