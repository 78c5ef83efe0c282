package text

import (
	"fmt"
	stdimage "image"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/fontc"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font is a parsed TrueType or OpenType font. It implements
// fontc.Rasterizer.
//
// Font is safe for concurrent use. Sized faces are created on demand and
// cached; each cached face is guarded by its own lock because x/image faces
// keep scratch buffers.
type Font struct {
	name string
	sfnt *sfnt.Font

	// kernPPEM is the scale Kerning reports at.
	kernPPEM fixed.Int26_6
	gpos     *GPOSKerner

	mu    sync.Mutex
	faces map[faceKey]*sizedFace
}

type faceKey struct {
	size    float64
	dpi     float64
	hinting font.Hinting
}

type sizedFace struct {
	mu   sync.Mutex
	face font.Face
}

// Option configures a Font.
type Option func(*options)

type options struct {
	size, dpi float64
	gpos      bool
}

// WithKerningSize sets the point size and resolution Kerning reports at.
// The default is 32pt at 72 dpi.
func WithKerningSize(size, dpi float64) Option {
	return func(o *options) {
		o.size, o.dpi = size, dpi
	}
}

// WithGPOSKerning looks pairs up in the GPOS table when the legacy kern
// table has no entry for them.
func WithGPOSKerning() Option {
	return func(o *options) {
		o.gpos = true
	}
}

// Parse parses font data. The data slice must not be modified afterwards.
func Parse(data []byte, opts ...Option) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	o := options{size: 32, dpi: 72}
	for _, opt := range opts {
		opt(&o)
	}
	if o.size <= 0 || o.dpi <= 0 {
		return nil, fmt.Errorf("text: invalid kerning scale %vpt at %v dpi", o.size, o.dpi)
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}

	name, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		name = ""
	}

	out := &Font{
		name:     name,
		sfnt:     f,
		kernPPEM: fixed.Int26_6(0.5 + o.size*o.dpi*64/72),
		faces:    make(map[faceKey]*sizedFace),
	}
	if o.gpos {
		out.gpos, err = NewGPOSKerner(data, o.size, o.dpi)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Open reads and parses the font file at path.
func Open(path string, opts ...Option) (*Font, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("text: read font: %w", err)
	}
	return Parse(data, opts...)
}

// Name returns the font family name, or "" if the font has none.
func (f *Font) Name() string { return f.name }

// face returns the cached face for the given scale, creating it if needed.
func (f *Font) face(size, dpi float64, hinting font.Hinting) (*sizedFace, error) {
	key := faceKey{size: size, dpi: dpi, hinting: hinting}

	f.mu.Lock()
	defer f.mu.Unlock()
	if sf, ok := f.faces[key]; ok {
		return sf, nil
	}
	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("text: create face: %w", err)
	}
	sf := &sizedFace{face: face}
	f.faces[key] = sf
	return sf, nil
}

func hintingFor(a fontc.Antialias) font.Hinting {
	if a == fontc.AntialiasLight {
		return font.HintingVertical
	}
	return font.HintingFull
}

// LoadGlyph implements fontc.Rasterizer.
func (f *Font) LoadGlyph(req fontc.GlyphRequest) (*fontc.RasterGlyph, error) {
	if req.Size <= 0 || req.DPI <= 0 {
		return nil, fmt.Errorf("text: invalid glyph scale %vpt at %v dpi", req.Size, req.DPI)
	}
	var buf sfnt.Buffer
	if gi, err := f.sfnt.GlyphIndex(&buf, req.Rune); err != nil || gi == 0 {
		return nil, fmt.Errorf("%w: %U", ErrMissingGlyph, req.Rune)
	}

	sf, err := f.face(req.Size, req.DPI, hintingFor(req.Antialias))
	if err != nil {
		return nil, err
	}

	sf.mu.Lock()
	defer sf.mu.Unlock()

	dr, mask, maskp, advance, ok := sf.face.Glyph(fixed.Point26_6{}, req.Rune)
	if !ok {
		return nil, fmt.Errorf("%w: %U", ErrMissingGlyph, req.Rune)
	}

	// The face reuses its mask between calls, so copy it out.
	coverage := stdimage.NewAlpha(stdimage.Rect(0, 0, dr.Dx(), dr.Dy()))
	if !dr.Empty() {
		draw.Draw(coverage, coverage.Bounds(), mask, maskp, draw.Src)
	}
	if req.Antialias == fontc.AntialiasNone {
		threshold(coverage)
	}

	return &fontc.RasterGlyph{
		Coverage: coverage,
		BearingX: dr.Min.X,
		BearingY: -dr.Min.Y,
		Advance:  advance.Round(),
	}, nil
}

// threshold turns antialiased coverage into a 1-bit silhouette.
func threshold(m *stdimage.Alpha) {
	for i, v := range m.Pix {
		if v >= 0x80 {
			m.Pix[i] = 0xff
		} else {
			m.Pix[i] = 0
		}
	}
}

// Kerning implements fontc.Kerner. It reports the kern table or GPOS pair
// adjustment at the configured kerning scale, falling back to shaping when
// enabled.
//
// sfnt.Font.Kern is called directly: opentype.Face.Kern scales by units
// per em instead of the face size.
func (f *Font) Kerning(a, b rune) int {
	var buf sfnt.Buffer
	k := 0
	x0, err0 := f.sfnt.GlyphIndex(&buf, a)
	x1, err1 := f.sfnt.GlyphIndex(&buf, b)
	if err0 == nil && err1 == nil && x0 != 0 && x1 != 0 {
		if v, err := f.sfnt.Kern(&buf, x0, x1, f.kernPPEM, font.HintingFull); err == nil {
			k = v.Round()
		}
	}

	if k == 0 && f.gpos != nil {
		return f.gpos.Kerning(a, b)
	}
	return k
}

// Close releases the cached faces.
func (f *Font) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, sf := range f.faces {
		_ = sf.face.Close()
		delete(f.faces, k)
	}
	return nil
}
