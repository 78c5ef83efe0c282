package fontc

import "errors"

// CompositorConfig configures NewCompositor.
type CompositorConfig struct {
	Layers      []*Layer
	PostEffects []Effect
	Background  RGBA
	// Extents are the raw extents from CollectGlyphs.
	Extents FontExtents
	// Padding is the extra padding from ExtraPadding.
	Padding Padding
	// Glyphs are the collected glyphs; their widest bitmap sizes the canvas.
	Glyphs []*Glyph
	Raster RasterContext
}

// Compositor paints glyph coverage bitmaps through the layer stack.
//
// Composite is safe for concurrent use once NewCompositor returns.
type Compositor struct {
	layers  []*Layer
	post    []Effect
	bg      RGBA
	maxBY   int
	maxSize Size
	raster  RasterContext
}

// NewCompositor sizes the shared glyph canvas and dimensions every layer
// color generator and post-effect that implements Dimensioner.
func NewCompositor(cfg CompositorConfig) (*Compositor, error) {
	if len(cfg.Layers) == 0 {
		return nil, ErrNoLayers
	}
	for _, l := range cfg.Layers {
		if l == nil || l.Color == nil {
			return nil, errors.New("fontc: layer without a color generator")
		}
	}

	width := 0
	for _, g := range cfg.Glyphs {
		if g.HasBitmap() {
			width = max(width, g.Bitmap.Width())
		}
	}
	pad := cfg.Padding.NonNegative()
	c := &Compositor{
		layers: cfg.Layers,
		post:   cfg.PostEffects,
		bg:     cfg.Background,
		maxBY:  cfg.Extents.Ascender,
		maxSize: Size{
			Width:  width + pad.Left + pad.Right,
			Height: cfg.Extents.Ascender - cfg.Extents.Descender,
		},
		raster: cfg.Raster,
	}
	c.raster.Padding = pad

	for _, l := range c.layers {
		if d, ok := l.Color.(Dimensioner); ok {
			d.SetDimensions(c.maxSize.Width, c.maxSize.Height)
		}
	}
	for _, e := range c.post {
		if d, ok := e.(Dimensioner); ok {
			d.SetDimensions(c.maxSize.Width, c.maxSize.Height)
		}
	}
	return c, nil
}

// MaxSize returns the canvas size generators were dimensioned with.
func (c *Compositor) MaxSize() Size { return c.maxSize }

// Composite paints one glyph and returns its final bitmap. The glyph is not
// modified. Glyphs without a bitmap return nil.
func (c *Compositor) Composite(g *Glyph) (*ImageBuf, error) {
	if !g.HasBitmap() {
		return nil, nil
	}
	coverage := g.Bitmap
	w, h := coverage.Bounds()

	acc := coverage.Clone()
	for _, l := range c.layers {
		var err error
		acc, err = l.apply(ColorRequest{
			Origin:   Point{X: 0, Y: c.maxBY - g.BearingY},
			Size:     Size{Width: w, Height: h},
			FullSize: c.maxSize,
			Mask:     coverage,
			Previous: acc,
			Glyph:    g,
			Raster:   c.raster,
		})
		if err != nil {
			return nil, err
		}
	}
	out, err := ApplyPostEffects(acc, c.post, c.bg)
	if err != nil {
		var ce *CompositingError
		if errors.As(err, &ce) {
			ce.Rune = g.Rune
		}
		return nil, err
	}
	return out, nil
}
