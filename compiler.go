package fontc

import (
	"context"
	"fmt"

	"github.com/gogpu/fontc/internal/parallel"
)

// Font is a parsed font description: settings plus the paint stack.
type Font struct {
	Name        string
	Options     Options
	Layers      []*Layer
	PostEffects []Effect
}

// Result is a compiled font.
type Result struct {
	Name    string
	Options Options
	// Glyphs in the order the letters were requested, without duplicates.
	Glyphs  []*Glyph
	Extents FontExtents
	// Kerning is nil when pair kerning is disabled.
	Kerning *KerningTable
	Atlas   *Atlas
}

// Glyph returns the compiled glyph for c, or nil.
func (r *Result) Glyph(c rune) *Glyph {
	for _, g := range r.Glyphs {
		if g.Rune == c {
			return g
		}
	}
	return nil
}

// Compile renders every letter of font through its layers and packs the
// results into an atlas.
//
// Glyphs the rasterizer cannot load are logged and compiled without a
// bitmap. Compositing and packing failures are fatal. ctx is checked
// between glyphs.
func Compile(ctx context.Context, font *Font, r Rasterizer, opts ...CompileOption) (*Result, error) {
	if r == nil {
		return nil, errNilRasterizer
	}
	var co compileOptions
	for _, o := range opts {
		o(&co)
	}
	o := font.Options
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if len(font.Layers) == 0 {
		return nil, ErrNoLayers
	}
	letters := o.Letters
	if co.filter != nil {
		letters = nil
		for _, c := range o.Letters {
			if co.filter(c) {
				letters = append(letters, c)
			}
		}
	}

	log := Logger()
	log.Debug("fontc: compiling", "font", font.Name, "letters", len(letters), "layers", len(font.Layers))

	pad := ExtraPadding(font.Layers, font.PostEffects)
	raster := RasterContext{
		Rasterizer:       r,
		Size:             float64(o.RenderSize()),
		DPI:              float64(o.DPI),
		Padding:          pad,
		InternalPaddingY: o.InternalPadding[1],
	}
	glyphs, raw, err := CollectGlyphs(r, CollectOptions{
		Letters:           letters,
		Size:              raster.Size,
		DPI:               raster.DPI,
		Antialias:         o.Antialias,
		Padding:           pad,
		InternalPaddingY:  o.InternalPadding[1],
		UseAdvanceAsWidth: o.UseAdvanceAsWidth,
	})
	if err != nil {
		return nil, err
	}

	comp, err := NewCompositor(CompositorConfig{
		Layers:      font.Layers,
		PostEffects: font.PostEffects,
		Background:  o.Background,
		Extents:     raw,
		Padding:     pad,
		Glyphs:      glyphs,
		Raster:      raster,
	})
	if err != nil {
		return nil, err
	}
	if err := compositeAll(ctx, comp, glyphs, o.Workers); err != nil {
		return nil, err
	}

	res := &Result{
		Name:    font.Name,
		Options: o,
		Glyphs:  glyphs,
		Extents: Normalize(glyphs, raw),
	}
	res.Extents.MaxSize = comp.MaxSize()
	if o.UsePairKernings {
		res.Kerning = BuildKerning(r, glyphs)
	}

	res.Atlas, err = Assemble(glyphs, AtlasOptions{
		Width:       o.TextureWidth,
		Height:      o.TextureHeight,
		OffsetX:     o.TextureOffsetX,
		OffsetY:     o.TextureOffsetY,
		Padding:     o.Padding,
		Background:  o.Background,
		Premultiply: o.Premultiply,
		Algorithm:   o.Packer,
		AllowRotate: o.AllowRotate,
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// compositeAll replaces every glyph bitmap with its composited image.
func compositeAll(ctx context.Context, comp *Compositor, glyphs []*Glyph, workers int) error {
	out := make([]*ImageBuf, len(glyphs))
	job := func(i int) error {
		img, err := comp.Composite(glyphs[i])
		if err != nil {
			return err
		}
		out[i] = img
		return nil
	}

	if workers < 2 {
		for i := range glyphs {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("fontc: compile cancelled: %w", err)
			}
			if err := job(i); err != nil {
				return err
			}
		}
	} else {
		pool := parallel.NewWorkerPool(workers)
		defer pool.Close()
		jobs := make([]parallel.Job, len(glyphs))
		for i := range glyphs {
			i := i
			jobs[i] = func(context.Context) error { return job(i) }
		}
		if err := pool.Run(ctx, jobs); err != nil {
			return err
		}
	}

	for i, g := range glyphs {
		if g.HasBitmap() {
			g.Bitmap = out[i]
		}
	}
	return nil
}
