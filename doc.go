// Package fontc compiles a vector font into a bitmap font: a single atlas
// texture holding every requested glyph plus the metrics and kerning a
// renderer needs to lay out text with it.
//
// # Overview
//
// A compile runs seven stages, each usable on its own:
//
//   - ExtraPadding works out how much room the layer stack needs around
//     every glyph (outlines, shadows, blurs).
//   - CollectGlyphs rasterizes each rune through a Rasterizer, pads the
//     coverage bitmaps and gathers the raw font extents.
//   - Compositor paints every glyph through the ordered list of Layers,
//     each one a ColorGenerator, a chain of Effects, a mask and a blend mode.
//   - Post-effects run on the finished glyph before it is laid over the
//     background color.
//   - Normalize rescales the metrics to the final glyph heights.
//   - BuildKerning collects the nonzero pair kernings.
//   - Assemble packs the glyph bitmaps into the atlas.
//
// Compile drives all of them:
//
//	face, err := text.NewFace(fontData, text.FaceOptions{})
//	if err != nil {
//	    return err
//	}
//	font := &fontc.Font{
//	    Name:    "myfont",
//	    Options: fontc.DefaultOptions(),
//	    Layers:  []*fontc.Layer{fontc.NewLayer(fontc.NewSolid(fontc.White))},
//	}
//	res, err := fontc.Compile(ctx, font, face)
//
// The fontinfo package builds a Font from an INI font description and the
// output package writes the result as JSON, binary, XML or CBOR metadata
// next to the atlas texture.
//
// # Logging
//
// fontc is silent by default. Install a *slog.Logger with SetLogger to see
// compile diagnostics.
package fontc
