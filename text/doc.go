// Package text loads TrueType and OpenType fonts and rasterizes their
// glyphs for the font compiler.
//
// The pipeline is split in two parts:
//
//   - Font: parses a font with golang.org/x/image/font/opentype and caches
//     one face per size, resolution and hinting mode
//   - GPOSKerner: measures pair kerning by shaping with go-text/typesetting
//
// # Example usage
//
//	path, err := text.Locate("DejaVuSans.ttf", dataDir)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f, err := text.Open(path, text.WithKerningSize(32, 72), text.WithGPOSKerning())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	res, err := fontc.Compile(ctx, desc, f)
//
// # Antialiasing
//
// fontc.AntialiasNormal rasterizes with full hinting, AntialiasLight with
// vertical hinting only, and AntialiasNone thresholds the coverage to a
// 1-bit silhouette.
package text
