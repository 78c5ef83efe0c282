package fontc

import (
	"cmp"
	"slices"

	"github.com/gogpu/fontc/internal/image"
	"github.com/gogpu/fontc/internal/pack"
)

// Packer places rectangles into the atlas. A zero-height result means the
// atlas is full.
type Packer = pack.Packer

// PackAlgorithm selects the packing heuristic.
type PackAlgorithm = pack.Algorithm

// Packing algorithms.
const (
	PackSkylineBottomLeft        = pack.SkylineBottomLeft
	PackSkylineMinWaste          = pack.SkylineMinWaste
	PackMaxRectsBestShortSideFit = pack.MaxRectsBestShortSideFit
	PackMaxRectsBestLongSideFit  = pack.MaxRectsBestLongSideFit
	PackMaxRectsBestAreaFit      = pack.MaxRectsBestAreaFit
	PackMaxRectsBottomLeft       = pack.MaxRectsBottomLeft
	PackMaxRectsContactPoint     = pack.MaxRectsContactPoint
	PackShelf                    = pack.Shelf
)

// ParsePackAlgorithm resolves names such as "skyline_bl" or "maxrects_bssf".
func ParsePackAlgorithm(name string) (PackAlgorithm, error) { return pack.ParseAlgorithm(name) }

// AtlasOptions configures Assemble.
type AtlasOptions struct {
	Width, Height int
	// OffsetX and OffsetY reserve a margin at the top-left of the texture.
	OffsetX, OffsetY int
	// Padding is the gap between glyphs.
	Padding     int
	Background  RGBA
	Premultiply bool
	Algorithm   PackAlgorithm
	AllowRotate bool
}

// Atlas is the assembled glyph texture.
type Atlas struct {
	Image *ImageBuf
	// Occupancy is the fraction of the packing area in use.
	Occupancy float64
}

// Assemble packs the glyph bitmaps into a texture and records each glyph's
// Box. Glyphs without a bitmap get no box. Rotated placements store the
// rotated bitmap in the glyph.
func Assemble(glyphs []*Glyph, opts AtlasOptions) (*Atlas, error) {
	bg := opts.Background.Pixel()
	bg[3] = 0
	canvas := image.Filled(opts.Width, opts.Height, bg)

	packer, err := pack.New(opts.Algorithm, opts.Width-opts.OffsetX, opts.Height-opts.OffsetY, opts.AllowRotate)
	if err != nil {
		return nil, err
	}

	order := slices.Clone(glyphs)
	slices.SortStableFunc(order, func(a, b *Glyph) int {
		if a.HasBitmap() != b.HasBitmap() {
			if a.HasBitmap() {
				return -1
			}
			return 1
		}
		if a.HasBitmap() {
			if c := cmp.Compare(a.Bitmap.Height(), b.Bitmap.Height()); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Rune, b.Rune)
	})

	// Glyphs are only updated once every bitmap has been placed.
	type placement struct {
		g       *Glyph
		bitmap  *ImageBuf
		box     Box
		rotated bool
	}
	placed := make([]placement, 0, len(order))
	pad := max(opts.Padding, 0)
	for _, g := range order {
		if !g.HasBitmap() {
			continue
		}
		p := placement{g: g, bitmap: g.Bitmap}
		w, h := p.bitmap.Bounds()
		rw, rh := w+pad, h+pad
		r := packer.Pack(rw, rh)
		if r.Empty() {
			return nil, &PackingError{Width: opts.Width, Height: opts.Height, Rune: g.Rune}
		}
		if rw != rh && r.W == rh && r.W != rw {
			p.bitmap = p.bitmap.Rotate90()
			p.rotated = true
		}
		p.box = Box{
			X:      r.X + opts.OffsetX,
			Y:      r.Y + opts.OffsetY,
			Width:  r.W - pad,
			Height: r.H - pad,
		}
		canvas.DrawOver(p.bitmap, p.box.X, p.box.Y)
		placed = append(placed, p)
	}
	for _, p := range placed {
		p := p
		p.g.Bitmap = p.bitmap
		p.g.Box = &p.box
		p.g.Rotated = p.rotated
	}

	if opts.Premultiply {
		canvas.Premultiply()
	}
	occ := packer.Occupancy()
	Logger().Debug("fontc: atlas assembled", "width", opts.Width, "height", opts.Height, "occupancy", occ)
	return &Atlas{Image: canvas, Occupancy: occ}, nil
}
