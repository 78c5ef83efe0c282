package output

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/fontc"
)

// fntbInfo is the fixed header of a .fntb file.
type fntbInfo struct {
	Name          [64]byte
	Texture       [256]byte
	SizePixels    uint8
	SizeFont      uint8
	Spacing       uint8
	Ascender      uint8
	Descender     int8
	MaxWidth      uint8
	MaxHeight     uint8
	_             uint8
	TextureWidth  uint16
	TextureHeight uint16
	_             [4]byte

	Chars    uint16
	Kernings uint16

	CharsOffset         uint32
	GlyphsOffset        uint32
	KerningCharsOffset  uint32
	KerningValuesOffset uint32
}

// fntbGlyph is one glyph record of a .fntb file.
type fntbGlyph struct {
	X, Y          uint16
	Width, Height uint8
	Advance       int8
	BearingY      int8
}

// FNTB writes the compact .fntb format: 16-bit characters, 8-bit glyph
// sizes and metrics, and kerning keys packing both characters of a pair
// into 32 bits. Fonts with characters beyond U+FFFF or metrics that do not
// fit fail with ErrOutOfRange.
type FNTB struct{}

// Ext implements Writer.
func (FNTB) Ext() string { return ".fntb" }

// Write implements Writer.
func (FNTB) Write(w io.Writer, r *fontc.Result, m Meta) error {
	order := m.order()
	glyphs := sortedGlyphs(r)
	pairs := r.Kerning.Pairs()
	o := r.Options
	e := r.Extents

	if len(m.Name) >= 64 || len(m.Texture) >= 256 {
		return fmt.Errorf("%w: names longer than 63 and 255 bytes", ErrOutOfRange)
	}
	for _, c := range []struct {
		field  string
		v      int
		lo, hi int
	}{
		{"bitmap size", o.RenderSize(), 0, math.MaxUint8},
		{"size", o.Size, 0, math.MaxUint8},
		{"padding", o.Padding, 0, math.MaxUint8},
		{"ascender", e.Ascender, 0, math.MaxUint8},
		{"descender", e.Descender, math.MinInt8, math.MaxInt8},
		{"max width", e.MaxWidth, 0, math.MaxUint8},
		{"max height", e.MaxHeight, 0, math.MaxUint8},
		{"texture width", o.TextureWidth, 0, math.MaxUint16},
		{"texture height", o.TextureHeight, 0, math.MaxUint16},
		{"glyph count", len(glyphs), 0, math.MaxUint16},
		{"kerning count", len(pairs), 0, math.MaxUint16},
	} {
		if err := checkRange(c.field, c.v, c.lo, c.hi); err != nil {
			return err
		}
	}

	h := fntbInfo{
		SizePixels:    uint8(o.RenderSize()),
		SizeFont:      uint8(o.Size),
		Spacing:       uint8(o.Padding),
		Ascender:      uint8(e.Ascender),
		Descender:     int8(e.Descender),
		MaxWidth:      uint8(e.MaxWidth),
		MaxHeight:     uint8(e.MaxHeight),
		TextureWidth:  uint16(o.TextureWidth),
		TextureHeight: uint16(o.TextureHeight),
		Chars:         uint16(len(glyphs)),
		Kernings:      uint16(len(pairs)),
	}
	copy(h.Name[:], m.Name)
	copy(h.Texture[:], m.Texture)

	n := len(glyphs)
	h.CharsOffset = uint32(binary.Size(h))
	h.GlyphsOffset = h.CharsOffset + uint32(2*n)
	h.KerningCharsOffset = h.GlyphsOffset + uint32(binary.Size(fntbGlyph{})*n)
	h.KerningValuesOffset = h.KerningCharsOffset + uint32(4*len(pairs))

	chars := make([]uint16, 0, n)
	recs := make([]fntbGlyph, 0, n)
	for _, g := range glyphs {
		if err := checkRange("character", int(g.Rune), 0, math.MaxUint16); err != nil {
			return err
		}
		rec, err := newFNTBGlyph(g)
		if err != nil {
			return err
		}
		chars = append(chars, uint16(g.Rune))
		recs = append(recs, rec)
	}
	keys := make([]uint32, 0, len(pairs))
	values := make([]int32, 0, len(pairs))
	for _, p := range pairs {
		if p.First > math.MaxUint16 || p.Second > math.MaxUint16 {
			return fmt.Errorf("%w: kerning pair %q %q", ErrOutOfRange, p.First, p.Second)
		}
		keys = append(keys, uint32(p.First)<<16|uint32(p.Second))
		values = append(values, int32(p.Value))
	}

	var buf bytes.Buffer
	for _, v := range []any{&h, chars, recs, keys, values} {
		if err := binary.Write(&buf, order, v); err != nil {
			return fmt.Errorf("output: encode fntb: %w", err)
		}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("output: write fntb: %w", err)
	}
	return nil
}

func newFNTBGlyph(g *fontc.Glyph) (fntbGlyph, error) {
	b := box(g)
	_, by := bearing(g)
	for _, c := range []struct {
		field  string
		v      int
		lo, hi int
	}{
		{"x", b.X, 0, math.MaxUint16},
		{"y", b.Y, 0, math.MaxUint16},
		{"width", b.Width, 0, math.MaxUint8},
		{"height", b.Height, 0, math.MaxUint8},
		{"advance", g.Advance, math.MinInt8, math.MaxInt8},
		{"bearing y", by, math.MinInt8, math.MaxInt8},
	} {
		if err := checkRange(fmt.Sprintf("glyph %s %s", g.Display(), c.field), c.v, c.lo, c.hi); err != nil {
			return fntbGlyph{}, err
		}
	}
	return fntbGlyph{
		X:        uint16(b.X),
		Y:        uint16(b.Y),
		Width:    uint8(b.Width),
		Height:   uint8(b.Height),
		Advance:  int8(g.Advance),
		BearingY: int8(by),
	}, nil
}

// FNTBFile is a decoded .fntb file.
type FNTBFile struct {
	Name          string
	Texture       string
	SizePixels    int
	SizeFont      int
	Spacing       int
	Ascender      int
	Descender     int
	MaxWidth      int
	MaxHeight     int
	TextureWidth  int
	TextureHeight int
	// Glyphs carry no BearingX; the format does not store it.
	Glyphs  []fontc.Glyph
	Kerning []fontc.KerningPair
}

// ReadFNTB decodes a .fntb file written with the given byte order.
func ReadFNTB(r io.Reader, order binary.ByteOrder) (*FNTBFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("output: read fntb: %w", err)
	}
	var h fntbInfo
	if err := binary.Read(bytes.NewReader(data), order, &h); err != nil {
		return nil, fmt.Errorf("output: read fntb header: %w", err)
	}
	f := &FNTBFile{
		Name:          cstring(h.Name[:]),
		Texture:       cstring(h.Texture[:]),
		SizePixels:    int(h.SizePixels),
		SizeFont:      int(h.SizeFont),
		Spacing:       int(h.Spacing),
		Ascender:      int(h.Ascender),
		Descender:     int(h.Descender),
		MaxWidth:      int(h.MaxWidth),
		MaxHeight:     int(h.MaxHeight),
		TextureWidth:  int(h.TextureWidth),
		TextureHeight: int(h.TextureHeight),
	}

	read := func(off uint32, v any) error {
		if uint64(off) > uint64(len(data)) {
			return fmt.Errorf("output: fntb offset %d beyond %d bytes", off, len(data))
		}
		if err := binary.Read(bytes.NewReader(data[off:]), order, v); err != nil {
			return fmt.Errorf("output: read fntb: %w", err)
		}
		return nil
	}
	chars := make([]uint16, h.Chars)
	recs := make([]fntbGlyph, h.Chars)
	keys := make([]uint32, h.Kernings)
	values := make([]int32, h.Kernings)
	for _, s := range []struct {
		off uint32
		v   any
	}{
		{h.CharsOffset, chars},
		{h.GlyphsOffset, recs},
		{h.KerningCharsOffset, keys},
		{h.KerningValuesOffset, values},
	} {
		if err := read(s.off, s.v); err != nil {
			return nil, err
		}
	}

	for i, rec := range recs {
		g := fontc.Glyph{
			Rune:     rune(chars[i]),
			Advance:  int(rec.Advance),
			BearingY: int(rec.BearingY),
		}
		if rec.Width > 0 && rec.Height > 0 {
			g.Box = &fontc.Box{X: int(rec.X), Y: int(rec.Y), Width: int(rec.Width), Height: int(rec.Height)}
		}
		f.Glyphs = append(f.Glyphs, g)
	}
	for i, k := range keys {
		a, b := rune(k>>16), rune(k&0xffff)
		f.Kerning = append(f.Kerning, fontc.KerningPair{
			Key:    fontc.PairKey(a, b),
			First:  a,
			Second: b,
			Value:  int(values[i]),
		})
	}
	return f, nil
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
