package output

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/fontc"
)

// ErrBadMagic is returned by ReadFont for data that is not a .font file.
var ErrBadMagic = errors.New("output: not a font file")

var fontMagic = [4]byte{'F', 'O', 'N', 'T'}

// fontHeader is the fixed part of a .font file. The offsets count from the
// start of the file.
type fontHeader struct {
	Magic         [4]byte
	Size          uint16
	TextureWidth  uint16
	TextureHeight uint16
	Ascender      int16
	Descender     int16
	Glyphs        uint16
	Pairs         uint16
	_             [3]uint16

	NameOffset    uint64
	TextureOffset uint64
	TableOffset   uint64
	KeysOffset    uint64
	ValuesOffset  uint64
	GlyphsOffset  uint64
}

// fontGlyph is one glyph record of a .font file.
type fontGlyph struct {
	Code          uint32
	X, Y          uint16
	Width, Height uint16
	Advance       uint8
	BearingX      int8
	BearingY      int8
	_             uint8
}

var fontHeaderSize = binary.Size(fontHeader{})

// Binary writes the .font format: a fixed header followed by 8-byte aligned
// sections holding the glyph records, the sorted code point table, the
// kerning keys and values, and the NUL terminated font and texture names.
//
// Glyphs are ordered by code point. Kerning keys are fontc.PairKey values.
type Binary struct{}

// Ext implements Writer.
func (Binary) Ext() string { return ".font" }

// Write implements Writer.
func (Binary) Write(w io.Writer, r *fontc.Result, m Meta) error {
	order := m.order()
	glyphs := sortedGlyphs(r)
	pairs := r.Kerning.Pairs()
	o := r.Options

	for _, c := range []struct {
		field  string
		v      int
		lo, hi int
	}{
		{"size", o.Size, 0, math.MaxUint16},
		{"texture width", o.TextureWidth, 0, math.MaxUint16},
		{"texture height", o.TextureHeight, 0, math.MaxUint16},
		{"ascender", r.Extents.Ascender, math.MinInt16, math.MaxInt16},
		{"descender", r.Extents.Descender, math.MinInt16, math.MaxInt16},
		{"glyph count", len(glyphs), 0, math.MaxUint16},
		{"kerning count", len(pairs), 0, math.MaxUint16},
	} {
		if err := checkRange(c.field, c.v, c.lo, c.hi); err != nil {
			return err
		}
	}

	var (
		data bytes.Buffer
		werr error
	)
	put := func(v any) {
		if werr == nil {
			werr = binary.Write(&data, order, v)
		}
	}
	align := func() uint64 {
		if n := data.Len() % 8; n != 0 {
			data.Write(make([]byte, 8-n))
		}
		return uint64(fontHeaderSize + data.Len())
	}

	h := fontHeader{
		Magic:         fontMagic,
		Size:          uint16(o.Size),
		TextureWidth:  uint16(o.TextureWidth),
		TextureHeight: uint16(o.TextureHeight),
		Ascender:      int16(r.Extents.Ascender),
		Descender:     int16(r.Extents.Descender),
		Glyphs:        uint16(len(glyphs)),
		Pairs:         uint16(len(pairs)),
	}

	h.GlyphsOffset = align()
	for _, g := range glyphs {
		rec, err := newFontGlyph(g)
		if err != nil {
			return err
		}
		put(rec)
	}
	h.TableOffset = align()
	for _, g := range glyphs {
		put(uint32(g.Rune))
	}
	h.KeysOffset = align()
	for _, p := range pairs {
		put(p.Key)
	}
	h.ValuesOffset = align()
	for _, p := range pairs {
		if err := checkRange(fmt.Sprintf("kerning %q %q", p.First, p.Second), p.Value, math.MinInt8, math.MaxInt8); err != nil {
			return err
		}
		put(int8(p.Value))
	}
	h.NameOffset = align()
	data.WriteString(m.Name)
	data.WriteByte(0)
	h.TextureOffset = align()
	data.WriteString(m.Texture)
	data.WriteByte(0)
	align()
	if werr != nil {
		return fmt.Errorf("output: encode font: %w", werr)
	}

	if err := binary.Write(w, order, &h); err != nil {
		return fmt.Errorf("output: write header: %w", err)
	}
	if _, err := data.WriteTo(w); err != nil {
		return fmt.Errorf("output: write data: %w", err)
	}
	return nil
}

func newFontGlyph(g *fontc.Glyph) (fontGlyph, error) {
	b := box(g)
	bx, by := bearing(g)
	for _, c := range []struct {
		field  string
		v      int
		lo, hi int
	}{
		{"x", b.X, 0, math.MaxUint16},
		{"y", b.Y, 0, math.MaxUint16},
		{"width", b.Width, 0, math.MaxUint16},
		{"height", b.Height, 0, math.MaxUint16},
		{"advance", g.Advance, 0, math.MaxUint8},
		{"bearing x", bx, math.MinInt8, math.MaxInt8},
		{"bearing y", by, math.MinInt8, math.MaxInt8},
	} {
		if err := checkRange(fmt.Sprintf("glyph %s %s", g.Display(), c.field), c.v, c.lo, c.hi); err != nil {
			return fontGlyph{}, err
		}
	}
	return fontGlyph{
		Code:     uint32(g.Rune),
		X:        uint16(b.X),
		Y:        uint16(b.Y),
		Width:    uint16(b.Width),
		Height:   uint16(b.Height),
		Advance:  uint8(g.Advance),
		BearingX: int8(bx),
		BearingY: int8(by),
	}, nil
}

// FontFile is a decoded .font file.
type FontFile struct {
	Size          int
	TextureWidth  int
	TextureHeight int
	Ascender      int
	Descender     int
	Name          string
	Texture       string
	Glyphs        []fontc.Glyph
	Kerning       []fontc.KerningPair
}

// ReadFont decodes a .font file written with the given byte order. Decoded
// glyphs carry a Box only when it is non-empty.
func ReadFont(r io.Reader, order binary.ByteOrder) (*FontFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("output: read font: %w", err)
	}
	var h fontHeader
	if err := binary.Read(bytes.NewReader(data), order, &h); err != nil {
		return nil, fmt.Errorf("output: read header: %w", err)
	}
	if h.Magic != fontMagic {
		return nil, ErrBadMagic
	}

	section := func(off uint64) (*bytes.Reader, error) {
		if off > uint64(len(data)) {
			return nil, fmt.Errorf("output: section offset %d beyond %d bytes", off, len(data))
		}
		return bytes.NewReader(data[off:]), nil
	}
	str := func(off uint64) (string, error) {
		if off > uint64(len(data)) {
			return "", fmt.Errorf("output: string offset %d beyond %d bytes", off, len(data))
		}
		b := data[off:]
		if i := bytes.IndexByte(b, 0); i >= 0 {
			b = b[:i]
		}
		return string(b), nil
	}

	f := &FontFile{
		Size:          int(h.Size),
		TextureWidth:  int(h.TextureWidth),
		TextureHeight: int(h.TextureHeight),
		Ascender:      int(h.Ascender),
		Descender:     int(h.Descender),
	}
	if f.Name, err = str(h.NameOffset); err != nil {
		return nil, err
	}
	if f.Texture, err = str(h.TextureOffset); err != nil {
		return nil, err
	}

	sr, err := section(h.GlyphsOffset)
	if err != nil {
		return nil, err
	}
	recs := make([]fontGlyph, h.Glyphs)
	if err := binary.Read(sr, order, recs); err != nil {
		return nil, fmt.Errorf("output: read glyphs: %w", err)
	}
	for _, rec := range recs {
		g := fontc.Glyph{
			Rune:     rune(rec.Code),
			Advance:  int(rec.Advance),
			BearingX: int(rec.BearingX),
			BearingY: int(rec.BearingY),
		}
		if rec.Width > 0 && rec.Height > 0 {
			g.Box = &fontc.Box{X: int(rec.X), Y: int(rec.Y), Width: int(rec.Width), Height: int(rec.Height)}
		}
		f.Glyphs = append(f.Glyphs, g)
	}

	if sr, err = section(h.KeysOffset); err != nil {
		return nil, err
	}
	keys := make([]uint64, h.Pairs)
	if err := binary.Read(sr, order, keys); err != nil {
		return nil, fmt.Errorf("output: read kerning keys: %w", err)
	}
	if sr, err = section(h.ValuesOffset); err != nil {
		return nil, err
	}
	values := make([]int8, h.Pairs)
	if err := binary.Read(sr, order, values); err != nil {
		return nil, fmt.Errorf("output: read kerning values: %w", err)
	}
	for i, k := range keys {
		a, b := fontc.SplitPairKey(k)
		f.Kerning = append(f.Kerning, fontc.KerningPair{Key: k, First: a, Second: b, Value: int(values[i])})
	}
	return f, nil
}
