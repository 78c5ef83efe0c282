package output

import (
	"encoding/binary"
	"errors"
	"fmt"
	stdimage "image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gogpu/fontc"
	"github.com/gogpu/fontc/internal/image"
)

var (
	// ErrUnknownWriter is returned by Lookup for unregistered format names.
	ErrUnknownWriter = errors.New("output: unknown writer")
	// ErrOutOfRange is returned when a value does not fit its field in a
	// binary format.
	ErrOutOfRange = errors.New("output: value out of range")
)

// Meta names the files a compiled font is written to.
type Meta struct {
	// Name is the base name of the font description, such as "vera.fontinfo".
	Name string
	// Texture is the base name of the texture file, with its extension.
	Texture string
	// Order is the byte order of binary formats. Nil means little endian.
	Order binary.ByteOrder
}

func (m Meta) order() binary.ByteOrder {
	if m.Order == nil {
		return binary.LittleEndian
	}
	return m.Order
}

// Writer serializes the metadata of a compiled font.
type Writer interface {
	// Ext is the file extension of the format, with its dot.
	Ext() string
	Write(w io.Writer, r *fontc.Result, m Meta) error
}

// Extra is an additional image a writer emits next to its metadata file.
type Extra struct {
	// Suffix is appended to the metadata base name, extension included.
	Suffix string
	Image  stdimage.Image
}

// Extras is implemented by writers that emit more than one file.
type Extras interface {
	Extras(r *fontc.Result, m Meta) []Extra
}

var writers = map[string]Writer{
	"json":     JSON{},
	"cbor":     CBOR{},
	"font":     Binary{},
	"fntb":     FNTB{},
	"font_xml": XML{},
	"xml":      XML{},
}

// Lookup returns the writer registered under name.
func Lookup(name string) (Writer, error) {
	w, ok := writers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownWriter, name, strings.Join(Names(), ", "))
	}
	return w, nil
}

// Names returns the registered writer names, sorted.
func Names() []string {
	out := make([]string, 0, len(writers))
	for n := range writers {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Save writes the metadata to base plus the writer's extension, followed
// by any extra files, and returns the paths written.
func Save(base string, w Writer, r *fontc.Result, m Meta) ([]string, error) {
	path := base + w.Ext()
	if err := writeFile(path, func(f io.Writer) error { return w.Write(f, r, m) }); err != nil {
		return nil, err
	}
	paths := []string{path}
	if x, ok := w.(Extras); ok {
		for _, e := range x.Extras(r, m) {
			p := base + e.Suffix
			if err := image.Save(p, e.Image); err != nil {
				return paths, err
			}
			paths = append(paths, p)
		}
	}
	for _, p := range paths {
		fontc.Logger().Info("wrote file", "path", p)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("output: create directory: %w", err)
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("output: create file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// box returns the atlas rectangle of g, zero when it has none.
func box(g *fontc.Glyph) fontc.Box {
	if g.Box == nil {
		return fontc.Box{}
	}
	return *g.Box
}

// bearing returns the bearings of g, zero when it has no atlas box.
func bearing(g *fontc.Glyph) (x, y int) {
	if g.Box == nil {
		return 0, 0
	}
	return g.BearingX, g.BearingY
}

// sortedGlyphs returns the glyphs ordered by code point.
func sortedGlyphs(r *fontc.Result) []*fontc.Glyph {
	out := make([]*fontc.Glyph, len(r.Glyphs))
	copy(out, r.Glyphs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rune < out[j].Rune })
	return out
}

// checkRange fails when v is outside [lo, hi].
func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s = %d not in [%d, %d]", ErrOutOfRange, field, v, lo, hi)
	}
	return nil
}
