package output

import (
	"encoding/xml"
	"fmt"
	stdimage "image"
	"image/color"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/gogpu/fontc"
	"golang.org/x/image/draw"
)

type adfMember struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

type adfStruct struct {
	Type    string      `xml:"type,attr"`
	Name    string      `xml:"name,attr,omitempty"`
	ID      string      `xml:"id,attr,omitempty"`
	Members []adfMember `xml:"member"`
}

type adfArray struct {
	ID      string      `xml:"id,attr"`
	Value   string      `xml:",chardata"`
	Structs []adfStruct `xml:"struct"`
}

type adfInstance struct {
	Root   string     `xml:"root,attr"`
	Font   adfStruct  `xml:"struct"`
	Arrays []adfArray `xml:"array"`
}

type adfDocument struct {
	XMLName   xml.Name      `xml:"adf"`
	Instances []adfInstance `xml:"instances>instance"`
}

// maskSuffix names the glyph box texture the XML writer emits.
const maskSuffix = "_org"

// XML writes a glyph range document: one GlyphRange per glyph with an
// atlas box, grown by the internal padding, plus references to the atlas
// and to a mask texture marking every glyph box in white.
type XML struct{}

// Ext implements Writer.
func (XML) Ext() string { return ".font_xml" }

// Write implements Writer.
func (XML) Write(w io.Writer, r *fontc.Result, m Meta) error {
	texture := m.Texture
	ext := path.Ext(texture)
	mask := strings.TrimSuffix(texture, ext) + maskSuffix + ext
	compiled := strings.TrimSuffix(texture, ext) + ".ddsc"
	quote := func(s ...string) string {
		var b strings.Builder
		for _, v := range s {
			b.WriteString(strconv.Quote(v))
			b.WriteByte(' ')
		}
		return b.String()
	}

	ranges := adfArray{ID: "#2"}
	padX, padY := r.Options.InternalPadding[0], r.Options.InternalPadding[1]
	id := 3
	for _, g := range r.Glyphs {
		if g.Box == nil {
			continue
		}
		b := *g.Box
		x, y := b.X-padX, b.Y-padY
		ranges.Structs = append(ranges.Structs, adfStruct{
			Type: "GlyphRange",
			ID:   "#" + strconv.Itoa(id),
			Members: []adfMember{
				intMember("UnicodeStart", int(g.Rune)),
				intMember("Left", x),
				intMember("Top", y),
				intMember("Right", x+b.Width+2*padX),
				intMember("Bottom", y+b.Height+2*padY),
				intMember("Baseline", g.BearingY+padY),
			},
		})
		id++
	}

	doc := adfDocument{Instances: []adfInstance{{
		Root: "font",
		Font: adfStruct{
			Type: "Font",
			Name: "font",
			Members: []adfMember{
				{Name: "Dependencies", Value: "#1"},
				{Name: "MaskTexture", Value: quote(mask)},
				{Name: "Texture", Value: quote(compiled)},
				{Name: "Leading", Value: "-1.0"},
				{Name: "Tracking", Value: "1.0"},
				{Name: "Ranges", Value: "#2"},
			},
		},
		Arrays: []adfArray{
			{ID: "#1", Value: quote(mask, texture)},
			ranges,
		},
	}}}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("output: write xml: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("output: encode xml: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("output: write xml: %w", err)
	}
	return nil
}

// Extras implements Extras with the glyph box mask texture.
func (XML) Extras(r *fontc.Result, m Meta) []Extra {
	ext := path.Ext(m.Texture)
	if ext == "" {
		ext = ".png"
	}
	return []Extra{{Suffix: maskSuffix + ext, Image: GlyphBoxes(r)}}
}

func intMember(name string, v int) adfMember {
	return adfMember{Name: name, Type: "int", Value: strconv.Itoa(v)}
}

// GlyphBoxes returns a texture sized like the atlas, transparent except for
// each glyph box, grown by the internal padding and filled white.
func GlyphBoxes(r *fontc.Result) *stdimage.NRGBA {
	o := r.Options
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, o.TextureWidth, o.TextureHeight))
	padX, padY := o.InternalPadding[0], o.InternalPadding[1]
	white := stdimage.NewUniform(color.White)
	for _, g := range r.Glyphs {
		if g.Box == nil {
			continue
		}
		b := *g.Box
		rect := stdimage.Rect(b.X-padX, b.Y-padY, b.X+b.Width+padX, b.Y+b.Height+padY)
		draw.Draw(img, rect.Intersect(img.Bounds()), white, stdimage.Point{}, draw.Src)
	}
	return img
}
