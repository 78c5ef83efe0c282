package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/gogpu/fontc"
)

// document is the metadata shared by the JSON and CBOR formats. Fields are
// declared in key order so both encodings list them alphabetically.
type document struct {
	Ascender     int           `json:"ascender"`
	Descender    int           `json:"descender"`
	Glyphs       []glyphEntry  `json:"glyphs"`
	Name         string        `json:"name"`
	PairKernings []kerningPair `json:"pairkernings"`
	Size         int           `json:"size"`
	TextureName  string        `json:"texturename"`
	TextureSize  [2]int        `json:"texturesize"`
}

type glyphEntry struct {
	Advance   int    `json:"advance"`
	Bearing   [2]int `json:"bearing"`
	BitmapBox [4]int `json:"bitmapbox"`
	Character string `json:"character"`
}

// kerningPair encodes as a three element array: first, second, offset.
type kerningPair struct {
	_      struct{} `cbor:",toarray"`
	First  string
	Second string
	Value  int
}

func (p kerningPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.First, p.Second, p.Value})
}

func (p *kerningPair) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("output: kerning pair has %d elements, want 3", len(raw))
	}
	for i, dst := range []any{&p.First, &p.Second, &p.Value} {
		if err := json.Unmarshal(raw[i], dst); err != nil {
			return err
		}
	}
	return nil
}

func newDocument(r *fontc.Result, m Meta) document {
	d := document{
		Ascender:     r.Extents.Ascender,
		Descender:    r.Extents.Descender,
		Glyphs:       make([]glyphEntry, 0, len(r.Glyphs)),
		Name:         m.Name,
		PairKernings: []kerningPair{},
		Size:         r.Options.Size,
		TextureName:  m.Texture,
		TextureSize:  [2]int{r.Options.TextureWidth, r.Options.TextureHeight},
	}
	for _, g := range r.Glyphs {
		b := box(g)
		bx, by := bearing(g)
		d.Glyphs = append(d.Glyphs, glyphEntry{
			Advance:   g.Advance,
			Bearing:   [2]int{bx, by},
			BitmapBox: [4]int{b.X, b.Y, b.Width, b.Height},
			Character: string(g.Rune),
		})
	}
	for _, p := range r.Kerning.Pairs() {
		d.PairKernings = append(d.PairKernings, kerningPair{
			First:  string(p.First),
			Second: string(p.Second),
			Value:  p.Value,
		})
	}
	return d
}

// JSON writes the metadata as indented JSON.
type JSON struct{}

// Ext implements Writer.
func (JSON) Ext() string { return ".json" }

// Write implements Writer.
func (JSON) Write(w io.Writer, r *fontc.Result, m Meta) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(newDocument(r, m)); err != nil {
		return fmt.Errorf("output: encode json: %w", err)
	}
	return nil
}

// CBOR writes the JSON document in deterministic CBOR encoding.
type CBOR struct{}

// Ext implements Writer.
func (CBOR) Ext() string { return ".cbor" }

// Write implements Writer.
func (CBOR) Write(w io.Writer, r *fontc.Result, m Meta) error {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return fmt.Errorf("output: cbor mode: %w", err)
	}
	if err := mode.NewEncoder(w).Encode(newDocument(r, m)); err != nil {
		return fmt.Errorf("output: encode cbor: %w", err)
	}
	return nil
}
