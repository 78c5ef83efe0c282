package fontc

// FontExtents are the aggregate metrics of a compiled font.
type FontExtents struct {
	// MaxBearingY is the highest glyph top above the baseline.
	MaxBearingY int
	// MinBearingY is the lowest glyph bottom, negative below the baseline.
	MinBearingY int
	// MaxSize is the canvas every glyph is composited against. It is set
	// by Compile from the compositor and is zero in the raw extents.
	MaxSize Size

	Ascender  int
	Descender int
	MaxWidth  int
	MaxHeight int
}

// Padder is implemented by color generators and effects that need room
// around the glyph.
type Padder interface {
	Padding() Padding
}

// ExtraPadding returns the padding every glyph bitmap needs so that no layer
// or post-effect draws outside it.
//
// A layer needs its color generator's padding plus the largest padding of
// any of its effects on each side; the font needs the largest layer on each
// side. Post-effects run one after another on the finished glyph, so their
// paddings add up.
func ExtraPadding(layers []*Layer, postEffects []Effect) Padding {
	var pad Padding
	for _, l := range layers {
		pad = pad.Max(l.Padding())
	}
	for _, e := range postEffects {
		pad = pad.Add(e.Padding().NonNegative())
	}
	return pad.NonNegative()
}
