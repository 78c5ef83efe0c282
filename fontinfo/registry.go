package fontinfo

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/fontc"
)

var errUnknownType = errors.New("unknown type")

// kind tells what a section builds.
type kind int

const (
	kindColor kind = iota
	kindEffect
	kindLayer
)

func (k kind) String() string {
	switch k {
	case kindColor:
		return "color generator"
	case kindEffect:
		return "effect"
	default:
		return "layer"
	}
}

// builder creates a color generator or effect from a section's options.
type builder func(o *optionSet, env *env) (any, error)

type variant struct {
	kind  kind
	build builder
}

// registry maps the type= names of a font description to their builders.
var registry = map[string]variant{
	"solid":         {kindColor, buildSolid},
	"gradient":      {kindColor, buildGradient},
	"stripes":       {kindColor, buildStripes},
	"texture":       {kindColor, buildTexture},
	"distancefield": {kindColor, buildDistanceField},
	"outline":       {kindEffect, buildOutline},
	"dropshadow":    {kindEffect, buildDropShadow},
	"gaussianblur":  {kindEffect, buildGaussianBlur},
	"kernelblur":    {kindEffect, buildKernelBlur},
	"halfsize":      {kindEffect, buildHalfsize},
	"layer":         {kindLayer, nil},
}

// Types returns the registered section type names, sorted.
func Types() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func lookupVariant(name string) (variant, bool) {
	v, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}

var defaultColors = []fontc.RGBA{fontc.Black, fontc.White}

func buildSolid(o *optionSet, _ *env) (any, error) {
	return fontc.NewSolid(o.color("color", fontc.White)), nil
}

func buildGradient(o *optionSet, _ *env) (any, error) {
	colors := o.colors("colors", defaultColors)
	angle := o.float("angle", 120)
	return fontc.NewGradient(angle, colors...)
}

func buildStripes(o *optionSet, _ *env) (any, error) {
	colors := o.colors("colors", defaultColors)
	width := o.int("width", 4, positive)
	s, err := fontc.NewStripes(width, colors...)
	if err != nil {
		return nil, err
	}
	s.Offset = o.int("offset", 0)
	s.Angle = o.float("angle", 0)
	return s, nil
}

func buildTexture(o *optionSet, env *env) (any, error) {
	name := o.require("name")
	scale := o.float("scale", 1)
	if o.err != nil {
		return nil, nil
	}
	if scale <= 0 {
		o.fail("scale", fmt.Errorf("must be positive, got %v", scale))
		return nil, nil
	}
	path, err := env.resolve(name)
	if err != nil {
		o.fail("name", err)
		return nil, nil
	}
	src, err := loadTexture(path, scale)
	if err != nil {
		o.fail("name", err)
		return nil, nil
	}
	return fontc.NewTexture(src)
}

func buildDistanceField(o *optionSet, _ *env) (any, error) {
	size := o.int("size", 16, positive)
	factor := o.int("factor", 4, powerOfTwo)
	return fontc.NewDistanceField(size, factor)
}

func buildOutline(o *optionSet, _ *env) (any, error) {
	e := fontc.NewOutline(o.color("color", fontc.Black), o.int("width", 1, nonNegative))
	e.Opacity = float64(o.int("opacity", 100, percent)) / 100
	e.Spread = o.int("spread", 0, nonNegative)
	e.Mask = o.mask("mask")
	return e, nil
}

func buildDropShadow(o *optionSet, _ *env) (any, error) {
	e := fontc.NewDropShadow()
	e.Color = o.color("color", e.Color)
	e.Opacity = float64(o.int("opacity", 100, percent)) / 100
	e.Angle = o.float("angle", e.Angle)
	e.Size = o.int("size", e.Size, nonNegative)
	e.Distance = o.float("distance", e.Distance)
	e.Mask = o.mask("mask")
	return e, nil
}

func buildGaussianBlur(o *optionSet, _ *env) (any, error) {
	return &fontc.GaussianBlur{
		Size:         o.int("size", 1, nonNegative),
		MaskOverride: fontc.MaskOverride{Mask: o.mask("mask")},
	}, nil
}

func buildKernelBlur(o *optionSet, _ *env) (any, error) {
	e := &fontc.KernelBlur{
		Size:         o.int("size", 1, nonNegative),
		Strength:     o.float("strength", 1),
		MaskOverride: fontc.MaskOverride{Mask: o.mask("mask")},
	}
	if e.Strength < 0 {
		o.fail("strength", fmt.Errorf("must not be negative, got %v", e.Strength))
	}
	return e, nil
}

func buildHalfsize(o *optionSet, _ *env) (any, error) {
	return &fontc.Halfsize{
		Factor:       o.int("factor", 1, nonNegative),
		MaskOverride: fontc.MaskOverride{Mask: o.mask("mask")},
	}, nil
}

// layerArgs are the settings of a layer, from a layer section or a Layer(...)
// expression.
type layerArgs struct {
	color   string
	effects []string
	blend   string
	opacity float64
	mask    fontc.MaskPolicy
}

// newLayer assembles a layer from already built sections.
func (a layerArgs) newLayer(name string, env *env) (*fontc.Layer, error) {
	gen, err := env.colorGenerator(a.color)
	if err != nil {
		return nil, &fontc.ConfigError{Section: name, Key: "color", Err: err}
	}
	effects := make([]fontc.Effect, 0, len(a.effects))
	for _, n := range a.effects {
		e, err := env.effect(n)
		if err != nil {
			return nil, &fontc.ConfigError{Section: name, Key: "effects", Err: err}
		}
		effects = append(effects, e)
	}
	l := fontc.NewLayer(gen, effects...)
	l.Name = name
	l.Opacity = a.opacity
	if a.blend != "" {
		if l.Blend, err = fontc.ParseBlendMode(a.blend); err != nil {
			return nil, &fontc.ConfigError{Section: name, Key: "blend", Err: err}
		}
	}
	if a.mask != fontc.MaskInherit {
		l.Mask = a.mask
	}
	return l, nil
}

// layerSection reads a type=layer section.
func layerSection(o *optionSet) layerArgs {
	return layerArgs{
		color:   o.require("color"),
		effects: ParseNames(o.string("effects", "")),
		blend:   o.string("blend", ""),
		opacity: o.opacity("opacity", 1),
		mask:    o.mask("mask"),
	}
}

// layerExprArgs converts a Layer(...) expression.
func layerExprArgs(e layerExpr) (layerArgs, error) {
	a := layerArgs{opacity: 1}
	for _, kw := range e.args {
		kw := kw
		bad := func(err error) (layerArgs, error) {
			return layerArgs{}, fmt.Errorf("layer argument %s=%s: %w", kw.key, kw.val, err)
		}
		if kw.val.isList && kw.key != "effects" {
			return bad(errors.New("a list is only allowed for effects"))
		}
		switch kw.key {
		case "color":
			a.color = kw.val.text
		case "effects":
			if kw.val.isList {
				a.effects = kw.val.list
			} else {
				a.effects = []string{kw.val.text}
			}
		case "blend":
			a.blend = kw.val.text
		case "opacity":
			v, err := ParseOpacity(kw.val.text)
			if err != nil {
				return bad(err)
			}
			a.opacity = v
		case "mask":
			m, err := fontc.ParseMaskPolicy(kw.val.text)
			if err != nil {
				return bad(err)
			}
			a.mask = m
		default:
			return bad(errUnknownOption)
		}
	}
	if a.color == "" {
		return layerArgs{}, fmt.Errorf("layer at column %d: color: %w", e.pos.Column, errMissing)
	}
	return a, nil
}
