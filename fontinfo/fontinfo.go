package fontinfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/fontc"
	"gopkg.in/ini.v1"
)

// DefaultSection holds the font-wide settings.
const DefaultSection = "default"

// Description is a parsed font description.
type Description struct {
	// Path of the description file, or "" when parsed from memory.
	Path string
	// FontName is the font file as written in the description.
	FontName string
	// SearchDirs are the directories relative paths resolve against, in
	// order: the description's own directory, then the data directory.
	SearchDirs []string

	Font *fontc.Font

	// TextureFormat is the texture file extension, with its dot.
	TextureFormat string
	// TextureChannels lists the texture channels to write, from R, G, B, A
	// and L (luminance).
	TextureChannels string
	// Writer names the metadata format.
	Writer string
}

// ParseOptions tell Parse where relative paths resolve.
type ParseOptions struct {
	// BaseDir is the directory of the description file.
	BaseDir string
	// DataDir is tried after BaseDir.
	DataDir string
}

// Load reads the description at path. Relative paths inside it resolve
// against its directory, then dataDir.
func Load(path, dataDir string) (*Description, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("fontinfo: read description: %w", err)
	}
	d, err := Parse(data, ParseOptions{BaseDir: filepath.Dir(path), DataDir: dataDir})
	if err != nil {
		return nil, err
	}
	d.Path = path
	return d, nil
}

// env resolves files and holds the sections built so far.
type env struct {
	dirs    []string
	colors  map[string]fontc.ColorGenerator
	effects map[string]fontc.Effect
	layers  map[string]layerArgs
	kinds   map[string]kind
}

// resolve finds name directly or under one of the search directories.
func (e *env) resolve(name string) (string, error) {
	candidates := []string{name}
	if !filepath.IsAbs(name) {
		candidates = candidates[:0]
		for _, d := range e.dirs {
			candidates = append(candidates, filepath.Join(d, name))
		}
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", os.ErrNotExist, name)
}

func (e *env) wrongKind(name string, want kind) error {
	if k, ok := e.kinds[name]; ok {
		return fmt.Errorf("section [%s] is of kind %v, want %v", name, k, want)
	}
	return fmt.Errorf("no section named [%s]", name)
}

func (e *env) colorGenerator(name string) (fontc.ColorGenerator, error) {
	if g, ok := e.colors[name]; ok {
		return g, nil
	}
	return nil, e.wrongKind(name, kindColor)
}

func (e *env) effect(name string) (fontc.Effect, error) {
	if fx, ok := e.effects[name]; ok {
		return fx, nil
	}
	return nil, e.wrongKind(name, kindEffect)
}

// Parse parses a font description.
//
// The default section holds the font settings. Every other section
// defines a color generator, effect or layer named after the section, with
// its variant chosen by type=. Unknown sections types and options are
// errors, reported as *fontc.ConfigError.
func Parse(data []byte, opts ParseOptions) (*Description, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:            true,
		IgnoreInlineComment:        true,
		AllowPythonMultilineValues: true,
	}, data)
	if err != nil {
		return nil, &fontc.ConfigError{Err: fmt.Errorf("fontinfo: %w", err)}
	}

	e := &env{
		colors:  make(map[string]fontc.ColorGenerator),
		effects: make(map[string]fontc.Effect),
		layers:  make(map[string]layerArgs),
		kinds:   make(map[string]kind),
	}
	for _, d := range []string{opts.BaseDir, opts.DataDir} {
		if d != "" {
			e.dirs = append(e.dirs, d)
		}
	}
	if len(e.dirs) == 0 {
		e.dirs = []string{"."}
	}

	if err := e.buildSections(file); err != nil {
		return nil, err
	}

	sec, err := file.GetSection(DefaultSection)
	if err != nil {
		sec = file.Section(DefaultSection)
	}
	return e.parseDefault(newOptionSet(sec))
}

func (e *env) buildSections(file *ini.File) error {
	for _, sec := range file.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection || name == DefaultSection {
			continue
		}
		o := newOptionSet(sec)
		typ, ok := o.lookup("type")
		if !ok {
			return &fontc.ConfigError{Section: name, Key: "type", Err: errMissing}
		}
		v, ok := lookupVariant(typ)
		if !ok {
			return &fontc.ConfigError{Section: name, Key: "type", Err: fmt.Errorf("%w %q", errUnknownType, typ)}
		}
		e.kinds[name] = v.kind

		if v.kind == kindLayer {
			a := layerSection(o)
			if err := o.finish(); err != nil {
				return err
			}
			e.layers[name] = a
			continue
		}

		built, err := v.build(o, e)
		if ferr := o.finish(); ferr != nil {
			return ferr
		}
		if err != nil {
			return &fontc.ConfigError{Section: name, Err: err}
		}
		switch x := built.(type) {
		case fontc.ColorGenerator:
			e.colors[name] = x
		case fontc.Effect:
			e.effects[name] = x
		}
	}
	return nil
}

// Keys of the default section that older descriptions carry and that no
// longer have an effect.
var legacyKeys = []string{"texturerender", "texturewriter"}

func (e *env) parseDefault(o *optionSet) (*Description, error) {
	opts := fontc.DefaultOptions()
	d := &Description{SearchDirs: e.dirs}

	d.FontName = o.require("name")
	opts.Size = o.int("size", opts.Size, positive)
	opts.BitmapSize = o.int("bitmapsize", 0, positive)
	opts.DPI = o.int("dpi", opts.DPI, positive)
	opts.Padding = o.int("padding", opts.Padding, nonNegative)
	opts.InternalPadding = o.pair("internalpadding", opts.InternalPadding)
	opts.UseAdvanceAsWidth = o.bool("useadvanceaswidth", opts.UseAdvanceAsWidth)
	opts.UsePairKernings = o.bool("usepairkernings", opts.UsePairKernings)
	opts.Background = o.color("bgcolor", opts.Background)
	opts.Foreground = o.color("fgcolor", opts.Foreground)
	if s, ok := o.lookup("antialias"); ok {
		a, err := fontc.ParseAntialias(s)
		if err != nil {
			o.fail("antialias", err)
		}
		opts.Antialias = a
	}
	size := o.pair("texturesize", [2]int{opts.TextureWidth, opts.TextureHeight}, positive)
	opts.TextureWidth, opts.TextureHeight = size[0], size[1]
	off := o.pair("textureoffset", [2]int{}, nonNegative)
	opts.TextureOffsetX, opts.TextureOffsetY = off[0], off[1]
	opts.Premultiply = o.bool("usepremultipliedalpha", opts.Premultiply)
	if s, ok := o.lookup("packer"); ok {
		p, err := fontc.ParsePackAlgorithm(s)
		if err != nil {
			o.fail("packer", err)
		}
		opts.Packer = p
	}
	opts.AllowRotate = o.bool("allowrotate", opts.AllowRotate)
	opts.Workers = o.int("workers", opts.Workers, positive)

	d.TextureFormat = o.string("textureformat", ".png")
	d.TextureChannels = o.string("texturechannels", "RGBA")
	d.Writer = normalizeWriter(o.string("writer", "json"))
	e.checkTextureOptions(o, d)

	if s, ok := o.lookup("letters"); ok {
		opts.Letters = e.letters(o, s)
	}

	for _, k := range legacyKeys {
		o.lookup(k)
	}

	layersValue, hasLayers := o.lookup("layers")
	postValue, _ := o.lookup("posteffects")
	if err := o.finish(); err != nil {
		return nil, err
	}

	base := filepath.Base(d.FontName)
	font := &fontc.Font{Name: strings.TrimSuffix(base, filepath.Ext(base)), Options: opts}
	var err error
	if hasLayers && strings.TrimSpace(layersValue) != "" {
		font.Layers, err = e.buildLayers(layersValue)
	} else {
		font.Layers = []*fontc.Layer{fontc.NewLayer(fontc.NewSolid(opts.Foreground))}
	}
	if err != nil {
		return nil, err
	}
	for _, n := range ParseNames(postValue) {
		fx, err := e.effect(n)
		if err != nil {
			return nil, &fontc.ConfigError{Section: DefaultSection, Key: "posteffects", Err: err}
		}
		font.PostEffects = append(font.PostEffects, fx)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	d.Font = font
	return d, nil
}

// letters reads the letters option: a file when one exists by that name,
// hexadecimal ranges otherwise.
func (e *env) letters(o *optionSet, s string) []rune {
	if path, err := e.resolve(s); err == nil {
		out, err := ReadLettersFile(path)
		if err != nil {
			o.fail("letters", err)
		}
		return out
	}
	out, err := ParseLetterRanges(s)
	if err != nil {
		o.fail("letters", err)
		return nil
	}
	if len(out) == 0 {
		o.fail("letters", fontc.ErrNoLetters)
	}
	return out
}

// buildLayers resolves the layers option: Layer(...) expressions, or
// section names. A color generator section named directly becomes a plain
// layer.
func (e *env) buildLayers(s string) ([]*fontc.Layer, error) {
	fail := func(err error) error {
		var ce *fontc.ConfigError
		if errors.As(err, &ce) {
			return err
		}
		return &fontc.ConfigError{Section: DefaultSection, Key: "layers", Err: err}
	}

	var out []*fontc.Layer
	if isLayerExpr(s) {
		exprs, err := parseLayerExprs(s)
		if err != nil {
			return nil, fail(err)
		}
		for i, x := range exprs {
			a, err := layerExprArgs(x)
			if err != nil {
				return nil, fail(err)
			}
			l, err := a.newLayer(fmt.Sprintf("layers[%d]", i), e)
			if err != nil {
				return nil, fail(err)
			}
			l.Name = a.color
			out = append(out, l)
		}
		return out, nil
	}

	for _, n := range ParseNames(s) {
		if a, ok := e.layers[n]; ok {
			l, err := a.newLayer(n, e)
			if err != nil {
				return nil, fail(err)
			}
			out = append(out, l)
			continue
		}
		if g, ok := e.colors[n]; ok {
			l := fontc.NewLayer(g)
			l.Name = n
			out = append(out, l)
			continue
		}
		return nil, fail(e.wrongKind(n, kindLayer))
	}
	return out, nil
}

// normalizeWriter maps older module style names such as "fontout_json" to
// their format name.
func normalizeWriter(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(filepath.Base(s), ".py")
	return strings.TrimPrefix(s, "fontout_")
}

func (e *env) checkTextureOptions(o *optionSet, d *Description) {
	f := strings.ToLower(d.TextureFormat)
	if !strings.HasPrefix(f, ".") {
		f = "." + f
	}
	switch f {
	case ".png", ".bmp", ".tif", ".tiff":
		d.TextureFormat = f
	default:
		o.fail("textureformat", fmt.Errorf("unsupported texture format %q (want .png, .bmp or .tif)", d.TextureFormat))
	}

	ch := strings.ToUpper(d.TextureChannels)
	if ch == "" || len(ch) > 4 || strings.Trim(ch, "RGBAL") != "" {
		o.fail("texturechannels", fmt.Errorf("want up to four of R, G, B, A and L, got %q", d.TextureChannels))
		return
	}
	d.TextureChannels = ch
}
