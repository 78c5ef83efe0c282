package fontinfo

import (
	"errors"
	stdimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/fontc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func parse(t *testing.T, src string) *Description {
	t.Helper()
	d, err := Parse([]byte(src), ParseOptions{})
	require.NoError(t, err)
	return d
}

func TestParseDefaults(t *testing.T) {
	d := parse(t, "[default]\nname = fonts/Vera.ttf\n")

	assert.Equal(t, "fonts/Vera.ttf", d.FontName)
	assert.Equal(t, "Vera", d.Font.Name)
	assert.Equal(t, ".png", d.TextureFormat)
	assert.Equal(t, "RGBA", d.TextureChannels)
	assert.Equal(t, "json", d.Writer)

	o := d.Font.Options
	want := fontc.DefaultOptions()
	assert.Equal(t, want.Size, o.Size)
	assert.Equal(t, 32, o.RenderSize())
	assert.Equal(t, want.Letters, o.Letters)
	assert.Equal(t, fontc.White, o.Foreground)
	assert.Equal(t, fontc.Black, o.Background)
	assert.True(t, o.UsePairKernings)
	assert.Equal(t, fontc.PackSkylineBottomLeft, o.Packer)
	assert.Equal(t, 512, o.TextureWidth)

	require.Len(t, d.Font.Layers, 1, "a description without layers gets one solid layer")
	solid, ok := d.Font.Layers[0].Color.(*fontc.Solid)
	require.True(t, ok, "default layer color is %T", d.Font.Layers[0].Color)
	assert.Equal(t, fontc.White, solid.Color)
	assert.Empty(t, d.Font.PostEffects)
}

func TestParseDefaultSection(t *testing.T) {
	d := parse(t, `
# a comment line
[default]
name = Vera.ttf
size = 24
bitmapsize = 96
dpi = 96
padding = 2
internalpadding = 1, 3
useadvanceaswidth = 1
usepairkernings = 0
letters = 41-43
bgcolor = 0.5, 0.5, 0.5
fgcolor = #ff8000
antialias = light
texturesize = 256, 128
textureoffset = 4, 2
usepremultipliedalpha = 1
textureformat = tif
texturechannels = la
writer = fontout_font
packer = MAXRECTS_BSSF
allowrotate = true
workers = 4
texturerender = fonttex_bitmap
`)
	o := d.Font.Options
	assert.Equal(t, 24, o.Size)
	assert.Equal(t, 96, o.RenderSize())
	assert.Equal(t, 96, o.DPI)
	assert.Equal(t, 2, o.Padding)
	assert.Equal(t, [2]int{1, 3}, o.InternalPadding)
	assert.True(t, o.UseAdvanceAsWidth)
	assert.False(t, o.UsePairKernings)
	assert.Equal(t, []rune("ABC"), o.Letters)
	assert.Equal(t, fontc.RGB(0.5, 0.5, 0.5), o.Background)
	assert.InDelta(t, 128.0/255, o.Foreground.G, 1e-9)
	assert.Equal(t, fontc.AntialiasLight, o.Antialias)
	assert.Equal(t, 256, o.TextureWidth)
	assert.Equal(t, 128, o.TextureHeight)
	assert.Equal(t, 4, o.TextureOffsetX)
	assert.Equal(t, 2, o.TextureOffsetY)
	assert.True(t, o.Premultiply)
	assert.Equal(t, fontc.PackMaxRectsBestShortSideFit, o.Packer)
	assert.True(t, o.AllowRotate)
	assert.Equal(t, 4, o.Workers)

	assert.Equal(t, ".tif", d.TextureFormat)
	assert.Equal(t, "LA", d.TextureChannels)
	assert.Equal(t, "font", d.Writer)
}

const stackedSrc = `
[default]
name = Vera.ttf
layers = body, glow
posteffects = shadow, half

[fill]
type = gradient
colors = (255, 200, 0), (255, 255, 255)
angle = 90

[rim]
type = Outline
color = 0, 0, 128
width = 2
opacity = 80
spread = 1
mask = padded

[body]
type = layer
color = fill
effects = rim
blend = multiply
opacity = 0.75

[glow]
type = solid
color = #00ff00

[shadow]
type = dropshadow
angle = 45
distance = 2
opacity = 50

[half]
type = halfsize
`

func TestParseLayerSections(t *testing.T) {
	d := parse(t, stackedSrc)
	layers := d.Font.Layers
	require.Len(t, layers, 2)

	body := layers[0]
	assert.Equal(t, "body", body.Name)
	g, ok := body.Color.(*fontc.Gradient)
	require.True(t, ok, "body color is %T", body.Color)
	assert.InDelta(t, 90, g.Angle, 1e-9)
	require.Len(t, g.Colors, 2)
	assert.Equal(t, fontc.BlendMultiply, body.Blend)
	assert.InDelta(t, 0.75, body.Opacity, 1e-9)
	assert.Equal(t, fontc.MaskOriginal, body.Mask)

	require.Len(t, body.Effects, 1)
	rim, ok := body.Effects[0].(*fontc.Outline)
	require.True(t, ok, "body effect is %T", body.Effects[0])
	assert.Equal(t, 2, rim.Width)
	assert.Equal(t, 1, rim.Spread)
	assert.InDelta(t, 0.8, rim.Opacity, 1e-9)
	assert.InDelta(t, 128.0/255, rim.Color.B, 1e-9)
	assert.Equal(t, fontc.MaskPadded, rim.MaskPolicy())

	glow := layers[1]
	assert.Equal(t, "glow", glow.Name, "a color section named in layers becomes a plain layer")
	assert.Equal(t, fontc.BlendNormal, glow.Blend)

	require.Len(t, d.Font.PostEffects, 2)
	shadow, ok := d.Font.PostEffects[0].(*fontc.DropShadow)
	require.True(t, ok)
	assert.InDelta(t, 0.5, shadow.Opacity, 1e-9)
	assert.InDelta(t, 45, shadow.Angle, 1e-9)
	assert.InDelta(t, 2, shadow.Distance, 1e-9)
	assert.Equal(t, 1, shadow.Size)
	half, ok := d.Font.PostEffects[1].(*fontc.Halfsize)
	require.True(t, ok)
	assert.Equal(t, 1, half.Factor)
}

func TestParseLayerExpressions(t *testing.T) {
	d := parse(t, `
[default]
name = Vera.ttf
layers = [Layer(color=fill, effects=[rim, blur], blend=blendscreen, opacity=0.5), Layer(color=fill, mask=None)]
posteffects = [blur]

[fill]
type = stripes
width = 3
colors = #000000, #ffffff, #ff0000

[rim]
type = outline

[blur]
type = kernelblur
size = 2
strength = 4
`)
	layers := d.Font.Layers
	require.Len(t, layers, 2)
	assert.Equal(t, fontc.BlendScreen, layers[0].Blend)
	assert.InDelta(t, 0.5, layers[0].Opacity, 1e-9)
	require.Len(t, layers[0].Effects, 2)
	assert.Equal(t, fontc.MaskNone, layers[1].Mask)
	assert.Same(t, layers[0].Color, layers[1].Color, "layers share the generator of one section")

	s, ok := layers[0].Color.(*fontc.Stripes)
	require.True(t, ok)
	assert.Equal(t, 3, s.Width)
	assert.Len(t, s.Colors, 3)

	kb, ok := d.Font.PostEffects[0].(*fontc.KernelBlur)
	require.True(t, ok)
	assert.Equal(t, 2, kb.Size)
	assert.InDelta(t, 4, kb.Strength, 1e-9)
}

func TestParseDistanceField(t *testing.T) {
	d := parse(t, `
[default]
name = Vera.ttf
size = 32
bitmapsize = 64
layers = df

[sdf]
type = distancefield
size = 8
factor = 8

[df]
type = layer
color = sdf
mask = none
`)
	df, ok := d.Font.Layers[0].Color.(*fontc.DistanceField)
	require.True(t, ok)
	assert.Equal(t, 8, df.Size)
	assert.Equal(t, 8, df.Factor)
	assert.Equal(t, fontc.Uniform(1), df.Padding())
	assert.Equal(t, fontc.MaskNone, d.Font.Layers[0].Mask)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		section string
		key     string
	}{
		{"missing name", "[default]\nsize = 3\n", "default", "name"},
		{"bad size", "[default]\nname = a\nsize = big\n", "default", "size"},
		{"zero size", "[default]\nname = a\nsize = 0\n", "default", "size"},
		{"unknown default key", "[default]\nname = a\ncolour = 1\n", "default", "colour"},
		{"bad antialias", "[default]\nname = a\nantialias = subpixel\n", "default", "antialias"},
		{"bad packer", "[default]\nname = a\npacker = guillotine\n", "default", "packer"},
		{"bad channels", "[default]\nname = a\ntexturechannels = RGBX\n", "default", "texturechannels"},
		{"bad format", "[default]\nname = a\ntextureformat = .jpg\n", "default", "textureformat"},
		{"reversed letters", "[default]\nname = a\nletters = 7e-20\n", "default", "letters"},
		{"empty letters", "[default]\nname = a\nletters = ,\n", "default", "letters"},
		{"bad texturesize", "[default]\nname = a\ntexturesize = 0, 5\n", "default", "texturesize"},
		{"offset outside", "[default]\nname = a\ntexturesize = 8, 8\ntextureoffset = 9, 0\n", "default", "textureoffset"},
		{"missing type", "[default]\nname = a\n[x]\ncolor = 1, 2, 3\n", "x", "type"},
		{"unknown type", "[default]\nname = a\n[x]\ntype = sparkle\n", "x", "type"},
		{"unknown option", "[default]\nname = a\n[x]\ntype = solid\ncolour = 1, 2, 3\n", "x", "colour"},
		{"bad percent", "[default]\nname = a\n[x]\ntype = outline\nopacity = 150\n", "x", "opacity"},
		{"bad factor", "[default]\nname = a\n[x]\ntype = distancefield\nfactor = 3\n", "x", "factor"},
		{"one color", "[default]\nname = a\n[x]\ntype = gradient\ncolors = (1, 2, 3)\n", "x", "colors"},
		{"bad mask", "[default]\nname = a\n[x]\ntype = gaussianblur\nmask = sometimes\n", "x", "mask"},
		{"missing texture", "[default]\nname = a\n[x]\ntype = texture\nname = nope.png\n", "x", "name"},
		{"layer without color", "[default]\nname = a\n[x]\ntype = layer\n", "x", "color"},
		{"layer unknown color", "[default]\nname = a\nlayers = x\n[x]\ntype = layer\ncolor = y\n", "x", "color"},
		{"layer effect is color", "[default]\nname = a\nlayers = x\n[c]\ntype = solid\n[x]\ntype = layer\ncolor = c\neffects = c\n", "x", "effects"},
		{"layer bad blend", "[default]\nname = a\nlayers = x\n[c]\ntype = solid\n[x]\ntype = layer\ncolor = c\nblend = dodge2\n", "x", "blend"},
		{"layers names effect", "[default]\nname = a\nlayers = o\n[o]\ntype = outline\n", "default", "layers"},
		{"layers missing", "[default]\nname = a\nlayers = ghost\n", "default", "layers"},
		{"layers syntax", "[default]\nname = a\nlayers = Layer(color=\n", "default", "layers"},
		{"posteffect is color", "[default]\nname = a\nposteffects = c\n[c]\ntype = solid\n", "default", "posteffects"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), ParseOptions{})
			require.Error(t, err)
			var ce *fontc.ConfigError
			require.True(t, errors.As(err, &ce), "error %v is not a ConfigError", err)
			assert.Equal(t, tt.section, ce.Section, "error: %v", err)
			assert.Equal(t, tt.key, ce.Key, "error: %v", err)
		})
	}
}

// FileTestSuite covers the parts of a description that refer to files.
type FileTestSuite struct {
	suite.Suite
	dir     string
	dataDir string
}

func TestFiles(t *testing.T) {
	suite.Run(t, new(FileTestSuite))
}

func (s *FileTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.dataDir = s.T().TempDir()

	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(60 * x), G: 255, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(s.dataDir, "wood.png"))
	s.Require().NoError(err)
	s.Require().NoError(png.Encode(f, img))
	s.Require().NoError(f.Close())

	s.write(s.dir, "letters.txt", "abc\nxyz\n")
}

func (s *FileTestSuite) write(dir, name, data string) string {
	p := filepath.Join(dir, name)
	s.Require().NoError(os.WriteFile(p, []byte(data), 0o600))
	return p
}

func (s *FileTestSuite) TestLoad() {
	path := s.write(s.dir, "vera.fontinfo", `
[default]
name = Vera.ttf
letters = letters.txt
layers = wood

[wood]
type = texture
name = wood.png
scale = 2
`)
	d, err := Load(path, s.dataDir)
	s.Require().NoError(err)
	s.Equal(path, d.Path)
	s.Equal([]string{s.dir, s.dataDir}, d.SearchDirs)
	s.Equal([]rune("abcxyz"), d.Font.Options.Letters)

	tex, ok := d.Font.Layers[0].Color.(*fontc.Texture)
	s.Require().True(ok, "layer color is %T", d.Font.Layers[0].Color)
	s.Equal(8, tex.Source.Width())
	s.Equal(4, tex.Source.Height())
}

func (s *FileTestSuite) TestTextureWithoutScale() {
	path := s.write(s.dir, "plain.fontinfo", "[default]\nname = a\nlayers = wood\n[wood]\ntype = texture\nname = wood.png\n")
	d, err := Load(path, s.dataDir)
	s.Require().NoError(err)
	tex := d.Font.Layers[0].Color.(*fontc.Texture)
	s.Equal(4, tex.Source.Width())
	s.InDelta(1, tex.Source.At(0, 0)[1], 1e-6)
}

func (s *FileTestSuite) TestTextureBadScale() {
	path := s.write(s.dir, "bad.fontinfo", "[default]\nname = a\n[wood]\ntype = texture\nname = wood.png\nscale = 0\n")
	_, err := Load(path, s.dataDir)
	var ce *fontc.ConfigError
	s.Require().ErrorAs(err, &ce)
	s.Equal("scale", ce.Key)
}

func (s *FileTestSuite) TestEmptyLettersFile() {
	s.write(s.dir, "empty.txt", "\n")
	path := s.write(s.dir, "empty.fontinfo", "[default]\nname = a\nletters = empty.txt\n")
	_, err := Load(path, "")
	s.Require().Error(err)
	s.ErrorIs(err, fontc.ErrNoLetters)
}

func (s *FileTestSuite) TestMissingFile() {
	_, err := Load(filepath.Join(s.dir, "nope.fontinfo"), "")
	s.ErrorIs(err, os.ErrNotExist)
}
