package fontc

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/fontc/internal/image"
)

// ColorRequest describes the region a color generator paints for one glyph.
type ColorRequest struct {
	// Origin is the top-left of the glyph region on the full canvas.
	// Glyphs share a baseline, so Origin.Y is MaxBearingY - BearingY.
	Origin Point
	// Size is the glyph bitmap size.
	Size Size
	// FullSize is the canvas the compositor dimensioned generators with.
	FullSize Size
	// Mask is the glyph coverage, replicated into all channels.
	Mask *ImageBuf
	// Previous is the image accumulated by the layers below.
	Previous *ImageBuf
	Glyph    *Glyph
	Raster   RasterContext
}

// ColorGenerator paints the pixels of a layer.
//
// The compositor zeroes every pixel outside the glyph coverage after Apply.
// Generators may share state between glyphs but must not change it in
// Apply; glyphs are composited concurrently.
type ColorGenerator interface {
	Name() string
	Apply(req ColorRequest) (*ImageBuf, error)
}

// Dimensioner is implemented by generators and effects that precompute
// state for the full glyph canvas. The compositor calls SetDimensions once
// before the first glyph.
type Dimensioner interface {
	SetDimensions(width, height int)
}

// selfMasked is implemented by generators whose output alpha defines its own
// coverage, so the compositor must not clip it to the glyph silhouette.
type selfMasked interface {
	selfMasked() bool
}

// canvas tracks the dimensions a generator was prepared for.
type canvas struct {
	mu   sync.RWMutex
	size Size
	set  bool
}

func (c *canvas) setSize(w, h int) {
	c.size = Size{Width: w, Height: h}
	c.set = true
}

// check verifies that req lies inside the dimensioned canvas.
// Callers hold c.mu for reading.
func (c *canvas) check(req ColorRequest) error {
	if !c.set {
		return ErrDimensionsNotSet
	}
	if req.FullSize != (Size{}) && req.FullSize != c.size {
		return fmt.Errorf("%w: dimensioned %dx%d, requested %dx%d",
			ErrStaleDimensions, c.size.Width, c.size.Height, req.FullSize.Width, req.FullSize.Height)
	}
	if req.Origin.X < 0 || req.Origin.Y < 0 ||
		req.Origin.X+req.Size.Width > c.size.Width || req.Origin.Y+req.Size.Height > c.size.Height {
		return fmt.Errorf("%w: region %dx%d at (%d, %d) outside %dx%d", ErrStaleDimensions,
			req.Size.Width, req.Size.Height, req.Origin.X, req.Origin.Y, c.size.Width, c.size.Height)
	}
	return nil
}

// Solid multiplies the accumulated image by a single color.
type Solid struct {
	Color RGBA
}

// NewSolid returns a Solid generator painting c.
func NewSolid(c RGBA) *Solid {
	return &Solid{Color: c}
}

// Name implements ColorGenerator.
func (s *Solid) Name() string { return "solid" }

// Apply implements ColorGenerator.
func (s *Solid) Apply(req ColorRequest) (*ImageBuf, error) {
	out := req.Previous.Clone()
	out.Scale(s.Color.Pixel())
	return out, nil
}

// ErrTooFewColors is returned for a gradient or stripes with fewer than two
// colors.
var ErrTooFewColors = errors.New("fontc: at least two colors are required")

// Gradient interpolates between two or more colors along a direction.
// Colors run from bottom to top at the default angle.
type Gradient struct {
	Colors []RGBA
	// Angle rotates the gradient direction, in degrees.
	Angle float64

	canvas
	field []float32
}

// NewGradient returns a gradient over colors at angle degrees.
func NewGradient(angle float64, colors ...RGBA) (*Gradient, error) {
	if len(colors) < 2 {
		return nil, ErrTooFewColors
	}
	return &Gradient{Colors: colors, Angle: angle}, nil
}

// Name implements ColorGenerator.
func (g *Gradient) Name() string { return "gradient" }

// SetDimensions precomputes the gradient position of every canvas pixel.
func (g *Gradient) SetDimensions(width, height int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setSize(width, height)

	a := g.Angle * math.Pi / 180
	nx, ny := math.Sin(a), -math.Cos(a)
	hw, hh := float64(width)/2, float64(height)/2
	ox, oy := math.Round(hw), math.Round(hh)
	extent := math.Round(math.Sqrt(hw*hw*math.Abs(nx) + hh*hh*math.Abs(ny)))
	if extent == 0 {
		extent = 1
	}

	g.field = make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := ((float64(x)-ox)*nx+(float64(y)-oy)*ny)/extent/2 + 0.5
			g.field[y*width+x] = float32(math.Min(1, math.Max(0, d)))
		}
	}
}

// Apply implements ColorGenerator. The output keeps the alpha of the
// accumulated image.
func (g *Gradient) Apply(req ColorRequest) (*ImageBuf, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if err := g.check(req); err != nil {
		return nil, err
	}
	out := image.Blank(req.Size.Width, req.Size.Height)
	for y := 0; y < req.Size.Height; y++ {
		row := (req.Origin.Y+y)*g.size.Width + req.Origin.X
		for x := 0; x < req.Size.Width; x++ {
			c := interpolate(g.Colors, float64(g.field[row+x]))
			p := c.Pixel()
			p[3] = req.Previous.Alpha(x, y)
			_ = out.Set(x, y, p)
		}
	}
	return out, nil
}

// interpolate returns the color at position t in [0, 1] of evenly spaced
// color stops.
func interpolate(colors []RGBA, t float64) RGBA {
	last := len(colors) - 1
	pos := t * float64(last)
	i := int(pos)
	frac := pos - float64(i)
	if i >= last {
		i, frac = last-1, 1
	}
	return colors[i].Lerp(colors[i+1], frac)
}

// Stripes paints parallel bands cycling through its colors.
type Stripes struct {
	Colors []RGBA
	// Width of each band in pixels.
	Width int
	// Offset shifts the bands along the stripe normal.
	Offset int
	// Angle rotates the bands, in degrees. Zero gives horizontal bands.
	Angle float64

	canvas
	band []uint16
}

// NewStripes returns stripes of the given width cycling through colors.
func NewStripes(width int, colors ...RGBA) (*Stripes, error) {
	if len(colors) < 2 {
		return nil, ErrTooFewColors
	}
	if width <= 0 {
		return nil, fmt.Errorf("fontc: stripe width must be positive, got %d", width)
	}
	return &Stripes{Colors: colors, Width: width}, nil
}

// Name implements ColorGenerator.
func (s *Stripes) Name() string { return "stripes" }

// SetDimensions precomputes the band index of every canvas pixel.
func (s *Stripes) SetDimensions(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSize(width, height)

	a := s.Angle * math.Pi / 180
	nx, ny := -math.Sin(a), math.Cos(a)
	ox, oy := math.Round(float64(width)/2), math.Round(float64(height)/2)
	bw := float64(max(s.Width, 1))
	n := len(s.Colors)

	s.band = make([]uint16, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := (float64(x)-ox)*nx + (float64(y)-oy)*ny + float64(s.Offset)
			i := int(math.Floor(d/bw)) % n
			if i < 0 {
				i += n
			}
			s.band[y*width+x] = uint16(i)
		}
	}
}

// Apply implements ColorGenerator. The output keeps the alpha of the
// accumulated image.
func (s *Stripes) Apply(req ColorRequest) (*ImageBuf, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(req); err != nil {
		return nil, err
	}
	out := image.Blank(req.Size.Width, req.Size.Height)
	for y := 0; y < req.Size.Height; y++ {
		row := (req.Origin.Y+y)*s.size.Width + req.Origin.X
		for x := 0; x < req.Size.Width; x++ {
			p := s.Colors[s.band[row+x]].Pixel()
			p[3] = req.Previous.Alpha(x, y)
			_ = out.Set(x, y, p)
		}
	}
	return out, nil
}

// Texture paints an image, repeated to cover the glyph canvas.
type Texture struct {
	Source *ImageBuf

	canvas
	tiled *ImageBuf
}

// NewTexture returns a generator painting src.
func NewTexture(src *ImageBuf) (*Texture, error) {
	if src.IsEmpty() {
		return nil, fmt.Errorf("fontc: texture: %w", image.ErrInvalidDimensions)
	}
	return &Texture{Source: src}, nil
}

// Name implements ColorGenerator.
func (t *Texture) Name() string { return "texture" }

// SetDimensions repeats the source to cover the canvas.
func (t *Texture) SetDimensions(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setSize(width, height)
	t.tiled = t.Source.Tile(width, height)
}

// Apply implements ColorGenerator. The texture alpha is multiplied by the
// alpha of the accumulated image.
func (t *Texture) Apply(req ColorRequest) (*ImageBuf, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if err := t.check(req); err != nil {
		return nil, err
	}
	out := t.tiled.Crop(req.Origin.X, req.Origin.Y, req.Size.Width, req.Size.Height)
	for y := 0; y < req.Size.Height; y++ {
		for x := 0; x < req.Size.Width; x++ {
			p := out.At(x, y)
			p[3] *= req.Previous.Alpha(x, y)
			_ = out.Set(x, y, p)
		}
	}
	return out, nil
}
