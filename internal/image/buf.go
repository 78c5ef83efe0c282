// Package image provides the floating point RGBA buffer used by the glyph
// compositing pipeline.
//
// Pixels are stored row-major as four float32 channels (R, G, B, A) with
// straight (non-premultiplied) alpha. Values are nominally in [0, 1] but
// intermediate results may leave that range until clamped.
package image

import (
	"errors"
	stdimage "image"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// Channels is the number of float32 values per pixel.
const Channels = 4

// Pixel is one RGBA sample.
type Pixel [Channels]float32

// ImageBuf is a float32 RGBA image buffer.
//
// A zero-sized ImageBuf is valid and reports IsEmpty. Operations that derive
// a new image never modify their receiver.
//
// Thread safety: ImageBuf is safe for concurrent read access. Writes require
// external synchronization.
type ImageBuf struct {
	pix    []float32
	width  int
	height int
}

// NewImageBuf creates a transparent black image of the given size.
// Zero dimensions are allowed and produce an empty image.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	return Blank(width, height), nil
}

// Blank is NewImageBuf for sizes derived from existing images.
// Negative dimensions are treated as zero.
func Blank(width, height int) *ImageBuf {
	width = max(width, 0)
	height = max(height, 0)
	return &ImageBuf{
		pix:    make([]float32, width*height*Channels),
		width:  width,
		height: height,
	}
}

// Filled returns a width x height image where every pixel is p.
func Filled(width, height int, p Pixel) *ImageBuf {
	b := Blank(width, height)
	b.Fill(p)
	return b
}

// FromAlpha converts a coverage mask into an image where every channel
// holds the coverage value.
func FromAlpha(m *stdimage.Alpha) *ImageBuf {
	r := m.Bounds()
	b := Blank(r.Dx(), r.Dy())
	for y := 0; y < b.height; y++ {
		off := m.PixOffset(r.Min.X, r.Min.Y+y)
		row := m.Pix[off : off+b.width]
		for x, v := range row {
			f := float32(v) / 255
			i := (y*b.width + x) * Channels
			b.pix[i+0] = f
			b.pix[i+1] = f
			b.pix[i+2] = f
			b.pix[i+3] = f
		}
	}
	return b
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int { return b.width }

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int { return b.height }

// Bounds returns the image width and height.
func (b *ImageBuf) Bounds() (width, height int) { return b.width, b.height }

// IsEmpty reports whether the image has zero area.
func (b *ImageBuf) IsEmpty() bool { return b == nil || b.width == 0 || b.height == 0 }

// Pix returns the underlying pixel slice. Modifications are visible in the image.
func (b *ImageBuf) Pix() []float32 { return b.pix }

// InBounds reports whether (x, y) lies inside the image.
func (b *ImageBuf) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// PixOffset returns the index of the first channel of pixel (x, y).
func (b *ImageBuf) PixOffset(x, y int) int {
	return (y*b.width + x) * Channels
}

// At returns the pixel at (x, y), or a transparent pixel outside the image.
func (b *ImageBuf) At(x, y int) Pixel {
	if !b.InBounds(x, y) {
		return Pixel{}
	}
	i := b.PixOffset(x, y)
	return Pixel{b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3]}
}

// Set stores p at (x, y).
func (b *ImageBuf) Set(x, y int, p Pixel) error {
	if !b.InBounds(x, y) {
		return ErrOutOfBounds
	}
	copy(b.pix[b.PixOffset(x, y):], p[:])
	return nil
}

// Alpha returns the alpha channel value at (x, y), 0 outside the image.
func (b *ImageBuf) Alpha(x, y int) float32 {
	if !b.InBounds(x, y) {
		return 0
	}
	return b.pix[b.PixOffset(x, y)+3]
}

// Clone returns a deep copy.
func (b *ImageBuf) Clone() *ImageBuf {
	c := &ImageBuf{
		pix:    make([]float32, len(b.pix)),
		width:  b.width,
		height: b.height,
	}
	copy(c.pix, b.pix)
	return c
}

// Fill sets every pixel to p.
func (b *ImageBuf) Fill(p Pixel) {
	for i := 0; i < len(b.pix); i += Channels {
		copy(b.pix[i:i+Channels], p[:])
	}
}

// Scale multiplies every pixel channel-wise by p.
func (b *ImageBuf) Scale(p Pixel) {
	for i := 0; i < len(b.pix); i += Channels {
		b.pix[i+0] *= p[0]
		b.pix[i+1] *= p[1]
		b.pix[i+2] *= p[2]
		b.pix[i+3] *= p[3]
	}
}

// Clamp limits every channel to [0, 1]. NaN becomes 0.
func (b *ImageBuf) Clamp() {
	for i, v := range b.pix {
		switch {
		case v > 1:
			b.pix[i] = 1
		case v >= 0:
		default:
			b.pix[i] = 0
		}
	}
}

// Premultiply multiplies the color channels by alpha in place.
func (b *ImageBuf) Premultiply() {
	for i := 0; i < len(b.pix); i += Channels {
		a := b.pix[i+3]
		b.pix[i+0] *= a
		b.pix[i+1] *= a
		b.pix[i+2] *= a
	}
}

// Equal reports whether both images have the same size and identical pixels.
func (b *ImageBuf) Equal(o *ImageBuf) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i, v := range b.pix {
		if o.pix[i] != v {
			return false
		}
	}
	return true
}
