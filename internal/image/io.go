package image

import (
	"errors"
	"fmt"
	stdimage "image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")
)

// Load reads a PNG, BMP or TIFF file into a float buffer.
func Load(path string) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := stdimage.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromImage(img), nil
}

// FromImage converts any image.Image into a float buffer with straight alpha.
func FromImage(img stdimage.Image) *ImageBuf {
	r := img.Bounds()
	b := Blank(r.Dx(), r.Dy())
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := color.NRGBAModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
			i := b.PixOffset(x, y)
			b.pix[i+0] = float32(c.R) / 255
			b.pix[i+1] = float32(c.G) / 255
			b.pix[i+2] = float32(c.B) / 255
			b.pix[i+3] = float32(c.A) / 255
		}
	}
	return b
}

// ToNRGBA quantizes the buffer to 8 bits per channel. Values outside [0, 1]
// are clamped.
func (b *ImageBuf) ToNRGBA() *stdimage.NRGBA {
	out := stdimage.NewNRGBA(stdimage.Rect(0, 0, b.width, b.height))
	for i, v := range b.pix {
		out.Pix[i] = ToByte(v)
	}
	return out
}

// ToByte converts a unit float to an 8-bit channel value.
func ToByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}

// Encode writes img to w in the format named by ext (".png", ".bmp", ".tif"
// or ".tiff").
func Encode(w io.Writer, img stdimage.Image, ext string) error {
	var err error
	switch strings.ToLower(ext) {
	case ".png":
		err = png.Encode(w, img)
	case ".bmp":
		err = bmp.Encode(w, img)
	case ".tif", ".tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", ext, err)
	}
	return nil
}

// Save encodes img to path, choosing the format from the file extension.
func Save(path string, img stdimage.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	if err := Encode(f, img, filepath.Ext(path)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
