package filter

import "github.com/gogpu/fontc/internal/image"

// Axis selects the direction of a 1D convolution.
type Axis int

const (
	// Horizontal convolves along rows.
	Horizontal Axis = iota
	// Vertical convolves along columns.
	Vertical
)

// Convolve1D convolves every channel of src with kernel along axis.
// Samples beyond the image edge repeat the nearest edge pixel. The kernel
// length should be odd; its center tap aligns with the output pixel.
func Convolve1D(src *image.ImageBuf, kernel []float32, axis Axis) *image.ImageBuf {
	w, h := src.Bounds()
	dst := image.Blank(w, h)
	if src.IsEmpty() || len(kernel) == 0 {
		return dst
	}

	in := src.Pix()
	out := dst.Pix()
	half := len(kernel) / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				sx, sy := x, y
				if axis == Horizontal {
					sx = clampInt(x-half+k, 0, w-1)
				} else {
					sy = clampInt(y-half+k, 0, h-1)
				}
				i := src.PixOffset(sx, sy)
				r += in[i+0] * weight
				g += in[i+1] * weight
				b += in[i+2] * weight
				a += in[i+3] * weight
			}
			o := dst.PixOffset(x, y)
			out[o+0] = min(r, 1)
			out[o+1] = min(g, 1)
			out[o+2] = min(b, 1)
			out[o+3] = min(a, 1)
		}
	}
	return dst
}

// Separable applies kernel horizontally and then vertically.
func Separable(src *image.ImageBuf, kernel []float32) *image.ImageBuf {
	return Convolve1D(Convolve1D(src, kernel, Horizontal), kernel, Vertical)
}

// GaussianBlur blurs src with a Gaussian of the given radius.
// Radius <= 0 returns a copy of src.
func GaussianBlur(src *image.ImageBuf, radius int) *image.ImageBuf {
	if radius <= 0 {
		return src.Clone()
	}
	return Separable(src, CachedGaussianKernel(radius))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
