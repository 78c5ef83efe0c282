package filter

import "github.com/gogpu/fontc/internal/image"

// Maximum replaces every channel of every pixel with the largest value under
// the true cells of kernel centered on it (grayscale dilation). Cells that
// fall outside the image are ignored.
func Maximum(src *image.ImageBuf, kernel Kernel2D) *image.ImageBuf {
	return morph(src, kernel, true)
}

// Minimum is the grayscale erosion counterpart of Maximum.
func Minimum(src *image.ImageBuf, kernel Kernel2D) *image.ImageBuf {
	return morph(src, kernel, false)
}

func morph(src *image.ImageBuf, kernel Kernel2D, maximum bool) *image.ImageBuf {
	w, h := src.Bounds()
	dst := image.Blank(w, h)
	in := src.Pix()
	out := dst.Pix()
	cx := kernel.Width / 2
	cy := kernel.Height / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var ext image.Pixel
			if !maximum {
				ext = image.Pixel{1, 1, 1, 1}
			}
			for ky := 0; ky < kernel.Height; ky++ {
				sy := y - cy + ky
				if sy < 0 || sy >= h {
					continue
				}
				for kx := 0; kx < kernel.Width; kx++ {
					sx := x - cx + kx
					if sx < 0 || sx >= w || !kernel.Cells[ky*kernel.Width+kx] {
						continue
					}
					i := src.PixOffset(sx, sy)
					for c := 0; c < image.Channels; c++ {
						v := in[i+c]
						if maximum {
							ext[c] = max(ext[c], v)
						} else {
							ext[c] = min(ext[c], v)
						}
					}
				}
			}
			copy(out[dst.PixOffset(x, y):], ext[:])
		}
	}
	return dst
}
