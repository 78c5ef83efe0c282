package fontinfo

import (
	stdimage "image"
	"math"

	"github.com/gogpu/fontc/internal/image"
	"golang.org/x/image/draw"
)

// loadTexture reads a texture image and resamples it by scale.
func loadTexture(path string, scale float64) (*image.ImageBuf, error) {
	src, err := image.Load(path)
	if err != nil {
		return nil, err
	}
	if scale == 1 {
		return src, nil
	}
	w := max(int(math.Round(float64(src.Width())*scale)), 1)
	h := max(int(math.Round(float64(src.Height())*scale)), 1)
	dst := stdimage.NewNRGBA(stdimage.Rect(0, 0, w, h))
	nrgba := src.ToNRGBA()
	draw.CatmullRom.Scale(dst, dst.Bounds(), nrgba, nrgba.Bounds(), draw.Src, nil)
	return image.FromImage(dst), nil
}
