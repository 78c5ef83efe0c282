package fontc

import "github.com/gogpu/fontc/internal/image"

// ApplyPostEffects runs effects in order on a finished glyph and lays the
// result over a transparent canvas of the background color, so that edge
// pixels blend toward bg rather than black.
func ApplyPostEffects(img *ImageBuf, effects []Effect, bg RGBA) (*ImageBuf, error) {
	for _, e := range effects {
		img = e.Apply(img)
		if img.IsEmpty() {
			return nil, &CompositingError{Layer: "posteffects", Stage: StagePost + " " + e.Name()}
		}
	}
	p := bg.Pixel()
	p[3] = 0
	w, h := img.Bounds()
	return image.Over(image.Filled(w, h, p), img), nil
}
