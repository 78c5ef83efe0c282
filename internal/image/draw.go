package image

// Over composites top onto bottom and returns the result:
//
//	out.rgb = bottom.rgb + (top.rgb - bottom.rgb) * top.a
//	out.a   = max(bottom.a, top.a)
//
// Both images are anchored at the origin. When sizes differ the result
// covers both and missing pixels count as transparent black.
func Over(bottom, top *ImageBuf) *ImageBuf {
	w := max(bottom.width, top.width)
	h := max(bottom.height, top.height)
	out := Blank(w, h)
	out.Paste(bottom, 0, 0)
	out.DrawOver(top, 0, 0)
	return out
}

// Paste copies src into b with its top-left corner at (x, y), replacing the
// destination pixels. Parts of src outside b are dropped.
func (b *ImageBuf) Paste(src *ImageBuf, x, y int) {
	x0 := max(x, 0)
	x1 := min(x+src.width, b.width)
	if x0 >= x1 {
		return
	}
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= b.height {
			continue
		}
		copy(b.pix[b.PixOffset(x0, dy):b.PixOffset(x1, dy)], src.pix[src.PixOffset(x0-x, sy):])
	}
}

// DrawOver composites src onto b in place with its top-left corner at (x, y),
// using the same rule as Over. Parts of src outside b are dropped.
func (b *ImageBuf) DrawOver(src *ImageBuf, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= b.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= b.width {
				continue
			}
			si := src.PixOffset(sx, sy)
			di := b.PixOffset(dx, dy)
			ta := src.pix[si+3]
			b.pix[di+0] += (src.pix[si+0] - b.pix[di+0]) * ta
			b.pix[di+1] += (src.pix[si+1] - b.pix[di+1]) * ta
			b.pix[di+2] += (src.pix[si+2] - b.pix[di+2]) * ta
			b.pix[di+3] = max(b.pix[di+3], ta)
		}
	}
}
