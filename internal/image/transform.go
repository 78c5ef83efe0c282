package image

// Pad returns a copy of b grown by the given number of transparent pixels on
// each side. Negative amounts are treated as zero.
func (b *ImageBuf) Pad(left, top, right, bottom int) *ImageBuf {
	left, top, right, bottom = max(left, 0), max(top, 0), max(right, 0), max(bottom, 0)
	out := Blank(b.width+left+right, b.height+top+bottom)
	rowLen := b.width * Channels
	for y := 0; y < b.height; y++ {
		src := b.pix[y*rowLen : (y+1)*rowLen]
		copy(out.pix[out.PixOffset(left, y+top):], src)
	}
	return out
}

// Crop returns the w x h region starting at (x, y). Pixels outside b are
// transparent.
func (b *ImageBuf) Crop(x, y, w, h int) *ImageBuf {
	out := Blank(w, h)
	for yy := 0; yy < out.height; yy++ {
		sy := y + yy
		if sy < 0 || sy >= b.height {
			continue
		}
		x0 := max(x, 0)
		x1 := min(x+out.width, b.width)
		if x0 >= x1 {
			continue
		}
		copy(out.pix[out.PixOffset(x0-x, yy):], b.pix[b.PixOffset(x0, sy):b.PixOffset(x1, sy)])
	}
	return out
}

// Rotate90 returns b rotated 90 degrees clockwise. The source pixel (x, y)
// lands at (height-1-y, x).
func (b *ImageBuf) Rotate90() *ImageBuf {
	out := Blank(b.height, b.width)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			si := b.PixOffset(x, y)
			copy(out.pix[out.PixOffset(b.height-1-y, x):], b.pix[si:si+Channels])
		}
	}
	return out
}

// Roll shifts the image by (dx, dy) with wrap-around, so pixels pushed off
// one edge reappear on the opposite edge.
func (b *ImageBuf) Roll(dx, dy int) *ImageBuf {
	out := Blank(b.width, b.height)
	if b.IsEmpty() {
		return out
	}
	for y := 0; y < b.height; y++ {
		ty := mod(y+dy, b.height)
		for x := 0; x < b.width; x++ {
			tx := mod(x+dx, b.width)
			si := b.PixOffset(x, y)
			copy(out.pix[out.PixOffset(tx, ty):], b.pix[si:si+Channels])
		}
	}
	return out
}

// Tile returns a width x height image filled by repeating b from the origin.
func (b *ImageBuf) Tile(width, height int) *ImageBuf {
	out := Blank(width, height)
	if b.IsEmpty() {
		return out
	}
	for y := 0; y < out.height; y++ {
		sy := y % b.height
		for x := 0; x < out.width; x++ {
			si := b.PixOffset(x%b.width, sy)
			copy(out.pix[out.PixOffset(x, y):], b.pix[si:si+Channels])
		}
	}
	return out
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
