package image

// HalfSize downsamples src by two in each dimension with a 2x2 box filter.
// Odd trailing rows and columns are dropped, so a 1-pixel wide image
// produces an empty result.
func HalfSize(src *ImageBuf) *ImageBuf {
	dstW := src.width / 2
	dstH := src.height / 2
	dst := Blank(dstW, dstH)

	for y := 0; y < dstH; y++ {
		sy := y * 2
		for x := 0; x < dstW; x++ {
			sx := x * 2
			i00 := src.PixOffset(sx, sy)
			i10 := src.PixOffset(sx+1, sy)
			i01 := src.PixOffset(sx, sy+1)
			i11 := src.PixOffset(sx+1, sy+1)
			di := dst.PixOffset(x, y)
			for c := 0; c < Channels; c++ {
				dst.pix[di+c] = (src.pix[i00+c] + src.pix[i10+c] + src.pix[i01+c] + src.pix[i11+c]) / 4
			}
		}
	}
	return dst
}

// HalfSizeN applies HalfSize n times.
func HalfSizeN(src *ImageBuf, n int) *ImageBuf {
	out := src
	for range_i := 0; range_i < n; range_i++ {
		out = HalfSize(out)
	}
	return out
}
