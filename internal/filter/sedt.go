package filter

import "math"

// SignedDistance computes a signed euclidean distance field of a single
// channel coverage image (row-major, values in [0, 1], threshold 0.5).
//
// For each pixel the result is
//
//	clamp(((dIn - dOut) / radius) * 0.5 + 0.5, 0, 1)
//
// where dIn is the distance from an inside pixel to the nearest outside
// pixel and dOut the distance from an outside pixel to the nearest inside
// pixel. Distances use an 8-neighbour two-pass vector propagation.
func SignedDistance(coverage []float32, width, height int, radius float64) []float32 {
	out := make([]float32, width*height)
	if width == 0 || height == 0 {
		return out
	}
	if radius <= 0 {
		radius = 1
	}

	inside := newDistanceMap(coverage, width, height, false).compute()
	outside := newDistanceMap(coverage, width, height, true).compute()

	for i := range out {
		v := (inside[i]-outside[i])/radius*0.5 + 0.5
		out[i] = float32(math.Min(1, math.Max(0, v)))
	}
	return out
}

type vec2 struct{ x, y int32 }

func (v vec2) lenSq() int64 { return int64(v.x)*int64(v.x) + int64(v.y)*int64(v.y) }

// distanceMap propagates, for every pixel, the offset to the nearest seed.
type distanceMap struct {
	w, h int
	d    []vec2
}

// newDistanceMap seeds outside pixels (or inside pixels when invert is set)
// with a zero offset and everything else with an offset larger than any
// real distance.
func newDistanceMap(coverage []float32, w, h int, invert bool) *distanceMap {
	far := vec2{int32(w + 1), int32(h + 1)}
	m := &distanceMap{w: w, h: h, d: make([]vec2, w*h)}
	for i, v := range coverage[:w*h] {
		seed := v < 0.5
		if invert {
			seed = !seed
		}
		if seed {
			m.d[i] = vec2{}
		} else {
			m.d[i] = far
		}
	}
	return m
}

func (m *distanceMap) update(x, y, ox, oy int) {
	nx, ny := x+ox, y+oy
	if nx < 0 || nx >= m.w || ny < 0 || ny >= m.h {
		return
	}
	n := m.d[ny*m.w+nx]
	n.x += int32(ox)
	n.y += int32(oy)
	p := &m.d[y*m.w+x]
	if p.lenSq() > n.lenSq() {
		*p = n
	}
}

func (m *distanceMap) compute() []float64 {
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			m.update(x, y, -1, 0)
			m.update(x, y, 0, -1)
			m.update(x, y, -1, -1)
			m.update(x, y, 1, -1)
		}
		for x := m.w - 1; x >= 0; x-- {
			m.update(x, y, 1, 0)
		}
	}
	for y := m.h - 1; y >= 0; y-- {
		for x := m.w - 1; x >= 0; x-- {
			m.update(x, y, 1, 0)
			m.update(x, y, 0, 1)
			m.update(x, y, -1, 1)
			m.update(x, y, 1, 1)
		}
		for x := 0; x < m.w; x++ {
			m.update(x, y, -1, 0)
		}
	}

	dist := make([]float64, len(m.d))
	for i, v := range m.d {
		dist[i] = math.Sqrt(float64(v.lenSq()))
	}
	return dist
}
