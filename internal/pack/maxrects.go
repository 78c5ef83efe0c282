package pack

import "math"

// maxRects keeps the list of maximal free rectangles of the bin and places
// each new rectangle into the free rectangle chosen by its heuristic.
type maxRects struct {
	width, height int
	heuristic     Algorithm
	allowRotate   bool
	free          []Rect
	used          []Rect
	usedArea      int
}

func newMaxRects(width, height int, heuristic Algorithm, allowRotate bool) *maxRects {
	return &maxRects{
		width:       width,
		height:      height,
		heuristic:   heuristic,
		allowRotate: allowRotate,
		free:        []Rect{{X: 0, Y: 0, W: width, H: height}},
	}
}

// Pack implements Packer.
func (m *maxRects) Pack(w, h int) Rect {
	if w <= 0 || h <= 0 {
		return Rect{}
	}
	node, ok := m.find(w, h)
	if !ok {
		return Rect{}
	}
	m.place(node)
	return node
}

// Occupancy implements Packer.
func (m *maxRects) Occupancy() float64 {
	return float64(m.usedArea) / float64(m.width*m.height)
}

// find returns the best placement. Scores are minimized; the contact point
// heuristic negates its score so larger contact wins.
func (m *maxRects) find(w, h int) (Rect, bool) {
	best1, best2 := math.MaxInt, math.MaxInt
	var best Rect
	found := false

	consider := func(f Rect, rw, rh int) {
		if rw > f.W || rh > f.H {
			return
		}
		cand := Rect{X: f.X, Y: f.Y, W: rw, H: rh}
		s1, s2 := m.score(f, cand)
		if s1 < best1 || (s1 == best1 && s2 < best2) {
			best1, best2 = s1, s2
			best = cand
			found = true
		}
	}

	for _, f := range m.free {
		consider(f, w, h)
		if m.allowRotate && w != h {
			consider(f, h, w)
		}
	}
	return best, found
}

func (m *maxRects) score(free, r Rect) (int, int) {
	dw := abs(free.W - r.W)
	dh := abs(free.H - r.H)
	switch m.heuristic {
	case MaxRectsBestLongSideFit:
		return max(dw, dh), min(dw, dh)
	case MaxRectsBestAreaFit:
		return free.W*free.H - r.W*r.H, min(dw, dh)
	case MaxRectsBottomLeft:
		return r.Y + r.H, r.X
	case MaxRectsContactPoint:
		return -m.contactScore(r), 0
	default:
		return min(dw, dh), max(dw, dh)
	}
}

func (m *maxRects) contactScore(r Rect) int {
	score := 0
	if r.X == 0 || r.X+r.W == m.width {
		score += r.H
	}
	if r.Y == 0 || r.Y+r.H == m.height {
		score += r.W
	}
	for _, u := range m.used {
		if u.X == r.X+r.W || u.X+u.W == r.X {
			score += commonInterval(u.Y, u.Y+u.H, r.Y, r.Y+r.H)
		}
		if u.Y == r.Y+r.H || u.Y+u.H == r.Y {
			score += commonInterval(u.X, u.X+u.W, r.X, r.X+r.W)
		}
	}
	return score
}

func (m *maxRects) place(node Rect) {
	var split []Rect
	kept := m.free[:0]
	for _, f := range m.free {
		if !f.Overlaps(node) {
			kept = append(kept, f)
			continue
		}
		split = append(split, splitFree(f, node)...)
	}
	m.free = append(kept, split...)
	m.prune()
	m.used = append(m.used, node)
	m.usedArea += node.W * node.H
}

// splitFree returns the parts of free not covered by used. The parts may
// overlap each other; prune removes the redundant ones.
func splitFree(free, used Rect) []Rect {
	var out []Rect
	if used.X < free.X+free.W && used.X+used.W > free.X {
		if used.Y > free.Y && used.Y < free.Y+free.H {
			out = append(out, Rect{X: free.X, Y: free.Y, W: free.W, H: used.Y - free.Y})
		}
		if used.Y+used.H < free.Y+free.H {
			top := used.Y + used.H
			out = append(out, Rect{X: free.X, Y: top, W: free.W, H: free.Y + free.H - top})
		}
	}
	if used.Y < free.Y+free.H && used.Y+used.H > free.Y {
		if used.X > free.X && used.X < free.X+free.W {
			out = append(out, Rect{X: free.X, Y: free.Y, W: used.X - free.X, H: free.H})
		}
		if used.X+used.W < free.X+free.W {
			right := used.X + used.W
			out = append(out, Rect{X: right, Y: free.Y, W: free.X + free.W - right, H: free.H})
		}
	}
	return out
}

// prune drops free rectangles contained in another free rectangle.
func (m *maxRects) prune() {
	for i := 0; i < len(m.free); i++ {
		for j := i + 1; j < len(m.free); j++ {
			if m.free[j].Contains(m.free[i]) {
				m.free = append(m.free[:i], m.free[i+1:]...)
				i--
				break
			}
			if m.free[i].Contains(m.free[j]) {
				m.free = append(m.free[:j], m.free[j+1:]...)
				j--
			}
		}
	}
}

func commonInterval(a0, a1, b0, b1 int) int {
	if a1 < b0 || b1 < a0 {
		return 0
	}
	return min(a1, b1) - max(a0, b0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
