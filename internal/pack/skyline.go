package pack

import "math"

// skyline packs rectangles on top of a piecewise horizontal "skyline" that
// tracks the highest occupied point along the bin width.
type skyline struct {
	width, height int
	minWaste      bool
	allowRotate   bool
	nodes         []skylineNode
	usedArea      int
}

type skylineNode struct {
	x, y, width int
}

func newSkyline(width, height int, minWaste, allowRotate bool) *skyline {
	return &skyline{
		width:       width,
		height:      height,
		minWaste:    minWaste,
		allowRotate: allowRotate,
		nodes:       []skylineNode{{x: 0, y: 0, width: width}},
	}
}

// Pack implements Packer.
func (s *skyline) Pack(w, h int) Rect {
	if w <= 0 || h <= 0 {
		return Rect{}
	}
	var (
		best  Rect
		index = -1
	)
	if s.minWaste {
		best, index = s.findMinWaste(w, h)
	} else {
		best, index = s.findBottomLeft(w, h)
	}
	if index < 0 {
		return Rect{}
	}
	s.addLevel(index, best)
	s.usedArea += w * h
	return best
}

// Occupancy implements Packer.
func (s *skyline) Occupancy() float64 {
	return float64(s.usedArea) / float64(s.width*s.height)
}

func (s *skyline) findBottomLeft(w, h int) (Rect, int) {
	bestHeight, bestWidth := math.MaxInt, math.MaxInt
	best := Rect{}
	index := -1
	try := func(i, rw, rh int) {
		y, ok := s.fits(i, rw, rh)
		if !ok {
			return
		}
		if y+rh < bestHeight || (y+rh == bestHeight && s.nodes[i].width < bestWidth) {
			bestHeight = y + rh
			bestWidth = s.nodes[i].width
			index = i
			best = Rect{X: s.nodes[i].x, Y: y, W: rw, H: rh}
		}
	}
	for i := range s.nodes {
		try(i, w, h)
		if s.allowRotate && w != h {
			try(i, h, w)
		}
	}
	return best, index
}

func (s *skyline) findMinWaste(w, h int) (Rect, int) {
	bestHeight, bestWaste := math.MaxInt, math.MaxInt
	best := Rect{}
	index := -1
	try := func(i, rw, rh int) {
		y, ok := s.fits(i, rw, rh)
		if !ok {
			return
		}
		waste := s.wastedArea(i, rw, y)
		if waste < bestWaste || (waste == bestWaste && y+rh < bestHeight) {
			bestHeight = y + rh
			bestWaste = waste
			index = i
			best = Rect{X: s.nodes[i].x, Y: y, W: rw, H: rh}
		}
	}
	for i := range s.nodes {
		try(i, w, h)
		if s.allowRotate && w != h {
			try(i, h, w)
		}
	}
	return best, index
}

// fits reports whether a w x h rectangle can rest on the skyline starting at
// node i, and the y it would rest at.
func (s *skyline) fits(i, w, h int) (int, bool) {
	x := s.nodes[i].x
	if x+w > s.width {
		return 0, false
	}
	left := w
	y := s.nodes[i].y
	for left > 0 {
		if i >= len(s.nodes) {
			return 0, false
		}
		y = max(y, s.nodes[i].y)
		if y+h > s.height {
			return 0, false
		}
		left -= s.nodes[i].width
		i++
	}
	return y, true
}

// wastedArea is the area trapped below a rectangle of width w resting at y
// from node i.
func (s *skyline) wastedArea(i, w, y int) int {
	waste := 0
	right := s.nodes[i].x + w
	for ; i < len(s.nodes) && s.nodes[i].x < right; i++ {
		n := s.nodes[i]
		l := n.x
		r := min(right, n.x+n.width)
		waste += (r - l) * (y - n.y)
	}
	return waste
}

func (s *skyline) addLevel(index int, r Rect) {
	node := skylineNode{x: r.X, y: r.Y + r.H, width: r.W}
	s.nodes = append(s.nodes, skylineNode{})
	copy(s.nodes[index+1:], s.nodes[index:])
	s.nodes[index] = node

	for i := index + 1; i < len(s.nodes); i++ {
		prev := s.nodes[i-1]
		if s.nodes[i].x >= prev.x+prev.width {
			break
		}
		shrink := prev.x + prev.width - s.nodes[i].x
		s.nodes[i].x += shrink
		s.nodes[i].width -= shrink
		if s.nodes[i].width > 0 {
			break
		}
		s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
		i--
	}
	s.merge()
}

func (s *skyline) merge() {
	for i := 0; i < len(s.nodes)-1; i++ {
		if s.nodes[i].y == s.nodes[i+1].y {
			s.nodes[i].width += s.nodes[i+1].width
			s.nodes = append(s.nodes[:i+1], s.nodes[i+2:]...)
			i--
		}
	}
}
