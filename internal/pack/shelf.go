package pack

// ShelfAllocator implements shelf-based rectangle packing.
//
// Rectangles are placed left to right on horizontal shelves. A shelf is as
// tall as the tallest rectangle placed on it; when no shelf has room, a new
// one starts below the last. Input sorted by height packs best.
type ShelfAllocator struct {
	width    int
	height   int
	shelves  []shelf
	usedArea int
}

// shelf is a horizontal strip of the bin.
type shelf struct {
	y      int // top of the shelf
	height int // tallest item so far
	x      int // next free x
}

// NewShelfAllocator creates an allocator for a width x height bin.
func NewShelfAllocator(width, height int) *ShelfAllocator {
	return &ShelfAllocator{
		width:   width,
		height:  height,
		shelves: make([]shelf, 0, 16),
	}
}

// Pack implements Packer.
func (a *ShelfAllocator) Pack(w, h int) Rect {
	x, y, ok := a.Allocate(w, h)
	if !ok {
		return Rect{}
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// Allocate finds space for a w x h rectangle.
// Returns its position and true, or -1, -1, false when the bin is full.
func (a *ShelfAllocator) Allocate(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 || w > a.width {
		return -1, -1, false
	}

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+w > a.width {
			continue
		}
		if h > s.height {
			// only the last shelf can grow, and only into free space below
			if i != len(a.shelves)-1 || s.y+h > a.height {
				continue
			}
			s.height = h
		}
		x, y = s.x, s.y
		s.x += w
		a.usedArea += w * h
		return x, y, true
	}

	newY := 0
	if n := len(a.shelves); n > 0 {
		newY = a.shelves[n-1].y + a.shelves[n-1].height
	}
	if newY+h > a.height {
		return -1, -1, false
	}
	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: w})
	a.usedArea += w * h
	return 0, newY, true
}

// Occupancy implements Packer.
func (a *ShelfAllocator) Occupancy() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}

// ShelfCount returns the number of shelves in use.
func (a *ShelfAllocator) ShelfCount() int {
	return len(a.shelves)
}

// Reset clears all allocations.
func (a *ShelfAllocator) Reset() {
	a.shelves = a.shelves[:0]
	a.usedArea = 0
}
