package pack

// Shelf implements shelf-based rectangle packing.
//
// Rectangles are placed left to right in horizontal shelves. A shelf is as
// tall as the tallest rectangle placed on it so far; when no shelf has
// room, a new one is opened above the last. Only the topmost shelf can grow
// taller.
type Shelf struct {
	width   int
	height  int
	shelves []shelf

	usedArea int
}

// shelf is a horizontal strip of the atlas.
type shelf struct {
	y      int // bottom of the shelf
	height int // tallest rectangle so far
	x      int // next free column
}

// NewShelf creates an empty shelf packer.
func NewShelf(width, height int) *Shelf {
	return &Shelf{
		width:   width,
		height:  height,
		shelves: make([]shelf, 0, 16),
	}
}

// Insert implements Packer.
func (p *Shelf) Insert(w, h int) (Rect, bool) {
	if w < 0 || h < 0 {
		return Rect{}, false
	}
	if w == 0 || h == 0 {
		return Rect{W: w, H: h}, true
	}

	for i := range p.shelves {
		sh := &p.shelves[i]
		if sh.x+w > p.width {
			continue
		}
		if h > sh.height {
			// Only the topmost shelf has free space above it.
			if i != len(p.shelves)-1 || sh.y+h > p.height {
				continue
			}
			sh.height = h
		}
		r := Rect{X: sh.x, Y: sh.y, W: w, H: h}
		sh.x += w
		p.usedArea += w * h
		return r, true
	}

	y := 0
	if n := len(p.shelves); n > 0 {
		last := p.shelves[n-1]
		y = last.y + last.height
	}
	if w > p.width || y+h > p.height {
		return Rect{}, false
	}

	p.shelves = append(p.shelves, shelf{y: y, height: h, x: w})
	p.usedArea += w * h
	return Rect{X: 0, Y: y, W: w, H: h}, true
}

// Reset implements Packer.
func (p *Shelf) Reset() {
	p.shelves = p.shelves[:0]
	p.usedArea = 0
}

// Occupancy implements Packer.
func (p *Shelf) Occupancy() float64 {
	if p.width <= 0 || p.height <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.width*p.height)
}

// ShelfCount returns the number of shelves in use.
func (p *Shelf) ShelfCount() int {
	return len(p.shelves)
}
