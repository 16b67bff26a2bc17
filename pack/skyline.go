package pack

import "math"

// Skyline implements skyline bottom-left packing.
//
// The skyline is the upper outline of everything placed so far, stored as
// segments ordered by x that together span the full width. A new rectangle
// is tried at the left end of every segment; the position whose top ends
// lowest wins, ties going to the narrower segment.
type Skyline struct {
	width  int
	height int
	nodes  []segment

	usedArea int
}

// segment is a horizontal piece of the skyline at height y.
type segment struct {
	x, y  int
	width int
}

// NewSkyline creates an empty skyline packer.
func NewSkyline(width, height int) *Skyline {
	s := &Skyline{
		width:  width,
		height: height,
		nodes:  make([]segment, 0, 64),
	}
	s.Reset()
	return s
}

// Reset implements Packer.
func (s *Skyline) Reset() {
	s.nodes = append(s.nodes[:0], segment{x: 0, y: 0, width: s.width})
	s.usedArea = 0
}

// Occupancy implements Packer.
func (s *Skyline) Occupancy() float64 {
	if s.width <= 0 || s.height <= 0 {
		return 0
	}
	return float64(s.usedArea) / float64(s.width*s.height)
}

// Insert implements Packer.
func (s *Skyline) Insert(w, h int) (Rect, bool) {
	if w < 0 || h < 0 {
		return Rect{}, false
	}
	if w == 0 || h == 0 {
		return Rect{W: w, H: h}, true
	}

	best := -1
	bestTop, bestWidth := math.MaxInt, math.MaxInt
	var r Rect
	for i := range s.nodes {
		y, ok := s.fits(i, w, h)
		if !ok {
			continue
		}
		top := y + h
		if top < bestTop || (top == bestTop && s.nodes[i].width < bestWidth) {
			best = i
			bestTop = top
			bestWidth = s.nodes[i].width
			r = Rect{X: s.nodes[i].x, Y: y, W: w, H: h}
		}
	}
	if best < 0 {
		return Rect{}, false
	}

	s.addLevel(best, r)
	s.usedArea += w * h
	return r, true
}

// fits reports the lowest y at which a w x h rectangle can sit with its
// left edge at segment i.
func (s *Skyline) fits(i, w, h int) (int, bool) {
	x := s.nodes[i].x
	if x+w > s.width {
		return 0, false
	}
	y := s.nodes[i].y
	for left := w; left > 0; i++ {
		y = max(y, s.nodes[i].y)
		if y+h > s.height {
			return 0, false
		}
		left -= s.nodes[i].width
	}
	return y, true
}

// addLevel raises the skyline over r, which was placed at segment i.
func (s *Skyline) addLevel(i int, r Rect) {
	s.nodes = append(s.nodes, segment{})
	copy(s.nodes[i+1:], s.nodes[i:])
	s.nodes[i] = segment{x: r.X, y: r.Top(), width: r.W}

	// Trim or remove the segments now covered by r.
	for j := i + 1; j < len(s.nodes); {
		prev := s.nodes[j-1]
		end := prev.x + prev.width
		if s.nodes[j].x >= end {
			break
		}
		shrink := end - s.nodes[j].x
		s.nodes[j].x += shrink
		s.nodes[j].width -= shrink
		if s.nodes[j].width > 0 {
			break
		}
		s.nodes = append(s.nodes[:j], s.nodes[j+1:]...)
	}

	s.merge()
}

// merge joins neighbouring segments at the same height.
func (s *Skyline) merge() {
	for j := 0; j < len(s.nodes)-1; {
		if s.nodes[j].y == s.nodes[j+1].y {
			s.nodes[j].width += s.nodes[j+1].width
			s.nodes = append(s.nodes[:j+1], s.nodes[j+2:]...)
			continue
		}
		j++
	}
}
