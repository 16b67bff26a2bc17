// Package pack places glyph rectangles into a fixed-size atlas.
//
// Two heuristics are provided. Skyline (the default) keeps the outline of
// the placed rectangles as a list of horizontal segments and puts every new
// rectangle where its top ends lowest. Shelf fills horizontal strips left to
// right and opens a new strip above when the current ones are full; it is
// simpler and does well on glyphs of similar height.
//
// Placements use a bottom-left origin with y growing upwards.
package pack

import "fmt"

// Rect is a placement in atlas pixels.
type Rect struct {
	X, Y int // bottom-left corner
	W, H int
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Top returns the y coordinate one past the top edge.
func (r Rect) Top() int { return r.Y + r.H }

// Overlaps reports whether r and o share any pixel.
func (r Rect) Overlaps(o Rect) bool {
	if r.W == 0 || r.H == 0 || o.W == 0 || o.H == 0 {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Top() && o.Y < r.Top()
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.W, r.H, r.X, r.Y)
}

// Packer assigns non-overlapping places inside a fixed area.
type Packer interface {
	// Insert places a w x h rectangle. It reports false when there is no
	// room left for it. Zero-area rectangles always succeed and take no room.
	Insert(w, h int) (Rect, bool)

	// Occupancy returns the fraction of the area covered so far, 0 to 1.
	Occupancy() float64

	// Reset discards all placements.
	Reset()
}

// Kind names a packing heuristic.
type Kind string

// Available heuristics.
const (
	KindSkyline Kind = "skyline"
	KindShelf   Kind = "shelf"
)

// New returns an empty packer of the given kind for a width x height area.
func New(kind Kind, width, height int) (Packer, error) {
	switch kind {
	case KindSkyline, "":
		return NewSkyline(width, height), nil
	case KindShelf:
		return NewShelf(width, height), nil
	default:
		return nil, fmt.Errorf("pack: unknown packer %q", string(kind))
	}
}
