package sdf

import (
	"math"

	"github.com/gogpu/glfont/internal/bitmap"
)

const (
	// farAway initializes background pixels before propagation.
	farAway = 1e6

	// epsilon is the improvement a candidate distance needs to replace the
	// current one. Smaller improvements do not count as a change, which
	// bounds the number of sweeps.
	epsilon = 1e-3

	sqrt2 = 1.4142136
)

// Gradient estimates the normalized coverage gradient of img.
//
// Only edge pixels (coverage strictly between 0 and 1) that are not on the
// bitmap border get a gradient; every other pixel is zero. Gradients follow
// storage order: +x to the right, +y towards later rows.
func Gradient(img *bitmap.Bitmap[float64]) (gx, gy *bitmap.Bitmap[float64]) {
	w, h := img.Width, img.Height
	gx = bitmap.New[float64](w, h)
	gy = bitmap.New[float64](w, h)
	p := img.Pix

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			k := y*w + x
			if p[k] <= 0 || p[k] >= 1 {
				continue
			}
			dx := -p[k-w-1] - sqrt2*p[k-1] - p[k+w-1] + p[k-w+1] + sqrt2*p[k+1] + p[k+w+1]
			dy := -p[k-w-1] - sqrt2*p[k-w] - p[k-w+1] + p[k+w-1] + sqrt2*p[k+w] + p[k+w+1]
			if l := dx*dx + dy*dy; l > 0 {
				l = math.Sqrt(l)
				dx /= l
				dy /= l
			}
			gx.Pix[k] = dx
			gy.Pix[k] = dy
		}
	}
	return gx, gy
}

// edgeDistance approximates the distance from the centre of a pixel with
// coverage a to the edge crossing it, given the edge normal (gx, gy).
func edgeDistance(gx, gy, a float64) float64 {
	if gx == 0 || gy == 0 {
		// Axis-aligned or unknown normal: linear approximation.
		return 0.5 - a
	}

	l := math.Sqrt(gx*gx + gy*gy)
	gx = math.Abs(gx / l)
	gy = math.Abs(gy / l)
	if gx < gy {
		gx, gy = gy, gx
	}

	a1 := 0.5 * gy / gx
	switch {
	case a < a1:
		return 0.5*(gx+gy) - math.Sqrt(2*gx*gy*a)
	case a < 1-a1:
		return (0.5 - a) * gx
	default:
		return -0.5*(gx+gy) + math.Sqrt(2*gx*gy*(1-a))
	}
}

// offset is a neighbour position relative to the pixel being relaxed.
type offset struct{ dx, dy int }

// Neighbour sets of the four sweeps. "Up" is the previous storage row.
var (
	// Rows top to bottom, left to right: left, up-left, up, up-right.
	sweepDown = []offset{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	// Same row again, right to left: right.
	sweepDownBack = []offset{{1, 0}}
	// Rows bottom to top, right to left: right, down-right, down, down-left.
	sweepUp = []offset{{1, 0}, {1, 1}, {0, 1}, {-1, 1}}
	// Same row again, left to right: left.
	sweepUpBack = []offset{{-1, 0}}
)

// edt holds the working state of one transform.
type edt struct {
	w, h   int
	img    []float64
	gx, gy []float64

	// distx, disty hold the offset from each pixel to its closest edge pixel.
	distx, disty []int32
	dist         []float64

	changed bool
}

// Transform computes the anti-aliased Euclidean distance from every pixel of
// img to the nearest foreground. Pixels with coverage 1 get 0; partially
// covered pixels get their signed sub-pixel edge distance, which may be
// slightly negative. gx and gy are the gradients returned by Gradient.
//
// The sweeps repeat until a full pass changes no distance.
func Transform(img, gx, gy *bitmap.Bitmap[float64]) *bitmap.Bitmap[float64] {
	out := bitmap.New[float64](img.Width, img.Height)
	if img.Empty() {
		return out
	}

	n := len(img.Pix)
	e := &edt{
		w:     img.Width,
		h:     img.Height,
		img:   img.Pix,
		gx:    gx.Pix,
		gy:    gy.Pix,
		distx: make([]int32, n),
		disty: make([]int32, n),
		dist:  out.Pix,
	}

	for i, a := range e.img {
		switch {
		case a <= 0:
			e.dist[i] = farAway
		case a < 1:
			e.dist[i] = edgeDistance(e.gx[i], e.gy[i], a)
		default:
			e.dist[i] = 0
		}
	}

	for {
		e.changed = false
		for y := 0; y < e.h; y++ {
			for x := 0; x < e.w; x++ {
				e.relax(x, y, sweepDown)
			}
			for x := e.w - 1; x >= 0; x-- {
				e.relax(x, y, sweepDownBack)
			}
		}
		for y := e.h - 1; y >= 0; y-- {
			for x := e.w - 1; x >= 0; x-- {
				e.relax(x, y, sweepUp)
			}
			for x := 0; x < e.w; x++ {
				e.relax(x, y, sweepUpBack)
			}
		}
		if !e.changed {
			return out
		}
	}
}

// relax tries to shorten the distance of (x, y) through each neighbour's
// closest edge pixel.
func (e *edt) relax(x, y int, neighbours []offset) {
	i := y*e.w + x
	if e.dist[i] <= 0 {
		return
	}
	for _, n := range neighbours {
		nx, ny := x+n.dx, y+n.dy
		if nx < 0 || ny < 0 || nx >= e.w || ny >= e.h {
			continue
		}
		c := ny*e.w + nx
		cdx, cdy := e.distx[c], e.disty[c]
		ndx, ndy := cdx-int32(n.dx), cdy-int32(n.dy)

		d := e.distance(c, cdx, cdy, ndx, ndy)
		if d < e.dist[i]-epsilon {
			e.distx[i] = ndx
			e.disty[i] = ndy
			e.dist[i] = d
			e.changed = true
		}
	}
}

// distance returns the distance through the edge pixel closest to c, which
// lies at offset (xc, yc) from c, for a pixel at offset (xi, yi) from it.
func (e *edt) distance(c int, xc, yc, xi, yi int32) float64 {
	closest := c - int(xc) - int(yc)*e.w
	a := min(max(e.img[closest], 0), 1)
	if a == 0 {
		return farAway
	}

	dx, dy := float64(xi), float64(yi)
	di := math.Sqrt(dx*dx + dy*dy)
	if di == 0 {
		return edgeDistance(e.gx[closest], e.gy[closest], a)
	}
	return di + edgeDistance(dx, dy, a)
}
