// Package resample downsamples floating-point fields with a separable
// Mitchell-Netravali cubic filter.
package resample

import (
	"errors"
	"math"

	"github.com/gogpu/glfont/internal/bitmap"
)

// ErrEmpty is returned when the source or destination has zero area.
var ErrEmpty = errors.New("resample: zero-sized bitmap")

// B and C select the member of the Mitchell-Netravali family.
// B = C = 1/3 is the pair recommended by Mitchell and Netravali.
// B = 1, C = 0 gives the cubic B-spline (smoother); B = 0, C = 1/2 gives
// Catmull-Rom (sharper).
const (
	B = 1.0 / 3
	C = 1.0 / 3
)

// MitchellNetravali evaluates the reconstruction kernel at distance x.
// The kernel is zero for |x| >= 2.
func MitchellNetravali(x float64) float64 {
	x = math.Abs(x)
	switch {
	case x < 1:
		return ((12-9*B-6*C)*x*x*x +
			(-18+12*B+6*C)*x*x +
			(6 - 2*B)) / 6
	case x < 2:
		return ((-B-6*C)*x*x*x +
			(6*B+30*C)*x*x +
			(-12*B-48*C)*x +
			(8*B + 24*C)) / 6
	default:
		return 0
	}
}

// Interpolate filters four consecutive samples y0..y3 at fractional offset t
// in [0, 1) past y1. The result is clamped to [0, 1].
func Interpolate(t, y0, y1, y2, y3 float64) float64 {
	r := MitchellNetravali(1+t)*y0 +
		MitchellNetravali(t)*y1 +
		MitchellNetravali(1-t)*y2 +
		MitchellNetravali(2-t)*y3
	return clampFloat(r, 0, 1)
}

// Resize resamples src into dst, whose dimensions select the output size.
//
// The 4x4 source neighbourhood of every destination sample is gathered with
// indices clamped to the source edges. The filter runs along x over four rows
// and then along y over the four intermediate values. Sampling works on
// storage order; the logical origin of the bitmaps does not matter because
// both share it.
//
// When the extents match, src is copied exactly.
func Resize(dst, src *bitmap.Bitmap[float64]) error {
	if src.Empty() || dst.Empty() {
		return ErrEmpty
	}
	if src.Width == dst.Width && src.Height == dst.Height {
		copy(dst.Pix, src.Pix)
		return nil
	}

	xscale := float64(src.Width) / float64(dst.Width)
	yscale := float64(src.Height) / float64(dst.Height)

	var xs, ys [4]int
	var rows [4]float64
	for j := 0; j < dst.Height; j++ {
		fy := float64(j) * yscale
		sy := int(math.Floor(fy))
		ty := fy - float64(sy)
		for k := range ys {
			ys[k] = clamp(sy-1+k, 0, src.Height-1)
		}

		for i := 0; i < dst.Width; i++ {
			fx := float64(i) * xscale
			sx := int(math.Floor(fx))
			tx := fx - float64(sx)
			for k := range xs {
				xs[k] = clamp(sx-1+k, 0, src.Width-1)
			}

			for k, y := range ys {
				row := src.Pix[y*src.Width : (y+1)*src.Width]
				rows[k] = Interpolate(tx, row[xs[0]], row[xs[1]], row[xs[2]], row[xs[3]])
			}
			dst.Pix[j*dst.Width+i] = Interpolate(ty, rows[0], rows[1], rows[2], rows[3])
		}
	}
	return nil
}

// clamp restricts an integer value to [minVal, maxVal].
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// clampFloat restricts a float value to [minVal, maxVal].
func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
