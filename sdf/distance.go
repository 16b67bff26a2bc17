package sdf

import (
	"math"

	"github.com/gogpu/glfont/internal/bitmap"
)

// unsigned runs the transform on img and clamps negative artifacts to zero.
func unsigned(img *bitmap.Bitmap[float64]) *bitmap.Bitmap[float64] {
	gx, gy := Gradient(img)
	d := Transform(img, gx, gy)
	for i, v := range d.Pix {
		if v < 0 {
			d.Pix[i] = 0
		}
	}
	return d
}

// bipolar returns outside - inside for a coverage bitmap in [0, 1].
func bipolar(img *bitmap.Bitmap[float64]) []float64 {
	outside := unsigned(img)

	complement := bitmap.New[float64](img.Width, img.Height)
	for i, v := range img.Pix {
		complement.Pix[i] = 1 - v
	}
	inside := unsigned(complement)

	for i := range outside.Pix {
		outside.Pix[i] -= inside.Pix[i]
	}
	return outside.Pix
}

// Field returns the bipolar distance field of img remapped to [0, 1]:
// 0 deep inside, 0.5 on the outline, 1 outside.
//
// img must hold coverage in [0, 1] and should carry a transparent margin
// wide enough for the outside distances to develop. A zero-area bitmap, or
// one whose field has no negative extent to scale by, yields an
// all-background (1.0) field.
func Field(img *bitmap.Bitmap[float64]) *bitmap.Bitmap[float64] {
	out := bitmap.Filled(img.Width, img.Height, 1.0)
	if img.Empty() {
		return out
	}

	field := bipolar(img)
	vmin := math.Inf(1)
	for _, v := range field {
		vmin = min(vmin, v)
	}
	vmin = math.Abs(vmin)
	if vmin == 0 || math.IsInf(vmin, 0) || math.IsNaN(vmin) {
		return out
	}

	for i, v := range field {
		v = min(max(v, -vmin), vmin)
		out.Pix[i] = (v + vmin) / (2 * vmin)
	}
	return out
}

// Field8 returns the fixed-scale 8-bit distance field of img,
// 255 - clamp(128 + 16*(outside-inside), 0, 255).
func Field8(img *bitmap.Bitmap[float64]) *bitmap.Bitmap[uint8] {
	out := bitmap.New[uint8](img.Width, img.Height)
	if img.Empty() {
		return out
	}

	for i, v := range bipolar(img) {
		v = min(max(128+16*v, 0), 255)
		out.Pix[i] = 255 - uint8(v)
	}
	return out
}
