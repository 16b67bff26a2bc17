// Package bitmap provides the two-dimensional sample buffers shared by the
// distance-field, resampling and packing stages of glfont.
//
// Samples are stored row-major with the top row first, which is the layout
// font rasterizers hand out and image encoders expect. Logical coordinates
// passed to At and Set have their origin at the bottom-left corner, which is
// the convention of the atlas texture coordinates. The flip between the two
// happens in exactly one place, Index.
package bitmap

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Common errors for bitmap operations.
var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("bitmap: invalid dimensions")

	// ErrInvalidPitch is returned when a row pitch is smaller than the width.
	ErrInvalidPitch = errors.New("bitmap: pitch too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("bitmap: data buffer too small")

	// ErrDoesNotFit is returned by ReplacePart when the source rectangle
	// reaches outside the destination.
	ErrDoesNotFit = errors.New("bitmap: source does not fit destination")
)

// Sample is the set of sample types a Bitmap can hold.
// uint8 samples range over 0..255, float64 samples over 0..1.
type Sample interface {
	~uint8 | ~float64
}

// Bitmap is a Width x Height grid of samples.
//
// Invariant: len(Pix) == Width*Height.
type Bitmap[T Sample] struct {
	Width  int
	Height int

	// Pix holds the samples, top row first.
	Pix []T
}

// New returns a zero-filled bitmap. Negative dimensions are treated as zero.
func New[T Sample](width, height int) *Bitmap[T] {
	width = max(width, 0)
	height = max(height, 0)
	return &Bitmap[T]{
		Width:  width,
		Height: height,
		Pix:    make([]T, width*height),
	}
}

// Filled returns a bitmap with every sample set to v.
func Filled[T Sample](width, height int, v T) *Bitmap[T] {
	b := New[T](width, height)
	b.Fill(v)
	return b
}

// Empty reports whether the bitmap has zero area.
func (b *Bitmap[T]) Empty() bool {
	return b == nil || b.Width == 0 || b.Height == 0
}

// In reports whether (x, y) lies inside the bitmap.
func (b *Bitmap[T]) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// Index returns the position in Pix of the sample at logical (x, y),
// where (0, 0) is the bottom-left corner. It panics if (x, y) is outside.
func (b *Bitmap[T]) Index(x, y int) int {
	if !b.In(x, y) {
		panic(fmt.Sprintf("bitmap: (%d, %d) outside %dx%d", x, y, b.Width, b.Height))
	}
	rowsFromTop := (b.Height - 1) - y
	return rowsFromTop*b.Width + x
}

// At returns the sample at logical (x, y), bottom-left origin.
func (b *Bitmap[T]) At(x, y int) T {
	return b.Pix[b.Index(x, y)]
}

// Set stores v at logical (x, y), bottom-left origin.
func (b *Bitmap[T]) Set(x, y int, v T) {
	b.Pix[b.Index(x, y)] = v
}

// Fill sets every sample to v.
func (b *Bitmap[T]) Fill(v T) {
	for i := range b.Pix {
		b.Pix[i] = v
	}
}

// Bounds returns the bitmap extent as an image.Rectangle anchored at (0, 0).
func (b *Bitmap[T]) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// ReplacePart copies src into dst so that the bottom-left sample of src lands
// on logical (left, bottom) of dst:
//
//	3
//	2  X      X at left = 2, bottom = 2
//	1
//	0
//	 0123
//
// dst is left untouched and ErrDoesNotFit returned if src would reach outside.
func ReplacePart[T Sample](dst, src *Bitmap[T], left, bottom int) error {
	if left < 0 || bottom < 0 || left+src.Width > dst.Width || bottom+src.Height > dst.Height {
		return fmt.Errorf("%w: %dx%d at (%d, %d) in %dx%d",
			ErrDoesNotFit, src.Width, src.Height, left, bottom, dst.Width, dst.Height)
	}
	for row := 0; row < src.Height; row++ {
		s := src.Index(0, row)
		d := dst.Index(left, bottom+row)
		copy(dst.Pix[d:d+src.Width], src.Pix[s:s+src.Width])
	}
	return nil
}

// FromRows copies a top-down buffer with the given row pitch (bytes per row,
// at least width) into a new bitmap.
func FromRows(width, height, pitch int, buf []uint8) (*Bitmap[uint8], error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	if height > 0 && pitch < width {
		return nil, ErrInvalidPitch
	}
	if height > 0 && len(buf) < (height-1)*pitch+width {
		return nil, ErrDataTooSmall
	}
	b := New[uint8](width, height)
	for row := 0; row < height; row++ {
		copy(b.Pix[row*width:(row+1)*width], buf[row*pitch:row*pitch+width])
	}
	return b, nil
}

// Pad returns a copy of src surrounded by a zero border of the given width
// on every side.
func Pad[T Sample](src *Bitmap[T], margin int) *Bitmap[T] {
	margin = max(margin, 0)
	dst := New[T](src.Width+2*margin, src.Height+2*margin)
	// Cannot fail: dst is exactly large enough.
	_ = ReplacePart(dst, src, margin, margin)
	return dst
}

// Normalize converts 0..255 coverage into 0..1 floating-point samples.
func Normalize(src *Bitmap[uint8]) *Bitmap[float64] {
	dst := New[float64](src.Width, src.Height)
	for i, v := range src.Pix {
		dst.Pix[i] = float64(v) / 255
	}
	return dst
}

// Quantize converts 0..1 samples to 0..255, rounding to nearest and clamping
// out-of-range input.
func Quantize(src *Bitmap[float64]) *Bitmap[uint8] {
	dst := New[uint8](src.Width, src.Height)
	for i, v := range src.Pix {
		dst.Pix[i] = toByte(v)
	}
	return dst
}

func toByte(v float64) uint8 {
	v = math.Round(255 * v)
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Gray wraps an 8-bit bitmap as an *image.Gray sharing its samples.
// Row 0 of the image is the top row of the bitmap.
func Gray(b *Bitmap[uint8]) *image.Gray {
	return &image.Gray{
		Pix:    b.Pix,
		Stride: b.Width,
		Rect:   b.Bounds(),
	}
}
