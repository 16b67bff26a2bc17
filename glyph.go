package glfont

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/glfont/face"
	"github.com/gogpu/glfont/internal/bitmap"
	"github.com/gogpu/glfont/internal/resample"
	"github.com/gogpu/glfont/sdf"
)

// Glyph is one atlas entry.
//
// Lengths are fractions of the font size. Bitmap is the packable distance
// field image; the texture rectangle is set when the glyph is packed.
type Glyph struct {
	Charcode rune

	BBoxWidth, BBoxHeight float64
	BearingX              float64 // pen position to the left edge of Bitmap
	BearingY              float64 // baseline to the top edge of Bitmap
	AdvanceX              float64

	Bitmap *bitmap.Bitmap[uint8]

	// Kernings maps the preceding code point to the adjustment applied
	// before this glyph. Pairs without kerning are absent.
	Kernings map[rune]float64

	// S0, T0 is the top-left and S1, T1 the bottom-right texture
	// coordinate, with t growing upwards from the bottom of the atlas.
	S0, T0, S1, T1 float64
}

// padding returns the empty margin kept around a glyph at fontSize.
func padding(fontSize int) int {
	return int(math.Sqrt(float64(fontSize)))
}

// layout derives the packed size of a glyph from its raster frame at
// fontSize*scale pixels.
type layout struct {
	pad       int // margin around the packed bitmap
	masterPad int // margin around the resampled field before cropping
	width     int
	height    int
}

func newLayout(frame image.Rectangle, fontSize, scale int) layout {
	pad := padding(fontSize)
	return layout{
		pad:       pad,
		masterPad: 2 * pad,
		width:     frame.Dx()/scale + 2*pad,
		height:    frame.Dy()/scale + 2*pad,
	}
}

// placeholder returns a blank glyph with the packed size the real glyph
// will have. The engine must be set to fontSize*scale pixels.
func placeholder(e face.Engine, r rune, fontSize, scale int) (*Glyph, error) {
	x := e.GlyphIndex(r)
	if x == 0 {
		return nil, fmt.Errorf("%w: %U", ErrGlyphMissing, r)
	}
	frame, err := e.GlyphFrame(x)
	if err != nil {
		return nil, fmt.Errorf("glfont: frame of %U: %w", r, err)
	}
	l := newLayout(frame, fontSize, scale)
	return &Glyph{
		Charcode: r,
		Bitmap:   bitmap.New[uint8](l.width, l.height),
	}, nil
}

// loadGlyph renders r and builds its distance field and metrics. The engine
// must be set to fontSize*scale pixels.
//
// For scale > 1 the coverage is padded by masterPad*scale, transformed,
// resampled down by scale and cropped to the packed size. For scale 1 the
// coverage is padded by pad and the fixed-scale 8-bit field used directly.
func loadGlyph(e face.Engine, r rune, fontSize, scale int) (*Glyph, error) {
	x := e.GlyphIndex(r)
	if x == 0 {
		return nil, fmt.Errorf("%w: %U", ErrGlyphMissing, r)
	}
	slot, err := e.LoadGlyph(x)
	if err != nil {
		return nil, fmt.Errorf("glfont: load %U: %w", r, err)
	}
	coverage, err := bitmap.FromRows(slot.Width, slot.Height, slot.Pitch, slot.Buffer)
	if err != nil {
		return nil, fmt.Errorf("glfont: coverage of %U: %w", r, err)
	}

	l := newLayout(slot.Frame(), fontSize, scale)
	var field *bitmap.Bitmap[uint8]
	if scale == 1 {
		field = sdf.Field8(bitmap.Normalize(bitmap.Pad(coverage, l.pad)))
	} else {
		field, err = downsampledField(coverage, l, scale)
		if err != nil {
			return nil, fmt.Errorf("glfont: distance field of %U: %w", r, err)
		}
	}

	s, fs := float64(scale), float64(fontSize)
	pad := float64(l.pad)
	return &Glyph{
		Charcode:   r,
		BBoxWidth:  (slot.BBoxWidth/s + 2*pad) / fs,
		BBoxHeight: (slot.BBoxHeight/s + 2*pad) / fs,
		BearingX:   (float64(slot.Left)/s - pad) / fs,
		BearingY:   (float64(slot.Top)/s + pad) / fs,
		AdvanceX:   slot.Advance / s / fs,
		Bitmap:     field,
	}, nil
}

// downsampledField computes the distance field of a high-resolution
// coverage bitmap and reduces it to the packed size of l.
func downsampledField(coverage *bitmap.Bitmap[uint8], l layout, scale int) (*bitmap.Bitmap[uint8], error) {
	hires := sdf.Field(bitmap.Normalize(bitmap.Pad(coverage, l.masterPad*scale)))

	lores := bitmap.New[float64](
		coverage.Width/scale+2*l.masterPad,
		coverage.Height/scale+2*l.masterPad,
	)
	if err := resample.Resize(lores, hires); err != nil {
		return nil, err
	}

	// Crop the extra margin and invert so the inside of the glyph is bright.
	crop := l.masterPad - l.pad
	out := bitmap.New[float64](l.width, l.height)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			out.Set(x, y, 1-lores.At(x+crop, y+crop))
		}
	}
	return bitmap.Quantize(out), nil
}
