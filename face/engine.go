// Package face wraps a scalable font as a rasterization engine for the
// atlas generator.
//
// An Engine maps code points to glyphs, renders glyph coverage at a chosen
// pixel size and reports size-dependent metrics and kerning. The only
// implementation, SFNT, parses TrueType and OpenType fonts with
// golang.org/x/image/font/sfnt, rasterizes outlines with
// golang.org/x/image/vector and reads GPOS pair kerning through the
// go-text/typesetting HarfBuzz shaper.
//
// Engines are stateful (the current pixel size) and not safe for concurrent
// use.
package face

import (
	"errors"
	"image"
)

// Sentinel errors for engine operations.
var (
	// ErrNoCharmap is returned when the font cannot map Unicode code points.
	ErrNoCharmap = errors.New("face: font has no usable Unicode character map")

	// ErrInvalidSize is returned by SetPixelSize for non-positive sizes.
	ErrInvalidSize = errors.New("face: pixel size must be positive")

	// ErrNoSize is returned when glyphs or metrics are requested before
	// SetPixelSize.
	ErrNoSize = errors.New("face: pixel size not set")

	// ErrClosed is returned by operations on a closed engine.
	ErrClosed = errors.New("face: engine closed")
)

// GlyphIndex identifies a glyph within a font. Index 0 is the missing glyph.
type GlyphIndex uint16

// Slot is one rendered glyph at the current pixel size.
//
// Buffer holds Height rows of coverage (0..255), Pitch bytes apart, top row
// first. Left and Top place the bitmap relative to the pen position on the
// baseline: Left is the distance from the pen to the leftmost column and Top
// the distance from the baseline up to the top row.
type Slot struct {
	Width, Height int
	Pitch         int
	Buffer        []uint8

	Left, Top int

	// Advance is the horizontal pen advance in pixels.
	Advance float64

	// BBoxWidth and BBoxHeight are the exact outline extents in pixels.
	// The bitmap frame is these rounded outwards to whole pixels.
	BBoxWidth, BBoxHeight float64
}

// Frame returns the bitmap rectangle in baseline coordinates, y down.
func (s *Slot) Frame() image.Rectangle {
	return image.Rect(s.Left, -s.Top, s.Left+s.Width, -s.Top+s.Height)
}

// SizeMetrics are face-wide metrics at the current pixel size, in pixels.
type SizeMetrics struct {
	Ascender   float64 // baseline to top, positive
	Descender  float64 // baseline to bottom, negative below the baseline
	Height     float64 // recommended baseline-to-baseline distance
	MaxAdvance float64 // largest advance of any glyph
}

// Engine is a font rasterizer.
type Engine interface {
	// GlyphIndex returns the glyph for r, or 0 if the font has none.
	GlyphIndex(r rune) GlyphIndex

	// SetPixelSize selects the size, in pixels per em, for all following
	// calls.
	SetPixelSize(px int) error

	// GlyphFrame returns the raster frame LoadGlyph would produce for x,
	// without rendering. The rectangle is in baseline coordinates, y down.
	GlyphFrame(x GlyphIndex) (image.Rectangle, error)

	// LoadGlyph renders x.
	LoadGlyph(x GlyphIndex) (*Slot, error)

	// Metrics returns the face metrics.
	Metrics() (SizeMetrics, error)

	// Kerning returns the horizontal adjustment, in pixels, applied between
	// prev and cur when cur directly follows prev.
	Kerning(prev, cur rune) (float64, error)

	// Name returns the font family name, or "" if the font has none.
	Name() string

	Close() error
}
