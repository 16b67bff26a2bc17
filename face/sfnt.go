package face

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// SFNT is an Engine over a TrueType or OpenType font.
type SFNT struct {
	font *sfnt.Font
	buf  sfnt.Buffer

	ppem fixed.Int26_6
	px   int

	rast vector.Rasterizer

	// maxAdvance caches the largest advance per pixel size.
	maxAdvance map[int]float64

	// shaper provides GPOS kerning; nil if go-text could not load the font.
	shaper *pairShaper
}

var _ Engine = (*SFNT)(nil)

// Parse creates an engine from font data. The data must not be modified
// while the engine is in use.
func Parse(data []byte) (*SFNT, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("face: failed to parse font: %w", err)
	}

	e := &SFNT{
		font:       f,
		maxAdvance: make(map[int]float64),
	}
	if _, err := f.GlyphIndex(&e.buf, ' '); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoCharmap, err)
	}

	// Fonts go-text cannot read still work; they only lose GPOS kerning.
	if s, err := newPairShaper(data); err == nil {
		e.shaper = s
	}
	return e, nil
}

// HasGPOS reports whether the font carries GPOS lookups that the shaping
// fallback of Kerning can apply.
func (e *SFNT) HasGPOS() bool {
	return e.shaper != nil && e.shaper.gpos
}

// Name implements Engine.
func (e *SFNT) Name() string {
	if e.font == nil {
		return ""
	}
	if name, err := e.font.Name(&e.buf, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

// NumGlyphs returns the number of glyphs in the font.
func (e *SFNT) NumGlyphs() int {
	if e.font == nil {
		return 0
	}
	return e.font.NumGlyphs()
}

// GlyphIndex implements Engine.
func (e *SFNT) GlyphIndex(r rune) GlyphIndex {
	if e.font == nil {
		return 0
	}
	x, err := e.font.GlyphIndex(&e.buf, r)
	if err != nil {
		return 0
	}
	return GlyphIndex(x)
}

// SetPixelSize implements Engine.
func (e *SFNT) SetPixelSize(px int) error {
	if px <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, px)
	}
	e.px = px
	e.ppem = fixed.I(px)
	return nil
}

func (e *SFNT) ready() error {
	if e.font == nil {
		return ErrClosed
	}
	if e.ppem == 0 {
		return ErrNoSize
	}
	return nil
}

// segments loads the outline of x. The result is valid until the next call
// that uses e.buf.
func (e *SFNT) segments(x GlyphIndex) (sfnt.Segments, error) {
	segs, err := e.font.LoadGlyph(&e.buf, sfnt.GlyphIndex(x), e.ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("face: load glyph %d: %w", x, err)
	}
	return segs, nil
}

// frame rounds the outline bounds outwards to whole pixels.
func frame(segs sfnt.Segments) image.Rectangle {
	if len(segs) == 0 {
		return image.Rectangle{}
	}
	b := segs.Bounds()
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
}

// GlyphFrame implements Engine.
func (e *SFNT) GlyphFrame(x GlyphIndex) (image.Rectangle, error) {
	if err := e.ready(); err != nil {
		return image.Rectangle{}, err
	}
	segs, err := e.segments(x)
	if err != nil {
		return image.Rectangle{}, err
	}
	return frame(segs), nil
}

// LoadGlyph implements Engine.
func (e *SFNT) LoadGlyph(x GlyphIndex) (*Slot, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	// The advance must be read before LoadGlyph: the segments live in e.buf.
	advance, err := e.font.GlyphAdvance(&e.buf, sfnt.GlyphIndex(x), e.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("face: glyph %d advance: %w", x, err)
	}
	segs, err := e.segments(x)
	if err != nil {
		return nil, err
	}

	dr := frame(segs)
	slot := &Slot{
		Width:   dr.Dx(),
		Height:  dr.Dy(),
		Pitch:   dr.Dx(),
		Left:    dr.Min.X,
		Top:     -dr.Min.Y,
		Advance: fixedToFloat(advance),
	}
	if len(segs) > 0 {
		b := segs.Bounds()
		slot.BBoxWidth = fixedToFloat(b.Max.X - b.Min.X)
		slot.BBoxHeight = fixedToFloat(b.Max.Y - b.Min.Y)
	}
	if dr.Empty() {
		return slot, nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	biasX := -fixed.Int26_6(dr.Min.X << 6)
	biasY := -fixed.Int26_6(dr.Min.Y << 6)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X+biasX) / 64, float32(p.Y+biasY) / 64
	}

	e.rast.Reset(dr.Dx(), dr.Dy())
	e.rast.DrawOp = draw.Src
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			e.rast.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			e.rast.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			e.rast.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			x3, y3 := pt(seg.Args[2])
			e.rast.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	e.rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	slot.Buffer = mask.Pix
	slot.Pitch = mask.Stride
	return slot, nil
}

// Metrics implements Engine.
func (e *SFNT) Metrics() (SizeMetrics, error) {
	if err := e.ready(); err != nil {
		return SizeMetrics{}, err
	}
	m, err := e.font.Metrics(&e.buf, e.ppem, font.HintingNone)
	if err != nil {
		return SizeMetrics{}, fmt.Errorf("face: metrics: %w", err)
	}
	maxAdvance, err := e.largestAdvance()
	if err != nil {
		return SizeMetrics{}, err
	}
	return SizeMetrics{
		Ascender:   fixedToFloat(m.Ascent),
		Descender:  -fixedToFloat(m.Descent),
		Height:     fixedToFloat(m.Height),
		MaxAdvance: maxAdvance,
	}, nil
}

// largestAdvance scans every glyph; sfnt does not expose the hhea maximum.
func (e *SFNT) largestAdvance() (float64, error) {
	if v, ok := e.maxAdvance[e.px]; ok {
		return v, nil
	}
	var largest fixed.Int26_6
	for i := 0; i < e.font.NumGlyphs(); i++ {
		adv, err := e.font.GlyphAdvance(&e.buf, sfnt.GlyphIndex(i), e.ppem, font.HintingNone)
		if err != nil {
			return 0, fmt.Errorf("face: glyph %d advance: %w", i, err)
		}
		largest = max(largest, adv)
	}
	v := fixedToFloat(largest)
	e.maxAdvance[e.px] = v
	return v, nil
}

// Kerning implements Engine.
//
// The legacy kern table is consulted first. Pairs it does not adjust are
// shaped with HarfBuzz, which applies GPOS pair positioning.
func (e *SFNT) Kerning(prev, cur rune) (float64, error) {
	if err := e.ready(); err != nil {
		return 0, err
	}
	x0, x1 := e.GlyphIndex(prev), e.GlyphIndex(cur)
	if x0 == 0 || x1 == 0 {
		return 0, nil
	}

	k, err := e.font.Kern(&e.buf, sfnt.GlyphIndex(x0), sfnt.GlyphIndex(x1), e.ppem, font.HintingNone)
	if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
		return 0, fmt.Errorf("face: kern %q %q: %w", prev, cur, err)
	}
	if k != 0 || e.shaper == nil {
		return fixedToFloat(k), nil
	}
	return fixedToFloat(e.shaper.kerning(prev, cur, e.ppem)), nil
}

// Close implements Engine.
func (e *SFNT) Close() error {
	e.font = nil
	e.shaper = nil
	e.maxAdvance = nil
	return nil
}

// fixedToFloat converts fixed.Int26_6 to float64.
func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
