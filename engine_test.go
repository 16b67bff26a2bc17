package glfont

import (
	"errors"
	"image"
	"math"

	"github.com/gogpu/glfont/face"
)

// box is a fake glyph: a solid rectangle sized in em units.
type box struct {
	w, h    float64 // extent
	left    float64 // pen to left edge
	top     float64 // baseline to top edge
	advance float64
}

// fakeEngine renders boxes. It is deterministic and fast, so the pipeline
// can be tested without real outlines.
type fakeEngine struct {
	glyphs  map[rune]box
	order   []rune // index i+1 is order[i]
	kerning map[[2]rune]float64
	metrics face.SizeMetrics // in em

	// shrink makes GlyphFrame under-report the rendered frame by this many
	// pixels on each axis.
	shrink int

	px     int
	loaded int
}

var _ face.Engine = (*fakeEngine)(nil)

func newFakeEngine(glyphs map[rune]box) *fakeEngine {
	e := &fakeEngine{
		glyphs:  glyphs,
		kerning: make(map[[2]rune]float64),
		metrics: face.SizeMetrics{Ascender: 0.8, Descender: -0.2, Height: 1.2, MaxAdvance: 1},
	}
	for r := rune(0); r < 0x10000; r++ {
		if _, ok := glyphs[r]; ok {
			e.order = append(e.order, r)
		}
	}
	return e
}

func (e *fakeEngine) GlyphIndex(r rune) face.GlyphIndex {
	for i, o := range e.order {
		if o == r {
			return face.GlyphIndex(i + 1)
		}
	}
	return 0
}

func (e *fakeEngine) SetPixelSize(px int) error {
	if px <= 0 {
		return face.ErrInvalidSize
	}
	e.px = px
	return nil
}

func (e *fakeEngine) box(x face.GlyphIndex) (box, error) {
	if e.px == 0 {
		return box{}, face.ErrNoSize
	}
	if x == 0 || int(x) > len(e.order) {
		return box{}, errors.New("fake: no such glyph")
	}
	return e.glyphs[e.order[x-1]], nil
}

func (e *fakeEngine) frame(b box) image.Rectangle {
	px := float64(e.px)
	left := int(math.Floor(b.left * px))
	top := int(math.Ceil(b.top * px))
	w, h := int(b.w*px), int(b.h*px)
	return image.Rect(left, -top, left+w, -top+h)
}

func (e *fakeEngine) GlyphFrame(x face.GlyphIndex) (image.Rectangle, error) {
	b, err := e.box(x)
	if err != nil {
		return image.Rectangle{}, err
	}
	f := e.frame(b)
	if f.Empty() {
		return f, nil
	}
	f.Max = f.Max.Sub(image.Pt(e.shrink, e.shrink))
	return f, nil
}

func (e *fakeEngine) LoadGlyph(x face.GlyphIndex) (*face.Slot, error) {
	b, err := e.box(x)
	if err != nil {
		return nil, err
	}
	e.loaded++
	f := e.frame(b)
	px := float64(e.px)
	slot := &face.Slot{
		Width:      f.Dx(),
		Height:     f.Dy(),
		Pitch:      f.Dx() + 3,
		Left:       f.Min.X,
		Top:        -f.Min.Y,
		Advance:    b.advance * px,
		BBoxWidth:  b.w * px,
		BBoxHeight: b.h * px,
	}
	slot.Buffer = make([]uint8, slot.Pitch*slot.Height)
	for y := 0; y < slot.Height; y++ {
		for x := 0; x < slot.Width; x++ {
			slot.Buffer[y*slot.Pitch+x] = 255
		}
	}
	return slot, nil
}

func (e *fakeEngine) Metrics() (face.SizeMetrics, error) {
	if e.px == 0 {
		return face.SizeMetrics{}, face.ErrNoSize
	}
	px := float64(e.px)
	return face.SizeMetrics{
		Ascender:   e.metrics.Ascender * px,
		Descender:  e.metrics.Descender * px,
		Height:     e.metrics.Height * px,
		MaxAdvance: e.metrics.MaxAdvance * px,
	}, nil
}

func (e *fakeEngine) Kerning(prev, cur rune) (float64, error) {
	if e.px == 0 {
		return 0, face.ErrNoSize
	}
	return e.kerning[[2]rune{prev, cur}] * float64(e.px), nil
}

func (e *fakeEngine) Name() string { return "Fake" }

func (e *fakeEngine) Close() error { return nil }

// squares returns a fake engine with one em-sized square per rune and an
// empty space glyph.
func squares(runes ...rune) *fakeEngine {
	glyphs := map[rune]box{' ': {advance: 0.25}}
	for _, r := range runes {
		glyphs[r] = box{w: 1, h: 1, top: 0.8, advance: 1}
	}
	return newFakeEngine(glyphs)
}
