package glfont

import (
	"context"
	"fmt"
	"math"

	"github.com/gogpu/glfont/face"
)

// FontMetrics are face-wide metrics as fractions of the font size.
type FontMetrics struct {
	Ascender     float64
	Descender    float64 // negative below the baseline
	Height       float64 // line height
	MaxAdvance   float64
	SpaceAdvance float64
}

// readMetrics reads the face metrics at fontSize pixels.
func readMetrics(e face.Engine, fontSize int) (FontMetrics, error) {
	if err := e.SetPixelSize(fontSize); err != nil {
		return FontMetrics{}, err
	}
	m, err := e.Metrics()
	if err != nil {
		return FontMetrics{}, fmt.Errorf("glfont: metrics: %w", err)
	}
	space, err := spaceAdvance(e)
	if err != nil {
		return FontMetrics{}, err
	}

	fs := float64(fontSize)
	return FontMetrics{
		Ascender:     m.Ascender / fs,
		Descender:    m.Descender / fs,
		Height:       m.Height / fs,
		MaxAdvance:   m.MaxAdvance / fs,
		SpaceAdvance: space / fs,
	}, nil
}

// spaceAdvance returns the advance of the space glyph in pixels, or that of
// 'i' for fonts without one.
func spaceAdvance(e face.Engine) (float64, error) {
	x := e.GlyphIndex(' ')
	if x == 0 {
		Logger().Warn("font has no space glyph, using the advance of 'i'")
		x = e.GlyphIndex('i')
	}
	if x == 0 {
		Logger().Warn("font has no 'i' glyph, space advance is zero")
		return 0, nil
	}
	slot, err := e.LoadGlyph(x)
	if err != nil {
		return 0, fmt.Errorf("glfont: space advance: %w", err)
	}
	return slot.Advance, nil
}

// applyKerning records, for every glyph, the kerning after each glyph of the
// set, as a fraction of fontSize. Values not exceeding epsilon are dropped.
func applyKerning(ctx context.Context, e face.Engine, glyphs []*Glyph, fontSize int, epsilon float64) error {
	if err := e.SetPixelSize(fontSize); err != nil {
		return err
	}
	fs := float64(fontSize)
	pairs := 0
	for _, cur := range glyphs {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, prev := range glyphs {
			k, err := e.Kerning(prev.Charcode, cur.Charcode)
			if err != nil {
				return fmt.Errorf("glfont: kerning %U %U: %w", prev.Charcode, cur.Charcode, err)
			}
			k /= fs
			if math.Abs(k) <= epsilon {
				continue
			}
			if cur.Kernings == nil {
				cur.Kernings = make(map[rune]float64)
			}
			cur.Kernings[prev.Charcode] = k
			pairs++
		}
	}
	Logger().Debug("kerning pairs", "count", pairs)
	return nil
}
