package glfont

import (
	"encoding/json"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/glfont/internal/bitmap"
)

// Record is the JSON description of an atlas.
type Record struct {
	Name         string  `json:"name"`
	Size         int     `json:"size"`
	Height       float64 `json:"height"`
	Ascender     float64 `json:"ascender"`
	Descender    float64 `json:"descender"`
	MaxAdvance   float64 `json:"max_advance"`
	SpaceAdvance float64 `json:"space_advance"`
	BitmapWidth  int     `json:"bitmap_width"`
	BitmapHeight int     `json:"bitmap_height"`

	// GlyphData is keyed by the UTF-8 encoded character.
	GlyphData map[string]GlyphRecord `json:"glyph_data"`
}

// GlyphRecord is the JSON description of one glyph.
type GlyphRecord struct {
	Charcode   string  `json:"charcode"`
	BBoxWidth  float64 `json:"bbox_width"`
	BBoxHeight float64 `json:"bbox_height"`
	BearingX   float64 `json:"bearing_x"`
	BearingY   float64 `json:"bearing_y"`
	AdvanceX   float64 `json:"advance_x"`
	S0         float64 `json:"s0"`
	T0         float64 `json:"t0"`
	S1         float64 `json:"s1"`
	T1         float64 `json:"t1"`

	// Kernings is keyed by the UTF-8 encoded preceding character.
	Kernings map[string]float64 `json:"kernings"`
}

// NewRecord describes r. Kerning values whose magnitude does not exceed
// threshold are left out.
func NewRecord(r *Result, threshold float64) Record {
	rec := Record{
		Name:         r.Name,
		Size:         r.FontSize,
		Height:       r.Metrics.Height,
		Ascender:     r.Metrics.Ascender,
		Descender:    r.Metrics.Descender,
		MaxAdvance:   r.Metrics.MaxAdvance,
		SpaceAdvance: r.Metrics.SpaceAdvance,
		BitmapWidth:  r.Atlas.Width,
		BitmapHeight: r.Atlas.Height,
		GlyphData:    make(map[string]GlyphRecord, len(r.Glyphs)),
	}
	for _, g := range r.Glyphs {
		kernings := make(map[string]float64)
		for prev, k := range g.Kernings {
			if math.Abs(k) > threshold {
				kernings[string(prev)] = k
			}
		}
		rec.GlyphData[string(g.Charcode)] = GlyphRecord{
			Charcode:   string(g.Charcode),
			BBoxWidth:  g.BBoxWidth,
			BBoxHeight: g.BBoxHeight,
			BearingX:   g.BearingX,
			BearingY:   g.BearingY,
			AdvanceX:   g.AdvanceX,
			S0:         g.S0,
			T0:         g.T0,
			S1:         g.S1,
			T1:         g.T1,
			Kernings:   kernings,
		}
	}
	return rec
}

// WriteJSON writes rec as indented JSON to path.
func WriteJSON(path string, rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("glfont: encode json: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil { //nolint:gosec // output is meant to be readable
		return fmt.Errorf("glfont: write json: %w", err)
	}
	return nil
}

// WritePNG writes atlas to path as an 8-bit grayscale PNG, top row first.
func WritePNG(path string, atlas *bitmap.Bitmap[uint8]) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("glfont: create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("glfont: close file: %w", cerr)
		}
	}()

	if err := png.Encode(f, bitmap.Gray(atlas)); err != nil {
		return fmt.Errorf("glfont: encode png: %w", err)
	}
	return nil
}
