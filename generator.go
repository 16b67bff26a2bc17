package glfont

import (
	"context"
	"fmt"

	"github.com/gogpu/glfont/face"
	"github.com/gogpu/glfont/internal/bitmap"
	"github.com/gogpu/glfont/pack"
)

// Result is a generated atlas.
type Result struct {
	// Name identifies the font in the record, usually the font file's base
	// name.
	Name string

	// FontSize is the pixel size the glyphs were packed at.
	FontSize int

	Metrics FontMetrics

	// Atlas is the square distance field texture, bottom-left origin.
	Atlas *bitmap.Bitmap[uint8]

	// Glyphs in charset order.
	Glyphs []*Glyph

	// Occupancy is the fraction of the atlas covered by glyph bitmaps.
	Occupancy float64
}

// Generate builds a distance field atlas of atlasSize x atlasSize pixels
// holding cfg.Charset at the largest font size that fits.
//
// The size search packs glyph bounds only. Once a size is chosen every glyph
// is rendered at cfg.SDFScale times that size, transformed and packed again.
//
// Generate is not safe for concurrent use with the same engine.
func Generate(ctx context.Context, e face.Engine, name string, atlasSize int, cfg Config) (*Result, error) {
	if atlasSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAtlasSize, atlasSize)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	charcodes := SelectCharcodes(e, cfg.Charset)
	if len(charcodes) == 0 {
		return nil, ErrNoGlyphs
	}

	p, err := pack.New(cfg.Packer, atlasSize, atlasSize)
	if err != nil {
		return nil, err
	}
	canvas := bitmap.New[uint8](atlasSize, atlasSize)

	maxSize := cfg.MaxSize
	if maxSize == 0 {
		maxSize = atlasSize
	}
	fontSize, err := autoSize(ctx, e, p, canvas, charcodes, cfg, maxSize)
	if err != nil {
		return nil, err
	}
	Logger().Info("chosen font size", "px", fontSize, "glyphs", len(charcodes))

	glyphs, err := loadGlyphs(ctx, e, charcodes, fontSize, cfg.SDFScale)
	if err != nil {
		return nil, err
	}
	if err := packGlyphs(p, canvas, glyphs, fontSize, true); err != nil {
		return nil, err
	}
	Logger().Info("packed atlas", "px", fontSize, "occupancy", p.Occupancy())

	metrics, err := readMetrics(e, fontSize)
	if err != nil {
		return nil, err
	}
	if err := applyKerning(ctx, e, glyphs, fontSize, cfg.KerningEpsilon); err != nil {
		return nil, err
	}

	return &Result{
		Name:      name,
		FontSize:  fontSize,
		Metrics:   metrics,
		Atlas:     canvas,
		Glyphs:    glyphs,
		Occupancy: p.Occupancy(),
	}, nil
}

// loadGlyphs builds the distance field glyphs of charcodes at fontSize.
func loadGlyphs(ctx context.Context, e face.Engine, charcodes []rune, fontSize, scale int) ([]*Glyph, error) {
	if err := e.SetPixelSize(fontSize * scale); err != nil {
		return nil, err
	}
	glyphs := make([]*Glyph, 0, len(charcodes))
	for _, r := range charcodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := loadGlyph(e, r, fontSize, scale)
		if err != nil {
			return nil, err
		}
		Logger().Debug("loaded glyph",
			"char", string(r),
			"width", g.Bitmap.Width,
			"height", g.Bitmap.Height)
		glyphs = append(glyphs, g)
	}
	return glyphs, nil
}
