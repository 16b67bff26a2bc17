package glfont

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/glfont/face"
	"github.com/gogpu/glfont/internal/bitmap"
	"github.com/gogpu/glfont/pack"
)

// packGlyphs clears canvas and places every glyph on it in order, setting
// the texture rectangles. The first glyph that does not fit aborts the pass
// with a *PackError; canvas then holds a partial atlas.
func packGlyphs(p pack.Packer, canvas *bitmap.Bitmap[uint8], glyphs []*Glyph, fontSize int, final bool) error {
	canvas.Fill(0)
	p.Reset()

	w, h := float64(canvas.Width), float64(canvas.Height)
	for _, g := range glyphs {
		r, ok := p.Insert(g.Bitmap.Width, g.Bitmap.Height)
		if !ok {
			return &PackError{FontSize: fontSize, Charcode: g.Charcode, Final: final}
		}
		if err := bitmap.ReplacePart(canvas, g.Bitmap, r.X, r.Y); err != nil {
			return fmt.Errorf("glfont: place %U at %v: %w", g.Charcode, r, err)
		}
		g.S0 = float64(r.X) / w
		g.T0 = float64(r.Top()) / h
		g.S1 = float64(r.Right()) / w
		g.T1 = float64(r.Y) / h
	}
	return nil
}

// trialPack reports whether the glyph bounds at fontSize fit the atlas.
func trialPack(ctx context.Context, e face.Engine, p pack.Packer, canvas *bitmap.Bitmap[uint8],
	charcodes []rune, fontSize, scale int) error {
	if err := e.SetPixelSize(fontSize * scale); err != nil {
		return err
	}
	glyphs := make([]*Glyph, 0, len(charcodes))
	for _, r := range charcodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		g, err := placeholder(e, r, fontSize, scale)
		if err != nil {
			return err
		}
		glyphs = append(glyphs, g)
	}
	return packGlyphs(p, canvas, glyphs, fontSize, false)
}

// autoSize returns the largest font size, stepping up from cfg.StartSize,
// at which all charcodes fit. The search ends at the first size that does
// not fit or at maxSize, whichever comes first.
func autoSize(ctx context.Context, e face.Engine, p pack.Packer, canvas *bitmap.Bitmap[uint8],
	charcodes []rune, cfg Config, maxSize int) (int, error) {
	best := 0
	var last error
	for size := cfg.StartSize; size <= maxSize; size += cfg.SizeStep {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		Logger().Debug("trying font size", "px", size)

		err := trialPack(ctx, e, p, canvas, charcodes, size, cfg.SDFScale)
		if errors.Is(err, ErrNoRoom) {
			Logger().Debug("font size does not fit", "px", size, "err", err)
			last = err
			break
		}
		if err != nil {
			return 0, err
		}
		best = size
	}

	if best == 0 {
		if last != nil {
			return 0, fmt.Errorf("%w: %w", ErrAtlasTooSmall, last)
		}
		return 0, fmt.Errorf("%w: start size %d exceeds limit %d", ErrAtlasTooSmall, cfg.StartSize, maxSize)
	}
	return best, nil
}
