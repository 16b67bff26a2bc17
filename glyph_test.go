package glfont

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestPadding(t *testing.T) {
	tests := []struct {
		fontSize, want int
	}{
		{1, 1},
		{4, 2},
		{8, 2},
		{9, 3},
		{15, 3},
		{16, 4},
		{100, 10},
	}
	for _, tt := range tests {
		if got := padding(tt.fontSize); got != tt.want {
			t.Errorf("padding(%d) = %d, want %d", tt.fontSize, got, tt.want)
		}
	}
}

func TestNewLayout(t *testing.T) {
	// 16px at scale 4: pad 4, frame 35x18 high-res pixels.
	l := newLayout(image.Rect(-2, -14, 33, 4), 16, 4)
	if l.pad != 4 || l.masterPad != 8 {
		t.Errorf("pad = %d, masterPad = %d, want 4, 8", l.pad, l.masterPad)
	}
	if l.width != 35/4+8 || l.height != 18/4+8 {
		t.Errorf("size = %dx%d, want %dx%d", l.width, l.height, 35/4+8, 18/4+8)
	}
}

func TestPlaceholderMatchesGlyph(t *testing.T) {
	e := newFakeEngine(map[rune]box{
		'A': {w: 0.7, h: 0.75, left: 0.05, top: 0.75, advance: 0.8},
		'g': {w: 0.45, h: 0.7, left: 0.1, top: 0.5, advance: 0.55},
		' ': {advance: 0.3},
	})
	for _, scale := range []int{1, 3, 4} {
		for _, fontSize := range []int{4, 10, 17} {
			if err := e.SetPixelSize(fontSize * scale); err != nil {
				t.Fatal(err)
			}
			for _, r := range []rune{'A', 'g', ' '} {
				p, err := placeholder(e, r, fontSize, scale)
				if err != nil {
					t.Fatalf("placeholder(%q) = %v", r, err)
				}
				g, err := loadGlyph(e, r, fontSize, scale)
				if err != nil {
					t.Fatalf("loadGlyph(%q) = %v", r, err)
				}
				if p.Bitmap.Width != g.Bitmap.Width || p.Bitmap.Height != g.Bitmap.Height {
					t.Errorf("%q at %dpx x%d: placeholder %dx%d, glyph %dx%d", r, fontSize, scale,
						p.Bitmap.Width, p.Bitmap.Height, g.Bitmap.Width, g.Bitmap.Height)
				}
			}
		}
	}
}

func TestLoadGlyphMetrics(t *testing.T) {
	e := newFakeEngine(map[rune]box{
		'A': {w: 0.5, h: 0.75, left: 0.125, top: 0.75, advance: 0.625},
	})
	const fontSize, scale = 16, 4
	if err := e.SetPixelSize(fontSize * scale); err != nil {
		t.Fatal(err)
	}
	g, err := loadGlyph(e, 'A', fontSize, scale)
	if err != nil {
		t.Fatal(err)
	}

	// 64px raster: frame 32x48 at (8, -48). pad = 4.
	const pad = 4.0
	tests := []struct {
		name      string
		got, want float64
	}{
		{"BBoxWidth", g.BBoxWidth, (32.0/scale + 2*pad) / fontSize},
		{"BBoxHeight", g.BBoxHeight, (48.0/scale + 2*pad) / fontSize},
		{"BearingX", g.BearingX, (8.0/scale - pad) / fontSize},
		{"BearingY", g.BearingY, (48.0/scale + pad) / fontSize},
		{"AdvanceX", g.AdvanceX, 0.625},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if g.Bitmap.Width != 16 || g.Bitmap.Height != 20 {
		t.Errorf("bitmap = %dx%d, want 16x20", g.Bitmap.Width, g.Bitmap.Height)
	}
	if g.Charcode != 'A' || g.Kernings != nil {
		t.Errorf("glyph = %q with kernings %v", g.Charcode, g.Kernings)
	}
}

func TestLoadGlyphField(t *testing.T) {
	e := newFakeEngine(map[rune]box{'I': {w: 0.5, h: 1, top: 1, advance: 0.6}})
	for _, scale := range []int{1, 4} {
		const fontSize = 16
		if err := e.SetPixelSize(fontSize * scale); err != nil {
			t.Fatal(err)
		}
		g, err := loadGlyph(e, 'I', fontSize, scale)
		if err != nil {
			t.Fatal(err)
		}
		b := g.Bitmap
		centre := b.At(b.Width/2, b.Height/2)
		corner := b.At(0, 0)
		if centre <= 127 {
			t.Errorf("scale %d: centre = %d, want inside (> 127)", scale, centre)
		}
		if corner >= 127 {
			t.Errorf("scale %d: corner = %d, want outside (< 127)", scale, corner)
		}
		// Left to right through the middle row rises to the stem and falls.
		y := b.Height / 2
		for x := 1; x <= b.Width/2; x++ {
			if b.At(x, y) < b.At(x-1, y) {
				t.Errorf("scale %d: row not rising at x=%d: %d < %d", scale, x, b.At(x, y), b.At(x-1, y))
			}
		}
	}
}

func TestLoadGlyphSpace(t *testing.T) {
	e := squares()
	const fontSize, scale = 9, 2
	if err := e.SetPixelSize(fontSize * scale); err != nil {
		t.Fatal(err)
	}
	g, err := loadGlyph(e, ' ', fontSize, scale)
	if err != nil {
		t.Fatal(err)
	}
	if g.Bitmap.Width != 6 || g.Bitmap.Height != 6 {
		t.Errorf("space bitmap = %dx%d, want 6x6", g.Bitmap.Width, g.Bitmap.Height)
	}
	for i, v := range g.Bitmap.Pix {
		if v != 0 {
			t.Fatalf("space sample %d = %d, want 0", i, v)
		}
	}
	if math.Abs(g.AdvanceX-0.25) > 1e-9 {
		t.Errorf("AdvanceX = %v, want 0.25", g.AdvanceX)
	}
}

func TestLoadGlyphMissing(t *testing.T) {
	e := squares('A')
	if err := e.SetPixelSize(8); err != nil {
		t.Fatal(err)
	}
	if _, err := loadGlyph(e, 'B', 8, 1); !errors.Is(err, ErrGlyphMissing) {
		t.Errorf("loadGlyph(missing) = %v, want ErrGlyphMissing", err)
	}
	if _, err := placeholder(e, 'B', 8, 1); !errors.Is(err, ErrGlyphMissing) {
		t.Errorf("placeholder(missing) = %v, want ErrGlyphMissing", err)
	}
}
