package glfont

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestReadMetrics(t *testing.T) {
	e := squares('A')
	got, err := readMetrics(e, 20)
	if err != nil {
		t.Fatalf("readMetrics() = %v", err)
	}
	want := FontMetrics{
		Ascender:     0.8,
		Descender:    -0.2,
		Height:       1.2,
		MaxAdvance:   1,
		SpaceAdvance: 0.25,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("readMetrics() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadMetricsSpaceFallback(t *testing.T) {
	buf := captureLogs(t)
	e := newFakeEngine(map[rune]box{'i': {w: 0.1, h: 0.7, top: 0.7, advance: 0.3}})

	got, err := readMetrics(e, 10)
	if err != nil {
		t.Fatalf("readMetrics() = %v", err)
	}
	if math.Abs(got.SpaceAdvance-0.3) > 1e-9 {
		t.Errorf("SpaceAdvance = %v, want 0.3", got.SpaceAdvance)
	}
	if !strings.Contains(buf.String(), "no space glyph") {
		t.Errorf("missing space warning, got:\n%s", buf.String())
	}
}

func TestReadMetricsNoSpaceNoI(t *testing.T) {
	captureLogs(t)
	got, err := readMetrics(newFakeEngine(map[rune]box{'x': {}}), 10)
	if err != nil {
		t.Fatalf("readMetrics() = %v", err)
	}
	if got.SpaceAdvance != 0 {
		t.Errorf("SpaceAdvance = %v, want 0", got.SpaceAdvance)
	}
}

func TestApplyKerning(t *testing.T) {
	e := squares('A', 'V', 'T')
	e.kerning[[2]rune{'A', 'V'}] = -0.08
	e.kerning[[2]rune{'V', 'A'}] = -0.06
	e.kerning[[2]rune{'A', 'T'}] = 0.0002
	e.kerning[[2]rune{'T', 'A'}] = 0.00005 // 0.0005px at 10px, below epsilon once normalized
	e.kerning[[2]rune{'T', 'V'}] = -0.00009

	const epsilon = 0.0001
	glyphs := []*Glyph{{Charcode: 'A'}, {Charcode: 'V'}, {Charcode: 'T'}}
	if err := applyKerning(context.Background(), e, glyphs, 10, epsilon); err != nil {
		t.Fatalf("applyKerning() = %v", err)
	}

	want := []map[rune]float64{
		{'V': -0.06},
		{'A': -0.08},
		{'A': 0.0002},
	}
	for i, g := range glyphs {
		if diff := cmp.Diff(want[i], g.Kernings, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("%q kernings mismatch (-want +got):\n%s", g.Charcode, diff)
		}
		for prev, k := range g.Kernings {
			if math.Abs(k) <= epsilon {
				t.Errorf("%q after %q: recorded %v, not above epsilon", g.Charcode, prev, k)
			}
		}
	}
}
