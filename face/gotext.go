package face

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// pairShaper measures pair kerning by shaping two-rune runs with HarfBuzz.
//
// The kerning of (prev, cur) is the advance prev receives in front of cur
// minus the advance it has on its own, so only adjustments applied to the
// first glyph of the pair are seen. That is where GPOS pair positioning puts
// them for horizontal text.
type pairShaper struct {
	face *font.Face
	hb   shaping.HarfbuzzShaper
	lang language.Language
	gpos bool // the font has GPOS lookups

	// singles caches lone advances at size.
	size    fixed.Int26_6
	singles map[rune]fixed.Int26_6
}

func newPairShaper(data []byte) (*pairShaper, error) {
	// ParseTTF returns a *Face which embeds the parsed *Font.
	parsed, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("face: go-text parse: %w", err)
	}
	return &pairShaper{
		face:    font.NewFace(parsed.Font),
		lang:    language.NewLanguage("en"),
		gpos:    len(parsed.Font.GPOS.Lookups) > 0,
		singles: make(map[rune]fixed.Int26_6),
	}, nil
}

func (s *pairShaper) shape(runes []rune, size fixed.Int26_6) []shaping.Glyph {
	in := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      s.face,
		Size:      size,
		Script:    scriptOf(runes),
		Language:  s.lang,
	}
	return s.hb.Shape(in).Glyphs
}

// kerning returns the pair adjustment for prev followed by cur at size.
// Pairs that shape into anything but two glyphs (ligatures) have none.
func (s *pairShaper) kerning(prev, cur rune, size fixed.Int26_6) fixed.Int26_6 {
	if size != s.size {
		s.size = size
		clear(s.singles)
	}

	pair := s.shape([]rune{prev, cur}, size)
	if len(pair) != 2 {
		return 0
	}

	single, ok := s.singles[prev]
	if !ok {
		g := s.shape([]rune{prev}, size)
		if len(g) != 1 {
			return 0
		}
		single = g[0].Advance
		s.singles[prev] = single
	}
	return pair[0].Advance - single
}

// scriptOf returns the script of the first rune with a real script, or
// Latin when every rune is common or inherited.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		switch sc := language.LookupScript(r); sc {
		case language.Common, language.Inherited:
			continue
		default:
			return sc
		}
	}
	return language.Latin
}
