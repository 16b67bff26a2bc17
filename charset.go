package glfont

import (
	"fmt"

	"golang.org/x/text/unicode/runenames"

	"github.com/gogpu/glfont/face"
)

// extraCharset follows printable ASCII in the default set.
var extraCharset = []rune{
	0x2026, // horizontal ellipsis
	0x20AC, // euro sign
	0x00A9, // copyright sign
	0x201C, // left double quotation mark
	0x201D, // right double quotation mark
	0x2018, // left single quotation mark
	0x2019, // right single quotation mark
}

// DefaultCharset returns printable ASCII (U+0020 to U+007E) followed by a
// few common typographic symbols.
func DefaultCharset() []rune {
	runes := make([]rune, 0, '~'-' '+1+len(extraCharset))
	for r := ' '; r <= '~'; r++ {
		runes = append(runes, r)
	}
	return append(runes, extraCharset...)
}

// SelectCharcodes returns the code points of candidates the engine has a
// glyph for, in order and without duplicates. Every dropped code point is
// logged as a warning.
func SelectCharcodes(e face.Engine, candidates []rune) []rune {
	seen := make(map[rune]struct{}, len(candidates))
	selected := make([]rune, 0, len(candidates))
	for _, r := range candidates {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}

		if e.GlyphIndex(r) == 0 {
			Logger().Warn("code point will not be rendered",
				"char", string(r),
				"code", fmt.Sprintf("%U", r),
				"name", runenames.Name(r),
				"err", ErrGlyphMissing)
			continue
		}
		selected = append(selected, r)
	}
	return selected
}
