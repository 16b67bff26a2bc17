package glfont

import (
	"errors"
	"fmt"
)

// Sentinel errors for glfont.
var (
	// ErrGlyphMissing is returned when the font has no glyph for a code point.
	ErrGlyphMissing = errors.New("glfont: glyph missing from font")

	// ErrNoGlyphs is returned when none of the requested code points exist
	// in the font.
	ErrNoGlyphs = errors.New("glfont: font has none of the requested glyphs")

	// ErrNoRoom is returned when a glyph does not fit into the atlas.
	ErrNoRoom = errors.New("glfont: glyph does not fit the atlas")

	// ErrAtlasTooSmall is returned when the glyph set does not fit the atlas
	// even at the smallest font size tried.
	ErrAtlasTooSmall = errors.New("glfont: atlas too small for the smallest font size")

	// ErrFinalPack is returned when the distance-field glyphs do not fit at
	// the size the search settled on.
	ErrFinalPack = errors.New("glfont: final packing failed")

	// ErrInvalidAtlasSize is returned for a non-positive atlas size.
	ErrInvalidAtlasSize = errors.New("glfont: atlas size must be positive")
)

// FontLoadError reports a font that could not be opened.
type FontLoadError struct {
	Path string
	Op   string // "read", "parse" or "charmap"
	Err  error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("glfont: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error {
	return e.Err
}

// PackError reports the glyph that stopped a packing pass.
type PackError struct {
	FontSize int
	Charcode rune
	Final    bool // the pass used the real distance-field glyphs
}

func (e *PackError) Error() string {
	pass := "trial"
	if e.Final {
		pass = "final"
	}
	return fmt.Sprintf("glfont: %s pack at %dpx: %q (%U) does not fit", pass, e.FontSize, e.Charcode, e.Charcode)
}

// Unwrap returns ErrNoRoom, plus ErrFinalPack for the final pass.
func (e *PackError) Unwrap() []error {
	if e.Final {
		return []error{ErrFinalPack, ErrNoRoom}
	}
	return []error{ErrNoRoom}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "glfont: invalid config." + e.Field + ": " + e.Reason
}
