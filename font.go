package glfont

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/glfont/face"
)

// OpenFont reads and parses a TrueType or OpenType font file.
// Failures are reported as *FontLoadError.
func OpenFont(path string) (*face.SFNT, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, &FontLoadError{Path: path, Op: "read", Err: err}
	}
	e, err := face.Parse(data)
	if errors.Is(err, face.ErrNoCharmap) {
		return nil, &FontLoadError{Path: path, Op: "charmap", Err: err}
	}
	if err != nil {
		return nil, &FontLoadError{Path: path, Op: "parse", Err: err}
	}
	if !e.HasGPOS() {
		Logger().Debug("font has no GPOS table, kerning from the kern table only", "font", path)
	}
	return e, nil
}

// FontName returns the base name of path without its extension.
func FontName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
