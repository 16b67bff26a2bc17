package glfont

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v2"

	"github.com/gogpu/glfont/pack"
)

// Config holds atlas generation parameters.
type Config struct {
	// StartSize is the first font size, in pixels, the size search tries.
	// Default: 4
	StartSize int `yaml:"startSize"`

	// SizeStep is the increment between tried font sizes.
	// Default: 2
	SizeStep int `yaml:"sizeStep"`

	// MaxSize caps the size search. Zero means the atlas size.
	MaxSize int `yaml:"maxSize"`

	// SDFScale is the oversampling factor for the distance field: glyphs are
	// rendered at SDFScale times the font size and the field is resampled
	// down. 1 skips resampling and emits the fixed-scale 8-bit field.
	// Default: 16
	SDFScale int `yaml:"sdfScale"`

	// Charset lists the code points to put into the atlas, in packing order.
	// Code points the font lacks are dropped.
	// Default: DefaultCharset()
	Charset []rune `yaml:"-"`

	// CharacterRanges replaces Charset when loaded from YAML. Each entry is
	// an inclusive [first, last] pair, written as a single character or as
	// a "U+XXXX" / "0xXXXX" code point.
	CharacterRanges [][2]string `yaml:"characterRanges"`

	// KerningEpsilon is the smallest kerning, as a fraction of the font size,
	// that is recorded.
	// Default: 0.0001
	KerningEpsilon float64 `yaml:"kerningEpsilon"`

	// EmitKerningThreshold is the smallest kerning, as a fraction of the font
	// size, written to the JSON record.
	// Default: 0.001
	EmitKerningThreshold float64 `yaml:"emitKerningThreshold"`

	// Packer selects the packing heuristic.
	// Default: pack.KindSkyline
	Packer pack.Kind `yaml:"packer"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		StartSize:            4,
		SizeStep:             2,
		SDFScale:             16,
		Charset:              DefaultCharset(),
		KerningEpsilon:       0.0001,
		EmitKerningThreshold: 0.001,
		Packer:               pack.KindSkyline,
	}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.StartSize < 1 {
		return &ConfigError{Field: "StartSize", Reason: "must be at least 1"}
	}
	if c.SizeStep < 1 {
		return &ConfigError{Field: "SizeStep", Reason: "must be at least 1"}
	}
	if c.MaxSize < 0 {
		return &ConfigError{Field: "MaxSize", Reason: "must not be negative"}
	}
	if c.MaxSize != 0 && c.MaxSize < c.StartSize {
		return &ConfigError{Field: "MaxSize", Reason: "must not be below StartSize"}
	}
	if c.SDFScale < 1 || c.SDFScale > 64 {
		return &ConfigError{Field: "SDFScale", Reason: "must be in [1, 64]"}
	}
	if len(c.Charset) == 0 {
		return &ConfigError{Field: "Charset", Reason: "must not be empty"}
	}
	if c.KerningEpsilon < 0 {
		return &ConfigError{Field: "KerningEpsilon", Reason: "must not be negative"}
	}
	if c.EmitKerningThreshold < 0 {
		return &ConfigError{Field: "EmitKerningThreshold", Reason: "must not be negative"}
	}
	switch c.Packer {
	case pack.KindSkyline, pack.KindShelf:
	default:
		return &ConfigError{Field: "Packer", Reason: fmt.Sprintf("unknown packer %q", string(c.Packer))}
	}
	return nil
}

// ParseConfig reads YAML overrides on top of DefaultConfig.
// Keys absent from data keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("glfont: parse config: %w", err)
	}
	if len(cfg.CharacterRanges) > 0 {
		runes, err := ParseRanges(cfg.CharacterRanges)
		if err != nil {
			return Config{}, err
		}
		cfg.Charset = runes
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("glfont: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseRanges expands inclusive code point ranges into a duplicate-free
// list, in the order the ranges are given.
func ParseRanges(ranges [][2]string) ([]rune, error) {
	seen := make(map[rune]struct{})
	var runes []rune
	for _, rg := range ranges {
		first, err := parseCodePoint(rg[0])
		if err != nil {
			return nil, err
		}
		last, err := parseCodePoint(rg[1])
		if err != nil {
			return nil, err
		}
		if last < first {
			return nil, &ConfigError{
				Field:  "CharacterRanges",
				Reason: fmt.Sprintf("range %q..%q is reversed", rg[0], rg[1]),
			}
		}
		for r := first; r <= last; r++ {
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			runes = append(runes, r)
		}
	}
	return runes, nil
}

// parseCodePoint accepts a single character or a "U+XXXX" / "0xXXXX"
// hexadecimal code point.
func parseCodePoint(s string) (rune, error) {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if r != utf8.RuneError {
			return r, nil
		}
	}

	hex := s
	for _, prefix := range []string{"U+", "u+", "0x", "0X"} {
		if strings.HasPrefix(s, prefix) {
			hex = s[len(prefix):]
			break
		}
	}
	if hex != s {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err == nil && v <= utf8.MaxRune {
			return rune(v), nil
		}
	}
	return 0, &ConfigError{Field: "CharacterRanges", Reason: fmt.Sprintf("invalid code point %q", s)}
}
