package glfont

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/glfont/pack"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.StartSize != 4 || cfg.SizeStep != 2 || cfg.SDFScale != 16 {
		t.Errorf("DefaultConfig() search = %d/%d/%d, want 4/2/16", cfg.StartSize, cfg.SizeStep, cfg.SDFScale)
	}
	if cfg.Packer != pack.KindSkyline {
		t.Errorf("DefaultConfig().Packer = %q, want %q", cfg.Packer, pack.KindSkyline)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"start size", func(c *Config) { c.StartSize = 0 }, "StartSize"},
		{"size step", func(c *Config) { c.SizeStep = 0 }, "SizeStep"},
		{"negative max", func(c *Config) { c.MaxSize = -1 }, "MaxSize"},
		{"max below start", func(c *Config) { c.MaxSize = 2 }, "MaxSize"},
		{"scale zero", func(c *Config) { c.SDFScale = 0 }, "SDFScale"},
		{"scale too large", func(c *Config) { c.SDFScale = 65 }, "SDFScale"},
		{"empty charset", func(c *Config) { c.Charset = nil }, "Charset"},
		{"kerning epsilon", func(c *Config) { c.KerningEpsilon = -1 }, "KerningEpsilon"},
		{"emit threshold", func(c *Config) { c.EmitKerningThreshold = -1 }, "EmitKerningThreshold"},
		{"packer", func(c *Config) { c.Packer = "maxrects" }, "Packer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("ConfigError.Field = %q, want %q", cerr.Field, tt.field)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
sdfScale: 8
maxSize: 64
packer: shelf
characterRanges:
  - ["A", "C"]
  - ["U+0061", "0x0062"]
  - ["B", "B"]
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig() = %v", err)
	}

	want := DefaultConfig()
	want.SDFScale = 8
	want.MaxSize = 64
	want.Packer = pack.KindShelf
	want.CharacterRanges = [][2]string{{"A", "C"}, {"U+0061", "0x0062"}, {"B", "B"}}
	want.Charset = []rune{'A', 'B', 'C', 'a', 'b'}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("ParseConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "fontSize: 12\n"},
		{"invalid value", "sdfScale: 0\n"},
		{"reversed range", "characterRanges: [[\"z\", \"a\"]]\n"},
		{"bad code point", "characterRanges: [[\"U+XYZ\", \"a\"]]\n"},
		{"malformed", "sdfScale: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.data)); err == nil {
				t.Error("ParseConfig() succeeded, want error")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glfont.yml")
	if err := os.WriteFile(path, []byte("startSize: 8\nsizeStep: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	if cfg.StartSize != 8 || cfg.SizeStep != 4 {
		t.Errorf("LoadConfig() search = %d/%d, want 8/4", cfg.StartSize, cfg.SizeStep)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("LoadConfig(missing) succeeded, want error")
	}
}

func TestParseCodePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"A", 'A', false},
		{"€", '€', false},
		{"U+20AC", '€', false},
		{"u+41", 'A', false},
		{"0x7E", '~', false},
		{"0X7e", '~', false},
		{"AB", 0, true},
		{"", 0, true},
		{"U+110000", 0, true},
		{"0x", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCodePoint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCodePoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseCodePoint(%q) = %U, want %U", tt.in, got, tt.want)
			}
		})
	}
}
