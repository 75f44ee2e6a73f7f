package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsh/qplanarity/pkg/errors"
	"github.com/fsh/qplanarity/pkg/planar"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Generator.Nodes != planar.DefaultNodeLimit {
		t.Errorf("Nodes = %d, want %d", cfg.Generator.Nodes, planar.DefaultNodeLimit)
	}
	if cfg.Generator.Seed != nil {
		t.Errorf("Seed = %v, want nil", *cfg.Generator.Seed)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		check  func(t *testing.T, c *Config)
	}{
		{
			name:   "empty toml keeps defaults",
			data:   "",
			format: FormatTOML,
			check: func(t *testing.T, c *Config) {
				if c.Generator.Denseness != planar.DefaultDenseness {
					t.Errorf("Denseness = %v", c.Generator.Denseness)
				}
			},
		},
		{
			name: "toml overlay",
			data: `
[generator]
nodes = 12
sparseness = 0.25
seed = 7

[tracker]
workers = 4
`,
			format: FormatTOML,
			check: func(t *testing.T, c *Config) {
				if c.Generator.Nodes != 12 || c.Generator.Sparseness != 0.25 {
					t.Errorf("generator = %+v", c.Generator)
				}
				if c.Generator.Denseness != planar.DefaultDenseness {
					t.Errorf("Denseness = %v, want default", c.Generator.Denseness)
				}
				if c.Generator.Seed == nil || *c.Generator.Seed != 7 {
					t.Errorf("Seed = %v, want 7", c.Generator.Seed)
				}
				if c.GeneratorOptions().Seed != 7 {
					t.Errorf("GeneratorOptions().Seed = %d", c.GeneratorOptions().Seed)
				}
				if c.Tracker.Workers != 4 {
					t.Errorf("Workers = %d", c.Tracker.Workers)
				}
			},
		},
		{
			name:   "yaml overlay",
			data:   "layout:\n  kind: scatter\n  radius: 90\n  offset: 3\n",
			format: FormatYAML,
			check: func(t *testing.T, c *Config) {
				if c.Layout.Radius != 90 || c.Layout.Offset != 3 || c.Layout.Kind != "scatter" {
					t.Errorf("layout = %+v", c.Layout)
				}
				if c.Generator.Nodes != planar.DefaultNodeLimit {
					t.Errorf("Nodes = %d, want default", c.Generator.Nodes)
				}
			},
		},
		{
			name:   "empty yaml keeps defaults",
			data:   "",
			format: FormatYAML,
			check: func(t *testing.T, c *Config) {
				if c.Layout.Radius != 200 {
					t.Errorf("Radius = %v", c.Layout.Radius)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"syntax", "[generator\nnodes = 3", FormatTOML},
		{"unknown key", "[generator]\nnodez = 3", FormatTOML},
		{"node limit", "[generator]\nnodes = 2", FormatTOML},
		{"denseness", "[generator]\ndenseness = 1.0", FormatTOML},
		{"radius", "[layout]\nradius = -1.0", FormatTOML},
		{"workers", "[tracker]\nworkers = -2", FormatTOML},
		{"layout kind", "[layout]\nkind = \"spiral\"", FormatTOML},
		{"yaml unknown key", "generator:\n  nodez: 3\n", FormatYAML},
		{"yaml sparseness", "generator:\n  sparseness: 2\n", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	t.Run("no file", func(t *testing.T) {
		cfg, path, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if path != "" {
			t.Errorf("path = %q, want empty", path)
		}
		if cfg.Generator.Nodes != planar.DefaultNodeLimit {
			t.Errorf("Nodes = %d", cfg.Generator.Nodes)
		}
	})

	t.Run("explicit missing", func(t *testing.T) {
		_, _, err := Load(filepath.Join(dir, "missing.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		p := filepath.Join(dir, DirName, FileName)
		writeFile(t, p, "[generator]\nnodes = 9\n")
		cfg, path, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if path != p {
			t.Errorf("path = %q, want %q", path, p)
		}
		if cfg.Generator.Nodes != 9 {
			t.Errorf("Nodes = %d, want 9", cfg.Generator.Nodes)
		}
	})

	t.Run("env wins", func(t *testing.T) {
		p := filepath.Join(dir, "env.yaml")
		writeFile(t, p, "generator:\n  nodes: 11\n")
		t.Setenv(EnvConfigPath, p)
		cfg, path, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if path != p || cfg.Generator.Nodes != 11 {
			t.Errorf("Load() = %d from %q", cfg.Generator.Nodes, path)
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		p := filepath.Join(dir, "bad.toml")
		writeFile(t, p, "[generator]\nnodes = 1\n")
		_, _, err := Load(p)
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
		}
	})
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	seed := uint64(99)
	cfg.Generator.Seed = &seed

	var buf bytes.Buffer
	if err := cfg.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"[generator]", "nodes = 30", "seed = 99", "[layout]", "[tracker]"} {
		if !strings.Contains(out, want) {
			t.Errorf("Write() output missing %q:\n%s", want, out)
		}
	}

	got, err := Parse(buf.Bytes(), FormatTOML)
	if err != nil {
		t.Fatalf("Parse(Write()) error = %v", err)
	}
	if got.Generator.Seed == nil || *got.Generator.Seed != seed {
		t.Errorf("Seed = %v, want %d", got.Generator.Seed, seed)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}
