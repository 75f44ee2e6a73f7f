// Package config loads qplanarity settings from a TOML (or YAML) file.
//
// Every field has a default, so a missing file is not an error unless its
// path was given explicitly. Values decoded from a file overlay the defaults;
// keys the file omits keep their default value.
//
//	[generator]
//	nodes = 40
//	denseness = 0.3
//	sparseness = 0.6
//	seed = 7
//
//	[layout]
//	kind = "circle"
//	radius = 250.0
//
//	[tracker]
//	workers = 4
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/fsh/qplanarity/pkg/errors"
	"github.com/fsh/qplanarity/pkg/layout"
	"github.com/fsh/qplanarity/pkg/planar"
)

const (
	// EnvConfigPath names a config file explicitly.
	EnvConfigPath = "QPLANARITY_CONFIG"

	// DirName is the directory under the XDG config home.
	DirName = "qplanarity"

	// FileName is the config file looked up in DirName.
	FileName = "config.toml"
)

// Config holds every configurable setting.
type Config struct {
	Generator Generator `toml:"generator" yaml:"generator"`
	Layout    Layout    `toml:"layout" yaml:"layout"`
	Tracker   Tracker   `toml:"tracker" yaml:"tracker"`
}

// Generator mirrors [planar.Options].
type Generator struct {
	Nodes      int     `toml:"nodes" yaml:"nodes"`
	Outside    int     `toml:"outside" yaml:"outside"`
	Denseness  float64 `toml:"denseness" yaml:"denseness"`
	Sparseness float64 `toml:"sparseness" yaml:"sparseness"`
	MaxRetries int     `toml:"max_retries" yaml:"max_retries"`

	// Seed fixes the random source. Nil means a fresh seed per run.
	Seed *uint64 `toml:"seed,omitempty" yaml:"seed,omitempty"`
}

// Layout mirrors [layout.Options].
type Layout struct {
	Kind   string  `toml:"kind" yaml:"kind"` // "circle" or "scatter"
	Radius float64 `toml:"radius" yaml:"radius"`
	Offset int     `toml:"offset" yaml:"offset"`
}

// Tracker configures the crossing tracker.
type Tracker struct {
	// Workers parallelises the initial crossing scan. Values below 2 scan serially.
	Workers int `toml:"workers" yaml:"workers"`
}

// Default returns the built-in settings.
func Default() *Config {
	lo := layout.DefaultOptions()
	return &Config{
		Generator: Generator{
			Nodes:      planar.DefaultNodeLimit,
			Denseness:  planar.DefaultDenseness,
			Sparseness: planar.DefaultSparseness,
			MaxRetries: planar.DefaultMaxRetries,
		},
		Layout: Layout{Kind: string(lo.Kind), Radius: lo.Radius, Offset: lo.Offset},
	}
}

// GeneratorOptions converts the generator section. Seed is zero when unset;
// callers that want a random seed check Generator.Seed themselves.
func (c *Config) GeneratorOptions() planar.Options {
	opts := planar.Options{
		NodeLimit:    c.Generator.Nodes,
		OutsideLimit: c.Generator.Outside,
		Denseness:    c.Generator.Denseness,
		Sparseness:   c.Generator.Sparseness,
		MaxRetries:   c.Generator.MaxRetries,
	}
	if c.Generator.Seed != nil {
		opts.Seed = *c.Generator.Seed
	}
	return opts
}

// LayoutOptions converts the layout section. A scatter layout shares the
// generator seed.
func (c *Config) LayoutOptions() layout.Options {
	opts := layout.Options{
		Kind:   layout.Kind(c.Layout.Kind),
		Radius: c.Layout.Radius,
		Offset: c.Layout.Offset,
	}
	if c.Generator.Seed != nil {
		opts.Seed = *c.Generator.Seed
	}
	return opts
}

// Validate reports the first invalid setting as an INVALID_CONFIG error.
func (c *Config) Validate() error {
	if err := c.GeneratorOptions().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "generator")
	}
	if err := c.LayoutOptions().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout")
	}
	if c.Tracker.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tracker: workers must be non-negative, got %d", c.Tracker.Workers)
	}
	return nil
}

// Load reads the config file at path, or the first file found by [FindPath]
// when path is empty. It returns the effective config and the file it came
// from ("" when only defaults apply).
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = FindPath()
		if path == "" {
			return Default(), "", nil
		}
	} else if err := errors.ValidatePath(path); err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return cfg, path, nil
}

// Format selects the decoder used by [Parse].
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// FindPath returns the first existing config file in lookup order:
//  1. $QPLANARITY_CONFIG
//  2. $XDG_CONFIG_HOME/qplanarity/config.toml
//  3. ~/.config/qplanarity/config.toml
//
// It returns "" when none exists.
func FindPath() string {
	for _, p := range SearchPaths() {
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// SearchPaths lists the candidate config files in lookup order, existing or not.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, p)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, DirName, FileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", DirName, FileName))
	}
	return paths
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
