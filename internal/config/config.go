// Package config handles configuration loading and shared option structures.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Format      string `yaml:"format,omitempty" json:"format,omitempty"`
	ByteOrder   string `yaml:"byte_order,omitempty" json:"byte_order,omitempty"` // ndr or xdr
	Render      Render `yaml:"render" json:"render"`
	Box         Box    `yaml:"box" json:"box"`
	Indent      int    `yaml:"indent,omitempty" json:"indent,omitempty"`
	SRID        int    `yaml:"srid,omitempty" json:"srid,omitempty"`
	Concurrency int    `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
}

// Box holds defaults for generated boxes.
type Box struct {
	CCW bool `yaml:"ccw" json:"ccw"`
}

// Render holds preview image settings.
type Render struct {
	Stroke      string  `yaml:"stroke,omitempty" json:"stroke,omitempty"`
	Fill        string  `yaml:"fill,omitempty" json:"fill,omitempty"`
	Width       int     `yaml:"width,omitempty" json:"width,omitempty"`
	Height      int     `yaml:"height,omitempty" json:"height,omitempty"`
	Padding     int     `yaml:"padding,omitempty" json:"padding,omitempty"`
	StrokeWidth float64 `yaml:"stroke_width,omitempty" json:"stroke_width,omitempty"`
	PointRadius float64 `yaml:"point_radius,omitempty" json:"point_radius,omitempty"`
	Quality     float32 `yaml:"quality,omitempty" json:"quality,omitempty"`
	Lossless    bool    `yaml:"lossless,omitempty" json:"lossless,omitempty"`
	Minify      bool    `yaml:"minify,omitempty" json:"minify,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format:      "geojson",
		ByteOrder:   "ndr",
		Concurrency: 4,
		Box:         Box{CCW: true},
		Render: Render{
			Width:       512,
			Height:      512,
			Padding:     16,
			Stroke:      "#1f4e79",
			Fill:        "#9dc3e680",
			StrokeWidth: 2,
			PointRadius: 4,
			Quality:     90,
			Minify:      true,
		},
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Keys absent from the file keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault is Load that returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch strings.ToLower(c.ByteOrder) {
	case "", "ndr", "xdr":
	default:
		return fmt.Errorf("byte_order must be ndr or xdr, got %q", c.ByteOrder)
	}
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative")
	}
	if c.Render.Width < 0 || c.Render.Height < 0 || c.Render.Padding < 0 {
		return fmt.Errorf("render size must not be negative")
	}
	if c.Render.Quality < 0 || c.Render.Quality > 100 {
		return fmt.Errorf("render quality must be within 0..100")
	}
	return nil
}
