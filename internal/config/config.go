// Package config handles configuration loading and the mapping of config
// values onto converter, export and server settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/woozymasta/coordsuite/internal/converter"
	"github.com/woozymasta/coordsuite/internal/export"
	"github.com/woozymasta/coordsuite/internal/geo"
	"github.com/woozymasta/coordsuite/internal/preview"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Convert Convert         `yaml:"convert" json:"convert"`
	Export  export.Options  `yaml:"export" json:"export"`
	Preview preview.Options `yaml:"preview" json:"preview"`
	Server  Server          `yaml:"server" json:"server"`
}

// Convert holds the default conversion options.
type Convert struct {
	Direction  string `yaml:"direction,omitempty" json:"direction,omitempty"`
	Hemisphere string `yaml:"hemisphere,omitempty" json:"hemisphere,omitempty"`
	Ellipsoid  string `yaml:"ellipsoid,omitempty" json:"ellipsoid,omitempty"`

	// 0 resolves zones per point
	Zone         int  `yaml:"zone,omitempty" json:"zone,omitempty"`
	SpecialZones bool `yaml:"special_zones,omitempty" json:"special_zones,omitempty"`
}

// Server holds HTTP limits and the map tile template shown in the UI.
type Server struct {
	TileURL      string `yaml:"tile_url,omitempty" json:"tile_url,omitempty"`
	Attribution  string `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	MaxBodyBytes int64  `yaml:"max_body_bytes,omitempty" json:"max_body_bytes,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Convert: Convert{Direction: converter.Auto.String(), Ellipsoid: geo.WGS84.Name},
		Export:  export.DefaultOptions(),
		Preview: preview.DefaultOptions(),
		Server: Server{
			TileURL:      "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution:  "© OpenStreetMap contributors",
			MaxBodyBytes: 4 << 20,
		},
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadOptional loads path when it exists and falls back to Default when it
// does not.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks the values that Load cannot check through types alone.
func (c *Config) Validate() error {
	if _, err := c.ConvertOptions(); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if _, err := geo.EllipsoidByName(c.Convert.Ellipsoid); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if c.Convert.Zone != 0 {
		if _, _, err := geo.ParseZone(fmt.Sprintf("%d%s", c.Convert.Zone, c.Convert.Hemisphere)); err != nil {
			return fmt.Errorf("convert: %w", err)
		}
	}

	if _, err := export.ParseDelimiter(c.Export.Delimiter); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if c.Export.PrecisionDegrees < 0 || c.Export.PrecisionMeters < 0 {
		return errors.New("export: precision must not be negative")
	}

	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return errors.New("preview: width and height must be positive")
	}
	if c.Preview.Quality < 0 || c.Preview.Quality > 100 {
		return errors.New("preview: quality must be within [0, 100]")
	}

	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server: max_body_bytes must be positive")
	}

	return nil
}

// ConvertOptions builds converter options from the convert section.
func (c *Config) ConvertOptions() (converter.Options, error) {
	return converter.ParseOptions(c.Convert.Direction, c.Convert.Zone, c.Convert.Hemisphere, c.Convert.SpecialZones)
}

// Projection builds the projection over the configured ellipsoid.
func (c *Config) Projection() (*geo.Projection, error) {
	ell, err := geo.EllipsoidByName(c.Convert.Ellipsoid)
	if err != nil {
		return nil, err
	}
	return geo.NewProjection(ell), nil
}

// ExportOptions returns the export section with the preview settings
// attached.
func (c *Config) ExportOptions() export.Options {
	opts := c.Export
	opts.Preview = c.Preview
	return opts
}
