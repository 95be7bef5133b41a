package papercraft

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of one unfolding pass. Lengths are in the
// engine's units, which paged layouts treat as millimetres.
type Config struct {
	Tolerance    float64      `yaml:"tolerance" toml:"tolerance" json:"tolerance"`
	GridStep     float64      `yaml:"grid_step" toml:"grid_step" json:"grid_step"`
	Margin       float64      `yaml:"margin" toml:"margin" json:"margin"`
	SearchWidth  float64      `yaml:"search_width" toml:"search_width" json:"search_width"`
	SearchHeight float64      `yaml:"search_height" toml:"search_height" json:"search_height"`
	MaxVertices  int          `yaml:"max_vertices" toml:"max_vertices" json:"max_vertices"`
	TabWidth     float64      `yaml:"tab_width" toml:"tab_width" json:"tab_width"`
	LayoutMode   LayoutMode   `yaml:"layout_mode" toml:"layout_mode" json:"layout_mode"`
	Page         PageSettings `yaml:"page" toml:"page" json:"page"`
	Grouping     Grouping     `yaml:"grouping" toml:"grouping" json:"grouping"`
	MaxGroupSize int          `yaml:"max_group_size" toml:"max_group_size" json:"max_group_size"`
}

func DefaultConfig() Config {
	return Config{
		Tolerance:    1e-6,
		GridStep:     5,
		Margin:       8,
		SearchWidth:  300,
		SearchHeight: 400,
		MaxVertices:  12,
		TabWidth:     0,
		LayoutMode:   LayoutCanvas,
		Page:         DefaultPageSettings(),
		Grouping:     GroupingSingleton,
		MaxGroupSize: 5,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Tolerance <= 0:
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidConfig, c.Tolerance)
	case c.GridStep <= 0:
		return fmt.Errorf("%w: grid_step must be positive, got %g", ErrInvalidConfig, c.GridStep)
	case c.Margin < 0:
		return fmt.Errorf("%w: margin must not be negative, got %g", ErrInvalidConfig, c.Margin)
	case c.SearchWidth < 0 || c.SearchHeight < 0:
		return fmt.Errorf("%w: search window must not be negative", ErrInvalidConfig)
	case c.MaxVertices < 3:
		return fmt.Errorf("%w: max_vertices must be at least 3, got %d", ErrInvalidConfig, c.MaxVertices)
	case c.TabWidth < 0:
		return fmt.Errorf("%w: tab_width must not be negative, got %g", ErrInvalidConfig, c.TabWidth)
	case c.MaxGroupSize < 1:
		return fmt.Errorf("%w: max_group_size must be at least 1, got %d", ErrInvalidConfig, c.MaxGroupSize)
	}

	switch c.LayoutMode {
	case LayoutCanvas:
	case LayoutPaged:
		if err := c.Page.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown layout_mode %q", ErrInvalidConfig, string(c.LayoutMode))
	}

	if _, err := c.Grouping.Policy(c.MaxGroupSize, c.Tolerance); err != nil {
		return err
	}
	return nil
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file over the
// defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file %s: %w", path, err)
	}

	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data in the format named by ext over the defaults.
func ParseConfig(data []byte, ext string) (Config, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, err
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
