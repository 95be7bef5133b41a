package papercraft

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1e-6, cfg.Tolerance)
	assert.Equal(t, 5.0, cfg.GridStep)
	assert.Equal(t, 8.0, cfg.Margin)
	assert.Equal(t, 300.0, cfg.SearchWidth)
	assert.Equal(t, 400.0, cfg.SearchHeight)
	assert.Equal(t, 12, cfg.MaxVertices)
	assert.Equal(t, LayoutCanvas, cfg.LayoutMode)
	assert.Equal(t, GroupingSingleton, cfg.Grouping)
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }},
		{"zero grid step", func(c *Config) { c.GridStep = 0 }},
		{"negative margin", func(c *Config) { c.Margin = -1 }},
		{"negative search width", func(c *Config) { c.SearchWidth = -10 }},
		{"two vertices", func(c *Config) { c.MaxVertices = 2 }},
		{"negative tabs", func(c *Config) { c.TabWidth = -1 }},
		{"empty groups", func(c *Config) { c.MaxGroupSize = 0 }},
		{"unknown layout", func(c *Config) { c.LayoutMode = "spiral" }},
		{"unknown grouping", func(c *Config) { c.Grouping = "islands" }},
		{"paged without room", func(c *Config) {
			c.LayoutMode = LayoutPaged
			c.Page.PrintMargin = 500
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestParseConfigYAML(t *testing.T) {
	data := []byte(`
margin: 4
tab_width: 3.5
layout_mode: paged
grouping: adjacency
page:
  format: A3
  orientation: landscape
`)
	cfg, err := ParseConfig(data, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Margin)
	assert.Equal(t, 3.5, cfg.TabWidth)
	assert.Equal(t, LayoutPaged, cfg.LayoutMode)
	assert.Equal(t, GroupingAdjacency, cfg.Grouping)
	assert.Equal(t, PageA3, cfg.Page.Format)
	assert.Equal(t, Landscape, cfg.Page.Orientation)
	assert.Equal(t, 10.0, cfg.Page.PrintMargin, "unset fields keep their defaults")
	assert.Equal(t, 5.0, cfg.GridStep)
}

func TestParseConfigTOML(t *testing.T) {
	data := []byte(`
grid_step = 2.5
max_vertices = 8

[page]
format = "Letter"
title_band = 0
`)
	cfg, err := ParseConfig(data, "toml")
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.GridStep)
	assert.Equal(t, 8, cfg.MaxVertices)
	assert.Equal(t, PageLetter, cfg.Page.Format)
	assert.Equal(t, 0.0, cfg.Page.TitleBand)
	assert.Equal(t, Portrait, cfg.Page.Orientation)
}

func TestParseConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		data string
		ext  string
	}{
		{"unknown yaml field", "margins: 4\n", ".yml"},
		{"unknown toml field", "margins = 4\n", ".toml"},
		{"bad yaml type", "margin: wide\n", ".yaml"},
		{"invalid value", "grid_step: -1\n", ".yaml"},
		{"unsupported format", "{}", ".json"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tc.data), tc.ext)
			assert.Error(t, err)
		})
	}
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(nil, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "papercraft.toml")
	require.NoError(t, os.WriteFile(path, []byte("margin = 12\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.Margin)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
