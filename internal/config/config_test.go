package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
format: wkt
srid: 4326
byte_order: xdr
box:
  ccw: false
render:
  width: 256
  quality: 75.5
  lossless: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "wkt", cfg.Format)
	assert.Equal(t, 4326, cfg.SRID)
	assert.Equal(t, "xdr", cfg.ByteOrder)
	assert.False(t, cfg.Box.CCW)
	assert.Equal(t, 256, cfg.Render.Width)
	assert.Equal(t, float32(75.5), cfg.Render.Quality)
	assert.True(t, cfg.Render.Lossless)

	// untouched keys keep defaults
	assert.Equal(t, 512, cfg.Render.Height)
	assert.Equal(t, "#1f4e79", cfg.Render.Stroke)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "render: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "byte_order: middle\n"))
	assert.ErrorContains(t, err, "byte_order")

	_, err = Load(writeFile(t, "render:\n  quality: 101\n"))
	assert.ErrorContains(t, err, "quality")
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "geojson", cfg.Format)

	_, err = LoadOrDefault(writeFile(t, "indent: -1\n"))
	assert.Error(t, err)
}
