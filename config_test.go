package reliefgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	fpath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(fpath, []byte(body), 0644))
	return fpath
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.NoError(t, cfg.Sampling.Validate())

	assert.Equal(t, 0.5, cfg.DefaultErodibility())
	assert.Equal(t, 50000, cfg.Sampling.Samples)
	assert.Equal(t, 16, cfg.Sampling.EdgeNodes)

	require.Len(t, cfg.Palette, 6)
	assert.Equal(t, ColorStop{At: 0, R: 50, G: 130, B: 200}, cfg.Palette[0])
	assert.Equal(t, 1.0, cfg.Palette[5].At)
}

func TestLoadConfigPalette(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
palette:
  - {at: 0, r: 0, g: 0, b: 90}
  - {at: 0.5, r: 200, g: 180, b: 40}
  - {at: 1, r: 255, g: 255, b: 255}
`))
	require.NoError(t, err)
	require.Len(t, cfg.Palette, 3)
	assert.Equal(t, ColorStop{At: 0.5, R: 200, G: 180, B: 40}, cfg.Palette[1])

	pal, err := cfg.ramp()
	require.NoError(t, err)
	assert.Equal(t, uint8(100), pal.Lookup(0.25).R)

	// stops out of order
	_, err = LoadConfig(writeConfig(t, `
palette:
  - {at: 0, r: 0, g: 0, b: 90}
  - {at: 0.7, r: 200, g: 180, b: 40}
  - {at: 0.3, r: 10, g: 10, b: 10}
  - {at: 1, r: 255, g: 255, b: 255}
`))
	assert.Error(t, err)

	// too few stops
	_, err = LoadConfig(writeConfig(t, "palette:\n  - {at: 0, r: 1, g: 2, b: 3}\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
surface_distance: 100000
max_altitude: 3000
sampling:
  samples: 1000
  grayscale: true
`))
	require.NoError(t, err)

	assert.Equal(t, 100000.0, cfg.SurfaceDistance)
	assert.Equal(t, 3000.0, cfg.MaxAltitude)
	assert.Equal(t, 1000, cfg.Sampling.Samples)
	assert.True(t, cfg.Sampling.Grayscale)

	// untouched values keep their defaults
	assert.Equal(t, 100.0, cfg.UpliftRate)
	assert.Equal(t, 16, cfg.Sampling.EdgeNodes)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "max_altitude: -1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "min_erodibility: 0.9\nmax_erodibility: 0.1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "sampling:\n  crop: 1.5\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "{not yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDomain(t *testing.T) {
	cfg := DefaultConfig()

	d := cfg.Domain(800, 600)
	assert.Equal(t, 0.0, d.Lo().X)
	assert.Equal(t, 0.0, d.Lo().Y)
	assert.Equal(t, 200e3, d.Hi().X)
	assert.Equal(t, 150e3, d.Hi().Y)

	p := SamplingParams{SurfaceWidth: 2, SurfaceHeight: 1}
	w, h := p.surface(800, 600)
	assert.Equal(t, 100e3, cfg.Domain(w, h).Hi().Y)

	p = SamplingParams{SurfaceWidth: 2}
	w, h = p.surface(800, 600)
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 600.0, h)
}
