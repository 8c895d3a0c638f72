package reliefgraph

import (
	"image/color"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/voidshard/reliefgraph/internal/lem"
	"github.com/voidshard/reliefgraph/internal/ramp"
)

var validate = validator.New()

// Config holds the physical & rendering constants. Most of these are not
// worth changing, but nothing is hidden in package globals either.
type Config struct {
	// SurfaceDistance is the width of the domain (metres), the height
	// follows from the aspect ratio.
	SurfaceDistance float64 `yaml:"surface_distance" json:"surface_distance" validate:"gt=0"`

	// UpliftRate applied to every site
	UpliftRate float64 `yaml:"uplift_rate" json:"uplift_rate" validate:"gte=0"`

	// BaselineAltitude sites start at (& outlets stay at)
	BaselineAltitude float64 `yaml:"baseline_altitude" json:"baseline_altitude"`

	// MaxAltitude is the top of the colour ramp
	MaxAltitude float64 `yaml:"max_altitude" json:"max_altitude" validate:"gt=0"`

	// MaxShadowAltitude is the altitude difference giving full shadow
	MaxShadowAltitude float64 `yaml:"max_shadow_altitude" json:"max_shadow_altitude" validate:"gt=0"`

	// CompareDistance is how far along (both axes) hillshading looks
	CompareDistance float64 `yaml:"compare_distance" json:"compare_distance" validate:"gte=0"`

	// Dither is the amplitude of random brightness noise
	Dither float64 `yaml:"dither" json:"dither" validate:"gte=0,lte=1"`

	// stream power law exponents & number of routing passes
	StreamPowerM    float64 `yaml:"stream_power_m" json:"stream_power_m" validate:"gte=0"`
	StreamPowerN    float64 `yaml:"stream_power_n" json:"stream_power_n" validate:"gt=0"`
	ModelIterations int     `yaml:"model_iterations" json:"model_iterations" validate:"gte=1"`

	// erodibility range offered to editors, the default for new nodes
	// with nothing to inherit from is the middle of it
	MinErodibility float64 `yaml:"min_erodibility" json:"min_erodibility" validate:"gt=0"`
	MaxErodibility float64 `yaml:"max_erodibility" json:"max_erodibility" validate:"gtfield=MinErodibility"`

	// Workers rendering rows at once, 0 is one per cpu
	Workers int `yaml:"workers" json:"workers" validate:"gte=0"`

	// Palette colours relief from sea level (at 0) to MaxAltitude (at 1).
	// Stops must rise strictly from 0 to 1. Grayscale renders ignore it.
	Palette []ColorStop `yaml:"palette" json:"palette" validate:"omitempty,min=2"`

	// Sampling defaults for callers that don't pass their own
	Sampling SamplingParams `yaml:"sampling" json:"sampling"`
}

// ColorStop is one colour on the relief palette
type ColorStop struct {
	At float64 `yaml:"at" json:"at"`
	R  uint8   `yaml:"r" json:"r"`
	G  uint8   `yaml:"g" json:"g"`
	B  uint8   `yaml:"b" json:"b"`
}

// SamplingParams are the per-render settings.
type SamplingParams struct {
	// SurfaceWidth & SurfaceHeight set the domain aspect ratio.
	// If either is 0 the image dimensions are used.
	SurfaceWidth  float64 `yaml:"surface_width" json:"surface_width" validate:"gte=0"`
	SurfaceHeight float64 `yaml:"surface_height" json:"surface_height" validate:"gte=0"`

	// Samples is the number of random sites handed to the elevation model
	// (before those outside the nodes' hull are dropped)
	Samples int `yaml:"samples" json:"samples" validate:"gte=0"`

	// EdgeNodes is the number of boundary nodes per domain edge,
	// including the corner it starts at.
	EdgeNodes int `yaml:"edge_nodes" json:"edge_nodes" validate:"gte=1"`

	// Seed for sampling & dithering
	Seed int64 `yaml:"seed" json:"seed"`

	// Grayscale draws altitude black to white with no shading
	Grayscale bool `yaml:"grayscale" json:"grayscale"`

	// Crop shrinks the rendered area about its centre, 0 renders everything
	Crop float64 `yaml:"crop" json:"crop" validate:"gte=0,lt=1"`
}

// DefaultConfig returns the settings everything was tuned with
func DefaultConfig() *Config {
	lp := lem.DefaultParams()
	return &Config{
		SurfaceDistance:   200 * 1e3,
		UpliftRate:        100,
		BaselineAltitude:  0,
		MaxAltitude:       2000,
		MaxShadowAltitude: 350,
		CompareDistance:   0.5 * 1e3,
		Dither:            0.05,
		StreamPowerM:      lp.M,
		StreamPowerN:      lp.N,
		ModelIterations:   lp.Iterations,
		MinErodibility:    0.2,
		MaxErodibility:    0.8,
		Workers:           0,
		Palette:           paletteOf(ramp.Terrain()),
		Sampling:          DefaultSamplingParams(),
	}
}

// DefaultSamplingParams returns sensible per-render settings
func DefaultSamplingParams() SamplingParams {
	return SamplingParams{
		Samples:   50000,
		EdgeNodes: 16,
	}
}

// LoadConfig reads a YAML file over the top of DefaultConfig
func LoadConfig(fpath string) (*Config, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", fpath)
	}

	cfg := DefaultConfig()
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", fpath)
	}

	return cfg, cfg.Validate()
}

// Validate checks settings are in range
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err != nil {
		return errors.Wrap(err, "invalid config")
	}
	_, err = c.ramp()
	if err != nil {
		return errors.Wrap(err, "invalid config palette")
	}
	return nil
}

// ramp builds the relief palette, the built in one if none is set
func (c *Config) ramp() (*ramp.Ramp, error) {
	if len(c.Palette) == 0 {
		return ramp.Terrain(), nil
	}
	stops := make([]ramp.Stop, len(c.Palette))
	for i, s := range c.Palette {
		stops[i] = ramp.Stop{Color: color.RGBA{R: s.R, G: s.G, B: s.B, A: 255}, At: s.At}
	}
	return ramp.New(stops...)
}

// paletteOf lists a ramp's stops as config
func paletteOf(r *ramp.Ramp) []ColorStop {
	stops := r.Stops()
	out := make([]ColorStop, len(stops))
	for i, s := range stops {
		out[i] = ColorStop{At: s.At, R: s.Color.R, G: s.Color.G, B: s.Color.B}
	}
	return out
}

// Validate checks settings are in range
func (p *SamplingParams) Validate() error {
	err := validate.Struct(p)
	if err != nil {
		return errors.Wrap(ErrMalformedInput, err.Error())
	}
	return nil
}

// DefaultErodibility is given to nodes with nothing to inherit from
func (c *Config) DefaultErodibility() float64 {
	return (c.MinErodibility + c.MaxErodibility) / 2
}

// Domain returns the rectangle the model covers for a surface of the given
// proportions; SurfaceDistance wide & as tall as the aspect ratio requires.
func (c *Config) Domain(width, height float64) r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: 0, Y: 0},
		r2.Point{X: c.SurfaceDistance, Y: c.SurfaceDistance * height / width},
	)
}

// surface returns the dimensions used for the aspect ratio
func (p *SamplingParams) surface(imageWidth, imageHeight int) (float64, float64) {
	if p.SurfaceWidth > 0 && p.SurfaceHeight > 0 {
		return p.SurfaceWidth, p.SurfaceHeight
	}
	return float64(imageWidth), float64(imageHeight)
}
