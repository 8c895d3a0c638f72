package reliefgraph

import (
	"context"
	"image"
	"time"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"

	"github.com/voidshard/reliefgraph/internal/ramp"
	"github.com/voidshard/reliefgraph/internal/shade"
)

// Terrain is a built landscape for an image of a given size.
type Terrain struct {
	Stats TerrainStats

	field   ElevationField
	domain  r2.Rect
	width   int
	height  int
	scaleX  float64
	scaleY  float64
	params  SamplingParams
	cfg     *Config
	palette *ramp.Ramp
	log     *zap.Logger
}

// Altitude at image pixel (x, y); false if the landscape doesn't cover it.
func (t *Terrain) Altitude(x, y float64) (float64, bool) {
	return t.field.Altitude(r2.Point{X: x * t.scaleX, Y: y * t.scaleY})
}

// Field returns the underlying elevation field, in domain units
func (t *Terrain) Field() ElevationField {
	return t.field
}

// Domain returns the area the terrain covers
func (t *Terrain) Domain() r2.Rect {
	return t.domain
}

// Render draws the terrain as shaded relief (or plain grayscale altitude).
// Pixels the field doesn't cover are left opaque black. The drawn & undrawn
// counts of the last render are kept in Stats.
func (t *Terrain) Render(ctx context.Context) (*image.RGBA, error) {
	start := time.Now()

	img, stats, err := shade.Render(ctx, t.field, &shade.Options{
		Width:             t.width,
		Height:            t.height,
		Domain:            t.domain,
		Crop:              t.params.Crop,
		Grayscale:         t.params.Grayscale,
		MaxAltitude:       t.cfg.MaxAltitude,
		MaxShadowAltitude: t.cfg.MaxShadowAltitude,
		CompareDistance:   t.cfg.CompareDistance,
		Dither:            t.cfg.Dither,
		Seed:              t.params.Seed,
		Workers:           t.cfg.Workers,
		Ramp:              t.palette,
	})
	if err != nil {
		return nil, err
	}
	t.Stats.Drawn = stats.Drawn
	t.Stats.Undrawn = stats.Undrawn

	t.log.Debug("rendered terrain",
		zap.Int("drawn", stats.Drawn),
		zap.Int("undrawn", stats.Undrawn),
		zap.Bool("grayscale", t.params.Grayscale),
		zap.Duration("elapsed", time.Since(start)),
	)
	return img, nil
}
