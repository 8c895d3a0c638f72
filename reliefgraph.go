package reliefgraph

import (
	"context"
	"image"
	"math/rand"
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/voidshard/reliefgraph/internal/ramp"
)

// Generator turns nodes into preview labels & shaded relief.
// A Generator holds no per-call state & is safe for concurrent use.
type Generator struct {
	cfg     *Config
	log     *zap.Logger
	model   ElevationModel
	interp  InterpolatorBuilder
	palette *ramp.Ramp
}

// Option configures a Generator
type Option func(g *Generator)

// WithLogger sets the logger, the default logs nothing
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// WithElevationModel replaces the default StreamPowerModel
func WithElevationModel(m ElevationModel) Option {
	return func(g *Generator) {
		g.model = m
	}
}

// WithInterpolator replaces the default DelaunayInterpolator
func WithInterpolator(b InterpolatorBuilder) Option {
	return func(g *Generator) {
		g.interp = b
	}
}

// New returns a Generator for the given config (DefaultConfig if nil)
func New(cfg *Config, opts ...Option) (*Generator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	palette, err := cfg.ramp()
	if err != nil {
		return nil, err
	}

	g := &Generator{
		cfg:     cfg,
		log:     zap.NewNop(),
		model:   NewStreamPowerModel(cfg),
		interp:  DelaunayInterpolator{},
		palette: palette,
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// Config returns the generator's config
func (g *Generator) Config() *Config {
	return g.cfg
}

// Terrain builds the landscape described by the nodes for an image of the
// given size. Node positions are image pixels.
//
// The nodes are closed off with boundary nodes around the domain, resampled
// at random & handed to the elevation model with the ocean samples as
// outlets.
func (g *Generator) Terrain(ctx context.Context, width, height int, params SamplingParams, nodes []Node) (*Terrain, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrMalformedInput, "image size %dx%d", width, height)
	}
	err := params.Validate()
	if err != nil {
		return nil, err
	}
	for i, n := range nodes {
		if !n.finite() {
			return nil, errors.Wrapf(ErrMalformedInput, "node %d is not finite", i)
		}
	}

	sw, sh := params.surface(width, height)
	domain := g.cfg.Domain(sw, sh)
	sx := domain.Size().X / float64(width)
	sy := domain.Size().Y / float64(height)

	start := time.Now()
	stats := TerrainStats{Nodes: len(nodes)}

	raw := make([]Node, len(nodes))
	for i, n := range nodes {
		raw[i] = Node{X: n.X * sx, Y: n.Y * sy, Erodibility: n.Erodibility, IsOcean: n.IsOcean}
	}

	boundary, err := SynthesizeBoundary(raw, domain, params.EdgeNodes)
	if errors.Is(err, ErrNoNodes) {
		g.log.Debug("no nodes given, using default boundary", zap.Float64("erodibility", g.cfg.DefaultErodibility()))
		boundary = defaultBoundary(domain, params.EdgeNodes, g.cfg.DefaultErodibility())
	} else if err != nil {
		return nil, err
	}
	stats.Boundary = len(boundary)

	closed := append(raw, boundary...)
	interp, err := g.interp.Build(closed)
	if err != nil {
		g.log.Error("failed to build interpolator", zap.Int("nodes", len(closed)), zap.Error(err))
		return nil, &ModelError{Stage: "interpolation", Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(params.Seed))
	samples := Resample(interp, domain, params.Samples, rng)
	stats.Samples = len(samples)
	stats.Dropped = params.Samples - len(samples)

	in := &ModelInput{
		Sites:      make([]r2.Point, len(samples)),
		Attributes: make([]SiteAttributes, len(samples)),
		Domain:     domain,
	}
	for i, n := range samples {
		in.Sites[i] = n.Site()
		in.Attributes[i] = SiteAttributes{
			BaseAltitude: g.cfg.BaselineAltitude,
			UpliftRate:   g.cfg.UpliftRate,
			Erodibility:  n.Erodibility,
		}
		if n.IsOcean {
			in.Outlets = append(in.Outlets, i)
		}
	}
	stats.Outlets = len(in.Outlets)

	g.log.Debug("resampled nodes",
		zap.Int("nodes", stats.Nodes),
		zap.Int("boundary", stats.Boundary),
		zap.Int("samples", stats.Samples),
		zap.Int("dropped", stats.Dropped),
		zap.Int("outlets", stats.Outlets),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	field, err := g.model.Build(in)
	if err != nil {
		g.log.Error("failed to build elevation model", zap.Int("sites", len(in.Sites)), zap.Error(err))
		return nil, &ModelError{Stage: "elevation", Err: err}
	}
	g.log.Debug("built elevation model", zap.Duration("elapsed", time.Since(start)))

	return &Terrain{
		Stats:   stats,
		field:   field,
		domain:  domain,
		width:   width,
		height:  height,
		scaleX:  sx,
		scaleY:  sy,
		params:  params,
		cfg:     g.cfg,
		palette: g.palette,
		log:     g.log,
	}, nil
}

// RenderTerrain builds the landscape described by the nodes & renders it.
// The image is width x height; its Pix is the raw RGBA buffer.
func (g *Generator) RenderTerrain(ctx context.Context, width, height int, params SamplingParams, nodes []Node) (*image.RGBA, error) {
	t, err := g.Terrain(ctx, width, height, params, nodes)
	if err != nil {
		return nil, err
	}
	return t.Render(ctx)
}

// RenderTerrain renders nodes with the default config, see Generator.RenderTerrain
func RenderTerrain(width, height int, params SamplingParams, nodes []Node) (*image.RGBA, error) {
	g, err := New(nil)
	if err != nil {
		return nil, err
	}
	return g.RenderTerrain(context.Background(), width, height, params, nodes)
}
