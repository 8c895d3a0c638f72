package reliefgraph

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/voidshard/reliefgraph/internal/mesh"
)

// noField has no altitude anywhere
type noField struct{}

func (noField) Altitude(r2.Point) (float64, bool) { return 0, false }

type noModel struct{}

func (noModel) Build(*ModelInput) (ElevationField, error) { return noField{}, nil }

type brokenInterpolator struct{}

func (brokenInterpolator) Build([]Node) (Interpolator, error) {
	return nil, errors.New("broken")
}

func testParams() SamplingParams {
	return SamplingParams{Samples: 2000, EdgeNodes: 8, Seed: 11}
}

// coast has sea to the west & a hard ridge to the east
func coast() []Node {
	return []Node{
		{X: 5, Y: 10, IsOcean: true, Erodibility: 0.5},
		{X: 5, Y: 40, IsOcean: true, Erodibility: 0.5},
		{X: 30, Y: 25, Erodibility: 0.6},
		{X: 55, Y: 10, Erodibility: 0.2},
		{X: 55, Y: 40, Erodibility: 0.3},
	}
}

func testGenerator(t *testing.T, opts ...Option) *Generator {
	g, err := New(nil, opts...)
	require.NoError(t, err)
	return g
}

func TestRenderTerrainNoAltitude(t *testing.T) {
	g := testGenerator(t, WithElevationModel(noModel{}))

	img, err := g.RenderTerrain(context.Background(), 64, 48, testParams(), coast())
	require.NoError(t, err)

	require.Len(t, img.Pix, 64*48*4)
	for i := 0; i < len(img.Pix); i += 4 {
		assert.Equal(t, []uint8{0, 0, 0, 255}, img.Pix[i:i+4])
	}

	ter, err := g.Terrain(context.Background(), 64, 48, testParams(), coast())
	require.NoError(t, err)
	_, err = ter.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ter.Stats.Drawn)
	assert.Equal(t, 64*48, ter.Stats.Undrawn)
}

func TestRenderTerrainDeterministic(t *testing.T) {
	a, err := RenderTerrain(64, 48, testParams(), coast())
	require.NoError(t, err)
	b, err := RenderTerrain(64, 48, testParams(), coast())
	require.NoError(t, err)

	require.Len(t, a.Pix, 64*48*4)
	assert.True(t, bytes.Equal(a.Pix, b.Pix))
	for i := 3; i < len(a.Pix); i += 4 {
		assert.Equal(t, uint8(255), a.Pix[i])
	}

	ter, err := testGenerator(t).Terrain(context.Background(), 64, 48, testParams(), coast())
	require.NoError(t, err)
	c, err := ter.Render(context.Background())
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a.Pix, c.Pix))
	assert.Greater(t, ter.Stats.Drawn, 64*48/2)
	assert.Equal(t, 64*48, ter.Stats.Drawn+ter.Stats.Undrawn)
}

func TestRenderTerrainPalette(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Palette = []ColorStop{{At: 0, R: 120}, {At: 1, R: 250}}
	g, err := New(cfg)
	require.NoError(t, err)

	img, err := g.RenderTerrain(context.Background(), 64, 48, testParams(), coast())
	require.NoError(t, err)

	red := 0
	for i := 0; i < len(img.Pix); i += 4 {
		assert.Equal(t, uint8(0), img.Pix[i+1])
		assert.Equal(t, uint8(0), img.Pix[i+2])
		if img.Pix[i] > 0 {
			red++
		}
	}
	assert.Greater(t, red, 64*48/2)

	cfg.Palette = []ColorStop{{At: 0.2}, {At: 1}}
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestRenderTerrainGrayscale(t *testing.T) {
	params := testParams()
	params.Grayscale = true

	img, err := RenderTerrain(64, 48, params, coast())
	require.NoError(t, err)

	for i := 0; i < len(img.Pix); i += 4 {
		assert.Equal(t, img.Pix[i], img.Pix[i+1])
		assert.Equal(t, img.Pix[i+1], img.Pix[i+2])
	}
}

func TestTerrain(t *testing.T) {
	g := testGenerator(t)

	ter, err := g.Terrain(context.Background(), 64, 48, testParams(), coast())
	require.NoError(t, err)

	assert.Equal(t, 5, ter.Stats.Nodes)
	assert.Equal(t, 32, ter.Stats.Boundary)
	assert.Equal(t, 2000, ter.Stats.Samples+ter.Stats.Dropped)
	assert.Greater(t, ter.Stats.Outlets, 0)

	size := ter.Domain().Size()
	assert.Equal(t, 200e3, size.X)
	assert.InDelta(t, 150e3, size.Y, 1e-6)

	sea, ok := ter.Altitude(4, 24)
	require.True(t, ok)
	land, ok := ter.Altitude(58, 24)
	require.True(t, ok)
	assert.Greater(t, land, sea)

	_, ok = ter.Altitude(-10, 24)
	assert.False(t, ok)
	_, ok = ter.Altitude(10, 100)
	assert.False(t, ok)
}

func TestTerrainSurfaceAspect(t *testing.T) {
	params := testParams()
	params.SurfaceWidth = 100
	params.SurfaceHeight = 100

	ter, err := testGenerator(t).Terrain(context.Background(), 64, 48, params, coast())
	require.NoError(t, err)
	assert.Equal(t, ter.Domain().Size().X, ter.Domain().Size().Y)
}

func TestTerrainNoNodes(t *testing.T) {
	ter, err := testGenerator(t).Terrain(context.Background(), 32, 24, testParams(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ter.Stats.Outlets)

	_, ok := ter.Altitude(16, 12)
	assert.True(t, ok)
}

func TestTerrainModelErrors(t *testing.T) {
	params := testParams()
	params.Samples = 0

	_, err := testGenerator(t).Terrain(context.Background(), 32, 24, params, coast())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModelConstruction))
	assert.True(t, errors.Is(err, mesh.ErrDegenerate))

	var merr *ModelError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "elevation", merr.Stage)

	_, err = testGenerator(t, WithInterpolator(brokenInterpolator{})).Terrain(context.Background(), 32, 24, testParams(), coast())
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "interpolation", merr.Stage)
}

func TestTerrainMalformed(t *testing.T) {
	g := testGenerator(t)
	ctx := context.Background()

	_, err := g.Terrain(ctx, 0, 24, testParams(), coast())
	assert.ErrorIs(t, err, ErrMalformedInput)

	nodes := coast()
	nodes[2].Erodibility = math.Inf(1)
	_, err = g.Terrain(ctx, 32, 24, testParams(), nodes)
	assert.ErrorIs(t, err, ErrMalformedInput)

	params := testParams()
	params.Crop = 1
	_, err = g.Terrain(ctx, 32, 24, params, coast())
	assert.ErrorIs(t, err, ErrMalformedInput)

	params = testParams()
	params.EdgeNodes = 0
	_, err = g.Terrain(ctx, 32, 24, params, coast())
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestTerrainCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testGenerator(t).Terrain(ctx, 32, 24, testParams(), coast())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTerrainLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := testGenerator(t, WithLogger(zap.New(core)))

	_, err := g.RenderTerrain(context.Background(), 32, 24, testParams(), coast())
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("resampled nodes").Len())
	assert.Equal(t, 1, logs.FilterMessage("built elevation model").Len())
	rendered := logs.FilterMessage("rendered terrain").All()
	require.Len(t, rendered, 1)
	assert.Equal(t, int64(32*24), rendered[0].ContextMap()["drawn"].(int64)+rendered[0].ContextMap()["undrawn"].(int64))
}
