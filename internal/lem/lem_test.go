package lem

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/reliefgraph/internal/mesh"
)

func gridInput(n int, size, erodibility float64) *Input {
	in := &Input{
		Domain: r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: size, Y: size}),
		Params: DefaultParams(),
	}
	rng := rand.New(rand.NewSource(1))
	step := size / float64(n-1)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			// jitter interior points so the grid isn't cocircular everywhere
			jx, jy := 0.0, 0.0
			if x > 0 && x < n-1 && y > 0 && y < n-1 {
				jx, jy = (rng.Float64()-0.5)*step*0.2, (rng.Float64()-0.5)*step*0.2
			}
			in.Sites = append(in.Sites, r2.Point{X: float64(x)*step + jx, Y: float64(y)*step + jy})
			in.Attributes = append(in.Attributes, Attributes{UpliftRate: 100, Erodibility: erodibility})
			if x == 0 {
				in.Outlets = append(in.Outlets, len(in.Sites)-1)
			}
		}
	}
	return in
}

func TestBuildOutlets(t *testing.T) {
	in := gridInput(12, 10000, 0.5)
	f, err := Build(in)
	require.NoError(t, err)

	assert.ElementsMatch(t, in.Outlets, f.outlets)

	isOutlet := map[int]bool{}
	for _, o := range in.Outlets {
		isOutlet[o] = true
	}
	for i := range in.Sites {
		h, ok := f.siteAltitude(i)
		require.True(t, ok)
		if isOutlet[i] {
			assert.Equal(t, 0.0, h)
		} else {
			assert.Greater(t, h, 0.0)
		}
	}

	// land rises away from the coast
	near, ok := f.Altitude(r2.Point{X: 1000, Y: 5000})
	require.True(t, ok)
	far, ok := f.Altitude(r2.Point{X: 9000, Y: 5000})
	require.True(t, ok)
	assert.Greater(t, far, near)
}

func TestBuildDefaultsToHull(t *testing.T) {
	in := gridInput(8, 1000, 0.5)
	in.Outlets = nil

	f, err := Build(in)
	require.NoError(t, err)

	m, err := mesh.Triangulate(toCoords(in.Sites))
	require.NoError(t, err)
	assert.ElementsMatch(t, m.Hull(), f.outlets)
}

func TestBuildErodibility(t *testing.T) {
	soft, err := Build(gridInput(10, 5000, 0.8))
	require.NoError(t, err)
	hard, err := Build(gridInput(10, 5000, 0.2))
	require.NoError(t, err)

	p := r2.Point{X: 4900, Y: 2500}
	hs, ok := soft.Altitude(p)
	require.True(t, ok)
	hh, ok := hard.Altitude(p)
	require.True(t, ok)
	assert.Greater(t, hh, hs)
}

func TestAltitudeOutsideDomain(t *testing.T) {
	in := gridInput(6, 100, 0.5)
	in.Domain = r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 50, Y: 50})

	f, err := Build(in)
	require.NoError(t, err)

	_, ok := f.Altitude(r2.Point{X: 25, Y: 25})
	assert.True(t, ok)
	_, ok = f.Altitude(r2.Point{X: 75, Y: 25})
	assert.False(t, ok)
	_, ok = f.Altitude(r2.Point{X: -1, Y: 25})
	assert.False(t, ok)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(&Input{
		Sites:      []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}},
		Attributes: make([]Attributes, 3),
		Params:     DefaultParams(),
	})
	assert.ErrorIs(t, err, mesh.ErrDegenerate)

	_, err = Build(&Input{
		Sites:      []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		Attributes: make([]Attributes, 2),
	})
	assert.ErrorIs(t, err, ErrAttributeCount)

	_, err = Build(&Input{
		Sites:      []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		Attributes: make([]Attributes, 3),
		Outlets:    []int{3},
	})
	assert.ErrorIs(t, err, ErrBadOutlet)
}

func TestBuildDuplicateSite(t *testing.T) {
	in := gridInput(5, 100, 0.5)
	in.Sites = append(in.Sites, in.Sites[7])
	in.Attributes = append(in.Attributes, in.Attributes[7])

	f, err := Build(in)
	require.NoError(t, err)

	_, ok := f.siteAltitude(len(in.Sites) - 1)
	assert.False(t, ok)
	_, ok = f.siteAltitude(7)
	assert.True(t, ok)
}
