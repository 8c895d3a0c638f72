package ramp

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupStops(t *testing.T) {
	for _, r := range []*Ramp{Terrain(), Grayscale()} {
		for _, s := range r.Stops() {
			assert.Equal(t, s.Color, r.Lookup(s.At))
		}
	}
}

func TestLookupClamps(t *testing.T) {
	r := Terrain()
	stops := r.Stops()
	first, last := stops[0].Color, stops[len(stops)-1].Color

	assert.Equal(t, first, r.Lookup(-1))
	assert.Equal(t, first, r.Lookup(math.Inf(-1)))
	assert.Equal(t, first, r.Lookup(math.NaN()))
	assert.Equal(t, last, r.Lookup(1.5))
	assert.Equal(t, last, r.Lookup(math.Inf(1)))
}

func TestLookupBlends(t *testing.T) {
	r, err := New(
		Stop{Color: color.RGBA{R: 0, G: 100, B: 200, A: 255}, At: 0},
		Stop{Color: color.RGBA{R: 100, G: 100, B: 0, A: 255}, At: 1},
	)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{R: 50, G: 100, B: 100, A: 255}, r.Lookup(0.5))
	assert.Equal(t, color.RGBA{R: 25, G: 100, B: 150, A: 255}, r.Lookup(0.25))
}

func TestLookupContinuous(t *testing.T) {
	// between neighbouring stops each channel moves one way only
	r := Terrain()
	stops := r.Stops()
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		prev := r.Lookup(a.At)
		for k := 1; k <= 50; k++ {
			c := r.Lookup(a.At + (b.At-a.At)*float64(k)/50)
			assert.True(t, between(prev.R, c.R, b.Color.R))
			assert.True(t, between(prev.G, c.G, b.Color.G))
			assert.True(t, between(prev.B, c.B, b.Color.B))
			prev = c
		}
	}
}

func between(from, v, to uint8) bool {
	if from <= to {
		return from <= v && v <= to
	}
	return to <= v && v <= from
}

func TestGrayscaleEqualChannels(t *testing.T) {
	r := Grayscale()
	for v := 0.0; v <= 1; v += 0.01 {
		c := r.Lookup(v)
		assert.Equal(t, c.R, c.G)
		assert.Equal(t, c.G, c.B)
	}
}

func TestNewRejectsBadStops(t *testing.T) {
	black := color.RGBA{A: 255}
	for _, stops := range [][]Stop{
		{{Color: black, At: 0}},
		{{Color: black, At: 0.1}, {Color: black, At: 1}},
		{{Color: black, At: 0}, {Color: black, At: 0.9}},
		{{Color: black, At: 0}, {Color: black, At: 0.5}, {Color: black, At: 0.5}, {Color: black, At: 1}},
	} {
		_, err := New(stops...)
		assert.ErrorIs(t, err, ErrBadStops)
	}
}
