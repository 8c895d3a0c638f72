package voronoi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderMinDistance(t *testing.T) {
	b := NewBuilder(100, 100, 1, 7)
	b.SetSiteFilters(b.MinDistance(10))

	added := 0
	for i := 0; i < 500; i++ {
		if _, _, _, ok := b.AddRandomSite(); ok {
			added++
		}
	}

	sites := b.Sites()
	assert.NotEmpty(t, sites)
	assert.Equal(t, added, b.SiteCount())
	assert.Equal(t, 500-added, b.Rejected())
	assert.Greater(t, b.Rejected(), 0)
	for i := range sites {
		for j := i + 1; j < len(sites); j++ {
			assert.GreaterOrEqual(t, calculateDist(sites[i].X, sites[i].Y, sites[j].X, sites[j].Y), 10.0)
		}
	}
}

func TestBuilderSeeded(t *testing.T) {
	a := NewBuilder(50, 50, 3, 11)
	b := NewBuilder(50, 50, 3, 11)
	c := NewBuilder(50, 50, 3, 12)

	for i := 0; i < 20; i++ {
		ax, ay, _, _ := a.AddRandomSite()
		bx, by, _, _ := b.AddRandomSite()
		cx, _, _, _ := c.AddRandomSite()
		assert.NotEqual(t, ax, cx)
		assert.Equal(t, ax, bx)
		assert.Equal(t, ay, by)
		assert.Less(t, ax, 150.0)
		assert.Less(t, ay, 150.0)
	}
}

func TestBuilderFiniteFilter(t *testing.T) {
	b := NewBuilder(10, 10, 1, 0)
	b.SetCandidateFilters(Finite())

	_, ok := b.AddSite(1, 2)
	assert.True(t, ok)
	_, ok = b.AddSite(math.NaN(), 2)
	assert.False(t, ok)
	_, ok = b.AddSite(1, math.Inf(-1))
	assert.False(t, ok)

	assert.Equal(t, 1, b.SiteCount())
	assert.Equal(t, 2, b.Rejected())
}

func TestBuilderNoSites(t *testing.T) {
	assert.True(t, NewBuilder(10, 10, 1, 0).Voronoi().Empty())
}
