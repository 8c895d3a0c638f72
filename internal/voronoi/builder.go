package voronoi

import (
	"math"
	"math/rand"

	"github.com/unixpickle/model3d/model2d"
)

// Builder struct makes managing the setup of a discrete voronoi diagram easier.
// Sites are given in domain units, the raster is width x height pixels and
// each pixel spans `scale` domain units along both axes.
type Builder struct {
	width  int
	height int
	scale  float64
	sites  []model2d.Coord
	rng    *rand.Rand
	sfilt  []SiteFilter
	cfilt  []CandidateFilter

	rejected int
}

// NewBuilder returns a new discrete Voronoi diagram builder. The seed drives
// AddRandomSite.
func NewBuilder(width, height int, scale float64, seed int64) *Builder {
	return &Builder{
		width:  width,
		height: height,
		scale:  scale,
		sites:  []model2d.Coord{},
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// SiteCount returns how many sites we've currently got configured
func (b *Builder) SiteCount() int {
	return len(b.sites)
}

// Rejected returns how many sites were refused by our filters so far
func (b *Builder) Rejected() int {
	return b.rejected
}

// Sites returns the accepted sites in the order they were added.
func (b *Builder) Sites() []model2d.Coord {
	return b.sites
}

// Voronoi returns the label raster given our current sites.
// With no sites (or a zero sized raster) the result is empty.
func (b *Builder) Voronoi() *Labels {
	return FloodFill(b.width, b.height, b.scale, b.sites)
}

// SetCandidateFilters sets filters that accept / reject a proposed site without
// reference to other currently set site(s).
func (b *Builder) SetCandidateFilters(f ...CandidateFilter) {
	b.cfilt = f
}

// SetSiteFilters sets filters that compare proposed sites to all current sites.
func (b *Builder) SetSiteFilters(f ...SiteFilter) {
	b.sfilt = f
}

// AddRandomSite places a site at random within the raster's domain extent,
// assuming it obeys all currently set filters.
func (b *Builder) AddRandomSite() (float64, float64, int, bool) {
	candidateX := b.rng.Float64() * float64(b.width) * b.scale
	candidateY := b.rng.Float64() * float64(b.height) * b.scale

	if !b.accepted(candidateX, candidateY) {
		b.rejected++
		return 0, 0, 0, false
	}

	return candidateX, candidateY, b.addSite(candidateX, candidateY), true
}

// AddSite places a site at the given location, assuming it obeys currently set filters.
func (b *Builder) AddSite(x, y float64) (int, bool) {
	if !b.accepted(x, y) {
		b.rejected++
		return 0, false
	}
	return b.addSite(x, y), true
}

// accepted returns if the proposed site location (x, y) is acceptable to our filters.
// We run CandidateFilter(s) first so we can hopefully reject candidates early.
func (b *Builder) accepted(candidateX, candidateY float64) bool {
	for _, fn := range b.cfilt {
		if !fn(candidateX, candidateY) {
			return false
		}
	}

	for _, s := range b.sites {
		for _, fn := range b.sfilt {
			if !fn(candidateX, candidateY, s.X, s.Y) {
				return false
			}
		}
	}

	return true
}

// calculateDist standard pythag.
func calculateDist(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}

// addSite adds a site, no filters are run.
func (b *Builder) addSite(x, y float64) int {
	id := len(b.sites)
	b.sites = append(b.sites, model2d.Coord{X: x, Y: y})
	return id
}
