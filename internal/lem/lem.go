package lem

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/reliefgraph/internal/mesh"
)

var (
	// ErrAttributeCount implies we were given a different number of attributes to sites
	ErrAttributeCount = errors.New("attribute count does not match site count")

	// ErrBadOutlet implies an outlet index doesn't name a site
	ErrBadOutlet = errors.New("outlet index out of range")
)

// minErodibility stops the stream power law dividing by zero
const minErodibility = 1e-6

// Attributes are the per site inputs to the model.
type Attributes struct {
	// altitude outlets are pinned to
	BaseAltitude float64

	// rate the land rises, balanced by erosion at steady state
	UpliftRate float64

	// how readily the land erodes; higher values give flatter, lower land
	Erodibility float64
}

// Params tune the stream power law h' = U - K * A^m * S^n
type Params struct {
	M          float64
	N          float64
	Iterations int
}

// DefaultParams are the usual stream power exponents
func DefaultParams() Params {
	return Params{M: 0.5, N: 1, Iterations: 5}
}

// Input is everything needed to build a Field.
type Input struct {
	Sites      []r2.Point
	Attributes []Attributes

	// Domain bounds queries; altitudes are never returned outside of it
	Domain r2.Rect

	// Outlets are indexes of sites that water drains out of (the sea).
	// If none are given (or none are usable) the sites on the convex
	// hull are used.
	Outlets []int

	Params Params
}

// Field is a steady state landscape; altitudes at each site of a triangulated
// drainage network. A Field is read only & safe for concurrent use.
type Field struct {
	mesh     *mesh.Mesh
	altitude []float64
	outlets  []int
	domain   r2.Rect
}

// Build runs the model to steady state.
func Build(in *Input) (*Field, error) {
	if len(in.Attributes) != len(in.Sites) {
		return nil, ErrAttributeCount
	}

	m, err := mesh.Triangulate(toCoords(in.Sites))
	if err != nil {
		return nil, errors.Wrap(err, "failed to triangulate sites")
	}

	outlets := []int{}
	for _, o := range in.Outlets {
		if o < 0 || o >= len(in.Sites) {
			return nil, errors.Wrapf(ErrBadOutlet, "outlet %d of %d sites", o, len(in.Sites))
		}
		if m.Used(o) {
			outlets = append(outlets, o)
		}
	}
	if len(outlets) == 0 {
		outlets = m.Hull()
	}

	params := in.Params
	if params.Iterations < 1 {
		params.Iterations = 1
	}
	if params.N <= 0 {
		params.N = 1
	}

	f := &Field{
		mesh:     m,
		altitude: make([]float64, len(in.Sites)),
		outlets:  outlets,
		domain:   in.Domain,
	}
	for i, a := range in.Attributes {
		f.altitude[i] = a.BaseAltitude
	}

	s := newSolver(m, outlets)
	for i := 0; i < params.Iterations; i++ {
		s.route(f.altitude)
		s.accumulate()
		s.solve(f.altitude, in.Attributes, params)
	}

	// sites outside of the network (duplicates) have no altitude
	for i := range f.altitude {
		if !s.reached[i] {
			f.altitude[i] = math.NaN()
		}
	}

	return f, nil
}

// Altitude at p, false if p isn't in the modelled area.
func (f *Field) Altitude(p r2.Point) (float64, bool) {
	if !f.domain.ContainsPoint(p) {
		return 0, false
	}
	h, ok := f.mesh.Interpolate(f.altitude, model2d.Coord{X: p.X, Y: p.Y})
	if !ok || math.IsNaN(h) {
		return 0, false
	}
	return h, true
}

// siteAltitude returns the modelled altitude of site i, false if the site
// didn't take part in the model.
func (f *Field) siteAltitude(i int) (float64, bool) {
	if i < 0 || i >= len(f.altitude) || math.IsNaN(f.altitude[i]) {
		return 0, false
	}
	return f.altitude[i], true
}

// toCoords converts sites to mesh points
func toCoords(sites []r2.Point) []model2d.Coord {
	coords := make([]model2d.Coord, len(sites))
	for i, s := range sites {
		coords[i] = model2d.Coord{X: s.X, Y: s.Y}
	}
	return coords
}
