package reliefgraph

import (
	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/reliefgraph/internal/mesh"
)

// DelaunayInterpolator builds Interpolators over a Delaunay triangulation of
// the nodes. Within a triangle nodes are blended pairwise; the first two
// vertices then that result with the third, so the ocean flag comes out of
// two nearest-endpoint choices rather than an average.
type DelaunayInterpolator struct{}

// Build implements InterpolatorBuilder
func (DelaunayInterpolator) Build(nodes []Node) (Interpolator, error) {
	coords := make([]model2d.Coord, len(nodes))
	for i, n := range nodes {
		coords[i] = n.Coord()
	}

	m, err := mesh.Triangulate(coords)
	if err != nil {
		return nil, err
	}

	return &delaunayInterpolator{mesh: m, nodes: nodes}, nil
}

type delaunayInterpolator struct {
	mesh  *mesh.Mesh
	nodes []Node
}

// Interpolate implements Interpolator
func (d *delaunayInterpolator) Interpolate(p r2.Point) (Node, bool) {
	tri, w, ok := d.mesh.Locate(model2d.Coord{X: p.X, Y: p.Y})
	if !ok {
		return Node{}, false
	}

	a, b, c := d.nodes[tri[0]], d.nodes[tri[1]], d.nodes[tri[2]]

	ab := a
	if s := w[0] + w[1]; s > 0 {
		ab = a.Lerp(b, w[1]/s)
	}
	out := ab.Lerp(c, w[2])
	out.X, out.Y = p.X, p.Y

	return out, true
}
