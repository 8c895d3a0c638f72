package mesh

import (
	"math"

	"github.com/fogleman/delaunay"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
)

var (
	// ErrDegenerate implies the points don't span an area; there are fewer
	// than three distinct, non-collinear points.
	ErrDegenerate = errors.New("fewer than three non-collinear points")

	// ErrNotFinite implies a point has a NaN or infinite coordinate.
	ErrNotFinite = errors.New("point coordinates must be finite")
)

// Mesh is a Delaunay triangulation of a point set. Once built it is only
// read, so it is safe to share between goroutines.
type Mesh struct {
	points    []model2d.Coord
	triangles [][3]int
	adjacency [][]int
	area      []float64
	hull      []int
	grid      *bucketGrid
}

// Triangulate builds the Delaunay triangulation of the given points.
// Duplicate points are skipped, they take no part in any triangle.
func Triangulate(points []model2d.Coord) (*Mesh, error) {
	if len(points) < 3 {
		return nil, ErrDegenerate
	}

	min, max := points[0], points[0]
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, ErrNotFinite
		}
		min = model2d.Coord{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y)}
		max = model2d.Coord{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y)}
	}

	// the first of any duplicates stands for all of them
	unique := make([]delaunay.Point, 0, len(points))
	index := make([]int, 0, len(points))
	seen := make(map[model2d.Coord]bool, len(points))
	for i, p := range points {
		if seen[p] {
			continue
		}
		seen[p] = true
		unique = append(unique, delaunay.Point{X: p.X, Y: p.Y})
		index = append(index, i)
	}
	if len(unique) < 3 {
		return nil, ErrDegenerate
	}

	tri, err := delaunay.Triangulate(unique)
	if err != nil {
		return nil, errors.Wrap(ErrDegenerate, err.Error())
	}

	m := build(points, tri.Triangles, tri.Halfedges, index)
	if len(m.triangles) == 0 {
		return nil, ErrDegenerate
	}
	m.grid = newBucketGrid(m.points, m.triangles, min, max)
	return m, nil
}

// build converts a flat triangle & halfedge list (in unique point indices) to
// a Mesh over the given points, deriving adjacency, cell areas and the hull.
// Zero area triangles along a straight hull are dropped.
func build(points []model2d.Coord, triangles, halfedges, index []int) *Mesh {
	n := len(points)
	m := &Mesh{
		points:    points,
		adjacency: make([][]int, n),
		area:      make([]float64, n),
	}

	kept := make([]bool, len(triangles)/3)
	for t := range kept {
		v := [3]int{index[triangles[3*t]], index[triangles[3*t+1]], index[triangles[3*t+2]]}
		a := triangleArea(points[v[0]], points[v[1]], points[v[2]])
		if a == 0 {
			continue
		}
		if a < 0 {
			v[1], v[2] = v[2], v[1]
			a = -a
		}
		kept[t] = true
		m.triangles = append(m.triangles, v)
		for _, i := range v {
			m.area[i] += a / 3
		}
	}

	onHull := make([]bool, n)
	for e := range triangles {
		if !kept[e/3] {
			continue
		}
		u := index[triangles[e]]
		w := index[triangles[nextHalfedge(e)]]
		m.adjacency[u] = appendUnique(m.adjacency[u], w)
		m.adjacency[w] = appendUnique(m.adjacency[w], u)
		if o := halfedges[e]; o < 0 || !kept[o/3] {
			onHull[u] = true
			onHull[w] = true
		}
	}
	for i, h := range onHull {
		if h {
			m.hull = append(m.hull, i)
		}
	}

	return m
}

// nextHalfedge is the following edge around the same triangle
func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

// Points returns the points the mesh was built from, indexed as given.
func (m *Mesh) Points() []model2d.Coord { return m.points }

// Triangles returns vertex index triples, counter-clockwise.
func (m *Mesh) Triangles() [][3]int { return m.triangles }

// Neighbours returns the indices of points sharing an edge with point i.
func (m *Mesh) Neighbours(i int) []int { return m.adjacency[i] }

// Used returns if point i is part of at least one triangle
// (duplicates are not).
func (m *Mesh) Used(i int) bool { return len(m.adjacency[i]) > 0 }

// CellArea returns the area attributed to point i; a third of each incident
// triangle.
func (m *Mesh) CellArea(i int) float64 { return m.area[i] }

// Hull returns the indices of points on the outer border of the mesh.
func (m *Mesh) Hull() []int { return m.hull }

// orient is twice the signed area of (a, b, c); positive if counter-clockwise.
func orient(a, b, c model2d.Coord) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// triangleArea is the signed area of (a, b, c)
func triangleArea(a, b, c model2d.Coord) float64 {
	return orient(a, b, c) / 2
}

// appendUnique adds v to ls if it's not there already
func appendUnique(ls []int, v int) []int {
	for _, x := range ls {
		if x == v {
			return ls
		}
	}
	return append(ls, v)
}
