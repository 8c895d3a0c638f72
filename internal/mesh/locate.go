package mesh

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
)

// baryEpsilon lets points sitting on an edge (within rounding) count as inside.
const baryEpsilon = 1e-9

// bucketGrid indexes triangles by the grid cells their bounding box overlaps
type bucketGrid struct {
	min     model2d.Coord
	cell    float64
	cols    int
	rows    int
	buckets [][]int32
}

// newBucketGrid builds a grid with roughly two triangles per cell
func newBucketGrid(pts []model2d.Coord, tris [][3]int, min, max model2d.Coord) *bucketGrid {
	w := math.Max(max.X-min.X, 1e-12)
	h := math.Max(max.Y-min.Y, 1e-12)

	cells := math.Max(1, float64(len(tris))/2)
	cell := math.Sqrt(w * h / cells)
	if cell <= 0 || math.IsNaN(cell) {
		cell = math.Max(w, h)
	}

	g := &bucketGrid{
		min:  min,
		cell: cell,
		cols: int(w/cell) + 1,
		rows: int(h/cell) + 1,
	}
	g.buckets = make([][]int32, g.cols*g.rows)

	for i, t := range tris {
		a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
		x0, y0 := g.cellOf(math.Min(a.X, math.Min(b.X, c.X)), math.Min(a.Y, math.Min(b.Y, c.Y)))
		x1, y1 := g.cellOf(math.Max(a.X, math.Max(b.X, c.X)), math.Max(a.Y, math.Max(b.Y, c.Y)))
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				k := y*g.cols + x
				g.buckets[k] = append(g.buckets[k], int32(i))
			}
		}
	}

	return g
}

// cellOf returns the grid cell for (x, y), clamped to the grid
func (g *bucketGrid) cellOf(x, y float64) (int, int) {
	cx := int((x - g.min.X) / g.cell)
	cy := int((y - g.min.Y) / g.cell)
	return clampInt(cx, 0, g.cols-1), clampInt(cy, 0, g.rows-1)
}

// Locate finds the triangle containing p, returning its vertex indices and
// the barycentric weight of each vertex. ok is false outside the mesh.
func (m *Mesh) Locate(p model2d.Coord) ([3]int, [3]float64, bool) {
	g := m.grid
	if p.X < g.min.X || p.Y < g.min.Y {
		return [3]int{}, [3]float64{}, false
	}
	cx := int((p.X - g.min.X) / g.cell)
	cy := int((p.Y - g.min.Y) / g.cell)
	if cx >= g.cols || cy >= g.rows {
		return [3]int{}, [3]float64{}, false
	}

	for _, ti := range g.buckets[cy*g.cols+cx] {
		t := m.triangles[ti]
		w, ok := barycentric(m.points[t[0]], m.points[t[1]], m.points[t[2]], p)
		if ok {
			return t, w, true
		}
	}
	return [3]int{}, [3]float64{}, false
}

// Interpolate returns the barycentric blend of per-point values at p.
func (m *Mesh) Interpolate(values []float64, p model2d.Coord) (float64, bool) {
	t, w, ok := m.Locate(p)
	if !ok {
		return 0, false
	}
	return values[t[0]]*w[0] + values[t[1]]*w[1] + values[t[2]]*w[2], true
}

// barycentric weights of p in triangle (a, b, c); false if p is outside.
func barycentric(a, b, c, p model2d.Coord) ([3]float64, bool) {
	d := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if d == 0 {
		return [3]float64{}, false
	}
	w0 := ((b.Y-c.Y)*(p.X-c.X) + (c.X-b.X)*(p.Y-c.Y)) / d
	w1 := ((c.Y-a.Y)*(p.X-c.X) + (a.X-c.X)*(p.Y-c.Y)) / d
	w2 := 1 - w0 - w1
	if w0 < -baryEpsilon || w1 < -baryEpsilon || w2 < -baryEpsilon {
		return [3]float64{}, false
	}

	w0, w1, w2 = math.Max(w0, 0), math.Max(w1, 0), math.Max(w2, 0)
	sum := w0 + w1 + w2
	return [3]float64{w0 / sum, w1 / sum, w2 / sum}, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
