package voronoi

import "math"

// Labels is a row-major raster of site indices produced by FloodFill.
// The zero value is the empty raster.
type Labels struct {
	W, H int
	data []int
}

// newLabels allocates a raster with the given dimensions
func newLabels(w, h int) *Labels {
	return &Labels{W: w, H: h, data: make([]int, w*h)}
}

// Index returns the linear slice index for coordinates (x, y).
func (l *Labels) Index(x, y int) int { return y*l.W + x }

// Empty returns true if the raster holds no cells.
func (l *Labels) Empty() bool { return len(l.data) == 0 }

// Len returns the number of cells.
func (l *Labels) Len() int { return len(l.data) }

// At returns the site index at pixel (x, y) or -1 if out of range.
func (l *Labels) At(x, y int) int {
	if x < 0 || y < 0 || x >= l.W || y >= l.H {
		return -1
	}
	return l.data[l.Index(x, y)]
}

// Float64s returns the labels as real numbers, row-major.
func (l *Labels) Float64s() []float64 {
	out := make([]float64, len(l.data))
	for i, v := range l.data {
		out[i] = float64(v)
	}
	return out
}

// NodeAt returns the site owning the domain coordinate (x, y), where one
// pixel spans `scale` domain units. -1 if the point falls outside the raster.
func (l *Labels) NodeAt(x, y, scale float64) int {
	if l.Empty() || !(scale > 0) {
		return -1
	}
	return l.At(int(math.Floor(x/scale)), int(math.Floor(y/scale)))
}
