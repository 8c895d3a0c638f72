package lem

import (
	"container/heap"
	"math"

	"github.com/voidshard/reliefgraph/internal/mesh"
)

// floodItem is a site waiting to be drained, lowest first & then in the
// order they were found.
type floodItem struct {
	altitude float64
	seq      int
	site     int
}

type floodQueue []floodItem

func (q floodQueue) Len() int { return len(q) }

func (q floodQueue) Less(i, j int) bool {
	if q[i].altitude != q[j].altitude {
		return q[i].altitude < q[j].altitude
	}
	return q[i].seq < q[j].seq
}

func (q floodQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *floodQueue) Push(x interface{}) { *q = append(*q, x.(floodItem)) }

func (q *floodQueue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// solver holds the drainage network between iterations
type solver struct {
	mesh    *mesh.Mesh
	outlets []int

	receiver []int
	order    []int // sites, downstream first
	area     []float64
	reached  []bool
	queue    floodQueue
}

func newSolver(m *mesh.Mesh, outlets []int) *solver {
	n := len(m.Points())
	s := &solver{
		mesh:     m,
		outlets:  outlets,
		receiver: make([]int, n),
		order:    make([]int, 0, n),
		area:     make([]float64, n),
		reached:  make([]bool, n),
	}
	return s
}

// route works out where each site drains to by flooding up from the outlets.
// Depressions are filled; a site is never lower than its receiver for routing.
func (s *solver) route(altitude []float64) {
	for i := range s.reached {
		s.reached[i] = false
		s.receiver[i] = -1
	}
	s.order = s.order[:0]
	s.queue = s.queue[:0]

	seq := 0
	for _, o := range s.outlets {
		if s.reached[o] {
			continue
		}
		s.reached[o] = true
		s.receiver[o] = o
		heap.Push(&s.queue, floodItem{altitude: altitude[o], seq: seq, site: o})
		seq++
	}

	for s.queue.Len() > 0 {
		it := heap.Pop(&s.queue).(floodItem)
		s.order = append(s.order, it.site)

		for _, nb := range s.mesh.Neighbours(it.site) {
			if s.reached[nb] {
				continue
			}
			s.reached[nb] = true
			s.receiver[nb] = it.site
			heap.Push(&s.queue, floodItem{altitude: math.Max(altitude[nb], it.altitude), seq: seq, site: nb})
			seq++
		}
	}
}

// accumulate drainage area, each site passing its total to its receiver
func (s *solver) accumulate() {
	for _, i := range s.order {
		s.area[i] = s.mesh.CellArea(i)
	}
	for k := len(s.order) - 1; k >= 0; k-- {
		i := s.order[k]
		if r := s.receiver[i]; r != i {
			s.area[r] += s.area[i]
		}
	}
}

// solve the steady state stream power law from the outlets upstream
func (s *solver) solve(altitude []float64, attrs []Attributes, p Params) {
	pts := s.mesh.Points()
	for _, i := range s.order {
		r := s.receiver[i]
		if r == i {
			altitude[i] = attrs[i].BaseAltitude
			continue
		}

		k := math.Max(attrs[i].Erodibility, minErodibility)
		slope := math.Pow(attrs[i].UpliftRate/(k*math.Pow(s.area[i], p.M)), 1/p.N)
		d := math.Hypot(pts[i].X-pts[r].X, pts[i].Y-pts[r].Y)
		altitude[i] = altitude[r] + slope*d
	}
}
