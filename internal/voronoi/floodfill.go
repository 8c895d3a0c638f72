package voronoi

import (
	"container/heap"
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/unixpickle/model3d/model2d"
)

// frontier is a pixel proposed as reachable from a site, along with the
// squared domain distance between the site and the pixel.
type frontier struct {
	px, py int
	site   int
	sqdist float64
}

// frontierQueue is a min-heap of frontier items, nearest first.
// Equal distances fall back to the lower site index so the result does not
// depend on heap internals.
type frontierQueue []frontier

func (q frontierQueue) Len() int { return len(q) }

func (q frontierQueue) Less(i, j int) bool {
	if q[i].sqdist == q[j].sqdist {
		return q[i].site < q[j].site
	}
	return q[i].sqdist < q[j].sqdist
}

func (q frontierQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontierQueue) Push(x interface{}) { *q = append(*q, x.(frontier)) }

func (q *frontierQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// FloodFill labels every pixel of a width x height raster with the index of
// its (approximately) nearest site.
//
// Each site starts at the pixel nearest its position. The globally nearest
// frontier item is settled first and pushes its four neighbours, measuring
// true Euclidean distance from the site to the neighbour's domain position
// (pixel * scale). A pixel is written exactly once; later claims are dropped.
func FloodFill(width, height int, scale float64, sites []model2d.Coord) *Labels {
	if len(sites) == 0 || width <= 0 || height <= 0 || !(scale > 0) {
		return &Labels{}
	}

	labels := newLabels(width, height)
	visited := bitmap.New(width * height)

	queue := make(frontierQueue, 0, len(sites)*4)
	for i, s := range sites {
		queue = append(queue, frontier{
			px:   nearestPixel(s.X, scale, width),
			py:   nearestPixel(s.Y, scale, height),
			site: i,
		})
	}
	heap.Init(&queue)

	neighbours := [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

	for queue.Len() > 0 {
		item := heap.Pop(&queue).(frontier)

		idx := labels.Index(item.px, item.py)
		if visited.Get(idx) {
			continue // superseded claim
		}
		visited.Set(idx, true)
		labels.data[idx] = item.site

		site := sites[item.site]
		for _, d := range neighbours {
			nx, ny := item.px+d[0], item.py+d[1]
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			if visited.Get(labels.Index(nx, ny)) {
				continue
			}
			dx := float64(nx)*scale - site.X
			dy := float64(ny)*scale - site.Y
			heap.Push(&queue, frontier{px: nx, py: ny, site: item.site, sqdist: dx*dx + dy*dy})
		}
	}

	return labels
}

// nearestPixel converts a domain coordinate to the nearest pixel index along
// one axis, clamped to the raster.
func nearestPixel(v, scale float64, size int) int {
	p := int(math.Round(v / scale))
	if p < 0 {
		return 0
	}
	if p >= size {
		return size - 1
	}
	return p
}
