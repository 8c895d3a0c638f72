package reliefgraph

import (
	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"
)

// SynthesizeBoundary closes off a set of nodes with nodes along the edges of
// the domain; edgeNodes per edge, starting at each corner & working
// anticlockwise. Each boundary node copies its attributes from the nearest of
// the given nodes (the first given, if more than one is equally near).
func SynthesizeBoundary(nodes []Node, domain r2.Rect, edgeNodes int) ([]Node, error) {
	if len(nodes) == 0 {
		return nil, ErrNoNodes
	}

	coords := make([]model2d.Coord, len(nodes))
	first := map[model2d.Coord]int{}
	for i, n := range nodes {
		coords[i] = n.Coord()
		if _, ok := first[coords[i]]; !ok {
			first[coords[i]] = i
		}
	}
	tree := model2d.NewCoordTree(coords)

	pos := boundarySites(domain, edgeNodes)
	out := make([]Node, len(pos))
	for i, p := range pos {
		c := model2d.Coord{X: p.X, Y: p.Y}
		nearest := nodes[nearestIndex(tree, first, coords, c)]
		out[i] = Node{X: p.X, Y: p.Y, Erodibility: nearest.Erodibility, IsOcean: nearest.IsOcean}
	}

	return out, nil
}

// defaultBoundary is the boundary given no nodes at all; plain land
func defaultBoundary(domain r2.Rect, edgeNodes int, erodibility float64) []Node {
	pos := boundarySites(domain, edgeNodes)
	out := make([]Node, len(pos))
	for i, p := range pos {
		out[i] = Node{X: p.X, Y: p.Y, Erodibility: erodibility}
	}
	return out
}

// boundarySites spaces points evenly along each edge of the domain, corners
// first. We always place at least the corners.
func boundarySites(domain r2.Rect, edgeNodes int) []r2.Point {
	if edgeNodes < 1 {
		edgeNodes = 1
	}

	corners := domain.Vertices()
	out := make([]r2.Point, 0, len(corners)*edgeNodes)
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		for j := 0; j < edgeNodes; j++ {
			t := float64(j) / float64(edgeNodes)
			out = append(out, r2.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t})
		}
	}
	return out
}

// nearestIndex returns the index of the node nearest c. The tree answers with
// a coordinate; among equally near coordinates we take the earliest node.
func nearestIndex(tree *model2d.CoordTree, first map[model2d.Coord]int, coords []model2d.Coord, c model2d.Coord) int {
	found := tree.KNN(1, c)
	best := first[found[0]]
	dist := squaredDist(found[0], c)

	for k := 2; k <= len(coords); k++ {
		neighbors := tree.KNN(k, c)
		if len(neighbors) < k {
			break
		}
		for _, n := range neighbors {
			if i := first[n]; i < best && squaredDist(n, c) <= dist {
				best = i
			}
		}
		if squaredDist(neighbors[len(neighbors)-1], c) > dist {
			break
		}
	}
	return best
}

func squaredDist(a, b model2d.Coord) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}
