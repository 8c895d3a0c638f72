package reliefgraph

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// Resample draws count random points inside the domain & interpolates a node
// at each. Points the interpolator can't answer for are dropped, so fewer
// than count nodes may be returned.
func Resample(interp Interpolator, domain r2.Rect, count int, rng *rand.Rand) []Node {
	lo, size := domain.Lo(), domain.Size()

	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		x := lo.X + rng.Float64()*size.X
		y := lo.Y + rng.Float64()*size.Y

		n, ok := interp.Interpolate(r2.Point{X: x, Y: y})
		if !ok {
			continue
		}
		out = append(out, Node{X: x, Y: y, Erodibility: n.Erodibility, IsOcean: n.IsOcean})
	}

	return out
}
