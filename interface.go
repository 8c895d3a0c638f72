package reliefgraph

import (
	"github.com/golang/geo/r2"
)

// ElevationField is a landscape we can ask for altitudes.
// Altitude returns false for sites it doesn't cover; that isn't an error,
// such areas simply aren't drawn.
// Implementations must be safe for concurrent use; rendering asks from
// many goroutines at once.
type ElevationField interface {
	Altitude(site r2.Point) (float64, bool)
}

// ElevationModel turns attributed sites into an ElevationField.
// Build should fail (rather than panic) if the sites are degenerate.
type ElevationModel interface {
	Build(in *ModelInput) (ElevationField, error)
}

// Interpolator answers the blended Node at p, false outside of the
// area covered by the nodes it was built from (ie. their convex hull).
type Interpolator interface {
	Interpolate(p r2.Point) (Node, bool)
}

// InterpolatorBuilder prepares an Interpolator over a set of nodes.
type InterpolatorBuilder interface {
	Build(nodes []Node) (Interpolator, error)
}
