package reliefgraph

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/reliefgraph/internal/voronoi"
)

// Node is a control point placed by a user (or synthesised from them).
// Nodes are values; new ones are derived, existing ones aren't changed.
type Node struct {
	// position, in image pixels on input & domain units once ingested
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// resistance to erosion, see Config.MinErodibility & MaxErodibility
	Erodibility float64 `json:"erodibility"`

	// true if the node is sea; ocean sites drain the landscape
	IsOcean bool `json:"is_ocean"`
}

// Coord returns the node position
func (n Node) Coord() model2d.Coord {
	return model2d.Coord{X: n.X, Y: n.Y}
}

// Site returns the bare node position
func (n Node) Site() r2.Point {
	return r2.Point{X: n.X, Y: n.Y}
}

// Lerp blends n towards o by t. Position & erodibility are linear; the ocean
// flag is taken from whichever node is nearer (n if t < 0.5).
func (n Node) Lerp(o Node, t float64) Node {
	out := Node{
		X:           n.X + (o.X-n.X)*t,
		Y:           n.Y + (o.Y-n.Y)*t,
		Erodibility: n.Erodibility + (o.Erodibility-n.Erodibility)*t,
		IsOcean:     o.IsOcean,
	}
	if t < 0.5 {
		out.IsOcean = n.IsOcean
	}
	return out
}

// finite returns if every number on the node is a real value
func (n Node) finite() bool {
	for _, v := range []float64{n.X, n.Y, n.Erodibility} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SiteAttributes are what the elevation model needs to know about each site
type SiteAttributes struct {
	BaseAltitude float64
	UpliftRate   float64
	Erodibility  float64
}

// ModelInput is handed to an ElevationModel
type ModelInput struct {
	Sites      []r2.Point
	Attributes []SiteAttributes

	// rectangle the model covers
	Domain r2.Rect

	// indexes into Sites that drain out of the model; if empty the
	// model picks for itself
	Outlets []int
}

// Labels is a row-major raster of node indexes, see ComputePreviewLabels
type Labels = voronoi.Labels

// TerrainStats records what happened while building a Terrain
type TerrainStats struct {
	// nodes given by the caller
	Nodes int

	// nodes synthesised along the domain border
	Boundary int

	// random samples kept & dropped (those outside the node hull)
	Samples int
	Dropped int

	// samples flagged as ocean, handed to the model as outlets
	Outlets int

	// pixels given a colour (and not) by the last Render
	Drawn   int
	Undrawn int
}
