package reliefgraph

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/voidshard/reliefgraph/internal/voronoi"
)

const (
	// size of node markers & the offset of their shadow
	markerSize   = 12
	markerShadow = 2

	// offset of the darker strip along the north west of the sea
	oceanShadow = 2
)

var (
	oceanColor       = color.RGBA{R: 30, G: 150, B: 255, A: 255}
	oceanShadowColor = color.RGBA{R: 15, G: 120, B: 240, A: 255}
)

// ComputePreviewLabels labels each pixel of a width x height raster with the
// index of the nearest node. Nodes are in canvas units, each raster pixel
// spanning pixelScale of them. Labels are row-major.
// Without nodes, or with any node off in NaN / infinity, the result is empty.
func ComputePreviewLabels(width, height int, pixelScale float64, nodes []Node) []float64 {
	return PreviewLabels(width, height, pixelScale, nodes).Float64s()
}

// PreviewLabels is ComputePreviewLabels, but keeps the label raster.
func PreviewLabels(width, height int, pixelScale float64, nodes []Node) *Labels {
	vb := voronoi.NewBuilder(width, height, pixelScale, 0)
	vb.SetCandidateFilters(voronoi.Finite())

	for _, n := range nodes {
		vb.AddSite(n.X, n.Y)
	}
	if vb.Rejected() > 0 {
		return &Labels{}
	}

	return vb.Voronoi()
}

// NewNodeAt returns a node at canvas (x, y) that takes its attributes from
// the node owning that spot. With no owner it's land of default erodibility.
func NewNodeAt(labels *Labels, nodes []Node, x, y, pixelScale float64, cfg *Config) Node {
	n := Node{X: x, Y: y, Erodibility: cfg.DefaultErodibility()}

	i := labels.NodeAt(x, y, pixelScale)
	if i >= 0 && i < len(nodes) {
		n.Erodibility = nodes[i].Erodibility
		n.IsOcean = nodes[i].IsOcean
	}

	return n
}

// PreviewImage draws labels as an editor would; sea in blue, land gray by
// erodibility & a marker for each node. Each label covers pixelScale x
// pixelScale pixels. The node at index selected (if any) is marked in red.
func PreviewImage(labels *Labels, nodes []Node, pixelScale int, selected int) *image.RGBA {
	if pixelScale < 1 {
		pixelScale = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, labels.W*pixelScale, labels.H*pixelScale))
	for y := 0; y < labels.H; y++ {
		for x := 0; x < labels.W; x++ {
			c := labelColor(labels, nodes, x, y)
			for k := 0; k < pixelScale; k++ {
				for l := 0; l < pixelScale; l++ {
					img.SetRGBA(x*pixelScale+k, y*pixelScale+l, c)
				}
			}
		}
	}

	dc := gg.NewContextForRGBA(img)
	for i, n := range nodes {
		if i == selected {
			continue
		}
		drawMarker(dc, n, colornames.Black)
	}
	if selected >= 0 && selected < len(nodes) {
		drawMarker(dc, nodes[selected], color.RGBA{R: 255, G: 51, B: 51, A: 255})
	}

	return img
}

// labelColor returns the colour of label (x, y)
func labelColor(labels *Labels, nodes []Node, x, y int) color.RGBA {
	i := labels.At(x, y)
	if i < 0 || i >= len(nodes) {
		return color.RGBA{A: 255}
	}

	n := nodes[i]
	if !n.IsOcean {
		v := uint8(math.Max(0, math.Min(255, math.Floor(120*n.Erodibility)+125)))
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}

	if x < oceanShadow || y < oceanShadow {
		return oceanShadowColor
	}
	j := labels.At(x-oceanShadow, y-oceanShadow)
	if j >= 0 && j < len(nodes) && !nodes[j].IsOcean {
		return oceanShadowColor
	}
	return oceanColor
}

// drawMarker draws a square centred on the node with a faint drop shadow
func drawMarker(dc *gg.Context, n Node, c color.Color) {
	half := float64(markerSize) / 2

	dc.SetRGBA(0, 0, 0, 2.0/15)
	dc.DrawRectangle(n.X-half+markerShadow, n.Y-half+markerShadow, markerSize, markerSize)
	dc.Fill()

	dc.SetColor(c)
	dc.DrawRectangle(n.X-half, n.Y-half, markerSize, markerSize)
	dc.Fill()
}
