package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/unixpickle/essentials"
	"go.uber.org/zap"

	"github.com/voidshard/reliefgraph"
	"github.com/voidshard/reliefgraph/internal/voronoi"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  reliefgraph render [flags]")
	fmt.Fprintln(os.Stderr, "  reliefgraph rescale in.json out.json oldMin oldMax newMin newMax")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "render":
		render(os.Args[2:])
	case "rescale":
		rescale(os.Args[2:])
	default:
		usage()
	}
}

func render(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	nodesPath := fs.String("nodes", "", "json file of nodes (image pixel coordinates)")
	cfgPath := fs.String("config", "", "yaml config file (defaults if not given)")
	width := fs.Int("w", 800, "image width")
	height := fs.Int("h", 600, "image height")
	seed := fs.Int64("seed", 0, "random seed")
	samples := fs.Int("samples", 0, "random samples (config default if 0)")
	edge := fs.Int("edge", 0, "boundary nodes per edge (config default if 0)")
	gray := fs.Bool("gray", false, "render grayscale altitude")
	crop := fs.Float64("crop", 0, "crop factor in [0, 1)")
	out := fs.String("out", "terrain.png", "output png")
	preview := fs.String("preview", "", "also write a nearest node preview png")
	scale := fs.Int("scale", 2, "preview pixel scale")
	random := fs.Int("random", 0, "add this many random nodes")
	save := fs.String("save", "", "write the nodes used (random ones included) to this json file")
	verbose := fs.Bool("v", false, "debug logging")
	essentials.Must(fs.Parse(args))

	logger := zap.NewNop()
	if *verbose {
		logger = mustLogger(zap.NewDevelopment())
	}
	defer logger.Sync()

	cfg := reliefgraph.DefaultConfig()
	if *cfgPath != "" {
		var err error
		cfg, err = reliefgraph.LoadConfig(*cfgPath)
		essentials.Must(err)
	}

	nodes := []reliefgraph.Node{}
	if *nodesPath != "" {
		f, err := os.Open(*nodesPath)
		essentials.Must(err)
		nodes, err = reliefgraph.LoadNodes(f)
		f.Close()
		essentials.Must(err)
	}
	if *random > 0 {
		nodes = append(nodes, randomNodes(*width, *height, *random, *seed, cfg)...)
	}
	if *save != "" {
		f, err := os.Create(*save)
		essentials.Must(err)
		essentials.Must(reliefgraph.SaveNodes(f, nodes))
		essentials.Must(f.Close())
	}

	params := cfg.Sampling
	params.Seed = *seed
	params.Grayscale = params.Grayscale || *gray
	if *crop > 0 {
		params.Crop = *crop
	}
	if *samples > 0 {
		params.Samples = *samples
	}
	if *edge > 0 {
		params.EdgeNodes = *edge
	}

	gen, err := reliefgraph.New(cfg, reliefgraph.WithLogger(logger))
	essentials.Must(err)

	if *preview != "" {
		labels := reliefgraph.PreviewLabels(*width / *scale, *height / *scale, float64(*scale), nodes)
		if labels.Empty() {
			fmt.Fprintln(os.Stderr, "no preview: no usable nodes")
		} else {
			essentials.Must(gg.SavePNG(*preview, reliefgraph.PreviewImage(labels, nodes, *scale, -1)))
		}
	}

	img, err := gen.RenderTerrain(context.Background(), *width, *height, params, nodes)
	essentials.Must(err)
	essentials.Must(gg.SavePNG(*out, img))

	fmt.Printf("wrote %s (%dx%d, %d nodes)\n", *out, *width, *height, len(nodes))
}

// randomNodes places count nodes at least a tenth of the smaller image side
// apart, the western third of them sea.
func randomNodes(width, height, count int, seed int64, cfg *reliefgraph.Config) []reliefgraph.Node {
	vb := voronoi.NewBuilder(width, height, 1, seed)
	vb.SetSiteFilters(vb.MinDistance(float64(min(width, height)) / 10))

	nodes := []reliefgraph.Node{}
	for attempts := 0; len(nodes) < count && attempts < count*100; attempts++ {
		x, y, _, ok := vb.AddRandomSite()
		if !ok {
			continue
		}
		t := float64(len(nodes)) / float64(count)
		nodes = append(nodes, reliefgraph.Node{
			X:           x,
			Y:           y,
			Erodibility: cfg.MinErodibility + t*(cfg.MaxErodibility-cfg.MinErodibility),
			IsOcean:     x < float64(width)/3,
		})
	}
	return nodes
}

func rescale(args []string) {
	if len(args) != 6 {
		usage()
	}

	bounds := make([]float64, 4)
	for i, a := range args[2:] {
		v, err := strconv.ParseFloat(a, 64)
		essentials.Must(err)
		bounds[i] = v
	}

	in, err := os.Open(args[0])
	essentials.Must(err)
	defer in.Close()

	out, err := os.Create(args[1])
	essentials.Must(err)
	defer out.Close()

	essentials.Must(reliefgraph.RescaleErodibility(in, out, bounds[0], bounds[1], bounds[2], bounds[3]))
}

func mustLogger(l *zap.Logger, err error) *zap.Logger {
	essentials.Must(err)
	return l
}
