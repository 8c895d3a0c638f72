package shade

import (
	"context"
	"image"
	"image/color"
	"math"
	"math/rand"
	"runtime"
	"sync/atomic"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/voidshard/reliefgraph/internal/ramp"
)

// ErrBadSize implies the image has no pixels
var ErrBadSize = errors.New("image width and height must be positive")

// Field is anything we can ask for an altitude
type Field interface {
	Altitude(p r2.Point) (float64, bool)
}

// Options for Render
type Options struct {
	Width  int
	Height int

	// area of the field the image covers
	Domain r2.Rect

	// shrinks the sampled area about its centre; 0.1 drops 5% from each side
	Crop float64

	// use a black to white ramp with no shading
	Grayscale bool

	// altitude at the top of the colour ramp
	MaxAltitude float64

	// altitude difference at which shadows reach full strength
	MaxShadowAltitude float64

	// offset (along both axes) of the second altitude sample used for shading
	CompareDistance float64

	// amplitude of the random brightness noise
	Dither float64

	// seeds the dither, rows are seeded Seed+row
	Seed int64

	// rows rendered at once, 0 is runtime.NumCPU()
	Workers int

	// overrides the palette (not used when Grayscale is set)
	Ramp *ramp.Ramp
}

// Stats about a render
type Stats struct {
	Drawn   int
	Undrawn int
}

// Render the field to an image. Every pixel is opaque; those where the field
// has no altitude (at either sample) are left black.
func Render(ctx context.Context, f Field, opts *Options) (*image.RGBA, *Stats, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, nil, ErrBadSize
	}

	pal := opts.Ramp
	if pal == nil {
		pal = ramp.Terrain()
	}
	if opts.Grayscale {
		pal = ramp.Grayscale()
	}

	area := sampledArea(opts.Domain, opts.Crop)
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var drawn int64

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for y := 0; y < opts.Height; y++ {
		y := y
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return err
			}
			n := renderRow(img, y, f, pal, area, opts)
			atomic.AddInt64(&drawn, int64(n))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	total := opts.Width * opts.Height
	return img, &Stats{Drawn: int(drawn), Undrawn: total - int(drawn)}, nil
}

// renderRow draws row y, returning how many pixels were drawn
func renderRow(img *image.RGBA, y int, f Field, pal *ramp.Ramp, area r2.Rect, opts *Options) int {
	rng := rand.New(rand.NewSource(opts.Seed + int64(y)))
	size := area.Size()
	sy := area.Lo().Y + size.Y*float64(y)/float64(opts.Height)

	drawn := 0
	for x := 0; x < opts.Width; x++ {
		site := r2.Point{X: area.Lo().X + size.X*float64(x)/float64(opts.Width), Y: sy}

		alt, ok := f.Altitude(site)
		if !ok {
			continue
		}
		alt2, ok := f.Altitude(site.Add(r2.Point{X: opts.CompareDistance, Y: opts.CompareDistance}))
		if !ok {
			continue
		}

		prop := alt / opts.MaxAltitude
		base := pal.Lookup(prop)

		if opts.Grayscale {
			img.SetRGBA(x, y, base)
		} else {
			b := brightness(alt, alt2, prop, opts.MaxShadowAltitude) + opts.Dither*rng.Float64()
			img.SetRGBA(x, y, color.RGBA{
				R: scale(base.R, b),
				G: scale(base.G, b),
				B: scale(base.B, b),
				A: 255,
			})
		}
		drawn++
	}

	return drawn
}

// brightness darkens slopes facing away from the comparison sample, less so
// at low altitude (water).
func brightness(alt, alt2, prop, maxShadow float64) float64 {
	shadow := math.Min(1, math.Atan((alt-alt2)/maxShadow)/(math.Pi/2))
	return 1 - shadow*(prop*0.8+0.2)
}

// scale a channel by b, clamped to a byte
func scale(c uint8, b float64) uint8 {
	v := float64(c) * b
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// sampledArea shrinks the domain towards its centre by crop
func sampledArea(domain r2.Rect, crop float64) r2.Rect {
	if crop <= 0 {
		return domain
	}
	return r2.RectFromCenterSize(domain.Center(), domain.Size().Mul(1-crop))
}
