package ramp

import (
	"image/color"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// ErrBadStops implies the stops don't run strictly upwards from 0 to 1
var ErrBadStops = errors.New("ramp stops must rise strictly from 0 to 1")

// Stop is a colour at a position on the ramp
type Stop struct {
	Color color.RGBA
	At    float64
}

// Ramp maps [0,1] onto colours, blending linearly between stops.
type Ramp struct {
	stops []Stop
}

// New ramp from the given stops. There must be at least two, the first at 0,
// the last at 1 & each strictly after the last.
func New(stops ...Stop) (*Ramp, error) {
	if len(stops) < 2 || stops[0].At != 0 || stops[len(stops)-1].At != 1 {
		return nil, ErrBadStops
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].At <= stops[i-1].At {
			return nil, errors.Wrapf(ErrBadStops, "stop %d at %f follows %f", i, stops[i].At, stops[i-1].At)
		}
	}
	return &Ramp{stops: append([]Stop(nil), stops...)}, nil
}

// Stops returns a copy of the ramp stops
func (r *Ramp) Stops() []Stop {
	return append([]Stop(nil), r.stops...)
}

// Lookup the colour at v. Values off either end take the end colour.
// Channels are blended independently & truncated.
func (r *Ramp) Lookup(v float64) color.RGBA {
	first, last := r.stops[0], r.stops[len(r.stops)-1]
	if !(v > first.At) { // NaN too
		return first.Color
	}
	if v >= last.At {
		return last.Color
	}

	for i := 1; i < len(r.stops); i++ {
		b := r.stops[i]
		if v > b.At {
			continue
		}
		a := r.stops[i-1]
		t := (v - a.At) / (b.At - a.At)
		return color.RGBA{
			R: blend(a.Color.R, b.Color.R, t),
			G: blend(a.Color.G, b.Color.G, t),
			B: blend(a.Color.B, b.Color.B, t),
			A: 255,
		}
	}

	return last.Color
}

func blend(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Terrain is the relief palette; sea, beach, lowland grass up through to dark forest
func Terrain() *Ramp {
	return &Ramp{stops: []Stop{
		{Color: rgb(50, 130, 200), At: 0},
		{Color: rgb(240, 240, 210), At: 0.005},
		{Color: rgb(190, 200, 120), At: 0.05},
		{Color: rgb(180, 200, 80), At: 0.2},
		{Color: rgb(25, 100, 25), At: 0.75},
		{Color: rgb(15, 60, 15), At: 1},
	}}
}

// Grayscale runs black to white
func Grayscale() *Ramp {
	return &Ramp{stops: []Stop{
		{Color: colornames.Black, At: 0},
		{Color: colornames.White, At: 1},
	}}
}
