package encoding

import (
	"encoding/binary"
	"math"
)

// Float64s are written little-endian, the layout of a Float64Array on every
// host we've come across.

// FromFloat64s turns []float64 into a raw byte buffer, 8 bytes per value
func FromFloat64s(in []float64) []byte {
	buf := make([]byte, 8*len(in))
	for i, v := range in {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}
