package reliefgraph

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// ErrEmptyRange implies a range whose min & max are the same
var ErrEmptyRange = errors.New("range min and max must differ")

// LoadNodes reads a JSON array of nodes
func LoadNodes(r io.Reader) ([]Node, error) {
	nodes := []Node{}
	err := json.NewDecoder(r).Decode(&nodes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode nodes")
	}
	return nodes, nil
}

// SaveNodes writes nodes as a JSON array
func SaveNodes(w io.Writer, nodes []Node) error {
	if nodes == nil {
		nodes = []Node{}
	}
	return json.NewEncoder(w).Encode(nodes)
}

// RescaleErodibility copies a JSON array of objects from r to w, mapping each
// "erodibility" linearly from [oldMin, oldMax] onto [newMin, newMax]. Values
// outside the old range are extrapolated, not clamped. Other keys are kept as
// they are and objects without erodibility are left alone.
func RescaleErodibility(r io.Reader, w io.Writer, oldMin, oldMax, newMin, newMax float64) error {
	if oldMin == oldMax {
		return errors.Wrapf(ErrEmptyRange, "old range [%f, %f]", oldMin, oldMax)
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()

	items := []map[string]interface{}{}
	err := dec.Decode(&items)
	if err != nil {
		return errors.Wrap(err, "failed to decode nodes")
	}

	for i, item := range items {
		v, ok := item["erodibility"]
		if !ok {
			continue
		}
		num, ok := v.(json.Number)
		if !ok {
			return errors.Wrapf(ErrMalformedInput, "node %d erodibility is %T", i, v)
		}
		e, err := num.Float64()
		if err != nil {
			return errors.Wrapf(ErrMalformedInput, "node %d erodibility %s", i, num)
		}
		item["erodibility"] = newMin + (e-oldMin)/(oldMax-oldMin)*(newMax-newMin)
	}

	return json.NewEncoder(w).Encode(items)
}
