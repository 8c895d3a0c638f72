package reliefgraph

import (
	"github.com/voidshard/reliefgraph/internal/lem"
)

// StreamPowerModel is the default ElevationModel; a steady state landscape
// where uplift is balanced by river erosion.
type StreamPowerModel struct {
	// exponents of drainage area (M) & slope (N)
	M float64
	N float64

	// routing passes; rivers re-route over the land built by the last pass
	Iterations int
}

// NewStreamPowerModel returns a model using the given config's parameters
func NewStreamPowerModel(cfg *Config) *StreamPowerModel {
	return &StreamPowerModel{
		M:          cfg.StreamPowerM,
		N:          cfg.StreamPowerN,
		Iterations: cfg.ModelIterations,
	}
}

// Build implements ElevationModel
func (s *StreamPowerModel) Build(in *ModelInput) (ElevationField, error) {
	attrs := make([]lem.Attributes, len(in.Attributes))
	for i, a := range in.Attributes {
		attrs[i] = lem.Attributes{
			BaseAltitude: a.BaseAltitude,
			UpliftRate:   a.UpliftRate,
			Erodibility:  a.Erodibility,
		}
	}

	f, err := lem.Build(&lem.Input{
		Sites:      in.Sites,
		Attributes: attrs,
		Domain:     in.Domain,
		Outlets:    in.Outlets,
		Params:     lem.Params{M: s.M, N: s.N, Iterations: s.Iterations},
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}
