package reliefgraph

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNoNodes implies there are no nodes to copy attributes from
	ErrNoNodes = errors.New("no nodes given")

	// ErrMalformedInput implies nodes with NaN / infinite values, or
	// dimensions that can't describe an image.
	ErrMalformedInput = errors.New("malformed input")

	// ErrModelConstruction implies the interpolator or elevation model could
	// not be built from the sites we gave it (usually too few, or collinear).
	ErrModelConstruction = errors.New("failed to construct model")
)

// ModelError is returned when a model can't be built. It matches
// ErrModelConstruction with errors.Is & unwraps to the cause.
type ModelError struct {
	// Stage is either "interpolation" or "elevation"
	Stage string
	Err   error
}

// Error implements error
func (e *ModelError) Error() string {
	return fmt.Sprintf("%s: %s stage: %v", ErrModelConstruction, e.Stage, e.Err)
}

// Unwrap returns the underlying cause
func (e *ModelError) Unwrap() error {
	return e.Err
}

// Is reports ModelError as ErrModelConstruction
func (e *ModelError) Is(target error) bool {
	return target == ErrModelConstruction
}
