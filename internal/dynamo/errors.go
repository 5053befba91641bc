package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrValidation indicates a configuration that cannot describe a pendulum
	// (mismatched per-link arrays, empty chain, non-positive length or mass).
	ErrValidation = errors.New("dynamo: invalid configuration")

	// ErrUnsupportedDimension indicates a chain the dynamics cannot solve.
	ErrUnsupportedDimension = errors.New("dynamo: unsupported dimension")

	// ErrSingularSystem indicates a degenerate equations-of-motion matrix.
	ErrSingularSystem = errors.New("dynamo: singular linear system")

	// ErrUnstable indicates the simulation became numerically unstable.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrDimensionMismatch indicates mismatched state/control dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")
)

// DimensionError reports the link count that was rejected.
type DimensionError struct {
	Dimension int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: %d links (only 1 or 2 are supported)", ErrUnsupportedDimension, e.Dimension)
}

func (e *DimensionError) Unwrap() error {
	return ErrUnsupportedDimension
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
