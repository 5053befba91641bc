package analysis

import (
	"fmt"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/physics"
)

// Separation advances a and b together by steps free steps of dt and returns
// the state-space distance between them before the first step and after
// each one. Both pendulums are mutated.
func Separation(a, b *physics.Pendulum, dt float64, steps int) ([]float64, error) {
	if a.Dimension() != b.Dimension() {
		return nil, fmt.Errorf("%w: %d and %d links", dynamo.ErrDimensionMismatch, a.Dimension(), b.Dimension())
	}

	seps := make([]float64, 0, steps+1)
	seps = append(seps, a.State().Sub(b.State()).Norm())
	for i := 0; i < steps; i++ {
		if err := a.Step(dt, nil); err != nil {
			return seps, err
		}
		if err := b.Step(dt, nil); err != nil {
			return seps, err
		}
		seps = append(seps, a.State().Sub(b.State()).Norm())
	}
	return seps, nil
}
