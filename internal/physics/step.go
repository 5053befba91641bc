package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Step advances the pendulum by dt seconds with the configured scheme. The
// torque in u is held constant over the step. The committed state and clock
// change only if the whole step succeeds.
func (p *Pendulum) Step(dt float64, u dynamo.Control) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt must be a non-negative finite number, got %v", dynamo.ErrParameterBounds, dt)
	}

	next, err := p.integrator.Step(p, p.State(), u, p.time, dt)
	if err != nil {
		return err
	}
	if !next.IsValid() {
		return dynamo.ErrUnstable
	}

	n := len(p.thetas)
	copy(p.thetas, next[:n])
	copy(p.omegas, next[n:])
	p.time += dt
	return nil
}
