package physics

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// AngularAccelerations solves the equations of motion at the given angles
// and angular velocities. It reads only the pendulum's immutable parameters,
// so it may be evaluated at trial states. The first entry of u, if any, is
// the external generalized torque.
func (p *Pendulum) AngularAccelerations(thetas, omegas []float64, u dynamo.Control) ([]float64, error) {
	n := len(p.lengths)
	if len(thetas) != n || len(omegas) != n {
		return nil, dynamo.ErrDimensionMismatch
	}
	tau, hasTorque := u.Torque()

	switch n {
	case 1:
		alpha := p.body.singleAlpha(p.gravity, p.lengths[0], thetas[0])
		if hasTorque {
			alpha += tau / p.body.PivotInertia(p.masses[0], p.lengths[0])
		}
		return []float64{alpha}, nil
	case 2:
		a, b := p.body.doubleSystem(linkPair{
			l1: p.lengths[0], l2: p.lengths[1],
			m1: p.masses[0], m2: p.masses[1],
			t1: thetas[0], t2: thetas[1],
			w1: omegas[0], w2: omegas[1],
			g:         p.gravity,
			torque:    tau,
			hasTorque: hasTorque,
		})
		return solve2(a, b)
	default:
		return nil, &dynamo.DimensionError{Dimension: n}
	}
}

// Derive implements dynamo.System over [theta.., omega..] snapshots.
func (p *Pendulum) Derive(x dynamo.State, u dynamo.Control, t float64) (dynamo.State, error) {
	if len(x) != p.StateDim() {
		return nil, dynamo.ErrDimensionMismatch
	}
	alphas, err := p.AngularAccelerations(x.Positions(), x.Velocities(), u)
	if err != nil {
		return nil, err
	}
	n := len(alphas)
	dx := make(dynamo.State, 2*n)
	copy(dx[:n], x.Velocities())
	copy(dx[n:], alphas)
	return dx, nil
}

// solve2 solves a 2x2 system by Cramer's rule.
func solve2(a [2][2]float64, b [2]float64) ([]float64, error) {
	det := a[0][0]*a[1][1] - a[0][1]*a[1][0]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return nil, dynamo.ErrSingularSystem
	}
	x0 := (b[0]*a[1][1] - a[0][1]*b[1]) / det
	x1 := (a[0][0]*b[1] - b[0]*a[1][0]) / det
	return []float64{x0, x1}, nil
}
