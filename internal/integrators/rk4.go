package integrators

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// RK4 is the classical four-stage Runge-Kutta scheme. The control is held
// constant across all four stages.
//
// Stage derivatives live in buffers owned by the integrator, so one RK4 must
// not be shared between goroutines.
type RK4 struct {
	k     [4]dynamo.State
	probe dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

// stage evaluates dyn at x + h·prev and stores the slope in dst.
func (r *RK4) stage(dst dynamo.State, dyn dynamo.System, x, prev dynamo.State, u dynamo.Control, t, h float64) error {
	probe := x
	if prev != nil {
		floats.AddScaledTo(r.probe, x, h, prev)
		probe = r.probe
	}
	k, err := dyn.Derive(probe, u, t+h)
	if err != nil {
		return err
	}
	copy(dst, k)
	return nil
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) (dynamo.State, error) {
	n := len(x)
	if len(r.probe) != n {
		for i := range r.k {
			r.k[i] = make(dynamo.State, n)
		}
		r.probe = make(dynamo.State, n)
	}

	half := dt / 2
	if err := r.stage(r.k[0], dyn, x, nil, u, t, 0); err != nil {
		return nil, err
	}
	if err := r.stage(r.k[1], dyn, x, r.k[0], u, t, half); err != nil {
		return nil, err
	}
	if err := r.stage(r.k[2], dyn, x, r.k[1], u, t, half); err != nil {
		return nil, err
	}
	if err := r.stage(r.k[3], dyn, x, r.k[2], u, t, dt); err != nil {
		return nil, err
	}

	next := make(dynamo.State, n)
	sixth := dt / 6
	for i := range next {
		next[i] = x[i] + sixth*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}
	return next, nil
}
