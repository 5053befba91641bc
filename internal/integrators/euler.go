package integrators

import "github.com/san-kum/pendsim/internal/dynamo"

// Euler is the explicit forward Euler scheme: positions advance with the
// old velocities, then velocities with the old accelerations.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t float64, dt float64) (dynamo.State, error) {
	dx, err := dyn.Derive(x, u, t)
	if err != nil {
		return nil, err
	}
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result, nil
}

// Symplectic is semi-implicit Euler: velocities are updated first and
// positions advance with the new velocities. First order, symplectic.
type Symplectic struct{}

func NewSymplectic() *Symplectic {
	return &Symplectic{}
}

func (s *Symplectic) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t float64, dt float64) (dynamo.State, error) {
	n := len(x)
	half := n / 2

	dx, err := dyn.Derive(x, u, t)
	if err != nil {
		return nil, err
	}

	result := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + dx[half+i]*dt
		result[i] = x[i] + result[half+i]*dt
	}
	return result, nil
}
