package dynamo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// State is a flat generalized state vector. Pendulum states are laid out as
// [theta_0 .. theta_n-1, omega_0 .. omega_n-1].
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Norm is the Euclidean length of s.
func (s State) Norm() float64 {
	return floats.Norm(s, 2)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// Positions returns the first half of a [q.., qdot..] state.
func (s State) Positions() []float64 {
	return s[:len(s)/2]
}

// Velocities returns the second half of a [q.., qdot..] state.
func (s State) Velocities() []float64 {
	return s[len(s)/2:]
}

// Control carries the external generalized torque. An empty control means
// no torque is applied.
type Control []float64

// Torque returns the first control entry and whether one was supplied.
func (u Control) Torque() (float64, bool) {
	if len(u) == 0 {
		return 0, false
	}
	return u[0], true
}

// System is a second-order system whose Derive returns [qdot.., qddot..].
// Derive must not retain or mutate x.
type System interface {
	Derive(x State, u Control, t float64) (State, error)
	StateDim() int
	ControlDim() int
}

// Hamiltonian reports the total energy of a state, or NaN when the state
// does not belong to the system.
type Hamiltonian interface {
	Energy(x State) float64
}

// Integrator advances a snapshot by dt and returns a new state. The input
// snapshot is never modified.
type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) (State, error)
}

type Controller interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, t float64)
}
