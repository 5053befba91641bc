package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// JointPositions returns the tip of every link, pivot at the origin and y
// pointing up.
func (p *Pendulum) JointPositions() []r2.Vec {
	return p.accumulate(p.thetas, nil, linkDisplacement, 1)
}

// JointPositionsAt returns the joint positions for a recorded state, or nil
// if x does not belong to a chain of this length.
func (p *Pendulum) JointPositionsAt(x dynamo.State) []r2.Vec {
	if len(x) != p.StateDim() {
		return nil
	}
	return p.accumulate(x.Positions(), nil, linkDisplacement, 1)
}

// CentersOfMass returns each link's centre of mass. For bulbs it matches
// JointPositions; for rods it is the midpoint of each rod.
func (p *Pendulum) CentersOfMass() []r2.Vec {
	return p.centersOfMass(p.thetas)
}

// Velocities returns the linear velocity of each centre of mass, built with
// the same half-step accumulation as CentersOfMass.
func (p *Pendulum) Velocities() []r2.Vec {
	return p.velocities(p.thetas, p.omegas)
}

func (p *Pendulum) centersOfMass(thetas []float64) []r2.Vec {
	return p.accumulate(thetas, nil, linkDisplacement, p.body.COMFraction())
}

func (p *Pendulum) velocities(thetas, omegas []float64) []r2.Vec {
	return p.accumulate(thetas, omegas, linkVelocity, p.body.COMFraction())
}

// accumulate walks the chain: the running sum advances by frac of each
// link's contribution, the point is recorded, then the rest is added.
func (p *Pendulum) accumulate(thetas, omegas []float64, contribution func(l, theta, omega float64) r2.Vec, frac float64) []r2.Vec {
	out := make([]r2.Vec, len(thetas))
	var acc r2.Vec
	for i := range thetas {
		omega := 0.0
		if omegas != nil {
			omega = omegas[i]
		}
		d := contribution(p.lengths[i], thetas[i], omega)
		acc = r2.Add(acc, r2.Scale(frac, d))
		out[i] = acc
		if frac != 1 {
			acc = r2.Add(acc, r2.Scale(1-frac, d))
		}
	}
	return out
}

func linkDisplacement(l, theta, _ float64) r2.Vec {
	return r2.Vec{X: l * math.Sin(theta), Y: -l * math.Cos(theta)}
}

func linkVelocity(l, theta, omega float64) r2.Vec {
	return r2.Vec{X: l * math.Cos(theta) * omega, Y: l * math.Sin(theta) * omega}
}
