package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// Component is one named energy term in joules.
type Component struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TotalComponent names the grand total closing an energy breakdown.
const TotalComponent = "total"

// EnergyBreakdown reports, per link in order, kinetic, potential and (for
// rods) rotational energy, followed by the total. Potential energy is
// measured from the pivot height, so a link hanging straight down has
// negative potential energy.
func (p *Pendulum) EnergyBreakdown() []Component {
	return p.breakdown(p.thetas, p.omegas)
}

// TotalEnergy is the sum of all breakdown terms. It is a diagnostic only.
func (p *Pendulum) TotalEnergy() float64 {
	return p.total(p.thetas, p.omegas)
}

// Energy evaluates the total energy at a snapshot; it implements
// dynamo.Hamiltonian. A snapshot of the wrong size has no energy and yields
// NaN.
func (p *Pendulum) Energy(x dynamo.State) float64 {
	if len(x) != p.StateDim() {
		return math.NaN()
	}
	return p.total(x.Positions(), x.Velocities())
}

// ComponentNames lists the breakdown labels in report order.
func (p *Pendulum) ComponentNames() []string {
	terms := p.terms(p.thetas, p.omegas)
	names := make([]string, 0, len(terms)+1)
	for _, c := range terms {
		names = append(names, c.Name)
	}
	return append(names, TotalComponent)
}

func (p *Pendulum) breakdown(thetas, omegas []float64) []Component {
	terms := p.terms(thetas, omegas)
	values := make([]float64, len(terms))
	for i, c := range terms {
		values[i] = c.Value
	}
	return append(terms, Component{Name: TotalComponent, Value: floats.Sum(values)})
}

func (p *Pendulum) total(thetas, omegas []float64) float64 {
	terms := p.terms(thetas, omegas)
	values := make([]float64, len(terms))
	for i, c := range terms {
		values[i] = c.Value
	}
	return floats.Sum(values)
}

func (p *Pendulum) terms(thetas, omegas []float64) []Component {
	coms := p.centersOfMass(thetas)
	vels := p.velocities(thetas, omegas)

	perLink := 2
	if p.body.spins() {
		perLink = 3
	}
	out := make([]Component, 0, perLink*len(thetas))
	for i := range thetas {
		m := p.masses[i]
		out = append(out,
			Component{Name: fmt.Sprintf("kinetic_%d", i+1), Value: 0.5 * m * r2.Norm2(vels[i])},
			Component{Name: fmt.Sprintf("potential_%d", i+1), Value: m * p.gravity * coms[i].Y},
		)
		if p.body.spins() {
			out = append(out, Component{
				Name:  fmt.Sprintf("rotational_%d", i+1),
				Value: p.body.RotationalEnergy(m, p.lengths[i], omegas[i]),
			})
		}
	}
	return out
}
