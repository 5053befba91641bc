package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
)

// Params is the construction input of a pendulum. All slices are in SI
// units and must share one length, one entry per link.
type Params struct {
	Lengths  []float64
	Masses   []float64
	Thetas   []float64
	Omegas   []float64
	Method   integrators.Method
	Compound bool
	// Gravity overrides StandardGravity when set. Zero is a valid
	// gravity-free environment.
	Gravity *float64
}

// Pendulum is a chain of one or two links pivoted at the origin. Angles are
// measured from the downward vertical. Only the angular state and the clock
// change after construction, and only through Step.
type Pendulum struct {
	lengths []float64
	masses  []float64
	thetas  []float64
	omegas  []float64
	radii   []float64

	method     integrators.Method
	integrator dynamo.Integrator
	body       Body
	gravity    float64
	time       float64
}

// New validates p and builds a pendulum. Chains longer than two links are
// accepted here and rejected by the first dynamics evaluation.
func New(p Params) (*Pendulum, error) {
	n := len(p.Lengths)
	if n == 0 {
		return nil, fmt.Errorf("%w: pendulum needs at least one link", dynamo.ErrValidation)
	}
	if len(p.Masses) != n || len(p.Thetas) != n || len(p.Omegas) != n {
		return nil, fmt.Errorf("%w: per-link arrays differ in length (lengths=%d masses=%d thetas=%d omegas=%d)",
			dynamo.ErrValidation, n, len(p.Masses), len(p.Thetas), len(p.Omegas))
	}
	for i := 0; i < n; i++ {
		if !positive(p.Lengths[i]) {
			return nil, fmt.Errorf("%w: length[%d] must be positive, got %v", dynamo.ErrValidation, i, p.Lengths[i])
		}
		if !positive(p.Masses[i]) {
			return nil, fmt.Errorf("%w: mass[%d] must be positive, got %v", dynamo.ErrValidation, i, p.Masses[i])
		}
		if !finite(p.Thetas[i]) || !finite(p.Omegas[i]) {
			return nil, fmt.Errorf("%w: link %d has a non-finite initial state", dynamo.ErrValidation, i)
		}
	}
	g := StandardGravity
	if p.Gravity != nil {
		g = *p.Gravity
	}
	if g < 0 || math.IsNaN(g) || math.IsInf(g, 0) {
		return nil, fmt.Errorf("%w: gravity must be non-negative, got %v", dynamo.ErrValidation, g)
	}

	integ, err := integrators.New(p.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrValidation, err)
	}

	pd := &Pendulum{
		lengths:    clone(p.Lengths),
		masses:     clone(p.Masses),
		thetas:     clone(p.Thetas),
		omegas:     clone(p.Omegas),
		radii:      make([]float64, n),
		method:     p.Method,
		integrator: integ,
		body:       BodyFor(p.Compound),
		gravity:    g,
	}
	for i := range pd.radii {
		pd.radii[i] = pd.body.Radius(pd.masses[i], pd.lengths[i])
	}
	return pd, nil
}

// Params returns the construction input that reproduces the current state
// with a fresh clock.
func (p *Pendulum) Params() Params {
	g := p.gravity
	return Params{
		Lengths:  clone(p.lengths),
		Masses:   clone(p.masses),
		Thetas:   clone(p.thetas),
		Omegas:   clone(p.omegas),
		Method:   p.method,
		Compound: p.Compound(),
		Gravity:  &g,
	}
}

func (p *Pendulum) Dimension() int { return len(p.lengths) }
func (p *Pendulum) Lengths() []float64 { return clone(p.lengths) }
func (p *Pendulum) Masses() []float64 { return clone(p.masses) }
func (p *Pendulum) Thetas() []float64 { return clone(p.thetas) }
func (p *Pendulum) Omegas() []float64 { return clone(p.omegas) }
func (p *Pendulum) Radii() []float64 { return clone(p.radii) }
func (p *Pendulum) Method() integrators.Method { return p.method }
func (p *Pendulum) Body() Body { return p.body }
func (p *Pendulum) Compound() bool { return p.body == UniformRod }
func (p *Pendulum) Gravity() float64 { return p.gravity }
func (p *Pendulum) Time() float64 { return p.time }
func (p *Pendulum) StateDim() int { return 2 * len(p.lengths) }
func (p *Pendulum) ControlDim() int { return 1 }

// TotalLength is the reach of the chain including the last bulb or rod
// radius. Renderers use it to scale the view.
func (p *Pendulum) TotalLength() float64 {
	sum := 0.0
	for _, l := range p.lengths {
		sum += l
	}
	return sum + p.radii[len(p.radii)-1]
}

// State returns a snapshot [theta.., omega..] of the committed state.
func (p *Pendulum) State() dynamo.State {
	n := len(p.thetas)
	x := make(dynamo.State, 2*n)
	copy(x[:n], p.thetas)
	copy(x[n:], p.omegas)
	return x
}

func clone(s []float64) []float64 {
	c := make([]float64, len(s))
	copy(c, s)
	return c
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}
