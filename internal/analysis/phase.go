package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
)

// PhasePortrait holds (theta, omega) samples of one link.
type PhasePortrait struct {
	Link   int
	Points []r2.Vec
}

// GeneratePhasePortrait integrates a copy of p's state for duration seconds
// and records the angle and angular velocity of the given link after every
// step.
func GeneratePhasePortrait(p *physics.Pendulum, link int, dt, duration float64) (*PhasePortrait, error) {
	if err := checkSpan(dt, duration); err != nil {
		return nil, err
	}
	n := p.Dimension()
	if link < 0 || link >= n {
		return nil, fmt.Errorf("%w: link %d of %d", dynamo.ErrParameterBounds, link, n)
	}

	steps := int(duration/dt + 1e-9)
	portrait := &PhasePortrait{
		Link:   link,
		Points: make([]r2.Vec, 0, steps),
	}

	err := trajectory(p, dt, steps, func(x dynamo.State) {
		portrait.Points = append(portrait.Points, r2.Vec{X: x[link], Y: x[n+link]})
	})
	return portrait, err
}

// PoincareSection holds (theta, omega) of the last link, sampled whenever
// the first link swings through the vertical in the positive direction.
type PoincareSection struct {
	Points []r2.Vec
}

// GeneratePoincareSection integrates a copy of p's state for duration
// seconds and records the last link each time the first angle crosses zero
// going up. Crossings are located by linear interpolation between steps.
func GeneratePoincareSection(p *physics.Pendulum, dt, duration float64) (*PoincareSection, error) {
	if err := checkSpan(dt, duration); err != nil {
		return nil, err
	}
	n := p.Dimension()
	last := n - 1
	section := &PoincareSection{Points: make([]r2.Vec, 0)}

	prev := p.State()
	err := trajectory(p, dt, int(duration/dt+1e-9), func(x dynamo.State) {
		if prev[0] < 0 && x[0] >= 0 {
			frac := -prev[0] / (x[0] - prev[0])
			section.Points = append(section.Points, r2.Vec{
				X: prev[last] + frac*(x[last]-prev[last]),
				Y: prev[n+last] + frac*(x[n+last]-prev[n+last]),
			})
		}
		prev = x
	})
	return section, err
}

func checkSpan(dt, duration float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) || !(duration > 0) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: dt and duration must be positive and finite, got %v and %v",
			dynamo.ErrParameterBounds, dt, duration)
	}
	return nil
}

// trajectory integrates a snapshot of p with its own integrator and hands
// each new state to visit. p is left untouched.
func trajectory(p *physics.Pendulum, dt float64, steps int, visit func(dynamo.State)) error {
	integ, err := integrators.New(p.Method())
	if err != nil {
		return err
	}

	x := p.State()
	t := p.Time()
	for i := 0; i < steps; i++ {
		if x, err = integ.Step(p, x, nil, t, dt); err != nil {
			return err
		}
		if !x.IsValid() {
			return dynamo.ErrUnstable
		}
		t += dt
		visit(x)
	}
	return nil
}
