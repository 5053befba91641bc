package control

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// PID holds one link at Target. The derivative term acts on the measured
// angular velocity, so changing Target never kicks the output.
type PID struct {
	Kp     float64
	Ki     float64
	Kd     float64
	Target float64
	Link   int
	// MaxIntegral bounds the accumulated error; zero leaves it unbounded.
	MaxIntegral float64

	integral float64
	prevT    float64
	started  bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{Kp: kp, Ki: ki, Kd: kd, Target: target}
}

func (p *PID) Compute(x dynamo.State, t float64) dynamo.Control {
	thetas, omegas := x.Positions(), x.Velocities()
	if p.Link < 0 || p.Link >= len(thetas) {
		return nil
	}

	e := p.Target - thetas[p.Link]
	if p.started && t > p.prevT {
		p.integral += e * (t - p.prevT)
		if p.MaxIntegral > 0 {
			p.integral = math.Max(-p.MaxIntegral, math.Min(p.MaxIntegral, p.integral))
		}
	}
	p.prevT = t
	p.started = true

	return dynamo.Control{p.Kp*e + p.Ki*p.integral - p.Kd*omegas[p.Link]}
}

// Reset clears the accumulated error.
func (p *PID) Reset() {
	p.integral = 0
	p.prevT = 0
	p.started = false
}

// Params returns tunable parameters for live adjustment
func (p *PID) Params() map[string]float64 {
	return map[string]float64{
		"kp":     p.Kp,
		"ki":     p.Ki,
		"kd":     p.Kd,
		"target": p.Target,
	}
}

func (p *PID) SetParam(name string, value float64) {
	switch name {
	case "kp":
		p.Kp = value
	case "ki":
		p.Ki = value
	case "kd":
		p.Kd = value
	case "target":
		p.Target = value
	}
}
