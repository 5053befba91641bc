package control

import "github.com/san-kum/pendsim/internal/dynamo"

// None applies no torque.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Compute(x dynamo.State, t float64) dynamo.Control {
	return nil
}

// Constant applies the same torque at every step.
type Constant struct {
	Tau float64
}

func NewConstant(tau float64) *Constant {
	return &Constant{Tau: tau}
}

func (c *Constant) Compute(x dynamo.State, t float64) dynamo.Control {
	return dynamo.Control{c.Tau}
}
