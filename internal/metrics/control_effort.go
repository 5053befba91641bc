package metrics

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// ControlEffort is the mean absolute pivot torque over all observed steps.
// Steps without a torque count as zero effort.
type ControlEffort struct {
	name  string
	total float64
	peak  float64
	steps int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{name: "control_effort"}
}

func (c *ControlEffort) Name() string { return c.name }

func (c *ControlEffort) Observe(x dynamo.State, u dynamo.Control, t float64) {
	c.steps++
	tau, ok := u.Torque()
	if !ok {
		return
	}
	c.total += math.Abs(tau)
	c.peak = math.Max(c.peak, math.Abs(tau))
}

func (c *ControlEffort) Value() float64 {
	if c.steps == 0 {
		return 0
	}
	return c.total / float64(c.steps)
}

// Peak is the largest absolute torque seen.
func (c *ControlEffort) Peak() float64 { return c.peak }

func (c *ControlEffort) Reset() {
	c.total, c.peak, c.steps = 0, 0, 0
}
