package control

import (
	"sync"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Manual passes a torque set from outside the simulation loop. The live view
// nudges it from the keyboard while the ticker goroutine reads it.
type Manual struct {
	mu   sync.Mutex
	tau  float64
	step float64
	max  float64
}

// NewManual returns a manual source that moves by step per Nudge and is
// clamped to [-max, max]. A non-positive max disables clamping.
func NewManual(step, max float64) *Manual {
	return &Manual{step: step, max: max}
}

func (m *Manual) Set(tau float64) {
	m.mu.Lock()
	m.tau = m.clamp(tau)
	m.mu.Unlock()
}

// Nudge moves the torque by dir steps.
func (m *Manual) Nudge(dir float64) {
	m.mu.Lock()
	m.tau = m.clamp(m.tau + dir*m.step)
	m.mu.Unlock()
}

func (m *Manual) Torque() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tau
}

func (m *Manual) Compute(x dynamo.State, t float64) dynamo.Control {
	tau := m.Torque()
	if tau == 0 {
		return nil
	}
	return dynamo.Control{tau}
}

func (m *Manual) clamp(tau float64) float64 {
	if m.max <= 0 {
		return tau
	}
	if tau > m.max {
		return m.max
	}
	if tau < -m.max {
		return -m.max
	}
	return tau
}
