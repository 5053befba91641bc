package sim

import "github.com/san-kum/pendsim/internal/dynamo"

// Config controls a batch run. Duration is in simulated seconds.
type Config struct {
	Dt       float64
	Duration float64
}

// Steps is the number of fixed steps needed to cover Duration.
func (c Config) Steps() int {
	return int(c.Duration/c.Dt + 1e-9)
}

// Result is the recorded trajectory of one run. States and Times include the
// initial snapshot, so they hold StepsTaken+1 entries; Controls holds the
// torque applied over each step.
type Result struct {
	States     []dynamo.State
	Controls   []dynamo.Control
	Times      []float64
	Energies   []float64
	Components []string
	Breakdowns [][]float64
	Metrics    map[string]float64

	// EnergyDrift is |E_final - E_0| / |E_0|, or the absolute change when
	// E_0 is zero.
	EnergyDrift float64
	StepsTaken  int
}

func (r *Result) Final() dynamo.State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

func (r *Result) Duration() float64 {
	if len(r.Times) == 0 {
		return 0
	}
	return r.Times[len(r.Times)-1]
}
