package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/pendsim/internal/control"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/physics"
)

// Simulator drives one pendulum for a fixed number of steps, feeding it
// torque from a controller and recording the trajectory.
type Simulator struct {
	p          *physics.Pendulum
	controller dynamo.Controller
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	log        *slog.Logger
}

// New returns a simulator for p. A nil controller applies no torque.
func New(p *physics.Pendulum, controller dynamo.Controller) *Simulator {
	if controller == nil {
		controller = control.NewNone()
	}
	return &Simulator{
		p:          p,
		controller: controller,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		log:        slog.New(slog.DiscardHandler),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) SetLogger(l *slog.Logger) {
	if l != nil {
		s.log = l
	}
}

func (s *Simulator) Pendulum() *physics.Pendulum { return s.p }

// Run advances the pendulum cfg.Steps() times. A failing step stops the run;
// the partial result is returned together with a *dynamo.SimulationError.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		States:     make([]dynamo.State, 0, steps+1),
		Controls:   make([]dynamo.Control, 0, steps),
		Times:      make([]float64, 0, steps+1),
		Energies:   make([]float64, 0, steps+1),
		Components: s.p.ComponentNames(),
		Breakdowns: make([][]float64, 0, steps+1),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.log.Debug("run started",
		"links", s.p.Dimension(),
		"method", s.p.Method().String(),
		"compound", s.p.Compound(),
		"dt", cfg.Dt,
		"steps", steps,
	)

	s.record(result)
	initialEnergy := result.Energies[0]

	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		x := s.p.State()
		t := s.p.Time()
		u := s.controller.Compute(x, t)

		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, t)
		}

		if err := s.p.Step(cfg.Dt, u); err != nil {
			runErr = &dynamo.SimulationError{Step: i, Time: t, State: x, Wrapped: err}
			s.log.Warn("step failed", "step", i, "t", t, "err", err)
			break
		}

		result.StepsTaken++
		result.Controls = append(result.Controls, u)
		s.record(result)
	}

	finalEnergy := result.Energies[len(result.Energies)-1]
	result.EnergyDrift = math.Abs(finalEnergy - initialEnergy)
	if initialEnergy != 0 {
		result.EnergyDrift /= math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Debug("run finished",
		"steps", result.StepsTaken,
		"t", s.p.Time(),
		"energy_drift", result.EnergyDrift,
	)

	return result, runErr
}

func (s *Simulator) record(r *Result) {
	r.States = append(r.States, s.p.State())
	r.Times = append(r.Times, s.p.Time())

	breakdown := s.p.EnergyBreakdown()
	values := make([]float64, len(breakdown))
	for i, c := range breakdown {
		values[i] = c.Value
	}
	r.Breakdowns = append(r.Breakdowns, values)
	r.Energies = append(r.Energies, values[len(values)-1])
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrParameterBounds, cfg.Duration)
	}
	return nil
}
