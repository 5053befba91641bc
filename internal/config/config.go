package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pendsim/internal/control"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
)

const (
	DefaultDt       = 0.005
	DefaultDuration = 10.0
	DefaultLength   = 1.0
	DefaultMass     = 1.0
	DefaultTheta    = 0.5
	DefaultKp       = 20.0
	DefaultKi       = 0.5
	DefaultKd       = 4.0
)

type Config struct {
	Name             string           `yaml:"name,omitempty"`
	Integrator       string           `yaml:"integrator"`
	Compound         bool             `yaml:"compound"`
	Gravity          *float64         `yaml:"gravity,omitempty"`
	Links            []LinkConfig     `yaml:"links"`
	Dt               float64          `yaml:"dt"`
	Duration         float64          `yaml:"duration"`
	Controller       string           `yaml:"controller"`
	ControllerParams ControllerConfig `yaml:"controller_params"`
}

// LinkConfig describes one link, pivot first. Angles are radians from the
// downward vertical.
type LinkConfig struct {
	Length float64 `yaml:"length"`
	Mass   float64 `yaml:"mass"`
	Theta  float64 `yaml:"theta"`
	Omega  float64 `yaml:"omega"`
}

type ControllerConfig struct {
	Torque float64 `yaml:"torque"`
	Kp     float64 `yaml:"kp"`
	Ki     float64 `yaml:"ki"`
	Kd     float64 `yaml:"kd"`
	Target float64 `yaml:"target"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: integrators.SemiImplicitEuler.String(),
		Controller: "none",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Links: []LinkConfig{
			{Length: DefaultLength, Mass: DefaultMass, Theta: DefaultTheta},
		},
		ControllerParams: ControllerConfig{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Links = append([]LinkConfig(nil), c.Links...)
	if c.Gravity != nil {
		g := *c.Gravity
		cp.Gravity = &g
	}
	return &cp
}

// Validate checks the run settings. Link values are checked by
// physics.New when the pendulum is built.
func (c *Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %v", dynamo.ErrParameterBounds, c.Dt)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %v", dynamo.ErrParameterBounds, c.Duration)
	}
	if len(c.Links) == 0 {
		return fmt.Errorf("%w: no links", dynamo.ErrValidation)
	}
	if _, err := c.Method(); err != nil {
		return err
	}
	if _, err := c.NewController(); err != nil {
		return err
	}
	return nil
}

// Method resolves the integrator name. An empty name selects the default.
func (c *Config) Method() (integrators.Method, error) {
	if c.Integrator == "" {
		return integrators.SemiImplicitEuler, nil
	}
	m, err := integrators.ParseMethod(c.Integrator)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", dynamo.ErrValidation, err)
	}
	return m, nil
}

// Params converts the link list into pendulum construction parameters.
func (c *Config) Params() (physics.Params, error) {
	m, err := c.Method()
	if err != nil {
		return physics.Params{}, err
	}
	p := physics.Params{
		Method:   m,
		Compound: c.Compound,
		Gravity:  c.Gravity,
	}
	for _, l := range c.Links {
		p.Lengths = append(p.Lengths, l.Length)
		p.Masses = append(p.Masses, l.Mass)
		p.Thetas = append(p.Thetas, l.Theta)
		p.Omegas = append(p.Omegas, l.Omega)
	}
	return p, nil
}

// EffectiveGravity is the configured gravity, or StandardGravity when none
// is set.
func (c *Config) EffectiveGravity() float64 {
	if c.Gravity == nil {
		return physics.StandardGravity
	}
	return *c.Gravity
}

// NewPendulum builds the configured pendulum.
func (c *Config) NewPendulum() (*physics.Pendulum, error) {
	p, err := c.Params()
	if err != nil {
		return nil, err
	}
	return physics.New(p)
}

func (c *Config) ControllerSettings() control.Settings {
	return control.Settings{
		Torque: c.ControllerParams.Torque,
		Kp:     c.ControllerParams.Kp,
		Ki:     c.ControllerParams.Ki,
		Kd:     c.ControllerParams.Kd,
		Target: c.ControllerParams.Target,
	}
}

func (c *Config) NewController() (dynamo.Controller, error) {
	return control.New(c.Controller, len(c.Links), c.ControllerSettings())
}
