package config

import "sort"

var Presets = map[string]*Config{
	"simple": {
		Integrator: "semi_implicit_euler", Dt: 0.005, Duration: 10.0,
		Links: []LinkConfig{{Length: 1, Mass: 1, Theta: 0.5}},
	},
	"large": {
		Integrator: "rk4", Dt: 0.01, Duration: 20.0,
		Links: []LinkConfig{{Length: 1, Mass: 1, Theta: 2.5}},
	},
	"spinning": {
		Integrator: "rk4", Dt: 0.005, Duration: 20.0,
		Links: []LinkConfig{{Length: 1, Mass: 1, Theta: 0.1, Omega: 8.0}},
	},
	"rod": {
		Integrator: "rk4", Compound: true, Dt: 0.005, Duration: 10.0,
		Links: []LinkConfig{{Length: 1, Mass: 1, Theta: 1.0}},
	},
	"double": {
		Integrator: "rk4", Dt: 0.005, Duration: 30.0,
		Links: []LinkConfig{
			{Length: 1, Mass: 1, Theta: 1.5},
			{Length: 1, Mass: 1, Theta: 1.5},
		},
	},
	"compound_double": {
		Integrator: "rk4", Compound: true, Dt: 0.005, Duration: 30.0,
		Links: []LinkConfig{
			{Length: 1, Mass: 1, Theta: 1.5},
			{Length: 1, Mass: 1, Theta: 1.5},
		},
	},
	"chaos": {
		Integrator: "rk4", Dt: 0.002, Duration: 60.0,
		Links: []LinkConfig{
			{Length: 1, Mass: 1, Theta: 3.0},
			{Length: 1, Mass: 1, Theta: 3.0},
		},
	},
	"balance": {
		Integrator: "rk4", Controller: "pid", Dt: 0.005, Duration: 10.0,
		Links:            []LinkConfig{{Length: 1, Mass: 1, Theta: 0.8}},
		ControllerParams: ControllerConfig{Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd},
	},
}

// GetPreset returns a copy of the named preset with its name filled in, or
// nil if there is no such preset.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := cfg.Clone()
	c.Name = name
	if c.Controller == "" {
		c.Controller = "none"
	}
	return c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
