package control

import (
	"fmt"
	"sort"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Settings configures the torque source built by New. Fields a source does
// not use are ignored.
type Settings struct {
	Torque float64
	Kp     float64
	Ki     float64
	Kd     float64
	Target float64
}

// DefaultManualStep is the torque change per key press in the live view.
const DefaultManualStep = 0.5

var factories = map[string]func(dim int, s Settings) dynamo.Controller{
	"none": func(int, Settings) dynamo.Controller { return NewNone() },
	"constant": func(_ int, s Settings) dynamo.Controller {
		return NewConstant(s.Torque)
	},
	"manual": func(int, Settings) dynamo.Controller {
		return NewManual(DefaultManualStep, 0)
	},
	"pid": func(_ int, s Settings) dynamo.Controller {
		return NewPID(s.Kp, s.Ki, s.Kd, s.Target)
	},
	"lqr": func(dim int, _ Settings) dynamo.Controller {
		if dim == 2 {
			return NewDoubleLQR()
		}
		return NewSingleLQR()
	},
}

// New builds the named torque source for a chain of dim links. An empty
// name selects "none".
func New(name string, dim int, s Settings) (dynamo.Controller, error) {
	if name == "" {
		name = "none"
	}
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown controller %q", dynamo.ErrValidation, name)
	}
	return f(dim, s), nil
}

// Names lists the controller names accepted by New.
func Names() []string {
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
