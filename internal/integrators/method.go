package integrators

import (
	"fmt"
	"strings"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Method selects the time-stepping scheme. The zero value is
// SemiImplicitEuler.
type Method int

const (
	SemiImplicitEuler Method = iota
	ForwardEuler
	RungeKutta4
)

var methodNames = map[Method]string{
	SemiImplicitEuler: "semi_implicit_euler",
	ForwardEuler:      "euler",
	RungeKutta4:       "rk4",
}

var methodAliases = map[string]Method{
	"":                    SemiImplicitEuler,
	"semi_implicit_euler": SemiImplicitEuler,
	"semi-implicit":       SemiImplicitEuler,
	"symplectic":          SemiImplicitEuler,
	"euler":               ForwardEuler,
	"forward_euler":       ForwardEuler,
	"explicit":            ForwardEuler,
	"rk4":                 RungeKutta4,
	"runge_kutta4":        RungeKutta4,
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

func (m Method) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

// ParseMethod maps a user-facing name to a Method. An empty name selects
// the default scheme.
func ParseMethod(name string) (Method, error) {
	m, ok := methodAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown integrator: %s", name)
	}
	return m, nil
}

// Methods lists the canonical names in declaration order.
func Methods() []string {
	return []string{SemiImplicitEuler.String(), ForwardEuler.String(), RungeKutta4.String()}
}

// New returns a fresh integrator for m. Integrators keep scratch buffers, so
// each simulation should own its own instance.
func New(m Method) (dynamo.Integrator, error) {
	switch m {
	case SemiImplicitEuler:
		return NewSymplectic(), nil
	case ForwardEuler:
		return NewEuler(), nil
	case RungeKutta4:
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %v", m)
	}
}
