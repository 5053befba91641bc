package control

import "github.com/san-kum/pendsim/internal/dynamo"

// LQR is linear state feedback u = -K(x - target) over the flat
// [thetas.., omegas..] state.
type LQR struct {
	K      []float64
	Target dynamo.State
}

func NewLQR(k []float64, target dynamo.State) *LQR {
	return &LQR{K: k, Target: target}
}

func (l *LQR) Compute(x dynamo.State, t float64) dynamo.Control {
	u := 0.0
	for j := range x {
		if j >= len(l.K) {
			break
		}
		target := 0.0
		if j < len(l.Target) {
			target = l.Target[j]
		}
		u -= l.K[j] * (x[j] - target)
	}
	return dynamo.Control{u}
}

var (
	singleGains = []float64{31.62, 10.0}
	doubleGains = []float64{50.0, 15.0, 40.0, 10.0}
)

// NewSingleLQR damps a single link towards hanging at rest.
func NewSingleLQR() *LQR {
	return NewLQR(singleGains, dynamo.State{0, 0})
}

// NewDoubleLQR damps a double link towards hanging at rest.
func NewDoubleLQR() *LQR {
	return NewLQR(doubleGains, dynamo.State{0, 0, 0, 0})
}
