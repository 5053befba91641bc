package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
)

// LyapunovExponent estimates the largest Lyapunov exponent of p's free
// motion using the trajectory separation method. A positive value indicates
// chaos.
//
// Algorithm:
// 1. Run the current state and a copy with the first angle nudged
// 2. After every step measure their distance and rescale it back to d0
// 3. λ ≈ Σ ln(d_i/d0) / t
func LyapunovExponent(p *physics.Pendulum, perturbation, dt, duration float64) (float64, error) {
	if !(perturbation > 0) || !(dt > 0) || !(duration > 0) {
		return 0, fmt.Errorf("%w: perturbation, dt and duration must be positive", dynamo.ErrParameterBounds)
	}
	integ, err := integrators.New(p.Method())
	if err != nil {
		return 0, err
	}

	x := p.State()
	xp := x.Clone()
	xp[0] += perturbation
	d0 := perturbation

	t := p.Time()
	sumLog := 0.0
	steps := int(duration/dt + 1e-9)

	for i := 0; i < steps; i++ {
		if x, err = integ.Step(p, x, nil, t, dt); err != nil {
			return 0, err
		}
		if xp, err = integ.Step(p, xp, nil, t, dt); err != nil {
			return 0, err
		}
		t += dt

		sep := xp.Sub(x).Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for j := range xp {
			xp[j] = x[j] + (xp[j]-x[j])*scale
		}
	}

	if steps == 0 {
		return 0, nil
	}
	return sumLog / (float64(steps) * dt), nil
}

// GrowthRate fits ln(sep) = a + λt by least squares over the samples of a
// separation series taken every dt seconds, stopping at the first sample
// that reaches saturation. Zero samples are skipped. It returns 0 when
// fewer than two samples qualify.
func GrowthRate(seps []float64, dt, saturation float64) float64 {
	ts := make([]float64, 0, len(seps))
	logs := make([]float64, 0, len(seps))
	for i, s := range seps {
		if saturation > 0 && s >= saturation {
			break
		}
		if s <= 0 || math.IsNaN(s) {
			continue
		}
		ts = append(ts, float64(i)*dt)
		logs = append(logs, math.Log(s))
	}
	if len(ts) < 2 {
		return 0
	}
	_, lambda := stat.LinearRegression(ts, logs, nil, false)
	return lambda
}
