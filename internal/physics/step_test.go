package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
)

const (
	dt    = 0.005
	steps = 2000
)

// mgl is the potential energy scale of the 2 kg, 1 m bulb used below.
const mgl = 2 * g * 1

var allMethods = []integrators.Method{
	integrators.ForwardEuler,
	integrators.SemiImplicitEuler,
	integrators.RungeKutta4,
}

func maxDrift(p *physics.Pendulum, n int) float64 {
	e0 := p.TotalEnergy()
	worst := 0.0
	for i := 0; i < n; i++ {
		Expect(p.Step(dt, nil)).To(Succeed())
		worst = math.Max(worst, math.Abs(p.TotalEnergy()-e0))
	}
	return worst
}

var _ = Describe("Stepping", func() {
	It("matches the closed-form first semi-implicit step", func() {
		p := mustNew(single(math.Pi/2, 0, integrators.SemiImplicitEuler))
		Expect(p.Step(dt, nil)).To(Succeed())

		omega := -9.81 * dt
		Expect(omega).To(BeNumerically("~", -0.04905, 1e-15))
		Expect(p.Omegas()[0]).To(BeNumerically("~", omega, 1e-15))
		Expect(p.Thetas()[0]).To(BeNumerically("~", math.Pi/2+omega*dt, 1e-15))
		Expect(p.Thetas()[0]).To(BeNumerically("~", 1.570551, 1e-6))
		Expect(p.Time()).To(Equal(dt))
	})

	It("keeps semi-implicit Euler energy within a bounded band", func() {
		p := mustNew(single(math.Pi/2, 0, integrators.SemiImplicitEuler))
		Expect(maxDrift(p, steps)).To(BeNumerically("<=", 0.01*mgl))
		Expect(p.Time()).To(BeNumerically("~", 10, 1e-9))
	})

	It("lets forward Euler gain energy steadily", func() {
		symplectic := maxDrift(mustNew(single(math.Pi/2, 0, integrators.SemiImplicitEuler)), steps)

		p := mustNew(single(math.Pi/2, 0, integrators.ForwardEuler))
		e0 := p.TotalEnergy()
		last := e0
		for i := 1; i <= steps; i++ {
			Expect(p.Step(dt, nil)).To(Succeed())
			if i%100 == 0 {
				e := p.TotalEnergy()
				Expect(e).To(BeNumerically(">", last))
				last = e
			}
		}
		Expect(last - e0).To(BeNumerically(">", symplectic))
	})

	It("keeps RK4 drift negligible", func() {
		p := mustNew(single(math.Pi/2, 0, integrators.RungeKutta4))
		Expect(maxDrift(p, steps)).To(BeNumerically("<", 1e-5*mgl))
	})

	DescribeTable("conserves double pendulum energy with RK4",
		func(compound bool) {
			p := mustNew(double(compound, integrators.RungeKutta4))
			e0 := p.TotalEnergy()
			for i := 0; i < 2000; i++ {
				Expect(p.Step(0.001, nil)).To(Succeed())
			}
			Expect(p.TotalEnergy()).To(BeNumerically("~", e0, 1e-5))
		},
		Entry("bulbs", false),
		Entry("rods", true),
	)

	DescribeTable("is deterministic",
		func(m integrators.Method, compound bool) {
			a := mustNew(double(compound, m))
			b := mustNew(double(compound, m))
			for i := 0; i < 500; i++ {
				u := dynamo.Control{math.Sin(float64(i) * 0.1)}
				step := 0.001 + 0.0001*float64(i%7)
				Expect(a.Step(step, u)).To(Succeed())
				Expect(b.Step(step, u)).To(Succeed())
				Expect(a.State()).To(Equal(b.State()))
				Expect(a.Time()).To(Equal(b.Time()))
			}
		},
		Entry("forward Euler", integrators.ForwardEuler, false),
		Entry("semi-implicit Euler", integrators.SemiImplicitEuler, false),
		Entry("RK4 bulbs", integrators.RungeKutta4, false),
		Entry("RK4 rods", integrators.RungeKutta4, true),
	)

	It("treats a zero step as a no-op", func() {
		for _, m := range allMethods {
			p := mustNew(double(false, m))
			Expect(p.Step(0.01, nil)).To(Succeed())
			before, t0 := p.State(), p.Time()
			Expect(p.Step(0, dynamo.Control{2})).To(Succeed())
			Expect(p.State()).To(Equal(before))
			Expect(p.Time()).To(Equal(t0))
		}
	})

	It("rejects negative and non-finite steps without mutating", func() {
		p := mustNew(single(0.5, 0, integrators.SemiImplicitEuler))
		for _, bad := range []float64{-0.01, math.NaN(), math.Inf(1)} {
			Expect(p.Step(bad, nil)).To(MatchError(dynamo.ErrParameterBounds))
		}
		Expect(p.Thetas()).To(Equal([]float64{0.5}))
		Expect(p.Time()).To(BeZero())
	})

	It("refuses to commit a diverged state", func() {
		p := mustNew(single(0.5, 1e308, integrators.ForwardEuler))
		Expect(p.Step(1e10, nil)).To(MatchError(dynamo.ErrUnstable))
		Expect(p.Omegas()).To(Equal([]float64{1e308}))
		Expect(p.Time()).To(BeZero())
	})

	It("drives a single link with torque", func() {
		free := mustNew(single(0, 0, integrators.RungeKutta4))
		forced := mustNew(single(0, 0, integrators.RungeKutta4))
		for i := 0; i < 100; i++ {
			Expect(free.Step(0.01, nil)).To(Succeed())
			Expect(forced.Step(0.01, dynamo.Control{1})).To(Succeed())
		}
		Expect(free.Thetas()[0]).To(BeNumerically("~", 0, 1e-12))
		Expect(forced.Thetas()[0]).To(BeNumerically(">", 0))
	})
})
