package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
)

const g = physics.StandardGravity

var _ = Describe("Angular accelerations", func() {
	It("matches the simple pendulum closed form", func() {
		p := mustNew(single(0, 0, integrators.SemiImplicitEuler))
		alpha, err := p.AngularAccelerations([]float64{0.7}, []float64{3}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(alpha[0]).To(BeNumerically("~", -g*math.Sin(0.7), 1e-12))

		alpha, err = p.AngularAccelerations([]float64{math.Pi / 2}, []float64{0}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(alpha[0]).To(Equal(-9.81))
	})

	It("matches the uniform rod closed form", func() {
		p := mustNew(physics.Params{
			Lengths: []float64{1.5}, Masses: []float64{3},
			Thetas: []float64{0}, Omegas: []float64{0}, Compound: true,
		})
		alpha, err := p.AngularAccelerations([]float64{0.4}, []float64{0}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(alpha[0]).To(BeNumerically("~", -(3*g/(2*1.5))*math.Sin(0.4), 1e-12))
	})

	It("applies a single-link torque about the pivot", func() {
		p := mustNew(single(0, 0, integrators.SemiImplicitEuler))
		alpha, err := p.AngularAccelerations([]float64{0}, []float64{0}, dynamo.Control{4})
		Expect(err).NotTo(HaveOccurred())
		Expect(alpha[0]).To(BeNumerically("~", 4.0/2.0, 1e-12))
	})

	It("is at rest at the bottom equilibrium", func() {
		for _, compound := range []bool{false, true} {
			p := mustNew(double(compound, integrators.SemiImplicitEuler))
			alpha, err := p.AngularAccelerations([]float64{0, 0}, []float64{0, 0}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(alpha[0]).To(BeNumerically("~", 0, 1e-12))
			Expect(alpha[1]).To(BeNumerically("~", 0, 1e-12))
		}
	})

	It("solves the double bulb system", func() {
		l1, l2, m1, m2 := 1.0, 1.0, 1.0, 2.0
		t1, t2, w1, w2 := 0.8, -0.3, 1.2, -0.7
		d := t1 - t2

		a00 := (m1 + m2) * l1
		a01 := m2 * l2 * math.Cos(d)
		b0 := -m2*l2*w2*w2*math.Sin(d) - g*(m1+m2)*math.Sin(t1)
		a10 := m2 * l1 * math.Cos(d)
		a11 := m2 * l2
		b1 := m2*l1*l2*w1*w1*math.Sin(d) - l2*m2*g*math.Sin(t2)

		p := mustNew(physics.Params{
			Lengths: []float64{l1, l2}, Masses: []float64{m1, m2},
			Thetas: []float64{0, 0}, Omegas: []float64{0, 0},
		})
		alpha, err := p.AngularAccelerations([]float64{t1, t2}, []float64{w1, w2}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(a00*alpha[0] + a01*alpha[1]).To(BeNumerically("~", b0, 1e-10))
		Expect(a10*alpha[0] + a11*alpha[1]).To(BeNumerically("~", b1, 1e-10))
	})

	It("solves the double rod system", func() {
		l1, l2, m1, m2 := 1.2, 0.8, 3.0, 1.5
		t1, t2, w1, w2 := 0.4, 1.1, -0.5, 2.0
		d := t1 - t2

		a00 := (m1/3 + m2) * l1
		a01 := 0.5 * m2 * l2 * math.Cos(d)
		b0 := -0.5*m2*l2*w2*w2*math.Sin(d) - (m1/2+m2)*g*math.Sin(t1)
		a10 := 0.5 * m2 * l1 * math.Cos(d)
		a11 := (m2 / 3) * l2
		b1 := 0.5*m2*l1*w1*w1*math.Sin(d) - 0.5*m2*g*math.Sin(t2)

		p := mustNew(physics.Params{
			Lengths: []float64{l1, l2}, Masses: []float64{m1, m2},
			Thetas: []float64{0, 0}, Omegas: []float64{0, 0}, Compound: true,
		})
		alpha, err := p.AngularAccelerations([]float64{t1, t2}, []float64{w1, w2}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(a00*alpha[0] + a01*alpha[1]).To(BeNumerically("~", b0, 1e-10))
		Expect(a10*alpha[0] + a11*alpha[1]).To(BeNumerically("~", b1, 1e-10))
	})

	It("forces the double bulb chain but not the double rod chain", func() {
		thetas, omegas := []float64{0.6, 0.1}, []float64{0, 0}

		bulbs := mustNew(double(false, integrators.SemiImplicitEuler))
		free, _ := bulbs.AngularAccelerations(thetas, omegas, nil)
		forced, _ := bulbs.AngularAccelerations(thetas, omegas, dynamo.Control{3})
		Expect(forced).NotTo(Equal(free))

		rods := mustNew(double(true, integrators.SemiImplicitEuler))
		free, _ = rods.AngularAccelerations(thetas, omegas, nil)
		forced, _ = rods.AngularAccelerations(thetas, omegas, dynamo.Control{3})
		Expect(forced).To(Equal(free))
	})

	It("is antisymmetric under mirroring", func() {
		p := mustNew(double(false, integrators.SemiImplicitEuler))
		a, _ := p.AngularAccelerations([]float64{0.1, 0.1}, []float64{0, 0}, nil)
		b, _ := p.AngularAccelerations([]float64{-0.1, -0.1}, []float64{0, 0}, nil)
		Expect(a[0] + b[0]).To(BeNumerically("~", 0, 1e-12))
		Expect(a[1] + b[1]).To(BeNumerically("~", 0, 1e-12))
	})

	It("does not touch the committed state", func() {
		p := mustNew(double(false, integrators.SemiImplicitEuler))
		before := p.State()
		_, err := p.AngularAccelerations([]float64{2, -2}, []float64{1, 1}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.State()).To(Equal(before))
	})

	It("rejects snapshots of the wrong size", func() {
		p := mustNew(double(false, integrators.SemiImplicitEuler))
		_, err := p.AngularAccelerations([]float64{0}, []float64{0}, nil)
		Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
		_, err = p.Derive(dynamo.State{0, 0}, nil, 0)
		Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
	})

	It("reports unsupported dimensions", func() {
		p := mustNew(physics.Params{
			Lengths: []float64{1, 1, 1}, Masses: []float64{1, 1, 1},
			Thetas: []float64{0, 0, 0}, Omegas: []float64{0, 0, 0},
		})
		_, err := p.AngularAccelerations([]float64{0, 0, 0}, []float64{0, 0, 0}, nil)
		Expect(err).To(MatchError(dynamo.ErrUnsupportedDimension))
	})

	It("derives [omega, alpha]", func() {
		p := mustNew(single(0, 0, integrators.SemiImplicitEuler))
		dx, err := p.Derive(dynamo.State{math.Pi / 2, 1.5}, nil, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(dx).To(Equal(dynamo.State{1.5, -9.81}))
	})
})
