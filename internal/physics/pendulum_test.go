package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
)

func single(theta, omega float64, m integrators.Method) physics.Params {
	return physics.Params{
		Lengths: []float64{1},
		Masses:  []float64{2},
		Thetas:  []float64{theta},
		Omegas:  []float64{omega},
		Method:  m,
	}
}

func double(compound bool, m integrators.Method) physics.Params {
	return physics.Params{
		Lengths:  []float64{1, 1},
		Masses:   []float64{1, 2},
		Thetas:   []float64{1.0, 0.5},
		Omegas:   []float64{0, 0},
		Method:   m,
		Compound: compound,
	}
}

func ptr(v float64) *float64 { return &v }

func mustNew(p physics.Params) *physics.Pendulum {
	pd, err := physics.New(p)
	Expect(err).NotTo(HaveOccurred())
	return pd
}

var _ = Describe("Pendulum construction", func() {
	DescribeTable("rejects invalid input",
		func(p physics.Params) {
			_, err := physics.New(p)
			Expect(err).To(MatchError(dynamo.ErrValidation))
		},
		Entry("mismatched lengths and masses", physics.Params{
			Lengths: []float64{1, 1}, Masses: []float64{1},
			Thetas: []float64{0, 0}, Omegas: []float64{0, 0},
		}),
		Entry("mismatched omegas", physics.Params{
			Lengths: []float64{1}, Masses: []float64{1},
			Thetas: []float64{0}, Omegas: []float64{0, 0},
		}),
		Entry("empty chain", physics.Params{}),
		Entry("zero length", physics.Params{
			Lengths: []float64{0}, Masses: []float64{1},
			Thetas: []float64{0}, Omegas: []float64{0},
		}),
		Entry("negative mass", physics.Params{
			Lengths: []float64{1}, Masses: []float64{-1},
			Thetas: []float64{0}, Omegas: []float64{0},
		}),
		Entry("NaN angle", physics.Params{
			Lengths: []float64{1}, Masses: []float64{1},
			Thetas: []float64{math.NaN()}, Omegas: []float64{0},
		}),
		Entry("negative gravity", physics.Params{
			Lengths: []float64{1}, Masses: []float64{1},
			Thetas: []float64{0}, Omegas: []float64{0}, Gravity: ptr(-1),
		}),
		Entry("unknown method", physics.Params{
			Lengths: []float64{1}, Masses: []float64{1},
			Thetas: []float64{0}, Omegas: []float64{0}, Method: integrators.Method(9),
		}),
	)

	It("defaults to semi-implicit Euler and standard gravity", func() {
		p := mustNew(physics.Params{
			Lengths: []float64{1}, Masses: []float64{1},
			Thetas: []float64{0}, Omegas: []float64{0},
		})
		Expect(p.Method()).To(Equal(integrators.SemiImplicitEuler))
		Expect(p.Gravity()).To(Equal(physics.StandardGravity))
		Expect(p.Time()).To(BeZero())
		Expect(p.Dimension()).To(Equal(1))
		Expect(p.Compound()).To(BeFalse())
	})

	It("accepts zero gravity", func() {
		params := single(0.4, 0, integrators.SemiImplicitEuler)
		params.Gravity = ptr(0)
		p := mustNew(params)
		Expect(p.Gravity()).To(BeZero())

		Expect(p.Step(0.01, nil)).To(Succeed())
		Expect(p.Thetas()).To(Equal([]float64{0.4}))
		Expect(p.Omegas()).To(Equal([]float64{0}))
		Expect(*p.Params().Gravity).To(BeZero())
	})

	It("copies its input slices", func() {
		params := single(0.3, 0, integrators.SemiImplicitEuler)
		p := mustNew(params)
		params.Thetas[0] = 2
		Expect(p.Thetas()).To(Equal([]float64{0.3}))

		thetas := p.Thetas()
		thetas[0] = 5
		Expect(p.Thetas()).To(Equal([]float64{0.3}))
	})

	It("accepts three links and fails on the first step", func() {
		p := mustNew(physics.Params{
			Lengths: []float64{1, 1, 1}, Masses: []float64{1, 1, 1},
			Thetas: []float64{0.1, 0.2, 0.3}, Omegas: []float64{0, 0, 0},
		})
		err := p.Step(0.01, nil)
		Expect(err).To(MatchError(dynamo.ErrUnsupportedDimension))

		var de *dynamo.DimensionError
		Expect(err).To(BeAssignableToTypeOf(de))
		Expect(p.Thetas()).To(Equal([]float64{0.1, 0.2, 0.3}))
		Expect(p.Time()).To(BeZero())
	})

	It("rebuilds an equivalent pendulum from Params", func() {
		p := mustNew(double(true, integrators.RungeKutta4))
		Expect(p.Step(0.01, nil)).To(Succeed())

		q := mustNew(p.Params())
		Expect(q.State()).To(Equal(p.State()))
		Expect(q.Compound()).To(BeTrue())
		Expect(q.Method()).To(Equal(integrators.RungeKutta4))
		Expect(q.Time()).To(BeZero())
	})
})

var _ = Describe("Radii", func() {
	It("sizes a point bulb as a sphere of water", func() {
		p := mustNew(single(0, 0, integrators.SemiImplicitEuler))
		want := math.Pow(3*2/(4*math.Pi*999.97), 1.0/3)
		Expect(p.Radii()[0]).To(BeNumerically("~", want, 1e-15))
	})

	It("sizes a rod as a cylinder of water", func() {
		p := mustNew(physics.Params{
			Lengths: []float64{1.2}, Masses: []float64{40},
			Thetas: []float64{0}, Omegas: []float64{0}, Compound: true,
		})
		want := math.Sqrt(40 / (math.Pi * 1.2 * 999.97))
		Expect(p.Radii()[0]).To(BeNumerically("~", want, 1e-15))
	})

	It("adds the last radius to the total length", func() {
		p := mustNew(double(false, integrators.SemiImplicitEuler))
		Expect(p.TotalLength()).To(Equal(2 + p.Radii()[1]))
	})
})
