package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
)

var _ = Describe("Geometry", func() {
	var params physics.Params

	BeforeEach(func() {
		params = physics.Params{
			Lengths: []float64{1.0, 0.5},
			Masses:  []float64{1, 1},
			Thetas:  []float64{math.Pi / 2, 0},
			Omegas:  []float64{2, 4},
		}
	})

	It("chains joint positions from the pivot", func() {
		p := mustNew(params)
		joints := p.JointPositions()
		Expect(joints).To(HaveLen(2))
		Expect(joints[0].X).To(BeNumerically("~", 1, 1e-12))
		Expect(joints[0].Y).To(BeNumerically("~", 0, 1e-12))
		Expect(joints[1].X).To(BeNumerically("~", 1, 1e-12))
		Expect(joints[1].Y).To(BeNumerically("~", -0.5, 1e-12))
	})

	It("puts bulb centres of mass on the joints", func() {
		p := mustNew(params)
		Expect(p.CentersOfMass()).To(Equal(p.JointPositions()))
	})

	It("puts rod centres of mass at the midpoints", func() {
		params.Compound = true
		p := mustNew(params)
		coms := p.CentersOfMass()
		Expect(coms[0].X).To(BeNumerically("~", 0.5, 1e-12))
		Expect(coms[0].Y).To(BeNumerically("~", 0, 1e-12))
		Expect(coms[1].X).To(BeNumerically("~", 1, 1e-12))
		Expect(coms[1].Y).To(BeNumerically("~", -0.25, 1e-12))

		// joints do not depend on the body model
		Expect(p.JointPositions()[1].Y).To(BeNumerically("~", -0.5, 1e-12))
	})

	It("accumulates bulb velocities", func() {
		p := mustNew(params)
		v := p.Velocities()
		// link 1: (cos(pi/2)*2, sin(pi/2)*2) = (0, 2)
		Expect(v[0].X).To(BeNumerically("~", 0, 1e-12))
		Expect(v[0].Y).To(BeNumerically("~", 2, 1e-12))
		// link 2 adds (0.5*cos(0)*4, 0) = (2, 0)
		Expect(v[1].X).To(BeNumerically("~", 2, 1e-12))
		Expect(v[1].Y).To(BeNumerically("~", 2, 1e-12))
	})

	It("accumulates rod velocities at the midpoints", func() {
		params.Compound = true
		p := mustNew(params)
		v := p.Velocities()
		Expect(v[0].X).To(BeNumerically("~", 0, 1e-12))
		Expect(v[0].Y).To(BeNumerically("~", 1, 1e-12))
		Expect(v[1].X).To(BeNumerically("~", 1, 1e-12))
		Expect(v[1].Y).To(BeNumerically("~", 2, 1e-12))
	})

	It("follows the committed state after a step", func() {
		params.Method = integrators.RungeKutta4
		p := mustNew(params)
		before := p.JointPositions()
		Expect(p.Step(0.01, nil)).To(Succeed())
		Expect(p.JointPositions()).NotTo(Equal(before))
	})
})

var _ = Describe("Recorded geometry", func() {
	It("matches the live geometry for the current state", func() {
		p := mustNew(double(false, integrators.RungeKutta4))
		Expect(p.Step(0.01, nil)).To(Succeed())
		Expect(p.JointPositionsAt(p.State())).To(Equal(p.JointPositions()))
	})

	It("rejects a state of the wrong size", func() {
		p := mustNew(double(false, integrators.RungeKutta4))
		Expect(p.JointPositionsAt(dynamo.State{1, 2})).To(BeNil())
	})
})
