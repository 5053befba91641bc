package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
)

func names(cs []physics.Component) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

var _ = Describe("Energy accounting", func() {
	It("orders bulb components per link then the total", func() {
		p := mustNew(double(false, integrators.SemiImplicitEuler))
		Expect(names(p.EnergyBreakdown())).To(Equal([]string{
			"kinetic_1", "potential_1", "kinetic_2", "potential_2", "total",
		}))
		Expect(p.ComponentNames()).To(Equal(names(p.EnergyBreakdown())))
	})

	It("adds a rotational term per rod", func() {
		p := mustNew(double(true, integrators.SemiImplicitEuler))
		Expect(names(p.EnergyBreakdown())).To(Equal([]string{
			"kinetic_1", "potential_1", "rotational_1",
			"kinetic_2", "potential_2", "rotational_2", "total",
		}))
	})

	It("computes a hanging bulb's energy", func() {
		p := mustNew(single(0, 3, integrators.SemiImplicitEuler))
		cs := p.EnergyBreakdown()
		Expect(cs[0].Value).To(BeNumerically("~", 0.5*2*9, 1e-12))
		Expect(cs[1].Value).To(BeNumerically("~", -2*g*1, 1e-12))
		Expect(cs[2].Value).To(BeNumerically("~", 9-2*g, 1e-12))
		Expect(p.TotalEnergy()).To(BeNumerically("~", cs[2].Value, 1e-12))
	})

	It("computes a hanging rod's energy", func() {
		p := mustNew(physics.Params{
			Lengths: []float64{2}, Masses: []float64{3},
			Thetas: []float64{0}, Omegas: []float64{1.5}, Compound: true,
		})
		cs := p.EnergyBreakdown()
		// centre moves at l/2 * omega
		Expect(cs[0].Value).To(BeNumerically("~", 0.5*3*1.5*1.5, 1e-12))
		Expect(cs[1].Value).To(BeNumerically("~", -3*g*1, 1e-12))
		Expect(cs[2].Value).To(BeNumerically("~", 3*4*1.5*1.5/24, 1e-12))
		// sum equals the rod's kinetic energy about the pivot, I*w^2/2 with I = ml^2/3
		Expect(cs[0].Value + cs[2].Value).To(BeNumerically("~", 0.5*(3*4.0/3)*1.5*1.5, 1e-12))
	})

	It("evaluates the same total at a snapshot", func() {
		p := mustNew(double(true, integrators.SemiImplicitEuler))
		Expect(p.Energy(p.State())).To(BeNumerically("~", p.TotalEnergy(), 1e-12))
		Expect(math.IsNaN(p.Energy(nil))).To(BeTrue())
		Expect(math.IsNaN(p.Energy(dynamo.State{0.1, 0.2}))).To(BeTrue())
	})

	It("sums the components into the total", func() {
		p := mustNew(physics.Params{
			Lengths: []float64{1, 0.7}, Masses: []float64{2, 1},
			Thetas: []float64{0.4, -1.1}, Omegas: []float64{0.3, 2.2}, Compound: true,
		})
		cs := p.EnergyBreakdown()
		sum := 0.0
		for _, c := range cs[:len(cs)-1] {
			sum += c.Value
		}
		Expect(cs[len(cs)-1].Name).To(Equal(physics.TotalComponent))
		Expect(cs[len(cs)-1].Value).To(BeNumerically("~", sum, 1e-12))
		Expect(math.IsNaN(p.TotalEnergy())).To(BeFalse())
	})
})
