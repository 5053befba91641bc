package physics

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendsim/internal/dynamo"
)

var _ = Describe("2x2 solver", func() {
	It("solves a regular system", func() {
		x, err := solve2([2][2]float64{{2, 1}, {1, 3}}, [2]float64{3, 5})
		Expect(err).NotTo(HaveOccurred())
		Expect(x[0]).To(BeNumerically("~", 0.8, 1e-12))
		Expect(x[1]).To(BeNumerically("~", 1.4, 1e-12))
	})

	DescribeTable("rejects degenerate matrices",
		func(a [2][2]float64) {
			x, err := solve2(a, [2]float64{1, 1})
			Expect(err).To(MatchError(dynamo.ErrSingularSystem))
			Expect(x).To(BeNil())
		},
		Entry("singular", [2][2]float64{{1, 2}, {2, 4}}),
		Entry("zero", [2][2]float64{}),
		Entry("NaN entry", [2][2]float64{{math.NaN(), 0}, {0, 1}}),
		Entry("infinite entry", [2][2]float64{{math.Inf(1), 0}, {0, 1}}),
	)
})
