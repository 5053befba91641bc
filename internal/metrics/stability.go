package metrics

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Stability is the fraction of samples in which every link angle stays
// within threshold radians of hanging straight down. It also counts flips,
// i.e. a link passing over the top of its pivot.
type Stability struct {
	name      string
	threshold float64
	inside    int
	samples   int
	flips     int
	turns     []float64
}

func NewStability(threshold float64) *Stability {
	return &Stability{name: "stability", threshold: threshold}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(x dynamo.State, u dynamo.Control, t float64) {
	thetas := x.Positions()
	if len(s.turns) != len(thetas) {
		s.turns = make([]float64, len(thetas))
		for i, theta := range thetas {
			s.turns[i] = turn(theta)
		}
	}

	s.samples++
	within := true
	for i, theta := range thetas {
		if math.Abs(theta) > s.threshold {
			within = false
		}
		n := turn(theta)
		s.flips += int(math.Abs(n - s.turns[i]))
		s.turns[i] = n
	}
	if within {
		s.inside++
	}
}

// turn numbers the 2π sectors centred on hanging down; it changes whenever
// theta crosses an odd multiple of π.
func turn(theta float64) float64 {
	return math.Floor((theta + math.Pi) / (2 * math.Pi))
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.inside) / float64(s.samples)
}

// Flips is the number of times any link went over the top.
func (s *Stability) Flips() int { return s.flips }

func (s *Stability) Reset() {
	s.inside, s.samples, s.flips = 0, 0, 0
	s.turns = nil
}
