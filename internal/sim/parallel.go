package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Factory builds the simulator for ensemble member idx. Every member must
// own its pendulum, controller and metrics.
type Factory func(idx int) (*Simulator, error)

// Ensemble runs independent simulators concurrently, one goroutine each.
type Ensemble struct {
	factory Factory
	numRuns int
}

func NewEnsemble(factory Factory, numRuns int) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns}
}

// Run returns one result per member, in member order. The first failure
// cancels the remaining members.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	sims := make([]*Simulator, e.numRuns)
	for i := range sims {
		s, err := e.factory(i)
		if err != nil {
			return nil, fmt.Errorf("ensemble member %d: %w", i, err)
		}
		sims[i] = s
	}

	results := make([]*Result, e.numRuns)
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range sims {
		g.Go(func() error {
			res, err := s.Run(gctx, cfg)
			if err != nil {
				return fmt.Errorf("ensemble member %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
