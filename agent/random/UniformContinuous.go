// Package random implements agents that select actions at random
package random

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/samuelfneumann/goant/agent"
	"github.com/samuelfneumann/goant/environment"
	ts "github.com/samuelfneumann/goant/timestep"
)

// UniformContinuous is an agent that selects actions uniformly at
// random from a bounded continuous action space. It never learns, so
// all Learner methods are no-ops. It is useful for generating rollouts
// and as a baseline.
type UniformContinuous struct {
	dims int
	rng  *distmv.Uniform
}

// NewUniformContinuous returns a new UniformContinuous agent acting
// in env, which must have a bounded continuous action space
func NewUniformContinuous(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	spec := env.ActionSpec()
	if spec.Cardinality != environment.Continuous {
		return nil, fmt.Errorf("newUniformContinuous: action space " +
			"should be continuous")
	}

	bounds := make([]r1.Interval, spec.Shape.Len())
	for i := range bounds {
		bounds[i] = r1.Interval{
			Min: spec.LowerBound.AtVec(i),
			Max: spec.UpperBound.AtVec(i),
		}
	}

	return &UniformContinuous{
		dims: len(bounds),
		rng:  distmv.NewUniform(bounds, rand.NewSource(seed)),
	}, nil
}

// SelectAction samples an action uniformly from the action bounds
func (u *UniformContinuous) SelectAction(t ts.TimeStep) *mat.VecDense {
	return mat.NewVecDense(u.dims, u.rng.Rand(nil))
}

// Step performs a single update to the agent. UniformContinuous does
// not learn, so this is a no-op.
func (u *UniformContinuous) Step() error { return nil }

// Observe records that an action lead to some timestep
func (u *UniformContinuous) Observe(_ mat.Vector, _ ts.TimeStep) error {
	return nil
}

// ObserveFirst records the first timestep in an episode
func (u *UniformContinuous) ObserveFirst(_ ts.TimeStep) error { return nil }

// EndEpisode performs cleanup at the end of an episode
func (u *UniformContinuous) EndEpisode() {}
