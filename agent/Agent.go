// Package agent defines an agent interface
package agent

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/goant/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which adjusts the agent from
// observed transitions, and a Policy which chooses actions in each
// state. The Policy chooses which actions are taken, and the Learner
// uses the resulting transitions to update the Policy.
type Agent interface {
	Learner
	Policy
}

// Closer is an agent that must be closed after it is done acting
type Closer interface {
	Agent
	Close() error
}

// Learner implements how an agent is updated from the transitions it
// observes
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action lead to some timestep
	Observe(action mat.Vector, nextObs timestep.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy chooses actions in each state
type Policy interface {
	SelectAction(t timestep.TimeStep) *mat.VecDense
}
