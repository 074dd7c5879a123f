package ant

import (
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/goant/environment"
)

// Directions the ant can be asked to run in
const (
	Backward int = -1
	Forward  int = 1
)

// Direction implements the target-direction ant task family. On each
// step the ant receives a reward composed of a control cost, a contact
// cost, a survival bonus, and a reward equal to its velocity in the
// target direction: running forward when the target direction is +1,
// backward when it is -1. Tasks are generated by sampling target
// directions from a Bernoulli distribution on {-1, +1} with parameter
// 0.5.
//
// Episodes are ended when a timestep limit is reached, when any value
// in the underlying state is NaN or ±Inf, or when the torso height
// leaves [0.2, 1.0].
//
// This task family follows "Model-Agnostic Meta-Learning for Fast
// Adaptation of Deep Networks", Finn, Abbeel, Levine, 2017
// (https://arxiv.org/abs/1703.03400).
type Direction struct {
	base

	task    environment.TaskParam
	goalDir int

	goalRng distuv.Bernoulli
}

// NewDirection returns a new Direction task with the argument initial
// task record, which may be nil to use the default target direction of
// Forward. The task must be registered with an Ant environment by
// ant.New before use.
func NewDirection(task environment.TaskParam, seed uint64,
	cutoff int) environment.Task {
	d := &Direction{
		base: newBase(seed, cutoff, math.Inf(-1), math.Inf(1)),
		goalRng: distuv.Bernoulli{
			P:   0.5,
			Src: rand.NewSource(seed),
		},
	}
	d.ResetTask(task)

	return d
}

// GetReward returns the reward for a state, action, next state
// transition, reading the torso velocity and contact forces from the
// registered environment after the transition.
func (d *Direction) GetReward(state, action, nextState mat.Vector) float64 {
	if !d.registered {
		panic("getReward: no registered Ant environment to get reward of")
	}

	forwardReward := directionReward(d.goalDir, d.env.forwardVelocity())
	ctrlCost := d.env.controlCost(action)
	contactCost := d.env.contactCost()

	d.setInfo("reward_forward", forwardReward, ctrlCost, contactCost, d.task)

	return forwardReward - ctrlCost - contactCost + surviveReward
}

// SampleTasks draws n target directions as independent Bernoulli(0.5)
// trials mapped onto {-1, +1}, returning one task record per draw
func (d *Direction) SampleTasks(n int) []environment.TaskParam {
	tasks := make([]environment.TaskParam, n)
	for i := range tasks {
		tasks[i] = DirectionTask{Direction: 2*int(d.goalRng.Rand()) - 1}
	}
	return tasks
}

// ResetTask replaces the active task record and recomputes the target
// direction. A record that is not a DirectionTask falls back to the
// default target direction of Forward.
func (d *Direction) ResetTask(task environment.TaskParam) {
	d.task = task
	if t, ok := task.(DirectionTask); ok {
		d.goalDir = t.Direction
	} else {
		d.goalDir = Forward
	}
}

// CurrentTask returns the active task record
func (d *Direction) CurrentTask() environment.TaskParam {
	return d.task
}
