package ant

import (
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/goant/environment"
)

// Target velocities are sampled uniformly from this range
const (
	minGoalVelocity float64 = 0.0
	maxGoalVelocity float64 = 3.0
)

// Velocity implements the target-velocity ant task family. On each
// step the ant receives a reward composed of a control cost, a contact
// cost, a survival bonus, and a penalty equal to the absolute
// difference between its forward velocity and the target velocity.
// Tasks are generated by sampling target velocities uniformly from
// [0, 3].
//
// Episodes are ended when a timestep limit is reached, when any value
// in the underlying state is NaN or ±Inf, or when the torso height
// leaves [0.2, 1.0].
//
// This task family follows "Model-Agnostic Meta-Learning for Fast
// Adaptation of Deep Networks", Finn, Abbeel, Levine, 2017
// (https://arxiv.org/abs/1703.03400).
type Velocity struct {
	base

	task    environment.TaskParam
	goalVel float64

	goalRng distuv.Uniform
}

// NewVelocity returns a new Velocity task with the argument initial
// task record, which may be nil to use the default target velocity of
// 0. The task must be registered with an Ant environment by ant.New
// before use.
func NewVelocity(task environment.TaskParam, seed uint64,
	cutoff int) environment.Task {
	v := &Velocity{
		base: newBase(seed, cutoff, math.Inf(-1), 1.0+surviveReward),
		goalRng: distuv.Uniform{
			Min: minGoalVelocity,
			Max: maxGoalVelocity,
			Src: rand.NewSource(seed),
		},
	}
	v.ResetTask(task)

	return v
}

// GetReward returns the reward for a state, action, next state
// transition, reading the torso velocity and contact forces from the
// registered environment after the transition.
func (v *Velocity) GetReward(state, action, nextState mat.Vector) float64 {
	if !v.registered {
		panic("getReward: no registered Ant environment to get reward of")
	}

	forwardReward := velocityReward(v.env.forwardVelocity(), v.goalVel)
	ctrlCost := v.env.controlCost(action)
	contactCost := v.env.contactCost()

	v.setInfo("reward_forward", forwardReward, ctrlCost, contactCost, v.task)

	return forwardReward - ctrlCost - contactCost + surviveReward
}

// SampleTasks draws n target velocities independently and uniformly
// from [0, 3], returning one task record per draw
func (v *Velocity) SampleTasks(n int) []environment.TaskParam {
	tasks := make([]environment.TaskParam, n)
	for i := range tasks {
		tasks[i] = VelocityTask{Velocity: v.goalRng.Rand()}
	}
	return tasks
}

// ResetTask replaces the active task record and recomputes the target
// velocity. A record that is not a VelocityTask falls back to the
// default target velocity of 0.
func (v *Velocity) ResetTask(task environment.TaskParam) {
	v.task = task
	if t, ok := task.(VelocityTask); ok {
		v.goalVel = t.Velocity
	} else {
		v.goalVel = 0.0
	}
}

// CurrentTask returns the active task record
func (v *Velocity) CurrentTask() environment.TaskParam {
	return v.task
}
