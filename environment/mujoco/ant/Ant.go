// Package ant implements the Ant environment, a four-legged MuJoCo
// robot which must locomote along a flat plane. The environment is
// conceptually similar to the Ant-v2 environment of OpenAI Gym
// (https://gym.openai.com/envs/Ant-v2/), but its reward function is
// controlled by a swappable task parameter so that a meta-learning
// outer loop can move one long-lived Ant across many tasks.
//
// Three task families are provided:
//
//	Velocity	match a target forward velocity in [0, 3]
//	Direction	run forward or backward as fast as possible
//	Position	reach a target (x, y) position in [-3, 3]²
//
// State observations are flat vectors consisting of, in order: the
// joint positions, the joint velocities, the external contact forces
// on each body clipped element-wise to [-1, 1], the torso's rotation
// matrix (flattened), and the torso's centre of mass position. No
// normalization is applied beyond the contact-force clip.
//
// Actions are 8-dimensional continuous vectors of joint torques, one
// per hip and ankle actuator.
//
// The Ant struct satisfies the environment.MetaEnvironment interface.
package ant

// * Leaving the cgo directives in so VSCode doesn't complain, even though
// * CGO_CFLAGS and CGO_LDFLAGS have been set.

// #cgo CFLAGS: -O2 -I/home/samuel/.mujoco/mujoco200_linux/include -mavx -pthread
// #cgo LDFLAGS: -L/home/samuel/.mujoco/mujoco200_linux/bin -lmujoco200nogl
// #include "mujoco.h"
import "C"

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/goant/environment"
	"github.com/samuelfneumann/goant/environment/mujoco/internal/mujocoenv"
	ts "github.com/samuelfneumann/goant/timestep"
	"github.com/samuelfneumann/goant/utils/floatutils"
)

// torso is the body whose pose and velocity drive every task's reward
const torso string = "torso"

// Ant implements the base locomotion environment shared by all ant
// task families. It owns the physics simulation exclusively and caches
// the action-scaling vector derived from the actuator control ranges.
type Ant struct {
	*mujocoenv.MujocoEnv
	environment.Task

	// meta is the same value as the embedded Task, seen through the
	// task-swapping capability set
	meta metaTask

	// actionScaling is computed lazily on first use and then held for
	// the life of the instance. Swapping tasks never clears it.
	actionScaling *mat.VecDense

	obsLen          int
	currentTimeStep ts.TimeStep
}

// New returns a new Ant environment running task t. The task must be
// one of the ant meta-tasks (Velocity, Direction, or Position); it is
// registered with the environment so that it can query the simulator
// when computing rewards.
func New(t environment.Task, frameSkip int, seed uint64,
	discount float64) (*Ant, ts.TimeStep, error) {
	if frameSkip < 0 {
		return nil, ts.TimeStep{},
			fmt.Errorf("newAnt: frameSkip should be positive")
	}

	meta, ok := t.(metaTask)
	if !ok {
		return nil, ts.TimeStep{},
			fmt.Errorf("newAnt: task should be an ant meta-task")
	}

	m, err := mujocoenv.NewMujocoEnv("ant.xml", frameSkip, seed, discount)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newAnt: %v", err)
	}

	a := &Ant{
		MujocoEnv: m,
		Task:      t,
		meta:      meta,
		obsLen:    m.Nq + m.Nv + 6*m.Nbody + 9 + 3,
	}
	meta.register(a)

	firstStep, err := a.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newAnt: %v", err)
	}

	return a, firstStep, nil
}

// ActionScaling returns the symmetric half-range of the action space,
// 0.5 * (upperBound - lowerBound) element-wise. It is computed from
// the actuator control ranges on first access and cached; every later
// access returns the same vector, even across task swaps.
func (a *Ant) ActionScaling() *mat.VecDense {
	if a.actionScaling == nil {
		spec := a.ActionSpec()
		scaling := mat.NewVecDense(spec.LowerBound.Len(), nil)
		scaling.SubVec(spec.UpperBound, spec.LowerBound)
		scaling.ScaleVec(0.5, scaling)
		a.actionScaling = scaling
	}
	return a.actionScaling
}

// Step takes one environmental step given some action, returning the
// resulting timestep and whether the episode has ended. The reward
// decomposition for the step is available from LastInfo.
func (a *Ant) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if action.Len() != a.Nu {
		panic(fmt.Sprintf("step: invalid number of action dimensions \n\t"+
			"have(%v) \n\twant(%v)", action.Len(), a.Nu))
	}

	state := a.StateVector()
	if err := a.DoSimulation(action, a.FrameSkip); err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: %v", err)
	}
	nextState := a.StateVector()

	reward := a.GetReward(state, action, nextState)

	obs, err := a.getObs()
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not get next "+
			"state observation: %v", err)
	}

	t := ts.New(ts.Mid, reward, a.Discount, obs,
		a.CurrentTimeStep().Number+1)
	last := a.End(&t)
	a.currentTimeStep = t

	return t, last, nil
}

// Reset resets the environment to begin a new episode. The active task
// parameter is left unchanged; only the simulation state is restored
// and perturbed to a new starting state.
func (a *Ant) Reset() (ts.TimeStep, error) {
	a.MujocoEnv.Reset()

	startVec := a.Start()
	posStart := startVec.RawVector().Data[:a.Nq]
	velStart := startVec.RawVector().Data[a.Nq:]

	if err := a.SetState(posStart, velStart); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}

	obs, err := a.getObs()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not get starting "+
			"state observation: %v", err)
	}

	firstStep := ts.New(ts.First, 0, a.Discount, obs, 0)
	a.currentTimeStep = firstStep

	return firstStep, nil
}

// CurrentTimeStep returns the current time step
func (a *Ant) CurrentTimeStep() ts.TimeStep {
	return a.currentTimeStep
}

// SampleTasks draws n task-parameter records from the active task
// family's distribution
func (a *Ant) SampleTasks(n int) []environment.TaskParam {
	return a.meta.SampleTasks(n)
}

// ResetTask replaces the active task parameter. The simulation state
// and the cached action scaling are untouched; only the reward
// computation changes.
func (a *Ant) ResetTask(task environment.TaskParam) {
	a.meta.ResetTask(task)
}

// CurrentTask returns the active task-parameter record
func (a *Ant) CurrentTask() environment.TaskParam {
	return a.meta.CurrentTask()
}

// LastInfo returns the reward decomposition of the most recent step
// together with the task record that produced it
func (a *Ant) LastInfo() StepInfo {
	return a.meta.lastInfo()
}

// getObs assembles a state observation from the simulator
func (a *Ant) getObs() (*mat.VecDense, error) {
	xmat, err := a.BodyXMat(torso)
	if err != nil {
		return nil, fmt.Errorf("getObs: %v", err)
	}
	com, err := a.BodyComPos(torso)
	if err != nil {
		return nil, fmt.Errorf("getObs: %v", err)
	}

	contact := floatutils.ClipSlice(a.ContactForces().RawMatrix().Data,
		-1.0, 1.0)

	obs := make([]float64, 0, a.obsLen)
	obs = append(obs, a.QPos()...)
	obs = append(obs, a.QVel()...)
	obs = append(obs, contact...)
	obs = append(obs, xmat.RawMatrix().Data...)
	obs = append(obs, com.RawVector().Data...)

	return mat.NewVecDense(a.obsLen, obs), nil
}

// controlCost returns the quadratic penalty on the normalized action
func (a *Ant) controlCost(action mat.Vector) float64 {
	scaling := a.ActionScaling()

	cost := 0.0
	for i := 0; i < action.Len(); i++ {
		f := action.AtVec(i) / scaling.AtVec(i)
		cost += f * f
	}
	return ctrlCostCoeff * cost
}

// contactCost returns the quadratic penalty on the clipped external
// contact forces
func (a *Ant) contactCost() float64 {
	forces := a.ContactForces().RawMatrix().Data

	cost := 0.0
	for _, force := range forces {
		f := floatutils.Clip(force, -1.0, 1.0)
		cost += f * f
	}
	return contactCostCoeff * cost
}

// forwardVelocity returns the first (forward) axis component of the
// torso's centre of mass velocity
func (a *Ant) forwardVelocity() float64 {
	comVel, err := a.BodyComVel(torso)
	if err != nil {
		panic(fmt.Sprintf("forwardVelocity: %v", err))
	}
	return comVel.AtVec(0)
}

// ObservationSpec returns the observation specification of the
// environment
func (a *Ant) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(a.obsLen, nil)

	low := mat.NewVecDense(a.obsLen, nil)
	high := mat.NewVecDense(a.obsLen, nil)
	for i := 0; i < low.Len(); i++ {
		low.SetVec(i, math.Inf(-1))
		high.SetVec(i, math.Inf(1))
	}

	return environment.NewSpec(shape, environment.Observation, low, high,
		environment.Continuous)
}
