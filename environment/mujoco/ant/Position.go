package ant

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/samuelfneumann/goant/environment"
)

// Target positions are sampled per-component uniformly from this range
const (
	minGoalPosition float64 = -3.0
	maxGoalPosition float64 = 3.0
)

// Position implements the target-position ant task family. On each
// step the ant receives a reward composed of a control cost, a contact
// cost, a survival bonus, and a penalty equal to the L1 distance
// between its torso and the target position, offset so the reward is
// positive near the target. Tasks are generated by sampling target
// positions uniformly from [-3, 3]².
//
// Episodes are ended when a timestep limit is reached, when any value
// in the underlying state is NaN or ±Inf, or when the torso height
// leaves [0.2, 1.0].
type Position struct {
	base

	task    environment.TaskParam
	goalPos r2.Vec

	goalRng *distmv.Uniform
}

// NewPosition returns a new Position task with the argument initial
// task record, which may be nil to use the default target position of
// the origin. The task must be registered with an Ant environment by
// ant.New before use.
func NewPosition(task environment.TaskParam, seed uint64,
	cutoff int) environment.Task {
	goalSrc := rand.NewSource(seed)
	goalBounds := []r1.Interval{
		{Min: minGoalPosition, Max: maxGoalPosition},
		{Min: minGoalPosition, Max: maxGoalPosition},
	}

	p := &Position{
		base:    newBase(seed, cutoff, math.Inf(-1), 4.0+surviveReward),
		goalRng: distmv.NewUniform(goalBounds, goalSrc),
	}
	p.ResetTask(task)

	return p
}

// GetReward returns the reward for a state, action, next state
// transition, reading the torso position and contact forces from the
// registered environment after the transition.
func (p *Position) GetReward(state, action, nextState mat.Vector) float64 {
	if !p.registered {
		panic("getReward: no registered Ant environment to get reward of")
	}

	com, err := p.env.BodyComPos(torso)
	if err != nil {
		panic(fmt.Sprintf("getReward: %v", err))
	}
	xy := r2.Vec{X: com.AtVec(0), Y: com.AtVec(1)}

	goalReward := positionReward(xy, p.goalPos)
	ctrlCost := p.env.controlCost(action)
	contactCost := p.env.contactCost()

	p.setInfo("reward_goal", goalReward, ctrlCost, contactCost, p.task)

	return goalReward - ctrlCost - contactCost + surviveReward
}

// SampleTasks draws n target positions with each component independent
// and uniform on [-3, 3], returning one task record per draw
func (p *Position) SampleTasks(n int) []environment.TaskParam {
	tasks := make([]environment.TaskParam, n)
	for i := range tasks {
		pos := p.goalRng.Rand(nil)
		tasks[i] = PositionTask{Position: r2.Vec{X: pos[0], Y: pos[1]}}
	}
	return tasks
}

// ResetTask replaces the active task record and recomputes the target
// position. A record that is not a PositionTask falls back to the
// default target position of the origin.
func (p *Position) ResetTask(task environment.TaskParam) {
	p.task = task
	if t, ok := task.(PositionTask); ok {
		p.goalPos = t.Position
	} else {
		p.goalPos = r2.Vec{}
	}
}

// CurrentTask returns the active task record
func (p *Position) CurrentTask() environment.TaskParam {
	return p.task
}
