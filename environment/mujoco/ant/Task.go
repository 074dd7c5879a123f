package ant

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/samuelfneumann/goant/environment"
	ts "github.com/samuelfneumann/goant/timestep"
	"github.com/samuelfneumann/goant/utils/floatutils"
)

const (
	// surviveReward is the constant per-step bonus while the ant has
	// not fallen over
	surviveReward float64 = 0.05

	// Coefficients of the quadratic penalties on the normalized
	// action and on the clipped contact forces
	ctrlCostCoeff    float64 = 0.5 * 1e-2
	contactCostCoeff float64 = 0.5 * 1e-3

	// Episodes end when the torso height leaves this range
	minTorsoHeight float64 = 0.2
	maxTorsoHeight float64 = 1.0

	// Magnitude of the uniform perturbation applied to the joint
	// positions and velocities when starting a new episode
	startStateNoise float64 = 0.1
)

// VelocityTask is the task-parameter record of the Velocity task
// family: the ant should move forward at Velocity metres per second.
type VelocityTask struct {
	Velocity float64
}

// DirectionTask is the task-parameter record of the Direction task
// family: the ant should run as fast as possible in the target
// direction, +1 for forward or -1 for backward.
type DirectionTask struct {
	Direction int
}

// PositionTask is the task-parameter record of the Position task
// family: the ant should move its torso to the target (x, y) position.
type PositionTask struct {
	Position r2.Vec
}

// StepInfo records the per-step reward decomposition together with the
// task record that produced it. The ctrl and contact components are
// negated so that every component is a reward, not a cost.
type StepInfo struct {
	Rewards map[string]float64
	Task    environment.TaskParam
}

// metaTask is the capability set shared by the ant task families: an
// environment.Task whose reward is conditioned on a resampleable task
// parameter. A metaTask must be registered with an Ant environment
// before it can compute rewards or starting states.
type metaTask interface {
	environment.Task

	SampleTasks(n int) []environment.TaskParam
	ResetTask(environment.TaskParam)
	CurrentTask() environment.TaskParam

	register(*Ant)
	lastInfo() StepInfo
}

// Fallen reports whether state, a [qpos, qvel] state vector, describes
// an ant that has fallen over or a simulation that has diverged: any
// non-finite state component or a torso height outside [0.2, 1.0] ends
// the episode. Physics instabilities that manifest as NaN or Inf in
// the state vector are therefore converted into a normal episode end
// rather than an error.
func Fallen(state mat.Vector) bool {
	if !floatutils.AllFinite(state) {
		return true
	}
	height := state.AtVec(2)
	return height < minTorsoHeight || height > maxTorsoHeight
}

// velocityReward penalizes deviation from the target forward velocity.
// The constant offset keeps the reward at exactly 1.0 at the target.
func velocityReward(forwardVel, goalVel float64) float64 {
	return -math.Abs(forwardVel-goalVel) + 1.0
}

// directionReward rewards signed velocity along the target direction
func directionReward(goalDir int, forwardVel float64) float64 {
	return float64(goalDir) * forwardVel
}

// positionReward penalizes the L1 distance between the torso and the
// target position, offset so the reward is positive near the target
func positionReward(xy, goalPos r2.Vec) float64 {
	return -(math.Abs(xy.X-goalPos.X) + math.Abs(xy.Y-goalPos.Y)) + 4.0
}

// base carries the pieces shared by every ant task family: the
// registered environment, the episode step limit, the starting-state
// distributions, and the reward decomposition of the last step.
type base struct {
	env        *Ant
	registered bool

	stepLimit environment.Ender

	minReward float64
	maxReward float64

	info StepInfo

	// Seeded starting-state distributions
	seed       uint64
	posStarter environment.UniformStarter
	velStarter environment.UniformStarter
}

func newBase(seed uint64, cutoff int, minReward, maxReward float64) base {
	return base{
		stepLimit: environment.NewStepLimit(cutoff),
		minReward: minReward,
		maxReward: maxReward,
		seed:      seed,
	}
}

// register registers the task with an Ant environment. This is
// required since tasks query the simulator when computing rewards,
// episode ends, and starting states.
func (b *base) register(env *Ant) {
	b.env = env

	// Starting-state distributions perturb the joint positions and
	// velocities around the model's initial pose
	posBounds := make([]r1.Interval, env.Nq)
	for i := range posBounds {
		posBounds[i] = r1.Interval{Min: -startStateNoise,
			Max: startStateNoise}
	}
	b.posStarter = environment.NewUniformStarter(posBounds, b.seed)

	velBounds := make([]r1.Interval, env.Nv)
	for i := range velBounds {
		velBounds[i] = r1.Interval{Min: -startStateNoise,
			Max: startStateNoise}
	}
	b.velStarter = environment.NewUniformStarter(velBounds, b.seed)

	b.registered = true
}

// End checks if a timestep should be the last in the episode and
// adjusts the timestep accordingly. End returns whether the argument
// timestep is the last in the episode.
func (b *base) End(t *ts.TimeStep) bool {
	if !b.registered {
		panic("end: no registered Ant environment to end")
	}

	if Fallen(b.env.StateVector()) {
		t.StepType = ts.Last
		t.SetEnd(ts.TerminalStateReached)
		return true
	}

	return b.stepLimit.End(t)
}

// Start returns a new starting state for an episode: the model's
// initial pose with a small uniform perturbation of the joint
// positions and velocities.
func (b *base) Start() *mat.VecDense {
	if !b.registered {
		panic("start: no registered Ant environment to start")
	}

	// Get random starting position
	posStart := b.posStarter.Start()
	posStart.AddVec(posStart, b.env.InitQPos)

	// Get random starting velocity
	velStart := b.velStarter.Start()
	velStart.AddVec(velStart, b.env.InitQVel)

	backing := make([]float64, posStart.Len()+velStart.Len())
	copy(backing[:posStart.Len()], posStart.RawVector().Data)
	copy(backing[posStart.Len():], velStart.RawVector().Data)

	return mat.NewVecDense(b.env.Nq+b.env.Nv, backing)
}

// AtGoal satisfies the environment.Task interface. The ant task
// families are dense-reward tasks with no discrete goal state, so this
// function simply prints an error message to standard error.
func (b *base) AtGoal(state mat.Matrix) bool {
	if !b.registered {
		panic("atGoal: no registered Ant environment")
	}

	fmt.Fprintf(os.Stderr, "atGoal: no goal state for ant tasks")
	return false
}

// Min returns the minimum possible reward
func (b *base) Min() float64 {
	return b.minReward
}

// Max returns the maximum possible reward
func (b *base) Max() float64 {
	return b.maxReward
}

// RewardSpec returns the reward specification for the task
func (b *base) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	low := mat.NewVecDense(1, []float64{b.Min()})
	high := mat.NewVecDense(1, []float64{b.Max()})

	return environment.NewSpec(shape, environment.Reward, low, high,
		environment.Continuous)
}

// setInfo caches the reward decomposition of the step just taken.
// The ctrl and contact costs are negated so that every entry of the
// mapping is a reward component.
func (b *base) setInfo(taskKey string, taskReward, ctrlCost,
	contactCost float64, task environment.TaskParam) {
	b.info = StepInfo{
		Rewards: map[string]float64{
			taskKey:          taskReward,
			"reward_ctrl":    -ctrlCost,
			"reward_contact": -contactCost,
			"reward_survive": surviveReward,
		},
		Task: task,
	}
}

// lastInfo returns the reward decomposition of the last step
func (b *base) lastInfo() StepInfo {
	return b.info
}
