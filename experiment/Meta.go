package experiment

import (
	"fmt"
	"time"

	"github.com/samuelfneumann/progressbar"

	"github.com/samuelfneumann/goant/agent"
	"github.com/samuelfneumann/goant/environment"
	"github.com/samuelfneumann/goant/experiment/tracker"
	ts "github.com/samuelfneumann/goant/timestep"
)

// Meta is an Experiment that runs an agent across a collection of
// meta-tasks. On each meta-task, the experiment swaps the
// environment's task parameter with ResetTask and then runs a fixed
// number of episodes, forwarding every timestep to the registered
// Trackers. The environment instance is never reconstructed: a single
// simulated body serves all tasks.
type Meta struct {
	env   environment.MetaEnvironment
	agent agent.Agent

	numTasks        int
	episodesPerTask int

	trackers []tracker.Tracker
}

// NewMeta creates and returns a new meta-task experiment on a given
// environment with a given agent. The experiment samples numTasks
// task parameters from the environment and runs episodesPerTask
// episodes on each. The t parameter is a slice of tracker.Tracker
// which determine what data is saved.
func NewMeta(env environment.MetaEnvironment, a agent.Agent, numTasks,
	episodesPerTask int, t ...tracker.Tracker) *Meta {
	return &Meta{
		env:             env,
		agent:           a,
		numTasks:        numTasks,
		episodesPerTask: episodesPerTask,
		trackers:        t,
	}
}

// Register registers a tracker.Tracker with the Experiment so that
// data generated during the experiment can be tracked and saved
func (m *Meta) Register(t tracker.Tracker) {
	m.trackers = append(m.trackers, t)
}

// RunEpisode runs a single episode on the active task
func (m *Meta) RunEpisode() error {
	step, err := m.env.Reset()
	if err != nil {
		return fmt.Errorf("runEpisode: could not reset environment: %v", err)
	}
	if err := m.agent.ObserveFirst(step); err != nil {
		return fmt.Errorf("runEpisode: %v", err)
	}
	m.track(step)

	for !step.Last() {
		// Select action, step in environment
		action := m.agent.SelectAction(step)
		step, _, err = m.env.Step(action)
		if err != nil {
			return fmt.Errorf("runEpisode: could not step "+
				"environment: %v", err)
		}

		// Cache the environment step in each Tracker
		m.track(step)

		// Observe the timestep and step the agent
		if err := m.agent.Observe(action, step); err != nil {
			return fmt.Errorf("runEpisode: %v", err)
		}
		if err := m.agent.Step(); err != nil {
			return fmt.Errorf("runEpisode: %v", err)
		}
	}
	m.agent.EndEpisode()

	return nil
}

// RunTask swaps the environment onto the argument task parameter and
// runs episodesPerTask episodes on it
func (m *Meta) RunTask(task environment.TaskParam) error {
	m.env.ResetTask(task)

	for e := 0; e < m.episodesPerTask; e++ {
		if err := m.RunEpisode(); err != nil {
			return fmt.Errorf("runTask: %v", err)
		}
	}
	return nil
}

// Run runs the entire experiment: numTasks task parameters are sampled
// from the environment, and each is run for episodesPerTask episodes
func (m *Meta) Run() error {
	tasks := m.env.SampleTasks(m.numTasks)

	pbar := progressbar.New(40, len(tasks), time.Second, false)
	pbar.Display()
	defer pbar.Close()

	for _, task := range tasks {
		if err := m.RunTask(task); err != nil {
			return fmt.Errorf("run: %v", err)
		}
		pbar.Increment()
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (m *Meta) Save() {
	for _, t := range m.trackers {
		t.Save()
	}
}

// track tracks the current timestep by caching its data in each
// Tracker
func (m *Meta) track(t ts.TimeStep) {
	for _, tr := range m.trackers {
		tr.Track(t)
	}
}
