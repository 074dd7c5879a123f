// Package experiment implements functionality for running experiments
package experiment

import (
	ts "github.com/samuelfneumann/goant/timestep"

	"github.com/samuelfneumann/goant/experiment/tracker"
)

// Experiment outlines structs that can run experiments. Experiments
// forward every environment TimeStep to their tracker.Trackers, which
// cache data in RAM; Save then writes all cached data to disk, usually
// after the experiment has been run.
type Experiment interface {
	Run() error
	RunEpisode() error

	// Tracks the current timestep by sending it to Trackers
	track(ts.TimeStep)

	// Save all tracked data to disk
	Save()

	// Register adds a new tracker.Tracker to the (possibly already
	// running) experiment. Useful if data should be tracked only after
	// a specified event.
	Register(t tracker.Tracker)
}
