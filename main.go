package main

import (
	"fmt"

	"github.com/samuelfneumann/goant/agent/random"
	"github.com/samuelfneumann/goant/environment/mujoco/ant"
	"github.com/samuelfneumann/goant/experiment"
	"github.com/samuelfneumann/goant/experiment/tracker"
)

func main() {
	var seed uint64 = 192382

	// Create the task and environment
	task := ant.NewDirection(nil, seed, 1000)
	env, _, err := ant.New(task, 5, seed, 0.99)
	if err != nil {
		panic(err)
	}
	defer env.Close()

	// Create the agent
	a, err := random.NewUniformContinuous(env, seed)
	if err != nil {
		panic(err)
	}

	// Experiment
	var returns tracker.Tracker = tracker.NewReturn("./returns.bin")
	lengths := tracker.NewEpisodeLength("./lengths.bin")
	e := experiment.NewMeta(env, a, 20, 3, returns, lengths)
	if err := e.Run(); err != nil {
		panic(err)
	}
	e.Save()

	data := tracker.LoadData("./returns.bin")
	fmt.Println(data[len(data)-10:])
}
