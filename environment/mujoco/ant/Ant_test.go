package ant

// These tests step a real MuJoCo simulation and need a working MuJoCo
// installation, like the environments themselves.

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestVelocityAnt(t *testing.T) {
	var seed uint64 = 14

	task := NewVelocity(nil, seed, testCutoff)
	env, firstStep, err := New(task, 1, seed, 1.0)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}
	defer env.Close()

	if !firstStep.First() {
		t.Error("first timestep should have step type First")
	}

	scaling := env.ActionScaling()
	if scaling.Len() != env.Nu {
		t.Fatalf("action scaling should have one component per "+
			"actuator: have(%v) want(%v)", scaling.Len(), env.Nu)
	}
	for i := 0; i < scaling.Len(); i++ {
		if scaling.AtVec(i) <= 0 {
			t.Errorf("action scaling component %v should be positive, "+
				"got %v", i, scaling.AtVec(i))
		}
	}

	// Step with a zero action: the control cost must be exactly zero
	// and all four reward components must be present
	action := mat.NewVecDense(env.Nu, nil)
	step, done, err := env.Step(action)
	if err != nil {
		t.Fatalf("could not step environment: %v", err)
	}

	info := env.LastInfo()
	for _, key := range []string{"reward_forward", "reward_ctrl",
		"reward_contact", "reward_survive"} {
		if _, ok := info.Rewards[key]; !ok {
			t.Errorf("reward component %v missing from step info", key)
		}
	}
	if info.Rewards["reward_ctrl"] != 0.0 {
		t.Errorf("control cost of a zero action should be 0, got %v",
			info.Rewards["reward_ctrl"])
	}
	if info.Rewards["reward_survive"] != surviveReward {
		t.Errorf("survival bonus should be %v, got %v", surviveReward,
			info.Rewards["reward_survive"])
	}
	if info.Task != nil {
		t.Errorf("a nil constructor record should be returned as-is, "+
			"got %v", info.Task)
	}

	// Termination is a pure function of the post-step state vector
	if done != Fallen(env.StateVector()) {
		t.Errorf("done should be computed from the post-step state: "+
			"done(%v) fallen(%v)", done, Fallen(env.StateVector()))
	}
	if step.Last() != done {
		t.Error("timestep type and done flag should agree")
	}
}

func TestAntActionScalingStableAcrossTaskSwaps(t *testing.T) {
	var seed uint64 = 14

	task := NewVelocity(nil, seed, testCutoff)
	env, _, err := New(task, 1, seed, 1.0)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}
	defer env.Close()

	scaling := env.ActionScaling()

	for _, record := range env.SampleTasks(10) {
		env.ResetTask(record)
		if env.ActionScaling() != scaling {
			t.Fatal("action scaling should be computed once and held " +
				"for the life of the instance")
		}
	}
}

func TestAntTaskSwapChangesReward(t *testing.T) {
	var seed uint64 = 14

	task := NewVelocity(nil, seed, testCutoff)
	env, _, err := New(task, 1, seed, 1.0)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}
	defer env.Close()

	record := VelocityTask{Velocity: 2.0}
	env.ResetTask(record)

	action := mat.NewVecDense(env.Nu, nil)
	if _, _, err := env.Step(action); err != nil {
		t.Fatalf("could not step environment: %v", err)
	}

	info := env.LastInfo()
	if info.Task != record {
		t.Errorf("step info should carry the swapped record verbatim: "+
			"have(%v) want(%v)", info.Task, record)
	}

	// The forward reward must now be measured against the new target
	forwardVel := env.forwardVelocity()
	want := velocityReward(forwardVel, 2.0)
	if info.Rewards["reward_forward"] != want {
		t.Errorf("forward reward should use the swapped target "+
			"velocity: have(%v) want(%v)", info.Rewards["reward_forward"],
			want)
	}
}
