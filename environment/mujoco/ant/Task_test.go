package ant

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

const testCutoff int = 100

func TestVelocitySampleTasksRange(t *testing.T) {
	v := NewVelocity(nil, 14, testCutoff).(*Velocity)

	for _, task := range v.SampleTasks(1000) {
		velocity := task.(VelocityTask).Velocity
		if velocity < minGoalVelocity || velocity > maxGoalVelocity {
			t.Fatalf("sampled target velocity %v outside [%v, %v]",
				velocity, minGoalVelocity, maxGoalVelocity)
		}
	}
}

func TestDirectionSampleTasksBalance(t *testing.T) {
	d := NewDirection(nil, 14, testCutoff).(*Direction)

	forward := 0
	for _, task := range d.SampleTasks(1000) {
		dir := task.(DirectionTask).Direction
		if dir != Forward && dir != Backward {
			t.Fatalf("sampled target direction %v not in {-1, +1}", dir)
		}
		if dir == Forward {
			forward++
		}
	}

	// Statistical check only: ~half the draws should be Forward
	if forward < 400 || forward > 600 {
		t.Errorf("expected roughly balanced directions, got %v of 1000 "+
			"forward", forward)
	}
}

func TestPositionSampleTasksRange(t *testing.T) {
	p := NewPosition(nil, 14, testCutoff).(*Position)

	for _, task := range p.SampleTasks(1000) {
		pos := task.(PositionTask).Position
		for _, component := range []float64{pos.X, pos.Y} {
			if component < minGoalPosition || component > maxGoalPosition {
				t.Fatalf("sampled target position %v outside [%v, %v]²",
					pos, minGoalPosition, maxGoalPosition)
			}
		}
	}
}

func TestFallen(t *testing.T) {
	state := func(height float64) *mat.VecDense {
		s := mat.NewVecDense(29, nil)
		s.SetVec(2, height)
		return s
	}

	if !Fallen(state(0.19)) {
		t.Error("torso height 0.19 should end the episode")
	}
	if Fallen(state(0.5)) {
		t.Error("torso height 0.5 should not end the episode")
	}
	if !Fallen(state(1.01)) {
		t.Error("torso height 1.01 should end the episode")
	}

	nanState := state(0.5)
	nanState.SetVec(17, math.NaN())
	if !Fallen(nanState) {
		t.Error("NaN in the state should end the episode regardless of " +
			"torso height")
	}

	infState := state(0.5)
	infState.SetVec(9, math.Inf(1))
	if !Fallen(infState) {
		t.Error("Inf in the state should end the episode regardless of " +
			"torso height")
	}
}

func TestVelocityRewardAtGoal(t *testing.T) {
	for _, goal := range []float64{0.0, 1.3, 3.0} {
		if reward := velocityReward(goal, goal); reward != 1.0 {
			t.Errorf("reward at the target velocity should be exactly "+
				"1.0, got %v", reward)
		}
	}

	if reward := velocityReward(2.0, 0.5); reward != -0.5 {
		t.Errorf("expected reward -0.5, got %v", reward)
	}
}

func TestDirectionReward(t *testing.T) {
	if reward := directionReward(Backward, -1.5); reward != 1.5 {
		t.Errorf("running backward under a backward task should be "+
			"rewarded, got %v", reward)
	}
	if reward := directionReward(Forward, -1.5); reward != -1.5 {
		t.Errorf("running backward under a forward task should be "+
			"penalized, got %v", reward)
	}
}

func TestPositionReward(t *testing.T) {
	goal := r2.Vec{X: 1.0, Y: -2.0}
	if reward := positionReward(goal, goal); reward != 4.0 {
		t.Errorf("reward at the target position should be exactly 4.0, "+
			"got %v", reward)
	}

	xy := r2.Vec{X: 2.0, Y: -1.0}
	if reward := positionReward(xy, goal); reward != 2.0 {
		t.Errorf("expected reward 2.0 at L1 distance 2, got %v", reward)
	}
}

func TestResetTaskRecomputesGoal(t *testing.T) {
	v := NewVelocity(nil, 14, testCutoff).(*Velocity)
	if v.goalVel != 0.0 {
		t.Fatalf("default target velocity should be 0, got %v", v.goalVel)
	}

	v.ResetTask(VelocityTask{Velocity: 2.0})
	if v.goalVel != 2.0 {
		t.Errorf("target velocity should be 2.0 after ResetTask, got %v",
			v.goalVel)
	}

	d := NewDirection(DirectionTask{Direction: Backward}, 14,
		testCutoff).(*Direction)
	if d.goalDir != Backward {
		t.Errorf("target direction should be Backward, got %v", d.goalDir)
	}

	p := NewPosition(nil, 14, testCutoff).(*Position)
	p.ResetTask(PositionTask{Position: r2.Vec{X: -1.0, Y: 2.5}})
	if p.goalPos.X != -1.0 || p.goalPos.Y != 2.5 {
		t.Errorf("target position should be (-1.0, 2.5), got %v", p.goalPos)
	}
}

func TestResetTaskWrongShapeFallsBackToDefault(t *testing.T) {
	d := NewDirection(nil, 14, testCutoff).(*Direction)
	d.ResetTask(DirectionTask{Direction: Backward})

	// A record from another task family falls back to the default goal
	d.ResetTask(VelocityTask{Velocity: 2.0})
	if d.goalDir != Forward {
		t.Errorf("wrong-shaped record should fall back to the default "+
			"direction, got %v", d.goalDir)
	}
}

func TestSampledTaskRoundTrip(t *testing.T) {
	for seed := uint64(0); seed < 5; seed++ {
		p := NewPosition(nil, seed, testCutoff).(*Position)

		record := p.SampleTasks(1)[0]
		p.ResetTask(record)

		if p.CurrentTask() != record {
			t.Errorf("a sampled record should be stored verbatim: "+
				"have(%v) want(%v)", p.CurrentTask(), record)
		}
	}
}
