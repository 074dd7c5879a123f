package tracker

import (
	"path"
	"testing"

	ts "github.com/samuelfneumann/goant/timestep"
)

func TestReturnAccumulatesPerEpisode(t *testing.T) {
	filename := path.Join(t.TempDir(), "data.bin")
	r := NewReturn(filename)

	// Two episodes: returns 1+2+3 and 5+5
	episodes := [][]float64{
		{1.0, 2.0, 3.0},
		{5.0, 5.0},
	}
	for _, rewards := range episodes {
		for i, reward := range rewards {
			stepType := ts.Mid
			if i == len(rewards)-1 {
				stepType = ts.Last
			}
			r.Track(ts.New(stepType, reward, 1.0, nil, i))
		}
	}

	r.Save()
	data := LoadData(filename)

	want := []float64{6.0, 10.0}
	if len(data) != len(want) {
		t.Fatalf("expected %v episode returns, got %v", len(want),
			len(data))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("episode %v: have return %v, want %v", i, data[i],
				want[i])
		}
	}
}

func TestReturnPanicsOnNonSequentialTimesteps(t *testing.T) {
	r := NewReturn(path.Join(t.TempDir(), "data.bin"))
	r.Track(ts.New(ts.Mid, 1.0, 1.0, nil, 0))

	defer func() {
		if recover() == nil {
			t.Error("tracking non-sequential timesteps should panic")
		}
	}()
	r.Track(ts.New(ts.Mid, 1.0, 1.0, nil, 5))
}
