package sites

import (
	"testing"

	"github.com/oakvale/villagesim/internal/entropy"
	"github.com/oakvale/villagesim/internal/items"
	"github.com/oakvale/villagesim/internal/weather"
)

func TestAttemptCatchUnknownSpecies(t *testing.T) {
	r := NewRiver("Silverbrook", entropy.NewSource(1))
	before := make(map[string]int, len(r.Fish))
	for k, v := range r.Fish {
		before[k] = v
	}

	res := r.AttemptCatch("kraken", 5.0, springDay())
	if !res.Err || res.Success {
		t.Fatalf("unknown species: got %+v, want Err", res)
	}
	for k, v := range before {
		if r.Fish[k] != v {
			t.Errorf("rejected catch mutated %s: %d -> %d", k, v, r.Fish[k])
		}
	}
}

func TestAttemptCatchFrozenRiver(t *testing.T) {
	r := NewRiver("Silverbrook", entropy.NewSource(1))
	r.Frozen = true
	res := r.AttemptCatch("perch", 3.0, springDay())
	if res.Success || res.Err {
		t.Fatalf("frozen river: got %+v, want plain failure", res)
	}
}

func TestAttemptCatchSkillGate(t *testing.T) {
	r := NewRiver("Silverbrook", entropy.NewSource(1))
	res := r.AttemptCatch("salmon", 1.0, springDay())
	if res.Success || res.Err {
		t.Fatalf("underskilled catch: got %+v, want plain failure", res)
	}
}

func TestCatchDepletesOnlyFish(t *testing.T) {
	r := NewRiver("Silverbrook", entropy.NewSource(9))
	before := r.Fish["perch"]
	fishCaught := 0
	for i := 0; i < 300 && r.Fish["perch"] > 0; i++ {
		res := r.AttemptCatch("perch", 4.0, springDay())
		if res.Err {
			t.Fatalf("valid catch returned Err: %+v", res)
		}
		if res.Success {
			fishCaught++
			// Every success lands a real fish; junk only rides along.
			if res.Species == "" || res.Item != items.CookedFish {
				t.Fatalf("success without a fish: %+v", res)
			}
		}
		if !res.Success && res.Bonus != "" {
			t.Fatalf("failed cast carried a bonus: %+v", res)
		}
	}
	if r.Fish["perch"] != before-fishCaught {
		t.Errorf("perch = %d, want %d - %d caught", r.Fish["perch"], before, fishCaught)
	}
}

func TestDirtyRiverYieldsMoreJunkAlongsideFish(t *testing.T) {
	r := NewRiver("Silverbrook", entropy.NewSource(5))
	r.Pollution = 0.9
	junk := 0
	for i := 0; i < 500; i++ {
		r.Fish["perch"] = 100 // keep the water stocked
		res := r.AttemptCatch("perch", 2.0, springDay())
		if res.Bonus == items.SoggyBoot {
			junk++
			if !res.Success || res.Item != items.CookedFish {
				t.Fatalf("boot without a fish under it: %+v", res)
			}
		}
	}
	if junk == 0 {
		t.Error("no junk from a heavily polluted river over 500 casts")
	}
}

func TestRiverUpdateDailyBounds(t *testing.T) {
	src := entropy.NewSource(11)
	r := NewRiver("Silverbrook", src)
	w := weather.NewSystem(entropy.NewSource(11))
	for day := 0; day < 365; day++ {
		w.AdvanceDay()
		r.UpdateDaily(w.Today())

		if r.Pollution < 0 || r.Pollution > 1 {
			t.Fatalf("day %d: pollution %f", day, r.Pollution)
		}
		if r.FlowRate < 0.1 || r.FlowRate > 1.0 {
			t.Fatalf("day %d: flow %f", day, r.FlowRate)
		}
		for species, pop := range r.Fish {
			if pop < 0 {
				t.Fatalf("day %d: %s stock %d", day, species, pop)
			}
		}
	}
}

func TestPolluteSaturates(t *testing.T) {
	r := NewRiver("Silverbrook", entropy.NewSource(1))
	r.Pollute(5.0)
	if r.Pollution != 1.0 {
		t.Fatalf("pollution = %f, want saturated at 1.0", r.Pollution)
	}
}
