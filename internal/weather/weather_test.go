package weather

import (
	"testing"

	"github.com/oakvale/villagesim/internal/entropy"
)

func TestDeterministicFromSeed(t *testing.T) {
	a := NewSystem(entropy.NewSource(42))
	b := NewSystem(entropy.NewSource(42))
	for day := 0; day < 200; day++ {
		a.AdvanceDay()
		b.AdvanceDay()
		if a.Condition() != b.Condition() || a.Season() != b.Season() {
			t.Fatalf("day %d: diverged (%s/%s vs %s/%s)",
				day, a.Season(), a.Condition(), b.Season(), b.Condition())
		}
		if a.Temperature() != b.Temperature() {
			t.Fatalf("day %d: temperature diverged", day)
		}
	}
}

func TestSeasonRollover(t *testing.T) {
	w := NewSystem(entropy.NewSource(1))
	if w.Season() != Spring {
		t.Fatalf("initial season = %s", w.Season())
	}
	for i := 0; i < DaysPerSeason; i++ {
		w.AdvanceDay()
	}
	if w.Season() != Summer {
		t.Errorf("after %d days season = %s, want summer", DaysPerSeason, w.Season())
	}
	for i := 0; i < 3*DaysPerSeason; i++ {
		w.AdvanceDay()
	}
	if w.Season() != Spring {
		t.Errorf("after a full year season = %s, want spring", w.Season())
	}
}

func TestTransitionsStayInTable(t *testing.T) {
	w := NewSystem(entropy.NewSource(99))
	for day := 0; day < 500; day++ {
		prev := w.Condition()
		w.AdvanceDay()
		next := w.Condition()
		found := false
		for _, e := range baseTransitions[prev] {
			if e.to == next {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("day %d: %s -> %s not a listed transition", day, prev, next)
		}
	}
}

func TestPrecipitationNonNegative(t *testing.T) {
	w := NewSystem(entropy.NewSource(5))
	for day := 0; day < 365; day++ {
		w.AdvanceDay()
		if p := w.Precipitation(); p < 0 || p > 3 {
			t.Fatalf("day %d: precipitation %f out of [0,3]", day, p)
		}
	}
}

func TestTemperatureTracksSeason(t *testing.T) {
	w := NewSystem(entropy.NewSource(11))
	seasonSum := map[Season]float64{}
	seasonN := map[Season]int{}
	for day := 0; day < 4*DaysPerSeason*3; day++ {
		w.AdvanceDay()
		seasonSum[w.Season()] += w.Temperature()
		seasonN[w.Season()]++
	}
	summerAvg := seasonSum[Summer] / float64(seasonN[Summer])
	winterAvg := seasonSum[Winter] / float64(seasonN[Winter])
	if summerAvg <= winterAvg {
		t.Errorf("summer avg %.1f not warmer than winter avg %.1f", summerAvg, winterAvg)
	}
}
