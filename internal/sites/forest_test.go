package sites

import (
	"testing"

	"github.com/oakvale/villagesim/internal/entropy"
	"github.com/oakvale/villagesim/internal/weather"
)

func springDay() weather.Snapshot {
	return weather.Snapshot{
		Season:      weather.Spring,
		Condition:   weather.Clear,
		Temperature: 15,
	}
}

func TestNewForestStocksScaleWithSize(t *testing.T) {
	f := NewForest("Oakwood", 2.0, entropy.NewSource(1))
	if f.MatureTrees != 2000 || f.YoungTrees != 1000 || f.Saplings != 1600 {
		t.Fatalf("unexpected stocks: mature=%d young=%d saplings=%d",
			f.MatureTrees, f.YoungTrees, f.Saplings)
	}
	for _, species := range f.HuntableSpecies() {
		if f.Wildlife[species] <= 0 {
			t.Errorf("species %s listed huntable with population %d", species, f.Wildlife[species])
		}
	}
}

func TestCutTreesMatureFirstThenYoung(t *testing.T) {
	f := NewForest("Oakwood", 1.0, entropy.NewSource(1))
	f.MatureTrees = 5
	f.YoungTrees = 10
	f.Saplings = 7

	got, bd := f.CutTrees(8)
	if got != 8 {
		t.Fatalf("CutTrees(8) = %d, want 8", got)
	}
	if bd.Mature != 5 || bd.Young != 3 {
		t.Errorf("breakdown mature=%d young=%d, want 5 and 3", bd.Mature, bd.Young)
	}
	if f.MatureTrees != 0 || f.YoungTrees != 7 {
		t.Errorf("after cut: mature=%d young=%d, want 0 and 7", f.MatureTrees, f.YoungTrees)
	}
	if f.Saplings != 7 {
		t.Errorf("saplings touched by felling: %d", f.Saplings)
	}
}

func TestCutTreesBoundedByStock(t *testing.T) {
	f := NewForest("Oakwood", 1.0, entropy.NewSource(1))
	f.MatureTrees = 3
	f.YoungTrees = 2
	f.Saplings = 100

	if got, _ := f.CutTrees(50); got != 5 {
		t.Fatalf("CutTrees(50) = %d, want 5", got)
	}
	if f.MatureTrees != 0 || f.YoungTrees != 0 {
		t.Errorf("stock went negative-adjacent: mature=%d young=%d", f.MatureTrees, f.YoungTrees)
	}
	if got, _ := f.CutTrees(-1); got != 0 {
		t.Errorf("CutTrees(-1) = %d, want 0", got)
	}
}

func TestTreeStocksRespectCarryingCapacity(t *testing.T) {
	f := NewForest("Oakwood", 1.0, entropy.NewSource(3))
	f.MatureTrees = 9000
	f.YoungTrees = 9000
	f.Saplings = 9000

	f.UpdateDaily(springDay())

	effective := float64(f.MatureTrees) + float64(f.YoungTrees)*0.5 + float64(f.Saplings)*0.1
	if limit := f.Size * maxTreesPerSqKm; effective > limit {
		t.Fatalf("stand at %.0f mature-equivalents, capacity %.0f", effective, limit)
	}
	if f.MatureTrees < 0 || f.YoungTrees < 0 || f.Saplings < 0 {
		t.Fatalf("negative tier after crowding trim: %d/%d/%d",
			f.MatureTrees, f.YoungTrees, f.Saplings)
	}
}

func TestHuntUnknownSpecies(t *testing.T) {
	f := NewForest("Oakwood", 1.0, entropy.NewSource(1))
	res := f.Hunt("dragon", 5.0, springDay())
	if !res.Err || res.Success {
		t.Fatalf("unknown species: got %+v, want Err", res)
	}
}

func TestHuntSkillGate(t *testing.T) {
	f := NewForest("Oakwood", 1.0, entropy.NewSource(1))
	before := f.Wildlife["boar"]
	res := f.Hunt("boar", 0.5, springDay())
	if res.Success || res.Err {
		t.Fatalf("underskilled hunt: got %+v, want plain failure", res)
	}
	if f.Wildlife["boar"] != before {
		t.Errorf("failed hunt mutated population: %d -> %d", before, f.Wildlife["boar"])
	}
}

func TestHuntDepletesExactlySuccesses(t *testing.T) {
	f := NewForest("Oakwood", 1.0, entropy.NewSource(7))
	before := f.Wildlife["deer"]
	successes := 0
	for i := 0; i < 200 && f.Wildlife["deer"] > 0; i++ {
		res := f.Hunt("deer", 5.0, springDay())
		if res.Err {
			t.Fatalf("valid hunt returned Err: %+v", res)
		}
		if res.Success {
			successes++
			if res.Quantity != 1 || res.Meat <= 0 {
				t.Fatalf("success without yield: %+v", res)
			}
		}
	}
	if f.Wildlife["deer"] != before-successes {
		t.Errorf("deer = %d, want %d - %d successes", f.Wildlife["deer"], before, successes)
	}
	if f.Wildlife["deer"] < 0 {
		t.Errorf("population went negative: %d", f.Wildlife["deer"])
	}
}

func TestForestUpdateDailyKeepsFactorsBounded(t *testing.T) {
	f := NewForest("Oakwood", 1.5, entropy.NewSource(42))
	w := weather.NewSystem(entropy.NewSource(42))
	for day := 0; day < 365; day++ {
		w.AdvanceDay()
		f.UpdateDaily(w.Today())

		if f.MatureTrees < 0 || f.YoungTrees < 0 || f.Saplings < 0 {
			t.Fatalf("day %d: negative tree stock %d/%d/%d",
				day, f.MatureTrees, f.YoungTrees, f.Saplings)
		}
		for species, pop := range f.Wildlife {
			if pop < 0 {
				t.Fatalf("day %d: %s population %d", day, species, pop)
			}
		}
		for name, v := range map[string]float64{
			"health": f.Health, "moisture": f.Moisture, "fertility": f.Fertility,
			"undergrowth": f.Undergrowth, "density": f.TreeDensity,
			"fire": f.FireRisk, "disease": f.Disease, "pests": f.Pests,
		} {
			if v < 0 || v > 1 {
				t.Fatalf("day %d: %s = %f out of [0,1]", day, name, v)
			}
		}
	}
}

func TestForageNeverNegative(t *testing.T) {
	f := NewForest("Oakwood", 1.0, entropy.NewSource(3))
	day := weather.Snapshot{Season: weather.Winter, Condition: weather.Snowy, Temperature: -5}
	for i := 0; i < 50; i++ {
		if got := f.Forage(0, day); got < 0 {
			t.Fatalf("Forage returned %d", got)
		}
		if f.Undergrowth < 0.05 {
			t.Fatalf("undergrowth fell below floor: %f", f.Undergrowth)
		}
	}
}
