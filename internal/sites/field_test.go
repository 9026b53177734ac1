package sites

import (
	"testing"

	"github.com/oakvale/villagesim/internal/entropy"
	"github.com/oakvale/villagesim/internal/weather"
)

func TestFieldGrowsToHarvest(t *testing.T) {
	f := NewField("Longacre", 2.0, entropy.NewSource(7))
	if !f.Sow() {
		t.Fatal("sowing a fallow field failed")
	}

	day := springDay()
	for i := 0; i < 120 && !f.Ready(); i++ {
		f.UpdateDaily(day)
		f.Tend(2.0)
	}
	if !f.Ready() {
		t.Fatal("crop never ripened over a long growing season")
	}

	yield := f.Harvest(2.0)
	if yield <= 0 {
		t.Fatalf("ripe harvest yielded %d", yield)
	}
	if f.Sown || f.Growth != 0 {
		t.Errorf("field not reset after harvest: sown=%v growth=%f", f.Sown, f.Growth)
	}
}

func TestFieldHarvestNotReady(t *testing.T) {
	f := NewField("Longacre", 2.0, entropy.NewSource(7))
	f.Sow()
	f.Growth = 0.5
	if yield := f.Harvest(3.0); yield != 0 {
		t.Fatalf("half-grown harvest yielded %d", yield)
	}
	if !f.Sown {
		t.Error("failed harvest cleared the standing crop")
	}
}

func TestFieldSowTwiceRejected(t *testing.T) {
	f := NewField("Longacre", 2.0, entropy.NewSource(7))
	f.Sow()
	f.Growth = 0.4
	if f.Sow() {
		t.Fatal("re-sowing over an established crop succeeded")
	}
}

func TestFieldFactorsStayBounded(t *testing.T) {
	src := entropy.NewSource(13)
	f := NewField("Longacre", 2.0, src)
	f.Sow()
	w := weather.NewSystem(entropy.NewSource(13))
	for day := 0; day < 365; day++ {
		w.AdvanceDay()
		f.UpdateDaily(w.Today())

		for name, val := range map[string]float64{
			"growth":      f.Growth,
			"crop_health": f.CropHealth,
			"moisture":    f.Moisture,
			"pests":       f.PestLevel,
			"weeds":       f.WeedLevel,
		} {
			if val < 0 || val > 1 {
				t.Fatalf("day %d: %s = %f", day, name, val)
			}
		}
		if f.SoilQuality < minSoilQuality || f.SoilQuality > 1 {
			t.Fatalf("day %d: soil quality %f", day, f.SoilQuality)
		}
	}
}
