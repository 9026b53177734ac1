package sites

import (
	"math"

	"github.com/oakvale/villagesim/internal/entropy"
	"github.com/oakvale/villagesim/internal/weather"
)

// Field tuning constants.
const (
	wheatGrowthRate   = 0.04 // growth stage per day, before modifiers
	harvestReadyStage = 0.9
	wheatYieldPerHa   = 8.0 // inventory units at full health
	soilDrainPerCrop  = 0.05
	minSoilQuality    = 0.3
	tendBaseEffect    = 0.10
	tendSkillEffect   = 0.03 // per skill level
	fieldMaintenance  = 0.02 // daily moisture loss beyond weather
	frostDamagePerDay = 0.08
)

// Field is the village's arable land. One wheat crop at a time moves
// through sow, grow, harvest; factors stay in [0,1].
type Field struct {
	Name         string
	SizeHectares float64

	Sown       bool
	Growth     float64 // 0 fallow or just sown, 1 fully ripe
	CropHealth float64

	SoilQuality     float64
	Moisture        float64
	FertilizerLevel float64
	PestLevel       float64
	WeedLevel       float64

	src *entropy.Source
}

// NewField creates a fallow field with decent soil.
func NewField(name string, hectares float64, src *entropy.Source) *Field {
	return &Field{
		Name:         name,
		SizeHectares: hectares,
		SoilQuality:  0.7,
		Moisture:     0.5,
		CropHealth:   1.0,
		src:          src,
	}
}

// UpdateDaily moves moisture with the weather and, when a crop stands,
// advances growth and lets pests and weeds creep in.
func (f *Field) UpdateDaily(day weather.Snapshot) {
	f.Moisture += day.Precipitation * 0.15
	evaporation := fieldMaintenance + math.Max(0, day.Temperature-15)/400
	f.Moisture = clamp01(f.Moisture - evaporation)

	if !f.Sown {
		// Fallow land recovers a little.
		f.SoilQuality = clamp(f.SoilQuality+0.002, minSoilQuality, 1.0)
		f.WeedLevel = clamp01(f.WeedLevel + f.src.Uniform(0, 0.02))
		return
	}

	if day.Temperature < 0 {
		f.CropHealth = clamp01(f.CropHealth - frostDamagePerDay)
	}

	var seasonMod float64
	switch day.Season {
	case weather.Spring:
		seasonMod = 1.0
	case weather.Summer:
		seasonMod = 1.2
	case weather.Autumn:
		seasonMod = 0.6
	default: // winter: dormant
		seasonMod = 0.0
	}

	mod := seasonMod * f.SoilQuality * f.Moisture * f.CropHealth *
		(1.0 + f.FertilizerLevel*0.3) *
		(1.0 - f.PestLevel*0.5) *
		(1.0 - f.WeedLevel*0.3)
	f.Growth = math.Min(1.0, f.Growth+wheatGrowthRate*math.Max(0, mod))

	f.FertilizerLevel = clamp01(f.FertilizerLevel - 0.02)
	if seasonMod > 0 {
		f.PestLevel = clamp01(f.PestLevel + f.src.Uniform(0, 0.05))
		f.WeedLevel = clamp01(f.WeedLevel + f.src.Uniform(0, 0.03))
	}

	healthDelta := 0.0
	if f.Moisture < 0.3 {
		healthDelta -= 0.05
	}
	if f.PestLevel > 0.5 {
		healthDelta -= 0.03
	}
	if f.WeedLevel > 0.7 {
		healthDelta -= 0.02
	}
	f.CropHealth = clamp01(f.CropHealth + healthDelta)
}

// Sow plants wheat on fallow ground. Fails once a crop is established.
func (f *Field) Sow() bool {
	if f.Sown && f.Growth > 0.1 {
		return false
	}
	f.Sown = true
	f.Growth = 0
	f.CropHealth = 1.0
	return true
}

// Tend weeds and waters the crop. Effect scales with farming skill.
func (f *Field) Tend(skill float64) {
	effect := tendBaseEffect + skill*tendSkillEffect
	f.WeedLevel = clamp01(f.WeedLevel - effect)
	f.PestLevel = clamp01(f.PestLevel - effect*0.5)
	f.Moisture = clamp01(f.Moisture + 0.1)
}

// Fertilize enriches the soil for the current crop.
func (f *Field) Fertilize(amount float64) {
	f.FertilizerLevel = clamp01(f.FertilizerLevel + amount)
	f.SoilQuality = clamp(f.SoilQuality+amount*0.1, minSoilQuality, 1.0)
}

// Ready reports whether the crop can be harvested.
func (f *Field) Ready() bool {
	return f.Sown && f.Growth >= harvestReadyStage
}

// Harvest reaps a ready crop and returns the wheat yield, leaving the
// field fallow. An unready field yields nothing and is left standing.
func (f *Field) Harvest(skill float64) int {
	if !f.Ready() {
		return 0
	}
	yield := f.SizeHectares * wheatYieldPerHa * f.Growth * f.CropHealth *
		f.SoilQuality * (1.0 + f.FertilizerLevel*0.2) *
		(0.8 + math.Min(skill, 5)*0.04)

	f.Sown = false
	f.Growth = 0
	f.CropHealth = 1.0
	f.SoilQuality = clamp(f.SoilQuality-soilDrainPerCrop, minSoilQuality, 1.0)
	return int(yield)
}
