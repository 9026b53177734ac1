// Package sites implements the shared resource sites villagers extract value
// from: the forest, the river, and the tannery. Each site updates once per
// day from the weather snapshot before any villager acts, and every stock
// mutation is bounded: counts never go below zero or above the day's
// computed capacity, normalized factors stay in [0,1].
package sites

import (
	"fmt"
	"math"

	"github.com/oakvale/villagesim/internal/entropy"
	"github.com/oakvale/villagesim/internal/weather"
)

// Forest tuning constants.
const (
	maxTreesPerSqKm          = 1500
	saplingSpawnRate         = 0.02 // per mature tree per day, before modifiers
	saplingMaturationRate    = 0.10
	youngMaturationRate      = 0.05
	baseTreeMortality        = 0.005
	wildlifeCapacityPerSqKm  = 200
	wildlifeReproductionRate = 0.15
	wildlifeMortalityRate    = 0.10

	huntBaseChance  = 0.3
	huntSkillBonus  = 0.08 // per skill level
	minAttemptOdds  = 0.01
	maxAttemptOdds  = 0.90
	forageBaseYield = 2.0
)

// speciesParams describes one huntable species.
type speciesParams struct {
	rarity    float64 // 1.0 most common
	escape    float64 // chance the animal gets away
	meatYield int     // meat units per animal
	hideYield int     // hides per animal
	minSkill  float64
}

// huntSpecies is the fixed wildlife parameter table.
var huntSpecies = map[string]speciesParams{
	"deer":     {rarity: 0.6, escape: 0.35, meatYield: 3, hideYield: 1, minSkill: 1.0},
	"boar":     {rarity: 0.4, escape: 0.30, meatYield: 4, hideYield: 1, minSkill: 2.0},
	"rabbit":   {rarity: 0.9, escape: 0.50, meatYield: 1, hideYield: 0, minSkill: 0.5},
	"fox":      {rarity: 0.5, escape: 0.45, meatYield: 1, hideYield: 1, minSkill: 1.5},
	"bird":     {rarity: 0.8, escape: 0.55, meatYield: 1, hideYield: 0, minSkill: 0.5},
	"squirrel": {rarity: 0.9, escape: 0.60, meatYield: 1, hideYield: 0, minSkill: 0.5},
}

// Forest is a regenerating woodland with tiered tree stock and wildlife.
type Forest struct {
	Name string
	Size float64 // square kilometers

	MatureTrees int
	YoungTrees  int
	Saplings    int

	Wildlife map[string]int

	// Normalized environmental factors, recomputed daily.
	Health      float64
	Moisture    float64
	Fertility   float64
	Undergrowth float64
	TreeDensity float64
	FireRisk    float64
	Disease     float64
	Pests       float64

	DailyTreesCut int

	src *entropy.Source
}

// NewForest creates a forest scaled to size, with wildlife populations
// started at roughly half carrying capacity.
func NewForest(name string, size float64, src *entropy.Source) *Forest {
	f := &Forest{
		Name:        name,
		Size:        size,
		MatureTrees: int(1000 * size),
		YoungTrees:  int(500 * size),
		Saplings:    int(800 * size),
		Wildlife:    make(map[string]int),
		Health:      0.8,
		Moisture:    0.6,
		Fertility:   0.7,
		Undergrowth: 0.5,
		FireRisk:    0.1,
		Disease:     0.05,
		Pests:       0.1,
		src:         src,
	}
	basePerSpecies := wildlifeCapacityPerSqKm * size / float64(len(huntSpecies)) * 0.5
	for _, species := range speciesOrder {
		pop := int(basePerSpecies * src.Uniform(0.7, 1.3))
		if pop < 5 {
			pop = 5
		}
		f.Wildlife[species] = pop
	}
	f.updateTreeDensity()
	return f
}

// speciesOrder fixes wildlife iteration order for deterministic updates.
var speciesOrder = []string{"deer", "rabbit", "fox", "bird", "squirrel", "boar"}

// UpdateDaily recomputes environmental factors and applies growth, decay,
// and population dynamics for one day.
func (f *Forest) UpdateDaily(day weather.Snapshot) {
	f.updateMoistureAndFire(day)
	f.updateTreeGrowth(day)
	f.updateWildlife(day)
	f.updateDiseaseAndPests(day)
	f.Health = f.computeHealth()
	f.updateTreeDensity()
	f.updateUndergrowth(day)
	f.DailyTreesCut = 0
}

func (f *Forest) updateMoistureAndFire(day weather.Snapshot) {
	f.Moisture += day.Precipitation * 0.1
	evaporation := 0.01 + math.Max(0, day.Temperature-10)/500
	evaporation *= 1.0 - f.TreeDensity*0.5 // canopy shade
	f.Moisture = clamp01(f.Moisture - evaporation)

	dryness := 1.0 - f.Moisture
	tempFactor := math.Max(0, day.Temperature-15) / 20
	risk := dryness*0.5 + tempFactor*0.3 + f.Undergrowth*0.2
	switch day.Condition {
	case weather.Storm:
		risk *= 0.5
		if f.src.Chance(0.05) { // lightning strike
			risk += 0.3
		}
	case weather.LightRain, weather.HeavyRain, weather.Snowy:
		risk *= 0.2
	}
	f.FireRisk = clamp01(risk + f.src.Uniform(-0.05, 0.05))
}

// growthConditions multiplies the factors that gate maturation and seeding.
func (f *Forest) growthConditions(day weather.Snapshot) float64 {
	var seasonMod float64
	switch day.Season {
	case weather.Spring:
		seasonMod = 1.0
	case weather.Summer:
		seasonMod = 0.8
	case weather.Autumn:
		seasonMod = 0.2
	default: // winter: dormant
		seasonMod = 0.0
	}

	var tempMod float64
	switch {
	case day.Temperature >= 10 && day.Temperature <= 25:
		tempMod = 1.0
	case day.Temperature >= 5 && day.Temperature <= 30:
		tempMod = 0.5
	}

	cond := seasonMod * tempMod * f.Health * f.Moisture * f.Fertility *
		(1.0 - f.TreeDensity*0.3) *
		(1.0 - f.Disease*0.5) *
		(1.0 - f.Pests*0.5)
	return math.Max(0, cond)
}

func (f *Forest) updateTreeGrowth(day weather.Snapshot) {
	cond := f.growthConditions(day)

	newSaplings := int(float64(f.MatureTrees) * saplingSpawnRate * cond * f.src.Uniform(0.8, 1.2))
	f.Saplings += newSaplings

	maturing := int(float64(f.Saplings) * saplingMaturationRate * cond * f.src.Uniform(0.7, 1.3))
	maturing = min(maturing, f.Saplings)
	f.Saplings -= maturing
	f.YoungTrees += maturing

	promoted := int(float64(f.YoungTrees) * youngMaturationRate * cond * f.src.Uniform(0.7, 1.3))
	promoted = min(promoted, f.YoungTrees)
	f.YoungTrees -= promoted
	f.MatureTrees += promoted

	matureRate := baseTreeMortality + (1.0-f.Health)*0.01 + f.Disease*0.02 + f.Pests*0.02
	youngRate := matureRate * 1.5
	saplingRate := matureRate * 2.0

	drought := day.Season == weather.Summer && f.Moisture < 0.1 && day.Temperature > 30
	if day.Condition == weather.Blizzard || drought {
		matureRate *= 1.5
		youngRate *= 2.0
		saplingRate *= 2.5
	}
	if day.Condition == weather.Storm && f.src.Chance(0.1) {
		matureRate *= 1.2
		youngRate *= 1.5
	}

	f.MatureTrees -= min(f.MatureTrees, int(float64(f.MatureTrees)*matureRate*f.src.Uniform(0.8, 1.2)))
	f.YoungTrees -= min(f.YoungTrees, int(float64(f.YoungTrees)*youngRate*f.src.Uniform(0.8, 1.2)))
	f.Saplings -= min(f.Saplings, int(float64(f.Saplings)*saplingRate*f.src.Uniform(0.8, 1.2)))

	// Nutrient drain from growth, decomposition from dieback.
	f.Fertility -= 0.0001
	f.Fertility += matureRate * float64(f.MatureTrees) * 0.00001
	f.Fertility = clamp(f.Fertility, 0.1, 1.0)

	f.enforceCrowdingCap()
}

// enforceCrowdingCap holds the stand at the land's carrying capacity, in
// the same mature-equivalent units the density formula uses. Overflow dies
// off from the youngest tiers up.
func (f *Forest) enforceCrowdingCap() {
	over := float64(f.MatureTrees) + float64(f.YoungTrees)*0.5 +
		float64(f.Saplings)*0.1 - f.Size*maxTreesPerSqKm
	if over <= 0 {
		return
	}
	die := min(f.Saplings, int(math.Ceil(over/0.1)))
	f.Saplings -= die
	over -= float64(die) * 0.1
	if over > 0 {
		die = min(f.YoungTrees, int(math.Ceil(over/0.5)))
		f.YoungTrees -= die
		over -= float64(die) * 0.5
	}
	if over > 0 {
		f.MatureTrees -= min(f.MatureTrees, int(math.Ceil(over)))
	}
}

func (f *Forest) updateWildlife(day weather.Snapshot) {
	baseCapacity := f.Size * wildlifeCapacityPerSqKm
	envMod := f.Health * f.Undergrowth * (1.0 - f.Pests*0.3)

	seasonCapacity := 1.0
	switch day.Season {
	case weather.Winter:
		seasonCapacity = 0.4
	case weather.Autumn:
		seasonCapacity = 0.8
	case weather.Spring:
		seasonCapacity = 1.2
	}
	totalCapacity := baseCapacity * envMod * seasonCapacity

	reproMod := 1.0
	switch day.Season {
	case weather.Spring:
		reproMod = 1.5
	case weather.Winter:
		reproMod = 0.2
	}

	mortMod := 1.0
	if day.Season == weather.Winter {
		mortMod = 1.8
	}
	switch day.Condition {
	case weather.Blizzard:
		mortMod *= 2.5
	case weather.Storm:
		mortMod *= 1.5
	}
	if f.Moisture < 0.1 && day.Temperature > 30 {
		mortMod *= 1.5
	}

	perSpeciesCapacity := math.Max(1, totalCapacity/float64(len(speciesOrder)))
	for _, species := range speciesOrder {
		pop := f.Wildlife[species]
		if pop == 0 {
			continue
		}
		births := 0
		if float64(pop) < perSpeciesCapacity {
			births = int(float64(pop) * wildlifeReproductionRate * reproMod *
				(1.0 - float64(pop)/(perSpeciesCapacity+1)))
		}
		deaths := int(float64(pop) * wildlifeMortalityRate * mortMod)
		deaths = min(deaths, pop)
		f.Wildlife[species] = max(0, pop+births-deaths)
	}
}

func (f *Forest) updateDiseaseAndPests(day weather.Snapshot) {
	spread := f.TreeDensity * 0.01 * (1.0 - f.Health*0.5)
	if day.Temperature > 5 && day.Temperature < 28 {
		f.Disease += spread * f.src.Uniform(0.5, 1.5)
	} else {
		f.Disease += spread * 0.2 * f.src.Uniform(0.5, 1.5)
	}
	f.Disease = clamp01(f.Disease - 0.01*f.Health)

	pestActivity := 0.0
	switch day.Season {
	case weather.Spring, weather.Summer:
		pestActivity = 1.0
	case weather.Autumn:
		pestActivity = 0.5
	}
	f.Pests += (1.0 - f.Health) * 0.02 * pestActivity * f.src.Uniform(0.5, 1.5)

	totalWildlife := 0
	for _, pop := range f.Wildlife {
		totalWildlife += pop
	}
	diversity := float64(totalWildlife) / (f.Size*wildlifeCapacityPerSqKm + 1) * 0.1
	f.Pests = clamp01(f.Pests - (0.005 + diversity*0.01))
}

func (f *Forest) computeHealth() float64 {
	total := f.MatureTrees + f.YoungTrees + f.Saplings
	distHealth := 0.1
	if total > 0 {
		matureRatio := float64(f.MatureTrees) / float64(total)
		youngRatio := float64(f.YoungTrees) / float64(total)
		saplingRatio := float64(f.Saplings) / float64(total)
		distHealth = 1.0 - (math.Abs(matureRatio-0.4)+math.Abs(youngRatio-0.3)+math.Abs(saplingRatio-0.3))*0.5
		distHealth = math.Max(0.1, distHealth)
	}

	totalWildlife := 0
	for _, pop := range f.Wildlife {
		totalWildlife += pop
	}
	wildlifeIndicator := math.Min(1.0,
		float64(totalWildlife)/(f.Size*wildlifeCapacityPerSqKm+1)*0.5+0.5)

	h := distHealth*0.25 +
		f.Moisture*1.5*0.20 +
		f.Fertility*0.10 +
		(1.0-math.Abs(f.TreeDensity-0.6))*0.10 +
		(1.0-f.Disease)*0.10 +
		(1.0-f.Pests)*0.10 +
		(1.0-f.FireRisk*0.5)*0.05 +
		wildlifeIndicator*0.10
	return clamp(h, 0.05, 1.0)
}

func (f *Forest) updateTreeDensity() {
	effective := float64(f.MatureTrees) + float64(f.YoungTrees)*0.5 + float64(f.Saplings)*0.1
	maxTrees := f.Size * maxTreesPerSqKm
	if maxTrees <= 0 {
		f.TreeDensity = 0
		return
	}
	f.TreeDensity = math.Min(1.0, effective/maxTrees)
}

func (f *Forest) updateUndergrowth(day weather.Snapshot) {
	var growth float64
	switch day.Season {
	case weather.Spring:
		growth = 0.1
	case weather.Summer:
		growth = 0.05
	case weather.Autumn:
		growth = -0.05
	case weather.Winter:
		growth = -0.1
	}
	light := 1.0 - f.TreeDensity*0.7
	f.Undergrowth += growth * f.Moisture * light * f.Fertility * f.src.Uniform(0.5, 1.5)
	f.Undergrowth = clamp(f.Undergrowth, 0.05, 1.0)
}

// CutBreakdown reports how a felling request split across tree tiers.
type CutBreakdown struct {
	Mature int
	Young  int
}

// CutTrees fells up to requested trees, mature stock first, then young.
// Saplings are never cut. Returns the actual count felled and its tier split.
func (f *Forest) CutTrees(requested int) (int, CutBreakdown) {
	if requested <= 0 {
		return 0, CutBreakdown{}
	}
	var bd CutBreakdown
	bd.Mature = min(requested, f.MatureTrees)
	f.MatureTrees -= bd.Mature
	cut := bd.Mature
	if cut < requested {
		bd.Young = min(requested-cut, f.YoungTrees)
		f.YoungTrees -= bd.Young
		cut += bd.Young
	}
	f.DailyTreesCut += cut
	f.updateTreeDensity()

	// Felling compacts soil and stresses the stand slightly.
	scale := float64(cut) / (f.Size*100 + 1)
	f.Fertility = math.Max(0.1, f.Fertility-0.001*scale*100)
	f.Health = math.Max(0.1, f.Health-0.0005*scale*100)
	return cut, bd
}

// HuntResult reports one hunting attempt. Zero quantity with Success false
// and no Err is an ordinary miss, not a fault.
type HuntResult struct {
	Success  bool
	Quantity int
	Meat     int
	Hides    int
	Message  string
	Err      bool // true only for invalid input (unknown species)
}

// HuntableSpecies returns species with a living population, in fixed order.
func (f *Forest) HuntableSpecies() []string {
	out := make([]string, 0, len(speciesOrder))
	for _, species := range speciesOrder {
		if f.Wildlife[species] > 0 {
			out = append(out, species)
		}
	}
	return out
}

// Hunt attempts to take one animal of the given species. The odds combine
// base chance, hunter skill, weather suitability, rarity and escape chance,
// clamped to [0.01, 0.90]. On success the population drops by exactly one.
func (f *Forest) Hunt(species string, skill float64, day weather.Snapshot) HuntResult {
	params, known := huntSpecies[species]
	if !known {
		return HuntResult{Err: true, Message: fmt.Sprintf("unknown species %q", species)}
	}
	if f.Wildlife[species] <= 0 {
		return HuntResult{Message: fmt.Sprintf("no %s left in %s", species, f.Name)}
	}
	if skill < params.minSkill {
		return HuntResult{Message: fmt.Sprintf("%s requires hunting skill %.1f", species, params.minSkill)}
	}

	odds := huntBaseChance + skill*huntSkillBonus
	odds -= (1.0 - params.rarity) * 0.3
	odds -= params.escape * 0.5
	switch day.Condition {
	case weather.Clear, weather.Cloudy:
		odds += 0.1
	case weather.Storm, weather.Blizzard, weather.Hail:
		odds -= 0.2
	}
	if day.Season == weather.Winter {
		odds -= 0.1 // sparse, wary game
	}
	odds = clamp(odds, minAttemptOdds, maxAttemptOdds)

	if !f.src.Chance(odds) {
		return HuntResult{Message: fmt.Sprintf("the %s got away", species)}
	}

	f.Wildlife[species]--
	return HuntResult{
		Success:  true,
		Quantity: 1,
		Meat:     params.meatYield,
		Hides:    params.hideYield,
		Message:  fmt.Sprintf("took one %s", species),
	}
}

// Forage gathers wild food from the undergrowth. Yield scales with
// undergrowth density, season, and a little skill; it can be zero in deep
// winter without being an error.
func (f *Forest) Forage(skill float64, day weather.Snapshot) int {
	seasonMod := 1.0
	switch day.Season {
	case weather.Autumn:
		seasonMod = 1.4 // berry season
	case weather.Winter:
		seasonMod = 0.2
	}
	expected := forageBaseYield * f.Undergrowth * seasonMod * (1.0 + skill*0.1)
	yield := int(expected * f.src.Uniform(0.5, 1.5))
	if yield < 0 {
		yield = 0
	}
	// Gathering tramples a little undergrowth.
	f.Undergrowth = math.Max(0.05, f.Undergrowth-0.002*float64(yield))
	return yield
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
