// Package weather simulates seasons and daily weather conditions. Conditions
// follow a Markov chain whose transition weights are biased by the current
// season; temperature combines a seasonal base, a condition modifier, and a
// smooth noise term over the day index.
package weather

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/oakvale/villagesim/internal/entropy"
)

// Season of the simulated year.
type Season uint8

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

// String returns the season name.
func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	case Winter:
		return "winter"
	default:
		return "unknown"
	}
}

// Condition is the day's dominant weather.
type Condition uint8

const (
	Clear Condition = iota
	Cloudy
	Overcast
	LightRain
	HeavyRain
	Storm
	Foggy
	Snowy
	Blizzard
	Hail
)

// String returns the condition name.
func (c Condition) String() string {
	switch c {
	case Clear:
		return "clear"
	case Cloudy:
		return "cloudy"
	case Overcast:
		return "overcast"
	case LightRain:
		return "light_rain"
	case HeavyRain:
		return "heavy_rain"
	case Storm:
		return "storm"
	case Foggy:
		return "foggy"
	case Snowy:
		return "snowy"
	case Blizzard:
		return "blizzard"
	case Hail:
		return "hail"
	default:
		return "unknown"
	}
}

// DaysPerSeason is the length of a season in simulated days.
const DaysPerSeason = 30

// transition holds one outgoing edge of the weather Markov chain.
type transition struct {
	to     Condition
	weight float64
}

// baseTransitions maps each condition to its candidate successors. Weights
// are relative; they are re-normalized after seasonal adjustment.
var baseTransitions = map[Condition][]transition{
	Clear:     {{Clear, 0.6}, {Cloudy, 0.3}, {LightRain, 0.1}},
	Cloudy:    {{Clear, 0.2}, {Cloudy, 0.4}, {Overcast, 0.2}, {LightRain, 0.1}, {Foggy, 0.1}},
	Overcast:  {{Cloudy, 0.3}, {Overcast, 0.4}, {LightRain, 0.2}, {HeavyRain, 0.1}},
	LightRain: {{Cloudy, 0.4}, {Overcast, 0.3}, {LightRain, 0.2}, {HeavyRain, 0.1}},
	HeavyRain: {{LightRain, 0.4}, {Storm, 0.3}, {Overcast, 0.2}, {HeavyRain, 0.1}},
	Storm:     {{HeavyRain, 0.5}, {Cloudy, 0.3}, {LightRain, 0.2}},
	Foggy:     {{Cloudy, 0.5}, {Foggy, 0.3}, {Clear, 0.2}},
	Snowy:     {{Cloudy, 0.3}, {Snowy, 0.5}, {Blizzard, 0.1}, {Clear, 0.1}},
	Blizzard:  {{Snowy, 0.6}, {Cloudy, 0.3}, {Blizzard, 0.1}},
	Hail:      {{Storm, 0.4}, {HeavyRain, 0.3}, {Cloudy, 0.3}},
}

// seasonalTendencies multiply transition weights per season. Conditions not
// listed keep weight 1.0.
var seasonalTendencies = map[Season]map[Condition]float64{
	Spring: {LightRain: 1.5, Clear: 1.2, Snowy: 0.2, Storm: 1.1},
	Summer: {Clear: 1.8, Storm: 1.3, HeavyRain: 0.8, Snowy: 0.01, Foggy: 0.5},
	Autumn: {Cloudy: 1.3, Foggy: 1.5, LightRain: 1.2, Clear: 0.8, Snowy: 0.3},
	Winter: {Snowy: 2.5, Blizzard: 1.5, Cloudy: 1.2, Overcast: 1.2, Clear: 0.5, LightRain: 0.5, Storm: 0.3},
}

// seasonalBaseTemp is the mean air temperature (Celsius) per season.
var seasonalBaseTemp = map[Season]float64{
	Spring: 12.0,
	Summer: 22.0,
	Autumn: 14.0,
	Winter: 2.0,
}

// conditionTempMod adjusts temperature by condition.
var conditionTempMod = map[Condition]float64{
	Clear: 2.0, Cloudy: 0.0, Overcast: -1.0,
	LightRain: -1.5, HeavyRain: -2.0, Storm: -2.5,
	Foggy: -0.5, Snowy: -5.0, Blizzard: -8.0, Hail: -3.0,
}

// conditionPrecip is precipitation intensity per condition
// (0 = none, 1 = light, 2 = medium, 3 = heavy).
var conditionPrecip = map[Condition]float64{
	Clear: 0.0, Cloudy: 0.0, Overcast: 0.1,
	LightRain: 1.0, HeavyRain: 2.0, Storm: 3.0,
	Foggy: 0.0, Snowy: 1.5, Blizzard: 3.0, Hail: 2.5,
}

// System tracks season and condition and advances one day at a time.
type System struct {
	season      Season
	condition   Condition
	dayInSeason int
	totalDays   int

	src       *entropy.Source
	tempNoise opensimplex.Noise
}

// NewSystem creates a weather system drawing from src. The noise used for
// daily temperature drift is seeded from the same source seed, so two
// systems with equal seeds produce identical weather.
func NewSystem(src *entropy.Source) *System {
	return &System{
		season:      Spring,
		condition:   Cloudy,
		dayInSeason: 1,
		src:         src,
		tempNoise:   opensimplex.NewNormalized(src.Seed()),
	}
}

// AdvanceDay moves the system one day forward, rolling a new condition and
// crossing the season boundary when due.
func (w *System) AdvanceDay() {
	w.dayInSeason++
	w.totalDays++
	w.condition = w.nextCondition()
	if w.dayInSeason > DaysPerSeason {
		w.dayInSeason = 1
		w.season = (w.season + 1) % 4
	}
}

func (w *System) nextCondition() Condition {
	edges := baseTransitions[w.condition]
	tendencies := seasonalTendencies[w.season]

	adjusted := make([]transition, 0, len(edges))
	total := 0.0
	for _, e := range edges {
		weight := e.weight
		if mult, ok := tendencies[e.to]; ok {
			weight *= mult
		}
		// Snow outside winter melts into ordinary rain weather unless it is
		// actually freezing.
		if (e.to == Snowy || e.to == Blizzard) && w.season != Winter && w.Temperature() > 2 {
			weight *= 0.01
		}
		adjusted = append(adjusted, transition{to: e.to, weight: weight})
		total += weight
	}
	if total <= 0 {
		return Cloudy
	}

	roll := w.src.Float() * total
	acc := 0.0
	for _, e := range adjusted {
		acc += e.weight
		if roll <= acc {
			return e.to
		}
	}
	return adjusted[len(adjusted)-1].to
}

// Season returns the current season.
func (w *System) Season() Season { return w.season }

// Condition returns the current weather condition.
func (w *System) Condition() Condition { return w.condition }

// DayInSeason returns the 1-based day within the current season.
func (w *System) DayInSeason() int { return w.dayInSeason }

// TotalDays returns the number of days simulated so far.
func (w *System) TotalDays() int { return w.totalDays }

// Temperature estimates the day's air temperature in Celsius: seasonal base,
// condition modifier, and a ±2° smooth drift over the day index.
func (w *System) Temperature() float64 {
	base := seasonalBaseTemp[w.season]
	mod := conditionTempMod[w.condition]
	drift := (w.tempNoise.Eval2(float64(w.totalDays)*0.15, 0) - 0.5) * 4.0
	return base + mod + drift
}

// Precipitation returns the day's precipitation intensity. Snow outside
// winter is halved when above freezing (melts or falls as slush).
func (w *System) Precipitation() float64 {
	intensity := conditionPrecip[w.condition]
	if (w.condition == Snowy || w.condition == Blizzard) && w.season != Winter && w.Temperature() > 1 {
		return intensity * 0.5
	}
	return intensity
}

// Snapshot is the read-only daily view resource sites and villagers consume.
type Snapshot struct {
	Season        Season
	Condition     Condition
	Temperature   float64
	Precipitation float64
}

// Today captures the current day as an immutable snapshot.
func (w *System) Today() Snapshot {
	return Snapshot{
		Season:        w.season,
		Condition:     w.condition,
		Temperature:   w.Temperature(),
		Precipitation: w.Precipitation(),
	}
}
