// Package config holds the simulation tuning table. Defaults are compiled in;
// a YAML file overlays them so runs can be tuned without rebuilding.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning gathers every documented constant of the simulation.
type Tuning struct {
	Seed int64 `yaml:"seed"`

	Village   Village   `yaml:"village"`
	Planner   Planner   `yaml:"planner"`
	Migration Migration `yaml:"migration"`
	API       API       `yaml:"api"`
}

// Village sizes the world at initialization.
type Village struct {
	Name              string  `yaml:"name"`
	InitialVillagers  int     `yaml:"initial_villagers"`
	StartingTreasury  float64 `yaml:"starting_treasury"`
	ForestSizeSqKm    float64 `yaml:"forest_size_sq_km"`
	FieldSizeHectares float64 `yaml:"field_size_hectares"`
	RiverName         string  `yaml:"river_name"`
}

// Planner holds the thresholds the villager planning tiers compare against.
type Planner struct {
	SleepEnergyThreshold  int     `yaml:"sleep_energy_threshold"`  // below this, propose sleep
	HungerHealthThreshold int     `yaml:"hunger_health_threshold"` // below this, eating preempts work
	EatHealthThreshold    int     `yaml:"eat_health_threshold"`    // below this, eat when nothing bids higher
	BuyHealthThreshold    int     `yaml:"buy_health_threshold"`    // below this, consider buying food
	BuyMinMoney           float64 `yaml:"buy_min_money"`
	WorkEnergyThreshold   int     `yaml:"work_energy_threshold"` // above this, occupation work
	WorkHealthThreshold   int     `yaml:"work_health_threshold"`
	SurplusThreshold      int     `yaml:"surplus_threshold"`   // hoard limit before selling
	MaxActionsPerDay      int     `yaml:"max_actions_per_day"` // execution cap per cycle
}

// Migration controls population in- and outflow.
type Migration struct {
	CheckIntervalDays  int     `yaml:"check_interval_days"`
	CooldownDays       int     `yaml:"cooldown_days"`
	HighAttractiveness float64 `yaml:"high_attractiveness"`
	LowAttractiveness  float64 `yaml:"low_attractiveness"`
	MaxImmigrants      int     `yaml:"max_immigrants"`
	MaxEmigrants       int     `yaml:"max_emigrants"`
	PopulationCap      int     `yaml:"population_cap"`
	PopulationFloor    int     `yaml:"population_floor"`
}

// API configures the read-only status server.
type API struct {
	Port int `yaml:"port"`
}

// Default returns the built-in tuning table.
func Default() Tuning {
	var t Tuning
	t.Seed = 42

	t.Village.Name = "Greendale"
	t.Village.InitialVillagers = 10
	t.Village.StartingTreasury = 1000.0
	t.Village.ForestSizeSqKm = 2.0
	t.Village.FieldSizeHectares = 3.0
	t.Village.RiverName = "Clearwater River"

	t.Planner.SleepEnergyThreshold = 30
	t.Planner.HungerHealthThreshold = 40
	t.Planner.EatHealthThreshold = 70
	t.Planner.BuyHealthThreshold = 50
	t.Planner.BuyMinMoney = 10.0
	t.Planner.WorkEnergyThreshold = 50
	t.Planner.WorkHealthThreshold = 50
	t.Planner.SurplusThreshold = 10
	t.Planner.MaxActionsPerDay = 3

	t.Migration.CheckIntervalDays = 7
	t.Migration.CooldownDays = 30
	t.Migration.HighAttractiveness = 0.7
	t.Migration.LowAttractiveness = 0.3
	t.Migration.MaxImmigrants = 5
	t.Migration.MaxEmigrants = 3
	t.Migration.PopulationCap = 1000
	t.Migration.PopulationFloor = 5

	t.API.Port = 8080
	return t
}

// Load reads a YAML tuning file over the defaults. A missing path returns
// the defaults unchanged.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	if err := t.validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

func (t Tuning) validate() error {
	if t.Village.InitialVillagers < 1 {
		return fmt.Errorf("initial_villagers must be >= 1, got %d", t.Village.InitialVillagers)
	}
	if t.Migration.PopulationFloor < 1 {
		return fmt.Errorf("population_floor must be >= 1, got %d", t.Migration.PopulationFloor)
	}
	if t.Migration.PopulationCap < t.Migration.PopulationFloor {
		return fmt.Errorf("population_cap %d below floor %d", t.Migration.PopulationCap, t.Migration.PopulationFloor)
	}
	if t.Planner.MaxActionsPerDay < 1 {
		return fmt.Errorf("max_actions_per_day must be >= 1, got %d", t.Planner.MaxActionsPerDay)
	}
	return nil
}
