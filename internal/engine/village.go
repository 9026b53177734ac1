// Package engine drives the village simulation. The VillageManager owns
// the population, the resource sites, and the vendors, and advances the
// whole village one day per tick in a fixed step order: weather, sites,
// villagers, removals, settlement, migration, stats.
package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/oakvale/villagesim/internal/agents"
	"github.com/oakvale/villagesim/internal/config"
	"github.com/oakvale/villagesim/internal/entropy"
	"github.com/oakvale/villagesim/internal/items"
	"github.com/oakvale/villagesim/internal/market"
	"github.com/oakvale/villagesim/internal/sites"
	"github.com/oakvale/villagesim/internal/weather"
)

// Settlement economics constants.
const (
	consolidationShare = 0.2 // of holdings above the surplus threshold
	exportThreshold    = 50  // resource storage units before exporting
	exportPriceFactor  = 0.9
	importPriceFactor  = 1.1
	foodSecurityDays   = 3 // food units per head considered secure
)

// Attractiveness weights. They sum to 1.0.
const (
	weightHappiness = 0.30
	weightHealth    = 0.20
	weightFood      = 0.25
	weightWealth    = 0.15
	weightSafety    = 0.10
)

// Event is a notable occurrence in the village.
type Event struct {
	Day         int    `json:"day"`
	Category    string `json:"category"` // "death", "migration", "trade", "weather"
	Description string `json:"description"`
}

// maxEventsKept bounds the in-memory event log.
const maxEventsKept = 500

// VillageStats are aggregates recomputed at the end of every tick.
type VillageStats struct {
	Day              int     `json:"day"`
	Population       int     `json:"population"`
	AverageHappiness float64 `json:"average_happiness"`
	AverageHealth    float64 `json:"average_health"`
	Attractiveness   float64 `json:"attractiveness"`
	Treasury         float64 `json:"treasury"`
	FoodStored       int     `json:"food_stored"`
	DeathsTotal      int     `json:"deaths_total"`
	ImmigrantsTotal  int     `json:"immigrants_total"`
	EmigrantsTotal   int     `json:"emigrants_total"`
}

// VillageManager is the single owner of all simulation state for one run.
type VillageManager struct {
	ID   uuid.UUID
	Name string
	Day  int

	Weather *weather.System
	Forest  *sites.Forest
	River   *sites.River
	Tannery *sites.Tannery
	Field   *sites.Field
	Vendors []*market.Vendor

	// Treasury may go negative: the village can run a debt.
	Treasury        float64
	FoodStorage     map[items.ID]int
	ResourceStorage map[items.ID]int

	Stats  VillageStats
	Events []Event

	villagers map[string]*agents.Villager
	order     []string // insertion order, fixes iteration for a given seed

	cooldownUntil int // no migration events before this day
	deathsInWindow int

	cfg     config.Tuning
	src     *entropy.Source
	spawner *agents.Spawner
	log     *slog.Logger
}

// NewVillageManager creates an empty manager. Call InitializeVillage before
// ticking.
func NewVillageManager(cfg config.Tuning, log *slog.Logger) *VillageManager {
	src := entropy.NewSource(cfg.Seed)
	return &VillageManager{
		ID:              uuid.New(),
		Name:            cfg.Village.Name,
		Weather:         weather.NewSystem(src),
		Treasury:        cfg.Village.StartingTreasury,
		FoodStorage:     make(map[items.ID]int),
		ResourceStorage: make(map[items.ID]int),
		villagers:       make(map[string]*agents.Villager),
		cfg:             cfg,
		src:             src,
		spawner:         agents.NewSpawner(src, log),
		log:             log.With("village", cfg.Village.Name),
	}
}

// InitializeVillage builds the sites, opens the starter shops, and spawns
// the founding population.
func (m *VillageManager) InitializeVillage() {
	m.Forest = sites.NewForest(m.Name+" Forest", m.cfg.Village.ForestSizeSqKm, m.src)
	m.River = sites.NewRiver(m.cfg.Village.RiverName, m.src)
	m.Tannery = sites.NewTannery(m.Name+" Tannery", m.River, m.src)
	m.Field = sites.NewField(m.Name+" Field", m.cfg.Village.FieldSizeHectares, m.src)
	m.Vendors = market.StarterVendors()

	for _, v := range m.spawner.SpawnPopulation(m.cfg.Village.InitialVillagers) {
		m.addVillager(v)
	}
	m.refreshStats()
	m.log.Info("village founded",
		"villagers", len(m.villagers),
		"treasury", m.Treasury,
		"forest_sq_km", m.cfg.Village.ForestSizeSqKm)
}

func (m *VillageManager) addVillager(v *agents.Villager) {
	if _, exists := m.villagers[v.Name]; exists {
		return
	}
	m.villagers[v.Name] = v
	m.order = append(m.order, v.Name)
}

// Villager returns a villager by name.
func (m *VillageManager) Villager(name string) (*agents.Villager, bool) {
	v, ok := m.villagers[name]
	return v, ok
}

// Villagers returns the living population in insertion order.
func (m *VillageManager) Villagers() []*agents.Villager {
	out := make([]*agents.Villager, 0, len(m.order))
	for _, name := range m.order {
		if v, ok := m.villagers[name]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Population returns the current head count.
func (m *VillageManager) Population() int { return len(m.villagers) }

func (m *VillageManager) record(category, format string, args ...any) {
	m.Events = append(m.Events, Event{
		Day:         m.Day,
		Category:    category,
		Description: fmt.Sprintf(format, args...),
	})
	if len(m.Events) > maxEventsKept {
		m.Events = m.Events[len(m.Events)-maxEventsKept:]
	}
}

// RecentEvents returns up to n most recent events, newest last.
func (m *VillageManager) RecentEvents(n int) []Event {
	if n <= 0 || n > len(m.Events) {
		n = len(m.Events)
	}
	return m.Events[len(m.Events)-n:]
}

// SimulateDailyTick advances the village one day. Step order matters:
// sites see the new weather before villagers act, the dead are removed
// before settlement, and stats reflect the finished day.
func (m *VillageManager) SimulateDailyTick() {
	m.Day++

	m.Weather.AdvanceDay()
	day := m.Weather.Today()
	if day.Condition == weather.Storm || day.Condition == weather.Blizzard {
		m.record("weather", "%s sweeps over %s", day.Condition, m.Name)
	}

	m.Forest.UpdateDaily(day)
	m.River.UpdateDaily(day)
	m.Tannery.UpdateDaily(day)
	m.Field.UpdateDaily(day)

	world := &agents.World{
		Forest:  m.Forest,
		River:   m.River,
		Tannery: m.Tannery,
		Field:   m.Field,
		Vendors: m.Vendors,
		Day:     day,
	}
	for _, name := range m.order {
		v, ok := m.villagers[name]
		if !ok || !v.Alive {
			continue
		}
		v.DailyUpdateCycle(world, m.cfg.Planner, m.Day)
	}

	m.removeDead()
	m.settle()
	m.processMigration()
	m.refreshStats()

	m.log.Info("day complete",
		"day", m.Day,
		"season", day.Season.String(),
		"condition", day.Condition.String(),
		"population", m.Population(),
		"treasury", m.Treasury)
}

// removeDead drops villagers who died during the loop. Removal happens
// after the loop so the population map never mutates mid-iteration.
func (m *VillageManager) removeDead() {
	survivors := m.order[:0]
	for _, name := range m.order {
		v, ok := m.villagers[name]
		if !ok {
			continue
		}
		if v.Alive {
			survivors = append(survivors, name)
			continue
		}
		delete(m.villagers, name)
		m.Stats.DeathsTotal++
		m.deathsInWindow++
		m.record("death", "%s has died", name)
		m.log.Info("villager removed", "villager", name, "day", m.Day)
	}
	m.order = survivors
}

// settle runs village-level economics: consolidate occupational surplus
// into storage, then export gluts and import against shortfalls. Either
// trade silently skips when funds or stock fall short.
func (m *VillageManager) settle() {
	for _, name := range m.order {
		v := m.villagers[name]
		heldItems := make([]items.ID, 0, len(v.Inventory))
		for item := range v.Inventory {
			heldItems = append(heldItems, item)
		}
		sort.Slice(heldItems, func(i, j int) bool { return heldItems[i] < heldItems[j] })
		for _, item := range heldItems {
			held := v.Inventory[item]
			if held <= m.cfg.Planner.SurplusThreshold {
				continue
			}
			take := int(float64(held-m.cfg.Planner.SurplusThreshold) * consolidationShare)
			if take == 0 {
				continue
			}
			if !items.Remove(v.Inventory, item, take) {
				continue
			}
			compensation := items.BaseValue(item) * 0.8 * float64(take)
			v.Money += compensation
			m.Treasury -= compensation
			if items.IsFood(item) {
				items.Add(m.FoodStorage, item, take)
			} else {
				items.Add(m.ResourceStorage, item, take)
			}
		}
	}

	// Export resource gluts to the outside market.
	for _, item := range []items.ID{items.Wood, items.Leather, items.Stone} {
		held := m.ResourceStorage[item]
		if held <= exportThreshold {
			continue
		}
		qty := held - exportThreshold
		if !items.Remove(m.ResourceStorage, item, qty) {
			continue
		}
		revenue := items.BaseValue(item) * exportPriceFactor * float64(qty)
		m.Treasury += revenue
		m.record("trade", "exported %d %s for %.1f coins", qty, items.Name(item), revenue)
	}

	// Import staples when food security slips.
	need := m.Population()*foodSecurityDays - m.totalFoodStored()
	if need > 0 {
		cost := items.BaseValue(items.Wheat) * importPriceFactor * float64(need)
		if m.Treasury >= cost {
			m.Treasury -= cost
			items.Add(m.FoodStorage, items.Wheat, need)
			m.record("trade", "imported %d wheat for %.1f coins", need, cost)
		} else {
			m.log.Warn("import skipped, treasury short",
				"need", need, "cost", cost, "treasury", m.Treasury)
		}
	}
}

func (m *VillageManager) totalFoodStored() int {
	total := 0
	for _, qty := range m.FoodStorage {
		total += qty
	}
	return total
}

// Attractiveness scores how inviting the village looks to outsiders, in
// [0,1]: happiness, health, food security, treasury per head, and recent
// stability all weigh in.
func (m *VillageManager) Attractiveness() float64 {
	pop := m.Population()
	if pop == 0 {
		return 0
	}
	var happiness, health float64
	for _, name := range m.order {
		v := m.villagers[name]
		happiness += float64(v.Happiness)
		health += float64(v.Health)
	}
	happiness /= float64(pop) * 100
	health /= float64(pop) * 100

	foodSecurity := minf(1, float64(m.totalFoodStored())/float64(pop*foodSecurityDays))
	wealth := minf(1, m.Treasury/float64(pop)/100)
	if wealth < 0 {
		wealth = 0
	}
	safety := 1.0 - minf(1, float64(m.deathsInWindow)/float64(pop))

	return weightHappiness*happiness +
		weightHealth*health +
		weightFood*foodSecurity +
		weightWealth*wealth +
		weightSafety*safety
}

// processMigration runs the periodic in/out-flow check. It fires only on
// check days, respects the cooldown after any event, and never pushes the
// population past the cap or below the floor.
func (m *VillageManager) processMigration() {
	mc := m.cfg.Migration
	if m.Day%mc.CheckIntervalDays != 0 || m.Day < m.cooldownUntil {
		return
	}
	attractiveness := m.Attractiveness()
	m.deathsInWindow = 0

	switch {
	case attractiveness > mc.HighAttractiveness:
		room := mc.PopulationCap - m.Population()
		if room <= 0 {
			return
		}
		batch := min(m.src.Between(1, mc.MaxImmigrants), room)
		for i := 0; i < batch; i++ {
			v := m.spawner.Spawn()
			m.addVillager(v)
			m.record("migration", "%s arrived seeking a better life", v.Name)
		}
		m.Stats.ImmigrantsTotal += batch
		m.cooldownUntil = m.Day + mc.CooldownDays
		m.log.Info("immigration", "day", m.Day, "arrivals", batch,
			"attractiveness", attractiveness)

	case attractiveness < mc.LowAttractiveness:
		spare := m.Population() - mc.PopulationFloor
		if spare <= 0 {
			return
		}
		batch := min(m.src.Between(1, mc.MaxEmigrants), spare)
		for _, name := range m.unhappiest(batch) {
			delete(m.villagers, name)
			m.removeFromOrder(name)
			m.record("migration", "%s packed up and left", name)
		}
		m.Stats.EmigrantsTotal += batch
		m.cooldownUntil = m.Day + mc.CooldownDays
		m.log.Info("emigration", "day", m.Day, "departures", batch,
			"attractiveness", attractiveness)
	}
}

// unhappiest returns the n names with the lowest happiness+health, worst
// first, ties broken by insertion order.
func (m *VillageManager) unhappiest(n int) []string {
	names := make([]string, len(m.order))
	copy(names, m.order)
	misery := func(name string) int {
		v := m.villagers[name]
		return v.Happiness + v.Health
	}
	sort.SliceStable(names, func(i, j int) bool {
		return misery(names[i]) < misery(names[j])
	})
	if n > len(names) {
		n = len(names)
	}
	return names[:n]
}

func (m *VillageManager) removeFromOrder(name string) {
	for i, existing := range m.order {
		if existing == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

// refreshStats recomputes the aggregate snapshot from current state.
func (m *VillageManager) refreshStats() {
	pop := m.Population()
	stats := VillageStats{
		Day:             m.Day,
		Population:      pop,
		Treasury:        m.Treasury,
		FoodStored:      m.totalFoodStored(),
		DeathsTotal:     m.Stats.DeathsTotal,
		ImmigrantsTotal: m.Stats.ImmigrantsTotal,
		EmigrantsTotal:  m.Stats.EmigrantsTotal,
	}
	if pop > 0 {
		var happiness, health float64
		for _, name := range m.order {
			v := m.villagers[name]
			happiness += float64(v.Happiness)
			health += float64(v.Health)
		}
		stats.AverageHappiness = happiness / float64(pop)
		stats.AverageHealth = health / float64(pop)
	}
	stats.Attractiveness = m.Attractiveness()
	m.Stats = stats
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
