// Package agents implements villagers: needs-driven rule-based actors that
// plan one prioritized action at a time and execute it against the shared
// resource sites and vendors. Every needs mutation clamps to [0,100];
// skills only ever rise.
package agents

import (
	"fmt"
	"log/slog"

	"github.com/oakvale/villagesim/internal/config"
	"github.com/oakvale/villagesim/internal/entropy"
	"github.com/oakvale/villagesim/internal/items"
	"github.com/oakvale/villagesim/internal/market"
	"github.com/oakvale/villagesim/internal/sites"
	"github.com/oakvale/villagesim/internal/weather"
)

// Occupation is the villager's trade. It drives the work tier of planning.
type Occupation string

const (
	Farmer     Occupation = "farmer"
	Woodcutter Occupation = "woodcutter"
	Fisherman  Occupation = "fisherman"
	Forager    Occupation = "forager"
	Hunter     Occupation = "hunter"
	Tanner     Occupation = "tanner"
	Laborer    Occupation = "laborer"
)

// Occupations lists every trade, in the order new arrivals roll them.
var Occupations = []Occupation{Farmer, Woodcutter, Fisherman, Forager, Hunter, Tanner, Laborer}

// primaryOutput maps a trade to the good it accumulates and sells.
var primaryOutput = map[Occupation]items.ID{
	Farmer:     items.Wheat,
	Woodcutter: items.Wood,
	Fisherman:  items.CookedFish,
	Forager:    items.Berries,
	Hunter:     items.RoastMeat,
	Tanner:     items.Leather,
}

// skillFor maps a trade to the skill its work trains.
var skillFor = map[Occupation]string{
	Farmer:     "farming",
	Woodcutter: "woodcutting",
	Fisherman:  "fishing",
	Forager:    "foraging",
	Hunter:     "hunting",
	Tanner:     "tanning",
	Laborer:    "labor",
}

// Pricing constants for villager-vendor trade, relative to catalog value.
const (
	buyMarkup    = 1.2
	sellDiscount = 0.8

	maxSkill        = 10.0
	genericWageRate = 2.0 // money per hour of generic labor

	hungerHappinessPenalty = 5
	starvationHealthDecay  = 5
)

// World is the read-only view of the environment a villager acts through
// for one day. Villagers never own these; the manager assembles the view
// each tick.
type World struct {
	Forest  *sites.Forest
	River   *sites.River
	Tannery *sites.Tannery
	Field   *sites.Field
	Vendors []*market.Vendor
	Day     weather.Snapshot
}

// ActionRecord is one entry in a villager's append-only history.
type ActionRecord struct {
	Day     int
	Type    ActionType
	Success bool
	Detail  string
}

// Villager is a single simulated person. All state mutation goes through
// its methods; the manager only reads fields and removes the dead.
type Villager struct {
	Name       string
	Age        int
	Occupation Occupation

	Health    int
	Happiness int
	Energy    int

	Money         float64
	DailyEarnings float64
	DailyExpenses float64

	Skills    map[string]float64
	Inventory map[items.ID]int
	Alive     bool

	Plan    []ActionPlan
	History []ActionRecord

	// hungerNoted limits the empty-larder happiness penalty to one hit
	// per daily cycle, however often re-planning runs.
	hungerNoted bool

	src *entropy.Source
	log *slog.Logger
}

// NewVillager creates a living villager with mid-range starting needs and a
// little seed skill in their trade.
func NewVillager(name string, age int, occ Occupation, money float64, src *entropy.Source, log *slog.Logger) *Villager {
	v := &Villager{
		Name:       name,
		Age:        age,
		Occupation: occ,
		Health:     100,
		Happiness:  70,
		Energy:     100,
		Money:      money,
		Skills:     make(map[string]float64),
		Inventory:  make(map[items.ID]int),
		Alive:      true,
		src:        src,
		log:        log.With("villager", name),
	}
	if skill, ok := skillFor[occ]; ok {
		v.Skills[skill] = src.Uniform(1.0, 3.0)
	}
	return v
}

// Skill returns the current level of a skill, zero if never trained.
func (v *Villager) Skill(name string) float64 { return v.Skills[name] }

// adjustNeeds applies deltas with [0,100] clamping.
func (v *Villager) adjustNeeds(health, happiness, energy int) {
	v.Health = clampNeed(v.Health + health)
	v.Happiness = clampNeed(v.Happiness + happiness)
	v.Energy = clampNeed(v.Energy + energy)
}

// gainSkill raises a skill, capped at the mastery ceiling. Skills never
// decrease.
func (v *Villager) gainSkill(name string, amount float64) {
	if amount <= 0 {
		return
	}
	level := v.Skills[name] + amount
	if level > maxSkill {
		level = maxSkill
	}
	v.Skills[name] = level
}

// bestFoodHeld returns the highest-nutrition food in inventory, false if
// none is held.
func (v *Villager) bestFoodHeld() (items.ID, bool) {
	for _, food := range items.Foods {
		if v.Inventory[food] > 0 {
			return food, true
		}
	}
	return "", false
}

// ExecuteNextAction pops the highest-priority planned action and runs it.
// Returns false when nothing was planned, the eligibility check failed, or
// the action itself failed; the caller may re-plan once on failure. A
// villager whose health hits zero dies here and executes nothing further.
func (v *Villager) ExecuteNextAction(w *World, day int) bool {
	if !v.Alive || len(v.Plan) == 0 {
		return false
	}
	plan := v.Plan[0]
	v.Plan = v.Plan[1:]

	if !plan.CanExecute(v) {
		v.log.Debug("action blocked", "action", plan.Type.String(),
			"health", v.Health, "energy", v.Energy, "money", v.Money)
		return false
	}

	ok, detail := v.applyAction(plan, w)

	imp := plan.Impact
	v.adjustNeeds(imp.Health, imp.Happiness, imp.Energy)
	v.Money += imp.Money

	v.History = append(v.History, ActionRecord{Day: day, Type: plan.Type, Success: ok, Detail: detail})
	v.log.Debug("action done", "action", plan.Type.String(), "ok", ok, "detail", detail)

	if v.Health <= 0 {
		v.Die("succumbed after " + plan.Type.String())
		return false
	}
	return ok
}

// applyAction dispatches on action type. Exhaustive over ActionType.
func (v *Villager) applyAction(plan ActionPlan, w *World) (bool, string) {
	switch plan.Type {
	case ActSleep:
		return true, fmt.Sprintf("slept %d hours", plan.Duration)
	case ActEat:
		return v.eat(plan.TargetItem)
	case ActBuy:
		return v.buy(plan.TargetItem, plan.Quantity, w.Vendors)
	case ActSellGoods:
		return v.sell(plan.TargetItem, plan.Quantity, w.Vendors)
	case ActFish:
		return v.fish(w)
	case ActHunt:
		return v.hunt(plan.TargetSpecies, w)
	case ActForage:
		return v.forage(w)
	case ActCutWood:
		return v.cutWood(plan.Duration, w)
	case ActTanneryWork:
		return v.tan(plan.Quantity, w)
	case ActFarmWork:
		return v.farm(w)
	case ActWorkGeneric:
		wage := genericWageRate * float64(plan.Duration)
		v.Money += wage
		v.DailyEarnings += wage
		v.gainSkill(skillFor[v.Occupation], 0.02)
		return true, fmt.Sprintf("worked %d hours for %.1f coins", plan.Duration, wage)
	case ActIdle:
		return true, "idled about the square"
	}
	// Unknown action type is a logic fault: log and treat as a no-op.
	v.log.Warn("unknown action type", "action", int(plan.Type))
	return false, "unknown action"
}

// eat consumes one unit of food. Transactional: the item either exists and
// is fully consumed, or nothing changes.
func (v *Villager) eat(food items.ID) (bool, string) {
	if !items.IsFood(food) {
		return false, fmt.Sprintf("%s is not food", items.Name(food))
	}
	if !items.Remove(v.Inventory, food, 1) {
		return false, fmt.Sprintf("no %s left to eat", items.Name(food))
	}
	v.adjustNeeds(items.Nutrition(food), 0, 0)
	return true, "ate " + items.Name(food)
}

// buy purchases from the first vendor holding stock. Fully succeeds or
// fully fails: money and inventory change together or not at all.
func (v *Villager) buy(item items.ID, qty int, vendors []*market.Vendor) (bool, string) {
	if qty <= 0 {
		return false, "nothing to buy"
	}
	price := items.BaseValue(item) * buyMarkup
	total := price * float64(qty)
	if v.Money < total {
		return false, fmt.Sprintf("cannot afford %d %s", qty, items.Name(item))
	}
	for _, vendor := range vendors {
		if vendor.Stock(item) < qty {
			continue
		}
		if !vendor.SellItemToCustomer(item, qty, price) {
			continue
		}
		v.Money -= total
		v.DailyExpenses += total
		items.Add(v.Inventory, item, qty)
		return true, fmt.Sprintf("bought %d %s from %s", qty, items.Name(item), vendor.ShopName)
	}
	return false, fmt.Sprintf("no vendor has %d %s", qty, items.Name(item))
}

// sell offloads stock to the first vendor able to pay. Transactional.
func (v *Villager) sell(item items.ID, qty int, vendors []*market.Vendor) (bool, string) {
	if qty <= 0 || v.Inventory[item] < qty {
		return false, fmt.Sprintf("not holding %d %s", qty, items.Name(item))
	}
	price := items.BaseValue(item) * sellDiscount
	for _, vendor := range vendors {
		if !vendor.BuyItemFromProducer(item, qty, price) {
			continue
		}
		items.Remove(v.Inventory, item, qty)
		total := price * float64(qty)
		v.Money += total
		v.DailyEarnings += total
		return true, fmt.Sprintf("sold %d %s to %s", qty, items.Name(item), vendor.ShopName)
	}
	return false, fmt.Sprintf("no vendor would buy %s", items.Name(item))
}

func (v *Villager) fish(w *World) (bool, string) {
	if w.River == nil {
		return false, "no river here"
	}
	species := entropy.Pick(v.src, w.River.CatchableSpecies())
	if species == "" {
		v.gainSkill("fishing", 0.01)
		return false, "the water is empty"
	}
	res := w.River.AttemptCatch(species, v.Skill("fishing"), w.Day)
	if res.Err {
		v.log.Warn("fishing fault", "msg", res.Message)
		return false, res.Message
	}
	if !res.Success {
		v.gainSkill("fishing", 0.01)
		v.adjustNeeds(0, -2, 0)
		return false, res.Message
	}
	items.Add(v.Inventory, res.Item, 1)
	if res.Bonus != "" {
		items.Add(v.Inventory, res.Bonus, 1)
	}
	v.gainSkill("fishing", 0.05)
	v.adjustNeeds(0, 3, 0)
	return true, res.Message
}

func (v *Villager) hunt(species string, w *World) (bool, string) {
	if w.Forest == nil {
		return false, "no forest here"
	}
	if species == "" {
		species = entropy.Pick(v.src, w.Forest.HuntableSpecies())
	}
	if species == "" {
		v.gainSkill("hunting", 0.01)
		return false, "the woods are silent"
	}
	res := w.Forest.Hunt(species, v.Skill("hunting"), w.Day)
	if res.Err {
		v.log.Warn("hunting fault", "msg", res.Message)
		return false, res.Message
	}
	if !res.Success {
		v.gainSkill("hunting", 0.01)
		v.adjustNeeds(0, -2, 0)
		return false, res.Message
	}
	items.Add(v.Inventory, items.RoastMeat, res.Meat)
	items.Add(v.Inventory, items.RawHide, res.Hides)
	v.gainSkill("hunting", 0.05*float64(res.Quantity))
	v.adjustNeeds(0, 4, 0)
	return true, res.Message
}

func (v *Villager) forage(w *World) (bool, string) {
	if w.Forest == nil {
		return false, "no forest here"
	}
	yield := w.Forest.Forage(v.Skill("foraging"), w.Day)
	if yield == 0 {
		v.gainSkill("foraging", 0.01)
		v.adjustNeeds(0, -1, 0)
		return false, "found nothing worth picking"
	}
	items.Add(v.Inventory, items.Berries, yield)
	v.gainSkill("foraging", 0.02*float64(yield))
	v.adjustNeeds(0, 2, 0)
	return true, fmt.Sprintf("gathered %d handfuls of berries", yield)
}

// cutWood fells trees at two per hour worked. Skill rises only when wood
// actually comes down.
func (v *Villager) cutWood(hours int, w *World) (bool, string) {
	if w.Forest == nil {
		return false, "no forest here"
	}
	requested := hours * 2
	cut, _ := w.Forest.CutTrees(requested)
	if cut == 0 {
		v.adjustNeeds(0, -2, 0)
		return false, "no standing timber to cut"
	}
	items.Add(v.Inventory, items.Wood, cut)
	v.gainSkill("woodcutting", 0.03*float64(cut))
	v.adjustNeeds(0, 2, 0)
	return true, fmt.Sprintf("felled %d trees", cut)
}

func (v *Villager) tan(hides int, w *World) (bool, string) {
	if w.Tannery == nil {
		return false, "no tannery here"
	}
	held := v.Inventory[items.RawHide]
	if held == 0 {
		return false, "no hides to tan"
	}
	if hides <= 0 || hides > held {
		hides = held
	}
	res := w.Tannery.ProcessHides(hides, v.Skill("tanning"))
	if res.Err || res.HidesUsed == 0 {
		v.gainSkill("tanning", 0.01)
		return false, res.Message
	}
	items.Remove(v.Inventory, items.RawHide, res.HidesUsed)
	items.Add(v.Inventory, items.Leather, res.Leather)
	v.Money += res.Wages
	v.DailyEarnings += res.Wages
	v.gainSkill("tanning", 0.03*float64(res.HidesUsed))
	if res.Accident {
		v.adjustNeeds(-5, -3, 0)
	}
	return true, res.Message
}

// farm works the village field through its cycle: sow when fallow, harvest
// when ripe, otherwise weed and water.
func (v *Villager) farm(w *World) (bool, string) {
	if w.Field == nil {
		return false, "no field here"
	}
	f := w.Field
	switch {
	case !f.Sown:
		if !f.Sow() {
			return false, f.Name + " cannot be sown yet"
		}
		v.gainSkill("farming", 0.03)
		v.adjustNeeds(0, 1, 0)
		return true, "sowed " + f.Name + " with wheat"
	case f.Ready():
		yield := f.Harvest(v.Skill("farming"))
		if yield == 0 {
			v.gainSkill("farming", 0.01)
			v.adjustNeeds(0, -2, 0)
			return false, "the crop came to nothing"
		}
		items.Add(v.Inventory, items.Wheat, yield)
		v.gainSkill("farming", 0.02*float64(yield))
		v.adjustNeeds(0, 4, 0)
		return true, fmt.Sprintf("harvested %d wheat", yield)
	default:
		f.Tend(v.Skill("farming"))
		v.gainSkill("farming", 0.02)
		v.adjustNeeds(0, 1, 0)
		return true, "tended the growing wheat"
	}
}

// Die marks the villager dead. Irreversible; the manager removes the body
// at end of tick.
func (v *Villager) Die(cause string) {
	if !v.Alive {
		return
	}
	v.Alive = false
	v.Health = 0
	v.log.Info("villager died", "cause", cause)
}

// DailyUpdateCycle runs one villager-day: reset daily ledgers, plan, then
// execute up to the configured action cap with a single re-plan on
// failure. A day with nothing planned still burns an idle slot so the
// villager never freezes in place. Ends with the starvation check.
func (v *Villager) DailyUpdateCycle(w *World, p config.Planner, day int) {
	if !v.Alive {
		return
	}
	v.DailyEarnings = 0
	v.DailyExpenses = 0
	v.hungerNoted = false

	v.PlanNextActions(w, p)

	executed := 0
	replanned := false
	for executed < p.MaxActionsPerDay && v.Alive {
		if len(v.Plan) == 0 {
			if executed > 0 || replanned {
				break
			}
			v.Plan = []ActionPlan{newIdlePlan()}
		}
		if v.ExecuteNextAction(w, day) {
			executed++
			if len(v.Plan) == 0 && executed < p.MaxActionsPerDay {
				v.PlanNextActions(w, p)
			}
			continue
		}
		if !v.Alive {
			break
		}
		if replanned {
			break
		}
		replanned = true
		v.PlanNextActions(w, p)
	}

	if v.Alive && v.Energy < 10 && v.Health < 20 {
		// Exhaustion compounds sickness.
		v.adjustNeeds(-starvationHealthDecay, -2, 0)
	}
	if v.Alive && v.Health <= 0 {
		v.Die("starvation and exhaustion")
	}
}

func clampNeed(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
