package agents

import "github.com/oakvale/villagesim/internal/items"

// ActionType enumerates everything a villager can decide to do. The
// execution dispatch in Villager.ExecuteNextAction is exhaustive over this
// set; adding a value without a handler is a compile-visible gap there.
type ActionType uint8

const (
	ActIdle ActionType = iota
	ActSleep
	ActEat
	ActBuy
	ActSellGoods
	ActFish
	ActHunt
	ActForage
	ActCutWood
	ActTanneryWork
	ActFarmWork
	ActWorkGeneric
)

// String returns the action name.
func (a ActionType) String() string {
	switch a {
	case ActIdle:
		return "idle"
	case ActSleep:
		return "sleep"
	case ActEat:
		return "eat"
	case ActBuy:
		return "buy"
	case ActSellGoods:
		return "sell_goods"
	case ActFish:
		return "fish"
	case ActHunt:
		return "hunt"
	case ActForage:
		return "forage"
	case ActCutWood:
		return "cut_wood"
	case ActTanneryWork:
		return "tannery_work"
	case ActFarmWork:
		return "farm_work"
	case ActWorkGeneric:
		return "work"
	}
	return "unknown"
}

// Requirements gates whether a plan may execute against current state.
// Zero values mean no requirement.
type Requirements struct {
	MinHealth    int
	MinEnergy    int
	MinHappiness int
	MinMoney     float64
}

// Impact is the generic needs delta applied after an action's own effects.
// Domain yields (wood cut, fish landed) are computed during execution, not
// here.
type Impact struct {
	Health    int
	Happiness int
	Energy    int
	Money     float64
}

// ActionPlan is an immutable intent produced by planning and consumed by
// execution within the same day.
type ActionPlan struct {
	Type          ActionType
	TargetItem    items.ID
	TargetSpecies string
	Quantity      int
	Duration      int // hours
	Priority      int
	Requires      Requirements
	Impact        Impact
}

// Planning priority tiers. Within a tier insertion order breaks ties, so
// tier constants only need to separate tiers. Urgent eating outranks work;
// merely topping up health waits until no work bids.
const (
	prioritySleep   = 100
	priorityEat     = 90
	priorityAcquire = 80
	priorityWork    = 50
	priorityEatLow  = 40
	prioritySell    = 30
	priorityIdle    = 0
)

// newSleepPlan rests for hours. Each hour restores 10 energy and 1 health.
func newSleepPlan(hours int) ActionPlan {
	return ActionPlan{
		Type:     ActSleep,
		Duration: hours,
		Priority: prioritySleep,
		Impact:   Impact{Energy: hours * 10, Health: hours * 1},
	}
}

func newEatPlan(food items.ID, priority int) ActionPlan {
	return ActionPlan{
		Type:       ActEat,
		TargetItem: food,
		Quantity:   1,
		Priority:   priority,
		Impact:     Impact{Happiness: 2, Energy: 5},
	}
}

func newBuyPlan(item items.ID, qty, priority int) ActionPlan {
	return ActionPlan{
		Type:       ActBuy,
		TargetItem: item,
		Quantity:   qty,
		Priority:   priority,
		Requires:   Requirements{MinMoney: items.BaseValue(item) * buyMarkup},
	}
}

func newSellPlan(item items.ID, qty int) ActionPlan {
	return ActionPlan{
		Type:       ActSellGoods,
		TargetItem: item,
		Quantity:   qty,
		Priority:   prioritySell,
	}
}

func newFishPlan(priority int) ActionPlan {
	return ActionPlan{
		Type:     ActFish,
		Duration: 3,
		Priority: priority,
		Requires: Requirements{MinEnergy: 15},
		Impact:   Impact{Energy: -10},
	}
}

func newHuntPlan(species string, priority int) ActionPlan {
	return ActionPlan{
		Type:          ActHunt,
		TargetSpecies: species,
		Duration:      5,
		Priority:      priority,
		Requires:      Requirements{MinEnergy: 25, MinHealth: 30},
		Impact:        Impact{Energy: -20},
	}
}

func newForagePlan(priority int) ActionPlan {
	return ActionPlan{
		Type:     ActForage,
		Duration: 3,
		Priority: priority,
		Requires: Requirements{MinEnergy: 10},
		Impact:   Impact{Energy: -10},
	}
}

func newCutWoodPlan(hours int) ActionPlan {
	return ActionPlan{
		Type:     ActCutWood,
		Duration: hours,
		Priority: priorityWork,
		Requires: Requirements{MinEnergy: 20, MinHealth: 30},
		Impact:   Impact{Energy: -15},
	}
}

func newTanneryPlan(hides int) ActionPlan {
	return ActionPlan{
		Type:     ActTanneryWork,
		Quantity: hides,
		Duration: 6,
		Priority: priorityWork,
		Requires: Requirements{MinEnergy: 20, MinHealth: 30},
		Impact:   Impact{Energy: -15},
	}
}

func newFarmWorkPlan(hours int) ActionPlan {
	return ActionPlan{
		Type:     ActFarmWork,
		Duration: hours,
		Priority: priorityWork,
		Requires: Requirements{MinEnergy: 20, MinHealth: 30},
		Impact:   Impact{Energy: -15},
	}
}

func newGenericWorkPlan(hours int) ActionPlan {
	return ActionPlan{
		Type:     ActWorkGeneric,
		Duration: hours,
		Priority: priorityWork,
		Requires: Requirements{MinEnergy: 20},
		Impact:   Impact{Energy: -10},
	}
}

func newIdlePlan() ActionPlan {
	return ActionPlan{
		Type:     ActIdle,
		Priority: priorityIdle,
		Impact:   Impact{Energy: -2},
	}
}

// CanExecute checks the plan's requirements against current villager state.
// It runs immediately before execution, not only at planning time.
func (p ActionPlan) CanExecute(v *Villager) bool {
	r := p.Requires
	return v.Alive &&
		v.Health >= r.MinHealth &&
		v.Energy >= r.MinEnergy &&
		v.Happiness >= r.MinHappiness &&
		v.Money >= r.MinMoney
}
