package agents

import (
	"sort"

	"github.com/oakvale/villagesim/internal/config"
	"github.com/oakvale/villagesim/internal/entropy"
	"github.com/oakvale/villagesim/internal/items"
)

// Skill floors for acquisition-tier fishing and hunting.
const (
	fishMinSkill = 0.5
	huntMinSkill = 1.0
)

// PlanNextActions replaces the villager's plan with the single best
// candidate for the day. Candidates are proposed in survival, acquisition,
// work, and surplus tiers; the highest priority wins, insertion order
// breaking ties. An empty result is legal and handled by the execution
// loop's idle fallback.
func (v *Villager) PlanNextActions(w *World, p config.Planner) {
	v.Plan = v.Plan[:0]
	if !v.Alive {
		return
	}

	var candidates []ActionPlan

	// Survival: rest.
	if v.Energy < p.SleepEnergyThreshold {
		candidates = append(candidates, newSleepPlan(8))
	}

	// Survival: eat. Real hunger preempts work; at moderate health the
	// meal waits until nothing more productive bids. An empty larder
	// costs happiness once per day and falls through to acquisition
	// whether or not health is already suffering.
	food, hasFood := v.bestFoodHeld()
	switch {
	case !hasFood:
		if !v.hungerNoted {
			v.adjustNeeds(0, -hungerHappinessPenalty, 0)
			v.hungerNoted = true
		}
		candidates = append(candidates, v.acquisitionPlans(w, p)...)
	case v.Health < p.HungerHealthThreshold:
		candidates = append(candidates, newEatPlan(food, priorityEat))
	case v.Health < p.EatHealthThreshold:
		candidates = append(candidates, newEatPlan(food, priorityEatLow))
	}

	// Occupation work.
	if v.Energy > p.WorkEnergyThreshold && v.Health > p.WorkHealthThreshold {
		if plan, ok := v.workPlan(w, p); ok {
			candidates = append(candidates, plan)
		}
	}

	// Sell surplus of the trade's primary output.
	if output, ok := primaryOutput[v.Occupation]; ok {
		if held := v.Inventory[output]; held > p.SurplusThreshold {
			candidates = append(candidates, newSellPlan(output, held/2))
		}
	}

	if len(candidates) == 0 {
		return
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})
	v.Plan = append(v.Plan, candidates[0])
}

// acquisitionPlans proposes food-getting actions in decreasing specificity:
// forage, fish, hunt, then buying a staple.
func (v *Villager) acquisitionPlans(w *World, p config.Planner) []ActionPlan {
	var out []ActionPlan
	if w.Forest != nil {
		out = append(out, newForagePlan(priorityAcquire))
	}
	if w.River != nil && v.Skill("fishing") >= fishMinSkill {
		out = append(out, newFishPlan(priorityAcquire-1))
	}
	if w.Forest != nil && v.Skill("hunting") >= huntMinSkill {
		species := entropy.Pick(v.src, w.Forest.HuntableSpecies())
		if species != "" {
			out = append(out, newHuntPlan(species, priorityAcquire-2))
		}
	}
	staple := items.Bread
	if v.Money >= items.BaseValue(staple)*buyMarkup && v.Money >= p.BuyMinMoney &&
		v.Health < p.BuyHealthThreshold {
		out = append(out, newBuyPlan(staple, 1, priorityAcquire-3))
	}
	return out
}

// workPlan dispatches on occupation. Tanners without hides propose buying
// some instead, when affordable.
func (v *Villager) workPlan(w *World, p config.Planner) (ActionPlan, bool) {
	switch v.Occupation {
	case Woodcutter:
		if w.Forest != nil {
			return newCutWoodPlan(4), true
		}
	case Hunter:
		if w.Forest != nil && v.Skill("hunting") >= huntMinSkill {
			species := entropy.Pick(v.src, w.Forest.HuntableSpecies())
			if species != "" {
				return newHuntPlan(species, priorityWork), true
			}
		}
	case Fisherman:
		if w.River != nil && v.Skill("fishing") >= fishMinSkill {
			return newFishPlan(priorityWork), true
		}
	case Forager:
		if w.Forest != nil {
			return newForagePlan(priorityWork), true
		}
	case Tanner:
		if w.Tannery == nil {
			break
		}
		if held := v.Inventory[items.RawHide]; held > 0 {
			return newTanneryPlan(held), true
		}
		hidePrice := items.BaseValue(items.RawHide) * buyMarkup
		if v.Money >= hidePrice*3 {
			return newBuyPlan(items.RawHide, 3, priorityWork), true
		}
	case Farmer:
		if w.Field != nil {
			return newFarmWorkPlan(5), true
		}
		return newGenericWorkPlan(6), true
	case Laborer:
		return newGenericWorkPlan(6), true
	}
	return ActionPlan{}, false
}
