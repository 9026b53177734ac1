// Package items defines the closed set of tradeable goods and the immutable
// catalog describing them. Inventories throughout the simulation are
// map[ID]int with entries removed at zero quantity.
package items

// ID identifies an item in the catalog.
type ID string

const (
	// Raw materials.
	Wood    ID = "wood"
	Stone   ID = "stone"
	RawHide ID = "raw_hide"
	Leather ID = "leather"
	Fabric  ID = "fabric"

	// Food.
	Wheat      ID = "wheat"
	Apple      ID = "apple"
	Bread      ID = "bread"
	RoastMeat  ID = "roast_meat"
	CookedFish ID = "cooked_fish"
	Berries    ID = "berries"
	Beer       ID = "beer"
	Wine       ID = "wine"

	// Oddities pulled out of the river.
	SoggyBoot ID = "soggy_boot"
	OldCoin   ID = "old_coin"
)

// Kind partitions the catalog for storage routing.
type Kind uint8

const (
	KindMaterial Kind = iota
	KindFood
	KindOddity
)

// Def is one immutable catalog entry.
type Def struct {
	Name      string
	Kind      Kind
	BaseValue float64
	Nutrition int // food only; health restored per unit eaten
	Weight    float64
}

// catalog is the master item table. Loaded once, never mutated.
var catalog = map[ID]Def{
	Wood:    {Name: "Wood", Kind: KindMaterial, BaseValue: 0.1, Weight: 2.0},
	Stone:   {Name: "Stone", Kind: KindMaterial, BaseValue: 0.2, Weight: 5.0},
	RawHide: {Name: "Raw Animal Hide", Kind: KindMaterial, BaseValue: 0.4, Weight: 1.0},
	Leather: {Name: "Leather", Kind: KindMaterial, BaseValue: 0.5, Weight: 1.5},
	Fabric:  {Name: "Fabric", Kind: KindMaterial, BaseValue: 0.3, Weight: 0.2},

	Wheat:      {Name: "Wheat", Kind: KindFood, BaseValue: 0.2, Nutrition: 5, Weight: 1.0},
	Apple:      {Name: "Apple", Kind: KindFood, BaseValue: 0.5, Nutrition: 10, Weight: 0.15},
	Bread:      {Name: "Loaf of Bread", Kind: KindFood, BaseValue: 1.0, Nutrition: 20, Weight: 0.5},
	RoastMeat:  {Name: "Roast Meat", Kind: KindFood, BaseValue: 3.0, Nutrition: 30, Weight: 0.8},
	CookedFish: {Name: "Cooked Fish", Kind: KindFood, BaseValue: 1.5, Nutrition: 18, Weight: 0.4},
	Berries:    {Name: "Wild Berries", Kind: KindFood, BaseValue: 0.3, Nutrition: 8, Weight: 0.1},
	Beer:       {Name: "Beer", Kind: KindFood, BaseValue: 2.0, Nutrition: 5, Weight: 0.33},
	Wine:       {Name: "Wine", Kind: KindFood, BaseValue: 5.0, Nutrition: 10, Weight: 0.75},

	SoggyBoot: {Name: "Soggy Boot", Kind: KindOddity, BaseValue: 0.1, Weight: 0.5},
	OldCoin:   {Name: "Old Coin", Kind: KindOddity, BaseValue: 0.5, Weight: 0.02},
}

// Lookup returns the catalog entry for id. ok is false for unknown items.
func Lookup(id ID) (Def, bool) {
	def, ok := catalog[id]
	return def, ok
}

// Name returns the display name, or the raw id for unknown items.
func Name(id ID) string {
	if def, ok := catalog[id]; ok {
		return def.Name
	}
	return string(id)
}

// BaseValue returns the catalog base value, 0 for unknown items.
func BaseValue(id ID) float64 {
	return catalog[id].BaseValue
}

// Nutrition returns the health restored by one unit; 0 for non-food.
func Nutrition(id ID) int {
	return catalog[id].Nutrition
}

// IsFood reports whether id is edible.
func IsFood(id ID) bool {
	return catalog[id].Kind == KindFood
}

// Foods returns the catalog's food IDs ordered by descending nutrition.
// The order is fixed at package init so callers iterate deterministically.
var Foods = foodsByNutrition()

func foodsByNutrition() []ID {
	out := []ID{RoastMeat, Bread, CookedFish, Wine, Apple, Berries, Wheat, Beer}
	return out
}

// Add increases inv[id] by qty (no-op for qty <= 0).
func Add(inv map[ID]int, id ID, qty int) {
	if qty <= 0 {
		return
	}
	inv[id] += qty
}

// Remove takes qty of id from inv, deleting the entry at zero. Returns false
// without mutating when the inventory holds fewer than qty.
func Remove(inv map[ID]int, id ID, qty int) bool {
	if qty <= 0 {
		return false
	}
	if inv[id] < qty {
		return false
	}
	inv[id] -= qty
	if inv[id] == 0 {
		delete(inv, id)
	}
	return true
}

// Count returns inv[id], 0 when absent.
func Count(inv map[ID]int, id ID) int { return inv[id] }
