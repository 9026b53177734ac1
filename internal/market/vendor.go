// Package market provides the village vendors and their two trade
// primitives. Both primitives are atomic: money and inventory either change
// together by the full transactional amount, or not at all.
package market

import (
	"log/slog"

	"github.com/oakvale/villagesim/internal/items"
)

// Vendor holds a shop inventory and a cash balance.
type Vendor struct {
	Name      string
	ShopName  string
	Inventory map[items.ID]int
	Money     float64
}

// NewVendor creates a vendor with a copy of the given starting stock.
func NewVendor(name, shopName string, stock map[items.ID]int, money float64) *Vendor {
	inv := make(map[items.ID]int, len(stock))
	for id, qty := range stock {
		if qty > 0 {
			inv[id] = qty
		}
	}
	return &Vendor{Name: name, ShopName: shopName, Inventory: inv, Money: money}
}

// SellItemToCustomer debits the vendor's inventory and credits its money.
// Returns false (no mutation) when stock is insufficient or qty <= 0.
func (v *Vendor) SellItemToCustomer(item items.ID, qty int, unitPrice float64) bool {
	if qty <= 0 {
		return false
	}
	if !items.Remove(v.Inventory, item, qty) {
		return false
	}
	v.Money += float64(qty) * unitPrice
	return true
}

// BuyItemFromProducer credits the vendor's inventory and debits its money.
// Returns false (no mutation) when the vendor cannot afford the purchase.
func (v *Vendor) BuyItemFromProducer(item items.ID, qty int, unitPrice float64) bool {
	if qty <= 0 {
		return false
	}
	cost := float64(qty) * unitPrice
	if v.Money < cost {
		slog.Debug("vendor cannot afford purchase",
			"vendor", v.Name, "item", items.Name(item), "qty", qty, "cost", cost)
		return false
	}
	v.Money -= cost
	items.Add(v.Inventory, item, qty)
	return true
}

// Stock returns the held quantity of an item.
func (v *Vendor) Stock(item items.ID) int { return items.Count(v.Inventory, item) }

// StarterVendors returns the three stocked shops every new village opens
// with: a smith, a grocer, and an inn.
func StarterVendors() []*Vendor {
	return []*Vendor{
		NewVendor("Garrick Ironheart", "Ironheart Forge", map[items.ID]int{
			items.Wood:    50,
			items.Stone:   30,
			items.Leather: 20,
			items.Fabric:  15,
			items.RawHide: 5,
		}, 100.0),
		NewVendor("Mira Greenleaf", "Greenleaf Grocer", map[items.ID]int{
			items.Wheat: 100,
			items.Apple: 50,
			items.Bread: 30,
		}, 100.0),
		NewVendor("Lyra", "The Tipsy Griffin", map[items.ID]int{
			items.Beer:       10,
			items.Wine:       20,
			items.CookedFish: 15,
			items.RoastMeat:  10,
			items.Bread:      25,
		}, 100.0),
	}
}
