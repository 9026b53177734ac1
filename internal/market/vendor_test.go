package market

import (
	"testing"

	"github.com/oakvale/villagesim/internal/items"
)

func TestSellItemToCustomer(t *testing.T) {
	v := NewVendor("Mira", "Grocer", map[items.ID]int{items.Bread: 3}, 10)

	if !v.SellItemToCustomer(items.Bread, 2, 1.5) {
		t.Fatal("sale of in-stock item refused")
	}
	if v.Stock(items.Bread) != 1 {
		t.Errorf("stock = %d, want 1", v.Stock(items.Bread))
	}
	if v.Money != 13 {
		t.Errorf("money = %v, want 13", v.Money)
	}
}

func TestSellInsufficientStockNoMutation(t *testing.T) {
	v := NewVendor("Mira", "Grocer", map[items.ID]int{items.Bread: 1}, 10)
	if v.SellItemToCustomer(items.Bread, 2, 1.5) {
		t.Fatal("oversold")
	}
	if v.Stock(items.Bread) != 1 || v.Money != 10 {
		t.Errorf("failed sale mutated vendor: stock=%d money=%v", v.Stock(items.Bread), v.Money)
	}
}

func TestBuyItemFromProducer(t *testing.T) {
	v := NewVendor("Garrick", "Forge", nil, 5)

	if v.BuyItemFromProducer(items.Leather, 20, 0.5) {
		t.Fatal("purchase beyond vendor funds accepted")
	}
	if v.Money != 5 || v.Stock(items.Leather) != 0 {
		t.Errorf("failed purchase mutated vendor: money=%v stock=%d", v.Money, v.Stock(items.Leather))
	}

	if !v.BuyItemFromProducer(items.Leather, 4, 0.5) {
		t.Fatal("affordable purchase refused")
	}
	if v.Money != 3 || v.Stock(items.Leather) != 4 {
		t.Errorf("purchase applied wrong amounts: money=%v stock=%d", v.Money, v.Stock(items.Leather))
	}
}

func TestNonPositiveQuantities(t *testing.T) {
	v := NewVendor("Lyra", "Inn", map[items.ID]int{items.Wine: 2}, 50)
	if v.SellItemToCustomer(items.Wine, 0, 5) || v.BuyItemFromProducer(items.Wine, -1, 5) {
		t.Fatal("non-positive quantity accepted")
	}
}
