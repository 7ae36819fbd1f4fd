package filters

import "testing"

var testOpts = Options{
	Categories: []string{"Shirts", "Pants"},
	Fabrics:    []string{"Cotton", "Silk"},
	Sizes:      []string{"S", "M", "L"},
	Colors:     []string{"Black", "White"},
	PriceRange: Range{Min: 0, Max: 5000},
}

func TestToggleAddsAndRemoves(t *testing.T) {
	c := Default(testOpts)

	c = c.Toggle(FieldCategories, "Shirts")
	if len(c.Categories) != 1 || c.Categories[0] != "Shirts" {
		t.Fatalf("after first toggle, Categories = %v", c.Categories)
	}

	c = c.Toggle(FieldCategories, "Shirts")
	if len(c.Categories) != 0 {
		t.Fatalf("after second toggle, Categories = %v", c.Categories)
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	base := Default(testOpts)
	base.Fabrics = []string{"Cotton"}

	_ = base.Toggle(FieldFabrics, "Silk")

	if len(base.Fabrics) != 1 {
		t.Errorf("input criteria mutated: Fabrics = %v", base.Fabrics)
	}
}

func TestRemoveScalarFieldsResetToDefault(t *testing.T) {
	c := Default(testOpts)
	c.StockLevel = StockOut
	c.TradeIn = TradeInOnly
	c.InventoryAge = Age90
	c.PriceRange = Range{Min: 100, Max: 500}
	c.MarginRange = Range{Min: 20, Max: 80}

	c = c.Remove(FieldStockLevel, "", testOpts)
	c = c.Remove(FieldTradeIn, "", testOpts)
	c = c.Remove(FieldInventoryAge, "", testOpts)
	c = c.Remove(FieldPriceRange, "", testOpts)
	c = c.Remove(FieldMarginRange, "", testOpts)

	if c.ActiveCount(testOpts) != 0 {
		t.Errorf("ActiveCount = %d after clearing every field, want 0", c.ActiveCount(testOpts))
	}
}

func TestRemoveSetValue(t *testing.T) {
	c := Default(testOpts)
	c.Colors = []string{"Black", "White"}

	c = c.Remove(FieldColors, "Black", testOpts)

	if len(c.Colors) != 1 || c.Colors[0] != "White" {
		t.Errorf("Colors = %v, want [White]", c.Colors)
	}
}

func TestActiveCount(t *testing.T) {
	c := Default(testOpts)
	if got := c.ActiveCount(testOpts); got != 0 {
		t.Fatalf("default criteria ActiveCount = %d, want 0", got)
	}

	c.Categories = []string{"Shirts", "Pants"}
	c.StockLevel = StockIn
	c.PriceRange = Range{Min: 50, Max: 100}

	if got := c.ActiveCount(testOpts); got != 4 {
		t.Errorf("ActiveCount = %d, want 4", got)
	}
}

func TestChips(t *testing.T) {
	suppliers := []NamedRef{{ID: "sup-1", Name: "Harrow Vintage"}}
	locations := []NamedRef{{ID: "loc-1", Name: "Back Room"}}

	c := Default(testOpts)
	c.Categories = []string{"Shirts"}
	c.Suppliers = []string{"sup-1", "sup-missing"}
	c.Locations = []string{"loc-1"}
	c.StockLevel = StockRisk
	c.InventoryAge = Age30

	chips := c.Chips("linen", suppliers, locations, testOpts)

	want := map[string]bool{
		`Search: "linen"`:         false,
		"Category: Shirts":        false,
		"Supplier: Harrow Vintage": false,
		"Location: Back Room":     false,
		"Stock: At Risk":          false,
		"Age: 30+ days":           false,
	}
	for _, chip := range chips {
		if _, ok := want[chip.Label]; ok {
			want[chip.Label] = true
		}
	}
	for label, seen := range want {
		if !seen {
			t.Errorf("missing chip %q in %v", label, chips)
		}
	}

	// Unknown supplier ids produce no chip.
	if len(chips) != len(want) {
		t.Errorf("got %d chips, want %d", len(chips), len(want))
	}
}
