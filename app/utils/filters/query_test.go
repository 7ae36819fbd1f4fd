package filters

import (
	"net/url"
	"testing"
)

func TestParseQuery(t *testing.T) {
	values := url.Values{
		"category":  {"shirts", "jackets"},
		"stock":     {"risk"},
		"trade_in":  {"trade_in_only"},
		"age":       {"60"},
		"price_min": {"50"},
		"price_max": {"200"},
	}

	criteria := ParseQuery(values)

	if len(criteria.Categories) != 2 {
		t.Errorf("Categories = %v", criteria.Categories)
	}
	if criteria.StockLevel != StockRisk {
		t.Errorf("StockLevel = %q", criteria.StockLevel)
	}
	if criteria.TradeIn != TradeInOnly {
		t.Errorf("TradeIn = %q", criteria.TradeIn)
	}
	if criteria.InventoryAge != Age60 {
		t.Errorf("InventoryAge = %q", criteria.InventoryAge)
	}
	if criteria.PriceRange.Min != 50 || criteria.PriceRange.Max != 200 {
		t.Errorf("PriceRange = %+v", criteria.PriceRange)
	}
}

func TestParseQueryDefaults(t *testing.T) {
	criteria := ParseQuery(url.Values{})

	if criteria.StockLevel != StockAll || criteria.TradeIn != TradeInAll || criteria.InventoryAge != AgeAll {
		t.Errorf("scalar defaults wrong: %+v", criteria)
	}
	if criteria.PriceRange.Max != 0 {
		t.Errorf("absent price params must leave the range unfiltered, got %+v", criteria.PriceRange)
	}
	if criteria.MarginRange.Min != 0 || criteria.MarginRange.Max != 100 {
		t.Errorf("MarginRange = %+v", criteria.MarginRange)
	}
	if ParseQuery(url.Values{"stock": {"bogus"}}).StockLevel != StockAll {
		t.Error("unknown stock value should fall back to all")
	}
}
