package filters

import (
	"net/url"
	"strconv"
)

// ParseQuery builds Criteria from request query parameters. Multi-value
// fields repeat the parameter; absent parameters leave the field unfiltered.
func ParseQuery(values url.Values) Criteria {
	criteria := Criteria{
		Categories:   values["category"],
		Fabrics:      values["fabric"],
		Sizes:        values["size"],
		Colors:       values["color"],
		Suppliers:    values["supplier"],
		Locations:    values["location"],
		StockLevel:   StockAll,
		MarginRange:  Range{Min: 0, Max: 100},
		TradeIn:      TradeInAll,
		InventoryAge: AgeAll,
	}

	switch StockLevel(values.Get("stock")) {
	case StockIn:
		criteria.StockLevel = StockIn
	case StockRisk:
		criteria.StockLevel = StockRisk
	case StockOut:
		criteria.StockLevel = StockOut
	}

	switch TradeInFilter(values.Get("trade_in")) {
	case TradeInOnly:
		criteria.TradeIn = TradeInOnly
	case NonTradeIn:
		criteria.TradeIn = NonTradeIn
	}

	switch InventoryAge(values.Get("age")) {
	case Age30:
		criteria.InventoryAge = Age30
	case Age60:
		criteria.InventoryAge = Age60
	case Age90:
		criteria.InventoryAge = Age90
	}

	criteria.PriceRange.Min = parseFloat(values.Get("price_min"))
	criteria.PriceRange.Max = parseFloat(values.Get("price_max"))
	if min := values.Get("margin_min"); min != "" {
		criteria.MarginRange.Min = parseFloat(min)
	}
	if max := values.Get("margin_max"); max != "" {
		criteria.MarginRange.Max = parseFloat(max)
	}

	return criteria
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
