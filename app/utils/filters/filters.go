package filters

// Pure view-state transforms for the product browser. Criteria is ephemeral
// filter state, never a cache of record truth; every function returns a new
// value and leaves its input untouched.

type StockLevel string

const (
	StockAll  StockLevel = "all"
	StockIn   StockLevel = "in"
	StockRisk StockLevel = "risk"
	StockOut  StockLevel = "out"
)

type TradeInFilter string

const (
	TradeInAll  TradeInFilter = "all"
	TradeInOnly TradeInFilter = "trade_in_only"
	NonTradeIn  TradeInFilter = "non_trade_in"
)

type InventoryAge string

const (
	AgeAll InventoryAge = "all"
	Age30  InventoryAge = "30"
	Age60  InventoryAge = "60"
	Age90  InventoryAge = "90"
)

type Field string

const (
	FieldCategories   Field = "categories"
	FieldFabrics      Field = "fabrics"
	FieldSizes        Field = "sizes"
	FieldColors       Field = "colors"
	FieldSuppliers    Field = "suppliers"
	FieldLocations    Field = "locations"
	FieldStockLevel   Field = "stockLevel"
	FieldTradeIn      Field = "isTradeIn"
	FieldInventoryAge Field = "inventoryAge"
	FieldPriceRange   Field = "priceRange"
	FieldMarginRange  Field = "marginRange"
	FieldSearch       Field = "searchQuery"
)

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Criteria struct {
	Categories []string `json:"categories"`
	Fabrics    []string `json:"fabrics"`
	Sizes      []string `json:"sizes"`
	Colors     []string `json:"colors"`
	Suppliers  []string `json:"suppliers"`
	Locations  []string `json:"locations"`

	StockLevel   StockLevel    `json:"stock_level"`
	PriceRange   Range         `json:"price_range"`
	MarginRange  Range         `json:"margin_range"`
	TradeIn      TradeInFilter `json:"is_trade_in"`
	InventoryAge InventoryAge  `json:"inventory_age"`
}

// Options are the available filter values derived from the catalogue; they
// supply the defaults a cleared field falls back to.
type Options struct {
	Categories []string `json:"categories"`
	Fabrics    []string `json:"fabrics"`
	Sizes      []string `json:"sizes"`
	Colors     []string `json:"colors"`
	PriceRange Range    `json:"price_range"`
}

func Default(opts Options) Criteria {
	return Criteria{
		Categories:   []string{},
		Fabrics:      []string{},
		Sizes:        []string{},
		Colors:       []string{},
		Suppliers:    []string{},
		Locations:    []string{},
		StockLevel:   StockAll,
		PriceRange:   opts.PriceRange,
		MarginRange:  Range{Min: 0, Max: 100},
		TradeIn:      TradeInAll,
		InventoryAge: AgeAll,
	}
}

func contains(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}

func without(values []string, v string) []string {
	out := make([]string, 0, len(values))
	for _, item := range values {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

func toggled(values []string, v string) []string {
	if contains(values, v) {
		return without(values, v)
	}
	out := make([]string, 0, len(values)+1)
	out = append(out, values...)
	return append(out, v)
}

func (c Criteria) setValues(field Field, values []string) Criteria {
	switch field {
	case FieldCategories:
		c.Categories = values
	case FieldFabrics:
		c.Fabrics = values
	case FieldSizes:
		c.Sizes = values
	case FieldColors:
		c.Colors = values
	case FieldSuppliers:
		c.Suppliers = values
	case FieldLocations:
		c.Locations = values
	}
	return c
}

func (c Criteria) values(field Field) []string {
	switch field {
	case FieldCategories:
		return c.Categories
	case FieldFabrics:
		return c.Fabrics
	case FieldSizes:
		return c.Sizes
	case FieldColors:
		return c.Colors
	case FieldSuppliers:
		return c.Suppliers
	case FieldLocations:
		return c.Locations
	}
	return nil
}

// Toggle flips membership of value in a set-valued field.
func (c Criteria) Toggle(field Field, value string) Criteria {
	return c.setValues(field, toggled(c.values(field), value))
}

// Remove resets a scalar field to its default, or removes one value from a
// set-valued field.
func (c Criteria) Remove(field Field, value string, opts Options) Criteria {
	switch field {
	case FieldStockLevel:
		c.StockLevel = StockAll
	case FieldTradeIn:
		c.TradeIn = TradeInAll
	case FieldInventoryAge:
		c.InventoryAge = AgeAll
	case FieldPriceRange:
		c.PriceRange = opts.PriceRange
	case FieldMarginRange:
		c.MarginRange = Range{Min: 0, Max: 100}
	default:
		c = c.setValues(field, without(c.values(field), value))
	}
	return c
}

// ActiveCount is the number of filters diverging from their defaults; each
// selected set value counts once.
func (c Criteria) ActiveCount(opts Options) int {
	count := len(c.Categories) + len(c.Fabrics) + len(c.Sizes) + len(c.Colors) + len(c.Suppliers) + len(c.Locations)
	if c.StockLevel != StockAll {
		count++
	}
	if c.TradeIn != TradeInAll {
		count++
	}
	if c.InventoryAge != AgeAll {
		count++
	}
	if c.PriceRange != opts.PriceRange {
		count++
	}
	if (c.MarginRange != Range{Min: 0, Max: 100}) {
		count++
	}
	return count
}
