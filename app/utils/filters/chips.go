package filters

import (
	"fmt"

	"github.com/hwickes/restyle-pos/app/utils/format"
)

type Chip struct {
	Key   Field  `json:"key"`
	Label string `json:"label"`
	Value string `json:"value,omitempty"`
}

// NamedRef resolves supplier and location ids to display names for chips.
type NamedRef struct {
	ID   string
	Name string
}

func lookupName(refs []NamedRef, id string) (string, bool) {
	for _, ref := range refs {
		if ref.ID == id {
			return ref.Name, true
		}
	}
	return "", false
}

// Chips derives the human-readable active-filter list. It is computed, never
// stored.
func (c Criteria) Chips(searchQuery string, suppliers, locations []NamedRef, opts Options) []Chip {
	chips := []Chip{}

	if searchQuery != "" {
		chips = append(chips, Chip{Key: FieldSearch, Label: fmt.Sprintf("Search: %q", searchQuery), Value: searchQuery})
	}

	for _, category := range c.Categories {
		chips = append(chips, Chip{Key: FieldCategories, Label: "Category: " + category, Value: category})
	}
	for _, fabric := range c.Fabrics {
		chips = append(chips, Chip{Key: FieldFabrics, Label: "Fabric: " + fabric, Value: fabric})
	}
	for _, size := range c.Sizes {
		chips = append(chips, Chip{Key: FieldSizes, Label: "Size: " + size, Value: size})
	}
	for _, color := range c.Colors {
		chips = append(chips, Chip{Key: FieldColors, Label: "Color: " + color, Value: color})
	}

	for _, supplierID := range c.Suppliers {
		if name, ok := lookupName(suppliers, supplierID); ok {
			chips = append(chips, Chip{Key: FieldSuppliers, Label: "Supplier: " + name, Value: supplierID})
		}
	}
	for _, locationID := range c.Locations {
		if name, ok := lookupName(locations, locationID); ok {
			chips = append(chips, Chip{Key: FieldLocations, Label: "Location: " + name, Value: locationID})
		}
	}

	if c.StockLevel != StockAll {
		labels := map[StockLevel]string{StockIn: "In Stock", StockRisk: "At Risk", StockOut: "Out of Stock"}
		chips = append(chips, Chip{Key: FieldStockLevel, Label: "Stock: " + labels[c.StockLevel]})
	}

	if c.TradeIn != TradeInAll {
		label := "Non-Trade-In Only"
		if c.TradeIn == TradeInOnly {
			label = "Part Exchange Only"
		}
		chips = append(chips, Chip{Key: FieldTradeIn, Label: label})
	}

	if c.PriceRange != opts.PriceRange {
		chips = append(chips, Chip{
			Key:   FieldPriceRange,
			Label: fmt.Sprintf("Price: %s - %s", format.PoundsFloat(c.PriceRange.Min), format.PoundsFloat(c.PriceRange.Max)),
		})
	}

	if (c.MarginRange != Range{Min: 0, Max: 100}) {
		chips = append(chips, Chip{
			Key:   FieldMarginRange,
			Label: fmt.Sprintf("Margin: %.0f%% - %.0f%%", c.MarginRange.Min, c.MarginRange.Max),
		})
	}

	if c.InventoryAge != AgeAll {
		chips = append(chips, Chip{Key: FieldInventoryAge, Label: fmt.Sprintf("Age: %s+ days", c.InventoryAge)})
	}

	return chips
}
