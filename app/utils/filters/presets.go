package filters

type PresetType string

const (
	PresetCategory PresetType = "category"
	PresetFabric   PresetType = "fabric"
	PresetStock    PresetType = "stock"
	PresetPrice    PresetType = "price"
)

// Preset is one canned quick-filter fragment. The catalogue is fixed; which
// presets a shop pins to its toolbar is a settings concern.
type Preset struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Type  PresetType `json:"type"`

	Categories []string      `json:"categories,omitempty"`
	Fabrics    []string      `json:"fabrics,omitempty"`
	StockLevel StockLevel    `json:"stock_level,omitempty"`
	TradeIn    TradeInFilter `json:"is_trade_in,omitempty"`
	PriceRange *Range        `json:"price_range,omitempty"`
}

var presetCatalogue = []Preset{
	{ID: "shirts", Label: "Shirts", Type: PresetCategory, Categories: []string{"Shirts"}},
	{ID: "pants", Label: "Pants", Type: PresetCategory, Categories: []string{"Pants"}},
	{ID: "dresses", Label: "Dresses", Type: PresetCategory, Categories: []string{"Dresses"}},
	{ID: "jackets", Label: "Jackets", Type: PresetCategory, Categories: []string{"Jackets"}},
	{ID: "accessories", Label: "Accessories", Type: PresetCategory, Categories: []string{"Accessories"}},

	{ID: "cotton", Label: "Cotton", Type: PresetFabric, Fabrics: []string{"Cotton"}},
	{ID: "silk", Label: "Silk", Type: PresetFabric, Fabrics: []string{"Silk"}},
	{ID: "wool", Label: "Wool", Type: PresetFabric, Fabrics: []string{"Wool"}},
	{ID: "denim", Label: "Denim", Type: PresetFabric, Fabrics: []string{"Denim"}},
	{ID: "leather", Label: "Leather", Type: PresetFabric, Fabrics: []string{"Leather"}},

	{ID: "in-stock", Label: "In Stock", Type: PresetStock, StockLevel: StockIn},
	{ID: "at-risk", Label: "At Risk", Type: PresetStock, StockLevel: StockRisk},
	{ID: "out-of-stock", Label: "Out of Stock", Type: PresetStock, StockLevel: StockOut},

	{ID: "part-exchange", Label: "Part Exchange", Type: PresetStock, TradeIn: TradeInOnly},

	{ID: "under-50", Label: "< £50", Type: PresetPrice, PriceRange: &Range{Min: 0, Max: 50}},
	{ID: "50-100", Label: "£50–£100", Type: PresetPrice, PriceRange: &Range{Min: 50, Max: 100}},
	{ID: "100-500", Label: "£100–£500", Type: PresetPrice, PriceRange: &Range{Min: 100, Max: 500}},
	{ID: "over-500", Label: "> £500", Type: PresetPrice, PriceRange: &Range{Min: 500, Max: 50000}},
}

func Presets() []Preset {
	out := make([]Preset, len(presetCatalogue))
	copy(out, presetCatalogue)
	return out
}

func PresetByID(id string) (Preset, bool) {
	for _, p := range presetCatalogue {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// IsActive reports whether the preset's fragment is reflected in the current
// criteria, used for toolbar highlighting.
func (p Preset) IsActive(c Criteria) bool {
	switch p.Type {
	case PresetCategory:
		for _, cat := range p.Categories {
			if contains(c.Categories, cat) {
				return true
			}
		}
		return false
	case PresetFabric:
		for _, fabric := range p.Fabrics {
			if contains(c.Fabrics, fabric) {
				return true
			}
		}
		return false
	case PresetStock:
		if p.StockLevel != "" {
			return c.StockLevel == p.StockLevel
		}
		if p.TradeIn != "" {
			return c.TradeIn == p.TradeIn
		}
		return false
	case PresetPrice:
		return c.PriceRange == *p.PriceRange
	}
	return false
}

// Toggle applies or clears the preset. An active preset resets its field to
// the default; price presets are mutually exclusive with each other.
func (p Preset) Toggle(c Criteria, opts Options) Criteria {
	active := p.IsActive(c)

	switch p.Type {
	case PresetCategory:
		for _, cat := range p.Categories {
			if active {
				c.Categories = without(c.Categories, cat)
			} else if !contains(c.Categories, cat) {
				c.Categories = append(append([]string{}, c.Categories...), cat)
			}
		}
	case PresetFabric:
		for _, fabric := range p.Fabrics {
			if active {
				c.Fabrics = without(c.Fabrics, fabric)
			} else if !contains(c.Fabrics, fabric) {
				c.Fabrics = append(append([]string{}, c.Fabrics...), fabric)
			}
		}
	case PresetStock:
		if p.StockLevel != "" {
			if active {
				c.StockLevel = StockAll
			} else {
				c.StockLevel = p.StockLevel
			}
		}
		if p.TradeIn != "" {
			if active {
				c.TradeIn = TradeInAll
			} else {
				c.TradeIn = p.TradeIn
			}
		}
	case PresetPrice:
		if active {
			c.PriceRange = opts.PriceRange
		} else {
			c.PriceRange = *p.PriceRange
		}
	}
	return c
}
