package fakers

import (
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/hwickes/restyle-pos/app/models"
)

var (
	categories = []string{"shirts", "trousers", "dresses", "jackets", "knitwear", "shoes", "accessories"}
	fabrics    = []string{"cotton", "wool", "silk", "linen", "denim", "leather"}
	sizes      = []string{"XS", "S", "M", "L", "XL", "8", "10", "12", "14"}
	colors     = []string{"black", "white", "navy", "red", "green", "brown", "cream"}
)

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}

// ProductFaker builds a random rail item. Supplier and location come from the
// caller so seeded products spread across the seeded reference data.
func ProductFaker(supplierID, locationID *string) *models.Product {
	name := pick(colors) + " " + pick(fabrics) + " " + faker.Word()
	productID := uuid.New().String()

	cost := decimal.NewFromInt(int64(rand.Intn(60) + 5))
	price := cost.Mul(decimal.NewFromFloat(1.5 + rand.Float64()*2)).Round(2)

	purchased := time.Now().AddDate(0, 0, -rand.Intn(120))

	product := &models.Product{
		ID:               productID,
		Name:             name,
		Slug:             slug.Make(name) + "-" + productID[:8],
		Sku:              "SKU-" + productID[:8],
		Description:      faker.Sentence(),
		Category:         pick(categories),
		Fabric:           pick(fabrics),
		Size:             pick(sizes),
		Color:            pick(colors),
		SupplierID:       supplierID,
		LocationID:       locationID,
		UnitCost:         cost,
		UnitPrice:        price,
		TaxRate:          decimal.NewFromInt(20),
		ReorderThreshold: 1,
		Stock:            rand.Intn(4) + 1,
		TrackStock:       true,
		IsRegistered:     rand.Intn(2) == 0,
		PurchaseDate:     &purchased,
	}

	switch rand.Intn(5) {
	case 0:
		product.IsTradeIn = true
		product.TradeInStatus = models.TradeInPending
	case 1:
		product.IsConsignment = true
		product.ConsignmentSupplierID = supplierID
		start := purchased
		end := start.AddDate(0, 3, 0)
		product.ConsignmentStartDate = &start
		product.ConsignmentEndDate = &end
		product.ConsignmentTerms = "60 day consignment, payout at agreed cost"
	}

	return product
}
