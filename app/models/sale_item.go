package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleItem struct {
	ID          string   `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	SaleID      string   `gorm:"size:36;not null;index" json:"sale_id"`
	ProductID   string   `gorm:"size:36;not null;index" json:"product_id"`
	Product     *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductName string   `gorm:"size:255;not null" json:"product_name"`
	ProductSku  string   `gorm:"size:100" json:"product_sku"`

	Qty       int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_price"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_cost"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax_rate"`
	Discount  decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"discount"`
	LineTotal decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"line_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (si *SaleItem) BeforeCreate(tx *gorm.DB) (err error) {
	if si.ID == "" {
		si.ID = uuid.New().String()
	}
	return
}

// LineTotalFor is the sell total for one line: post-discount amount plus tax.
func LineTotalFor(qty int, unitPrice, discount, taxRate decimal.Decimal) decimal.Decimal {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(qty)))
	discounted := subtotal.Sub(discount)
	tax := discounted.Mul(taxRate).Div(decimal.NewFromInt(100))
	return discounted.Add(tax)
}
