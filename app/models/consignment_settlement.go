package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopspring/decimal"
)

const (
	ConsignmentActive  = "active"
	ConsignmentSold    = "sold"
	ConsignmentSettled = "settled"
)

// ConsignmentSettlement is written exactly once, at the moment of sale, and is
// the sole source of truth for the item's downstream status.
type ConsignmentSettlement struct {
	ID         string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID  string    `gorm:"size:36;not null;uniqueIndex" json:"product_id"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SaleID     string    `gorm:"size:36;not null;index" json:"sale_id"`
	Sale       *Sale     `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
	SupplierID *string   `gorm:"size:36;index" json:"supplier_id"`
	Supplier   *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	SalePrice    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"sale_price"`
	PayoutAmount decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"payout_amount"`
	PaidAt       *time.Time      `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (cs *ConsignmentSettlement) BeforeCreate(tx *gorm.DB) (err error) {
	if cs.ID == "" {
		cs.ID = uuid.New().String()
	}
	return
}

// Status derives active -> sold -> settled. A nil settlement means active.
func (cs *ConsignmentSettlement) Status() string {
	if cs == nil {
		return ConsignmentActive
	}
	if cs.PaidAt != nil {
		return ConsignmentSettled
	}
	return ConsignmentSold
}
