package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StockReasonIntake = "intake"
	StockReasonSale   = "sale"
	StockReasonVoid   = "void"
	StockReasonEdit   = "sale_edit"
	StockReasonManual = "manual"
)

// StockAdjustment is the audit ledger. Product.Stock stays the on-hand count;
// every mutation of it writes one of these rows alongside.
type StockAdjustment struct {
	ID        string   `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string   `gorm:"size:36;not null;index" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Delta     int      `gorm:"not null" json:"delta"`
	Reason    string   `gorm:"size:20;not null" json:"reason"`
	Note      string   `gorm:"size:255" json:"note"`
	UserID    *string  `gorm:"size:36;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (sa *StockAdjustment) BeforeCreate(tx *gorm.DB) (err error) {
	if sa.ID == "" {
		sa.ID = uuid.New().String()
	}
	return
}
