package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	SaleStatusCompleted = "completed"
	SaleStatusVoided    = "voided"

	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentOther    = "other"
)

type Sale struct {
	ID       string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Code     string `gorm:"size:50;unique;not null" json:"code"`
	StaffID  string `gorm:"size:36;index" json:"staff_id"`
	Staff    *User  `gorm:"foreignKey:StaffID" json:"-"`

	// Free-text till operator name, distinct from the signed-in account.
	StaffMemberName string `gorm:"size:255" json:"staff_member_name"`

	Payment string `gorm:"size:20;not null" json:"payment"`

	SaleItems []SaleItem `json:"sale_items,omitempty"`

	Subtotal      decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"subtotal"`
	TaxTotal      decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"tax_total"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"discount_total"`
	Total         decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"`

	CustomerName  string `gorm:"size:255" json:"customer_name"`
	CustomerEmail string `gorm:"size:255" json:"customer_email"`
	Notes         string `gorm:"type:text" json:"notes"`
	SignatureData string `gorm:"type:mediumtext" json:"signature_data,omitempty"`

	Status     string     `gorm:"size:20;default:completed;index" json:"status"`
	VoidReason string     `gorm:"type:text" json:"void_reason,omitempty"`
	VoidedAt   *time.Time `json:"voided_at,omitempty"`

	SoldAt    time.Time `gorm:"not null;index" json:"sold_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
