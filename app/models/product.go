package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TradeInPending   = "pending"
	TradeInProcessed = "processed"
)

type Product struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Slug        string `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Sku         string `gorm:"size:100;uniqueIndex" json:"sku"`
	Barcode     *string `gorm:"size:100;uniqueIndex" json:"barcode"`
	Description string `gorm:"type:text" json:"description"`

	Category string `gorm:"size:100;index" json:"category"`
	Fabric   string `gorm:"size:100" json:"fabric"`
	Size     string `gorm:"size:50" json:"size"`
	Color    string `gorm:"size:50" json:"color"`

	SupplierID *string   `gorm:"size:36;index" json:"supplier_id"`
	Supplier   *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	LocationID *string   `gorm:"size:36;index" json:"location_id"`
	Location   *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`

	UnitCost         decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_cost"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_price"`
	TaxRate          decimal.Decimal `gorm:"type:decimal(10,2);default:0.00" json:"tax_rate"`
	ReorderThreshold int             `gorm:"default:0" json:"reorder_threshold"`
	Stock            int             `gorm:"not null;default:0" json:"stock"`
	TrackStock       bool            `gorm:"default:true" json:"track_stock"`

	IsTradeIn     bool   `gorm:"default:false" json:"is_trade_in"`
	TradeInStatus string `gorm:"size:20" json:"trade_in_status"`

	IsConsignment         bool       `gorm:"default:false;index" json:"is_consignment"`
	ConsignmentSupplierID *string    `gorm:"size:36;index" json:"consignment_supplier_id"`
	ConsignmentStartDate  *time.Time `json:"consignment_start_date"`
	ConsignmentEndDate    *time.Time `json:"consignment_end_date"`
	ConsignmentTerms      string     `gorm:"type:text" json:"consignment_terms"`

	IsRegistered bool       `gorm:"default:false" json:"is_registered"`
	ImageURL     string     `gorm:"size:512" json:"image_url"`
	PurchaseDate *time.Time `json:"purchase_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
