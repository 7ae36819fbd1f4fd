package migrations

import (
	"github.com/hwickes/restyle-pos/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Supplier{}, &models.Location{}, &models.Product{}, &models.StockAdjustment{}, &models.Sale{}, &models.SaleItem{}, &models.ConsignmentSettlement{})
}
