package repositories

import (
	"context"

	"github.com/hwickes/restyle-pos/app/models"
	"gorm.io/gorm"
)

type StockRepositoryImpl interface {
	Create(ctx context.Context, tx *gorm.DB, adjustment *models.StockAdjustment) error
	ListByProduct(ctx context.Context, productID string, limit int) ([]models.StockAdjustment, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepositoryImpl {
	return &stockRepository{db}
}

func (s *stockRepository) Create(ctx context.Context, tx *gorm.DB, adjustment *models.StockAdjustment) error {
	return tx.WithContext(ctx).Create(adjustment).Error
}

func (s *stockRepository) ListByProduct(ctx context.Context, productID string, limit int) ([]models.StockAdjustment, error) {
	var adjustments []models.StockAdjustment
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&adjustments).Error
	return adjustments, err
}
