package repositories

import (
	"context"

	"github.com/hwickes/restyle-pos/app/models"
	"gorm.io/gorm"
)

type SaleItemRepositoryImpl interface {
	BulkCreate(ctx context.Context, tx *gorm.DB, items []models.SaleItem) error
	ListBySale(ctx context.Context, saleID string) ([]models.SaleItem, error)
	Save(ctx context.Context, tx *gorm.DB, item *models.SaleItem) error
}

type saleItemRepository struct {
	db *gorm.DB
}

func NewSaleItemRepository(db *gorm.DB) SaleItemRepositoryImpl {
	return &saleItemRepository{db}
}

func (s *saleItemRepository) BulkCreate(ctx context.Context, tx *gorm.DB, items []models.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (s *saleItemRepository) ListBySale(ctx context.Context, saleID string) ([]models.SaleItem, error) {
	var items []models.SaleItem
	err := s.db.WithContext(ctx).Preload("Product").Where("sale_id = ?", saleID).Find(&items).Error
	return items, err
}

func (s *saleItemRepository) Save(ctx context.Context, tx *gorm.DB, item *models.SaleItem) error {
	return tx.WithContext(ctx).Save(item).Error
}
