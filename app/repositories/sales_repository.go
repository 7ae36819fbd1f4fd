package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/hwickes/restyle-pos/app/models"
	"gorm.io/gorm"
)

type SalesSummary struct {
	SalesCount    int64   `json:"sales_count"`
	Revenue       float64 `json:"revenue"`
	TaxTotal      float64 `json:"tax_total"`
	DiscountTotal float64 `json:"discount_total"`
}

type SaleRepositoryImpl interface {
	Create(ctx context.Context, tx *gorm.DB, sale *models.Sale) error
	GetByID(ctx context.Context, id string) (*models.Sale, error)
	List(ctx context.Context, from, to *time.Time, status string, limit, offset int) ([]models.Sale, int64, error)
	Save(ctx context.Context, tx *gorm.DB, sale *models.Sale) error
	Summary(ctx context.Context, from, to *time.Time) (*SalesSummary, error)
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepositoryImpl {
	return &saleRepository{db}
}

func (s *saleRepository) Create(ctx context.Context, tx *gorm.DB, sale *models.Sale) error {
	return tx.WithContext(ctx).Create(sale).Error
}

func (s *saleRepository) GetByID(ctx context.Context, id string) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.WithContext(ctx).
		Preload("SaleItems").
		Preload("SaleItems.Product").
		Where("id = ?", id).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

func (s *saleRepository) List(ctx context.Context, from, to *time.Time, status string, limit, offset int) ([]models.Sale, int64, error) {
	var sales []models.Sale
	var total int64

	q := s.db.WithContext(ctx).Model(&models.Sale{})
	if from != nil {
		q = q.Where("sold_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("sold_at <= ?", *to)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.
		Preload("SaleItems").
		Order("sold_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sales).Error

	return sales, total, err
}

func (s *saleRepository) Save(ctx context.Context, tx *gorm.DB, sale *models.Sale) error {
	return tx.WithContext(ctx).Save(sale).Error
}

func (s *saleRepository) Summary(ctx context.Context, from, to *time.Time) (*SalesSummary, error) {
	var summary SalesSummary

	q := s.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("COUNT(*) AS sales_count, COALESCE(SUM(total), 0) AS revenue, COALESCE(SUM(tax_total), 0) AS tax_total, COALESCE(SUM(discount_total), 0) AS discount_total").
		Where("status = ?", models.SaleStatusCompleted)
	if from != nil {
		q = q.Where("sold_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("sold_at <= ?", *to)
	}

	if err := q.Scan(&summary).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}
