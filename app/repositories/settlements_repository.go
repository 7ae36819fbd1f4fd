package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/hwickes/restyle-pos/app/models"
	"gorm.io/gorm"
)

var ErrSettlementAlreadyPaid = errors.New("settlement is already paid or missing")

type SettlementRepositoryImpl interface {
	BulkCreate(ctx context.Context, tx *gorm.DB, settlements []models.ConsignmentSettlement) error
	GetByID(ctx context.Context, id string) (*models.ConsignmentSettlement, error)
	ListByProductIDs(ctx context.Context, productIDs []string) ([]models.ConsignmentSettlement, error)
	ListBySale(ctx context.Context, saleID string) ([]models.ConsignmentSettlement, error)
	DeleteUnpaidBySale(ctx context.Context, tx *gorm.DB, saleID string) error
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error

	// OwedPayout is the outstanding consignment liability: payouts for sold
	// stock not yet paid out.
	OwedPayout(ctx context.Context) (float64, error)
}

type settlementRepository struct {
	db *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) SettlementRepositoryImpl {
	return &settlementRepository{db}
}

func (s *settlementRepository) BulkCreate(ctx context.Context, tx *gorm.DB, settlements []models.ConsignmentSettlement) error {
	if len(settlements) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&settlements).Error
}

func (s *settlementRepository) GetByID(ctx context.Context, id string) (*models.ConsignmentSettlement, error) {
	var settlement models.ConsignmentSettlement
	if err := s.db.WithContext(ctx).Preload("Product").Preload("Sale").Where("id = ?", id).First(&settlement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settlement, nil
}

func (s *settlementRepository) ListByProductIDs(ctx context.Context, productIDs []string) ([]models.ConsignmentSettlement, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var settlements []models.ConsignmentSettlement
	err := s.db.WithContext(ctx).
		Preload("Sale").
		Where("product_id IN ?", productIDs).
		Find(&settlements).Error
	return settlements, err
}

func (s *settlementRepository) ListBySale(ctx context.Context, saleID string) ([]models.ConsignmentSettlement, error) {
	var settlements []models.ConsignmentSettlement
	err := s.db.WithContext(ctx).Where("sale_id = ?", saleID).Find(&settlements).Error
	return settlements, err
}

func (s *settlementRepository) DeleteUnpaidBySale(ctx context.Context, tx *gorm.DB, saleID string) error {
	return tx.WithContext(ctx).
		Where("sale_id = ? AND paid_at IS NULL", saleID).
		Delete(&models.ConsignmentSettlement{}).Error
}

func (s *settlementRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&models.ConsignmentSettlement{}).
		Where("id = ? AND paid_at IS NULL", id).
		Update("paid_at", paidAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Lost the race to a concurrent payout, or the row is gone.
		return ErrSettlementAlreadyPaid
	}
	return nil
}

func (s *settlementRepository) OwedPayout(ctx context.Context) (float64, error) {
	var owed float64
	err := s.db.WithContext(ctx).
		Model(&models.ConsignmentSettlement{}).
		Where("paid_at IS NULL").
		Select("COALESCE(SUM(payout_amount), 0)").
		Scan(&owed).Error
	return owed, err
}
