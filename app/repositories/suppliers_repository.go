package repositories

import (
	"context"
	"errors"

	"github.com/hwickes/restyle-pos/app/models"
	"gorm.io/gorm"
)

type SupplierRepositoryImpl interface {
	List(ctx context.Context) ([]models.Supplier, error)
	GetByID(ctx context.Context, id string) (*models.Supplier, error)
	Create(ctx context.Context, supplier *models.Supplier) error
	Update(ctx context.Context, supplier *models.Supplier) error
}

type supplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) SupplierRepositoryImpl {
	return &supplierRepository{db}
}

func (s *supplierRepository) List(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := s.db.WithContext(ctx).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (s *supplierRepository) GetByID(ctx context.Context, id string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

func (s *supplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	return s.db.WithContext(ctx).Create(supplier).Error
}

func (s *supplierRepository) Update(ctx context.Context, supplier *models.Supplier) error {
	return s.db.WithContext(ctx).Save(supplier).Error
}
