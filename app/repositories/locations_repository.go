package repositories

import (
	"context"
	"errors"

	"github.com/hwickes/restyle-pos/app/models"
	"gorm.io/gorm"
)

type LocationRepositoryImpl interface {
	List(ctx context.Context) ([]models.Location, error)
	GetByID(ctx context.Context, id string) (*models.Location, error)
	Create(ctx context.Context, location *models.Location) error
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepositoryImpl {
	return &locationRepository{db}
}

func (l *locationRepository) List(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := l.db.WithContext(ctx).Order("name ASC").Find(&locations).Error
	return locations, err
}

func (l *locationRepository) GetByID(ctx context.Context, id string) (*models.Location, error) {
	var location models.Location
	if err := l.db.WithContext(ctx).Where("id = ?", id).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

func (l *locationRepository) Create(ctx context.Context, location *models.Location) error {
	return l.db.WithContext(ctx).Create(location).Error
}
