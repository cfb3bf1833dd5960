package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	domainRepo "github.com/mps-sg/bookspace-api/internal/domain/repository"
	"gorm.io/gorm"
)

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) domainRepo.LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) List(ctx context.Context, activeOnly bool) ([]entity.Location, error) {
	var locations []entity.Location
	query := r.db.WithContext(ctx).Order("name asc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&locations).Error
	return locations, err
}

func (r *locationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	var location entity.Location
	err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) GetBySlug(ctx context.Context, slug string) (*entity.Location, error) {
	var location entity.Location
	err := r.db.WithContext(ctx).First(&location, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) Create(ctx context.Context, location *entity.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *locationRepository) Update(ctx context.Context, location *entity.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}
