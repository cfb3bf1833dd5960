package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	domainRepo "github.com/mps-sg/bookspace-api/internal/domain/repository"
	"gorm.io/gorm"
)

type packageRepository struct {
	db *gorm.DB
}

// NewPackageRepository creates a new package repository
func NewPackageRepository(db *gorm.DB) domainRepo.PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PassPackage, error) {
	var pkg entity.PassPackage
	err := r.db.WithContext(ctx).First(&pkg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.PassPackage, error) {
	var packages []entity.PassPackage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&packages).Error
	return packages, err
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.PassPackage) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

// ConsumePass is a conditional update: the guard in the WHERE clause
// makes the decrement race-safe without an explicit lock.
func (r *packageRepository) ConsumePass(ctx context.Context, id, userID uuid.UUID, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.PassPackage{}).
		Where("id = ? AND user_id = ? AND passes_used < total_passes AND expires_at > ?", id, userID, now).
		UpdateColumn("passes_used", gorm.Expr("passes_used + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *packageRepository) RestorePass(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.PassPackage{}).
		Where("id = ? AND passes_used > 0", id).
		UpdateColumn("passes_used", gorm.Expr("passes_used - 1")).Error
}
