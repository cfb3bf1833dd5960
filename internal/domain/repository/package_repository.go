package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
)

// PackageRepository defines the interface for prepaid pass operations
type PackageRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PassPackage, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.PassPackage, error)
	Create(ctx context.Context, pkg *entity.PassPackage) error
	// ConsumePass atomically increments passes_used by one. It returns
	// false when the package is exhausted or expired, so two concurrent
	// bookings cannot spend the same last pass.
	ConsumePass(ctx context.Context, id, userID uuid.UUID, now time.Time) (bool, error)
	// RestorePass decrements passes_used, used when a pass-settled
	// booking is cancelled.
	RestorePass(ctx context.Context, id uuid.UUID) error
}
