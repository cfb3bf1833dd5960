package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
)

// LocationRepository defines the interface for location data operations
type LocationRepository interface {
	List(ctx context.Context, activeOnly bool) ([]entity.Location, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Location, error)
	Create(ctx context.Context, location *entity.Location) error
	Update(ctx context.Context, location *entity.Location) error
}
