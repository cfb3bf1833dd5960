package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"github.com/mps-sg/bookspace-api/pkg/pagination"
)

// BookingFilterParams holds filters for listing bookings
type BookingFilterParams struct {
	Pagination     *pagination.PaginationParams
	Status         *enum.BookingStatus
	LocationID     *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	Search         string
	SkipUserFilter bool // admins see all bookings
}

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	GetByRef(ctx context.Context, ref string) (*entity.Booking, error)
	GetByPaymentRequestID(ctx context.Context, paymentRequestID string) (*entity.Booking, error)
	List(ctx context.Context, userID uuid.UUID, params *BookingFilterParams) ([]entity.Booking, int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BookingStatus) error
	// MarkConfirmed flips the booking to confirmed and records the payment.
	MarkConfirmed(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status enum.BookingStatus) (int64, error)
	// RevenueCents sums totals of confirmed bookings created since the cutoff.
	RevenueCents(ctx context.Context, since time.Time) (int64, error)
}
