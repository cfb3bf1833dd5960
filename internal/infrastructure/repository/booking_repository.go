package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	domainRepo "github.com/mps-sg/bookspace-api/internal/domain/repository"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).Preload("Location").First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetByRef(ctx context.Context, ref string) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).Preload("Location").First(&booking, "booking_ref = ?", ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetByPaymentRequestID(ctx context.Context, paymentRequestID string) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).Preload("Location").
		First(&booking, "payment_request_id = ?", paymentRequestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.BookingFilterParams) ([]entity.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Booking{})

	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.LocationID != nil {
		query = query.Where("location_id = ?", *params.LocationID)
	}
	if params.StartDate != nil {
		query = query.Where("start_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("start_at <= ?", *params.EndDate)
	}
	if params.Search != "" {
		query = query.Where("booking_ref ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []entity.Booking
	err := query.Preload("Location").
		Order("created_at desc").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *bookingRepository) MarkConfirmed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            enum.BookingStatusConfirmed,
			"confirmed_payment": true,
		}).Error
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status enum.BookingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) RevenueCents(ctx context.Context, since time.Time) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status = ? AND created_at >= ?", enum.BookingStatusConfirmed, since).
		Scan(&revenue).Error
	return revenue, err
}
