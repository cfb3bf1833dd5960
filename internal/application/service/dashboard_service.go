package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"github.com/mps-sg/bookspace-api/internal/domain/repository"
)

// DashboardStats holds the admin dashboard aggregates. Revenue is kept
// in cents internally and rendered as a decimal.
type DashboardStats struct {
	PendingBookings   int64 `json:"pending_bookings"`
	ConfirmedBookings int64 `json:"confirmed_bookings"`
	CancelledBookings int64 `json:"cancelled_bookings"`
	RevenueCents      int64 `json:"-"`
}

// MarshalJSON converts revenue cents to a decimal for API responses
func (s DashboardStats) MarshalJSON() ([]byte, error) {
	type Alias DashboardStats
	return json.Marshal(&struct {
		Alias
		Revenue float64 `json:"revenue"`
	}{
		Alias:   Alias(s),
		Revenue: float64(s.RevenueCents) / 100,
	})
}

// DashboardService aggregates booking stats for the admin dashboard
type DashboardService struct {
	bookingRepo repository.BookingRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(bookingRepo repository.BookingRepository) *DashboardService {
	return &DashboardService{bookingRepo: bookingRepo}
}

// GetStats returns booking counts by status and confirmed revenue for
// the trailing 30 days.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.PendingBookings, err = s.bookingRepo.CountByStatus(ctx, enum.BookingStatusPending); err != nil {
		return nil, err
	}
	if stats.ConfirmedBookings, err = s.bookingRepo.CountByStatus(ctx, enum.BookingStatusConfirmed); err != nil {
		return nil, err
	}
	if stats.CancelledBookings, err = s.bookingRepo.CountByStatus(ctx, enum.BookingStatusCancelled); err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -30)
	if stats.RevenueCents, err = s.bookingRepo.RevenueCents(ctx, since); err != nil {
		return nil, err
	}

	return stats, nil
}
