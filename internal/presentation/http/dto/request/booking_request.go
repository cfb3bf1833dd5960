package request

import "time"

// CreateBookingRequest represents a create booking request. The same
// shape backs the quote endpoint, which prices without persisting.
type CreateBookingRequest struct {
	LocationID      string    `json:"location_id" binding:"required,uuid"`
	StartAt         time.Time `json:"start_at" binding:"required"`
	EndAt           time.Time `json:"end_at" binding:"required"`
	Pax             int       `json:"pax" binding:"required,min=1"`
	SeatNumbers     string    `json:"seat_numbers"`
	SpecialRequests string    `json:"special_requests"`
	Entitlement     string    `json:"entitlement" binding:"omitempty,oneof=none voucher package"`
	VoucherCode     string    `json:"voucher_code"`
	PackageID       string    `json:"package_id" binding:"omitempty,uuid"`
}

// PurchasePackageRequest represents a pass package purchase request
type PurchasePackageRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	PackageType string `json:"package_type" binding:"required,oneof=full-day half-day study-hour"`
	TotalPasses int    `json:"total_passes" binding:"required,min=1,max=100"`
	ValidDays   int    `json:"valid_days" binding:"required,min=1,max=730"`
}
