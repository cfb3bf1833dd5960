package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Booking represents a reservation of seats at a location for a time window
type Booking struct {
	ID               uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	BookingRef       string               `gorm:"size:50;uniqueIndex;not null" json:"booking_ref"`
	UserID           uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	LocationID       uuid.UUID            `gorm:"type:uuid;not null;index" json:"location_id"`
	StartAt          time.Time            `gorm:"not null" json:"start_at"`
	EndAt            time.Time            `gorm:"not null" json:"end_at"`
	DurationHours    int                  `gorm:"not null" json:"duration_hours"`
	Pax              int                  `gorm:"not null" json:"pax"`
	SeatNumbers      string               `gorm:"size:255" json:"seat_numbers,omitempty"`
	SpecialRequests  string               `gorm:"size:500" json:"special_requests,omitempty"`
	Status           enum.BookingStatus   `gorm:"default:0" json:"status"`
	EntitlementKind  enum.EntitlementKind `gorm:"default:0" json:"entitlement_kind"`
	VoucherCode      string               `gorm:"size:50" json:"voucher_code,omitempty"`
	PackageID        *uuid.UUID           `gorm:"type:uuid" json:"package_id,omitempty"`
	BaseSubtotal     int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Discount         int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Subtotal         int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Tax              int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total            int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentRequestID string               `gorm:"size:100;index" json:"payment_request_id,omitempty"`
	ConfirmedPayment bool                 `gorm:"default:false" json:"confirmed_payment"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	DeletedAt        gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Location Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b Booking) MarshalJSON() ([]byte, error) {
	type Alias Booking
	return json.Marshal(&struct {
		Alias
		BaseSubtotal float64 `json:"base_subtotal"`
		Discount     float64 `json:"discount"`
		Subtotal     float64 `json:"subtotal"`
		Tax          float64 `json:"tax"`
		Total        float64 `json:"total"`
	}{
		Alias:        Alias(b),
		BaseSubtotal: float64(b.BaseSubtotal) / 100,
		Discount:     float64(b.Discount) / 100,
		Subtotal:     float64(b.Subtotal) / 100,
		Tax:          float64(b.Tax) / 100,
		Total:        float64(b.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new booking
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}
