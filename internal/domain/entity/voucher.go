package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Voucher represents a discount code from the promo catalog.
// DiscountValue is percentage points for percentage vouchers and
// cents for fixed_amount vouchers.
type Voucher struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Code           string            `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description    string            `gorm:"size:255" json:"description"`
	DiscountType   enum.DiscountType `gorm:"default:0" json:"discount_type"`
	DiscountValue  int64             `gorm:"not null" json:"discount_value"`
	ExpiresAt      time.Time         `gorm:"not null" json:"expires_at"`
	MaxUsesPerUser int               `gorm:"default:1" json:"max_uses_per_user"`
	MaxUsesTotal   int               `gorm:"default:0" json:"max_uses_total"` // 0 means unlimited
	IsActive       bool              `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID and normalizes the code before creating
func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.Code = NormalizeVoucherCode(v.Code)
	return nil
}

// TableName returns the table name for the Voucher model
func (Voucher) TableName() string {
	return "vouchers"
}

// IsExpired checks whether the voucher's validity window has passed
func (v *Voucher) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// NormalizeVoucherCode upper-cases and trims a code so lookups are
// case-insensitive.
func NormalizeVoucherCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// VoucherRedemption records one use of a voucher against a booking.
// Usage limits are enforced by counting these rows.
type VoucherRedemption struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	VoucherID uuid.UUID `gorm:"type:uuid;not null;index" json:"voucher_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"booking_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Voucher Voucher `gorm:"foreignKey:VoucherID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new redemption
func (r *VoucherRedemption) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the VoucherRedemption model
func (VoucherRedemption) TableName() string {
	return "voucher_redemptions"
}
