package request

import "time"

// ValidateVoucherRequest represents a voucher validation request
type ValidateVoucherRequest struct {
	Code string `json:"code" binding:"required,min=2,max=50"`
}

// CreateVoucherRequest represents an admin create voucher request.
// DiscountValue is percentage points for percentage vouchers and
// cents for fixed_amount vouchers.
type CreateVoucherRequest struct {
	Code           string    `json:"code" binding:"required,min=2,max=50"`
	Description    string    `json:"description" binding:"max=500"`
	DiscountType   string    `json:"discount_type" binding:"required,oneof=percentage fixed_amount"`
	DiscountValue  int64     `json:"discount_value" binding:"required,min=1"`
	ExpiresAt      time.Time `json:"expires_at" binding:"required"`
	MaxUsesPerUser int       `json:"max_uses_per_user" binding:"min=0"`
	MaxUsesTotal   int       `json:"max_uses_total" binding:"min=0"`
}

// UpdateVoucherRequest represents an admin update voucher request
type UpdateVoucherRequest struct {
	Description    *string    `json:"description"`
	DiscountValue  *int64     `json:"discount_value" binding:"omitempty,min=1"`
	ExpiresAt      *time.Time `json:"expires_at"`
	MaxUsesPerUser *int       `json:"max_uses_per_user" binding:"omitempty,min=0"`
	MaxUsesTotal   *int       `json:"max_uses_total" binding:"omitempty,min=0"`
	IsActive       *bool      `json:"is_active"`
}
