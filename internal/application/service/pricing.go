package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"github.com/mps-sg/bookspace-api/pkg/apperror"
)

// TaxRatePercent is the GST rate applied to the post-discount subtotal
const TaxRatePercent = 9

// SettlementMethod indicates how a quote's total is to be settled
type SettlementMethod string

const (
	// SettlementCharge means the total is collected through the
	// hosted payment page (card / PayNow).
	SettlementCharge SettlementMethod = "charge"
	// SettlementPass means the fee is settled by consuming one unit
	// of a prepaid package instead of charging the customer.
	SettlementPass SettlementMethod = "pass"
)

// Entitlement is an optional voucher or prepaid package applied to a
// quote. Voucher and PackageID are mutually exclusive; Kind decides
// which one is read.
type Entitlement struct {
	Kind      enum.EntitlementKind
	Voucher   *entity.Voucher
	PackageID uuid.UUID
}

// QuoteInput holds the booking parameters a quote is computed from.
// All monetary values are integer cents.
type QuoteInput struct {
	BaseRateCents int64
	DurationHours int
	Headcount     int
	Entitlement   Entitlement
	Now           time.Time
}

// Quote is the computed pricing breakdown for a prospective booking
type Quote struct {
	BaseRateCents int64            `json:"-"`
	DurationHours int              `json:"duration_hours"`
	Headcount     int              `json:"headcount"`
	BaseSubtotal  int64            `json:"-"`
	Discount      int64            `json:"-"`
	Subtotal      int64            `json:"-"`
	Tax           int64            `json:"-"`
	Total         int64            `json:"-"`
	Settlement    SettlementMethod `json:"settlement"`
	VoucherCode   string           `json:"voucher_code,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (q Quote) MarshalJSON() ([]byte, error) {
	type Alias Quote
	return json.Marshal(&struct {
		Alias
		BaseRate     float64 `json:"base_rate"`
		BaseSubtotal float64 `json:"base_subtotal"`
		Discount     float64 `json:"discount"`
		Subtotal     float64 `json:"subtotal"`
		Tax          float64 `json:"tax"`
		Total        float64 `json:"total"`
	}{
		Alias:        Alias(q),
		BaseRate:     float64(q.BaseRateCents) / 100,
		BaseSubtotal: float64(q.BaseSubtotal) / 100,
		Discount:     float64(q.Discount) / 100,
		Subtotal:     float64(q.Subtotal) / 100,
		Tax:          float64(q.Tax) / 100,
		Total:        float64(q.Total) / 100,
	})
}

// BillableHours converts a session window to billed hours: rounded up
// to the next whole hour, minimum one hour.
func BillableHours(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 1
	}
	hours := int(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}
	return hours
}

// ComputeQuote derives a full pricing breakdown from booking parameters
// and an optional entitlement. It is pure: identical inputs always
// produce identical output, and every derived field is recomputed from
// the base subtotal so toggling entitlements cannot accumulate drift.
func ComputeQuote(in QuoteInput) (*Quote, error) {
	if err := validateQuoteInput(&in); err != nil {
		return nil, err
	}

	baseSubtotal := in.BaseRateCents * int64(in.DurationHours) * int64(in.Headcount)

	quote := &Quote{
		BaseRateCents: in.BaseRateCents,
		DurationHours: in.DurationHours,
		Headcount:     in.Headcount,
		BaseSubtotal:  baseSubtotal,
		Settlement:    SettlementCharge,
	}

	switch in.Entitlement.Kind {
	case enum.EntitlementVoucher:
		discount, err := voucherDiscount(baseSubtotal, in.Entitlement.Voucher, in.Now)
		if err != nil {
			return nil, err
		}
		quote.Discount = discount
		quote.VoucherCode = in.Entitlement.Voucher.Code
	case enum.EntitlementPackage:
		// A package substitutes for payment rather than discounting
		// the fee: the breakdown still shows the undiscounted amounts.
		quote.Settlement = SettlementPass
	}

	quote.Subtotal = baseSubtotal - quote.Discount
	if quote.Subtotal < 0 {
		quote.Subtotal = 0
	}
	quote.Tax = roundHalfUp(quote.Subtotal*TaxRatePercent, 100)
	quote.Total = quote.Subtotal + quote.Tax

	return quote, nil
}

func validateQuoteInput(in *QuoteInput) error {
	var fieldErrors []apperror.FieldError
	if in.BaseRateCents <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "base_rate", Message: "must be greater than zero"})
	}
	if in.DurationHours < 1 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "duration_hours", Message: "must be at least 1"})
	}
	if in.Headcount < 1 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "headcount", Message: "must be at least 1"})
	}
	if in.Entitlement.Kind == enum.EntitlementVoucher && in.Entitlement.Voucher == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "entitlement", Message: "voucher entitlement requires a voucher"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	return nil
}

// voucherDiscount computes the discount a voucher grants on a base
// subtotal. Invalid vouchers are rejected outright rather than treated
// as a zero discount.
func voucherDiscount(baseSubtotal int64, v *entity.Voucher, now time.Time) (int64, error) {
	if !v.IsActive {
		return 0, apperror.NewInvalidEntitlementError("Voucher " + v.Code + " is no longer active")
	}
	if v.IsExpired(now) {
		return 0, apperror.NewInvalidEntitlementError("Voucher " + v.Code + " has expired")
	}
	if v.DiscountValue <= 0 {
		return 0, apperror.NewInvalidEntitlementError("Voucher " + v.Code + " has an invalid discount value")
	}

	switch v.DiscountType {
	case enum.DiscountTypePercentage:
		if v.DiscountValue > 100 {
			return 0, apperror.NewInvalidEntitlementError("Voucher " + v.Code + " has an invalid discount value")
		}
		return roundHalfUp(baseSubtotal*v.DiscountValue, 100), nil
	case enum.DiscountTypeFixedAmount:
		// A fixed discount never exceeds the subtotal
		if v.DiscountValue > baseSubtotal {
			return baseSubtotal, nil
		}
		return v.DiscountValue, nil
	default:
		return 0, apperror.NewInvalidEntitlementError("Voucher " + v.Code + " has an unknown discount type")
	}
}

// roundHalfUp divides num by den rounding half-up. Amounts are integer
// cents, so this is the fixed-decimal rounding the cent arithmetic
// requires. num must be non-negative.
func roundHalfUp(num, den int64) int64 {
	return (num + den/2) / den
}
