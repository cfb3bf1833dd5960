package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/repository"
	"github.com/mps-sg/bookspace-api/pkg/apperror"
)

// VoucherService handles voucher catalog and redemption operations
type VoucherService struct {
	voucherRepo repository.VoucherRepository
}

// NewVoucherService creates a new voucher service
func NewVoucherService(voucherRepo repository.VoucherRepository) *VoucherService {
	return &VoucherService{voucherRepo: voucherRepo}
}

// Validate resolves a code to a redeemable voucher for the given user.
// It enforces active status, expiry and both usage limits; any failure
// is an invalid-entitlement error so callers never apply the discount.
func (s *VoucherService) Validate(ctx context.Context, code string, userID uuid.UUID) (*entity.Voucher, error) {
	normalized := entity.NormalizeVoucherCode(code)
	if normalized == "" {
		return nil, apperror.NewInvalidEntitlementError("Voucher code is required")
	}

	voucher, err := s.voucherRepo.GetByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, apperror.NewInvalidEntitlementError("Unknown voucher code " + normalized)
	}

	if !voucher.IsActive {
		return nil, apperror.NewInvalidEntitlementError("Voucher " + voucher.Code + " is no longer active")
	}
	if voucher.IsExpired(time.Now()) {
		return nil, apperror.NewInvalidEntitlementError("Voucher " + voucher.Code + " has expired")
	}

	if voucher.MaxUsesTotal > 0 {
		total, err := s.voucherRepo.CountRedemptions(ctx, voucher.ID)
		if err != nil {
			return nil, err
		}
		if total >= int64(voucher.MaxUsesTotal) {
			return nil, apperror.NewInvalidEntitlementError("Voucher " + voucher.Code + " has been fully redeemed")
		}
	}

	if voucher.MaxUsesPerUser > 0 {
		used, err := s.voucherRepo.CountRedemptionsByUser(ctx, voucher.ID, userID)
		if err != nil {
			return nil, err
		}
		if used >= int64(voucher.MaxUsesPerUser) {
			return nil, apperror.NewInvalidEntitlementError("You have reached the usage limit for voucher " + voucher.Code)
		}
	}

	return voucher, nil
}

// Redeem records one use of a voucher against a booking
func (s *VoucherService) Redeem(ctx context.Context, voucher *entity.Voucher, userID, bookingID uuid.UUID) error {
	return s.voucherRepo.CreateRedemption(ctx, &entity.VoucherRedemption{
		VoucherID: voucher.ID,
		UserID:    userID,
		BookingID: bookingID,
	})
}

// GetVoucher retrieves a catalog entry by ID (admin)
func (s *VoucherService) GetVoucher(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	voucher, err := s.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, apperror.NewNotFoundError("Voucher")
	}
	return voucher, nil
}

// ListVouchers lists the voucher catalog (admin)
func (s *VoucherService) ListVouchers(ctx context.Context) ([]entity.Voucher, error) {
	return s.voucherRepo.List(ctx)
}

// CreateVoucher adds a catalog entry (admin)
func (s *VoucherService) CreateVoucher(ctx context.Context, voucher *entity.Voucher) error {
	voucher.Code = entity.NormalizeVoucherCode(voucher.Code)
	if voucher.Code == "" {
		return apperror.NewBadRequestError("Voucher code is required")
	}
	if voucher.DiscountValue <= 0 {
		return apperror.NewBadRequestError("Discount value must be greater than zero")
	}

	existing, err := s.voucherRepo.GetByCode(ctx, voucher.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewConflictError("Voucher code " + voucher.Code + " already exists")
	}

	return s.voucherRepo.Create(ctx, voucher)
}

// UpdateVoucher updates a catalog entry (admin)
func (s *VoucherService) UpdateVoucher(ctx context.Context, voucher *entity.Voucher) error {
	if voucher.DiscountValue <= 0 {
		return apperror.NewBadRequestError("Discount value must be greater than zero")
	}
	return s.voucherRepo.Update(ctx, voucher)
}

// DeleteVoucher removes a catalog entry (admin)
func (s *VoucherService) DeleteVoucher(ctx context.Context, id uuid.UUID) error {
	return s.voucherRepo.Delete(ctx, id)
}

// ListRedemptions returns a user's redemption history (dashboard)
func (s *VoucherService) ListRedemptions(ctx context.Context, userID uuid.UUID) ([]entity.VoucherRedemption, error) {
	return s.voucherRepo.ListRedemptionsByUser(ctx, userID)
}
