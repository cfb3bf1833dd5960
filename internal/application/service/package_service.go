package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/repository"
	"github.com/mps-sg/bookspace-api/pkg/apperror"
)

// PackageService handles prepaid pass package operations
type PackageService struct {
	packageRepo repository.PackageRepository
}

// NewPackageService creates a new package service
func NewPackageService(packageRepo repository.PackageRepository) *PackageService {
	return &PackageService{packageRepo: packageRepo}
}

// Consume spends one pass of the user's package. The decrement is a
// conditional update, so concurrent bookings cannot spend the same last
// pass; the loser of the race gets the exhausted/expired error.
func (s *PackageService) Consume(ctx context.Context, packageID, userID uuid.UUID) (*entity.PassPackage, error) {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil || pkg.UserID != userID {
		return nil, apperror.NewNotFoundError("Package")
	}

	now := time.Now()
	if pkg.IsExpired(now) {
		return nil, apperror.ErrEntitlementExpired
	}
	if pkg.Remaining() <= 0 {
		return nil, apperror.ErrEntitlementExhausted
	}

	consumed, err := s.packageRepo.ConsumePass(ctx, packageID, userID, now)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// Lost a race or expired between read and update
		return nil, apperror.ErrEntitlementExhausted
	}

	return s.packageRepo.GetByID(ctx, packageID)
}

// Restore returns a pass to the package, used on cancellation of a
// pass-settled booking.
func (s *PackageService) Restore(ctx context.Context, packageID uuid.UUID) error {
	return s.packageRepo.RestorePass(ctx, packageID)
}

// Purchase creates a new pass package for a user
func (s *PackageService) Purchase(ctx context.Context, pkg *entity.PassPackage) error {
	if pkg.TotalPasses < 1 {
		return apperror.NewBadRequestError("Package must contain at least one pass")
	}
	if pkg.ExpiresAt.Before(time.Now()) {
		return apperror.NewBadRequestError("Package expiry must be in the future")
	}
	return s.packageRepo.Create(ctx, pkg)
}

// ListForUser returns a user's packages, newest first (dashboard
// entitlement history).
func (s *PackageService) ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.PassPackage, error) {
	return s.packageRepo.ListByUser(ctx, userID)
}
