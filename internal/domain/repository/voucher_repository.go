package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
)

// VoucherRepository defines the interface for voucher catalog operations
type VoucherRepository interface {
	// GetByCode looks up a voucher by its normalized (upper-cased) code.
	GetByCode(ctx context.Context, code string) (*entity.Voucher, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error)
	List(ctx context.Context) ([]entity.Voucher, error)
	Create(ctx context.Context, voucher *entity.Voucher) error
	Update(ctx context.Context, voucher *entity.Voucher) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Redemption counting backs the usage-limit checks.
	CountRedemptions(ctx context.Context, voucherID uuid.UUID) (int64, error)
	CountRedemptionsByUser(ctx context.Context, voucherID, userID uuid.UUID) (int64, error)
	CreateRedemption(ctx context.Context, redemption *entity.VoucherRedemption) error
	ListRedemptionsByUser(ctx context.Context, userID uuid.UUID) ([]entity.VoucherRedemption, error)
}
