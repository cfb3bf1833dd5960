package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/repository"
	"github.com/mps-sg/bookspace-api/pkg/apperror"
)

type stubVoucherRepo struct {
	vouchers    map[string]*entity.Voucher
	totalUses   map[uuid.UUID]int64
	userUses    map[uuid.UUID]int64
	redemptions []entity.VoucherRedemption
}

func newStubVoucherRepo(vouchers ...*entity.Voucher) *stubVoucherRepo {
	r := &stubVoucherRepo{
		vouchers:  make(map[string]*entity.Voucher),
		totalUses: make(map[uuid.UUID]int64),
		userUses:  make(map[uuid.UUID]int64),
	}
	for _, v := range vouchers {
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
		r.vouchers[v.Code] = v
	}
	return r
}

func (r *stubVoucherRepo) GetByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	return r.vouchers[entity.NormalizeVoucherCode(code)], nil
}

func (r *stubVoucherRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	for _, v := range r.vouchers {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (r *stubVoucherRepo) List(ctx context.Context) ([]entity.Voucher, error) {
	var out []entity.Voucher
	for _, v := range r.vouchers {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVoucherRepo) Create(ctx context.Context, v *entity.Voucher) error {
	v.Code = entity.NormalizeVoucherCode(v.Code)
	r.vouchers[v.Code] = v
	return nil
}

func (r *stubVoucherRepo) Update(ctx context.Context, v *entity.Voucher) error { return nil }
func (r *stubVoucherRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func (r *stubVoucherRepo) CountRedemptions(ctx context.Context, voucherID uuid.UUID) (int64, error) {
	return r.totalUses[voucherID], nil
}

func (r *stubVoucherRepo) CountRedemptionsByUser(ctx context.Context, voucherID, userID uuid.UUID) (int64, error) {
	return r.userUses[voucherID], nil
}

func (r *stubVoucherRepo) CreateRedemption(ctx context.Context, redemption *entity.VoucherRedemption) error {
	r.redemptions = append(r.redemptions, *redemption)
	return nil
}

func (r *stubVoucherRepo) ListRedemptionsByUser(ctx context.Context, userID uuid.UUID) ([]entity.VoucherRedemption, error) {
	return r.redemptions, nil
}

var _ repository.VoucherRepository = (*stubVoucherRepo)(nil)

func activeVoucher(code string) *entity.Voucher {
	return &entity.Voucher{
		ID:             uuid.New(),
		Code:           code,
		DiscountValue:  20,
		ExpiresAt:      time.Now().Add(24 * time.Hour),
		MaxUsesPerUser: 3,
		MaxUsesTotal:   100,
		IsActive:       true,
	}
}

func TestVoucherValidate(t *testing.T) {
	userID := uuid.New()

	t.Run("valid voucher resolves", func(t *testing.T) {
		svc := NewVoucherService(newStubVoucherRepo(activeVoucher("SAVE20")))
		v, err := svc.Validate(context.Background(), "SAVE20", userID)
		require.NoError(t, err)
		assert.Equal(t, "SAVE20", v.Code)
	})

	t.Run("code lookup is case-insensitive", func(t *testing.T) {
		svc := NewVoucherService(newStubVoucherRepo(activeVoucher("SAVE20")))
		v, err := svc.Validate(context.Background(), "  save20 ", userID)
		require.NoError(t, err)
		assert.Equal(t, "SAVE20", v.Code)
	})

	t.Run("unknown code", func(t *testing.T) {
		svc := NewVoucherService(newStubVoucherRepo())
		_, err := svc.Validate(context.Background(), "NOPE", userID)
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("empty code", func(t *testing.T) {
		svc := NewVoucherService(newStubVoucherRepo())
		_, err := svc.Validate(context.Background(), "   ", userID)
		require.Error(t, err)
	})

	t.Run("expired voucher", func(t *testing.T) {
		v := activeVoucher("OLD")
		v.ExpiresAt = time.Now().Add(-time.Minute)
		svc := NewVoucherService(newStubVoucherRepo(v))
		_, err := svc.Validate(context.Background(), "OLD", userID)
		require.Error(t, err)
	})

	t.Run("inactive voucher", func(t *testing.T) {
		v := activeVoucher("PAUSED")
		v.IsActive = false
		svc := NewVoucherService(newStubVoucherRepo(v))
		_, err := svc.Validate(context.Background(), "PAUSED", userID)
		require.Error(t, err)
	})

	t.Run("fully redeemed", func(t *testing.T) {
		v := activeVoucher("POPULAR")
		repo := newStubVoucherRepo(v)
		repo.totalUses[v.ID] = 100
		svc := NewVoucherService(repo)
		_, err := svc.Validate(context.Background(), "POPULAR", userID)
		require.Error(t, err)
	})

	t.Run("per-user limit reached", func(t *testing.T) {
		v := activeVoucher("LIMITED")
		repo := newStubVoucherRepo(v)
		repo.userUses[v.ID] = 3
		svc := NewVoucherService(repo)
		_, err := svc.Validate(context.Background(), "LIMITED", userID)
		require.Error(t, err)
	})
}

func TestVoucherCreate(t *testing.T) {
	t.Run("normalizes code", func(t *testing.T) {
		repo := newStubVoucherRepo()
		svc := NewVoucherService(repo)
		v := activeVoucher("newcode")
		require.NoError(t, svc.CreateVoucher(context.Background(), v))
		assert.Equal(t, "NEWCODE", v.Code)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		svc := NewVoucherService(newStubVoucherRepo(activeVoucher("SAVE20")))
		err := svc.CreateVoucher(context.Background(), activeVoucher("save20"))
		require.Error(t, err)
		assert.Equal(t, 409, apperror.GetAppError(err).Code)
	})

	t.Run("rejects non-positive value", func(t *testing.T) {
		svc := NewVoucherService(newStubVoucherRepo())
		v := activeVoucher("FREE")
		v.DiscountValue = 0
		require.Error(t, svc.CreateVoucher(context.Background(), v))
	})
}
