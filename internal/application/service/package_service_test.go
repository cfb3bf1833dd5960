package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/repository"
	"github.com/mps-sg/bookspace-api/pkg/apperror"
)

type stubPackageRepo struct {
	pkg         *entity.PassPackage
	consumeFail bool
}

func (r *stubPackageRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PassPackage, error) {
	if r.pkg != nil && r.pkg.ID == id {
		cp := *r.pkg
		return &cp, nil
	}
	return nil, nil
}

func (r *stubPackageRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.PassPackage, error) {
	if r.pkg == nil {
		return nil, nil
	}
	return []entity.PassPackage{*r.pkg}, nil
}

func (r *stubPackageRepo) Create(ctx context.Context, pkg *entity.PassPackage) error {
	r.pkg = pkg
	return nil
}

func (r *stubPackageRepo) ConsumePass(ctx context.Context, id, userID uuid.UUID, now time.Time) (bool, error) {
	if r.consumeFail {
		return false, nil
	}
	if r.pkg == nil || r.pkg.ID != id || r.pkg.UserID != userID {
		return false, nil
	}
	if r.pkg.Remaining() <= 0 || r.pkg.IsExpired(now) {
		return false, nil
	}
	r.pkg.PassesUsed++
	return true, nil
}

func (r *stubPackageRepo) RestorePass(ctx context.Context, id uuid.UUID) error {
	if r.pkg == nil || r.pkg.ID != id {
		return errors.New("package not found")
	}
	r.pkg.PassesUsed--
	return nil
}

var _ repository.PackageRepository = (*stubPackageRepo)(nil)

func testPackage(userID uuid.UUID, total, used int) *entity.PassPackage {
	return &entity.PassPackage{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "10 Full-Day Passes",
		TotalPasses: total,
		PassesUsed:  used,
		ExpiresAt:   time.Now().Add(30 * 24 * time.Hour),
	}
}

func TestPackageConsume(t *testing.T) {
	userID := uuid.New()

	t.Run("decrements remaining passes", func(t *testing.T) {
		repo := &stubPackageRepo{pkg: testPackage(userID, 10, 3)}
		svc := NewPackageService(repo)

		pkg, err := svc.Consume(context.Background(), repo.pkg.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, 4, pkg.PassesUsed)
		assert.Equal(t, 6, pkg.Remaining())
	})

	t.Run("last pass can be spent", func(t *testing.T) {
		repo := &stubPackageRepo{pkg: testPackage(userID, 10, 9)}
		svc := NewPackageService(repo)

		pkg, err := svc.Consume(context.Background(), repo.pkg.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, 0, pkg.Remaining())
	})

	t.Run("exhausted package", func(t *testing.T) {
		repo := &stubPackageRepo{pkg: testPackage(userID, 10, 10)}
		svc := NewPackageService(repo)

		_, err := svc.Consume(context.Background(), repo.pkg.ID, userID)
		require.ErrorIs(t, err, apperror.ErrEntitlementExhausted)
	})

	t.Run("expired package", func(t *testing.T) {
		pkg := testPackage(userID, 10, 3)
		pkg.ExpiresAt = time.Now().Add(-time.Hour)
		repo := &stubPackageRepo{pkg: pkg}
		svc := NewPackageService(repo)

		_, err := svc.Consume(context.Background(), pkg.ID, userID)
		require.ErrorIs(t, err, apperror.ErrEntitlementExpired)
	})

	t.Run("someone else's package", func(t *testing.T) {
		repo := &stubPackageRepo{pkg: testPackage(uuid.New(), 10, 0)}
		svc := NewPackageService(repo)

		_, err := svc.Consume(context.Background(), repo.pkg.ID, userID)
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("losing the conditional update reports exhausted", func(t *testing.T) {
		repo := &stubPackageRepo{pkg: testPackage(userID, 10, 3), consumeFail: true}
		svc := NewPackageService(repo)

		_, err := svc.Consume(context.Background(), repo.pkg.ID, userID)
		require.ErrorIs(t, err, apperror.ErrEntitlementExhausted)
	})
}

func TestPackageRestore(t *testing.T) {
	userID := uuid.New()
	repo := &stubPackageRepo{pkg: testPackage(userID, 10, 5)}
	svc := NewPackageService(repo)

	require.NoError(t, svc.Restore(context.Background(), repo.pkg.ID))
	assert.Equal(t, 4, repo.pkg.PassesUsed)
}

func TestPackagePurchase(t *testing.T) {
	svc := NewPackageService(&stubPackageRepo{})

	t.Run("rejects empty package", func(t *testing.T) {
		err := svc.Purchase(context.Background(), &entity.PassPackage{
			TotalPasses: 0,
			ExpiresAt:   time.Now().Add(time.Hour),
		})
		require.Error(t, err)
	})

	t.Run("rejects past expiry", func(t *testing.T) {
		err := svc.Purchase(context.Background(), &entity.PassPackage{
			TotalPasses: 10,
			ExpiresAt:   time.Now().Add(-time.Hour),
		})
		require.Error(t, err)
	})
}
