package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	domainRepo "github.com/mps-sg/bookspace-api/internal/domain/repository"
	"gorm.io/gorm"
)

type voucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository creates a new voucher repository
func NewVoucherRepository(db *gorm.DB) domainRepo.VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	var voucher entity.Voucher
	err := r.db.WithContext(ctx).First(&voucher, "code = ?", entity.NormalizeVoucherCode(code)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *voucherRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	var voucher entity.Voucher
	err := r.db.WithContext(ctx).First(&voucher, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *voucherRepository) List(ctx context.Context) ([]entity.Voucher, error) {
	var vouchers []entity.Voucher
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&vouchers).Error
	return vouchers, err
}

func (r *voucherRepository) Create(ctx context.Context, voucher *entity.Voucher) error {
	return r.db.WithContext(ctx).Create(voucher).Error
}

func (r *voucherRepository) Update(ctx context.Context, voucher *entity.Voucher) error {
	return r.db.WithContext(ctx).Save(voucher).Error
}

func (r *voucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Voucher{}, "id = ?", id).Error
}

func (r *voucherRepository) CountRedemptions(ctx context.Context, voucherID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.VoucherRedemption{}).
		Where("voucher_id = ?", voucherID).
		Count(&count).Error
	return count, err
}

func (r *voucherRepository) CountRedemptionsByUser(ctx context.Context, voucherID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.VoucherRedemption{}).
		Where("voucher_id = ? AND user_id = ?", voucherID, userID).
		Count(&count).Error
	return count, err
}

func (r *voucherRepository) CreateRedemption(ctx context.Context, redemption *entity.VoucherRedemption) error {
	return r.db.WithContext(ctx).Create(redemption).Error
}

func (r *voucherRepository) ListRedemptionsByUser(ctx context.Context, userID uuid.UUID) ([]entity.VoucherRedemption, error) {
	var redemptions []entity.VoucherRedemption
	err := r.db.WithContext(ctx).Preload("Voucher").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&redemptions).Error
	return redemptions, err
}
