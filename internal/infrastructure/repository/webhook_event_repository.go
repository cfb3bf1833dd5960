package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	domainRepo "github.com/mps-sg/bookspace-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type webhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a new webhook event repository
func NewWebhookEventRepository(db *gorm.DB) domainRepo.WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

// CreateIfAbsent relies on the unique (payment_request_id, status)
// index: a conflicting insert affects zero rows, which signals a
// redelivered callback.
func (r *webhookEventRepository) CreateIfAbsent(ctx context.Context, event *entity.PaymentWebhookEvent) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *webhookEventRepository) MarkNotified(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.PaymentWebhookEvent{}).
		Where("id = ?", id).
		Update("notified_at", time.Now()).Error
}
