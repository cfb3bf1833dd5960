package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
)

// WebhookEventRepository records processed payment callbacks for dedup
type WebhookEventRepository interface {
	// CreateIfAbsent inserts the event record. It returns false when an
	// event with the same (payment_request_id, status) already exists,
	// meaning this callback is a redelivery.
	CreateIfAbsent(ctx context.Context, event *entity.PaymentWebhookEvent) (bool, error)
	MarkNotified(ctx context.Context, id uuid.UUID) error
}
