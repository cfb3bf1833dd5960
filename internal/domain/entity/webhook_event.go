package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentWebhookEvent records a processed payment callback. The unique
// index on (payment_request_id, status) is the dedup key that guarantees
// a completed payment is notified at most once even if the provider
// redelivers the callback.
type PaymentWebhookEvent struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	PaymentRequestID string     `gorm:"size:100;not null;uniqueIndex:idx_webhook_request_status" json:"payment_request_id"`
	Status           string     `gorm:"size:50;not null;uniqueIndex:idx_webhook_request_status" json:"status"`
	ReferenceNumber  string     `gorm:"size:100" json:"reference_number"`
	AmountCents      int64      `gorm:"default:0" json:"-"`
	RecipientEmail   string     `gorm:"size:255" json:"recipient_email,omitempty"`
	NotifiedAt       *time.Time `json:"notified_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new event record
func (e *PaymentWebhookEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentWebhookEvent model
func (PaymentWebhookEvent) TableName() string {
	return "payment_webhook_events"
}
