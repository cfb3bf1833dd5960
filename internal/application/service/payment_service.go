package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/repository"
	"github.com/mps-sg/bookspace-api/internal/infrastructure/payment"
	"github.com/mps-sg/bookspace-api/pkg/apperror"
	"github.com/mps-sg/bookspace-api/pkg/email"
)

// StatusCompleted is the only callback status that triggers a
// confirmation notification.
const StatusCompleted = "completed"

// Mailer abstracts the confirmation email sender
type Mailer interface {
	SendBookingConfirmation(data email.BookingConfirmation) error
}

// CallbackEvent is the payment-status callback the provider posts to
// the webhook endpoint. The provider delivers form-encoded payloads;
// JSON is accepted too for replay tooling.
type CallbackEvent struct {
	PaymentRequestID string  `json:"payment_request_id" form:"payment_request_id"`
	ReferenceNumber  string  `json:"reference_number" form:"reference_number"`
	Amount           float64 `json:"amount" form:"amount"`
	Status           string  `json:"status" form:"status"`
	CustomerName     string  `json:"customer_name,omitempty" form:"customer_name"`
	CustomerEmail    string  `json:"customer_email,omitempty" form:"customer_email"`
	PaymentMethod    string  `json:"payment_method,omitempty" form:"payment_method"`
	Location         string  `json:"location,omitempty" form:"location"`
	HMAC             string  `json:"hmac,omitempty" form:"hmac"`
}

// NotificationRequest is the merged view of callback and provider data
// used to build the confirmation email.
type NotificationRequest struct {
	RecipientEmail  string
	RecipientName   string
	ReferenceNumber string
	Amount          float64
	LocationLabel   string
}

// PaymentService reconciles asynchronous payment callbacks with booking
// records and triggers the confirmation notification.
type PaymentService struct {
	provider    PaymentProvider
	mailer      Mailer
	bookingRepo repository.BookingRepository
	eventRepo   repository.WebhookEventRepository
	webhookSalt string
}

// NewPaymentService creates a new payment reconciliation service. An
// empty webhookSalt disables signature verification.
func NewPaymentService(
	provider PaymentProvider,
	mailer Mailer,
	bookingRepo repository.BookingRepository,
	eventRepo repository.WebhookEventRepository,
	webhookSalt string,
) *PaymentService {
	return &PaymentService{
		provider:    provider,
		mailer:      mailer,
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		webhookSalt: webhookSalt,
	}
}

// HandleCallback runs the reconciliation sequence for one inbound
// callback: enrich from the provider (best effort), merge, decide,
// notify, and mark the booking confirmed. Lookup and notification
// failures are logged and never fail the callback; only a bad
// signature or missing payment_request_id returns an error.
func (s *PaymentService) HandleCallback(ctx context.Context, cb *CallbackEvent) error {
	if cb.PaymentRequestID == "" {
		return apperror.NewBadRequestError("payment_request_id is required")
	}
	if err := s.verifySignature(cb); err != nil {
		return err
	}

	// Dedup: the first callback for each (payment_request_id, status)
	// wins; redeliveries skip the notification but still acknowledge.
	firstDelivery, err := s.recordEvent(ctx, cb)
	if err != nil {
		log.Error().Err(err).
			Str("payment_request_id", cb.PaymentRequestID).
			Msg("failed to record webhook event, proceeding without dedup")
		firstDelivery = true
	}

	details := s.enrich(ctx, cb.PaymentRequestID)
	notification := mergeNotification(cb, details)

	if cb.Status == StatusCompleted {
		s.confirmBooking(ctx, cb)

		if firstDelivery && notification.RecipientEmail != "" {
			s.notify(cb, notification)
		}
	}

	return nil
}

// verifySignature checks the callback's hmac field when a salt is
// configured. Without a salt the payload is accepted as-is.
func (s *PaymentService) verifySignature(cb *CallbackEvent) error {
	if s.webhookSalt == "" {
		return nil
	}

	fields := map[string]string{
		"payment_request_id": cb.PaymentRequestID,
		"reference_number":   cb.ReferenceNumber,
		"amount":             strconv.FormatFloat(cb.Amount, 'f', 2, 64),
		"status":             cb.Status,
	}
	if !payment.VerifyWebhookSignature(fields, s.webhookSalt, cb.HMAC) {
		return apperror.NewAppError(403, "Invalid webhook signature")
	}
	return nil
}

func (s *PaymentService) recordEvent(ctx context.Context, cb *CallbackEvent) (bool, error) {
	return s.eventRepo.CreateIfAbsent(ctx, &entity.PaymentWebhookEvent{
		PaymentRequestID: cb.PaymentRequestID,
		Status:           cb.Status,
		ReferenceNumber:  cb.ReferenceNumber,
		AmountCents:      int64(cb.Amount*100 + 0.5),
		RecipientEmail:   cb.CustomerEmail,
	})
}

// enrich fetches the canonical payment record. Failures degrade to nil
// so the merge falls back to callback data.
func (s *PaymentService) enrich(ctx context.Context, paymentRequestID string) *payment.PaymentRequest {
	lookupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	details, err := s.provider.GetPaymentRequest(lookupCtx, paymentRequestID)
	if err != nil {
		log.Warn().Err(err).
			Str("payment_request_id", paymentRequestID).
			Msg("payment details lookup failed, using callback data only")
		return nil
	}
	return details
}

// mergeNotification builds the notification from callback and fetched
// data. Provider data wins where present; the callback fills the gaps.
func mergeNotification(cb *CallbackEvent, details *payment.PaymentRequest) NotificationRequest {
	n := NotificationRequest{
		RecipientName:   "Customer",
		RecipientEmail:  cb.CustomerEmail,
		ReferenceNumber: cb.ReferenceNumber,
		Amount:          cb.Amount,
		LocationLabel:   cb.Location,
	}
	if cb.CustomerName != "" {
		n.RecipientName = cb.CustomerName
	}
	if details != nil {
		if details.Name != "" {
			n.RecipientName = details.Name
		}
		if details.Email != "" {
			n.RecipientEmail = details.Email
		}
		if details.Purpose != "" {
			n.LocationLabel = details.Purpose
		}
	}
	return n
}

func (s *PaymentService) notify(cb *CallbackEvent, n NotificationRequest) {
	err := s.mailer.SendBookingConfirmation(email.BookingConfirmation{
		RecipientName:   n.RecipientName,
		RecipientEmail:  n.RecipientEmail,
		ReferenceNumber: n.ReferenceNumber,
		Amount:          n.Amount,
		LocationLabel:   n.LocationLabel,
		SentAt:          time.Now(),
	})
	if err != nil {
		log.Error().Err(err).
			Str("recipient", n.RecipientEmail).
			Str("reference_number", n.ReferenceNumber).
			Msg("confirmation email delivery failed")
		return
	}

	log.Info().
		Str("recipient", n.RecipientEmail).
		Str("reference_number", n.ReferenceNumber).
		Msg("confirmation email sent")
}

// confirmBooking marks the matching booking record confirmed. Best
// effort: a missing booking is logged, not an error, since the webhook
// may arrive for payments created outside this service.
func (s *PaymentService) confirmBooking(ctx context.Context, cb *CallbackEvent) {
	booking, err := s.bookingRepo.GetByPaymentRequestID(ctx, cb.PaymentRequestID)
	if err == nil && booking == nil && cb.ReferenceNumber != "" {
		booking, err = s.bookingRepo.GetByRef(ctx, cb.ReferenceNumber)
	}
	if err != nil {
		log.Warn().Err(err).
			Str("payment_request_id", cb.PaymentRequestID).
			Msg("booking lookup failed during reconciliation")
		return
	}
	if booking == nil {
		log.Warn().
			Str("payment_request_id", cb.PaymentRequestID).
			Str("reference_number", cb.ReferenceNumber).
			Msg("no booking matches completed payment")
		return
	}

	if err := s.bookingRepo.MarkConfirmed(ctx, booking.ID); err != nil {
		log.Error().Err(err).
			Str("booking_ref", booking.BookingRef).
			Msg("failed to mark booking confirmed")
	}
}
