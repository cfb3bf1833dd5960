package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mps-sg/bookspace-api/internal/application/service"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"github.com/mps-sg/bookspace-api/internal/domain/repository"
	"github.com/mps-sg/bookspace-api/internal/infrastructure/payment"
	"github.com/mps-sg/bookspace-api/pkg/email"
)

type fakeProvider struct{}

func (fakeProvider) CreatePaymentRequest(ctx context.Context, req *payment.CreateRequest) (*payment.PaymentRequest, error) {
	return nil, nil
}

func (fakeProvider) GetPaymentRequest(ctx context.Context, id string) (*payment.PaymentRequest, error) {
	return nil, nil
}

type fakeMailer struct{ sent int }

func (m *fakeMailer) SendBookingConfirmation(data email.BookingConfirmation) error {
	m.sent++
	return nil
}

type fakeEventRepo struct{ seen map[string]bool }

func (r *fakeEventRepo) CreateIfAbsent(ctx context.Context, event *entity.PaymentWebhookEvent) (bool, error) {
	key := event.PaymentRequestID + "|" + event.Status
	if r.seen[key] {
		return false, nil
	}
	r.seen[key] = true
	return true, nil
}

func (r *fakeEventRepo) MarkNotified(ctx context.Context, id uuid.UUID) error { return nil }

type fakeBookingRepo struct{}

func (fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error { return nil }
func (fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return nil, nil
}
func (fakeBookingRepo) GetByRef(ctx context.Context, ref string) (*entity.Booking, error) {
	return nil, nil
}
func (fakeBookingRepo) GetByPaymentRequestID(ctx context.Context, id string) (*entity.Booking, error) {
	return nil, nil
}
func (fakeBookingRepo) List(ctx context.Context, userID uuid.UUID, params *repository.BookingFilterParams) ([]entity.Booking, int64, error) {
	return nil, 0, nil
}
func (fakeBookingRepo) Update(ctx context.Context, b *entity.Booking) error { return nil }
func (fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BookingStatus) error {
	return nil
}
func (fakeBookingRepo) MarkConfirmed(ctx context.Context, id uuid.UUID) error { return nil }
func (fakeBookingRepo) CountByStatus(ctx context.Context, status enum.BookingStatus) (int64, error) {
	return 0, nil
}
func (fakeBookingRepo) RevenueCents(ctx context.Context, since time.Time) (int64, error) {
	return 0, nil
}

func newWebhookRouter(mailer *fakeMailer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewPaymentService(
		fakeProvider{},
		mailer,
		fakeBookingRepo{},
		&fakeEventRepo{seen: make(map[string]bool)},
		"",
	)

	router := gin.New()
	router.POST("/api/v1/payments/webhook", NewPaymentHandler(svc).Webhook)
	return router
}

func postForm(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebhook_CompletedPayment(t *testing.T) {
	mailer := &fakeMailer{}
	router := newWebhookRouter(mailer)

	w := postForm(router, url.Values{
		"payment_request_id": {"req_123"},
		"reference_number":   {"BK-A1B2C3D4"},
		"amount":             {"174.40"},
		"status":             {"completed"},
		"customer_email":     {"jane@example.com"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.Equal(t, 1, mailer.sent)
}

func TestWebhook_MissingPaymentRequestID(t *testing.T) {
	router := newWebhookRouter(&fakeMailer{})

	w := postForm(router, url.Values{
		"status": {"completed"},
		"amount": {"10.00"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhook_RedeliveryAcknowledgedWithoutResend(t *testing.T) {
	mailer := &fakeMailer{}
	router := newWebhookRouter(mailer)

	form := url.Values{
		"payment_request_id": {"req_123"},
		"amount":             {"174.40"},
		"status":             {"completed"},
		"customer_email":     {"jane@example.com"},
	}

	first := postForm(router, form)
	second := postForm(router, form)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code, "redeliveries are acknowledged so the provider stops retrying")
	assert.Equal(t, 1, mailer.sent)
}

func TestWebhook_JSONPayloadAccepted(t *testing.T) {
	mailer := &fakeMailer{}
	router := newWebhookRouter(mailer)

	body := `{"payment_request_id":"req_999","amount":42.5,"status":"completed","customer_email":"a@b.c"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mailer.sent)
}
