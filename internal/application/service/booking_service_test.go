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
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"github.com/mps-sg/bookspace-api/internal/domain/repository"
	"github.com/mps-sg/bookspace-api/internal/infrastructure/payment"
	"github.com/mps-sg/bookspace-api/pkg/apperror"
)

type memUserRepo struct{ user *entity.User }

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, nil
}
func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}
func (r *memUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }
func (r *memUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }

type memLocationRepo struct{ location *entity.Location }

func (r *memLocationRepo) List(ctx context.Context, activeOnly bool) ([]entity.Location, error) {
	return nil, nil
}
func (r *memLocationRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	if r.location != nil && r.location.ID == id {
		return r.location, nil
	}
	return nil, nil
}
func (r *memLocationRepo) GetBySlug(ctx context.Context, slug string) (*entity.Location, error) {
	return nil, nil
}
func (r *memLocationRepo) Create(ctx context.Context, l *entity.Location) error { return nil }
func (r *memLocationRepo) Update(ctx context.Context, l *entity.Location) error { return nil }

type memBookingRepo struct {
	created   []*entity.Booking
	createErr error
	statuses  map[uuid.UUID]enum.BookingStatus
}

func (r *memBookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.created = append(r.created, b)
	return nil
}
func (r *memBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	for _, b := range r.created {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}
func (r *memBookingRepo) GetByRef(ctx context.Context, ref string) (*entity.Booking, error) {
	return nil, nil
}
func (r *memBookingRepo) GetByPaymentRequestID(ctx context.Context, id string) (*entity.Booking, error) {
	return nil, nil
}
func (r *memBookingRepo) List(ctx context.Context, userID uuid.UUID, params *repository.BookingFilterParams) ([]entity.Booking, int64, error) {
	return nil, 0, nil
}
func (r *memBookingRepo) Update(ctx context.Context, b *entity.Booking) error { return nil }
func (r *memBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BookingStatus) error {
	if r.statuses == nil {
		r.statuses = make(map[uuid.UUID]enum.BookingStatus)
	}
	r.statuses[id] = status
	return nil
}
func (r *memBookingRepo) MarkConfirmed(ctx context.Context, id uuid.UUID) error { return nil }
func (r *memBookingRepo) CountByStatus(ctx context.Context, status enum.BookingStatus) (int64, error) {
	return 0, nil
}
func (r *memBookingRepo) RevenueCents(ctx context.Context, since time.Time) (int64, error) {
	return 0, nil
}

type recordingProvider struct {
	request   *payment.CreateRequest
	createErr error
}

func (p *recordingProvider) CreatePaymentRequest(ctx context.Context, req *payment.CreateRequest) (*payment.PaymentRequest, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.request = req
	return &payment.PaymentRequest{
		ID:     "req_new",
		Status: "pending",
		URL:    "https://securecheckout.example/req_new",
	}, nil
}

func (p *recordingProvider) GetPaymentRequest(ctx context.Context, id string) (*payment.PaymentRequest, error) {
	return nil, nil
}

type bookingFixture struct {
	svc      *BookingService
	user     *entity.User
	location *entity.Location
	bookings *memBookingRepo
	vouchers *stubVoucherRepo
	packages *stubPackageRepo
	provider *recordingProvider
}

func newBookingFixture() *bookingFixture {
	user := &entity.User{
		ID:        uuid.New(),
		FirstName: "Jane",
		LastName:  "Tan",
		Email:     "jane@example.com",
		Role:      entity.RoleMember,
	}
	location := &entity.Location{
		ID:              uuid.New(),
		Name:            "Kovan",
		Slug:            "kovan",
		HourlyRateCents: 2500,
		IsActive:        true,
	}

	f := &bookingFixture{
		user:     user,
		location: location,
		bookings: &memBookingRepo{},
		vouchers: newStubVoucherRepo(activeVoucher("SAVE20")),
		packages: &stubPackageRepo{},
		provider: &recordingProvider{},
	}

	f.svc = NewBookingService(
		f.bookings,
		&memLocationRepo{location: location},
		&memUserRepo{user: user},
		NewVoucherService(f.vouchers),
		NewPackageService(f.packages),
		f.provider,
		PaymentSettings{
			Currency:    "SGD",
			RedirectURL: "https://app.example/confirmation",
			WebhookURL:  "https://api.example/api/v1/payments/webhook",
		},
	)
	return f
}

func (f *bookingFixture) input() *BookingInput {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	return &BookingInput{
		LocationID: f.location.ID,
		StartAt:    start,
		EndAt:      start.Add(4 * time.Hour),
		Pax:        2,
	}
}

func TestCreateBooking_ChargePath(t *testing.T) {
	f := newBookingFixture()

	result, err := f.svc.CreateBooking(context.Background(), f.user.ID, f.input())
	require.NoError(t, err)

	require.Len(t, f.bookings.created, 1)
	booking := f.bookings.created[0]

	assert.Equal(t, enum.BookingStatusPending, booking.Status)
	assert.False(t, booking.ConfirmedPayment, "charge-path bookings await the webhook")
	assert.Equal(t, int64(21800), booking.Total)
	assert.Equal(t, "req_new", booking.PaymentRequestID)
	assert.Equal(t, "https://securecheckout.example/req_new", result.CheckoutURL)

	// The payment request is priced server-side from the quote
	require.NotNil(t, f.provider.request)
	assert.Equal(t, "218.00", f.provider.request.Amount)
	assert.Equal(t, "SGD", f.provider.request.Currency)
	assert.Equal(t, booking.BookingRef, f.provider.request.ReferenceNumber)
	assert.Equal(t, "jane@example.com", f.provider.request.Email)
	assert.Equal(t, []string{"paynow_online", "card"}, f.provider.request.PaymentMethods)
}

func TestCreateBooking_VoucherPath(t *testing.T) {
	f := newBookingFixture()

	input := f.input()
	input.Entitlement = enum.EntitlementVoucher
	input.VoucherCode = "save20"

	result, err := f.svc.CreateBooking(context.Background(), f.user.ID, input)
	require.NoError(t, err)

	booking := f.bookings.created[0]
	assert.Equal(t, int64(4000), booking.Discount)
	assert.Equal(t, int64(17440), booking.Total)
	assert.Equal(t, "SAVE20", booking.VoucherCode)
	assert.Equal(t, "174.40", f.provider.request.Amount)
	assert.NotEmpty(t, result.CheckoutURL)

	// Redemption is recorded against the booking
	require.Len(t, f.vouchers.redemptions, 1)
	assert.Equal(t, booking.ID, f.vouchers.redemptions[0].BookingID)
}

func TestCreateBooking_PackagePath(t *testing.T) {
	f := newBookingFixture()
	f.packages.pkg = testPackage(f.user.ID, 10, 3)

	input := f.input()
	input.Entitlement = enum.EntitlementPackage
	input.PackageID = f.packages.pkg.ID

	result, err := f.svc.CreateBooking(context.Background(), f.user.ID, input)
	require.NoError(t, err)

	booking := f.bookings.created[0]
	assert.Equal(t, enum.BookingStatusConfirmed, booking.Status)
	assert.True(t, booking.ConfirmedPayment)
	assert.Empty(t, result.CheckoutURL, "pass settlement skips the payment page")
	assert.Nil(t, f.provider.request, "no payment request for pass settlement")
	assert.Equal(t, 4, f.packages.pkg.PassesUsed)
	assert.Equal(t, SettlementPass, result.Quote.Settlement)
}

func TestCreateBooking_PackagePathRestoresPassOnFailure(t *testing.T) {
	f := newBookingFixture()
	f.packages.pkg = testPackage(f.user.ID, 10, 3)
	f.bookings.createErr = errors.New("insert failed")

	input := f.input()
	input.Entitlement = enum.EntitlementPackage
	input.PackageID = f.packages.pkg.ID

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID, input)
	require.Error(t, err)
	assert.Equal(t, 3, f.packages.pkg.PassesUsed, "the pass is returned when the booking insert fails")
}

func TestCreateBooking_ExhaustedPackage(t *testing.T) {
	f := newBookingFixture()
	f.packages.pkg = testPackage(f.user.ID, 10, 10)

	input := f.input()
	input.Entitlement = enum.EntitlementPackage
	input.PackageID = f.packages.pkg.ID

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID, input)
	require.ErrorIs(t, err, apperror.ErrEntitlementExhausted)
	assert.Empty(t, f.bookings.created)
}

func TestCreateBooking_InvalidVoucherBlocksCreation(t *testing.T) {
	f := newBookingFixture()

	input := f.input()
	input.Entitlement = enum.EntitlementVoucher
	input.VoucherCode = "NOPE"

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID, input)
	require.Error(t, err)
	assert.Empty(t, f.bookings.created)
	assert.Nil(t, f.provider.request)
}

func TestCreateBooking_ProviderFailure(t *testing.T) {
	f := newBookingFixture()
	f.provider.createErr = errors.New("gateway unavailable")

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID, f.input())
	require.Error(t, err)
}

func TestCreateBooking_ValidatesWindow(t *testing.T) {
	f := newBookingFixture()

	input := f.input()
	input.EndAt = input.StartAt.Add(-time.Hour)

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID, input)
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestQuote_MatchesCreatePricing(t *testing.T) {
	f := newBookingFixture()

	input := f.input()
	input.Entitlement = enum.EntitlementVoucher
	input.VoucherCode = "SAVE20"

	quote, err := f.svc.Quote(context.Background(), f.user.ID, input)
	require.NoError(t, err)

	result, err := f.svc.CreateBooking(context.Background(), f.user.ID, input)
	require.NoError(t, err)

	assert.Equal(t, quote.Total, result.Booking.Total)
	assert.Equal(t, quote.Discount, result.Booking.Discount)
}

func TestCancelBooking(t *testing.T) {
	t.Run("owner cancels pending booking", func(t *testing.T) {
		f := newBookingFixture()
		result, err := f.svc.CreateBooking(context.Background(), f.user.ID, f.input())
		require.NoError(t, err)

		err = f.svc.CancelBooking(context.Background(), f.user.ID, false, result.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.BookingStatusCancelled, f.bookings.statuses[result.Booking.ID])
	})

	t.Run("cancelling a pass booking restores the pass", func(t *testing.T) {
		f := newBookingFixture()
		f.packages.pkg = testPackage(f.user.ID, 10, 3)

		input := f.input()
		input.Entitlement = enum.EntitlementPackage
		input.PackageID = f.packages.pkg.ID

		result, err := f.svc.CreateBooking(context.Background(), f.user.ID, input)
		require.NoError(t, err)
		require.Equal(t, 4, f.packages.pkg.PassesUsed)

		require.NoError(t, f.svc.CancelBooking(context.Background(), f.user.ID, false, result.Booking.ID))
		assert.Equal(t, 3, f.packages.pkg.PassesUsed)
	})

	t.Run("other users cannot cancel", func(t *testing.T) {
		f := newBookingFixture()
		result, err := f.svc.CreateBooking(context.Background(), f.user.ID, f.input())
		require.NoError(t, err)

		err = f.svc.CancelBooking(context.Background(), uuid.New(), false, result.Booking.ID)
		require.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("admin can cancel any booking", func(t *testing.T) {
		f := newBookingFixture()
		result, err := f.svc.CreateBooking(context.Background(), f.user.ID, f.input())
		require.NoError(t, err)

		err = f.svc.CancelBooking(context.Background(), uuid.New(), true, result.Booking.ID)
		require.NoError(t, err)
	})
}
