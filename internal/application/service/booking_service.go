package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"github.com/mps-sg/bookspace-api/internal/domain/repository"
	"github.com/mps-sg/bookspace-api/internal/infrastructure/payment"
	"github.com/mps-sg/bookspace-api/pkg/apperror"
	"github.com/mps-sg/bookspace-api/pkg/pagination"
	"github.com/mps-sg/bookspace-api/pkg/utils"
)

// PaymentProvider abstracts the hosted payment-request API
type PaymentProvider interface {
	CreatePaymentRequest(ctx context.Context, req *payment.CreateRequest) (*payment.PaymentRequest, error)
	GetPaymentRequest(ctx context.Context, id string) (*payment.PaymentRequest, error)
}

// PaymentSettings holds the booking flow's payment-request parameters
type PaymentSettings struct {
	Currency    string
	RedirectURL string
	WebhookURL  string
}

// BookingService handles booking operations
type BookingService struct {
	bookingRepo  repository.BookingRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	vouchers     *VoucherService
	packages     *PackageService
	provider     PaymentProvider
	settings     PaymentSettings
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repository.BookingRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	vouchers *VoucherService,
	packages *PackageService,
	provider PaymentProvider,
	settings PaymentSettings,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		vouchers:     vouchers,
		packages:     packages,
		provider:     provider,
		settings:     settings,
	}
}

// BookingInput represents the create booking / quote input
type BookingInput struct {
	LocationID      uuid.UUID
	StartAt         time.Time
	EndAt           time.Time
	Pax             int
	SeatNumbers     string
	SpecialRequests string
	Entitlement     enum.EntitlementKind
	VoucherCode     string
	PackageID       uuid.UUID
}

// BookingResult is the outcome of creating a booking. CheckoutURL is
// set when the total is settled through the hosted payment page.
type BookingResult struct {
	Booking     *entity.Booking `json:"booking"`
	Quote       *Quote          `json:"quote"`
	CheckoutURL string          `json:"checkout_url,omitempty"`
}

// Quote computes the pricing breakdown for a prospective booking
// without creating anything.
func (s *BookingService) Quote(ctx context.Context, userID uuid.UUID, input *BookingInput) (*Quote, error) {
	location, err := s.resolveLocation(ctx, input.LocationID)
	if err != nil {
		return nil, err
	}

	entitlement, err := s.resolveEntitlement(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	return ComputeQuote(QuoteInput{
		BaseRateCents: location.HourlyRateCents,
		DurationHours: BillableHours(input.StartAt, input.EndAt),
		Headcount:     input.Pax,
		Entitlement:   entitlement,
		Now:           time.Now(),
	})
}

// CreateBooking validates the input, prices it server-side and either
// consumes a prepaid pass (package entitlement) or creates a hosted
// payment request for the total.
func (s *BookingService) CreateBooking(ctx context.Context, userID uuid.UUID, input *BookingInput) (*BookingResult, error) {
	if err := validateBookingInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	location, err := s.resolveLocation(ctx, input.LocationID)
	if err != nil {
		return nil, err
	}

	entitlement, err := s.resolveEntitlement(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	quote, err := ComputeQuote(QuoteInput{
		BaseRateCents: location.HourlyRateCents,
		DurationHours: BillableHours(input.StartAt, input.EndAt),
		Headcount:     input.Pax,
		Entitlement:   entitlement,
		Now:           time.Now(),
	})
	if err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		BookingRef:      utils.GenerateBookingRef(),
		UserID:          userID,
		LocationID:      location.ID,
		StartAt:         input.StartAt,
		EndAt:           input.EndAt,
		DurationHours:   quote.DurationHours,
		Pax:             input.Pax,
		SeatNumbers:     input.SeatNumbers,
		SpecialRequests: input.SpecialRequests,
		Status:          enum.BookingStatusPending,
		EntitlementKind: entitlement.Kind,
		VoucherCode:     quote.VoucherCode,
		BaseSubtotal:    quote.BaseSubtotal,
		Discount:        quote.Discount,
		Subtotal:        quote.Subtotal,
		Tax:             quote.Tax,
		Total:           quote.Total,
	}

	if quote.Settlement == SettlementPass {
		// The fee is settled by spending a pass, so the booking is
		// confirmed immediately and no payment request is created.
		if _, err := s.packages.Consume(ctx, entitlement.PackageID, userID); err != nil {
			return nil, err
		}
		pkgID := entitlement.PackageID
		booking.PackageID = &pkgID
		booking.Status = enum.BookingStatusConfirmed
		booking.ConfirmedPayment = true

		if err := s.bookingRepo.Create(ctx, booking); err != nil {
			// Give the pass back, the booking never existed
			_ = s.packages.Restore(ctx, entitlement.PackageID)
			return nil, err
		}
		return &BookingResult{Booking: booking, Quote: quote}, nil
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if entitlement.Kind == enum.EntitlementVoucher {
		if err := s.vouchers.Redeem(ctx, entitlement.Voucher, userID, booking.ID); err != nil {
			return nil, err
		}
	}

	pr, err := s.provider.CreatePaymentRequest(ctx, &payment.CreateRequest{
		Amount:          payment.FormatCents(quote.Total),
		Currency:        s.settings.Currency,
		Email:           user.Email,
		Name:            user.FullName(),
		Purpose:         location.Name,
		ReferenceNumber: booking.BookingRef,
		RedirectURL:     s.settings.RedirectURL,
		Webhook:         s.settings.WebhookURL,
		PaymentMethods:  []string{"paynow_online", "card"},
		Phone:           user.Phone,
	})
	if err != nil {
		return nil, err
	}

	booking.PaymentRequestID = pr.ID
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return &BookingResult{Booking: booking, Quote: quote, CheckoutURL: pr.URL}, nil
}

// GetBooking retrieves a booking, restricted to its owner unless the
// caller is an admin.
func (s *BookingService) GetBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NewNotFoundError("Booking")
	}
	if !isAdmin && booking.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return booking, nil
}

// ListBookings lists bookings with filtering
func (s *BookingService) ListBookings(ctx context.Context, userID uuid.UUID, params *repository.BookingFilterParams) (*pagination.PaginatedResult[entity.Booking], error) {
	bookings, total, err := s.bookingRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bookings, pag), nil
}

// CancelBooking cancels a booking and restores a consumed pass when the
// booking was settled with a package.
func (s *BookingService) CancelBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking == nil {
		return apperror.NewNotFoundError("Booking")
	}
	if !isAdmin && booking.UserID != userID {
		return apperror.ErrForbidden
	}
	if booking.Status == enum.BookingStatusCancelled {
		return apperror.NewBadRequestError("Booking is already cancelled")
	}

	if booking.EntitlementKind == enum.EntitlementPackage && booking.PackageID != nil {
		if err := s.packages.Restore(ctx, *booking.PackageID); err != nil {
			return err
		}
	}

	return s.bookingRepo.UpdateStatus(ctx, id, enum.BookingStatusCancelled)
}

func (s *BookingService) resolveLocation(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	if id == uuid.Nil {
		return nil, apperror.NewBadRequestError("Location is required")
	}
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil || !location.IsActive {
		return nil, apperror.NewNotFoundError("Location")
	}
	return location, nil
}

// resolveEntitlement turns the input's entitlement selection into a
// validated Entitlement value. Voucher and package are mutually
// exclusive; selecting one ignores the other entirely.
func (s *BookingService) resolveEntitlement(ctx context.Context, userID uuid.UUID, input *BookingInput) (Entitlement, error) {
	switch input.Entitlement {
	case enum.EntitlementVoucher:
		voucher, err := s.vouchers.Validate(ctx, input.VoucherCode, userID)
		if err != nil {
			return Entitlement{}, err
		}
		return Entitlement{Kind: enum.EntitlementVoucher, Voucher: voucher}, nil
	case enum.EntitlementPackage:
		if input.PackageID == uuid.Nil {
			return Entitlement{}, apperror.NewBadRequestError("Package entitlement requires a package")
		}
		return Entitlement{Kind: enum.EntitlementPackage, PackageID: input.PackageID}, nil
	default:
		return Entitlement{Kind: enum.EntitlementNone}, nil
	}
}

func validateBookingInput(input *BookingInput) error {
	var fieldErrors []apperror.FieldError
	if input.StartAt.IsZero() || input.EndAt.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "start_at", Message: "start and end times are required"})
	} else if !input.EndAt.After(input.StartAt) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "end_at", Message: "must be after start_at"})
	}
	if input.Pax < 1 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "pax", Message: "must be at least 1"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
