package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/application/service"
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"github.com/mps-sg/bookspace-api/internal/domain/repository"
	"github.com/mps-sg/bookspace-api/internal/presentation/http/dto/request"
	"github.com/mps-sg/bookspace-api/internal/presentation/http/dto/response"
	"github.com/mps-sg/bookspace-api/pkg/pagination"
)

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Quote prices a prospective booking without persisting anything.
// Clients re-quote on every entitlement change; the displayed amounts
// always come from here, never from client-side arithmetic.
func (h *BookingHandler) Quote(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, err := toBookingInput(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	quote, err := h.bookingService.Quote(c.Request.Context(), *userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote computed successfully", quote)
}

// Create handles booking creation
func (h *BookingHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, err := toBookingInput(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.bookingService.CreateBooking(c.Request.Context(), *userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Booking created successfully", result)
}

// Get retrieves a single booking
func (h *BookingHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), *userID, IsAdmin(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking retrieved successfully", booking)
}

// List handles listing bookings with filters and pagination
func (h *BookingHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.BookingFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:         c.Query("search"),
		SkipUserFilter: IsAdmin(c),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.BookingStatus(statusInt)
			params.Status = &status
		}
	}

	if locationIDStr := c.Query("location_id"); locationIDStr != "" {
		if locationID, err := uuid.Parse(locationIDStr); err == nil {
			params.LocationID = &locationID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.bookingService.ListBookings(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bookings retrieved successfully", result)
}

// Cancel cancels a booking and restores any consumed pass
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	if err := h.bookingService.CancelBooking(c.Request.Context(), *userID, IsAdmin(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking cancelled successfully", nil)
}

// toBookingInput converts the wire request to a service input
func toBookingInput(req *request.CreateBookingRequest) (*service.BookingInput, error) {
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, err
	}

	input := &service.BookingInput{
		LocationID:      locationID,
		StartAt:         req.StartAt,
		EndAt:           req.EndAt,
		Pax:             req.Pax,
		SeatNumbers:     req.SeatNumbers,
		SpecialRequests: req.SpecialRequests,
		Entitlement:     enum.ParseEntitlementKind(req.Entitlement),
		VoucherCode:     req.VoucherCode,
	}

	if req.PackageID != "" {
		packageID, err := uuid.Parse(req.PackageID)
		if err != nil {
			return nil, err
		}
		input.PackageID = packageID
	}

	return input, nil
}
