package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/application/service"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"github.com/mps-sg/bookspace-api/internal/presentation/http/dto/request"
	"github.com/mps-sg/bookspace-api/internal/presentation/http/dto/response"
)

// VoucherHandler handles voucher-related HTTP requests
type VoucherHandler struct {
	voucherService *service.VoucherService
}

// NewVoucherHandler creates a new voucher handler
func NewVoucherHandler(voucherService *service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// Validate checks a voucher code for the authenticated user. The promo
// tab calls this before a quote so the UI can surface an error without
// discarding the rest of the booking form.
func (h *VoucherHandler) Validate(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ValidateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	voucher, err := h.voucherService.Validate(c.Request.Context(), req.Code, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Voucher is valid", voucher)
}

// List lists the voucher catalog (admin)
func (h *VoucherHandler) List(c *gin.Context) {
	vouchers, err := h.voucherService.ListVouchers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vouchers retrieved successfully", vouchers)
}

// Create adds a voucher to the catalog (admin)
func (h *VoucherHandler) Create(c *gin.Context) {
	var req request.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	voucher := &entity.Voucher{
		Code:           req.Code,
		Description:    req.Description,
		DiscountType:   enum.ParseDiscountType(req.DiscountType),
		DiscountValue:  req.DiscountValue,
		ExpiresAt:      req.ExpiresAt,
		MaxUsesPerUser: req.MaxUsesPerUser,
		MaxUsesTotal:   req.MaxUsesTotal,
		IsActive:       true,
	}

	if err := h.voucherService.CreateVoucher(c.Request.Context(), voucher); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Voucher created successfully", voucher)
}

// Update modifies a catalog entry (admin)
func (h *VoucherHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid voucher ID")
		return
	}

	var req request.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	voucher, err := h.voucherService.GetVoucher(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if req.Description != nil {
		voucher.Description = *req.Description
	}
	if req.DiscountValue != nil {
		voucher.DiscountValue = *req.DiscountValue
	}
	if req.ExpiresAt != nil {
		voucher.ExpiresAt = *req.ExpiresAt
	}
	if req.MaxUsesPerUser != nil {
		voucher.MaxUsesPerUser = *req.MaxUsesPerUser
	}
	if req.MaxUsesTotal != nil {
		voucher.MaxUsesTotal = *req.MaxUsesTotal
	}
	if req.IsActive != nil {
		voucher.IsActive = *req.IsActive
	}

	if err := h.voucherService.UpdateVoucher(c.Request.Context(), voucher); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Voucher updated successfully", voucher)
}

// Delete removes a catalog entry (admin)
func (h *VoucherHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid voucher ID")
		return
	}

	if err := h.voucherService.DeleteVoucher(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Voucher deleted successfully", nil)
}

// Redemptions returns the authenticated user's redemption history
func (h *VoucherHandler) Redemptions(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	redemptions, err := h.voucherService.ListRedemptions(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Redemptions retrieved successfully", redemptions)
}
