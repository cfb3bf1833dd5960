package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mps-sg/bookspace-api/internal/application/service"
	"github.com/mps-sg/bookspace-api/internal/domain/entity"
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"github.com/mps-sg/bookspace-api/internal/presentation/http/dto/request"
	"github.com/mps-sg/bookspace-api/internal/presentation/http/dto/response"
)

// PackageHandler handles prepaid pass package HTTP requests
type PackageHandler struct {
	packageService *service.PackageService
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(packageService *service.PackageService) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

// List returns the authenticated user's packages
func (h *PackageHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	packages, err := h.packageService.ListForUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Packages retrieved successfully", packages)
}

// Purchase creates a new pass package for the authenticated user
func (h *PackageHandler) Purchase(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PurchasePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	pkg := &entity.PassPackage{
		UserID:      *userID,
		Name:        req.Name,
		PackageType: enum.ParsePackageType(req.PackageType),
		TotalPasses: req.TotalPasses,
		ExpiresAt:   time.Now().AddDate(0, 0, req.ValidDays),
	}

	if err := h.packageService.Purchase(c.Request.Context(), pkg); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Package purchased successfully", pkg)
}
