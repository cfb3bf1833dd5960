package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/repository"
	"github.com/mps-sg/bookspace-api/internal/presentation/http/dto/response"
)

// LocationHandler handles location HTTP requests
type LocationHandler struct {
	locationRepo repository.LocationRepository
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationRepo repository.LocationRepository) *LocationHandler {
	return &LocationHandler{locationRepo: locationRepo}
}

// List returns all active locations with their hourly rates. This is
// public: the booking form renders from it before login.
func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.locationRepo.List(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Locations retrieved successfully", locations)
}

// Get retrieves a single location by ID or slug
func (h *LocationHandler) Get(c *gin.Context) {
	param := c.Param("id")

	if id, err := uuid.Parse(param); err == nil {
		location, err := h.locationRepo.GetByID(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		if location == nil {
			response.NotFound(c, "Location not found")
			return
		}
		response.OK(c, "Location retrieved successfully", location)
		return
	}

	location, err := h.locationRepo.GetBySlug(c.Request.Context(), param)
	if err != nil {
		response.Error(c, err)
		return
	}
	if location == nil {
		response.NotFound(c, "Location not found")
		return
	}

	response.OK(c, "Location retrieved successfully", location)
}
