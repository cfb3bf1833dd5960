package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mps-sg/bookspace-api/internal/application/service"
	"github.com/mps-sg/bookspace-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment provider callbacks
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Webhook receives the provider's payment-status callback. The provider
// retries on anything but 2xx, so every processed callback answers 200
// even when enrichment or notification failed along the way.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var cb service.CallbackEvent
	if err := c.ShouldBind(&cb); err != nil {
		response.BadRequest(c, "Invalid webhook payload")
		return
	}

	if err := h.paymentService.HandleCallback(c.Request.Context(), &cb); err != nil {
		response.Error(c, err)
		return
	}

	c.String(http.StatusOK, "OK")
}
