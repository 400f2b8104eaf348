package v1

import (
	"net/http"

	"github.com/courseforge/courseforge/internal/api/dto"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/service"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/courseforge/courseforge/internal/validator"
	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	service service.SubscriptionService
	log     *logger.Logger
}

func NewSubscriptionHandler(service service.SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{service: service, log: log}
}

func (h *SubscriptionHandler) gateway(c *gin.Context) (types.PaymentGatewayType, error) {
	gateway := types.PaymentGatewayType(c.Param("gateway"))
	if err := gateway.Validate(); err != nil {
		return "", err
	}
	return gateway, nil
}

// Create opens a checkout on the chosen gateway and returns the redirect URL
func (h *SubscriptionHandler) Create(c *gin.Context) {
	gateway, err := h.gateway(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := validator.ValidateRequest(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.InitiatePurchase(c.Request.Context(), gateway, &req)
	if err != nil {
		h.log.Error("Failed to initiate purchase", "error", err, "gateway", gateway)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Confirm reconciles the purchase against the gateway and grants the plan
func (h *SubscriptionHandler) Confirm(c *gin.Context) {
	gateway, err := h.gateway(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.ConfirmSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := validator.ValidateRequest(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ConfirmPurchase(c.Request.Context(), gateway, &req)
	if err != nil {
		h.log.Error("Failed to confirm purchase", "error", err, "gateway", gateway)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Cancel cancels the gateway subscription and downgrades the user
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	gateway, err := h.gateway(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := validator.ValidateRequest(&req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.CancelPurchase(c.Request.Context(), gateway, &req)
	if err != nil {
		h.log.Error("Failed to cancel purchase", "error", err, "gateway", gateway)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListGateways returns the gateways enabled as payment choices
func (h *SubscriptionHandler) ListGateways(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListGateways(c.Request.Context()))
}
