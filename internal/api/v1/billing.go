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

type BillingHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewBillingHandler(service service.BillingService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{service: service, log: log}
}

// ListPayments returns the payment ledger filtered by the query params
func (h *BillingHandler) ListPayments(c *gin.Context) {
	var filter types.PaymentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListPayments(c.Request.Context(), &filter)
	if err != nil {
		h.log.Error("Failed to list payments", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RecordManualBilling records an off-band billing entry
func (h *BillingHandler) RecordManualBilling(c *gin.Context) {
	var req dto.RecordManualBillingRequest
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

	resp, err := h.service.RecordManualBilling(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to record billing operation", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListBillingOperations returns recorded billing operations
func (h *BillingHandler) ListBillingOperations(c *gin.Context) {
	var filter types.BillingOperationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListBillingOperations(c.Request.Context(), &filter)
	if err != nil {
		h.log.Error("Failed to list billing operations", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateInvoice returns the invoice document URL for a payment
func (h *BillingHandler) GenerateInvoice(c *gin.Context) {
	var req dto.GenerateInvoiceRequest
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

	resp, err := h.service.GenerateInvoice(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to generate invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
