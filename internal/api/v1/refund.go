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

type RefundHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewRefundHandler(service service.BillingService, log *logger.Logger) *RefundHandler {
	return &RefundHandler{service: service, log: log}
}

// Create opens a refund request against an existing payment
func (h *RefundHandler) Create(c *gin.Context) {
	var req dto.CreateRefundRequest
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

	resp, err := h.service.CreateRefund(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create refund", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// List returns refund requests filtered by the query params
func (h *RefundHandler) List(c *gin.Context) {
	var filter types.RefundFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListRefunds(c.Request.Context(), &filter)
	if err != nil {
		h.log.Error("Failed to list refunds", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Process resolves a single refund with an approve or reject decision
func (h *RefundHandler) Process(c *gin.Context) {
	var req dto.ProcessRefundRequest
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

	resp, err := h.service.ProcessRefund(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to process refund", "error", err, "refund_id", req.RefundID)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Bulk applies one approve or reject decision to a batch of refunds
func (h *RefundHandler) Bulk(c *gin.Context) {
	var req dto.BulkRefundRequest
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

	resp, err := h.service.BulkRefundAction(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to apply bulk refund action", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
