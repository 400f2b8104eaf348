package dto

import (
	"time"

	"github.com/courseforge/courseforge/internal/domain/refund"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
)

type CreateRefundRequest struct {
	PaymentID string          `json:"payment_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason" validate:"required"`
}

type RefundResponse struct {
	ID          string                 `json:"id"`
	PaymentID   string                 `json:"payment_id"`
	Email       string                 `json:"email"`
	Amount      decimal.Decimal        `json:"amount"`
	Reason      string                 `json:"reason"`
	Status      types.RefundStatus     `json:"refund_status"`
	Notes       string                 `json:"notes,omitempty"`
	ProcessedBy string                 `json:"processed_by,omitempty"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	Payment     refund.PaymentSnapshot `json:"payment"`
	CreatedAt   time.Time              `json:"created_at"`
}

func NewRefundResponse(r *refund.Refund) *RefundResponse {
	return &RefundResponse{
		ID:          r.ID,
		PaymentID:   r.PaymentID,
		Email:       r.Email,
		Amount:      r.Amount,
		Reason:      r.Reason,
		Status:      r.Status,
		Notes:       r.Notes,
		ProcessedBy: r.ProcessedBy,
		ProcessedAt: r.ProcessedAt,
		Payment:     r.Payment,
		CreatedAt:   r.CreatedAt,
	}
}

type ListRefundsResponse struct {
	Items      []*RefundResponse        `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// ProcessRefundRequest resolves a single refund. An "approved" decision
// lands the refund in the processed state; any other decision is stored
// as-is.
type ProcessRefundRequest struct {
	RefundID string             `json:"refund_id" validate:"required"`
	Decision types.RefundStatus `json:"decision" validate:"required"`
	Amount   decimal.Decimal    `json:"amount"`
	Reason   string             `json:"reason"`
	Notes    string             `json:"notes"`
}

func (r *ProcessRefundRequest) Validate() error {
	if err := r.Decision.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Decision is not a valid refund status").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type BulkRefundRequest struct {
	RefundIDs []string               `json:"refund_ids" validate:"required,min=1"`
	Action    types.BulkRefundAction `json:"action" validate:"required"`
	Notes     string                 `json:"notes"`
}

func (r *BulkRefundRequest) Validate() error {
	return r.Action.Validate()
}

type BulkRefundResponse struct {
	Requested int                `json:"requested"`
	Status    types.RefundStatus `json:"refund_status"`
}
