package dto

import (
	"time"

	"github.com/courseforge/courseforge/internal/domain/billingop"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
)

type RecordManualBillingRequest struct {
	UserEmail   string                     `json:"user_email" validate:"required,email"`
	Amount      decimal.Decimal            `json:"amount" validate:"required"`
	Currency    string                     `json:"currency" validate:"required"`
	Type        types.BillingOperationType `json:"type" validate:"required"`
	Description string                     `json:"description"`
	Method      string                     `json:"method"`
}

type BillingOperationResponse struct {
	ID          string                       `json:"id"`
	UserEmail   string                       `json:"user_email"`
	Amount      decimal.Decimal              `json:"amount"`
	Currency    string                       `json:"currency"`
	Type        types.BillingOperationType   `json:"type"`
	Status      types.BillingOperationStatus `json:"billing_status"`
	Description string                       `json:"description"`
	Method      string                       `json:"method,omitempty"`
	ProcessedBy string                       `json:"processed_by"`
	CreatedAt   time.Time                    `json:"created_at"`
}

func NewBillingOperationResponse(op *billingop.BillingOperation) *BillingOperationResponse {
	return &BillingOperationResponse{
		ID:          op.ID,
		UserEmail:   op.UserEmail,
		Amount:      op.Amount,
		Currency:    op.Currency,
		Type:        op.Type,
		Status:      op.Status,
		Description: op.Description,
		Method:      op.Method,
		ProcessedBy: op.ProcessedBy,
		CreatedAt:   op.CreatedAt,
	}
}

type ListBillingOperationsResponse struct {
	Items      []*BillingOperationResponse `json:"items"`
	Pagination types.PaginationResponse    `json:"pagination"`
}
