package dto

import (
	"time"

	"github.com/courseforge/courseforge/internal/domain/payment"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	ID            string                   `json:"id"`
	UserID        string                   `json:"user_id"`
	Email         string                   `json:"email"`
	Amount        decimal.Decimal          `json:"amount"`
	Currency      string                   `json:"currency"`
	PlanName      string                   `json:"plan_name"`
	Gateway       types.PaymentGatewayType `json:"gateway"`
	TransactionID string                   `json:"transaction_id"`
	PaymentStatus types.PaymentStatus      `json:"payment_status"`
	PaidAt        time.Time                `json:"paid_at"`
}

func NewPaymentResponse(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Email:         p.Email,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PlanName:      p.PlanName,
		Gateway:       p.Gateway,
		TransactionID: p.TransactionID,
		PaymentStatus: p.PaymentStatus,
		PaidAt:        p.PaidAt,
	}
}

type ListPaymentsResponse struct {
	Items      []*PaymentResponse       `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

type GenerateInvoiceRequest struct {
	PaymentID string `json:"payment_id" validate:"required"`
}

type GenerateInvoiceResponse struct {
	PaymentID  string `json:"payment_id"`
	InvoiceURL string `json:"invoice_url"`
}
