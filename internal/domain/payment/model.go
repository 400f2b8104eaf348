package payment

import (
	"context"
	"time"

	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
)

// Payment records a completed monetary transaction against a gateway.
type Payment struct {
	ID string `bson:"_id" json:"id"`
	// The user the payment belongs to
	UserID string `bson:"user_id" json:"user_id"`
	Email  string `bson:"email" json:"email"`
	// The amount field specifies the payment value in the given currency
	Amount   decimal.Decimal `bson:"amount" json:"amount"`
	Currency string          `bson:"currency" json:"currency"`
	// The plan the payment purchased, as displayed to the user
	PlanName string `bson:"plan_name" json:"plan_name"`
	// The gateway that processed this transaction
	Gateway types.PaymentGatewayType `bson:"gateway" json:"gateway"`
	// The transaction_id is the unique reference at the gateway; for
	// subscription purchases it is the provider subscription id
	TransactionID string              `bson:"transaction_id" json:"transaction_id"`
	PaymentStatus types.PaymentStatus `bson:"payment_status" json:"payment_status"`
	PaidAt        time.Time           `bson:"paid_at" json:"paid_at"`
	types.BaseModel `bson:",inline"`
}

func New(ctx context.Context) *Payment {
	return &Payment{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		PaidAt:    time.Now().UTC(),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// Validate validates the payment
func (p *Payment) Validate() error {
	if p.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must not be negative").
			Mark(ierr.ErrValidation)
	}
	if p.Currency == "" {
		return ierr.NewError("invalid currency").
			WithHint("Currency is required").
			Mark(ierr.ErrValidation)
	}
	if p.TransactionID == "" {
		return ierr.NewError("invalid transaction id").
			WithHint("Transaction id is required").
			Mark(ierr.ErrValidation)
	}
	if err := p.Gateway.Validate(); err != nil {
		return err
	}
	if err := p.PaymentStatus.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Payment status is invalid").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TableName returns the collection name for payments
func (p *Payment) TableName() string {
	return "payments"
}
