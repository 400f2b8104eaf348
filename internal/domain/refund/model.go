package refund

import (
	"context"
	"time"

	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
)

// PaymentSnapshot captures the originating payment at refund-request time.
// The refund lifecycle is independent of the payment record: processing a
// refund never cascades a status change onto the payment itself.
type PaymentSnapshot struct {
	TransactionID string                   `bson:"transaction_id" json:"transaction_id"`
	Amount        decimal.Decimal          `bson:"amount" json:"amount"`
	Gateway       types.PaymentGatewayType `bson:"gateway" json:"gateway"`
}

// Refund is a request to return money against a payment.
type Refund struct {
	ID          string             `bson:"_id" json:"id"`
	PaymentID   string             `bson:"payment_id" json:"payment_id"`
	Email       string             `bson:"email" json:"email"`
	Amount      decimal.Decimal    `bson:"amount" json:"amount"`
	Reason      string             `bson:"reason" json:"reason"`
	Status      types.RefundStatus `bson:"refund_status" json:"refund_status"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	ProcessedBy string             `bson:"processed_by,omitempty" json:"processed_by,omitempty"`
	ProcessedAt *time.Time         `bson:"processed_at,omitempty" json:"processed_at,omitempty"`
	Payment     PaymentSnapshot    `bson:"payment" json:"payment"`
	types.BaseModel `bson:",inline"`
}

func New(ctx context.Context) *Refund {
	return &Refund{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REFUND),
		Status:    types.RefundStatusPending,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// Validate validates the refund request
func (r *Refund) Validate() error {
	if r.PaymentID == "" {
		return ierr.NewError("invalid payment id").
			WithHint("Payment id is required").
			Mark(ierr.ErrValidation)
	}
	if r.Amount.IsZero() || r.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if r.Reason == "" {
		return ierr.NewError("invalid reason").
			WithHint("Reason is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TableName returns the collection name for refunds
func (r *Refund) TableName() string {
	return "refunds"
}
