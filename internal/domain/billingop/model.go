package billingop

import (
	"context"

	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
)

// BillingOperation is a manual, recurring, or adjustment ledger entry
// created by an admin outside the gateway subscription flow. It is fully
// independent of the entitlement ledger: recording one never changes a
// user's plan tier.
type BillingOperation struct {
	ID          string                       `bson:"_id" json:"id"`
	UserEmail   string                       `bson:"user_email" json:"user_email"`
	Amount      decimal.Decimal              `bson:"amount" json:"amount"`
	Currency    string                       `bson:"currency" json:"currency"`
	Type        types.BillingOperationType   `bson:"type" json:"type"`
	Status      types.BillingOperationStatus `bson:"billing_status" json:"billing_status"`
	Description string                       `bson:"description" json:"description"`
	Method      string                       `bson:"method,omitempty" json:"method,omitempty"`
	ProcessedBy string                       `bson:"processed_by" json:"processed_by"`
	types.BaseModel `bson:",inline"`
}

func New(ctx context.Context) *BillingOperation {
	return &BillingOperation{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BILLING_OPERATION),
		Status:    types.BillingOperationStatusPending,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// Validate validates the billing operation
func (b *BillingOperation) Validate() error {
	if b.UserEmail == "" {
		return ierr.NewError("invalid user email").
			WithHint("User email is required").
			Mark(ierr.ErrValidation)
	}
	if b.Amount.IsZero() || b.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if b.Currency == "" {
		return ierr.NewError("invalid currency").
			WithHint("Currency is required").
			Mark(ierr.ErrValidation)
	}
	if err := b.Type.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Billing operation type is invalid").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TableName returns the collection name for billing operations
func (b *BillingOperation) TableName() string {
	return "billing_operations"
}
