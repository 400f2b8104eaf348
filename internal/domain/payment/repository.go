package payment

import (
	"context"

	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for payment persistence
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	GetByTransactionID(ctx context.Context, txnID string) (*Payment, error)
	List(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)
	Count(ctx context.Context, filter *types.PaymentFilter) (int64, error)

	// SumAmount totals the amount of all successful payments
	SumAmount(ctx context.Context) (decimal.Decimal, error)
}
