package billingop

import (
	"context"

	"github.com/courseforge/courseforge/internal/types"
)

// Repository defines the interface for billing operation persistence
type Repository interface {
	Create(ctx context.Context, op *BillingOperation) error
	Get(ctx context.Context, id string) (*BillingOperation, error)
	List(ctx context.Context, filter *types.BillingOperationFilter) ([]*BillingOperation, error)
	Count(ctx context.Context, filter *types.BillingOperationFilter) (int64, error)
	UpdateStatus(ctx context.Context, id string, status types.BillingOperationStatus) error
}
