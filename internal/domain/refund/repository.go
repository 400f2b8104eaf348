package refund

import (
	"context"

	"github.com/courseforge/courseforge/internal/types"
)

// Repository defines the interface for refund persistence
type Repository interface {
	Create(ctx context.Context, refund *Refund) error
	Get(ctx context.Context, id string) (*Refund, error)
	Update(ctx context.Context, refund *Refund) error
	List(ctx context.Context, filter *types.RefundFilter) ([]*Refund, error)

	// BulkUpdateStatus sets the status and notes for every listed id in one
	// batch write. Missing ids are skipped silently; the call reports only
	// aggregate success or failure.
	BulkUpdateStatus(ctx context.Context, ids []string, status types.RefundStatus, notes string) error

	// CountByStatus groups refund counts by their current status
	CountByStatus(ctx context.Context) (map[types.RefundStatus]int64, error)
}
