package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/courseforge/courseforge/internal/domain/billingop"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/types"
)

// InMemoryBillingOperationStore is an in-memory implementation of the
// BillingOperation repository
type InMemoryBillingOperationStore struct {
	mu  sync.Mutex
	ops map[string]*billingop.BillingOperation
}

func NewInMemoryBillingOperationStore() *InMemoryBillingOperationStore {
	return &InMemoryBillingOperationStore{ops: make(map[string]*billingop.BillingOperation)}
}

func (r *InMemoryBillingOperationStore) Create(ctx context.Context, op *billingop.BillingOperation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ops[op.ID] = op
	return nil
}

func (r *InMemoryBillingOperationStore) Get(ctx context.Context, id string) (*billingop.BillingOperation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	op, ok := r.ops[id]
	if !ok {
		return nil, ierr.NewError("billing operation not found").
			WithHintf("Billing operation with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return op, nil
}

func (r *InMemoryBillingOperationStore) List(ctx context.Context, filter *types.BillingOperationFilter) ([]*billingop.BillingOperation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]*billingop.BillingOperation, 0, len(r.ops))
	for _, op := range r.ops {
		if matchesBillingOpFilter(op, filter) {
			ops = append(ops, op)
		}
	}
	sort.Slice(ops, func(i, j int) bool {
		return ops[i].CreatedAt.After(ops[j].CreatedAt)
	})
	return ops, nil
}

func (r *InMemoryBillingOperationStore) Count(ctx context.Context, filter *types.BillingOperationFilter) (int64, error) {
	ops, err := r.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(ops)), nil
}

func (r *InMemoryBillingOperationStore) UpdateStatus(ctx context.Context, id string, status types.BillingOperationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	op, ok := r.ops[id]
	if !ok {
		return ierr.NewError("billing operation not found").
			WithHintf("Billing operation with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	op.Status = status
	return nil
}

func (r *InMemoryBillingOperationStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = make(map[string]*billingop.BillingOperation)
}

func matchesBillingOpFilter(op *billingop.BillingOperation, filter *types.BillingOperationFilter) bool {
	if filter == nil {
		return true
	}
	if filter.UserEmail != nil && op.UserEmail != *filter.UserEmail {
		return false
	}
	if filter.Type != nil && op.Type != *filter.Type {
		return false
	}
	if filter.Status != nil && op.Status != *filter.Status {
		return false
	}
	return true
}
