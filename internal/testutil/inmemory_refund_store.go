package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/courseforge/courseforge/internal/domain/refund"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/types"
)

// InMemoryRefundStore is an in-memory implementation of the Refund repository
type InMemoryRefundStore struct {
	mu      sync.Mutex
	refunds map[string]*refund.Refund
}

func NewInMemoryRefundStore() *InMemoryRefundStore {
	return &InMemoryRefundStore{refunds: make(map[string]*refund.Refund)}
}

func (r *InMemoryRefundStore) Create(ctx context.Context, rf *refund.Refund) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refunds[rf.ID] = rf
	return nil
}

func (r *InMemoryRefundStore) Get(ctx context.Context, id string) (*refund.Refund, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rf, ok := r.refunds[id]
	if !ok {
		return nil, ierr.NewError("refund not found").
			WithHintf("Refund with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return rf, nil
}

func (r *InMemoryRefundStore) Update(ctx context.Context, rf *refund.Refund) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.refunds[rf.ID]; !ok {
		return ierr.NewError("refund not found").
			WithHintf("Refund with ID %s was not found", rf.ID).
			Mark(ierr.ErrNotFound)
	}
	r.refunds[rf.ID] = rf
	return nil
}

func (r *InMemoryRefundStore) List(ctx context.Context, filter *types.RefundFilter) ([]*refund.Refund, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	refunds := make([]*refund.Refund, 0, len(r.refunds))
	for _, rf := range r.refunds {
		if filter != nil {
			if filter.RefundStatus != nil && rf.Status != *filter.RefundStatus {
				continue
			}
			if filter.Email != nil && rf.Email != *filter.Email {
				continue
			}
		}
		refunds = append(refunds, rf)
	}
	sort.Slice(refunds, func(i, j int) bool {
		return refunds[i].CreatedAt.After(refunds[j].CreatedAt)
	})
	return refunds, nil
}

func (r *InMemoryRefundStore) BulkUpdateStatus(ctx context.Context, ids []string, status types.RefundStatus, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Ids that do not resolve are skipped without error
	for _, id := range ids {
		if rf, ok := r.refunds[id]; ok {
			rf.Status = status
			rf.Notes = notes
		}
	}
	return nil
}

func (r *InMemoryRefundStore) CountByStatus(ctx context.Context) (map[types.RefundStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[types.RefundStatus]int64)
	for _, rf := range r.refunds {
		counts[rf.Status]++
	}
	return counts, nil
}

func (r *InMemoryRefundStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refunds = make(map[string]*refund.Refund)
}
