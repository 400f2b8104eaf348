package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/courseforge/courseforge/internal/domain/payment"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
)

// InMemoryPaymentStore is an in-memory implementation of the Payment repository
type InMemoryPaymentStore struct {
	mu       sync.Mutex
	payments map[string]*payment.Payment
}

func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{payments: make(map[string]*payment.Payment)}
}

func (r *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments[p.ID] = p
	return nil
}

func (r *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, ierr.NewError("payment not found").
			WithHintf("Payment with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

func (r *InMemoryPaymentStore) GetByTransactionID(ctx context.Context, txnID string) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.payments {
		if p.TransactionID == txnID {
			return p, nil
		}
	}
	return nil, ierr.NewError("payment not found").
		WithHintf("Payment with transaction %s was not found", txnID).
		Mark(ierr.ErrNotFound)
}

func (r *InMemoryPaymentStore) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payments := make([]*payment.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		if matchesPaymentFilter(p, filter) {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}

func (r *InMemoryPaymentStore) Count(ctx context.Context, filter *types.PaymentFilter) (int64, error) {
	payments, err := r.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(payments)), nil
}

func (r *InMemoryPaymentStore) SumAmount(ctx context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := decimal.Zero
	for _, p := range r.payments {
		if p.PaymentStatus == types.PaymentStatusSuccess {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (r *InMemoryPaymentStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = make(map[string]*payment.Payment)
}

func matchesPaymentFilter(p *payment.Payment, filter *types.PaymentFilter) bool {
	if filter == nil {
		return true
	}
	if filter.UserID != nil && p.UserID != *filter.UserID {
		return false
	}
	if filter.Email != nil && p.Email != *filter.Email {
		return false
	}
	if filter.Gateway != nil && p.Gateway != *filter.Gateway {
		return false
	}
	if filter.PaymentStatus != nil && p.PaymentStatus != *filter.PaymentStatus {
		return false
	}
	return true
}
