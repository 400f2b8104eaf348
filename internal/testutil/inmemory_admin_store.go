package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/courseforge/courseforge/internal/domain/admin"
	ierr "github.com/courseforge/courseforge/internal/errors"
)

// InMemoryAdminStore is an in-memory implementation of the Admin repository
type InMemoryAdminStore struct {
	mu     sync.Mutex
	admins map[string]*admin.Admin
}

func NewInMemoryAdminStore() *InMemoryAdminStore {
	return &InMemoryAdminStore{admins: make(map[string]*admin.Admin)}
}

func (r *InMemoryAdminStore) Create(ctx context.Context, a *admin.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.admins[a.Email]; exists {
		return ierr.NewError("admin already exists").
			WithHint("An admin with this email already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	r.admins[a.Email] = a
	return nil
}

func (r *InMemoryAdminStore) GetByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.admins[email]
	if !ok {
		return nil, ierr.NewError("admin not found").
			WithHintf("Admin with email %s was not found", email).
			Mark(ierr.ErrNotFound)
	}
	return a, nil
}

func (r *InMemoryAdminStore) List(ctx context.Context) ([]*admin.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admins := make([]*admin.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		admins = append(admins, a)
	}
	sort.Slice(admins, func(i, j int) bool {
		return admins[i].CreatedAt.Before(admins[j].CreatedAt)
	})
	return admins, nil
}

func (r *InMemoryAdminStore) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.admins)), nil
}

func (r *InMemoryAdminStore) DeleteByEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.admins[email]; !ok {
		return ierr.NewError("admin not found").
			WithHintf("Admin with email %s was not found", email).
			Mark(ierr.ErrNotFound)
	}
	delete(r.admins, email)
	return nil
}

func (r *InMemoryAdminStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins = make(map[string]*admin.Admin)
}
