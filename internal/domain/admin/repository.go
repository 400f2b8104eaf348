package admin

import (
	"context"
)

// Repository defines the interface for admin record persistence
type Repository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	List(ctx context.Context) ([]*Admin, error)
	Count(ctx context.Context) (int64, error)
	DeleteByEmail(ctx context.Context, email string) error
}
