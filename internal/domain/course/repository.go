package course

import "context"

// Repository defines the interface for course persistence
type Repository interface {
	Create(ctx context.Context, c *Course) error
	Get(ctx context.Context, id string) (*Course, error)
	ListByUser(ctx context.Context, userID string) ([]*Course, error)
	Count(ctx context.Context) (int64, error)
	DeleteByUser(ctx context.Context, userID string) error
}
