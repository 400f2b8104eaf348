package user

import (
	"context"

	"github.com/courseforge/courseforge/internal/types"
)

// Repository defines the interface for user persistence
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*User, error)
	Count(ctx context.Context) (int64, error)

	// UpdatePlanTier overwrites the entitlement for the user. This is the
	// only write path to the plan tier; last write wins.
	UpdatePlanTier(ctx context.Context, id string, tier types.PlanTier) error

	Delete(ctx context.Context, id string) error
}
