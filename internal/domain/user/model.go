package user

import (
	"context"

	"github.com/courseforge/courseforge/internal/types"
)

// User is an account holder. PlanTier is the entitlement ledger: the single
// persisted fact about what the user is currently granted. It is overwritten,
// never versioned; auditing relies on the payment and billing records.
type User struct {
	ID              string         `bson:"_id" json:"id"`
	Email           string         `bson:"email" json:"email"`
	Name            string         `bson:"name" json:"name"`
	Password        string         `bson:"password" json:"-"`
	PlanTier        types.PlanTier `bson:"plan_tier" json:"plan_tier"`
	IsActive        bool           `bson:"is_active" json:"is_active"`
	types.BaseModel `bson:",inline"`
}

func NewUser(ctx context.Context, email, name, hashedPassword string) *User {
	return &User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email:     email,
		Name:      name,
		Password:  hashedPassword,
		PlanTier:  types.PlanTierFree,
		IsActive:  true,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}
