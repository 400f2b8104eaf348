package admin

import (
	"context"

	"github.com/courseforge/courseforge/internal/types"
)

// Admin is a marker record denoting elevated privileges, keyed by email and
// kept in its own collection. The record is advisory: there is no foreign
// key to the users collection.
type Admin struct {
	ID              string          `bson:"_id" json:"id"`
	Email           string          `bson:"email" json:"email"`
	AdminType       types.AdminType `bson:"admin_type" json:"admin_type"`
	types.BaseModel `bson:",inline"`
}

func NewAdmin(ctx context.Context, email string, adminType types.AdminType) *Admin {
	return &Admin{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ADMIN),
		Email:     email,
		AdminType: adminType,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// IsMain reports whether this is the protected bootstrap admin
func (a *Admin) IsMain() bool {
	return a.AdminType.IsMain()
}
