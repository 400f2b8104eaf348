package dto

import (
	"time"

	"github.com/courseforge/courseforge/internal/domain/admin"
	"github.com/courseforge/courseforge/internal/types"
)

type AddAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RemoveAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type AdminResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	AdminType types.AdminType `json:"admin_type"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewAdminResponse(a *admin.Admin) *AdminResponse {
	return &AdminResponse{
		ID:        a.ID,
		Email:     a.Email,
		AdminType: a.AdminType,
		CreatedAt: a.CreatedAt,
	}
}

// ListAdminsResponse feeds the admin-management screen, which offers
// promotion only on known users.
type ListAdminsResponse struct {
	Admins []*AdminResponse `json:"admins"`
	Users  []*UserResponse  `json:"users"`
}
