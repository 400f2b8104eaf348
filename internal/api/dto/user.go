package dto

import (
	"time"

	"github.com/courseforge/courseforge/internal/domain/user"
	"github.com/courseforge/courseforge/internal/types"
)

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignUpResponse struct {
	User        *UserResponse `json:"user"`
	IsFirstUser bool          `json:"is_first_user"`
}

type UserResponse struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	PlanTier  types.PlanTier `json:"plan_tier"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		PlanTier:  u.PlanTier,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

type ListUsersResponse struct {
	Items      []*UserResponse          `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}
