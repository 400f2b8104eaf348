package service

import (
	"context"

	"github.com/courseforge/courseforge/internal/types"
)

// EntitlementService is the only write path to a user's plan tier. The
// tier is a single overwritten field with no history; every write is a
// last-write-wins overwrite.
type EntitlementService interface {
	SetPlan(ctx context.Context, userID string, tier types.PlanTier) error
	GetPlan(ctx context.Context, userID string) (types.PlanTier, error)
}

type entitlementService struct {
	ServiceParams
}

func NewEntitlementService(params ServiceParams) EntitlementService {
	return &entitlementService{ServiceParams: params}
}

func (s *entitlementService) SetPlan(ctx context.Context, userID string, tier types.PlanTier) error {
	if err := tier.Validate(); err != nil {
		return err
	}

	if err := s.UserRepo.UpdatePlanTier(ctx, userID, tier); err != nil {
		return err
	}

	s.Logger.Infow("plan tier updated", "user_id", userID, "plan_tier", tier)
	return nil
}

func (s *entitlementService) GetPlan(ctx context.Context, userID string) (types.PlanTier, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.PlanTier, nil
}
