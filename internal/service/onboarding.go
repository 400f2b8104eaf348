package service

import (
	"context"

	"github.com/courseforge/courseforge/internal/api/dto"
	"github.com/courseforge/courseforge/internal/domain/admin"
	"github.com/courseforge/courseforge/internal/domain/user"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// OnboardingService owns account creation, the first-user admin bootstrap
// and the admin promotion workflow.
type OnboardingService interface {
	// SignUp creates a user account. The very first account is granted the
	// unrestricted tier and becomes the main admin. The emptiness check and
	// the subsequent writes are sequential independent writes; two racing
	// first signups can both bootstrap. Known race, kept as is.
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SignUpResponse, error)

	// PromoteAdmin creates a regular admin record for an existing user and
	// grants the unrestricted tier as a side effect.
	PromoteAdmin(ctx context.Context, email string) (*dto.AdminResponse, error)

	// DemoteAdmin removes an admin record. The main admin is protected and
	// can never be removed.
	DemoteAdmin(ctx context.Context, email string) error

	// ListAdmins returns all admins plus all users for the management screen.
	ListAdmins(ctx context.Context) (*dto.ListAdminsResponse, error)

	// DeleteUser removes a user account and its courses. Admin accounts
	// cannot be deleted.
	DeleteUser(ctx context.Context, userID string) error
}

type onboardingService struct {
	ServiceParams
	entitlement EntitlementService
}

func NewOnboardingService(params ServiceParams) OnboardingService {
	return &onboardingService{
		ServiceParams: params,
		entitlement:   NewEntitlementService(params),
	}
}

func (s *onboardingService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SignUpResponse, error) {
	if existing, err := s.UserRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ierr.NewError("user already exists").
			WithHint("An account with this email already exists").
			WithReportableDetails(map[string]interface{}{
				"email": req.Email,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to process the password").
			Mark(ierr.ErrInternal)
	}

	// The emptiness check happens before the user is created; the check and
	// the writes below are not one transaction
	count, err := s.UserRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	isFirstUser := count == 0

	u := user.NewUser(ctx, req.Email, req.Name, string(hashed))
	if isFirstUser {
		u.PlanTier = types.PlanTierForever
	}
	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	if isFirstUser {
		a := admin.NewAdmin(ctx, u.Email, types.AdminTypeMain)
		if err := s.AdminRepo.Create(ctx, a); err != nil {
			return nil, err
		}
		s.Logger.Infow("bootstrapped main admin", "email", u.Email, "user_id", u.ID)
	}

	s.Logger.Infow("user signed up",
		"user_id", u.ID,
		"email", u.Email,
		"is_first_user", isFirstUser)

	return &dto.SignUpResponse{
		User:        dto.NewUserResponse(u),
		IsFirstUser: isFirstUser,
	}, nil
}

func (s *onboardingService) PromoteAdmin(ctx context.Context, email string) (*dto.AdminResponse, error) {
	u, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if existing, err := s.AdminRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ierr.NewError("admin already exists").
			WithHint("This user is already an admin").
			WithReportableDetails(map[string]interface{}{
				"email": email,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	a := admin.NewAdmin(ctx, email, types.AdminTypeRegular)
	if err := s.AdminRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	// Promotion carries the unrestricted tier with it
	if err := s.entitlement.SetPlan(ctx, u.ID, types.PlanTierForever); err != nil {
		return nil, err
	}

	s.Logger.Infow("user promoted to admin", "email", email, "user_id", u.ID)
	return dto.NewAdminResponse(a), nil
}

func (s *onboardingService) DemoteAdmin(ctx context.Context, email string) error {
	a, err := s.AdminRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if a.IsMain() {
		return ierr.NewError("cannot remove the main admin").
			WithHint("The main admin account is protected").
			WithReportableDetails(map[string]interface{}{
				"email": email,
			}).
			Mark(ierr.ErrProtectedResource)
	}

	if err := s.AdminRepo.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	s.Logger.Infow("admin demoted", "email", email)
	return nil
}

func (s *onboardingService) ListAdmins(ctx context.Context) (*dto.ListAdminsResponse, error) {
	admins, err := s.AdminRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.UserRepo.List(ctx, &types.NoLimitQueryFilter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListAdminsResponse{
		Admins: make([]*dto.AdminResponse, 0, len(admins)),
		Users:  make([]*dto.UserResponse, 0, len(users)),
	}
	for _, a := range admins {
		resp.Admins = append(resp.Admins, dto.NewAdminResponse(a))
	}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(u))
	}
	return resp, nil
}

func (s *onboardingService) DeleteUser(ctx context.Context, userID string) error {
	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if a, err := s.AdminRepo.GetByEmail(ctx, u.Email); err == nil && a != nil {
		return ierr.NewError("cannot delete an admin account").
			WithHint("Admin accounts are protected from deletion").
			WithReportableDetails(map[string]interface{}{
				"email": u.Email,
			}).
			Mark(ierr.ErrProtectedResource)
	}

	if err := s.CourseRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.UserRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.Logger.Infow("user deleted", "user_id", userID, "email", u.Email)
	return nil
}
