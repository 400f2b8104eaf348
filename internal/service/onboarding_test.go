package service

import (
	"sync"
	"testing"

	"github.com/courseforge/courseforge/internal/api/dto"
	"github.com/courseforge/courseforge/internal/domain/course"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/testutil"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/sourcegraph/conc/pool"
	"github.com/stretchr/testify/suite"
)

type OnboardingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service OnboardingService
}

func TestOnboardingService(t *testing.T) {
	suite.Run(t, new(OnboardingServiceSuite))
}

func (s *OnboardingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewOnboardingService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		Gateways:      s.GetGateways(),
		Notifier:      s.GetNotifier(),
		Cache:         s.GetCache(),
		UserRepo:      s.GetStores().UserRepo,
		AdminRepo:     s.GetStores().AdminRepo,
		PaymentRepo:   s.GetStores().PaymentRepo,
		RefundRepo:    s.GetStores().RefundRepo,
		BillingOpRepo: s.GetStores().BillingOpRepo,
		CourseRepo:    s.GetStores().CourseRepo,
	})
}

func (s *OnboardingServiceSuite) signUp(email, name string) *dto.SignUpResponse {
	resp, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    email,
		Name:     name,
		Password: "super-secret-1",
	})
	s.NoError(err)
	s.NotNil(resp)
	return resp
}

func (s *OnboardingServiceSuite) TestFirstSignUpBootstrapsMainAdmin() {
	resp := s.signUp("founder@example.com", "Founder")

	s.True(resp.IsFirstUser)
	s.Equal(types.PlanTierForever, resp.User.PlanTier)

	a, err := s.GetStores().AdminRepo.GetByEmail(s.GetContext(), "founder@example.com")
	s.NoError(err)
	s.Equal(types.AdminTypeMain, a.AdminType)
	s.True(a.IsMain())
}

func (s *OnboardingServiceSuite) TestSecondSignUpIsRegular() {
	s.signUp("founder@example.com", "Founder")
	resp := s.signUp("second@example.com", "Second User")

	s.False(resp.IsFirstUser)
	s.Equal(types.PlanTierFree, resp.User.PlanTier)

	_, err := s.GetStores().AdminRepo.GetByEmail(s.GetContext(), "second@example.com")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *OnboardingServiceSuite) TestConcurrentFirstSignUpsMayEachBootstrap() {
	// The emptiness check and the bootstrap writes are separate operations,
	// not one transaction. Racing first signups can each observe an empty
	// store and each create a main admin; the accepted outcome is one or
	// more main admins, never zero and never a regular one.
	emails := []string{
		"racer-1@example.com",
		"racer-2@example.com",
		"racer-3@example.com",
		"racer-4@example.com",
	}

	var mu sync.Mutex
	bootstrapped := 0

	p := pool.New()
	for _, email := range emails {
		p.Go(func() {
			resp, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
				Email:    email,
				Name:     "Racer",
				Password: "super-secret-1",
			})
			if !s.NoError(err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if resp.IsFirstUser {
				bootstrapped++
			}
		})
	}
	p.Wait()

	s.GreaterOrEqual(bootstrapped, 1)
	s.LessOrEqual(bootstrapped, len(emails))

	admins, err := s.GetStores().AdminRepo.List(s.GetContext())
	s.NoError(err)
	s.Len(admins, bootstrapped)
	for _, a := range admins {
		s.Equal(types.AdminTypeMain, a.AdminType)
	}

	count, err := s.GetStores().UserRepo.Count(s.GetContext())
	s.NoError(err)
	s.Equal(int64(len(emails)), count)
}

func (s *OnboardingServiceSuite) TestSignUpDuplicateEmail() {
	s.signUp("founder@example.com", "Founder")

	_, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "founder@example.com",
		Name:     "Impostor",
		Password: "super-secret-1",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *OnboardingServiceSuite) TestSignUpStoresHashedPassword() {
	resp := s.signUp("founder@example.com", "Founder")

	u, err := s.GetStores().UserRepo.GetByID(s.GetContext(), resp.User.ID)
	s.NoError(err)
	s.NotEmpty(u.Password)
	s.NotEqual("super-secret-1", u.Password)
}

func (s *OnboardingServiceSuite) TestPromoteAdmin() {
	s.signUp("founder@example.com", "Founder")
	second := s.signUp("second@example.com", "Second User")

	a, err := s.service.PromoteAdmin(s.GetContext(), "second@example.com")
	s.NoError(err)
	s.Equal(types.AdminTypeRegular, a.AdminType)

	// Promotion carries the unrestricted tier
	u, err := s.GetStores().UserRepo.GetByID(s.GetContext(), second.User.ID)
	s.NoError(err)
	s.Equal(types.PlanTierForever, u.PlanTier)
}

func (s *OnboardingServiceSuite) TestPromoteAdminUnknownUser() {
	_, err := s.service.PromoteAdmin(s.GetContext(), "nobody@example.com")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *OnboardingServiceSuite) TestPromoteAdminTwice() {
	s.signUp("founder@example.com", "Founder")
	s.signUp("second@example.com", "Second User")

	_, err := s.service.PromoteAdmin(s.GetContext(), "second@example.com")
	s.NoError(err)
	_, err = s.service.PromoteAdmin(s.GetContext(), "second@example.com")
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *OnboardingServiceSuite) TestDemoteAdmin() {
	s.signUp("founder@example.com", "Founder")
	s.signUp("second@example.com", "Second User")
	_, err := s.service.PromoteAdmin(s.GetContext(), "second@example.com")
	s.NoError(err)

	s.NoError(s.service.DemoteAdmin(s.GetContext(), "second@example.com"))

	_, err = s.GetStores().AdminRepo.GetByEmail(s.GetContext(), "second@example.com")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *OnboardingServiceSuite) TestDemoteMainAdminProtected() {
	s.signUp("founder@example.com", "Founder")

	err := s.service.DemoteAdmin(s.GetContext(), "founder@example.com")
	s.Error(err)
	s.True(ierr.IsProtectedResource(err))

	// The record is still there
	a, err := s.GetStores().AdminRepo.GetByEmail(s.GetContext(), "founder@example.com")
	s.NoError(err)
	s.True(a.IsMain())
}

func (s *OnboardingServiceSuite) TestListAdmins() {
	s.signUp("founder@example.com", "Founder")
	s.signUp("second@example.com", "Second User")

	resp, err := s.service.ListAdmins(s.GetContext())
	s.NoError(err)
	s.Len(resp.Admins, 1)
	s.Len(resp.Users, 2)
}

func (s *OnboardingServiceSuite) TestDeleteUserRemovesCourses() {
	s.signUp("founder@example.com", "Founder")
	second := s.signUp("second@example.com", "Second User")

	c := course.New(s.GetContext())
	c.UserID = second.User.ID
	c.Title = "Intro to Distributed Systems"
	c.Topic = "distributed systems"
	s.NoError(s.GetStores().CourseRepo.Create(s.GetContext(), c))

	s.NoError(s.service.DeleteUser(s.GetContext(), second.User.ID))

	_, err := s.GetStores().UserRepo.GetByID(s.GetContext(), second.User.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	courses, err := s.GetStores().CourseRepo.ListByUser(s.GetContext(), second.User.ID)
	s.NoError(err)
	s.Len(courses, 0)
}

func (s *OnboardingServiceSuite) TestDeleteAdminAccountProtected() {
	founder := s.signUp("founder@example.com", "Founder")

	err := s.service.DeleteUser(s.GetContext(), founder.User.ID)
	s.Error(err)
	s.True(ierr.IsProtectedResource(err))

	_, err = s.GetStores().UserRepo.GetByID(s.GetContext(), founder.User.ID)
	s.NoError(err)
}
