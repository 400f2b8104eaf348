package service

import (
	"testing"

	"github.com/courseforge/courseforge/internal/api/dto"
	"github.com/courseforge/courseforge/internal/domain/user"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/testutil"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SubscriptionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  SubscriptionService
	testData struct {
		user *user.User
	}
}

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceSuite))
}

func (s *SubscriptionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *SubscriptionServiceSuite) setupService() {
	cfg := s.GetConfig()
	cfg.Gateways.Stripe.Enabled = true
	cfg.Gateways.Stripe.MonthlyPlanID = "price_monthly_test"
	cfg.Gateways.Stripe.YearlyPlanID = "price_yearly_test"
	cfg.Gateways.Razorpay.Enabled = true
	cfg.Gateways.Razorpay.MonthlyPlanID = "plan_monthly_test"
	cfg.Gateways.Razorpay.YearlyPlanID = "plan_yearly_test"

	s.service = NewSubscriptionService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        cfg,
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

func (s *SubscriptionServiceSuite) setupTestData() {
	s.testData.user = user.NewUser(s.GetContext(), "buyer@example.com", "Test Buyer", "hashed")
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), s.testData.user))
}

func (s *SubscriptionServiceSuite) stripe() *testutil.FakeProvider {
	return s.GetGateways().Providers[types.PaymentGatewayTypeStripe]
}

func (s *SubscriptionServiceSuite) TestInitiatePurchase() {
	resp, err := s.service.InitiatePurchase(s.GetContext(), types.PaymentGatewayTypeStripe, &dto.CreateSubscriptionRequest{
		UserID:       s.testData.user.ID,
		BillingCycle: types.BillingCycleMonthly,
	})
	s.NoError(err)
	s.NotNil(resp)
	s.Equal(types.PaymentGatewayTypeStripe, resp.Gateway)
	s.Equal("sub_fake_1", resp.ProviderSubscriptionID)
	s.NotEmpty(resp.RedirectURL)

	calls := s.stripe().CreateCalls
	s.Len(calls, 1)
	s.Equal("price_monthly_test", calls[0].PlanID)
	s.Equal(s.testData.user.Email, calls[0].Email)
}

func (s *SubscriptionServiceSuite) TestInitiatePurchaseLeavesPlanUntouched() {
	_, err := s.service.InitiatePurchase(s.GetContext(), types.PaymentGatewayTypeStripe, &dto.CreateSubscriptionRequest{
		UserID:       s.testData.user.ID,
		BillingCycle: types.BillingCycleYearly,
	})
	s.NoError(err)

	u, err := s.GetStores().UserRepo.GetByID(s.GetContext(), s.testData.user.ID)
	s.NoError(err)
	s.Equal(types.PlanTierFree, u.PlanTier)
}

func (s *SubscriptionServiceSuite) TestInitiatePurchaseUnknownUser() {
	_, err := s.service.InitiatePurchase(s.GetContext(), types.PaymentGatewayTypeStripe, &dto.CreateSubscriptionRequest{
		UserID:       "user_missing",
		BillingCycle: types.BillingCycleMonthly,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *SubscriptionServiceSuite) TestInitiatePurchaseInvalidGateway() {
	_, err := s.service.InitiatePurchase(s.GetContext(), types.PaymentGatewayType("cash"), &dto.CreateSubscriptionRequest{
		UserID:       s.testData.user.ID,
		BillingCycle: types.BillingCycleMonthly,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SubscriptionServiceSuite) TestConfirmPurchaseActive() {
	s.stripe().SetStatus("sub_fake_1", &types.SubscriptionStatus{
		IsActive:     true,
		NativeStatus: "active",
		PlanID:       "price_monthly_test",
	})

	resp, err := s.service.ConfirmPurchase(s.GetContext(), types.PaymentGatewayTypeStripe, &dto.ConfirmSubscriptionRequest{
		UserID:                 s.testData.user.ID,
		ProviderSubscriptionID: "sub_fake_1",
		BillingCycle:           types.BillingCycleMonthly,
		Amount:                 decimal.NewFromInt(29),
		Currency:               "usd",
	})
	s.NoError(err)
	s.Equal(types.PlanTierMonthly, resp.PlanTier)

	u, err := s.GetStores().UserRepo.GetByID(s.GetContext(), s.testData.user.ID)
	s.NoError(err)
	s.Equal(types.PlanTierMonthly, u.PlanTier)

	payments, err := s.GetStores().PaymentRepo.List(s.GetContext(), &types.PaymentFilter{})
	s.NoError(err)
	s.Len(payments, 1)
	s.Equal("sub_fake_1", payments[0].TransactionID)
	s.Equal(types.PaymentStatusSuccess, payments[0].PaymentStatus)
	s.True(payments[0].Amount.Equal(decimal.NewFromInt(29)))
}

func (s *SubscriptionServiceSuite) TestConfirmPurchaseTwiceRecordsDuplicatePayment() {
	// A repeated confirm is not deduplicated: the grant is applied again
	// and a second payment row lands with the same transaction id. Last
	// write wins on the plan tier.
	s.stripe().SetStatus("sub_fake_1", &types.SubscriptionStatus{
		IsActive:     true,
		NativeStatus: "active",
		PlanID:       "price_monthly_test",
	})

	req := &dto.ConfirmSubscriptionRequest{
		UserID:                 s.testData.user.ID,
		ProviderSubscriptionID: "sub_fake_1",
		BillingCycle:           types.BillingCycleMonthly,
		Amount:                 decimal.NewFromInt(29),
		Currency:               "usd",
	}

	_, err := s.service.ConfirmPurchase(s.GetContext(), types.PaymentGatewayTypeStripe, req)
	s.NoError(err)

	resp, err := s.service.ConfirmPurchase(s.GetContext(), types.PaymentGatewayTypeStripe, req)
	s.NoError(err)
	s.Equal(types.PlanTierMonthly, resp.PlanTier)

	u, err := s.GetStores().UserRepo.GetByID(s.GetContext(), s.testData.user.ID)
	s.NoError(err)
	s.Equal(types.PlanTierMonthly, u.PlanTier)

	payments, err := s.GetStores().PaymentRepo.List(s.GetContext(), &types.PaymentFilter{})
	s.NoError(err)
	s.Len(payments, 2)
	s.Equal(payments[0].TransactionID, payments[1].TransactionID)
}

func (s *SubscriptionServiceSuite) TestConfirmPurchaseInactive() {
	s.stripe().SetStatus("sub_fake_1", &types.SubscriptionStatus{
		IsActive:     false,
		NativeStatus: "incomplete",
	})

	_, err := s.service.ConfirmPurchase(s.GetContext(), types.PaymentGatewayTypeStripe, &dto.ConfirmSubscriptionRequest{
		UserID:                 s.testData.user.ID,
		ProviderSubscriptionID: "sub_fake_1",
		BillingCycle:           types.BillingCycleMonthly,
		Amount:                 decimal.NewFromInt(29),
		Currency:               "usd",
	})
	s.Error(err)
	s.True(ierr.IsProviderUnavailable(err))

	// Neither the tier nor the ledger moved
	u, err := s.GetStores().UserRepo.GetByID(s.GetContext(), s.testData.user.ID)
	s.NoError(err)
	s.Equal(types.PlanTierFree, u.PlanTier)

	payments, err := s.GetStores().PaymentRepo.List(s.GetContext(), &types.PaymentFilter{})
	s.NoError(err)
	s.Len(payments, 0)
}

func (s *SubscriptionServiceSuite) TestConfirmPurchaseUnknownSubscription() {
	_, err := s.service.ConfirmPurchase(s.GetContext(), types.PaymentGatewayTypeStripe, &dto.ConfirmSubscriptionRequest{
		UserID:                 s.testData.user.ID,
		ProviderSubscriptionID: "sub_unknown",
		BillingCycle:           types.BillingCycleMonthly,
		Amount:                 decimal.NewFromInt(29),
		Currency:               "usd",
	})
	s.Error(err)
	s.True(ierr.IsProviderUnavailable(err))
}

func (s *SubscriptionServiceSuite) TestConfirmPurchaseDeclaredCycleWins() {
	// Provider reports the yearly plan but the client declared monthly
	s.stripe().SetStatus("sub_fake_1", &types.SubscriptionStatus{
		IsActive:     true,
		NativeStatus: "active",
		PlanID:       "price_yearly_test",
	})

	resp, err := s.service.ConfirmPurchase(s.GetContext(), types.PaymentGatewayTypeStripe, &dto.ConfirmSubscriptionRequest{
		UserID:                 s.testData.user.ID,
		ProviderSubscriptionID: "sub_fake_1",
		BillingCycle:           types.BillingCycleMonthly,
		Amount:                 decimal.NewFromInt(29),
		Currency:               "usd",
	})
	s.NoError(err)
	s.Equal(types.PlanTierMonthly, resp.PlanTier)
}

func (s *SubscriptionServiceSuite) TestCancelPurchase() {
	s.stripe().SetStatus("sub_fake_1", &types.SubscriptionStatus{IsActive: true, NativeStatus: "active"})
	s.NoError(s.GetStores().UserRepo.UpdatePlanTier(s.GetContext(), s.testData.user.ID, types.PlanTierYearly))

	resp, err := s.service.CancelPurchase(s.GetContext(), types.PaymentGatewayTypeStripe, &dto.CancelSubscriptionRequest{
		UserID:                 s.testData.user.ID,
		ProviderSubscriptionID: "sub_fake_1",
	})
	s.NoError(err)
	s.Equal(types.PlanTierFree, resp.PlanTier)

	u, err := s.GetStores().UserRepo.GetByID(s.GetContext(), s.testData.user.ID)
	s.NoError(err)
	s.Equal(types.PlanTierFree, u.PlanTier)
	s.Equal([]string{"sub_fake_1"}, s.stripe().CancelCalls)
}

func (s *SubscriptionServiceSuite) TestCancelPurchaseIdempotent() {
	s.stripe().SetStatus("sub_fake_1", &types.SubscriptionStatus{IsActive: true, NativeStatus: "active"})

	req := &dto.CancelSubscriptionRequest{
		UserID:                 s.testData.user.ID,
		ProviderSubscriptionID: "sub_fake_1",
	}
	_, err := s.service.CancelPurchase(s.GetContext(), types.PaymentGatewayTypeStripe, req)
	s.NoError(err)
	_, err = s.service.CancelPurchase(s.GetContext(), types.PaymentGatewayTypeStripe, req)
	s.NoError(err)

	u, err := s.GetStores().UserRepo.GetByID(s.GetContext(), s.testData.user.ID)
	s.NoError(err)
	s.Equal(types.PlanTierFree, u.PlanTier)
}

func (s *SubscriptionServiceSuite) TestCancelPurchaseProviderFailureKeepsTier() {
	s.NoError(s.GetStores().UserRepo.UpdatePlanTier(s.GetContext(), s.testData.user.ID, types.PlanTierYearly))
	s.stripe().CancelErr = ierr.NewError("gateway down").
		WithHint("The payment provider is unreachable").
		Mark(ierr.ErrProviderUnavailable)

	_, err := s.service.CancelPurchase(s.GetContext(), types.PaymentGatewayTypeStripe, &dto.CancelSubscriptionRequest{
		UserID:                 s.testData.user.ID,
		ProviderSubscriptionID: "sub_fake_1",
	})
	s.Error(err)

	u, err := s.GetStores().UserRepo.GetByID(s.GetContext(), s.testData.user.ID)
	s.NoError(err)
	s.Equal(types.PlanTierYearly, u.PlanTier)
}

func (s *SubscriptionServiceSuite) TestListGateways() {
	resp := s.service.ListGateways(s.GetContext())
	s.ElementsMatch(types.AllPaymentGatewayTypes, resp.Gateways)
}
