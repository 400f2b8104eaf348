package service

import (
	"testing"

	"github.com/courseforge/courseforge/internal/domain/course"
	"github.com/courseforge/courseforge/internal/domain/payment"
	"github.com/courseforge/courseforge/internal/domain/refund"
	"github.com/courseforge/courseforge/internal/domain/user"
	"github.com/courseforge/courseforge/internal/testutil"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceSuite struct {
	testutil.BaseServiceTestSuite
	service DashboardService
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewDashboardService(ServiceParams{
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

func (s *DashboardServiceSuite) seedPayment(amount int64, status types.PaymentStatus) *payment.Payment {
	p := payment.New(s.GetContext())
	p.UserID = "user_test_buyer"
	p.Email = "buyer@example.com"
	p.Amount = decimal.NewFromInt(amount)
	p.Currency = "usd"
	p.Gateway = types.PaymentGatewayTypeStripe
	p.TransactionID = types.GenerateUUIDWithPrefix("sub")
	p.PaymentStatus = status
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), p))
	return p
}

func (s *DashboardServiceSuite) seedRefund(paymentID string, status types.RefundStatus) {
	r := refund.New(s.GetContext())
	r.PaymentID = paymentID
	r.Email = "buyer@example.com"
	r.Amount = decimal.NewFromInt(10)
	r.Reason = "duplicate charge"
	r.Status = status
	s.NoError(s.GetStores().RefundRepo.Create(s.GetContext(), r))
}

func (s *DashboardServiceSuite) TestSummary() {
	for i := 0; i < 2; i++ {
		u := user.NewUser(s.GetContext(), types.GenerateUUID()+"@example.com", "User", "hashed")
		s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))
	}

	c := course.New(s.GetContext())
	c.UserID = "user_test_buyer"
	c.Title = "Intro to Go"
	s.NoError(s.GetStores().CourseRepo.Create(s.GetContext(), c))

	p1 := s.seedPayment(100, types.PaymentStatusSuccess)
	s.seedPayment(50, types.PaymentStatusSuccess)
	s.seedPayment(70, types.PaymentStatusFailed)

	s.seedRefund(p1.ID, types.RefundStatusPending)
	s.seedRefund(p1.ID, types.RefundStatusPending)
	s.seedRefund(p1.ID, types.RefundStatusProcessed)

	resp, err := s.service.Summary(s.GetContext())
	s.NoError(err)

	s.Equal(int64(2), resp.TotalUsers)
	s.Equal(int64(1), resp.TotalCourses)
	s.Equal(int64(3), resp.TotalPayments)
	// Revenue counts successful payments only
	s.True(resp.TotalRevenue.Equal(decimal.NewFromInt(150)))
	s.Equal(int64(2), resp.RefundCounts[types.RefundStatusPending])
	s.Equal(int64(1), resp.RefundCounts[types.RefundStatusProcessed])
}

func (s *DashboardServiceSuite) TestSummaryEmpty() {
	resp, err := s.service.Summary(s.GetContext())
	s.NoError(err)
	s.Equal(int64(0), resp.TotalUsers)
	s.True(resp.TotalRevenue.IsZero())
}

func (s *DashboardServiceSuite) TestSummaryCached() {
	u := user.NewUser(s.GetContext(), "cached@example.com", "User", "hashed")
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))

	first, err := s.service.Summary(s.GetContext())
	s.NoError(err)
	s.Equal(int64(1), first.TotalUsers)

	// A second read may come from cache; the aggregate must not regress
	second, err := s.service.Summary(s.GetContext())
	s.NoError(err)
	s.Equal(first.TotalUsers, second.TotalUsers)
}
