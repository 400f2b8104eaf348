package service

import (
	"testing"

	"github.com/courseforge/courseforge/internal/api/dto"
	"github.com/courseforge/courseforge/internal/domain/payment"
	"github.com/courseforge/courseforge/internal/domain/user"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/testutil"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BillingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  BillingService
	testData struct {
		payment *payment.Payment
	}
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewBillingService(ServiceParams{
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
	s.setupTestData()
}

func (s *BillingServiceSuite) setupTestData() {
	p := payment.New(s.GetContext())
	p.UserID = "user_test_buyer"
	p.Email = "buyer@example.com"
	p.Amount = decimal.NewFromInt(49)
	p.Currency = "usd"
	p.PlanName = "monthly"
	p.Gateway = types.PaymentGatewayTypeStripe
	p.TransactionID = "sub_test_1"
	p.PaymentStatus = types.PaymentStatusSuccess
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), p))
	s.testData.payment = p
}

func (s *BillingServiceSuite) createRefund() *dto.RefundResponse {
	r, err := s.service.CreateRefund(s.GetContext(), &dto.CreateRefundRequest{
		PaymentID: s.testData.payment.ID,
		Reason:    "duplicate charge",
	})
	s.NoError(err)
	return r
}

func (s *BillingServiceSuite) TestRecordManualBilling() {
	resp, err := s.service.RecordManualBilling(s.GetContext(), &dto.RecordManualBillingRequest{
		UserEmail:   "buyer@example.com",
		Amount:      decimal.NewFromInt(15),
		Currency:    "usd",
		Type:        types.BillingOperationTypeManual,
		Description: "bank transfer settlement",
		Method:      "bank_transfer",
	})
	s.NoError(err)
	s.Equal(types.BillingOperationStatusCompleted, resp.Status)
	s.Equal("admin@test.com", resp.ProcessedBy)

	op, err := s.GetStores().BillingOpRepo.Get(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal(types.BillingOperationStatusCompleted, op.Status)
}

func (s *BillingServiceSuite) TestManualBillingLeavesPlanAlone() {
	u := user.NewUser(s.GetContext(), "buyer@example.com", "Test Buyer", "hashed")
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))

	_, err := s.service.RecordManualBilling(s.GetContext(), &dto.RecordManualBillingRequest{
		UserEmail: "buyer@example.com",
		Amount:    decimal.NewFromInt(15),
		Currency:  "usd",
		Type:      types.BillingOperationTypeAdjustment,
	})
	s.NoError(err)

	got, err := s.GetStores().UserRepo.GetByID(s.GetContext(), u.ID)
	s.NoError(err)
	s.Equal(types.PlanTierFree, got.PlanTier)
}

func (s *BillingServiceSuite) TestListBillingOperations() {
	for i := 0; i < 3; i++ {
		_, err := s.service.RecordManualBilling(s.GetContext(), &dto.RecordManualBillingRequest{
			UserEmail: "buyer@example.com",
			Amount:    decimal.NewFromInt(int64(10 + i)),
			Currency:  "usd",
			Type:      types.BillingOperationTypeManual,
		})
		s.NoError(err)
	}

	resp, err := s.service.ListBillingOperations(s.GetContext(), &types.BillingOperationFilter{})
	s.NoError(err)
	s.Len(resp.Items, 3)
	s.Equal(3, resp.Pagination.Total)
}

func (s *BillingServiceSuite) TestCreateRefundDefaultsToPaymentAmount() {
	r := s.createRefund()

	s.Equal(types.RefundStatusPending, r.Status)
	s.True(r.Amount.Equal(s.testData.payment.Amount))
	s.Equal(s.testData.payment.TransactionID, r.Payment.TransactionID)
	s.Equal(s.testData.payment.Gateway, r.Payment.Gateway)
}

func (s *BillingServiceSuite) TestCreateRefundUnknownPayment() {
	_, err := s.service.CreateRefund(s.GetContext(), &dto.CreateRefundRequest{
		PaymentID: "pay_missing",
		Reason:    "duplicate charge",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *BillingServiceSuite) TestProcessRefundApproved() {
	r := s.createRefund()

	resp, err := s.service.ProcessRefund(s.GetContext(), &dto.ProcessRefundRequest{
		RefundID: r.ID,
		Decision: types.RefundStatusApproved,
		Notes:    "verified with the gateway",
	})
	s.NoError(err)

	// Approval lands as processed, stamped with the acting admin
	s.Equal(types.RefundStatusProcessed, resp.Status)
	s.Equal("admin@test.com", resp.ProcessedBy)
	s.NotNil(resp.ProcessedAt)

	// The payment record is never touched by the refund lifecycle
	p, err := s.GetStores().PaymentRepo.Get(s.GetContext(), s.testData.payment.ID)
	s.NoError(err)
	s.Equal(types.PaymentStatusSuccess, p.PaymentStatus)
}

func (s *BillingServiceSuite) TestProcessRefundRejected() {
	r := s.createRefund()

	resp, err := s.service.ProcessRefund(s.GetContext(), &dto.ProcessRefundRequest{
		RefundID: r.ID,
		Decision: types.RefundStatusRejected,
		Notes:    "outside the refund window",
	})
	s.NoError(err)
	s.Equal(types.RefundStatusRejected, resp.Status)
	s.Equal("outside the refund window", resp.Notes)
}

func (s *BillingServiceSuite) TestProcessRefundInvalidDecision() {
	r := s.createRefund()

	_, err := s.service.ProcessRefund(s.GetContext(), &dto.ProcessRefundRequest{
		RefundID: r.ID,
		Decision: types.RefundStatus("maybe"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BillingServiceSuite) TestBulkRefundApprove() {
	first := s.createRefund()
	second := s.createRefund()

	resp, err := s.service.BulkRefundAction(s.GetContext(), &dto.BulkRefundRequest{
		RefundIDs: []string{first.ID, second.ID},
		Action:    types.BulkRefundActionApprove,
	})
	s.NoError(err)
	s.Equal(2, resp.Requested)
	s.Equal(types.RefundStatusApproved, resp.Status)

	got, err := s.GetStores().RefundRepo.Get(s.GetContext(), first.ID)
	s.NoError(err)
	s.Equal(types.RefundStatusApproved, got.Status)
}

func (s *BillingServiceSuite) TestBulkRefundSkipsMissingIDs() {
	r := s.createRefund()

	resp, err := s.service.BulkRefundAction(s.GetContext(), &dto.BulkRefundRequest{
		RefundIDs: []string{r.ID, "refund_missing"},
		Action:    types.BulkRefundActionReject,
	})
	s.NoError(err)
	s.Equal(2, resp.Requested)

	got, err := s.GetStores().RefundRepo.Get(s.GetContext(), r.ID)
	s.NoError(err)
	s.Equal(types.RefundStatusRejected, got.Status)
}

func (s *BillingServiceSuite) TestListRefundsByStatus() {
	first := s.createRefund()
	s.createRefund()

	_, err := s.service.ProcessRefund(s.GetContext(), &dto.ProcessRefundRequest{
		RefundID: first.ID,
		Decision: types.RefundStatusApproved,
	})
	s.NoError(err)

	pending := types.RefundStatusPending
	resp, err := s.service.ListRefunds(s.GetContext(), &types.RefundFilter{RefundStatus: &pending})
	s.NoError(err)
	s.Len(resp.Items, 1)
}

func (s *BillingServiceSuite) TestListRefundsInvalidStatusFilter() {
	bogus := types.RefundStatus("bogus")
	_, err := s.service.ListRefunds(s.GetContext(), &types.RefundFilter{RefundStatus: &bogus})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BillingServiceSuite) TestListPaymentsInvalidStatusFilter() {
	bogus := types.PaymentStatus("bogus")
	_, err := s.service.ListPayments(s.GetContext(), &types.PaymentFilter{PaymentStatus: &bogus})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BillingServiceSuite) TestBulkRefundInvalidAction() {
	first := s.createRefund()

	_, err := s.service.BulkRefundAction(s.GetContext(), &dto.BulkRefundRequest{
		RefundIDs: []string{first.ID},
		Action:    types.BulkRefundAction("archive"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	r, err := s.GetStores().RefundRepo.Get(s.GetContext(), first.ID)
	s.NoError(err)
	s.Equal(types.RefundStatusPending, r.Status)
}

func (s *BillingServiceSuite) TestListPayments() {
	resp, err := s.service.ListPayments(s.GetContext(), &types.PaymentFilter{})
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(s.testData.payment.ID, resp.Items[0].ID)
}

func (s *BillingServiceSuite) TestGenerateInvoice() {
	resp, err := s.service.GenerateInvoice(s.GetContext(), &dto.GenerateInvoiceRequest{
		PaymentID: s.testData.payment.ID,
	})
	s.NoError(err)
	s.Equal(s.testData.payment.ID, resp.PaymentID)
	s.Equal(s.GetConfig().Website.BaseURL+"/invoices/"+s.testData.payment.ID+".pdf", resp.InvoiceURL)
}

func (s *BillingServiceSuite) TestGenerateInvoiceUnknownPayment() {
	_, err := s.service.GenerateInvoice(s.GetContext(), &dto.GenerateInvoiceRequest{
		PaymentID: "pay_missing",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
