package service

import (
	"context"
	"fmt"
	"time"

	"github.com/courseforge/courseforge/internal/api/dto"
	"github.com/courseforge/courseforge/internal/domain/billingop"
	"github.com/courseforge/courseforge/internal/domain/refund"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/samber/lo"
)

// BillingService covers the admin-side billing surface: manual billing
// entries, the refund workflow and invoice stubs. Nothing here touches the
// entitlement ledger.
type BillingService interface {
	// RecordManualBilling creates an off-band billing entry. The entry is
	// completed synchronously; no external call is involved.
	RecordManualBilling(ctx context.Context, req *dto.RecordManualBillingRequest) (*dto.BillingOperationResponse, error)

	ListBillingOperations(ctx context.Context, filter *types.BillingOperationFilter) (*dto.ListBillingOperationsResponse, error)

	// CreateRefund opens a refund request against an existing payment,
	// snapshotting the payment's transaction id, amount and gateway.
	CreateRefund(ctx context.Context, req *dto.CreateRefundRequest) (*dto.RefundResponse, error)

	// ProcessRefund resolves a refund. An approved decision lands the
	// refund in the processed state; any other decision is stored as
	// given. The referenced payment record is never touched.
	ProcessRefund(ctx context.Context, req *dto.ProcessRefundRequest) (*dto.RefundResponse, error)

	// BulkRefundAction approves or rejects a set of refunds in one batch
	// write. Ids that do not resolve are skipped without individual errors.
	BulkRefundAction(ctx context.Context, req *dto.BulkRefundRequest) (*dto.BulkRefundResponse, error)

	ListRefunds(ctx context.Context, filter *types.RefundFilter) (*dto.ListRefundsResponse, error)

	ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error)

	// GenerateInvoice returns the deterministic invoice URL for a payment.
	// Rendering the document is an external collaborator.
	GenerateInvoice(ctx context.Context, req *dto.GenerateInvoiceRequest) (*dto.GenerateInvoiceResponse, error)
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{ServiceParams: params}
}

func (s *billingService) RecordManualBilling(ctx context.Context, req *dto.RecordManualBillingRequest) (*dto.BillingOperationResponse, error) {
	op := billingop.New(ctx)
	op.UserEmail = req.UserEmail
	op.Amount = req.Amount
	op.Currency = req.Currency
	op.Type = req.Type
	op.Description = req.Description
	op.Method = req.Method
	op.ProcessedBy = types.GetUserEmail(ctx)
	op.Status = types.BillingOperationStatusCompleted

	if err := op.Validate(); err != nil {
		return nil, err
	}
	if err := s.BillingOpRepo.Create(ctx, op); err != nil {
		return nil, err
	}

	s.Logger.Infow("manual billing recorded",
		"billing_operation_id", op.ID,
		"user_email", op.UserEmail,
		"amount", op.Amount,
		"type", op.Type)

	return dto.NewBillingOperationResponse(op), nil
}

func (s *billingService) ListBillingOperations(ctx context.Context, filter *types.BillingOperationFilter) (*dto.ListBillingOperationsResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	ops, err := s.BillingOpRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.BillingOpRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListBillingOperationsResponse{
		Items: lo.Map(ops, func(op *billingop.BillingOperation, _ int) *dto.BillingOperationResponse {
			return dto.NewBillingOperationResponse(op)
		}),
		Pagination: types.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *billingService) CreateRefund(ctx context.Context, req *dto.CreateRefundRequest) (*dto.RefundResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}

	amount := req.Amount
	if amount.IsZero() {
		amount = p.Amount
	}

	r := refund.New(ctx)
	r.PaymentID = p.ID
	r.Email = p.Email
	r.Amount = amount
	r.Reason = req.Reason
	r.Payment = refund.PaymentSnapshot{
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Gateway:       p.Gateway,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.RefundRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.Logger.Infow("refund requested",
		"refund_id", r.ID,
		"payment_id", p.ID,
		"amount", r.Amount)

	return dto.NewRefundResponse(r), nil
}

func (s *billingService) ProcessRefund(ctx context.Context, req *dto.ProcessRefundRequest) (*dto.RefundResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r, err := s.RefundRepo.Get(ctx, req.RefundID)
	if err != nil {
		return nil, err
	}

	// Approval lands the refund as processed; any other decision is stored
	// verbatim. The payment record keeps its status either way.
	if req.Decision == types.RefundStatusApproved {
		r.Status = types.RefundStatusProcessed
	} else {
		r.Status = req.Decision
	}
	if !req.Amount.IsZero() {
		r.Amount = req.Amount
	}
	if req.Reason != "" {
		r.Reason = req.Reason
	}
	r.Notes = req.Notes
	r.ProcessedBy = types.GetUserEmail(ctx)
	r.ProcessedAt = types.ToNillableTime(time.Now().UTC())

	if err := s.RefundRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.Logger.Infow("refund processed",
		"refund_id", r.ID,
		"refund_status", r.Status,
		"processed_by", r.ProcessedBy)

	return dto.NewRefundResponse(r), nil
}

func (s *billingService) BulkRefundAction(ctx context.Context, req *dto.BulkRefundRequest) (*dto.BulkRefundResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := req.Action.Status()
	if err := s.RefundRepo.BulkUpdateStatus(ctx, req.RefundIDs, status, req.Notes); err != nil {
		return nil, err
	}

	s.Logger.Infow("bulk refund action applied",
		"refund_count", len(req.RefundIDs),
		"refund_status", status)

	return &dto.BulkRefundResponse{
		Requested: len(req.RefundIDs),
		Status:    status,
	}, nil
}

func (s *billingService) ListRefunds(ctx context.Context, filter *types.RefundFilter) (*dto.ListRefundsResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	refunds, err := s.RefundRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListRefundsResponse{
		Items: lo.Map(refunds, func(r *refund.Refund, _ int) *dto.RefundResponse {
			return dto.NewRefundResponse(r)
		}),
		Pagination: types.NewPaginationResponse(len(refunds), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *billingService) ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.PaymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, dto.NewPaymentResponse(p))
	}

	return &dto.ListPaymentsResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *billingService) GenerateInvoice(ctx context.Context, req *dto.GenerateInvoiceRequest) (*dto.GenerateInvoiceResponse, error) {
	// The URL must resolve to an existing payment
	p, err := s.PaymentRepo.Get(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}

	return &dto.GenerateInvoiceResponse{
		PaymentID:  p.ID,
		InvoiceURL: fmt.Sprintf("%s/invoices/%s.pdf", s.Config.Website.BaseURL, p.ID),
	}, nil
}
