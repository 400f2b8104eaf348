package types

import (
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/samber/lo"
)

// RefundStatus represents the status of a refund request
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusApproved  RefundStatus = "approved"
	RefundStatusRejected  RefundStatus = "rejected"
	RefundStatusProcessed RefundStatus = "processed"
)

func (s RefundStatus) String() string {
	return string(s)
}

func (s RefundStatus) Validate() error {
	allowed := []RefundStatus{
		RefundStatusPending,
		RefundStatusApproved,
		RefundStatusRejected,
		RefundStatusProcessed,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid refund status").
			WithHintf("Refund status must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BulkRefundAction is the action applied by a bulk refund update
type BulkRefundAction string

const (
	BulkRefundActionApprove BulkRefundAction = "approve"
	BulkRefundActionReject  BulkRefundAction = "reject"
)

func (a BulkRefundAction) Validate() error {
	if a != BulkRefundActionApprove && a != BulkRefundActionReject {
		return ierr.NewError("invalid bulk refund action").
			WithHintf("Action must be %s or %s", BulkRefundActionApprove, BulkRefundActionReject).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Status returns the refund status the action resolves to
func (a BulkRefundAction) Status() RefundStatus {
	if a == BulkRefundActionReject {
		return RefundStatusRejected
	}
	return RefundStatusApproved
}

// RefundFilter represents the filter for listing refunds
type RefundFilter struct {
	*QueryFilter

	RefundStatus *RefundStatus `form:"refund_status"`
	Email        *string       `form:"email"`
}

func (f *RefundFilter) Validate() error {
	if f == nil {
		return nil
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	if f.RefundStatus != nil {
		if err := f.RefundStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f *RefundFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return DefaultQueryFilter.GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

func (f *RefundFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return DefaultQueryFilter.GetOffset()
	}
	return f.QueryFilter.GetOffset()
}
