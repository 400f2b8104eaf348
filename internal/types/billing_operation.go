package types

import (
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/samber/lo"
)

// BillingOperationStatus represents the status of a manual billing entry
type BillingOperationStatus string

const (
	BillingOperationStatusPending   BillingOperationStatus = "pending"
	BillingOperationStatusCompleted BillingOperationStatus = "completed"
	BillingOperationStatusFailed    BillingOperationStatus = "failed"
)

func (s BillingOperationStatus) String() string {
	return string(s)
}

func (s BillingOperationStatus) Validate() error {
	allowed := []BillingOperationStatus{
		BillingOperationStatusPending,
		BillingOperationStatusCompleted,
		BillingOperationStatusFailed,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid billing operation status").
			WithHintf("Billing operation status must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingOperationType represents the kind of off-band billing entry
type BillingOperationType string

const (
	BillingOperationTypeManual     BillingOperationType = "manual"
	BillingOperationTypeRecurring  BillingOperationType = "recurring"
	BillingOperationTypeAdjustment BillingOperationType = "adjustment"
)

func (t BillingOperationType) String() string {
	return string(t)
}

func (t BillingOperationType) Validate() error {
	allowed := []BillingOperationType{
		BillingOperationTypeManual,
		BillingOperationTypeRecurring,
		BillingOperationTypeAdjustment,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid billing operation type").
			WithHintf("Billing operation type must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingOperationFilter represents the filter for listing billing operations
type BillingOperationFilter struct {
	*QueryFilter

	UserEmail *string                 `form:"user_email"`
	Type      *BillingOperationType   `form:"type"`
	Status    *BillingOperationStatus `form:"billing_status"`
}

// Validate validates the billing operation filter
func (f *BillingOperationFilter) Validate() error {
	if f == nil {
		return nil
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	if f.Type != nil {
		if err := f.Type.Validate(); err != nil {
			return err
		}
	}
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter
func (f *BillingOperationFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return DefaultQueryFilter.GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter
func (f *BillingOperationFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return DefaultQueryFilter.GetOffset()
	}
	return f.QueryFilter.GetOffset()
}
