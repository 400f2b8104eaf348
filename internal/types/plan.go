package types

import (
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/samber/lo"
)

// PlanTier represents the entitlement currently granted to a user.
// PlanTierForever is the unrestricted tier granted to admins and the
// bootstrap user; it is never sold through a gateway.
type PlanTier string

const (
	PlanTierFree    PlanTier = "free"
	PlanTierMonthly PlanTier = "monthly"
	PlanTierYearly  PlanTier = "yearly"
	PlanTierForever PlanTier = "forever"
)

func (t PlanTier) String() string {
	return string(t)
}

func (t PlanTier) Validate() error {
	allowed := []PlanTier{
		PlanTierFree,
		PlanTierMonthly,
		PlanTierYearly,
		PlanTierForever,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid plan tier").
			WithHintf("Plan tier must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsPaid reports whether the tier grants paid features
func (t PlanTier) IsPaid() bool {
	return t == PlanTierMonthly || t == PlanTierYearly || t == PlanTierForever
}

// BillingCycle is the purchasable cycle of a subscription. It maps 1:1 to
// the monthly/yearly plan tiers; the free and forever tiers have no cycle.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

func (c BillingCycle) Validate() error {
	allowed := []BillingCycle{BillingCycleMonthly, BillingCycleYearly}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid billing cycle").
			WithHintf("Billing cycle must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PlanTier returns the entitlement granted when a subscription on this
// cycle is confirmed.
func (c BillingCycle) PlanTier() PlanTier {
	if c == BillingCycleYearly {
		return PlanTierYearly
	}
	return PlanTierMonthly
}
