package dto

import (
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/shopspring/decimal"
)

type CreateSubscriptionRequest struct {
	UserID       string             `json:"user_id" validate:"required"`
	BillingCycle types.BillingCycle `json:"billing_cycle" validate:"required"`
}

func (r *CreateSubscriptionRequest) Validate() error {
	return r.BillingCycle.Validate()
}

type CreateSubscriptionResponse struct {
	Gateway                types.PaymentGatewayType `json:"gateway"`
	ProviderSubscriptionID string                   `json:"provider_subscription_id"`
	RedirectURL            string                   `json:"redirect_url,omitempty"`
}

// ConfirmSubscriptionRequest carries the client-declared purchase details
// for the confirm leg. The declared billing cycle decides the granted plan
// even when the provider reports a different one; the amount and currency
// are a display snapshot for the payment record.
type ConfirmSubscriptionRequest struct {
	UserID                 string             `json:"user_id" validate:"required"`
	ProviderSubscriptionID string             `json:"provider_subscription_id" validate:"required"`
	BillingCycle           types.BillingCycle `json:"billing_cycle" validate:"required"`
	PlanName               string             `json:"plan_name"`
	Amount                 decimal.Decimal    `json:"amount"`
	Currency               string             `json:"currency"`
}

func (r *ConfirmSubscriptionRequest) Validate() error {
	if err := r.BillingCycle.Validate(); err != nil {
		return err
	}
	if r.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type ConfirmSubscriptionResponse struct {
	PlanTier types.PlanTier   `json:"plan_tier"`
	Payment  *PaymentResponse `json:"payment,omitempty"`
}

type CancelSubscriptionRequest struct {
	UserID                 string `json:"user_id" validate:"required"`
	ProviderSubscriptionID string `json:"provider_subscription_id" validate:"required"`
}

type CancelSubscriptionResponse struct {
	PlanTier types.PlanTier `json:"plan_tier"`
}

type ListGatewaysResponse struct {
	Gateways []types.PaymentGatewayType `json:"gateways"`
}
