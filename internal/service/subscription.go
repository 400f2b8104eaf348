package service

import (
	"context"
	"fmt"

	"github.com/courseforge/courseforge/internal/api/dto"
	"github.com/courseforge/courseforge/internal/domain/payment"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/notify"
	"github.com/courseforge/courseforge/internal/types"
)

// SubscriptionService reconciles plan purchases against the payment
// gateways. Confirmation is entirely client-initiated: the provider is
// queried for authoritative status only when the client returns from the
// checkout redirect, and the entitlement write happens strictly after a
// successful status fetch.
type SubscriptionService interface {
	// InitiatePurchase opens a subscription checkout on the given gateway
	// and returns the redirect URL. The entitlement ledger is untouched.
	InitiatePurchase(ctx context.Context, gatewayType types.PaymentGatewayType, req *dto.CreateSubscriptionRequest) (*dto.CreateSubscriptionResponse, error)

	// ConfirmPurchase fetches the provider status and, when the provider
	// reports the subscription active, grants the client-declared plan and
	// records the payment. An inactive or unreachable subscription leaves
	// the ledger unchanged; the caller may retry.
	ConfirmPurchase(ctx context.Context, gatewayType types.PaymentGatewayType, req *dto.ConfirmSubscriptionRequest) (*dto.ConfirmSubscriptionResponse, error)

	// CancelPurchase cancels the provider subscription and then downgrades
	// the user to the free tier. The downgrade happens only after the
	// provider cancel succeeds.
	CancelPurchase(ctx context.Context, gatewayType types.PaymentGatewayType, req *dto.CancelSubscriptionRequest) (*dto.CancelSubscriptionResponse, error)

	// ListGateways returns the gateways available as payment choices.
	ListGateways(ctx context.Context) *dto.ListGatewaysResponse
}

type subscriptionService struct {
	ServiceParams
	entitlement EntitlementService
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{
		ServiceParams: params,
		entitlement:   NewEntitlementService(params),
	}
}

func (s *subscriptionService) InitiatePurchase(ctx context.Context, gatewayType types.PaymentGatewayType, req *dto.CreateSubscriptionRequest) (*dto.CreateSubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	provider, err := s.Gateways.Provider(gatewayType)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	gwCfg, _ := s.Config.Gateways.Gateway(gatewayType)
	planID := gwCfg.PlanID(req.BillingCycle)
	if planID == "" {
		return nil, ierr.NewError("gateway has no plan configured").
			WithHintf("The %s gateway has no %s plan configured", gatewayType, req.BillingCycle).
			Mark(ierr.ErrValidation)
	}

	resp, err := provider.CreateSubscription(ctx, &types.CreateSubscriptionRequest{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Cycle:      req.BillingCycle,
		PlanID:     planID,
		SuccessURL: s.redirectURL(gatewayType, "success"),
		CancelURL:  s.redirectURL(gatewayType, "cancel"),
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("purchase initiated",
		"user_id", user.ID,
		"gateway", gatewayType,
		"billing_cycle", req.BillingCycle,
		"provider_subscription_id", resp.ProviderSubscriptionID)

	return &dto.CreateSubscriptionResponse{
		Gateway:                gatewayType,
		ProviderSubscriptionID: resp.ProviderSubscriptionID,
		RedirectURL:            resp.RedirectURL,
	}, nil
}

func (s *subscriptionService) ConfirmPurchase(ctx context.Context, gatewayType types.PaymentGatewayType, req *dto.ConfirmSubscriptionRequest) (*dto.ConfirmSubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	provider, err := s.Gateways.Provider(gatewayType)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// Authoritative status check precedes any write
	status, err := provider.FetchStatus(ctx, req.ProviderSubscriptionID)
	if err != nil {
		return nil, err
	}
	if !status.IsActive {
		return nil, ierr.NewError("subscription is not active").
			WithHintf("The %s subscription has not been activated yet", gatewayType).
			WithReportableDetails(map[string]interface{}{
				"provider_subscription_id": req.ProviderSubscriptionID,
				"native_status":            status.NativeStatus,
			}).
			Mark(ierr.ErrProviderUnavailable)
	}

	// The client-declared cycle decides the granted tier even when the
	// provider reports a different plan. Known trust weakness carried over
	// from the confirm-by-callback design; log the mismatch rather than
	// overruling the client.
	tier := req.BillingCycle.PlanTier()
	gwCfg, _ := s.Config.Gateways.Gateway(gatewayType)
	if status.PlanID != "" && status.PlanID != gwCfg.PlanID(req.BillingCycle) {
		s.Logger.Warnw("provider plan differs from declared plan",
			"user_id", user.ID,
			"gateway", gatewayType,
			"declared_cycle", req.BillingCycle,
			"provider_plan_id", status.PlanID)
	}

	if err := s.entitlement.SetPlan(ctx, user.ID, tier); err != nil {
		return nil, err
	}

	planName := req.PlanName
	if planName == "" {
		planName = string(tier)
	}

	p := payment.New(ctx)
	p.UserID = user.ID
	p.Email = user.Email
	p.Amount = req.Amount
	p.Currency = req.Currency
	p.PlanName = planName
	p.Gateway = gatewayType
	p.TransactionID = req.ProviderSubscriptionID
	p.PaymentStatus = types.PaymentStatusSuccess
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.PaymentRepo.Create(ctx, p); err != nil {
		// Entitlement is already granted; a failed payment record must not
		// take it back
		s.Logger.Errorw("failed to record payment after entitlement grant",
			"error", err,
			"user_id", user.ID,
			"transaction_id", req.ProviderSubscriptionID)
		return nil, err
	}

	s.Notifier.SendReceipt(ctx, notify.Receipt{
		Email:    user.Email,
		PlanName: planName,
		Amount:   req.Amount,
		Currency: req.Currency,
		Gateway:  string(gatewayType),
	})

	s.Logger.Infow("purchase confirmed",
		"user_id", user.ID,
		"gateway", gatewayType,
		"plan_tier", tier,
		"provider_subscription_id", req.ProviderSubscriptionID)

	return &dto.ConfirmSubscriptionResponse{
		PlanTier: tier,
		Payment:  dto.NewPaymentResponse(p),
	}, nil
}

func (s *subscriptionService) CancelPurchase(ctx context.Context, gatewayType types.PaymentGatewayType, req *dto.CancelSubscriptionRequest) (*dto.CancelSubscriptionResponse, error) {
	provider, err := s.Gateways.Provider(gatewayType)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// Provider cancel strictly precedes the downgrade; a failed cancel
	// leaves the tier untouched
	if err := provider.Cancel(ctx, req.ProviderSubscriptionID); err != nil {
		return nil, err
	}

	if err := s.entitlement.SetPlan(ctx, user.ID, types.PlanTierFree); err != nil {
		return nil, err
	}

	s.Logger.Infow("purchase cancelled",
		"user_id", user.ID,
		"gateway", gatewayType,
		"provider_subscription_id", req.ProviderSubscriptionID)

	return &dto.CancelSubscriptionResponse{PlanTier: types.PlanTierFree}, nil
}

func (s *subscriptionService) ListGateways(_ context.Context) *dto.ListGatewaysResponse {
	return &dto.ListGatewaysResponse{Gateways: s.Gateways.EnabledGateways()}
}

func (s *subscriptionService) redirectURL(gatewayType types.PaymentGatewayType, outcome string) string {
	return fmt.Sprintf("%s/payment/%s/%s", s.Config.Website.BaseURL, gatewayType, outcome)
}
