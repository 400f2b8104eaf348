package razorpay

import (
	"context"
	"time"

	"github.com/courseforge/courseforge/internal/config"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/razorpay/razorpay-go"
	"github.com/samber/lo"
)

// totalCount is the number of billing cycles Razorpay charges before the
// subscription completes on its own. Razorpay requires a finite count.
const totalCount = 120

// Provider drives subscriptions through the Razorpay SDK. The SDK speaks in
// untyped maps, so every response field is picked out defensively.
type Provider struct {
	client *razorpay.Client
	cfg    config.GatewayConfig
	logger *logger.Logger
}

func NewProvider(cfg config.GatewayConfig, logger *logger.Logger) *Provider {
	return &Provider{
		client: razorpay.NewClient(cfg.PublicKey, cfg.SecretKey),
		cfg:    cfg,
		logger: logger,
	}
}

func (p *Provider) Name() types.PaymentGatewayType {
	return types.PaymentGatewayTypeRazorpay
}

func (p *Provider) CreateSubscription(ctx context.Context, req *types.CreateSubscriptionRequest) (*types.CreateSubscriptionResponse, error) {
	data := map[string]interface{}{
		"plan_id":         req.PlanID,
		"total_count":     totalCount,
		"customer_notify": 1,
		"notes": map[string]interface{}{
			"user_id":       req.UserID,
			"email":         req.Email,
			"billing_cycle": string(req.Cycle),
		},
	}

	sub, err := p.client.Subscription.Create(data, nil)
	if err != nil {
		p.logger.Errorw("failed to create Razorpay subscription",
			"error", err,
			"user_id", req.UserID)
		return nil, ierr.WithError(err).
			WithHint("Razorpay did not accept the subscription request").
			WithReportableDetails(map[string]interface{}{
				"gateway": types.PaymentGatewayTypeRazorpay,
			}).
			Mark(ierr.ErrProviderUnavailable)
	}

	subID, ok := sub["id"].(string)
	if !ok || subID == "" {
		return nil, ierr.NewError("razorpay response missing subscription id").
			WithHint("Check Razorpay subscription create response payload").
			Mark(ierr.ErrProviderUnavailable)
	}

	shortURL, _ := sub["short_url"].(string)

	return &types.CreateSubscriptionResponse{
		ProviderSubscriptionID: subID,
		RedirectURL:            shortURL,
	}, nil
}

func (p *Provider) FetchStatus(ctx context.Context, providerSubscriptionID string) (*types.SubscriptionStatus, error) {
	sub, err := p.client.Subscription.Fetch(providerSubscriptionID, nil, nil)
	if err != nil {
		p.logger.Errorw("failed to fetch Razorpay subscription",
			"error", err,
			"subscription_id", providerSubscriptionID)
		return nil, ierr.WithError(err).
			WithHint("Could not fetch subscription information from Razorpay").
			WithReportableDetails(map[string]interface{}{
				"subscription_id": providerSubscriptionID,
			}).
			Mark(ierr.ErrProviderUnavailable)
	}

	native, _ := sub["status"].(string)
	planID, _ := sub["plan_id"].(string)

	status := &types.SubscriptionStatus{
		NativeStatus: native,
		IsActive:     isActiveStatus(native),
		PlanID:       planID,
	}
	if chargeAt, ok := sub["charge_at"].(float64); ok && chargeAt > 0 {
		next := time.Unix(int64(chargeAt), 0).UTC()
		status.NextBillingAt = &next
	}
	return status, nil
}

func (p *Provider) Cancel(ctx context.Context, providerSubscriptionID string) error {
	// Cancel is idempotent at our boundary; a subscription already in a
	// terminal state reports success.
	current, err := p.FetchStatus(ctx, providerSubscriptionID)
	if err == nil && isTerminalStatus(current.NativeStatus) {
		return nil
	}

	data := map[string]interface{}{
		"cancel_at_cycle_end": 0,
	}
	if _, err := p.client.Subscription.Cancel(providerSubscriptionID, data, nil); err != nil {
		p.logger.Errorw("failed to cancel Razorpay subscription",
			"error", err,
			"subscription_id", providerSubscriptionID)
		return ierr.WithError(err).
			WithHint("Razorpay did not accept the cancellation").
			WithReportableDetails(map[string]interface{}{
				"subscription_id": providerSubscriptionID,
			}).
			Mark(ierr.ErrProviderUnavailable)
	}
	return nil
}

func isActiveStatus(native string) bool {
	return lo.Contains([]string{"active", "authenticated", "resumed"}, native)
}

func isTerminalStatus(native string) bool {
	return lo.Contains([]string{"cancelled", "completed", "expired"}, native)
}
