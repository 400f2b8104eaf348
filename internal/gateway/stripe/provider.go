package stripe

import (
	"context"
	"strings"
	"time"

	"github.com/courseforge/courseforge/internal/config"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/stripe/stripe-go/v82"
)

// Provider drives subscriptions through Stripe Checkout. CreateSubscription
// opens a checkout session in subscription mode; the session id doubles as
// the provider subscription handle until the checkout completes, after which
// the session resolves to the underlying subscription.
type Provider struct {
	client *stripe.Client
	cfg    config.GatewayConfig
	logger *logger.Logger
}

func NewProvider(cfg config.GatewayConfig, logger *logger.Logger) *Provider {
	return &Provider{
		client: stripe.NewClient(cfg.SecretKey, nil),
		cfg:    cfg,
		logger: logger,
	}
}

func (p *Provider) Name() types.PaymentGatewayType {
	return types.PaymentGatewayTypeStripe
}

func (p *Provider) CreateSubscription(ctx context.Context, req *types.CreateSubscriptionRequest) (*types.CreateSubscriptionResponse, error) {
	params := &stripe.CheckoutSessionCreateParams{
		Mode: stripe.String("subscription"),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				Price:    stripe.String(req.PlanID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(req.Email),
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
		Metadata: map[string]string{
			"user_id":       req.UserID,
			"billing_cycle": string(req.Cycle),
		},
	}

	session, err := p.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		p.logger.Errorw("failed to create Stripe checkout session",
			"error", err,
			"user_id", req.UserID)
		return nil, ierr.WithError(err).
			WithHint("Stripe did not accept the subscription request").
			WithReportableDetails(map[string]interface{}{
				"gateway": types.PaymentGatewayTypeStripe,
			}).
			Mark(ierr.ErrProviderUnavailable)
	}

	return &types.CreateSubscriptionResponse{
		ProviderSubscriptionID: session.ID,
		RedirectURL:            session.URL,
	}, nil
}

func (p *Provider) FetchStatus(ctx context.Context, providerSubscriptionID string) (*types.SubscriptionStatus, error) {
	subID, err := p.resolveSubscriptionID(ctx, providerSubscriptionID)
	if err != nil {
		return nil, err
	}

	params := &stripe.SubscriptionRetrieveParams{
		Expand: []*string{
			stripe.String("items.data.price"),
		},
	}
	stripeSub, err := p.client.V1Subscriptions.Retrieve(ctx, subID, params)
	if err != nil {
		p.logger.Errorw("failed to retrieve subscription from Stripe",
			"error", err,
			"subscription_id", subID)
		return nil, ierr.WithError(err).
			WithHint("Could not fetch subscription information from Stripe").
			WithReportableDetails(map[string]interface{}{
				"subscription_id": subID,
			}).
			Mark(ierr.ErrProviderUnavailable)
	}

	status := &types.SubscriptionStatus{
		NativeStatus: string(stripeSub.Status),
		IsActive:     isActiveStatus(stripeSub.Status),
	}
	if stripeSub.Items != nil && len(stripeSub.Items.Data) > 0 {
		item := stripeSub.Items.Data[0]
		if item.Price != nil {
			status.PlanID = item.Price.ID
		}
		if item.CurrentPeriodEnd != 0 {
			next := time.Unix(item.CurrentPeriodEnd, 0).UTC()
			status.NextBillingAt = &next
		}
	}
	return status, nil
}

func (p *Provider) Cancel(ctx context.Context, providerSubscriptionID string) error {
	subID, err := p.resolveSubscriptionID(ctx, providerSubscriptionID)
	if err != nil {
		return err
	}

	_, err = p.client.V1Subscriptions.Cancel(ctx, subID, &stripe.SubscriptionCancelParams{})
	if err != nil {
		// Cancelling twice is a no-op, not a failure
		if stripeErr, ok := err.(*stripe.Error); ok &&
			stripeErr.HTTPStatusCode == 404 {
			return nil
		}
		p.logger.Errorw("failed to cancel Stripe subscription",
			"error", err,
			"subscription_id", subID)
		return ierr.WithError(err).
			WithHint("Stripe did not accept the cancellation").
			WithReportableDetails(map[string]interface{}{
				"subscription_id": subID,
			}).
			Mark(ierr.ErrProviderUnavailable)
	}
	return nil
}

// resolveSubscriptionID maps a checkout session id to the subscription it
// created. Plain subscription ids pass through untouched.
func (p *Provider) resolveSubscriptionID(ctx context.Context, id string) (string, error) {
	if !strings.HasPrefix(id, "cs_") {
		return id, nil
	}

	params := &stripe.CheckoutSessionRetrieveParams{
		Expand: []*string{
			stripe.String("subscription"),
		},
	}
	session, err := p.client.V1CheckoutSessions.Retrieve(ctx, id, params)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Could not resolve the Stripe checkout session").
			WithReportableDetails(map[string]interface{}{
				"session_id": id,
			}).
			Mark(ierr.ErrProviderUnavailable)
	}
	if session.Subscription == nil {
		return "", ierr.NewError("checkout session has no subscription").
			WithHint("The checkout has not completed yet").
			WithReportableDetails(map[string]interface{}{
				"session_id": id,
			}).
			Mark(ierr.ErrProviderUnavailable)
	}
	return session.Subscription.ID, nil
}

func isActiveStatus(s stripe.SubscriptionStatus) bool {
	switch s {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return true
	default:
		return false
	}
}
