package gateway

import (
	"context"

	"github.com/courseforge/courseforge/internal/types"
)

// ProviderFactory hands out providers by gateway type.
type ProviderFactory interface {
	Provider(t types.PaymentGatewayType) (Provider, error)
	EnabledGateways() []types.PaymentGatewayType
}

// Provider is the uniform surface every payment gateway adapter exposes.
// Adapters talk only to the provider API, never to storage; failed provider
// calls come back marked ErrProviderUnavailable.
type Provider interface {
	// Name returns the gateway type this provider serves.
	Name() types.PaymentGatewayType

	// CreateSubscription opens a subscription on the provider. It performs
	// no local writes.
	CreateSubscription(ctx context.Context, req *types.CreateSubscriptionRequest) (*types.CreateSubscriptionResponse, error)

	// FetchStatus retrieves the current state of a provider subscription.
	FetchStatus(ctx context.Context, providerSubscriptionID string) (*types.SubscriptionStatus, error)

	// Cancel cancels a provider subscription. Cancelling a subscription
	// that is already cancelled succeeds.
	Cancel(ctx context.Context, providerSubscriptionID string) error
}
