package testutil

import (
	"context"
	"sync"

	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/gateway"
	"github.com/courseforge/courseforge/internal/types"
)

// FakeProvider is a scriptable payment gateway for tests. Statuses are
// keyed by provider subscription id; errors are injected per call type.
type FakeProvider struct {
	mu sync.Mutex

	GatewayType types.PaymentGatewayType

	CreateResponse *types.CreateSubscriptionResponse
	CreateErr      error
	FetchErr       error
	CancelErr      error

	Statuses map[string]*types.SubscriptionStatus

	CreateCalls []*types.CreateSubscriptionRequest
	FetchCalls  []string
	CancelCalls []string
}

func NewFakeProvider(gatewayType types.PaymentGatewayType) *FakeProvider {
	return &FakeProvider{
		GatewayType: gatewayType,
		CreateResponse: &types.CreateSubscriptionResponse{
			ProviderSubscriptionID: "sub_fake_1",
			RedirectURL:            "https://checkout.example.com/sub_fake_1",
		},
		Statuses: make(map[string]*types.SubscriptionStatus),
	}
}

func (p *FakeProvider) Name() types.PaymentGatewayType {
	return p.GatewayType
}

func (p *FakeProvider) CreateSubscription(ctx context.Context, req *types.CreateSubscriptionRequest) (*types.CreateSubscriptionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.CreateCalls = append(p.CreateCalls, req)
	if p.CreateErr != nil {
		return nil, p.CreateErr
	}
	return p.CreateResponse, nil
}

func (p *FakeProvider) FetchStatus(ctx context.Context, providerSubscriptionID string) (*types.SubscriptionStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.FetchCalls = append(p.FetchCalls, providerSubscriptionID)
	if p.FetchErr != nil {
		return nil, p.FetchErr
	}
	status, ok := p.Statuses[providerSubscriptionID]
	if !ok {
		return nil, ierr.NewError("subscription not found at provider").
			WithHintf("Subscription %s was not found", providerSubscriptionID).
			Mark(ierr.ErrProviderUnavailable)
	}
	return status, nil
}

func (p *FakeProvider) Cancel(ctx context.Context, providerSubscriptionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.CancelCalls = append(p.CancelCalls, providerSubscriptionID)
	if p.CancelErr != nil {
		return p.CancelErr
	}
	if status, ok := p.Statuses[providerSubscriptionID]; ok {
		status.IsActive = false
		status.NativeStatus = "cancelled"
	}
	return nil
}

// SetStatus scripts the status returned for a subscription id
func (p *FakeProvider) SetStatus(id string, status *types.SubscriptionStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Statuses[id] = status
}

// FakeProviderFactory hands out fake providers by gateway type
type FakeProviderFactory struct {
	Providers map[types.PaymentGatewayType]*FakeProvider
}

func NewFakeProviderFactory(gatewayTypes ...types.PaymentGatewayType) *FakeProviderFactory {
	f := &FakeProviderFactory{
		Providers: make(map[types.PaymentGatewayType]*FakeProvider),
	}
	for _, t := range gatewayTypes {
		f.Providers[t] = NewFakeProvider(t)
	}
	return f
}

func (f *FakeProviderFactory) Provider(t types.PaymentGatewayType) (gateway.Provider, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	p, ok := f.Providers[t]
	if !ok {
		return nil, ierr.NewError("payment gateway is not enabled").
			WithHintf("The %s gateway is not available", t).
			Mark(ierr.ErrValidation)
	}
	return p, nil
}

func (f *FakeProviderFactory) EnabledGateways() []types.PaymentGatewayType {
	enabled := make([]types.PaymentGatewayType, 0, len(f.Providers))
	for _, t := range types.AllPaymentGatewayTypes {
		if _, ok := f.Providers[t]; ok {
			enabled = append(enabled, t)
		}
	}
	return enabled
}
