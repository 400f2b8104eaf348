package gateway

import (
	"github.com/courseforge/courseforge/internal/config"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/gateway/flutterwave"
	"github.com/courseforge/courseforge/internal/gateway/paypal"
	"github.com/courseforge/courseforge/internal/gateway/paystack"
	"github.com/courseforge/courseforge/internal/gateway/razorpay"
	"github.com/courseforge/courseforge/internal/gateway/stripe"
	"github.com/courseforge/courseforge/internal/httpclient"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/types"
)

// Factory hands out the payment gateway providers enabled in configuration.
type Factory struct {
	config    *config.Configuration
	providers map[types.PaymentGatewayType]Provider
}

// NewFactory creates a new gateway factory. Providers for disabled
// gateways are never constructed.
func NewFactory(
	cfg *config.Configuration,
	client httpclient.Client,
	logger *logger.Logger,
) *Factory {
	f := &Factory{
		config:    cfg,
		providers: make(map[types.PaymentGatewayType]Provider),
	}

	for _, t := range cfg.Gateways.EnabledGateways() {
		gwCfg, _ := cfg.Gateways.Gateway(t)
		switch t {
		case types.PaymentGatewayTypeStripe:
			f.providers[t] = stripe.NewProvider(gwCfg, logger)
		case types.PaymentGatewayTypeRazorpay:
			f.providers[t] = razorpay.NewProvider(gwCfg, logger)
		case types.PaymentGatewayTypePayPal:
			f.providers[t] = paypal.NewProvider(gwCfg, client, logger)
		case types.PaymentGatewayTypePaystack:
			f.providers[t] = paystack.NewProvider(gwCfg, client, logger)
		case types.PaymentGatewayTypeFlutterwave:
			f.providers[t] = flutterwave.NewProvider(gwCfg, client, logger)
		}
	}

	return f
}

// Provider returns the provider for the given gateway type. Unknown and
// disabled gateways both fail validation.
func (f *Factory) Provider(t types.PaymentGatewayType) (Provider, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	p, ok := f.providers[t]
	if !ok {
		return nil, ierr.NewError("payment gateway is not enabled").
			WithHintf("The %s gateway is not available", t).
			WithReportableDetails(map[string]interface{}{
				"gateway": t,
			}).
			Mark(ierr.ErrValidation)
	}
	return p, nil
}

// EnabledGateways lists the gateway types with a configured provider.
func (f *Factory) EnabledGateways() []types.PaymentGatewayType {
	return f.config.Gateways.EnabledGateways()
}
