package gateway

import (
	"testing"

	"github.com/courseforge/courseforge/internal/config"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/httpclient"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFactory(t *testing.T, enabled ...types.PaymentGatewayType) *Factory {
	t.Helper()

	cfg := config.GetDefaultConfig()
	for _, gw := range enabled {
		gwCfg := config.GatewayConfig{
			Enabled:       true,
			PublicKey:     "pk_test",
			SecretKey:     "sk_test",
			MonthlyPlanID: "plan_monthly",
			YearlyPlanID:  "plan_yearly",
		}
		switch gw {
		case types.PaymentGatewayTypePayPal:
			cfg.Gateways.PayPal = gwCfg
		case types.PaymentGatewayTypeStripe:
			cfg.Gateways.Stripe = gwCfg
		case types.PaymentGatewayTypeRazorpay:
			cfg.Gateways.Razorpay = gwCfg
		case types.PaymentGatewayTypePaystack:
			cfg.Gateways.Paystack = gwCfg
		case types.PaymentGatewayTypeFlutterwave:
			cfg.Gateways.Flutterwave = gwCfg
		}
	}

	return NewFactory(cfg, httpclient.NewDefaultClient(), logger.NewNop())
}

func TestProviderForEnabledGateway(t *testing.T) {
	f := newTestFactory(t, types.PaymentGatewayTypeStripe, types.PaymentGatewayTypePaystack)

	p, err := f.Provider(types.PaymentGatewayTypeStripe)
	require.NoError(t, err)
	assert.Equal(t, types.PaymentGatewayTypeStripe, p.Name())

	p, err = f.Provider(types.PaymentGatewayTypePaystack)
	require.NoError(t, err)
	assert.Equal(t, types.PaymentGatewayTypePaystack, p.Name())
}

func TestProviderForDisabledGateway(t *testing.T) {
	f := newTestFactory(t, types.PaymentGatewayTypeStripe)

	_, err := f.Provider(types.PaymentGatewayTypeRazorpay)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestProviderForUnknownGateway(t *testing.T) {
	f := newTestFactory(t, types.PaymentGatewayTypeStripe)

	_, err := f.Provider(types.PaymentGatewayType("cash"))
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestEnabledGateways(t *testing.T) {
	f := newTestFactory(t, types.PaymentGatewayTypePayPal, types.PaymentGatewayTypeFlutterwave)

	assert.ElementsMatch(t,
		[]types.PaymentGatewayType{types.PaymentGatewayTypePayPal, types.PaymentGatewayTypeFlutterwave},
		f.EnabledGateways())
}

func TestAllProvidersConstructed(t *testing.T) {
	f := newTestFactory(t, types.AllPaymentGatewayTypes...)

	for _, gw := range types.AllPaymentGatewayTypes {
		p, err := f.Provider(gw)
		require.NoError(t, err)
		assert.Equal(t, gw, p.Name())
	}
}
