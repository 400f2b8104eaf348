package paypal

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/courseforge/courseforge/internal/config"
	"github.com/courseforge/courseforge/internal/httpclient"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenBody = `{"access_token":"A21.test","token_type":"Bearer","expires_in":32400}`

// stubClient replays canned responses keyed by "METHOD path"
type stubClient struct {
	responses map[string]*httpclient.Response
	calls     []string
}

func (c *stubClient) Send(_ context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	key := req.Method + " " + strings.TrimPrefix(req.URL, baseURL)
	c.calls = append(c.calls, key)
	if resp, ok := c.responses[key]; ok {
		return resp, nil
	}
	return nil, httpclient.NewError(http.StatusNotFound, []byte(`{"name":"RESOURCE_NOT_FOUND"}`))
}

func newTestProvider(responses map[string]*httpclient.Response) (*Provider, *stubClient) {
	responses["POST /v1/oauth2/token"] = jsonResp(tokenBody)
	client := &stubClient{responses: responses}
	p := NewProvider(config.GatewayConfig{
		Enabled:   true,
		PublicKey: "client_test",
		SecretKey: "secret_test",
	}, client, logger.NewNop())
	return p, client
}

func jsonResp(body string) *httpclient.Response {
	return &httpclient.Response{StatusCode: http.StatusOK, Body: []byte(body)}
}

func TestCreateSubscription(t *testing.T) {
	p, _ := newTestProvider(map[string]*httpclient.Response{
		"POST /v1/billing/subscriptions": jsonResp(
			`{"id":"I-ABC123","status":"APPROVAL_PENDING","links":[` +
				`{"href":"https://www.paypal.com/webapps/billing/subscriptions?ba_token=BA-1","rel":"approve"},` +
				`{"href":"https://api-m.paypal.com/v1/billing/subscriptions/I-ABC123","rel":"self"}]}`),
	})

	resp, err := p.CreateSubscription(context.Background(), &types.CreateSubscriptionRequest{
		UserID: "user_1",
		Email:  "buyer@example.com",
		Cycle:  types.BillingCycleYearly,
		PlanID: "P-yearly",
	})
	require.NoError(t, err)
	assert.Equal(t, "I-ABC123", resp.ProviderSubscriptionID)
	assert.Contains(t, resp.RedirectURL, "ba_token=BA-1")
}

func TestFetchStatus(t *testing.T) {
	tests := []struct {
		native string
		active bool
	}{
		{"ACTIVE", true},
		{"APPROVED", true},
		{"APPROVAL_PENDING", false},
		{"SUSPENDED", false},
		{"CANCELLED", false},
	}

	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			p, _ := newTestProvider(map[string]*httpclient.Response{
				"GET /v1/billing/subscriptions/I-ABC123": jsonResp(
					`{"id":"I-ABC123","status":"` + tt.native + `","plan_id":"P-yearly"}`),
			})

			status, err := p.FetchStatus(context.Background(), "I-ABC123")
			require.NoError(t, err)
			assert.Equal(t, tt.active, status.IsActive)
			assert.Equal(t, tt.native, status.NativeStatus)
			assert.Equal(t, "P-yearly", status.PlanID)
		})
	}
}

func TestFetchStatusNextBilling(t *testing.T) {
	p, _ := newTestProvider(map[string]*httpclient.Response{
		"GET /v1/billing/subscriptions/I-ABC123": jsonResp(
			`{"id":"I-ABC123","status":"ACTIVE","plan_id":"P-yearly",` +
				`"billing_info":{"next_billing_time":"2026-10-01T10:00:00Z"}}`),
	})

	status, err := p.FetchStatus(context.Background(), "I-ABC123")
	require.NoError(t, err)
	require.NotNil(t, status.NextBillingAt)
	assert.Equal(t, 2026, status.NextBillingAt.Year())
}

func TestCancelActiveSubscription(t *testing.T) {
	p, client := newTestProvider(map[string]*httpclient.Response{
		"GET /v1/billing/subscriptions/I-ABC123": jsonResp(
			`{"id":"I-ABC123","status":"ACTIVE"}`),
		"POST /v1/billing/subscriptions/I-ABC123/cancel": {
			StatusCode: http.StatusNoContent,
		},
	})

	err := p.Cancel(context.Background(), "I-ABC123")
	require.NoError(t, err)
	assert.Contains(t, client.calls, "POST /v1/billing/subscriptions/I-ABC123/cancel")
}

func TestCancelAlreadyCancelled(t *testing.T) {
	p, client := newTestProvider(map[string]*httpclient.Response{
		"GET /v1/billing/subscriptions/I-ABC123": jsonResp(
			`{"id":"I-ABC123","status":"CANCELLED"}`),
	})

	err := p.Cancel(context.Background(), "I-ABC123")
	require.NoError(t, err)
	assert.NotContains(t, client.calls, "POST /v1/billing/subscriptions/I-ABC123/cancel")
}
