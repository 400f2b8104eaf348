package flutterwave

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
	return nil, httpclient.NewError(http.StatusNotFound, []byte(`{"status":"error"}`))
}

func newTestProvider(responses map[string]*httpclient.Response) (*Provider, *stubClient) {
	client := &stubClient{responses: responses}
	p := NewProvider(config.GatewayConfig{
		Enabled:   true,
		SecretKey: "FLWSECK_TEST",
	}, client, logger.NewNop())
	return p, client
}

func jsonResp(body string) *httpclient.Response {
	return &httpclient.Response{StatusCode: http.StatusOK, Body: []byte(body)}
}

func TestCreateSubscription(t *testing.T) {
	p, client := newTestProvider(map[string]*httpclient.Response{
		"POST /payments": jsonResp(
			`{"status":"success","data":{"link":"https://checkout.flutterwave.com/pay/xyz"}}`),
	})

	resp, err := p.CreateSubscription(context.Background(), &types.CreateSubscriptionRequest{
		UserID: "user_1",
		Email:  "buyer@example.com",
		Name:   "Test Buyer",
		Cycle:  types.BillingCycleMonthly,
		PlanID: "4521",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.ProviderSubscriptionID, "TXN-"))
	assert.Equal(t, "https://checkout.flutterwave.com/pay/xyz", resp.RedirectURL)
	assert.Len(t, client.calls, 1)
}

func TestFetchStatusActiveSubscription(t *testing.T) {
	p, _ := newTestProvider(map[string]*httpclient.Response{
		"GET /transactions/verify_by_reference?tx_ref=TXN-abc": jsonResp(
			`{"status":"success","data":{"id":99,"status":"successful"}}`),
		"GET /subscriptions?transaction_id=99": jsonResp(
			`{"status":"success","data":[{"id":7,"status":"active","plan":4521,"next_due":"2026-10-01T00:00:00.000Z"}]}`),
	})

	status, err := p.FetchStatus(context.Background(), "TXN-abc")
	require.NoError(t, err)
	assert.True(t, status.IsActive)
	assert.Equal(t, "active", status.NativeStatus)
	assert.Equal(t, "4521", status.PlanID)
	require.NotNil(t, status.NextBillingAt)
	assert.Equal(t, 2026, status.NextBillingAt.Year())
}

func TestFetchStatusFailedCharge(t *testing.T) {
	p, _ := newTestProvider(map[string]*httpclient.Response{
		"GET /transactions/verify_by_reference?tx_ref=TXN-abc": jsonResp(
			`{"status":"success","data":{"id":99,"status":"failed"}}`),
	})

	status, err := p.FetchStatus(context.Background(), "TXN-abc")
	require.NoError(t, err)
	assert.False(t, status.IsActive)
	assert.Equal(t, "failed", status.NativeStatus)
}

func TestFetchStatusChargeWithoutSubscription(t *testing.T) {
	p, _ := newTestProvider(map[string]*httpclient.Response{
		"GET /transactions/verify_by_reference?tx_ref=TXN-abc": jsonResp(
			`{"status":"success","data":{"id":99,"status":"successful"}}`),
		"GET /subscriptions?transaction_id=99": jsonResp(
			`{"status":"success","data":[]}`),
	})

	status, err := p.FetchStatus(context.Background(), "TXN-abc")
	require.NoError(t, err)
	assert.True(t, status.IsActive)
}

func TestCancelActiveSubscription(t *testing.T) {
	p, client := newTestProvider(map[string]*httpclient.Response{
		"GET /transactions/verify_by_reference?tx_ref=TXN-abc": jsonResp(
			`{"status":"success","data":{"id":99,"status":"successful"}}`),
		"GET /subscriptions?transaction_id=99": jsonResp(
			`{"status":"success","data":[{"id":7,"status":"active","plan":4521}]}`),
		"PUT /subscriptions/7/cancel": jsonResp(`{"status":"success"}`),
	})

	err := p.Cancel(context.Background(), "TXN-abc")
	require.NoError(t, err)
	assert.Contains(t, client.calls, "PUT /subscriptions/7/cancel")
}

func TestCancelAlreadyCancelled(t *testing.T) {
	p, client := newTestProvider(map[string]*httpclient.Response{
		"GET /transactions/verify_by_reference?tx_ref=TXN-abc": jsonResp(
			`{"status":"success","data":{"id":99,"status":"successful"}}`),
		"GET /subscriptions?transaction_id=99": jsonResp(
			`{"status":"success","data":[{"id":7,"status":"cancelled","plan":4521}]}`),
	})

	err := p.Cancel(context.Background(), "TXN-abc")
	require.NoError(t, err)
	assert.NotContains(t, client.calls, "PUT /subscriptions/7/cancel")
}
