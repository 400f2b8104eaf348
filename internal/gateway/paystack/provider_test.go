package paystack

import (
	"context"
	"net/http"
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
	key := req.Method + " " + req.URL
	c.calls = append(c.calls, key)
	if resp, ok := c.responses[key]; ok {
		return resp, nil
	}
	return nil, httpclient.NewError(http.StatusNotFound, []byte(`{"status":false}`))
}

func newTestProvider(responses map[string]*httpclient.Response) (*Provider, *stubClient) {
	client := &stubClient{responses: responses}
	p := NewProvider(config.GatewayConfig{
		Enabled:   true,
		SecretKey: "sk_test",
	}, client, logger.NewNop())
	return p, client
}

func jsonResp(body string) *httpclient.Response {
	return &httpclient.Response{StatusCode: http.StatusOK, Body: []byte(body)}
}

func TestCreateSubscription(t *testing.T) {
	p, client := newTestProvider(map[string]*httpclient.Response{
		"POST " + baseURL + "/transaction/initialize": jsonResp(
			`{"status":true,"data":{"authorization_url":"https://checkout.paystack.com/abc","reference":"ref_123"}}`),
	})

	resp, err := p.CreateSubscription(context.Background(), &types.CreateSubscriptionRequest{
		UserID: "user_1",
		Email:  "buyer@example.com",
		Cycle:  types.BillingCycleMonthly,
		PlanID: "PLN_monthly",
	})
	require.NoError(t, err)
	assert.Equal(t, "ref_123", resp.ProviderSubscriptionID)
	assert.Equal(t, "https://checkout.paystack.com/abc", resp.RedirectURL)
	assert.Len(t, client.calls, 1)
}

func TestFetchStatusByReference(t *testing.T) {
	p, _ := newTestProvider(map[string]*httpclient.Response{
		"GET " + baseURL + "/transaction/verify/ref_123": jsonResp(
			`{"status":true,"data":{"status":"success","plan_object":{"plan_code":"PLN_monthly"}}}`),
	})

	status, err := p.FetchStatus(context.Background(), "ref_123")
	require.NoError(t, err)
	assert.True(t, status.IsActive)
	assert.Equal(t, "success", status.NativeStatus)
	assert.Equal(t, "PLN_monthly", status.PlanID)
}

func TestFetchStatusFailedCharge(t *testing.T) {
	p, _ := newTestProvider(map[string]*httpclient.Response{
		"GET " + baseURL + "/transaction/verify/ref_123": jsonResp(
			`{"status":true,"data":{"status":"failed"}}`),
	})

	status, err := p.FetchStatus(context.Background(), "ref_123")
	require.NoError(t, err)
	assert.False(t, status.IsActive)
	assert.Equal(t, "failed", status.NativeStatus)
}

func TestFetchStatusBySubscriptionCode(t *testing.T) {
	p, _ := newTestProvider(map[string]*httpclient.Response{
		"GET " + baseURL + "/subscription/SUB_abc": jsonResp(
			`{"status":true,"data":{"subscription_code":"SUB_abc","status":"active","next_payment_date":"2026-10-01T00:00:00Z","plan":{"plan_code":"PLN_yearly"}}}`),
	})

	status, err := p.FetchStatus(context.Background(), "SUB_abc")
	require.NoError(t, err)
	assert.True(t, status.IsActive)
	assert.Equal(t, "PLN_yearly", status.PlanID)
	require.NotNil(t, status.NextBillingAt)
	assert.Equal(t, 2026, status.NextBillingAt.Year())
}

func TestCancelDisablesActiveSubscription(t *testing.T) {
	p, client := newTestProvider(map[string]*httpclient.Response{
		"GET " + baseURL + "/subscription/SUB_abc": jsonResp(
			`{"status":true,"data":{"subscription_code":"SUB_abc","status":"active","email_token":"tok_1"}}`),
		"POST " + baseURL + "/subscription/disable": jsonResp(`{"status":true}`),
	})

	err := p.Cancel(context.Background(), "SUB_abc")
	require.NoError(t, err)
	assert.Contains(t, client.calls, "POST "+baseURL+"/subscription/disable")
}

func TestCancelAlreadyCancelled(t *testing.T) {
	p, client := newTestProvider(map[string]*httpclient.Response{
		"GET " + baseURL + "/subscription/SUB_abc": jsonResp(
			`{"status":true,"data":{"subscription_code":"SUB_abc","status":"cancelled"}}`),
	})

	err := p.Cancel(context.Background(), "SUB_abc")
	require.NoError(t, err)
	assert.NotContains(t, client.calls, "POST "+baseURL+"/subscription/disable")
}

func TestCancelResolvesReference(t *testing.T) {
	p, _ := newTestProvider(map[string]*httpclient.Response{
		"GET " + baseURL + "/transaction/verify/ref_123": jsonResp(
			`{"status":true,"data":{"customer":{"id":42}}}`),
		"GET " + baseURL + "/subscription?customer=42": jsonResp(
			`{"status":true,"data":[{"subscription_code":"SUB_abc","status":"active"}]}`),
		"GET " + baseURL + "/subscription/SUB_abc": jsonResp(
			`{"status":true,"data":{"subscription_code":"SUB_abc","status":"active","email_token":"tok_1"}}`),
		"POST " + baseURL + "/subscription/disable": jsonResp(`{"status":true}`),
	})

	err := p.Cancel(context.Background(), "ref_123")
	require.NoError(t, err)
}

func TestCancelReferenceWithoutSubscription(t *testing.T) {
	p, _ := newTestProvider(map[string]*httpclient.Response{
		"GET " + baseURL + "/transaction/verify/ref_123": jsonResp(
			`{"status":true,"data":{"customer":{"id":42}}}`),
		"GET " + baseURL + "/subscription?customer=42": jsonResp(
			`{"status":true,"data":[]}`),
	})

	err := p.Cancel(context.Background(), "ref_123")
	require.NoError(t, err)
}
