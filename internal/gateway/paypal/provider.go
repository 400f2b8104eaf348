package paypal

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/courseforge/courseforge/internal/config"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/httpclient"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/samber/lo"
)

const baseURL = "https://api-m.paypal.com"

// Provider drives subscriptions through the PayPal billing REST API. Each
// call obtains a client-credentials token first; PayPal tokens are short
// lived and the call volume here does not justify caching them.
type Provider struct {
	cfg    config.GatewayConfig
	client httpclient.Client
	logger *logger.Logger
}

func NewProvider(cfg config.GatewayConfig, client httpclient.Client, logger *logger.Logger) *Provider {
	return &Provider{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

func (p *Provider) Name() types.PaymentGatewayType {
	return types.PaymentGatewayTypePayPal
}

type subscriptionResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	PlanID      string `json:"plan_id"`
	BillingInfo struct {
		NextBillingTime time.Time `json:"next_billing_time"`
	} `json:"billing_info"`
	Links []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

func (p *Provider) CreateSubscription(ctx context.Context, req *types.CreateSubscriptionRequest) (*types.CreateSubscriptionResponse, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]interface{}{
		"plan_id": req.PlanID,
		"subscriber": map[string]interface{}{
			"email_address": req.Email,
		},
		"custom_id": req.UserID,
		"application_context": map[string]interface{}{
			"return_url": req.SuccessURL,
			"cancel_url": req.CancelURL,
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrInternal)
	}

	resp, err := p.client.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     baseURL + "/v1/billing/subscriptions",
		Headers: p.authHeaders(token),
		Body:    payload,
	})
	if err != nil {
		p.logger.Errorw("failed to create PayPal subscription",
			"error", err,
			"user_id", req.UserID)
		return nil, providerErr(err, "PayPal did not accept the subscription request")
	}

	var sub subscriptionResponse
	if err := json.Unmarshal(resp.Body, &sub); err != nil {
		return nil, providerErr(err, "Check PayPal subscription create response payload")
	}

	approveURL := ""
	for _, link := range sub.Links {
		if link.Rel == "approve" {
			approveURL = link.Href
			break
		}
	}

	return &types.CreateSubscriptionResponse{
		ProviderSubscriptionID: sub.ID,
		RedirectURL:            approveURL,
	}, nil
}

func (p *Provider) FetchStatus(ctx context.Context, providerSubscriptionID string) (*types.SubscriptionStatus, error) {
	sub, err := p.fetchSubscription(ctx, providerSubscriptionID)
	if err != nil {
		return nil, err
	}

	// APPROVED means the subscriber consented but the first charge has not
	// landed yet; PayPal activates it on its own shortly after
	status := &types.SubscriptionStatus{
		NativeStatus: sub.Status,
		IsActive:     lo.Contains([]string{"ACTIVE", "APPROVED"}, sub.Status),
		PlanID:       sub.PlanID,
	}
	if !sub.BillingInfo.NextBillingTime.IsZero() {
		next := sub.BillingInfo.NextBillingTime.UTC()
		status.NextBillingAt = &next
	}
	return status, nil
}

func (p *Provider) Cancel(ctx context.Context, providerSubscriptionID string) error {
	sub, err := p.fetchSubscription(ctx, providerSubscriptionID)
	if err != nil {
		return err
	}
	if lo.Contains([]string{"CANCELLED", "EXPIRED"}, sub.Status) {
		return nil
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]string{
		"reason": "Customer cancelled subscription",
	})
	_, err = p.client.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     fmt.Sprintf("%s/v1/billing/subscriptions/%s/cancel", baseURL, providerSubscriptionID),
		Headers: p.authHeaders(token),
		Body:    payload,
	})
	if err != nil {
		p.logger.Errorw("failed to cancel PayPal subscription",
			"error", err,
			"subscription_id", providerSubscriptionID)
		return providerErr(err, "PayPal did not accept the cancellation")
	}
	return nil
}

func (p *Provider) fetchSubscription(ctx context.Context, id string) (*subscriptionResponse, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Send(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     fmt.Sprintf("%s/v1/billing/subscriptions/%s", baseURL, id),
		Headers: p.authHeaders(token),
	})
	if err != nil {
		p.logger.Errorw("failed to fetch PayPal subscription",
			"error", err,
			"subscription_id", id)
		return nil, providerErr(err, "Could not fetch subscription information from PayPal")
	}

	var sub subscriptionResponse
	if err := json.Unmarshal(resp.Body, &sub); err != nil {
		return nil, providerErr(err, "Check PayPal subscription response payload")
	}
	return &sub, nil
}

func (p *Provider) accessToken(ctx context.Context) (string, error) {
	creds := base64.StdEncoding.EncodeToString(
		[]byte(p.cfg.PublicKey + ":" + p.cfg.SecretKey))

	resp, err := p.client.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    baseURL + "/v1/oauth2/token",
		Headers: map[string]string{
			"Authorization": "Basic " + creds,
			"Content-Type":  "application/x-www-form-urlencoded",
		},
		Body: []byte("grant_type=client_credentials"),
	})
	if err != nil {
		p.logger.Errorw("failed to obtain PayPal access token", "error", err)
		return "", providerErr(err, "Could not authenticate with PayPal")
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Body, &token); err != nil || token.AccessToken == "" {
		return "", ierr.NewError("paypal token response missing access_token").
			WithHint("Could not authenticate with PayPal").
			Mark(ierr.ErrProviderUnavailable)
	}
	return token.AccessToken, nil
}

func (p *Provider) authHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  "application/json",
	}
}

func providerErr(err error, hint string) error {
	return ierr.WithError(err).
		WithHint(hint).
		Mark(ierr.ErrProviderUnavailable)
}
