package flutterwave

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/courseforge/courseforge/internal/config"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/httpclient"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/types"
)

const baseURL = "https://api.flutterwave.com/v3"

// Provider drives subscriptions through the Flutterwave REST API. A
// checkout is a hosted payment bound to a payment plan; Flutterwave
// creates the subscription once the charge succeeds, so the transaction
// reference we generate at checkout is the provider handle throughout.
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
	return types.PaymentGatewayTypeFlutterwave
}

func (p *Provider) CreateSubscription(ctx context.Context, req *types.CreateSubscriptionRequest) (*types.CreateSubscriptionResponse, error) {
	txRef := types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_TRANSACTION)

	payload, err := json.Marshal(map[string]interface{}{
		"tx_ref":       txRef,
		"payment_plan": req.PlanID,
		"redirect_url": req.SuccessURL,
		"customer": map[string]interface{}{
			"email": req.Email,
			"name":  req.Name,
		},
		"meta": map[string]interface{}{
			"user_id":       req.UserID,
			"billing_cycle": string(req.Cycle),
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrInternal)
	}

	resp, err := p.send(ctx, http.MethodPost, "/payments", payload)
	if err != nil {
		p.logger.Errorw("failed to create Flutterwave payment",
			"error", err,
			"user_id", req.UserID)
		return nil, providerErr(err, "Flutterwave did not accept the subscription request")
	}

	var out struct {
		Data struct {
			Link string `json:"link"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, providerErr(err, "Check Flutterwave payment response payload")
	}

	return &types.CreateSubscriptionResponse{
		ProviderSubscriptionID: txRef,
		RedirectURL:            out.Data.Link,
	}, nil
}

func (p *Provider) FetchStatus(ctx context.Context, providerSubscriptionID string) (*types.SubscriptionStatus, error) {
	tx, err := p.verifyTransaction(ctx, providerSubscriptionID)
	if err != nil {
		return nil, err
	}
	if tx.Status != "successful" {
		return &types.SubscriptionStatus{
			NativeStatus: tx.Status,
			IsActive:     false,
		}, nil
	}

	sub, err := p.findSubscription(ctx, tx.ID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		// Charge went through but no subscription materialized yet
		return &types.SubscriptionStatus{
			NativeStatus: tx.Status,
			IsActive:     true,
		}, nil
	}

	status := &types.SubscriptionStatus{
		NativeStatus: sub.Status,
		IsActive:     sub.Status == "active",
		PlanID:       strconv.FormatInt(sub.Plan, 10),
	}
	if t, err := time.Parse("2006-01-02T15:04:05.000Z", sub.NextDue); err == nil {
		next := t.UTC()
		status.NextBillingAt = &next
	}
	return status, nil
}

func (p *Provider) Cancel(ctx context.Context, providerSubscriptionID string) error {
	tx, err := p.verifyTransaction(ctx, providerSubscriptionID)
	if err != nil {
		return err
	}

	sub, err := p.findSubscription(ctx, tx.ID)
	if err != nil {
		return err
	}
	if sub == nil || sub.Status == "cancelled" {
		return nil
	}

	if _, err := p.send(ctx, http.MethodPut,
		fmt.Sprintf("/subscriptions/%d/cancel", sub.ID), nil); err != nil {
		p.logger.Errorw("failed to cancel Flutterwave subscription",
			"error", err,
			"subscription_id", sub.ID)
		return providerErr(err, "Flutterwave did not accept the cancellation")
	}
	return nil
}

type transaction struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type subscription struct {
	ID      int64  `json:"id"`
	Status  string `json:"status"`
	Plan    int64  `json:"plan"`
	NextDue string `json:"next_due"`
}

func (p *Provider) verifyTransaction(ctx context.Context, txRef string) (*transaction, error) {
	resp, err := p.send(ctx, http.MethodGet,
		"/transactions/verify_by_reference?tx_ref="+url.QueryEscape(txRef), nil)
	if err != nil {
		p.logger.Errorw("failed to verify Flutterwave transaction",
			"error", err,
			"tx_ref", txRef)
		return nil, providerErr(err, "Could not fetch subscription information from Flutterwave")
	}

	var out struct {
		Data transaction `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, providerErr(err, "Check Flutterwave transaction verify response payload")
	}
	return &out.Data, nil
}

func (p *Provider) findSubscription(ctx context.Context, transactionID int64) (*subscription, error) {
	resp, err := p.send(ctx, http.MethodGet,
		fmt.Sprintf("/subscriptions?transaction_id=%d", transactionID), nil)
	if err != nil {
		return nil, providerErr(err, "Could not list Flutterwave subscriptions")
	}

	var out struct {
		Data []subscription `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, providerErr(err, "Check Flutterwave subscription list response payload")
	}
	if len(out.Data) == 0 {
		return nil, nil
	}
	return &out.Data[0], nil
}

func (p *Provider) send(ctx context.Context, method, path string, body []byte) (*httpclient.Response, error) {
	return p.client.Send(ctx, &httpclient.Request{
		Method: method,
		URL:    baseURL + path,
		Headers: map[string]string{
			"Authorization": "Bearer " + p.cfg.SecretKey,
			"Content-Type":  "application/json",
		},
		Body: body,
	})
}

func providerErr(err error, hint string) error {
	return ierr.WithError(err).
		WithHint(hint).
		Mark(ierr.ErrProviderUnavailable)
}
