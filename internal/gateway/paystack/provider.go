package paystack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/courseforge/courseforge/internal/config"
	ierr "github.com/courseforge/courseforge/internal/errors"
	"github.com/courseforge/courseforge/internal/httpclient"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/types"
	"github.com/samber/lo"
)

const baseURL = "https://api.paystack.co"

// Provider drives subscriptions through the Paystack REST API. A checkout
// starts as a plan-bound transaction; Paystack creates the subscription
// itself once the charge succeeds, so the transaction reference serves as
// the provider handle until a SUB_ code exists.
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
	return types.PaymentGatewayTypePaystack
}

func (p *Provider) CreateSubscription(ctx context.Context, req *types.CreateSubscriptionRequest) (*types.CreateSubscriptionResponse, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"email":        req.Email,
		"plan":         req.PlanID,
		"callback_url": req.SuccessURL,
		"metadata": map[string]interface{}{
			"user_id":       req.UserID,
			"billing_cycle": string(req.Cycle),
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrInternal)
	}

	resp, err := p.send(ctx, http.MethodPost, "/transaction/initialize", payload)
	if err != nil {
		p.logger.Errorw("failed to initialize Paystack transaction",
			"error", err,
			"user_id", req.UserID)
		return nil, providerErr(err, "Paystack did not accept the subscription request")
	}

	var out struct {
		Data struct {
			AuthorizationURL string `json:"authorization_url"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, providerErr(err, "Check Paystack transaction initialize response payload")
	}

	return &types.CreateSubscriptionResponse{
		ProviderSubscriptionID: out.Data.Reference,
		RedirectURL:            out.Data.AuthorizationURL,
	}, nil
}

func (p *Provider) FetchStatus(ctx context.Context, providerSubscriptionID string) (*types.SubscriptionStatus, error) {
	if strings.HasPrefix(providerSubscriptionID, "SUB_") {
		sub, err := p.fetchSubscription(ctx, providerSubscriptionID)
		if err != nil {
			return nil, err
		}
		return sub.toStatus(), nil
	}

	// Transaction reference: a successful plan charge means Paystack has
	// activated the subscription on its side.
	resp, err := p.send(ctx, http.MethodGet, "/transaction/verify/"+providerSubscriptionID, nil)
	if err != nil {
		p.logger.Errorw("failed to verify Paystack transaction",
			"error", err,
			"reference", providerSubscriptionID)
		return nil, providerErr(err, "Could not fetch subscription information from Paystack")
	}

	var out struct {
		Data struct {
			Status string `json:"status"`
			Plan   struct {
				PlanCode string `json:"plan_code"`
			} `json:"plan_object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, providerErr(err, "Check Paystack transaction verify response payload")
	}

	return &types.SubscriptionStatus{
		NativeStatus: out.Data.Status,
		IsActive:     out.Data.Status == "success",
		PlanID:       out.Data.Plan.PlanCode,
	}, nil
}

func (p *Provider) Cancel(ctx context.Context, providerSubscriptionID string) error {
	code := providerSubscriptionID
	if !strings.HasPrefix(code, "SUB_") {
		resolved, err := p.resolveSubscriptionCode(ctx, providerSubscriptionID)
		if err != nil {
			return err
		}
		if resolved == "" {
			// Nothing to disable; the charge never produced a subscription
			return nil
		}
		code = resolved
	}

	sub, err := p.fetchSubscription(ctx, code)
	if err != nil {
		return err
	}
	if lo.Contains([]string{"cancelled", "completed", "non-renewing"}, sub.Status) {
		return nil
	}

	payload, _ := json.Marshal(map[string]string{
		"code":  code,
		"token": sub.EmailToken,
	})
	if _, err := p.send(ctx, http.MethodPost, "/subscription/disable", payload); err != nil {
		p.logger.Errorw("failed to disable Paystack subscription",
			"error", err,
			"subscription_code", code)
		return providerErr(err, "Paystack did not accept the cancellation")
	}
	return nil
}

type subscription struct {
	SubscriptionCode string `json:"subscription_code"`
	Status           string `json:"status"`
	EmailToken       string `json:"email_token"`
	NextPaymentDate  string `json:"next_payment_date"`
	Plan             struct {
		PlanCode string `json:"plan_code"`
	} `json:"plan"`
}

func (s *subscription) toStatus() *types.SubscriptionStatus {
	// attention flags a collection problem on an otherwise live subscription;
	// non-renewing has been cancelled and only runs out its paid period
	status := &types.SubscriptionStatus{
		NativeStatus: s.Status,
		IsActive:     lo.Contains([]string{"active", "attention"}, s.Status),
		PlanID:       s.Plan.PlanCode,
	}
	if t, err := time.Parse(time.RFC3339, s.NextPaymentDate); err == nil {
		next := t.UTC()
		status.NextBillingAt = &next
	}
	return status
}

func (p *Provider) fetchSubscription(ctx context.Context, code string) (*subscription, error) {
	resp, err := p.send(ctx, http.MethodGet, "/subscription/"+code, nil)
	if err != nil {
		p.logger.Errorw("failed to fetch Paystack subscription",
			"error", err,
			"subscription_code", code)
		return nil, providerErr(err, "Could not fetch subscription information from Paystack")
	}

	var out struct {
		Data subscription `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, providerErr(err, "Check Paystack subscription response payload")
	}
	return &out.Data, nil
}

// resolveSubscriptionCode walks from a transaction reference to the SUB_
// code Paystack created for the charged customer. Returns an empty code
// when the customer has no subscription yet.
func (p *Provider) resolveSubscriptionCode(ctx context.Context, reference string) (string, error) {
	resp, err := p.send(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return "", providerErr(err, "Could not fetch subscription information from Paystack")
	}

	var verify struct {
		Data struct {
			Customer struct {
				ID int64 `json:"id"`
			} `json:"customer"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &verify); err != nil {
		return "", providerErr(err, "Check Paystack transaction verify response payload")
	}
	if verify.Data.Customer.ID == 0 {
		return "", nil
	}

	resp, err = p.send(ctx, http.MethodGet,
		fmt.Sprintf("/subscription?customer=%d", verify.Data.Customer.ID), nil)
	if err != nil {
		return "", providerErr(err, "Could not list Paystack subscriptions")
	}

	var list struct {
		Data []subscription `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return "", providerErr(err, "Check Paystack subscription list response payload")
	}
	for _, sub := range list.Data {
		if sub.Status != "cancelled" && sub.Status != "completed" {
			return sub.SubscriptionCode, nil
		}
	}
	return "", nil
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
