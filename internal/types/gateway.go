package types

import "time"

// CreateSubscriptionRequest carries everything a gateway needs to open a
// subscription checkout for a user.
type CreateSubscriptionRequest struct {
	UserID     string
	Email      string
	Name       string
	Cycle      BillingCycle
	PlanID     string
	SuccessURL string
	CancelURL  string
}

// CreateSubscriptionResponse is the gateway-side handle for a newly created
// subscription. RedirectURL is where the client must send the user to
// approve the payment; it is empty for gateways that confirm client-side.
type CreateSubscriptionResponse struct {
	ProviderSubscriptionID string `json:"provider_subscription_id"`
	RedirectURL            string `json:"redirect_url,omitempty"`
}

// SubscriptionStatus is the normalized view of a provider subscription.
// IsActive folds each provider's native status vocabulary into a single
// bit; PlanID is the provider's plan identifier and may be empty when the
// provider does not return one.
type SubscriptionStatus struct {
	IsActive      bool
	NativeStatus  string
	PlanID        string
	NextBillingAt *time.Time
}
