package types

import (
	ierr "github.com/courseforge/courseforge/internal/errors"
)

// PaymentGatewayType represents the type of payment gateway
type PaymentGatewayType string

const (
	PaymentGatewayTypePayPal      PaymentGatewayType = "paypal"
	PaymentGatewayTypeStripe      PaymentGatewayType = "stripe"
	PaymentGatewayTypeRazorpay    PaymentGatewayType = "razorpay"
	PaymentGatewayTypePaystack    PaymentGatewayType = "paystack"
	PaymentGatewayTypeFlutterwave PaymentGatewayType = "flutterwave"
)

// AllPaymentGatewayTypes lists every gateway the platform can talk to.
// A gateway still has to be enabled in configuration to be offered.
var AllPaymentGatewayTypes = []PaymentGatewayType{
	PaymentGatewayTypePayPal,
	PaymentGatewayTypeStripe,
	PaymentGatewayTypeRazorpay,
	PaymentGatewayTypePaystack,
	PaymentGatewayTypeFlutterwave,
}

// Validate validates the payment gateway type
func (p PaymentGatewayType) Validate() error {
	switch p {
	case PaymentGatewayTypePayPal,
		PaymentGatewayTypeStripe,
		PaymentGatewayTypeRazorpay,
		PaymentGatewayTypePaystack,
		PaymentGatewayTypeFlutterwave:
		return nil
	default:
		return ierr.NewError("invalid payment gateway type").
			WithHint("Please provide a valid payment gateway type").
			WithReportableDetails(map[string]any{
				"allowed": AllPaymentGatewayTypes,
			}).
			Mark(ierr.ErrValidation)
	}
}

// String returns the string representation of the payment gateway type
func (p PaymentGatewayType) String() string {
	return string(p)
}
