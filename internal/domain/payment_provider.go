package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentIntent is the provider-side handle for a charge in progress. The
// client secret is handed to the frontend to complete the payment.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, metadata map[string]string) (*PaymentIntent, error)

	// VerifyPayment confirms with the provider that the referenced charge
	// succeeded and that the paid amount covers the given total. A payment
	// reference is never trusted without this check.
	VerifyPayment(ctx context.Context, paymentRef string, total decimal.Decimal) error
}
