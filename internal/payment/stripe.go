package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

const currency = string(stripe.CurrencyINR)

// StripePaymentProvider drives the payment-intent lifecycle. Amounts are
// converted to the currency's smallest unit on the wire.
type StripePaymentProvider struct{}

func NewStripePaymentProvider() *StripePaymentProvider {
	return &StripePaymentProvider{}
}

func (s *StripePaymentProvider) CreatePaymentIntent(
	ctx context.Context,
	amount decimal.Decimal,
	metadata map[string]string) (*domain.PaymentIntent, error) {

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("always"),
		},
		Metadata: metadata,
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}

	return &domain.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// VerifyPayment retrieves the referenced intent from Stripe and accepts it
// only when the charge succeeded and the paid amount covers the booking
// total. The reference string alone proves nothing.
func (s *StripePaymentProvider) VerifyPayment(ctx context.Context, paymentRef string, total decimal.Decimal) error {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := paymentintent.Get(paymentRef, params)
	if err != nil {
		return err
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return domain.ErrPaymentNotCompleted
	}

	if intent.Amount < toMinorUnits(total) {
		return domain.ErrPaymentAmountTooLow
	}

	return nil
}

func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}
