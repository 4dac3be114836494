package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/showxpress/movie-ticket-booking/internal/domain"
)

type MockPaymentProvider struct {
	VerifyErr error
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

func (m *MockPaymentProvider) CreatePaymentIntent(
	ctx context.Context,
	amount decimal.Decimal,
	metadata map[string]string) (*domain.PaymentIntent, error) {

	return &domain.PaymentIntent{
		ID:           "pi_mock",
		ClientSecret: "pi_mock_secret",
	}, nil
}

func (m *MockPaymentProvider) VerifyPayment(ctx context.Context, paymentRef string, total decimal.Decimal) error {
	return m.VerifyErr
}
