package stripe

import (
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v81"
)

type MockClient struct {
	mock.Mock
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) CreatePaymentIntent(amountMinor int64, currency, description string) (*stripe.PaymentIntent, error) {
	args := m.Called(amountMinor, currency, description)
	if intent, ok := args.Get(0).(*stripe.PaymentIntent); ok {
		return intent, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockClient) GetPaymentIntent(paymentIntentID string) (*stripe.PaymentIntent, error) {
	args := m.Called(paymentIntentID)
	if intent, ok := args.Get(0).(*stripe.PaymentIntent); ok {
		return intent, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	args := m.Called(payload, signature)
	event, _ := args.Get(0).(Event)

	return event, args.Error(1)
}
