package sendgrid

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockEmailSender struct {
	mock.Mock
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) Send(ctx context.Context, toEmail, subject, plainContent, htmlContent string) error {
	args := m.Called(ctx, toEmail, subject, plainContent, htmlContent)

	return args.Error(0)
}
