package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	stripelib "github.com/stripe/stripe-go/v81"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	repository "github.com/tazecep/grocery-marketplace/internal/repositories"
	service "github.com/tazecep/grocery-marketplace/internal/services"
	"github.com/tazecep/grocery-marketplace/pkg/stripe"
)

type paymentServiceMocks struct {
	repo   *repository.MockPaymentRepository
	orders *repository.MockOrderRepository
	client *stripe.MockClient
}

func setupPaymentServiceTest() (paymentServiceMocks, service.PaymentService) {
	mocks := paymentServiceMocks{
		repo:   repository.NewMockPaymentRepository(),
		orders: repository.NewMockOrderRepository(),
		client: stripe.NewMockClient(),
	}

	paymentService := service.NewPaymentService(mocks.repo, mocks.orders, mocks.client, "try")

	return mocks, paymentService
}

func TestCreatePayment(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	order := &models.Order{
		ID:     orderID,
		UserID: userID,
		Total:  105.50,
	}

	req := &models.CreatePaymentRequest{OrderID: orderID}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mocks, paymentService := setupPaymentServiceTest()

		mocks.orders.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		mocks.client.On("CreatePaymentIntent", int64(10550), "try", "Order "+orderID.String()).
			Return(&stripelib.PaymentIntent{ID: "pi_123"}, nil).Once()
		mocks.repo.On("CreatePayment", ctx, mock.MatchedBy(func(p *models.Payment) bool {
			return p.OrderID == orderID &&
				p.UserID == userID &&
				p.Amount == order.Total &&
				p.Status == models.PaymentStatusPending &&
				p.PaymentIntentID == "pi_123"
		})).Return(nil).Once()

		// Act
		payment, err := paymentService.CreatePayment(ctx, userID, req)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, payment)
		assert.Equal(t, "try", payment.Currency)
		assert.Equal(t, "pi_123", payment.PaymentIntentID)
		mocks.repo.AssertExpectations(t)
		mocks.client.AssertExpectations(t)
	})

	t.Run("Order not found", func(t *testing.T) {
		// Arrange
		mocks, paymentService := setupPaymentServiceTest()

		mocks.orders.On("GetOrderByID", ctx, orderID).Return(nil, errors.New("no rows")).Once()

		// Act
		payment, err := paymentService.CreatePayment(ctx, userID, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, payment)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
		mocks.client.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Order belongs to another user", func(t *testing.T) {
		// Arrange
		mocks, paymentService := setupPaymentServiceTest()

		mocks.orders.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		// Act
		payment, err := paymentService.CreatePayment(ctx, uuid.New(), req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, payment)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeForbidden, appErr.Code)
		mocks.client.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Gateway failure", func(t *testing.T) {
		// Arrange
		mocks, paymentService := setupPaymentServiceTest()

		mocks.orders.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		mocks.client.On("CreatePaymentIntent", int64(10550), "try", "Order "+orderID.String()).
			Return(nil, errors.New("stripe unavailable")).Once()

		// Act
		payment, err := paymentService.CreatePayment(ctx, userID, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, payment)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeThirdPartyError, appErr.Code)
		mocks.repo.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
	})
}

func TestHandleWebhook(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"id":"evt_1"}`)
	signature := "t=1,v1=abc"

	payment := &models.Payment{
		ID:              uuid.New(),
		OrderID:         uuid.New(),
		UserID:          uuid.New(),
		PaymentIntentID: "pi_123",
		Status:          models.PaymentStatusPending,
	}

	t.Run("Payment intent succeeded", func(t *testing.T) {
		// Arrange
		mocks, paymentService := setupPaymentServiceTest()

		event := stripe.Event{
			Type: "payment_intent.succeeded",
			Data: &stripelib.EventData{Raw: []byte(`{"id":"pi_123"}`)},
		}

		mocks.client.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()
		mocks.repo.On("GetPaymentByIntentID", ctx, "pi_123").Return(payment, nil).Once()
		mocks.repo.On("UpdateStatus", ctx, payment.ID, models.PaymentStatusSucceeded, "").Return(nil).Once()

		// Act
		err := paymentService.HandleWebhook(ctx, payload, signature)

		// Assert
		require.NoError(t, err)
		mocks.repo.AssertExpectations(t)
	})

	t.Run("Payment intent failed carries gateway message", func(t *testing.T) {
		// Arrange
		mocks, paymentService := setupPaymentServiceTest()

		event := stripe.Event{
			Type: "payment_intent.payment_failed",
			Data: &stripelib.EventData{Raw: []byte(`{"id":"pi_123","last_payment_error":{"message":"card declined"}}`)},
		}

		mocks.client.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()
		mocks.repo.On("GetPaymentByIntentID", ctx, "pi_123").Return(payment, nil).Once()
		mocks.repo.On("UpdateStatus", ctx, payment.ID, models.PaymentStatusFailed, "card declined").Return(nil).Once()

		// Act
		err := paymentService.HandleWebhook(ctx, payload, signature)

		// Assert
		require.NoError(t, err)
		mocks.repo.AssertExpectations(t)
	})

	t.Run("Unknown event type is acknowledged", func(t *testing.T) {
		// Arrange
		mocks, paymentService := setupPaymentServiceTest()

		event := stripe.Event{
			Type: "customer.created",
			Data: &stripelib.EventData{Raw: []byte(`{}`)},
		}

		mocks.client.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()

		// Act
		err := paymentService.HandleWebhook(ctx, payload, signature)

		// Assert
		require.NoError(t, err)
		mocks.repo.AssertNotCalled(t, "GetPaymentByIntentID", mock.Anything, mock.Anything)
	})

	t.Run("Invalid signature", func(t *testing.T) {
		// Arrange
		mocks, paymentService := setupPaymentServiceTest()

		mocks.client.On("VerifyWebhookSignature", payload, signature).
			Return(stripe.Event{}, errors.New("signature mismatch")).Once()

		// Act
		err := paymentService.HandleWebhook(ctx, payload, signature)

		// Assert
		require.Error(t, err)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)
	})
}

func TestGetPayment(t *testing.T) {
	ctx := context.Background()
	paymentID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mocks, paymentService := setupPaymentServiceTest()

		expected := &models.Payment{ID: paymentID, Status: models.PaymentStatusSucceeded}
		mocks.repo.On("GetPaymentByID", ctx, paymentID).Return(expected, nil).Once()

		// Act
		payment, err := paymentService.GetPayment(ctx, paymentID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, expected, payment)
	})

	t.Run("Not found", func(t *testing.T) {
		// Arrange
		mocks, paymentService := setupPaymentServiceTest()

		mocks.repo.On("GetPaymentByID", ctx, paymentID).Return(nil, errors.New("no rows")).Once()

		// Act
		payment, err := paymentService.GetPayment(ctx, paymentID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, payment)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	})
}
