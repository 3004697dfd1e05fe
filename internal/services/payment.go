package service

import (
	"context"
	"encoding/json"
	"math"

	"github.com/google/uuid"
	stripelib "github.com/stripe/stripe-go/v81"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	repository "github.com/tazecep/grocery-marketplace/internal/repositories"
	"github.com/tazecep/grocery-marketplace/pkg/stripe"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, userID uuid.UUID, req *models.CreatePaymentRequest) (*models.Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListPayments(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	repo     repository.PaymentRepository
	orders   repository.OrderRepository
	client   stripe.Client
	currency string
}

func NewPaymentService(repo repository.PaymentRepository, orders repository.OrderRepository, client stripe.Client, currency string) PaymentService {
	return &paymentService{
		repo:     repo,
		orders:   orders,
		client:   client,
		currency: currency,
	}
}

// CreatePayment opens a payment intent for the order total. The amount is
// converted to the currency's minor unit for the gateway.
func (s *paymentService) CreatePayment(ctx context.Context, userID uuid.UUID, req *models.CreatePaymentRequest) (*models.Payment, error) {
	order, err := s.orders.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		return nil, apperrors.NotFoundError("Order not found").WithError(err)
	}

	if order.UserID != userID {
		return nil, apperrors.ForbiddenError("Order belongs to another user")
	}

	if order.Total <= 0 {
		return nil, apperrors.BadRequestError("Order total must be positive")
	}

	amountMinor := int64(math.Round(order.Total * 100))

	intent, err := s.client.CreatePaymentIntent(amountMinor, s.currency, "Order "+order.ID.String())
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to create payment intent").WithError(err)
	}

	payment := &models.Payment{
		ID:              uuid.New(),
		OrderID:         order.ID,
		UserID:          userID,
		Amount:          order.Total,
		Currency:        s.currency,
		Status:          models.PaymentStatusPending,
		PaymentIntentID: intent.ID,
	}

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, apperrors.DatabaseError("Failed to record payment").WithError(err)
	}

	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.repo.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundError("Payment not found").WithError(err)
	}

	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error) {
	payments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch payments").WithError(err)
	}

	return payments, nil
}

// HandleWebhook settles the payment record from the gateway callback.
// Unknown event types are acknowledged and ignored.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.client.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return apperrors.UnauthorizedError("Invalid webhook signature").WithError(err)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		return s.settle(ctx, event, models.PaymentStatusSucceeded, "")
	case "payment_intent.payment_failed":
		return s.settle(ctx, event, models.PaymentStatusFailed, "payment failed at gateway")
	default:
		return nil
	}
}

func (s *paymentService) settle(ctx context.Context, event stripe.Event, status, failureReason string) error {
	var intent stripelib.PaymentIntent

	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return apperrors.BadRequestError("Malformed webhook payload").WithError(err)
	}

	payment, err := s.repo.GetPaymentByIntentID(ctx, intent.ID)
	if err != nil {
		return apperrors.NotFoundError("Payment not found for intent").WithError(err)
	}

	if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
		failureReason = intent.LastPaymentError.Msg
	}

	if err := s.repo.UpdateStatus(ctx, payment.ID, status, failureReason); err != nil {
		return apperrors.DatabaseError("Failed to update payment status").WithError(err)
	}

	return nil
}
