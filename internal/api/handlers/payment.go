package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tazecep/grocery-marketplace/internal/api/middleware"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	service "github.com/tazecep/grocery-marketplace/internal/services"
	"github.com/tazecep/grocery-marketplace/internal/utils/response"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: validator.New()}
}

func (h *PaymentHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req models.CreatePaymentRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		payment, err := h.paymentService.CreatePayment(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Payment intent created",
			slog.String("paymentId", payment.ID.String()),
			slog.String("orderId", payment.OrderID.String()))
		response.Success(w, http.StatusCreated, payment)
	}
}

func (h *PaymentHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		payment, err := h.paymentService.GetPayment(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		if claims.Role != models.RoleAdmin && payment.UserID != claims.UserID {
			response.Error(w, apperrors.NotFoundError("Payment not found"))

			return
		}

		response.Success(w, http.StatusOK, payment)
	}
}

func (h *PaymentHandler) ListMine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		payments, err := h.paymentService.ListPayments(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, payments)
	}
}

// Webhook receives gateway callbacks. The raw body is needed for
// signature verification, so this endpoint bypasses the JSON helpers.
func (h *PaymentHandler) Webhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			response.Error(w, apperrors.BadRequestError("Failed to read webhook payload"))

			return
		}
		defer r.Body.Close()

		if err := h.paymentService.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
			logger.Warn("Webhook processing failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"received": "true"})
	}
}
