package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tazecep/grocery-marketplace/internal/api/middleware"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/metrics"
	"github.com/tazecep/grocery-marketplace/internal/models"
	service "github.com/tazecep/grocery-marketplace/internal/services"
	"github.com/tazecep/grocery-marketplace/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

func (h *OrderHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req models.CreateOrderRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		order, err := h.orderService.CreateOrder(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		metrics.ObserveOrderPlaced()
		middleware.LoggerFromContext(r.Context()).Info("Order placed",
			slog.String("orderId", order.ID.String()),
			slog.Float64("total", order.Total))
		response.Success(w, http.StatusCreated, order)
	}
}

func (h *OrderHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		// Customers only see their own orders, vendors only orders
		// routed to them. Admins see everything.
		switch claims.Role {
		case models.RoleAdmin:
		case models.RoleVendor:
			if order.VendorID != claims.UserID {
				response.Error(w, apperrors.ForbiddenError("Order is routed to another vendor"))

				return
			}
		default:
			if order.UserID != claims.UserID {
				response.Error(w, apperrors.NotFoundError("Order not found"))

				return
			}
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListMine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		orders, err := h.orderService.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// ListForVendor returns the vendor's incoming orders, optionally
// filtered by status.
func (h *OrderHandler) ListForVendor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		orders, err := h.orderService.ListByVendor(r.Context(), claims.UserID, r.URL.Query().Get("status"))
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// UpdateStatus lets a vendor move one of their own orders through the
// lifecycle. Orders routed to other vendors are rejected.
func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		var req models.UpdateOrderStatusRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), id, claims.UserID, req.Status)
		if err != nil {
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Order status updated",
			slog.String("orderId", order.ID.String()),
			slog.String("status", order.Status))
		response.Success(w, http.StatusOK, order)
	}
}

// Cancel is the customer-facing shortcut for moving their own order to
// cancelled.
func (h *OrderHandler) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		order, err := h.orderService.Cancel(r.Context(), id, claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}
