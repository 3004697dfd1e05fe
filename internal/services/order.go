package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tazecep/grocery-marketplace/internal/api/middleware"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	repository "github.com/tazecep/grocery-marketplace/internal/repositories"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, status string) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, orderID, vendorID uuid.UUID, newStatus string) (*models.Order, error)
	Cancel(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
}

type orderService struct {
	repo          repository.OrderRepository
	carts         CartService
	checkout      CheckoutService
	products      ProductService
	notifications NotificationService
}

func NewOrderService(repo repository.OrderRepository, carts CartService, checkout CheckoutService, products ProductService, notifications NotificationService) OrderService {
	return &orderService{
		repo:          repo,
		carts:         carts,
		checkout:      checkout,
		products:      products,
		notifications: notifications,
	}
}

// CreateOrder turns the current cart into an order: it reprices the cart
// with the selected modifiers, reserves stock, persists the order and
// finally empties the cart.
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, apperrors.BadRequestError("Cart is empty")
	}

	quote, err := s.checkout.Quote(ctx, userID, req.CouponCode, req.GiftWrapID)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(cart.Items))

	for _, line := range cart.Items {
		item := models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
			Total:     line.LineTotal(),
		}

		// Snapshots are warm in the cache after the quote above.
		if snapshot, err := s.products.GetSnapshot(ctx, line.ProductID); err == nil {
			item.ProductName = snapshot.Name
		}

		items = append(items, item)
	}

	reserved := make([]models.CartLine, 0, len(cart.Items))

	for _, line := range cart.Items {
		if err := s.products.ReserveStock(ctx, line.ProductID, line.Quantity); err != nil {
			s.releaseReserved(ctx, reserved)

			return nil, err
		}

		reserved = append(reserved, line)
	}

	order := &models.Order{
		ID:                uuid.New(),
		UserID:            userID,
		VendorID:          req.VendorID,
		Items:             items,
		Subtotal:          quote.Subtotal,
		CouponCode:        req.CouponCode,
		CouponDiscount:    quote.CouponDiscount,
		DeliveryFee:       quote.DeliveryFee,
		GiftWrapID:        req.GiftWrapID,
		GiftWrapFee:       quote.GiftWrapFee,
		Total:             quote.Total,
		DeliveryAddress:   req.DeliveryAddress,
		DeliveryLatitude:  req.DeliveryLatitude,
		DeliveryLongitude: req.DeliveryLongitude,
		Phone:             req.Phone,
		Status:            models.OrderStatusPending,
		DeliveryType:      req.DeliveryType,
		Notes:             req.Notes,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, apperrors.DatabaseError("Failed to create order").WithError(err)
	}

	if _, err := s.carts.ClearCart(ctx, userID); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Order created but cart clear failed",
			slog.String("orderId", order.ID.String()), slog.Any("error", err))
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.NotFoundError("Order not found").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, nil
}

func (s *orderService) ListByVendor(ctx context.Context, vendorID uuid.UUID, status string) ([]*models.Order, error) {
	orders, err := s.repo.ListByVendor(ctx, vendorID, status)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch vendor orders").WithError(err)
	}

	return orders, nil
}

// releaseReserved undoes the stock already taken when a later line in
// the same order fails to reserve.
func (s *orderService) releaseReserved(ctx context.Context, lines []models.CartLine) {
	for _, line := range lines {
		if err := s.products.ReleaseStock(ctx, line.ProductID, line.Quantity); err != nil {
			middleware.LoggerFromContext(ctx).Warn("Stock release failed",
				slog.String("productId", line.ProductID.String()), slog.Any("error", err))
		}
	}
}

// UpdateStatus enforces the order lifecycle for the vendor the order is
// routed to and notifies the customer on every accepted transition.
// A failed notification never fails the update.
func (s *orderService) UpdateStatus(ctx context.Context, orderID, vendorID uuid.UUID, newStatus string) (*models.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.NotFoundError("Order not found").WithError(err)
	}

	if order.VendorID != vendorID {
		return nil, apperrors.ForbiddenError("Order belongs to another vendor")
	}

	return s.transition(ctx, order, newStatus)
}

// Cancel moves the customer's own order to cancelled.
func (s *orderService) Cancel(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.NotFoundError("Order not found").WithError(err)
	}

	// Other users' orders stay invisible rather than forbidden.
	if order.UserID != userID {
		return nil, apperrors.NotFoundError("Order not found")
	}

	return s.transition(ctx, order, models.OrderStatusCancelled)
}

func (s *orderService) transition(ctx context.Context, order *models.Order, newStatus string) (*models.Order, error) {
	if !models.CanTransitionOrder(order.Status, newStatus) {
		return nil, apperrors.BadRequestError("Invalid status transition").
			WithDetail(order.Status + " -> " + newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, newStatus); err != nil {
		return nil, apperrors.DatabaseError("Failed to update order status").WithError(err)
	}

	order.Status = newStatus

	if err := s.notifications.NotifyOrderStatus(ctx, order.UserID, order.ID, newStatus); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Order status notification failed",
			slog.String("orderId", order.ID.String()), slog.Any("error", err))
	}

	return order, nil
}
