package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	repository "github.com/tazecep/grocery-marketplace/internal/repositories"
	service "github.com/tazecep/grocery-marketplace/internal/services"
)

type orderServiceMocks struct {
	repo          *repository.MockOrderRepository
	carts         *service.MockCartService
	checkout      *service.MockCheckoutService
	products      *service.MockProductService
	notifications *service.MockNotificationService
}

func setupOrderServiceTest() (orderServiceMocks, service.OrderService) {
	mocks := orderServiceMocks{
		repo:          repository.NewMockOrderRepository(),
		carts:         service.NewMockCartService(),
		checkout:      service.NewMockCheckoutService(),
		products:      service.NewMockProductService(),
		notifications: service.NewMockNotificationService(),
	}

	orderService := service.NewOrderService(mocks.repo, mocks.carts, mocks.checkout, mocks.products, mocks.notifications)

	return mocks, orderService
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	vendorID := uuid.New()
	productID := uuid.New()

	cart := &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []models.CartLine{{ProductID: productID, Quantity: 2, UnitPrice: 50}},
	}
	cart.Recalculate()

	quote := &models.CheckoutQuote{
		Subtotal:       100,
		Savings:        25,
		CouponDiscount: 20,
		DeliveryFee:    15,
		GiftWrapFee:    0,
		Total:          95,
	}

	snapshot := &models.ProductSnapshot{ProductID: productID, Name: "Organic Tomatoes", Price: 50, Stock: 10, IsAvailable: true}

	req := &models.CreateOrderRequest{
		VendorID:        vendorID,
		CouponCode:      "INDIRIM20",
		DeliveryAddress: "Moda Cd. 12, Kadikoy",
		Phone:           "+905551112233",
		DeliveryType:    models.DeliveryTypePlatform,
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mocks, orderService := setupOrderServiceTest()
		mocks.carts.On("GetCart", ctx, userID).Return(cart, nil).Once()
		mocks.checkout.On("Quote", ctx, userID, "INDIRIM20", "").Return(quote, nil).Once()
		mocks.products.On("GetSnapshot", ctx, productID).Return(snapshot, nil).Once()
		mocks.products.On("ReserveStock", ctx, productID, 2).Return(nil).Once()
		mocks.repo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil).Once()
		mocks.carts.On("ClearCart", ctx, userID).Return(&models.Cart{}, nil).Once()

		// Act
		order, err := orderService.CreateOrder(ctx, userID, req)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, userID, order.UserID)
		assert.Equal(t, vendorID, order.VendorID)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.InDelta(t, 95.0, order.Total, 0.001)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Organic Tomatoes", order.Items[0].ProductName)
		assert.InDelta(t, 100.0, order.Items[0].Total, 0.001)
		mocks.repo.AssertExpectations(t)
		mocks.carts.AssertExpectations(t)
		mocks.products.AssertExpectations(t)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		mocks, orderService := setupOrderServiceTest()
		empty := &models.Cart{ID: uuid.New(), UserID: userID, Items: []models.CartLine{}}
		mocks.carts.On("GetCart", ctx, userID).Return(empty, nil).Once()

		// Act
		order, err := orderService.CreateOrder(ctx, userID, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
		mocks.repo.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("Failure - Stock Reservation Fails", func(t *testing.T) {
		// Arrange
		mocks, orderService := setupOrderServiceTest()
		mocks.carts.On("GetCart", ctx, userID).Return(cart, nil).Once()
		mocks.checkout.On("Quote", ctx, userID, "INDIRIM20", "").Return(quote, nil).Once()
		mocks.products.On("GetSnapshot", ctx, productID).Return(snapshot, nil).Once()
		mocks.products.On("ReserveStock", ctx, productID, 2).
			Return(apperrors.OutOfStockError("Not enough stock for requested quantity")).Once()

		// Act
		order, err := orderService.CreateOrder(ctx, userID, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeOutOfStock, appErr.Code)
		mocks.repo.AssertNotCalled(t, "CreateOrder")
		mocks.carts.AssertNotCalled(t, "ClearCart")
		mocks.products.AssertNotCalled(t, "ReleaseStock")
	})

	t.Run("Failure - Partial Reservation Is Released", func(t *testing.T) {
		// Arrange: two lines, the second one runs out of stock
		mocks, orderService := setupOrderServiceTest()
		secondProductID := uuid.New()
		twoLineCart := &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: []models.CartLine{
				{ProductID: productID, Quantity: 2, UnitPrice: 50},
				{ProductID: secondProductID, Quantity: 3, UnitPrice: 10},
			},
		}
		twoLineCart.Recalculate()

		secondSnapshot := &models.ProductSnapshot{ProductID: secondProductID, Name: "Fresh Basil", Price: 10, Stock: 5, IsAvailable: true}

		mocks.carts.On("GetCart", ctx, userID).Return(twoLineCart, nil).Once()
		mocks.checkout.On("Quote", ctx, userID, "INDIRIM20", "").Return(quote, nil).Once()
		mocks.products.On("GetSnapshot", ctx, productID).Return(snapshot, nil).Once()
		mocks.products.On("GetSnapshot", ctx, secondProductID).Return(secondSnapshot, nil).Once()
		mocks.products.On("ReserveStock", ctx, productID, 2).Return(nil).Once()
		mocks.products.On("ReserveStock", ctx, secondProductID, 3).
			Return(apperrors.OutOfStockError("Not enough stock for requested quantity")).Once()
		mocks.products.On("ReleaseStock", ctx, productID, 2).Return(nil).Once()

		// Act
		order, err := orderService.CreateOrder(ctx, userID, req)

		// Assert
		require.Error(t, err)
		assert.Nil(t, order)
		mocks.repo.AssertNotCalled(t, "CreateOrder")
		mocks.carts.AssertNotCalled(t, "ClearCart")
		mocks.products.AssertExpectations(t)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	userID := uuid.New()
	vendorID := uuid.New()

	t.Run("Success - Valid Transition Notifies Customer", func(t *testing.T) {
		// Arrange
		mocks, orderService := setupOrderServiceTest()
		order := &models.Order{ID: orderID, UserID: userID, VendorID: vendorID, Status: models.OrderStatusPending}
		mocks.repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		mocks.repo.On("UpdateStatus", ctx, orderID, models.OrderStatusAccepted).Return(nil).Once()
		mocks.notifications.On("NotifyOrderStatus", ctx, userID, orderID, models.OrderStatusAccepted).Return(nil).Once()

		// Act
		updated, err := orderService.UpdateStatus(ctx, orderID, vendorID, models.OrderStatusAccepted)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusAccepted, updated.Status)
		mocks.repo.AssertExpectations(t)
		mocks.notifications.AssertExpectations(t)
	})

	t.Run("Success - Notification Failure Does Not Fail Update", func(t *testing.T) {
		// Arrange
		mocks, orderService := setupOrderServiceTest()
		order := &models.Order{ID: orderID, UserID: userID, VendorID: vendorID, Status: models.OrderStatusReady}
		mocks.repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		mocks.repo.On("UpdateStatus", ctx, orderID, models.OrderStatusDelivering).Return(nil).Once()
		mocks.notifications.On("NotifyOrderStatus", ctx, userID, orderID, models.OrderStatusDelivering).
			Return(errors.New("smtp down")).Once()

		// Act
		updated, err := orderService.UpdateStatus(ctx, orderID, vendorID, models.OrderStatusDelivering)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusDelivering, updated.Status)
		mocks.repo.AssertExpectations(t)
	})

	t.Run("Failure - Another Vendor's Order Is Forbidden", func(t *testing.T) {
		// Arrange: the order is routed to a different vendor
		mocks, orderService := setupOrderServiceTest()
		order := &models.Order{ID: orderID, UserID: userID, VendorID: uuid.New(), Status: models.OrderStatusPending}
		mocks.repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		// Act
		updated, err := orderService.UpdateStatus(ctx, orderID, vendorID, models.OrderStatusAccepted)

		// Assert
		require.Error(t, err)
		assert.Nil(t, updated)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeForbidden, appErr.Code)
		mocks.repo.AssertNotCalled(t, "UpdateStatus")
		mocks.notifications.AssertNotCalled(t, "NotifyOrderStatus")
	})

	t.Run("Failure - Invalid Transition", func(t *testing.T) {
		// Arrange: completed is terminal
		mocks, orderService := setupOrderServiceTest()
		order := &models.Order{ID: orderID, UserID: userID, VendorID: vendorID, Status: models.OrderStatusCompleted}
		mocks.repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		// Act
		updated, err := orderService.UpdateStatus(ctx, orderID, vendorID, models.OrderStatusPending)

		// Assert
		require.Error(t, err)
		assert.Nil(t, updated)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
		mocks.repo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Failure - Skipping A Step Is Rejected", func(t *testing.T) {
		// Arrange: pending cannot jump straight to delivering
		mocks, orderService := setupOrderServiceTest()
		order := &models.Order{ID: orderID, UserID: userID, VendorID: vendorID, Status: models.OrderStatusPending}
		mocks.repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		// Act
		updated, err := orderService.UpdateStatus(ctx, orderID, vendorID, models.OrderStatusDelivering)

		// Assert
		require.Error(t, err)
		assert.Nil(t, updated)
		mocks.repo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Success - Vendor Cancellation From Any Active State", func(t *testing.T) {
		// Arrange
		mocks, orderService := setupOrderServiceTest()
		order := &models.Order{ID: orderID, UserID: userID, VendorID: vendorID, Status: models.OrderStatusPreparing}
		mocks.repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		mocks.repo.On("UpdateStatus", ctx, orderID, models.OrderStatusCancelled).Return(nil).Once()
		mocks.notifications.On("NotifyOrderStatus", ctx, userID, orderID, models.OrderStatusCancelled).Return(nil).Once()

		// Act
		updated, err := orderService.UpdateStatus(ctx, orderID, vendorID, models.OrderStatusCancelled)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, updated.Status)
		mocks.repo.AssertExpectations(t)
	})

	t.Run("Failure - Order Not Found", func(t *testing.T) {
		// Arrange
		mocks, orderService := setupOrderServiceTest()
		mocks.repo.On("GetOrderByID", ctx, orderID).Return(nil, sql.ErrNoRows).Once()

		// Act
		updated, err := orderService.UpdateStatus(ctx, orderID, vendorID, models.OrderStatusAccepted)

		// Assert
		require.Error(t, err)
		assert.Nil(t, updated)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	userID := uuid.New()

	t.Run("Success - Owner Cancels Pending Order", func(t *testing.T) {
		// Arrange
		mocks, orderService := setupOrderServiceTest()
		order := &models.Order{ID: orderID, UserID: userID, VendorID: uuid.New(), Status: models.OrderStatusPending}
		mocks.repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		mocks.repo.On("UpdateStatus", ctx, orderID, models.OrderStatusCancelled).Return(nil).Once()
		mocks.notifications.On("NotifyOrderStatus", ctx, userID, orderID, models.OrderStatusCancelled).Return(nil).Once()

		// Act
		cancelled, err := orderService.Cancel(ctx, orderID, userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
		mocks.repo.AssertExpectations(t)
	})

	t.Run("Failure - Another Customer's Order Stays Hidden", func(t *testing.T) {
		// Arrange
		mocks, orderService := setupOrderServiceTest()
		order := &models.Order{ID: orderID, UserID: uuid.New(), VendorID: uuid.New(), Status: models.OrderStatusPending}
		mocks.repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		// Act
		cancelled, err := orderService.Cancel(ctx, orderID, userID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, cancelled)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
		mocks.repo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Failure - Completed Order Cannot Be Cancelled", func(t *testing.T) {
		// Arrange
		mocks, orderService := setupOrderServiceTest()
		order := &models.Order{ID: orderID, UserID: userID, VendorID: uuid.New(), Status: models.OrderStatusCompleted}
		mocks.repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		// Act
		cancelled, err := orderService.Cancel(ctx, orderID, userID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, cancelled)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
		mocks.repo.AssertNotCalled(t, "UpdateStatus")
	})
}
