package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	service "github.com/tazecep/grocery-marketplace/internal/services"
)

func setupCheckoutServiceTest() (*service.MockCartService, *service.MockProductService, service.CheckoutService) {
	mockCarts := service.NewMockCartService()
	mockProducts := service.NewMockProductService()
	checkoutService := service.NewCheckoutService(mockCarts, mockProducts)

	return mockCarts, mockProducts, checkoutService
}

func TestQuote(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	cart := &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []models.CartLine{{ProductID: productID, Quantity: 2, UnitPrice: 50}},
	}
	cart.Recalculate()

	snapshot := &models.ProductSnapshot{
		ProductID:          productID,
		Name:               "Organic Tomatoes",
		Price:              50,
		Stock:              10,
		DiscountPercentage: 20,
		IsAvailable:        true,
	}

	t.Run("Success - Full Breakdown With Percentage Coupon", func(t *testing.T) {
		// Arrange
		mockCarts, mockProducts, checkoutService := setupCheckoutServiceTest()
		mockCarts.On("GetCart", ctx, userID).Return(cart, nil).Once()
		mockProducts.On("GetSnapshot", ctx, productID).Return(snapshot, nil).Once()

		// Act
		quote, err := checkoutService.Quote(ctx, userID, "INDIRIM20", "")

		// Assert: 2x50 at 20% off list, 20% coupon, sub-100 delivery tier
		require.NoError(t, err)
		assert.InDelta(t, 100.0, quote.Subtotal, 0.001)
		assert.InDelta(t, 25.0, quote.Savings, 0.001)
		assert.InDelta(t, 20.0, quote.CouponDiscount, 0.001)
		assert.InDelta(t, 15.0, quote.DeliveryFee, 0.001)
		assert.InDelta(t, 0.0, quote.GiftWrapFee, 0.001)
		assert.InDelta(t, 95.0, quote.Total, 0.001)
		mockCarts.AssertExpectations(t)
		mockProducts.AssertExpectations(t)
	})

	t.Run("Success - Gift Wrap Fee Included", func(t *testing.T) {
		// Arrange
		mockCarts, mockProducts, checkoutService := setupCheckoutServiceTest()
		mockCarts.On("GetCart", ctx, userID).Return(cart, nil).Once()
		mockProducts.On("GetSnapshot", ctx, productID).Return(snapshot, nil).Once()

		// Act
		quote, err := checkoutService.Quote(ctx, userID, "", "premium")

		// Assert
		require.NoError(t, err)
		require.NotNil(t, quote.GiftWrap)
		assert.Equal(t, "premium", quote.GiftWrap.ID)
		assert.InDelta(t, 10.0, quote.GiftWrapFee, 0.001)
		assert.InDelta(t, 120.0, quote.Total, 0.001)
		mockCarts.AssertExpectations(t)
	})

	t.Run("Success - None Gift Wrap Charges Nothing", func(t *testing.T) {
		// Arrange
		mockCarts, mockProducts, checkoutService := setupCheckoutServiceTest()
		mockCarts.On("GetCart", ctx, userID).Return(cart, nil).Once()
		mockProducts.On("GetSnapshot", ctx, productID).Return(snapshot, nil).Once()

		// Act
		quote, err := checkoutService.Quote(ctx, userID, "", "none")

		// Assert
		require.NoError(t, err)
		assert.Nil(t, quote.GiftWrap)
		assert.InDelta(t, 0.0, quote.GiftWrapFee, 0.001)
		mockCarts.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Coupon", func(t *testing.T) {
		// Arrange
		mockCarts, mockProducts, checkoutService := setupCheckoutServiceTest()
		mockCarts.On("GetCart", ctx, userID).Return(cart, nil).Once()
		mockProducts.On("GetSnapshot", ctx, productID).Return(snapshot, nil).Once()

		// Act
		quote, err := checkoutService.Quote(ctx, userID, "BEDAVA99", "")

		// Assert
		require.Error(t, err)
		assert.Nil(t, quote)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeInvalidCoupon, appErr.Code)
		mockCarts.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Gift Wrap", func(t *testing.T) {
		// Arrange
		mockCarts, mockProducts, checkoutService := setupCheckoutServiceTest()
		mockCarts.On("GetCart", ctx, userID).Return(cart, nil).Once()
		mockProducts.On("GetSnapshot", ctx, productID).Return(snapshot, nil).Once()

		// Act
		quote, err := checkoutService.Quote(ctx, userID, "", "golden")

		// Assert
		require.Error(t, err)
		assert.Nil(t, quote)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
		mockCarts.AssertExpectations(t)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		mockCarts, _, checkoutService := setupCheckoutServiceTest()
		empty := &models.Cart{ID: uuid.New(), UserID: userID, Items: []models.CartLine{}}
		mockCarts.On("GetCart", ctx, userID).Return(empty, nil).Once()

		// Act
		quote, err := checkoutService.Quote(ctx, userID, "", "")

		// Assert
		require.Error(t, err)
		assert.Nil(t, quote)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
		mockCarts.AssertExpectations(t)
	})

	t.Run("Success - Missing Snapshot Contributes No Savings", func(t *testing.T) {
		// Arrange: product was deleted after being carted
		mockCarts, mockProducts, checkoutService := setupCheckoutServiceTest()
		mockCarts.On("GetCart", ctx, userID).Return(cart, nil).Once()
		mockProducts.On("GetSnapshot", ctx, productID).
			Return(nil, apperrors.NotFoundError("Product not found")).Once()

		// Act
		quote, err := checkoutService.Quote(ctx, userID, "", "")

		// Assert: subtotal still uses the carted unit price
		require.NoError(t, err)
		assert.InDelta(t, 100.0, quote.Subtotal, 0.001)
		assert.InDelta(t, 0.0, quote.Savings, 0.001)
		mockCarts.AssertExpectations(t)
	})
}
