package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tazecep/grocery-marketplace/internal/catalog"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	"github.com/tazecep/grocery-marketplace/internal/pricing"
)

type CheckoutService interface {
	Quote(ctx context.Context, userID uuid.UUID, couponCode, giftWrapID string) (*models.CheckoutQuote, error)
}

type checkoutService struct {
	carts    CartService
	products ProductService
}

func NewCheckoutService(carts CartService, products ProductService) CheckoutService {
	return &checkoutService{carts: carts, products: products}
}

// Quote prices the user's current cart with the selected modifiers. The
// breakdown is computed fresh on every call; nothing is persisted.
func (s *checkoutService) Quote(ctx context.Context, userID uuid.UUID, couponCode, giftWrapID string) (*models.CheckoutQuote, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, apperrors.BadRequestError("Cart is empty")
	}

	snapshots := make(map[uuid.UUID]*models.ProductSnapshot, len(cart.Items))

	for _, line := range cart.Items {
		snapshot, err := s.products.GetSnapshot(ctx, line.ProductID)
		if err != nil {
			// A product deleted after it was added to the cart simply
			// contributes no savings line.
			continue
		}

		snapshots[line.ProductID] = snapshot
	}

	var coupon *models.Coupon

	if couponCode != "" {
		found, ok := catalog.LookupCoupon(couponCode)
		if !ok {
			return nil, apperrors.InvalidCouponError("Unknown coupon code")
		}

		coupon = &found
	}

	var giftWrap *models.GiftWrapOption

	if giftWrapID != "" {
		option, ok := catalog.LookupGiftWrap(giftWrapID)
		if !ok {
			return nil, apperrors.BadRequestError("Unknown gift wrap option")
		}

		giftWrap = option
	}

	quote, err := pricing.Quote(cart.Items, snapshots, coupon, giftWrap)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidDiscount) {
			return nil, apperrors.InternalError("Product has an invalid discount").WithError(err)
		}

		return nil, apperrors.InternalError("Failed to price cart").WithError(err)
	}

	return quote, nil
}
