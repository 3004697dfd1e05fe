// Package pricing computes the checkout price breakdown: per-line savings
// from product discounts, coupon reduction, tiered delivery fee, gift wrap
// fee and the grand total. Everything here is pure and deterministic; money
// math runs on decimals and converts to float64 only at the boundary.
package pricing

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tazecep/grocery-marketplace/internal/models"
)

// ErrInvalidDiscount flags a discount percentage at or above 100. The
// original-price calculation divides by (1 - discount/100), so a full
// discount has no defined original price. Whether 100% is a legal product
// state is a product decision; until then it is rejected, not clamped.
var ErrInvalidDiscount = errors.New("pricing: discount percentage must be below 100")

// Delivery fee tiers on the coupon-adjusted subtotal.
const (
	deliveryFeeBase  = 15.0
	deliveryFeeMid   = 10.0
	deliveryTierMid  = 100.0
	deliveryTierFree = 200.0
)

var hundred = decimal.NewFromInt(100)

// Subtotal is the cart total: sum of quantity times snapshotted unit price.
func Subtotal(lines []models.CartLine) float64 {
	total := decimal.Zero

	for _, line := range lines {
		lineTotal := decimal.NewFromFloat(line.UnitPrice).Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
	}

	result, _ := total.Float64()

	return result
}

// Savings sums, over all lines whose snapshot carries a discount, the
// difference between the original price and the discounted price times the
// quantity. Lines without a snapshot contribute nothing; a discount of
// 100 or more fails with ErrInvalidDiscount.
func Savings(lines []models.CartLine, snapshots map[uuid.UUID]*models.ProductSnapshot) (float64, error) {
	savings := decimal.Zero

	for _, line := range lines {
		snap, ok := snapshots[line.ProductID]
		if !ok || snap.DiscountPercentage <= 0 {
			continue
		}

		if snap.DiscountPercentage >= 100 {
			return 0, ErrInvalidDiscount
		}

		price := decimal.NewFromFloat(snap.Price)
		discount := decimal.NewFromFloat(snap.DiscountPercentage)

		// original = price / (1 - discount/100)
		original := price.Div(decimal.NewFromInt(1).Sub(discount.Div(hundred)))
		perUnit := original.Sub(price)
		savings = savings.Add(perUnit.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	result, _ := savings.Float64()

	return result, nil
}

// CouponDiscount resolves the coupon against the subtotal. A fixed coupon
// is intentionally not clamped to the subtotal: a 50-lira coupon on a
// 30-lira cart yields a negative total, matching current storefront
// behavior.
func CouponDiscount(subtotal float64, coupon *models.Coupon) float64 {
	if coupon == nil {
		return 0
	}

	if coupon.Type == models.CouponTypePercentage {
		result, _ := decimal.NewFromFloat(subtotal).
			Mul(decimal.NewFromFloat(coupon.Discount)).
			Div(hundred).
			Float64()

		return result
	}

	return coupon.Discount
}

// DeliveryFee tiers on the coupon-adjusted cart total: below 100 costs 15,
// below 200 costs 10, 200 and above ships free.
func DeliveryFee(amount float64) float64 {
	switch {
	case amount < deliveryTierMid:
		return deliveryFeeBase
	case amount < deliveryTierFree:
		return deliveryFeeMid
	default:
		return 0
	}
}

// VendorDeliveryFee is the distance-based estimate shown on vendor cards.
// It is a separate tier table from DeliveryFee and the two are not
// reconciled; checkout always uses DeliveryFee.
func VendorDeliveryFee(distanceKm float64) float64 {
	switch {
	case distanceKm <= 0:
		return 15
	case distanceKm <= 3:
		return 10
	case distanceKm <= 5:
		return 15
	case distanceKm <= 10:
		return 20
	default:
		return 25
	}
}

// GiftWrapFee is the selected option's price, or 0 when nothing is selected.
func GiftWrapFee(option *models.GiftWrapOption) float64 {
	if option == nil {
		return 0
	}

	return option.Price
}

// Quote derives the full checkout breakdown from the cart lines and the
// selected modifiers:
//
//	total = subtotal - coupon discount + delivery fee + gift wrap fee
//
// The computation has no side effects and is recomputed on every call.
func Quote(lines []models.CartLine, snapshots map[uuid.UUID]*models.ProductSnapshot, coupon *models.Coupon, giftWrap *models.GiftWrapOption) (*models.CheckoutQuote, error) {
	subtotal := Subtotal(lines)

	savings, err := Savings(lines, snapshots)
	if err != nil {
		return nil, err
	}

	couponDiscount := CouponDiscount(subtotal, coupon)
	deliveryFee := DeliveryFee(subtotal - couponDiscount)
	giftWrapFee := GiftWrapFee(giftWrap)

	total, _ := decimal.NewFromFloat(subtotal).
		Sub(decimal.NewFromFloat(couponDiscount)).
		Add(decimal.NewFromFloat(deliveryFee)).
		Add(decimal.NewFromFloat(giftWrapFee)).
		Float64()

	return &models.CheckoutQuote{
		Subtotal:       subtotal,
		Savings:        savings,
		Coupon:         coupon,
		CouponDiscount: couponDiscount,
		DeliveryFee:    deliveryFee,
		GiftWrap:       giftWrap,
		GiftWrapFee:    giftWrapFee,
		Total:          total,
	}, nil
}
