package models

const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// Coupon resolves to either a percentage-of-subtotal or a flat-amount
// reduction. At most one coupon is active per quote.
type Coupon struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
	Type     string  `json:"type"`
}

// GiftWrapOption is an optional fixed add-on charge. At most one active,
// independent of the coupon.
type GiftWrapOption struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CheckoutQuote is the full pricing breakdown for the current cart plus
// the selected modifiers. It is recomputed from scratch on every request
// and never persisted.
type CheckoutQuote struct {
	Subtotal       float64         `json:"subtotal"`
	Savings        float64         `json:"savings"`
	Coupon         *Coupon         `json:"coupon,omitempty"`
	CouponDiscount float64         `json:"coupon_discount"`
	DeliveryFee    float64         `json:"delivery_fee"`
	GiftWrap       *GiftWrapOption `json:"gift_wrap,omitempty"`
	GiftWrapFee    float64         `json:"gift_wrap_fee"`
	Total          float64         `json:"total"`
}
