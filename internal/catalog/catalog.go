// Package catalog holds the fixed lookup tables of the storefront: the
// coupon codes, the gift wrap options and the product categories. The
// coupon table is deliberately static; there is no discount engine behind
// it.
package catalog

import "github.com/tazecep/grocery-marketplace/internal/models"

var coupons = map[string]models.Coupon{
	"YENI50":    {Code: "YENI50", Discount: 50, Type: models.CouponTypeFixed},
	"INDIRIM20": {Code: "INDIRIM20", Discount: 20, Type: models.CouponTypePercentage},
	"HOSGELDIN": {Code: "HOSGELDIN", Discount: 10, Type: models.CouponTypeFixed},
}

var giftWrapOptions = []models.GiftWrapOption{
	{ID: "none", Name: "No Gift Wrap", Price: 0},
	{ID: "basic", Name: "Standard Wrap", Price: 5},
	{ID: "premium", Name: "Premium Wrap", Price: 10},
	{ID: "deluxe", Name: "Deluxe Wrap", Price: 15},
}

var categories = []models.Category{
	{ID: "fruits", Name: "Fruits", Icon: "🍎"},
	{ID: "vegetables", Name: "Vegetables", Icon: "🥕"},
	{ID: "dairy", Name: "Dairy", Icon: "🥛"},
	{ID: "meat", Name: "Meat & Poultry", Icon: "🍗"},
	{ID: "bakery", Name: "Bakery", Icon: "🍞"},
	{ID: "snacks", Name: "Snacks", Icon: "🍿"},
	{ID: "beverages", Name: "Beverages", Icon: "🥤"},
	{ID: "other", Name: "Other", Icon: "📦"},
}

// LookupCoupon resolves a code against the static table. Unknown codes
// return false and must leave any previously applied coupon untouched.
func LookupCoupon(code string) (models.Coupon, bool) {
	coupon, ok := coupons[code]

	return coupon, ok
}

// LookupGiftWrap resolves a gift wrap option by id. The "none" option is
// returned as nil so callers never charge a zero fee line.
func LookupGiftWrap(id string) (*models.GiftWrapOption, bool) {
	for _, option := range giftWrapOptions {
		if option.ID == id {
			if option.ID == "none" {
				return nil, true
			}

			opt := option

			return &opt, true
		}
	}

	return nil, false
}

func GiftWrapOptions() []models.GiftWrapOption {
	options := make([]models.GiftWrapOption, len(giftWrapOptions))
	copy(options, giftWrapOptions)

	return options
}

func Categories() []models.Category {
	result := make([]models.Category, len(categories))
	copy(result, categories)

	return result
}
