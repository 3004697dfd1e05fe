package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tazecep/grocery-marketplace/internal/catalog"
	"github.com/tazecep/grocery-marketplace/internal/models"
)

func TestLookupCoupon(t *testing.T) {
	t.Run("Known Codes", func(t *testing.T) {
		coupon, ok := catalog.LookupCoupon("INDIRIM20")
		require.True(t, ok)
		assert.Equal(t, models.CouponTypePercentage, coupon.Type)
		assert.Equal(t, 20.0, coupon.Discount)

		coupon, ok = catalog.LookupCoupon("YENI50")
		require.True(t, ok)
		assert.Equal(t, models.CouponTypeFixed, coupon.Type)
		assert.Equal(t, 50.0, coupon.Discount)

		_, ok = catalog.LookupCoupon("HOSGELDIN")
		assert.True(t, ok)
	})

	t.Run("Unknown Code", func(t *testing.T) {
		_, ok := catalog.LookupCoupon("NOPE99")
		assert.False(t, ok)
	})

	t.Run("Codes Are Case Sensitive", func(t *testing.T) {
		_, ok := catalog.LookupCoupon("indirim20")
		assert.False(t, ok)
	})
}

func TestLookupGiftWrap(t *testing.T) {
	t.Run("None Option Resolves To Nil", func(t *testing.T) {
		option, ok := catalog.LookupGiftWrap("none")
		require.True(t, ok)
		assert.Nil(t, option)
	})

	t.Run("Paid Options", func(t *testing.T) {
		option, ok := catalog.LookupGiftWrap("deluxe")
		require.True(t, ok)
		require.NotNil(t, option)
		assert.Equal(t, 15.0, option.Price)
	})

	t.Run("Unknown Option", func(t *testing.T) {
		_, ok := catalog.LookupGiftWrap("platinum")
		assert.False(t, ok)
	})
}

func TestCatalogCopies(t *testing.T) {
	options := catalog.GiftWrapOptions()
	require.NotEmpty(t, options)
	options[0].Price = 999

	fresh := catalog.GiftWrapOptions()
	assert.NotEqual(t, 999.0, fresh[0].Price)

	cats := catalog.Categories()
	assert.Len(t, cats, 8)
}
