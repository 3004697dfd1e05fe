package handlers

import (
	"net/http"

	"github.com/tazecep/grocery-marketplace/internal/catalog"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/metrics"
	service "github.com/tazecep/grocery-marketplace/internal/services"
	"github.com/tazecep/grocery-marketplace/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Quote prices the current cart with the coupon and gift wrap passed as
// query parameters. Both are optional; an empty value means none.
func (h *CheckoutHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()

		quote, err := h.checkoutService.Quote(r.Context(), claims.UserID, query.Get("coupon"), query.Get("gift_wrap"))
		if err != nil {
			metrics.ObserveQuote(quoteResult(err))
			response.Error(w, err)

			return
		}

		metrics.ObserveQuote("ok")
		response.Success(w, http.StatusOK, quote)
	}
}

// CheckCoupon lets the storefront validate a code before checkout
// without pricing the whole cart.
func (h *CheckoutHandler) CheckCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coupon, ok := catalog.LookupCoupon(r.PathValue("code"))
		if !ok {
			response.Error(w, apperrors.InvalidCouponError("Unknown coupon code"))

			return
		}

		response.Success(w, http.StatusOK, coupon)
	}
}

func quoteResult(err error) string {
	appErr, ok := apperrors.IsAppError(err)
	if !ok {
		return "error"
	}

	switch appErr.Code {
	case apperrors.ErrCodeInvalidCoupon:
		return "invalid_coupon"
	case apperrors.ErrCodeBadRequest:
		return "empty_cart"
	default:
		return "error"
	}
}

func (h *CheckoutHandler) GiftWrapOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, catalog.GiftWrapOptions())
	}
}

func (h *CheckoutHandler) Categories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, catalog.Categories())
	}
}
