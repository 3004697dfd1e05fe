package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/tazecep/grocery-marketplace/internal/api/middleware"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	service "github.com/tazecep/grocery-marketplace/internal/services"
	"github.com/tazecep/grocery-marketplace/internal/utils/response"
)

type VendorHandler struct {
	vendorService service.VendorService
	userService   service.UserService
	validator     *validator.Validate
}

func NewVendorHandler(vendorService service.VendorService, userService service.UserService) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
		userService:   userService,
		validator:     validator.New(),
	}
}

func (h *VendorHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendors, err := h.vendorService.ListApproved(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, vendors)
	}
}

type nearbyVendor struct {
	*models.VendorProfile

	DeliveryFee float64 `json:"delivery_fee"`
}

// Nearby filters approved vendors by distance from the given point and
// annotates each with its distance-based delivery fee.
func (h *VendorHandler) Nearby() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		latitude, err := strconv.ParseFloat(query.Get("lat"), 64)
		if err != nil {
			response.Error(w, apperrors.BadRequestError("Invalid latitude"))

			return
		}

		longitude, err := strconv.ParseFloat(query.Get("lon"), 64)
		if err != nil {
			response.Error(w, apperrors.BadRequestError("Invalid longitude"))

			return
		}

		radiusKm, _ := strconv.ParseFloat(query.Get("radius"), 64)

		vendors, err := h.vendorService.ListNearby(r.Context(), latitude, longitude, radiusKm)
		if err != nil {
			response.Error(w, err)

			return
		}

		result := make([]nearbyVendor, 0, len(vendors))
		for _, vendor := range vendors {
			result = append(result, nearbyVendor{
				VendorProfile: vendor,
				DeliveryFee:   service.DeliveryEstimate(vendor),
			})
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *VendorHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		vendor, err := h.vendorService.GetVendor(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, vendor)
	}
}

// Apply files a vendor application for the authenticated user. Contact
// details come from the user record, not the request body.
func (h *VendorHandler) Apply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req models.CreateVendorApplicationRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		application, err := h.vendorService.Apply(r.Context(), claims.UserID, user.Email, user.Phone, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Vendor application filed",
			slog.String("applicationId", application.ID.String()))
		response.Success(w, http.StatusCreated, application)
	}
}

func (h *VendorHandler) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		profile, err := h.vendorService.GetVendorByUserID(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		dashboard, err := h.vendorService.Dashboard(r.Context(), profile.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, dashboard)
	}
}
