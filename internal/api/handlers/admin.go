package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tazecep/grocery-marketplace/internal/api/middleware"
	"github.com/tazecep/grocery-marketplace/internal/models"
	service "github.com/tazecep/grocery-marketplace/internal/services"
	"github.com/tazecep/grocery-marketplace/internal/utils/response"
)

// AdminHandler groups the back-office endpoints: vendor application
// review, vendor and user administration, platform-wide statistics.
type AdminHandler struct {
	vendorService service.VendorService
	userService   service.UserService
	validator     *validator.Validate
}

func NewAdminHandler(vendorService service.VendorService, userService service.UserService) *AdminHandler {
	return &AdminHandler{
		vendorService: vendorService,
		userService:   userService,
		validator:     validator.New(),
	}
}

func (h *AdminHandler) ListApplications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		page, _ := strconv.Atoi(query.Get("page"))
		pageSize, _ := strconv.Atoi(query.Get("page_size"))

		applications, total, err := h.vendorService.ListApplications(r.Context(), query.Get("status"), page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Items:    applications,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

func (h *AdminHandler) GetApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		application, err := h.vendorService.GetApplication(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, application)
	}
}

func (h *AdminHandler) ApproveApplication() http.HandlerFunc {
	return h.review("approved", h.vendorService.ApproveApplication)
}

func (h *AdminHandler) RejectApplication() http.HandlerFunc {
	return h.review("rejected", h.vendorService.RejectApplication)
}

func (h *AdminHandler) RequestDocuments() http.HandlerFunc {
	return h.review("documents requested", h.vendorService.RequestDocuments)
}

func (h *AdminHandler) review(action string, reviewFn func(ctx context.Context, applicationID uuid.UUID, notes string) (*models.VendorApplication, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		var req models.ReviewApplicationRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		application, err := reviewFn(r.Context(), id, req.Notes)
		if err != nil {
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Vendor application reviewed",
			slog.String("applicationId", id.String()),
			slog.String("action", action))
		response.Success(w, http.StatusOK, application)
	}
}

func (h *AdminHandler) ListVendors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendors, err := h.vendorService.ListAllVendors(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, vendors)
	}
}

// SetVendorStatus approves, suspends or reactivates a store.
func (h *AdminHandler) SetVendorStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		var req models.UpdateVendorStatusRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		profile, err := h.vendorService.SetVendorStatus(r.Context(), id, req.Approved, req.Active)
		if err != nil {
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Vendor status updated",
			slog.String("vendorId", id.String()),
			slog.Bool("approved", req.Approved),
			slog.Bool("active", req.Active))
		response.Success(w, http.StatusOK, profile)
	}
}

func (h *AdminHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.userService.ListUsers(r.Context(), r.URL.Query().Get("role"))
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, users)
	}
}

func (h *AdminHandler) Statistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.vendorService.PlatformStatistics(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}
