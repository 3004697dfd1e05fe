package handlers

import (
	"net/http"
	"strconv"

	service "github.com/tazecep/grocery-marketplace/internal/services"
	"github.com/tazecep/grocery-marketplace/internal/utils/response"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) ListMine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		notifications, err := h.notificationService.ListNotifications(r.Context(), claims.UserID, limit)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, notifications)
	}
}
