package handlers_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"
	"github.com/tazecep/grocery-marketplace/internal/api/middleware"
	"github.com/tazecep/grocery-marketplace/internal/models"
)

// newAuthenticatedRequest builds a request with claims and a logger in
// the context, as the middleware chain would on a protected route.
func newAuthenticatedRequest(method, url, role string, body []byte) (*http.Request, *models.Claims) {
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	claims := &models.Claims{
		UserID: uuid.New(),
		Email:  "test@example.com",
		Role:   role,
	}

	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	ctx = context.WithValue(ctx, middleware.LoggerKey, slog.Default())

	return req.WithContext(ctx), claims
}

// newAnonymousRequest carries only the logger, simulating a request
// that skipped authentication.
func newAnonymousRequest(method, url string, body []byte) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	ctx := context.WithValue(req.Context(), middleware.LoggerKey, slog.Default())

	return req.WithContext(ctx)
}
