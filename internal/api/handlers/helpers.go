package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tazecep/grocery-marketplace/internal/api/middleware"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	"github.com/tazecep/grocery-marketplace/internal/utils"
	"github.com/tazecep/grocery-marketplace/internal/utils/response"
)

// parseAndValidate decodes the JSON body into dest and runs struct
// validation. It writes the error response itself; callers just return
// on false.
func parseAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dest any) bool {
	if err := utils.DecodeJSONBody(r, dest); err != nil {
		response.Error(w, apperrors.BadRequestError(err.Error()))

		return false
	}

	if err := validate.Struct(dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)

			return false
		}

		response.Error(w, apperrors.ValidationError("Invalid request payload"))

		return false
	}

	return true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		response.Error(w, apperrors.BadRequestError("Invalid "+name))

		return uuid.Nil, false
	}

	return id, true
}

// requireClaims fetches the authenticated user's claims. The auth
// middleware guarantees presence on protected routes; the guard here
// covers misrouted handlers.
func requireClaims(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, apperrors.UnauthorizedError("Authentication required"))

		return nil, false
	}

	return claims, true
}
