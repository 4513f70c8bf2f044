package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/todo-api/internal/domain"
)

// getPathTaskID extracts a task ID from the URL path parameters.
// It returns a domain validation error if the parameter is missing, not an
// integer, or not positive.
func getPathTaskID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	raw, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidTaskID)
	}

	return domain.ParseTaskID(raw)
}
