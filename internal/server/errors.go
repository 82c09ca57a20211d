package server

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/candidate-pulse/internal/schemas"
	"github.com/jonathan/candidate-pulse/internal/scoring"
)

// ErrInvalidJSON indicates a request body that could not be parsed
type ErrInvalidJSON struct{}

func (e *ErrInvalidJSON) Error() string {
	return "Invalid JSON"
}

// ErrStoreUnavailable indicates an operation that requires the database
// while the server runs without one
type ErrStoreUnavailable struct{}

func (e *ErrStoreUnavailable) Error() string {
	return "persistence is not configured"
}

// extractValidationErrors extracts user-friendly validation error messages
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrInvalidJSON:
		return http.StatusBadRequest
	case *scoring.ValidationError:
		return http.StatusBadRequest
	case *schemas.ValidationError:
		return http.StatusBadRequest
	case *ErrStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
