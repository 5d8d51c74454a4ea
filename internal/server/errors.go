// Package server provides the HTTP REST API for the Pathify backend.
package server

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidCredentials indicates invalid admin credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid admin password"
}

// ErrAdminDisabled indicates no admin credential is configured
type ErrAdminDisabled struct{}

func (e *ErrAdminDisabled) Error() string {
	return "admin access is not configured"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrStoreUnavailable indicates the document store could not serve the request
type ErrStoreUnavailable struct {
	Err error
}

func (e *ErrStoreUnavailable) Error() string {
	return fmt.Sprintf("storage unavailable: %v", e.Err)
}

func (e *ErrStoreUnavailable) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrAdminDisabled, *ErrStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// extractValidationErrors extracts validation error messages from validator errors.
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
