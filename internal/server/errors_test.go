package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"validation", &ErrValidation{Field: "career", Message: "required"}, http.StatusBadRequest},
		{"admin disabled", &ErrAdminDisabled{}, http.StatusServiceUnavailable},
		{"store unavailable", &ErrStoreUnavailable{Err: fmt.Errorf("down")}, http.StatusServiceUnavailable},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrStoreUnavailable_Unwrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := &ErrStoreUnavailable{Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrValidation_Message(t *testing.T) {
	err := &ErrValidation{Field: "email", Message: "must be valid"}

	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "must be valid")
}
