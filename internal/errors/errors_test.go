package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", Required("ci"), http.StatusBadRequest, "VALIDATION_ERROR", "El campo ci es obligatorio"},
		{"wrapped validation", fmt.Errorf("create: %w", Required("correo")), http.StatusBadRequest, "VALIDATION_ERROR", "El campo correo es obligatorio"},
		{"not found", NewNotFound("Marca", 7), http.StatusNotFound, "NOT_FOUND", "Marca con id 7 no encontrado"},
		{"not found feminine", NewNotFoundFem("Categoría", 3), http.StatusNotFound, "NOT_FOUND", "Categoría con id 3 no encontrada"},
		{"constraint", fmt.Errorf("delete marca: %w", ErrConstraint), http.StatusBadRequest, "CONSTRAINT_VIOLATION", ErrConstraint.Error()},
		{"unauthorized", ErrTokenExpired, http.StatusUnauthorized, "UNAUTHORIZED", "Token expirado"},
		{"auth system", &AuthSystemError{Err: errors.New("db down")}, http.StatusInternalServerError, "AUTH_SYSTEM_ERROR", "Error al validar token"},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN", "Acceso denegado"},
		{"storage", ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", ErrStorageUnavailable.Error()},
		{"unknown", errors.New("sql: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR", "error interno del servidor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMsg, httpErr.Message)

			resp := httpErr.ToErrorResponse()
			assert.False(t, resp.OK)
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}

func TestNotFoundError_Is(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NewNotFound("Usuario", 1))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(errors.New("other"), ErrNotFound))
}

func TestAuthSystemError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := &AuthSystemError{Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, MapErrorToHTTP(err).Message, "timeout")
}
