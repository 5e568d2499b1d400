package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by repositories when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidCredentials is returned for an unknown correo and for a wrong password alike.
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	// ErrForbidden is returned when the authenticated user lacks the required role.
	ErrForbidden = errors.New("Acceso denegado")
	// ErrStorageUnavailable is returned when image storage is not configured.
	ErrStorageUnavailable = errors.New("almacenamiento de imágenes no configurado")
	// ErrConstraint is returned when a write would break a foreign key, e.g. deleting a referenced row.
	ErrConstraint = errors.New("el registro está referenciado por otros registros")

	// Authentication failures, one per rejected state of the auth middleware.
	ErrAuthHeaderMissing   = &UnauthorizedError{Reason: "Se requiere Authorization header"}
	ErrAuthHeaderMalformed = &UnauthorizedError{Reason: "Formato inválido de Authorization header (debe ser: Bearer <token>)"}
	ErrTokenExpired        = &UnauthorizedError{Reason: "Token expirado"}
	ErrTokenInvalid        = &UnauthorizedError{Reason: "Token inválido"}
	ErrSubjectNotFound     = &UnauthorizedError{Reason: "Usuario no encontrado"}
)

// ValidationError reports bad or missing client input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Required is the ValidationError for a missing required field.
func Required(field string) *ValidationError {
	return NewValidationError(field, "El campo %s es obligatorio", field)
}

// NotFoundError reports a missing entity. Feminine selects the
// grammatical gender of the message ("Categoría ... no encontrada").
type NotFoundError struct {
	Entity   string
	ID       any
	Feminine bool
}

func (e *NotFoundError) Error() string {
	if e.Feminine {
		return fmt.Sprintf("%s con id %v no encontrada", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s con id %v no encontrado", e.Entity, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) true for any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFound creates a NotFoundError.
func NewNotFound(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewNotFoundFem creates a NotFoundError for a feminine entity name.
func NewNotFoundFem(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id, Feminine: true}
}

// UnauthorizedError is a 401 outcome of request authentication.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	return e.Reason
}

// AuthSystemError wraps an internal failure that happened while authenticating a request.
// It is a 500, never a 401.
type AuthSystemError struct {
	Err error
}

func (e *AuthSystemError) Error() string {
	return fmt.Sprintf("auth system error: %v", e.Err)
}

func (e *AuthSystemError) Unwrap() error {
	return e.Err
}

// ErrorResponse represents the failure envelope.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		OK:    false,
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var (
		validationErr   *ValidationError
		notFoundErr     *NotFoundError
		unauthorizedErr *UnauthorizedError
		authSystemErr   *AuthSystemError
		httpErr         *HTTPError
	)
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	case errors.As(err, &notFoundErr):
		return NewHTTPError(http.StatusNotFound, notFoundErr.Error(), "NOT_FOUND")
	case errors.As(err, &unauthorizedErr):
		return NewHTTPError(http.StatusUnauthorized, unauthorizedErr.Reason, "UNAUTHORIZED")
	case errors.As(err, &authSystemErr):
		return NewHTTPError(http.StatusInternalServerError, "Error al validar token", "AUTH_SYSTEM_ERROR")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrConstraint):
		return NewHTTPError(http.StatusBadRequest, ErrConstraint.Error(), "CONSTRAINT_VIOLATION")
	case errors.Is(err, ErrStorageUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrStorageUnavailable.Error(), "STORAGE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "error interno del servidor", "INTERNAL_ERROR")
	}
}
