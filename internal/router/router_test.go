package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tienda/internal/errors"
)

func TestCustomValidator_ReportsJSONFieldNames(t *testing.T) {
	type request struct {
		Correo string `json:"correo,omitempty" validate:"omitempty,email"`
		URL    string `json:"image_url" validate:"omitempty,url"`
	}

	tests := []struct {
		name      string
		in        request
		wantField string
	}{
		{name: "valid", in: request{Correo: "ana@x.com", URL: "https://cdn.example/a.png"}},
		{name: "empty is allowed", in: request{}},
		{name: "bad correo", in: request{Correo: "ana"}, wantField: "correo"},
		{name: "bad url", in: request{URL: "not a url"}, wantField: "image_url"},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *apperrors.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestCrud_RegistersRoutesBehindAuth(t *testing.T) {
	e := echo.New()
	denied := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error { return echo.ErrUnauthorized }
	}
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	crud(e.Group("/products"), "/marcas", denied, ok, ok, ok, ok, ok)

	tests := []struct {
		method, path string
		expectedCode int
	}{
		{http.MethodGet, "/products/marcas", http.StatusUnauthorized},
		{http.MethodPost, "/products/marcas/create", http.StatusUnauthorized},
		{http.MethodGet, "/products/marcas/3", http.StatusUnauthorized},
		{http.MethodPut, "/products/marcas/3/update", http.StatusUnauthorized},
		{http.MethodDelete, "/products/marcas/3/delete", http.StatusUnauthorized},
		{http.MethodPost, "/products/marcas", http.StatusMethodNotAllowed},
		{http.MethodGet, "/products/marcas/3/delete", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}
