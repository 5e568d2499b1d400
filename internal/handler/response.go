// Package handler holds the echo handlers. Every handler returns its failures
// as errors; ErrorHandler renders them in the {ok:false,...} envelope.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "tienda/internal/errors"
	"tienda/internal/logging"
)

// MessageResponse is returned by delete endpoints.
type MessageResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// LoginFailure is the login rejection body; it uses msg instead of error.
type LoginFailure struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg"`
}

func respond(c echo.Context, status int, key string, value any) error {
	return c.JSON(status, map[string]any{"ok": true, key: value})
}

func respondMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, MessageResponse{OK: true, Message: message})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("id", "El id %q no es válido", c.Param("id"))
	}
	return uint(id), nil
}

// bind decodes the body into req and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewValidationError("body", "Cuerpo de la solicitud inválido")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}

var echoMessages = map[int]struct{ msg, code string }{
	http.StatusNotFound:              {"Recurso no encontrado", "NOT_FOUND"},
	http.StatusMethodNotAllowed:      {"Método no permitido", "METHOD_NOT_ALLOWED"},
	http.StatusRequestEntityTooLarge: {"Cuerpo de la solicitud demasiado grande", "PAYLOAD_TOO_LARGE"},
	http.StatusUnsupportedMediaType:  {"Tipo de contenido no soportado", "UNSUPPORTED_MEDIA_TYPE"},
}

// ErrorHandler renders every error in the response envelope.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			_ = c.JSON(http.StatusUnauthorized, LoginFailure{OK: false, Msg: err.Error()})
			return
		}

		httpErr := toHTTPError(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			logging.FromContext(log, c).WithError(err).
				WithFields(logrus.Fields{"method": c.Request().Method, "path": c.Path()}).
				Error("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(httpErr.StatusCode)
			return
		}
		_ = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
}

func toHTTPError(err error) *apperrors.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := echoMessages[he.Code]; ok {
			return apperrors.NewHTTPError(he.Code, m.msg, m.code)
		}
		if he.Code < http.StatusInternalServerError {
			return apperrors.NewHTTPError(he.Code, http.StatusText(he.Code), "HTTP_ERROR")
		}
	}
	return apperrors.MapErrorToHTTP(err)
}
