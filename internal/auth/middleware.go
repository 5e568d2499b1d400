package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "tienda/internal/errors"
	"tienda/internal/logging"
	"tienda/internal/model"
)

// ContextKeyUser is the echo context key holding the authenticated *model.Usuario.
const ContextKeyUser = "usuario"

type ctxKey struct{}

// SubjectResolver loads the user a token was issued for.
// A missing user must be reported with an error matching apperrors.ErrNotFound.
type SubjectResolver interface {
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)
}

// Middleware authenticates requests carrying "Authorization: Bearer <token>".
// Rejections are returned as errors and rendered by the echo error handler.
func Middleware(tokens *JWTService, subjects SubjectResolver, log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			user, err := subjects.FindByID(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return apperrors.ErrSubjectNotFound
				}
				logging.FromContext(log, c).WithError(err).
					WithField("user_id", claims.UserID).
					Error("resolve token subject")
				return &apperrors.AuthSystemError{Err: err}
			}

			c.Set(ContextKeyUser, user)
			c.SetRequest(c.Request().WithContext(WithUser(ctx, user)))
			return next(c)
		}
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.ErrAuthHeaderMissing
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", apperrors.ErrAuthHeaderMalformed
	}
	return parts[1], nil
}

// RequireRole lets the request through only when the authenticated user has one of roles.
// It must run after Middleware.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return apperrors.ErrForbidden
			}
			for _, r := range roles {
				if user.Rol == r {
					return next(c)
				}
			}
			return apperrors.ErrForbidden
		}
	}
}

// RequireOwnerOr lets the request through when the :param path value is the
// authenticated user's own id or the user has one of roles.
func RequireOwnerOr(param string, roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return apperrors.ErrForbidden
			}
			if strconv.FormatUint(uint64(user.ID), 10) == c.Param(param) {
				return next(c)
			}
			for _, r := range roles {
				if user.Rol == r {
					return next(c)
				}
			}
			return apperrors.ErrForbidden
		}
	}
}

// CurrentUser returns the user attached by Middleware.
func CurrentUser(c echo.Context) (*model.Usuario, bool) {
	user, ok := c.Get(ContextKeyUser).(*model.Usuario)
	return user, ok && user != nil
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *model.Usuario) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the user stored by WithUser.
func UserFromContext(ctx context.Context) (*model.Usuario, bool) {
	user, ok := ctx.Value(ctxKey{}).(*model.Usuario)
	return user, ok && user != nil
}
