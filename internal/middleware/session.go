package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/frontdesk/internal/auth"
)

// SessionResolver maps a bearer token to a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, raw string) (*auth.Session, error)
}

// SessionAuth returns an Echo middleware that validates a Bearer access
// token against the session store and injects the session into the request
// context.  Handlers read it back with SessionFrom.
func SessionAuth(r SessionResolver, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			s, err := r.Resolve(c.Request().Context(), raw)
			if err != nil {
				if !errors.Is(err, auth.ErrSessionNotFound) {
					log.Error("session lookup failed", zap.Error(err))
					return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "session store unavailable"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired, please sign in again"})
			}
			c.Set(sessionKey, s)
			return next(c)
		}
	}
}
