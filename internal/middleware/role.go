package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/frontdesk/internal/auth"
)

// RequireScreen aborts with 403 unless the session's role may open
// screen.  It assumes SessionAuth ran first.
func RequireScreen(screen auth.Screen) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !SessionFrom(c).CanAccess(screen) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireEditor aborts with 403 unless the session may change bookings.
func RequireEditor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := SessionFrom(c)
			if !s.CanEditBookings() || s.IsHousekeeping() {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "you cannot edit bookings"})
			}
			return next(c)
		}
	}
}
