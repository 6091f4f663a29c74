package middleware

// identity.go holds the context accessors shared by middleware and
// handlers.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/frontdesk/internal/auth"
)

const sessionKey = "session"

// SessionFrom returns the session stored by SessionAuth, or nil.
func SessionFrom(c echo.Context) *auth.Session {
	s, _ := c.Get(sessionKey).(*auth.Session)
	return s
}

// userID identifies the caller for rate limiting; "anon" when nobody is
// signed in.
func userID(c echo.Context) string {
	if s := SessionFrom(c); s != nil {
		return strconv.FormatUint(s.UserID, 10)
	}
	return "anon"
}
