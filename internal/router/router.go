package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/frontdesk/internal/auth"
	"github.com/iliyamo/frontdesk/internal/handler"
	"github.com/iliyamo/frontdesk/internal/middleware"
)

// Guards are the middlewares shared by every authenticated route: session
// resolution first, then rate limiting keyed by the signed-in user.
type Guards struct {
	Session   echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

func (g Guards) chain() []echo.MiddlewareFunc {
	out := []echo.MiddlewareFunc{g.Session}
	if g.RateLimit != nil {
		out = append(out, g.RateLimit)
	}
	return out
}

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the sign-in lifecycle.  Login is public (and rate
// limited by IP, since nobody is signed in yet); logout and /v1/me need a
// session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, g Guards) {
	login := e.Group("/v1/auth")
	if g.RateLimit != nil {
		login.Use(g.RateLimit)
	}
	login.POST("/login", a.Login)

	e.POST("/v1/auth/logout", a.Logout, g.chain()...)
	e.GET("/v1/me", a.Me, g.chain()...)
}

// RegisterFrontDesk registers the screen routes.  Each route only admits
// roles whose capability table lists its screen.
func RegisterFrontDesk(e *echo.Echo, h *handler.FrontDesk, g Guards) {
	screen := middleware.RequireScreen
	v1 := e.Group("/v1", g.chain()...)

	v1.GET("/today", h.Today, screen(auth.ScreenToday))
	v1.GET("/calendar", h.Calendar, screen(auth.ScreenCalendar))
	v1.GET("/accounting", h.Accounting, screen(auth.ScreenAccounting))

	v1.GET("/bookings", h.ListBookings, screen(auth.ScreenBookings))
	v1.GET("/bookings/:id", h.GetBooking, screen(auth.ScreenBookings))
	v1.PATCH("/bookings/:id", h.UpdateBooking, screen(auth.ScreenBookings), middleware.RequireEditor())

	v1.GET("/availability", h.Availability, screen(auth.ScreenSearch))
	v1.POST("/bookings", h.CreateBooking, screen(auth.ScreenSearch), middleware.RequireEditor())

	hk := v1.Group("/housekeeping", screen(auth.ScreenHousekeeping))
	hk.GET("", h.Board)
	hk.PUT("/rooms/:roomId/:unitId", h.UpdateRoomStatus)
	hk.GET("/tasks", h.ListTasks)
	hk.POST("/tasks", h.CreateTask)
	hk.PUT("/tasks/:id", h.UpdateTask)
}
