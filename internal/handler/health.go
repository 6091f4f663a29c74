package handler // declare the package name; contains HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers.  It
// does not touch the upstream services.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
