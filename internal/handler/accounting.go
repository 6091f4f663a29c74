package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/frontdesk/internal/booking"
)

// Accounting handles GET /v1/accounting?month=YYYY-MM.  The month window
// selects bookings by arrival date, both month ends inclusive.
func (h *FrontDesk) Accounting(c echo.Context) error {
	month := h.Now()
	if raw := c.QueryParam("month"); raw != "" {
		t, err := time.Parse("2006-01", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid month, expected YYYY-MM", "field": "month"})
		}
		month = t
	}
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := booking.DateOf(first)
	to := booking.DateOf(first.AddDate(0, 1, -1))

	list, err := h.fetchBookings(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	inMonth := booking.ArrivalsBetween(list, from, to)
	parts := booking.ByPaymentStatus(inMonth)

	return c.JSON(http.StatusOK, echo.Map{
		"month":  first.Format("2006-01"),
		"from":   from,
		"to":     to,
		"totals": booking.Rollup(inMonth),
		"payment": echo.Map{
			"fullyPaid":     len(parts.FullyPaid),
			"partiallyPaid": len(parts.PartiallyPaid),
			"unpaid":        len(parts.Unpaid),
		},
		"outstanding": h.views(booking.Outstanding(inMonth), true),
		"daily":       booking.DailyArrivals(inMonth, from, to),
		"previous":    first.AddDate(0, -1, 0).Format("2006-01"),
		"next":        first.AddDate(0, 1, 0).Format("2006-01"),
	})
}
