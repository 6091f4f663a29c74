package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/frontdesk/internal/auth"
	"github.com/iliyamo/frontdesk/internal/booking"
	"github.com/iliyamo/frontdesk/internal/catalog"
	"github.com/iliyamo/frontdesk/internal/middleware"
)

const (
	defaultCalendarDays = 14
	maxCalendarDays     = 62
)

type calendarCell struct {
	Date      booking.Date `json:"date"`
	BookingID booking.ID   `json:"bookingId,omitempty"`
	Guest     string       `json:"guest,omitempty"`
	Group     bool         `json:"group,omitempty"`
	// CheckIn marks the first night of a stay; CheckOut marks the last
	// night, the guest leaving the following morning.
	CheckIn  bool `json:"checkIn,omitempty"`
	CheckOut bool `json:"checkOut,omitempty"`
}

type calendarRow struct {
	catalog.Unit
	Cells []calendarCell `json:"cells"`
}

// Calendar handles GET /v1/calendar?start=&days=.  It returns one row per
// unit and one cell per night from start.
func (h *FrontDesk) Calendar(c echo.Context) error {
	start, err := h.dateParam(c, "start")
	if err != nil {
		return h.fail(c, err)
	}
	days := defaultCalendarDays
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxCalendarDays {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "days must be between 1 and " + strconv.Itoa(maxCalendarDays)})
		}
		days = n
	}
	list, err := h.fetchBookings(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	dates := make([]booking.Date, days)
	for i := range dates {
		dates[i] = start.AddDays(i)
	}
	sizes := booking.GroupSizes(list)
	units := h.Catalog.Units()
	rows := make([]calendarRow, len(units))
	for i, u := range units {
		cells := make([]calendarCell, days)
		for j, d := range dates {
			cell := calendarCell{Date: d}
			if b, ok := booking.Occupant(list, u.RoomID, u.UnitID, d); ok {
				cell.BookingID = b.ID
				cell.Guest = b.GuestName()
				cell.Group = sizes[booking.GroupKey(b)] > 1
				cell.CheckIn = b.Arrival == d
				cell.CheckOut = b.Departure == d.AddDays(1)
			}
			cells[j] = cell
		}
		rows[i] = calendarRow{Unit: u, Cells: cells}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"start":    start,
		"today":    booking.DateOf(h.Now()),
		"dates":    dates,
		"rows":     rows,
		"canBook":  middleware.SessionFrom(c).CanAccess(auth.ScreenSearch),
		"previous": start.AddDays(-7),
		"next":     start.AddDays(7),
	})
}
