package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/frontdesk/internal/booking"
	"github.com/iliyamo/frontdesk/internal/catalog"
	"github.com/iliyamo/frontdesk/internal/queue"
)

type unitAvailability struct {
	catalog.Unit
	Available bool `json:"available"`
}

// Availability handles GET /v1/availability?checkIn=&checkOut=.  Every
// catalog unit is checked against [checkIn, checkOut).
func (h *FrontDesk) Availability(c echo.Context) error {
	in, _ := booking.ParseDate(c.QueryParam("checkIn"))
	out, _ := booking.ParseDate(c.QueryParam("checkOut"))
	if err := booking.ValidateRange(in, out); err != nil {
		return h.fail(c, err)
	}
	list, err := h.fetchBookings(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	units := h.Catalog.Units()
	free := booking.ScanAvailability(list, catalog.Keys(units), in, out)

	res := make([]unitAvailability, len(units))
	count := 0
	for i, u := range units {
		res[i] = unitAvailability{Unit: u, Available: free[i]}
		if free[i] {
			count++
		}
	}
	nights := booking.Booking{Arrival: in, Departure: out}.Nights()
	return c.JSON(http.StatusOK, echo.Map{
		"checkIn":   in,
		"checkOut":  out,
		"nights":    nights,
		"available": count,
		"units":     res,
	})
}

// CreateBooking handles POST /v1/bookings.  The form is validated, then
// every selected unit is re-checked against a fresh snapshot; if any is
// taken nothing is written and 409 lists the taken rooms.
func (h *FrontDesk) CreateBooking(c echo.Context) error {
	var req booking.Request
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	drafts, err := booking.Drafts(req, h.PropertyID)
	if err != nil {
		return h.fail(c, err)
	}
	units := booking.Units(drafts)
	for _, u := range units {
		if !h.Catalog.Has(u) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown room " + u.String(), "field": "units"})
		}
	}

	ctx := c.Request().Context()
	list, err := h.fetchBookings(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	if taken := booking.Unavailable(list, units, req.CheckIn, req.CheckOut); len(taken) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":       "Some rooms are no longer available for these dates",
			"unavailable": h.roomNumbers(taken),
		})
	}
	ack, err := h.Reservations.CreateBookings(ctx, drafts)
	if err != nil {
		return h.fail(c, err)
	}

	rooms := h.roomNumbers(units)
	d := drafts[0]
	h.emit(c, queue.TypeBookingCreated, queue.BookingCreated{
		Rooms:     rooms,
		Arrival:   string(d.Arrival),
		Departure: string(d.Departure),
		Guest:     booking.Booking{FirstName: booking.Text(d.FirstName), LastName: booking.Text(d.LastName)}.GuestName(),
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"created":  len(drafts),
		"rooms":    rooms,
		"upstream": ack,
	})
}

func (h *FrontDesk) roomNumbers(keys []booking.UnitKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = h.Catalog.RoomNumber(k.RoomID, k.UnitID)
	}
	return out
}
