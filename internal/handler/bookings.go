package handler

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/frontdesk/internal/booking"
	"github.com/iliyamo/frontdesk/internal/middleware"
	"github.com/iliyamo/frontdesk/internal/queue"
)

// Today handles GET /v1/today.  It returns the day's arrivals, departures
// and in-house guests for ?date= (default: the hotel's current date).
func (h *FrontDesk) Today(c echo.Context) error {
	date, err := h.dateParam(c, "date")
	if err != nil {
		return h.fail(c, err)
	}
	list, err := h.fetchBookings(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	money := middleware.SessionFrom(c).CanViewFinancials()

	arrivals := booking.SortByArrivalDesc(booking.FilterByBucket(list, booking.BucketArrivals, date))
	departures := booking.SortByArrivalDesc(booking.FilterByBucket(list, booking.BucketDepartures, date))
	inHouse := booking.SortByArrivalDesc(booking.FilterByBucket(list, booking.BucketInHouse, date))
	return c.JSON(http.StatusOK, echo.Map{
		"date":       date,
		"arrivals":   h.views(arrivals, money),
		"departures": h.views(departures, money),
		"inHouse":    h.views(inHouse, money),
		"counts": echo.Map{
			"arrivals":   len(arrivals),
			"departures": len(departures),
			"inHouse":    len(inHouse),
		},
	})
}

// ListBookings handles GET /v1/bookings?filter=&q=&date=.  The filter is a
// date bucket relative to date; q searches guest name, room number and
// booking id.  Results are sorted by arrival, latest first.
func (h *FrontDesk) ListBookings(c echo.Context) error {
	date, err := h.dateParam(c, "date")
	if err != nil {
		return h.fail(c, err)
	}
	bucket, ok := booking.ParseBucket(c.QueryParam("filter"))
	if !ok {
		bucket = booking.BucketAll
	}
	list, err := h.fetchBookings(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	list = booking.FilterByBucket(list, bucket, date)
	list = booking.Search(list, c.QueryParam("q"), h.Catalog.RoomNumber)
	list = booking.SortByArrivalDesc(list)

	sizes := booking.GroupSizes(list)
	views := h.views(list, middleware.SessionFrom(c).CanViewFinancials())
	groups := 0
	for _, n := range sizes {
		if n > 1 {
			groups++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"filter":   bucket,
		"date":     date,
		"count":    len(views),
		"groups":   groups,
		"bookings": views,
	})
}

// GetBooking handles GET /v1/bookings/:id.  Besides the booking it returns
// the reservation group it belongs to and, for roles that may see money,
// the group's totals.
func (h *FrontDesk) GetBooking(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	list, err := h.fetchBookings(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	b, ok := findBooking(list, id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	s := middleware.SessionFrom(c)
	money := s.CanViewFinancials()

	members := booking.GroupOf(list, b)
	rooms := make([]string, 0, len(members))
	for _, m := range members {
		rooms = append(rooms, h.Catalog.RoomNumber(m.RoomID, m.UnitID))
	}
	slices.Sort(rooms)
	group := echo.Map{
		"key":      booking.GroupKey(b),
		"isGroup":  booking.IsGroup(members),
		"size":     len(members),
		"rooms":    rooms,
		"bookings": h.views(members, money),
	}
	if money {
		group["totals"] = booking.Rollup(members)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"booking": h.view(b, money),
		"group":   group,
		"canEdit": s.CanEditBookings() && !s.IsHousekeeping(),
	})
}

// UpdateBooking handles PATCH /v1/bookings/:id.  Only guest fields may be
// changed; any other field is rejected.  The booking is re-read from
// upstream before writing so edits to deleted bookings fail with 404.
func (h *FrontDesk) UpdateBooking(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	p, err := booking.DecodePatch(c.Request().Body)
	if err != nil {
		return h.fail(c, err)
	}
	if err := p.Validate(); err != nil {
		return h.fail(c, err)
	}
	ctx := c.Request().Context()
	list, err := h.fetchBookings(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	b, ok := findBooking(list, id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if _, err := h.Reservations.UpdateBooking(ctx, id, p); err != nil {
		return h.fail(c, err)
	}

	fields := make([]string, 0, 6)
	for k := range p.Fields(id) {
		if k != "id" {
			fields = append(fields, k)
		}
	}
	slices.Sort(fields)
	h.emit(c, queue.TypeBookingUpdated, queue.BookingUpdated{BookingID: int64(id), Fields: fields})

	return c.JSON(http.StatusOK, echo.Map{
		"booking": h.view(p.Apply(b), middleware.SessionFrom(c).CanViewFinancials()),
		"updated": fields,
	})
}
