package handler

// frontdesk.go holds the dependencies shared by the screen handlers and the
// helpers they use to read parameters, fetch snapshots and report errors.
// Every handler fetches a fresh snapshot from upstream; nothing is cached
// between requests, so a failed write never leaves stale derived state.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/frontdesk/internal/booking"
	"github.com/iliyamo/frontdesk/internal/catalog"
	"github.com/iliyamo/frontdesk/internal/housekeeping"
	"github.com/iliyamo/frontdesk/internal/middleware"
	"github.com/iliyamo/frontdesk/internal/service"
	"github.com/iliyamo/frontdesk/internal/upstream"
)

// Reservations is the reservation proxy as used by the handlers.
type Reservations interface {
	FetchBookings(ctx context.Context) ([]booking.Booking, error)
	CreateBookings(ctx context.Context, drafts []booking.Draft) (json.RawMessage, error)
	UpdateBooking(ctx context.Context, id booking.ID, p booking.Patch) (json.RawMessage, error)
}

// Housekeeping is the housekeeping API as used by the handlers.
type Housekeeping interface {
	FetchRoomStatus(ctx context.Context) housekeeping.StatusMap
	UpdateRoomStatus(ctx context.Context, k booking.UnitKey, s housekeeping.Status) (json.RawMessage, error)
	FetchTasks(ctx context.Context) ([]housekeeping.Task, error)
	CreateTask(ctx context.Context, t housekeeping.NewTask) (json.RawMessage, error)
	UpdateTask(ctx context.Context, id string, u housekeeping.TaskUpdate) (json.RawMessage, error)
}

// FrontDesk bundles what the screen handlers need.
type FrontDesk struct {
	Reservations Reservations
	Housekeeping Housekeeping
	Catalog      *catalog.Catalog
	Events       service.Publisher
	Log          *zap.Logger
	// Now returns the current time in the hotel's timezone.
	Now        func() time.Time
	PropertyID int64
}

// NewFrontDesk fills defaults for optional dependencies and panics if a
// required one is nil.
func NewFrontDesk(res Reservations, hk Housekeeping, cat *catalog.Catalog, events service.Publisher, log *zap.Logger, now func() time.Time, propertyID int64) *FrontDesk {
	if res == nil || hk == nil || cat == nil {
		panic("nil dependency passed to NewFrontDesk")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if events == nil {
		events = service.NopPublisher{Log: log}
	}
	if now == nil {
		now = time.Now
	}
	if propertyID == 0 {
		propertyID = cat.PropertyID
	}
	return &FrontDesk{Reservations: res, Housekeeping: hk, Catalog: cat, Events: events, Log: log, Now: now, PropertyID: propertyID}
}

// dateParam returns ?param as a date, or the hotel's current date when absent.
func (h *FrontDesk) dateParam(c echo.Context, param string) (booking.Date, error) {
	raw := c.QueryParam(param)
	if raw == "" {
		return booking.DateOf(h.Now()), nil
	}
	d, ok := booking.ParseDate(raw)
	if !ok {
		return "", &booking.ValidationError{Field: param, Message: "invalid " + param + ", expected YYYY-MM-DD"}
	}
	return d, nil
}

// fetchBookings loads a fresh snapshot and logs records with an invalid
// stay so staff can correct them upstream.
func (h *FrontDesk) fetchBookings(ctx context.Context) ([]booking.Booking, error) {
	list, err := h.Reservations.FetchBookings(ctx)
	if err != nil {
		return nil, err
	}
	if bad := booking.Malformed(list); len(bad) > 0 {
		ids := make([]int64, len(bad))
		for i, b := range bad {
			ids[i] = int64(b.ID)
		}
		h.Log.Warn("bookings with invalid stay dates", zap.Int64s("booking_ids", ids))
	}
	return list, nil
}

// fail translates an error into the JSON error response.
func (h *FrontDesk) fail(c echo.Context, err error) error {
	var ve *booking.ValidationError
	if errors.As(err, &ve) {
		body := echo.Map{"error": ve.Message}
		if ve.Field != "" {
			body["field"] = ve.Field
		}
		return c.JSON(http.StatusBadRequest, body)
	}
	var fe *upstream.FetchError
	if errors.As(err, &fe) {
		h.Log.Error("upstream call failed", zap.String("op", fe.Op), zap.Int("status", fe.Status), zap.Error(fe.Err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "could not reach the hotel system, please try again"})
	}
	h.Log.Error("request failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// emit publishes an event on behalf of the signed-in user.
func (h *FrontDesk) emit(c echo.Context, typ string, data any) {
	actor := "unknown"
	if s := middleware.SessionFrom(c); s != nil {
		actor = s.Username
	}
	service.Emit(c.Request().Context(), h.Events, h.Log, typ, actor, data)
}

func parseID(s string) (booking.ID, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return booking.ID(n), true
}

func findBooking(list []booking.Booking, id booking.ID) (booking.Booking, bool) {
	for _, b := range list {
		if b.ID == id {
			return b, true
		}
	}
	return booking.Booking{}, false
}
