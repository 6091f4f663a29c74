package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/frontdesk/internal/booking"
	"github.com/iliyamo/frontdesk/internal/housekeeping"
	"github.com/iliyamo/frontdesk/internal/queue"
)

// boardTile is a board unit without the booking's financial fields, which
// housekeeping roles may not see.
type boardTile struct {
	housekeeping.UnitStatus
	Booking *bookingView `json:"booking,omitempty"`
}

// Board handles GET /v1/housekeeping?date=.  Bookings and stored statuses
// are fetched concurrently; a room-status outage yields a board computed
// from bookings alone, a bookings outage fails the request.
func (h *FrontDesk) Board(c echo.Context) error {
	date, err := h.dateParam(c, "date")
	if err != nil {
		return h.fail(c, err)
	}
	var (
		list   []booking.Booking
		stored housekeeping.StatusMap
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		list, err = h.fetchBookings(ctx)
		return err
	})
	g.Go(func() error {
		stored = h.Housekeeping.FetchRoomStatus(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return h.fail(c, err)
	}

	board := housekeeping.BuildBoard(h.Catalog.Units(), list, stored, date)
	tiles := make([]boardTile, len(board.Units))
	for i, u := range board.Units {
		tiles[i] = boardTile{UnitStatus: u}
		if u.Booking != nil {
			v := h.view(*u.Booking, false)
			tiles[i].Booking = &v
		}
		tiles[i].UnitStatus.Booking = nil
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":     board.Date,
		"units":    tiles,
		"summary":  board.Summary,
		"statuses": housekeeping.Statuses,
	})
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateRoomStatus handles PUT /v1/housekeeping/rooms/:roomId/:unitId.
func (h *FrontDesk) UpdateRoomStatus(c echo.Context) error {
	roomID, ok1 := parseID(c.Param("roomId"))
	unitID, ok2 := parseID(c.Param("unitId"))
	if !ok1 || !ok2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room"})
	}
	k := booking.UnitKey{RoomID: roomID, UnitID: unitID}
	if !h.Catalog.Has(k) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	var req statusReq
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status, ok := housekeeping.ParseStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status " + strings.TrimSpace(req.Status), "field": "status"})
	}
	if _, err := h.Housekeeping.UpdateRoomStatus(c.Request().Context(), k, status); err != nil {
		return h.fail(c, err)
	}
	room := h.Catalog.RoomNumber(roomID, unitID)
	h.emit(c, queue.TypeRoomStatusUpdated, queue.RoomStatusUpdated{Room: room, Unit: k.String(), Status: string(status)})
	return c.JSON(http.StatusOK, echo.Map{
		"room":   room,
		"unit":   k.String(),
		"status": status,
		"label":  status.Label(),
	})
}

// ListTasks handles GET /v1/housekeeping/tasks.
func (h *FrontDesk) ListTasks(c echo.Context) error {
	tasks, err := h.Housekeeping.FetchTasks(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	type taskView struct {
		housekeeping.Task
		Room string `json:"room"`
	}
	out := make([]taskView, len(tasks))
	for i, t := range tasks {
		out[i] = taskView{Task: t, Room: h.Catalog.RoomNumber(t.RoomID, t.UnitID)}
	}
	return c.JSON(http.StatusOK, echo.Map{"tasks": out, "count": len(out)})
}

// CreateTask handles POST /v1/housekeeping/tasks.
func (h *FrontDesk) CreateTask(c echo.Context) error {
	var t housekeeping.NewTask
	if err := json.NewDecoder(c.Request().Body).Decode(&t); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := t.Validate(); err != nil {
		return h.fail(c, err)
	}
	k := booking.UnitKey{RoomID: t.RoomID, UnitID: t.UnitID}
	if !h.Catalog.Has(k) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown room " + k.String(), "field": "roomId"})
	}
	ack, err := h.Housekeeping.CreateTask(c.Request().Context(), t)
	if err != nil {
		return h.fail(c, err)
	}
	room := h.Catalog.RoomNumber(t.RoomID, t.UnitID)
	h.emit(c, queue.TypeTaskCreated, queue.TaskChanged{Room: room, Type: t.Type, Status: t.Status})
	return c.JSON(http.StatusCreated, echo.Map{"room": room, "task": t, "upstream": ack})
}

// UpdateTask handles PUT /v1/housekeeping/tasks/:id.
func (h *FrontDesk) UpdateTask(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}
	var u housekeeping.TaskUpdate
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&u); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := u.Validate(); err != nil {
		return h.fail(c, err)
	}
	ack, err := h.Housekeeping.UpdateTask(c.Request().Context(), id, u)
	if err != nil {
		return h.fail(c, err)
	}
	ev := queue.TaskChanged{TaskID: id}
	if u.Status != nil {
		ev.Status = *u.Status
	}
	h.emit(c, queue.TypeTaskUpdated, ev)
	return c.JSON(http.StatusOK, echo.Map{"id": id, "upstream": ack})
}
