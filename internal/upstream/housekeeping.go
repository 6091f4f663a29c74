package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/iliyamo/frontdesk/internal/booking"
	"github.com/iliyamo/frontdesk/internal/housekeeping"
)

// FetchRoomStatus returns the stored room statuses.  Unlike every other
// read, a failure here is logged and yields an empty map: the board can
// still be drawn from bookings alone.
func (c *Client) FetchRoomStatus(ctx context.Context) housekeeping.StatusMap {
	target := c.housekeeping + "/room-status"
	data, err := c.do(ctx, "getRoomStatus", http.MethodGet, target, nil)
	if err != nil {
		c.log.Warn("room status unavailable, continuing without it", zap.Error(err))
		return housekeeping.StatusMap{}
	}
	m, err := decodeStatusMap(data)
	if err != nil {
		c.log.Warn("room status undecodable, continuing without it", zap.Error(err))
		return housekeeping.StatusMap{}
	}
	return m
}

// decodeStatusMap accepts {"status": {...}} or the bare map.
func decodeStatusMap(data []byte) (housekeeping.StatusMap, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return housekeeping.StatusMap{}, nil
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if inner, ok := env["status"]; ok && len(bytes.TrimSpace(inner)) > 0 && bytes.TrimSpace(inner)[0] == '{' {
		data = inner
	}
	m := housekeeping.StatusMap{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateRoomStatus stores a manual status for one unit.
func (c *Client) UpdateRoomStatus(ctx context.Context, k booking.UnitKey, status housekeeping.Status) (json.RawMessage, error) {
	payload := map[string]any{"roomId": k.RoomID, "unitId": k.UnitID, "status": status}
	data, err := c.do(ctx, "updateRoomStatus", http.MethodPost, c.housekeeping+"/room-status", payload)
	if err != nil {
		return nil, err
	}
	return ack(data), nil
}

// FetchTasks lists housekeeping tasks.
func (c *Client) FetchTasks(ctx context.Context) ([]housekeeping.Task, error) {
	target := c.housekeeping + "/tasks"
	data, err := c.do(ctx, "getTasks", http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	tasks, err := decodeList[housekeeping.Task](data, "tasks")
	if err != nil {
		return nil, &FetchError{Op: "getTasks", URL: target, Err: err}
	}
	return tasks, nil
}

// CreateTask opens a housekeeping task.
func (c *Client) CreateTask(ctx context.Context, t housekeeping.NewTask) (json.RawMessage, error) {
	data, err := c.do(ctx, "createTask", http.MethodPost, c.housekeeping+"/tasks", t)
	if err != nil {
		return nil, err
	}
	return ack(data), nil
}

// UpdateTask changes an existing task.
func (c *Client) UpdateTask(ctx context.Context, id string, u housekeeping.TaskUpdate) (json.RawMessage, error) {
	target := c.housekeeping + "/tasks/" + url.PathEscape(id)
	data, err := c.do(ctx, "updateTask", http.MethodPut, target, u)
	if err != nil {
		return nil, err
	}
	return ack(data), nil
}
