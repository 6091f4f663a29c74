// Package queue defines the events the service publishes after successful
// upstream writes, and the consumer that turns them into an audit log.
package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QueueName is the durable queue every event is routed to.
const QueueName = "frontdesk.events"

// Event types.
const (
	TypeBookingCreated    = "booking.created"
	TypeBookingUpdated    = "booking.updated"
	TypeRoomStatusUpdated = "room_status.updated"
	TypeTaskCreated       = "task.created"
	TypeTaskUpdated       = "task.updated"
)

// Event is the envelope sent over the broker.  Data holds one of the
// payload structs below, selected by Type.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Actor      string          `json:"actor"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// NewEvent stamps a payload with a fresh id and the current time.
func NewEvent(typ, actor string, data any) (Event, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
		Data:       b,
	}, nil
}

// BookingCreated is published once per create request, covering every
// unit booked by it.
type BookingCreated struct {
	Rooms     []string `json:"rooms"`
	Arrival   string   `json:"arrival"`
	Departure string   `json:"departure"`
	Guest     string   `json:"guest"`
}

// BookingUpdated names the booking and the fields that changed.
type BookingUpdated struct {
	BookingID int64    `json:"booking_id"`
	Fields    []string `json:"fields"`
}

// RoomStatusUpdated records a manual housekeeping status change.
type RoomStatusUpdated struct {
	Room   string `json:"room"`
	Unit   string `json:"unit"`
	Status string `json:"status"`
}

// TaskChanged covers task creation and updates.
type TaskChanged struct {
	TaskID string `json:"task_id,omitempty"`
	Room   string `json:"room,omitempty"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
}
