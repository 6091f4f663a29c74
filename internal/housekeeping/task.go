package housekeeping

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/frontdesk/internal/booking"
)

// Task is a housekeeping job as stored by the housekeeping API.
type Task struct {
	ID         booking.Text `json:"id"`
	RoomID     booking.ID   `json:"roomId"`
	UnitID     booking.ID   `json:"unitId"`
	Type       booking.Text `json:"type,omitempty"`
	Status     booking.Text `json:"status,omitempty"`
	AssignedTo booking.Text `json:"assignedTo,omitempty"`
	Notes      booking.Text `json:"notes,omitempty"`
	CreatedAt  booking.Text `json:"createdAt,omitempty"`
}

// NewTask is the body accepted when staff open a task.
type NewTask struct {
	RoomID     booking.ID `json:"roomId" validate:"required"`
	UnitID     booking.ID `json:"unitId" validate:"required"`
	Type       string     `json:"type" validate:"required,oneof=cleaning inspection maintenance turndown laundry"`
	AssignedTo string     `json:"assignedTo,omitempty" validate:"max=64"`
	Notes      string     `json:"notes,omitempty" validate:"max=500"`
	Status     string     `json:"status" validate:"oneof=open in_progress done cancelled"`
}

// TaskUpdate lists the task fields that may change.
type TaskUpdate struct {
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=open in_progress done cancelled"`
	AssignedTo *string `json:"assignedTo,omitempty" validate:"omitempty,max=64"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

var taskMessages = map[string]string{
	"RoomID.required": "Please choose a room",
	"UnitID.required": "Please choose a room",
	"Type.required":   "Please choose a task type",
	"Type.oneof":      "Task type must be cleaning, inspection, maintenance, turndown or laundry",
	"Status.oneof":    "Task status must be open, in_progress, done or cancelled",
	"AssignedTo":      "Assignee name is too long",
	"Notes":           "Notes are too long",
}

// Validate checks the task and fills the default status.
func (t *NewTask) Validate() error {
	t.Type = strings.ToLower(strings.TrimSpace(t.Type))
	t.Status = strings.ToLower(strings.TrimSpace(t.Status))
	if t.Status == "" {
		t.Status = "open"
	}
	if err := validate.Struct(t); err != nil {
		return booking.FromValidator(err, taskMessages)
	}
	return nil
}

// Validate rejects empty or out-of-vocabulary updates.
func (u TaskUpdate) Validate() error {
	if u.Status == nil && u.AssignedTo == nil && u.Notes == nil {
		return &booking.ValidationError{Message: "Nothing to update"}
	}
	if err := validate.Struct(u); err != nil {
		return booking.FromValidator(err, taskMessages)
	}
	return nil
}
