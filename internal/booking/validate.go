package booking

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// report json names so messages and Field match the wire format
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError rejects user input before anything is written upstream.
// Message is meant to be shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// fieldMessages maps "Field.tag" to the message shown to staff.  Lookups
// fall back to "Field" and then to a generic message.
var fieldMessages = map[string]string{
	"FirstName.required": "Please enter guest name",
	"Mobile.required":    "Please enter phone number",
	"Email.email":        "Please enter a valid email address",
	"NumAdult":           "Number of adults must be between 1 and 20",
	"NumChild":           "Number of children must be between 0 and 20",
	"FirstName":          "Guest name is too long",
	"LastName":           "Guest last name is too long",
	"Mobile":             "Phone number is too long",
}

func fromValidator(err error) error { return FromValidator(err, fieldMessages) }

// FromValidator turns the first validator failure into a ValidationError
// whose message comes from messages, keyed "Field.tag" or "Field".
func FromValidator(err error, messages map[string]string) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return &ValidationError{Message: "invalid input"}
	}
	fe := ves[0]
	msg, ok := messages[fe.StructField()+"."+fe.Tag()]
	if !ok {
		msg, ok = messages[fe.StructField()]
	}
	if !ok {
		msg = "invalid value for " + fe.Field()
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}

// GuestForm is the guest section of the booking form.
type GuestForm struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Mobile    string `json:"mobile" validate:"required,max=32"`
	Email     string `json:"email" validate:"omitempty,email"`
	NumAdult  int    `json:"numAdult" validate:"min=1,max=20"`
	NumChild  int    `json:"numChild" validate:"min=0,max=20"`
}

// normalize trims text fields and applies the form defaults of two adults
// and no children when the counts are left empty.
func (g GuestForm) normalize() GuestForm {
	g.FirstName = strings.TrimSpace(g.FirstName)
	g.LastName = strings.TrimSpace(g.LastName)
	g.Mobile = strings.TrimSpace(g.Mobile)
	g.Email = strings.TrimSpace(g.Email)
	if g.NumAdult == 0 {
		g.NumAdult = 2
	}
	return g
}

// Request is a search-and-book submission: one stay applied to one or
// more units.
type Request struct {
	CheckIn  Date      `json:"checkIn"`
	CheckOut Date      `json:"checkOut"`
	Units    []UnitKey `json:"units"`
	Guest    GuestForm `json:"guest"`
}

// Draft is a new booking record as written to the reservation API.
type Draft struct {
	PropertyID int64  `json:"propertyId"`
	RoomID     ID     `json:"roomId"`
	UnitID     ID     `json:"unitId"`
	Arrival    Date   `json:"arrival"`
	Departure  Date   `json:"departure"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email"`
	NumAdult   int    `json:"numAdult"`
	NumChild   int    `json:"numChild"`
	Status     string `json:"status"`
	Referer    string `json:"referer"`
}

// Referer tags bookings created through this service.
const Referer = "frontdesk"

// Drafts validates r and expands it into one draft per selected unit.
// Duplicate units are collapsed.
func Drafts(r Request, propertyID int64) ([]Draft, error) {
	g := r.Guest.normalize()
	if err := validate.Struct(g); err != nil {
		return nil, fromValidator(err)
	}
	if len(r.Units) == 0 {
		return nil, &ValidationError{Field: "units", Message: "Please select at least one room"}
	}
	if err := ValidateRange(r.CheckIn, r.CheckOut); err != nil {
		return nil, err
	}
	seen := make(map[UnitKey]bool, len(r.Units))
	out := make([]Draft, 0, len(r.Units))
	for _, u := range r.Units {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, Draft{
			PropertyID: propertyID,
			RoomID:     u.RoomID,
			UnitID:     u.UnitID,
			Arrival:    r.CheckIn,
			Departure:  r.CheckOut,
			FirstName:  g.FirstName,
			LastName:   g.LastName,
			Mobile:     g.Mobile,
			Email:      g.Email,
			NumAdult:   g.NumAdult,
			NumChild:   g.NumChild,
			Status:     "confirmed",
			Referer:    Referer,
		})
	}
	return out, nil
}

// Units returns the units the drafts will occupy.
func Units(drafts []Draft) []UnitKey {
	out := make([]UnitKey, len(drafts))
	for i, d := range drafts {
		out[i] = UnitKey{RoomID: d.RoomID, UnitID: d.UnitID}
	}
	return out
}

// ValidateRange checks that [start, end) is a non-empty range of valid
// dates.
func ValidateRange(start, end Date) error {
	if !start.Valid() {
		return &ValidationError{Field: "checkIn", Message: "Please enter a check-in date (YYYY-MM-DD)"}
	}
	if !end.Valid() {
		return &ValidationError{Field: "checkOut", Message: "Please enter a check-out date (YYYY-MM-DD)"}
	}
	if start >= end {
		return &ValidationError{Field: "checkOut", Message: "Check-out must be after check-in"}
	}
	return nil
}
