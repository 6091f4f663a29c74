// Package housekeeping builds the room-status board.  Stored statuses come
// from the housekeeping API; bookings override them for the current date.
package housekeeping

import (
	"strings"

	"github.com/iliyamo/frontdesk/internal/booking"
	"github.com/iliyamo/frontdesk/internal/catalog"
)

// Status is a room status as stored by the housekeeping API.
type Status string

const (
	VacantClean   Status = "vacant_clean"
	VacantDirty   Status = "vacant_dirty"
	Occupied      Status = "occupied"
	CheckoutToday Status = "checkout_today"
	CheckinToday  Status = "checkin_today"
	Maintenance   Status = "maintenance"
	Blocked       Status = "blocked"
	Inspected     Status = "inspected"
)

// Statuses is the full vocabulary in display order.
var Statuses = []Status{
	VacantClean, VacantDirty, Occupied, CheckoutToday,
	CheckinToday, Maintenance, Blocked, Inspected,
}

var labels = map[Status]string{
	VacantClean:   "Vacant Clean",
	VacantDirty:   "Vacant Dirty",
	Occupied:      "Occupied",
	CheckoutToday: "Checkout Today",
	CheckinToday:  "Checkin Today",
	Maintenance:   "Maintenance",
	Blocked:       "Blocked",
	Inspected:     "Inspected",
}

// ParseStatus accepts a vocabulary value, ignoring case and surrounding
// space.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	_, ok := labels[st]
	return st, ok
}

// Label is the human-readable name of the status.
func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// StatusMap is the housekeeping API's "{roomId}-{unitId}" → status map.
type StatusMap map[string]Status

// Lookup returns the stored status of a unit if it is in the vocabulary.
func (m StatusMap) Lookup(k booking.UnitKey) (Status, bool) {
	s, ok := m[k.String()]
	if !ok {
		return "", false
	}
	_, known := labels[s]
	return s, known
}

// Effective returns the status shown for a unit on date.  Check-in,
// check-out and occupancy computed from bookings win over whatever was
// stored; a vacant unit shows its stored status, or vacant_clean.
func Effective(bookings []booking.Booking, stored StatusMap, k booking.UnitKey, date booking.Date) Status {
	switch booking.Classify(bookings, k.RoomID, k.UnitID, date) {
	case booking.CheckIn:
		return CheckinToday
	case booking.CheckOut:
		return CheckoutToday
	case booking.Occupied:
		return Occupied
	}
	if s, ok := stored.Lookup(k); ok {
		return s
	}
	return VacantClean
}

// UnitStatus is one tile of the board.
type UnitStatus struct {
	catalog.Unit
	Status  Status           `json:"status"`
	Label   string           `json:"label"`
	Stored  Status           `json:"stored,omitempty"`
	Booking *booking.Booking `json:"booking,omitempty"`
}

// StatusCount is one entry of the board summary.
type StatusCount struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// Board is the housekeeping view for one date.
type Board struct {
	Date    booking.Date  `json:"date"`
	Units   []UnitStatus  `json:"units"`
	Summary []StatusCount `json:"summary"`
}

// BuildBoard computes every unit's effective status for date.  Units keep
// the catalog order; the summary lists every status, including zeros.
func BuildBoard(units []catalog.Unit, bookings []booking.Booking, stored StatusMap, date booking.Date) Board {
	counts := make(map[Status]int, len(Statuses))
	tiles := make([]UnitStatus, 0, len(units))
	for _, u := range units {
		k := u.Key()
		tile := UnitStatus{Unit: u, Status: Effective(bookings, stored, k, date)}
		tile.Label = tile.Status.Label()
		if s, ok := stored.Lookup(k); ok {
			tile.Stored = s
		}
		if b, ok := guestFor(bookings, k, date); ok {
			tile.Booking = &b
		}
		counts[tile.Status]++
		tiles = append(tiles, tile)
	}
	summary := make([]StatusCount, 0, len(Statuses))
	for _, s := range Statuses {
		summary = append(summary, StatusCount{Status: s, Label: s.Label(), Count: counts[s]})
	}
	return Board{Date: date, Units: tiles, Summary: summary}
}

// guestFor picks the booking that explains a unit's state on date: the
// arriving guest first, then the guest in the room.
func guestFor(bookings []booking.Booking, k booking.UnitKey, date booking.Date) (booking.Booking, bool) {
	for _, b := range bookings {
		if b.Unit() == k && b.Arrival == date {
			return b, true
		}
	}
	return booking.Occupant(bookings, k.RoomID, k.UnitID, date)
}
