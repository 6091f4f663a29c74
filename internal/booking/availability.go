package booking

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Occupancy is the state of a unit on a single date.
type Occupancy string

const (
	Vacant   Occupancy = "vacant"
	Occupied Occupancy = "occupied"
	CheckIn  Occupancy = "checkin"
	CheckOut Occupancy = "checkout"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one night.  Touching endpoints do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd Date) bool {
	return aStart < bEnd && bStart < aEnd
}

// IsAvailable reports whether the unit (roomID, unitID) has no booking
// intersecting [start, end).  It is a linear scan; at front-desk scale
// (tens of units, hundreds of bookings) no index is needed.
func IsAvailable(bookings []Booking, roomID, unitID ID, start, end Date) bool {
	for _, b := range bookings {
		if b.RoomID != roomID || b.UnitID != unitID {
			continue
		}
		if b.Arrival < end && b.Departure > start {
			return false
		}
	}
	return true
}

// Unavailable returns the units from want that are not available for
// [start, end), preserving the order of want.
func Unavailable(bookings []Booking, want []UnitKey, start, end Date) []UnitKey {
	out := make([]UnitKey, 0)
	for _, u := range want {
		if !IsAvailable(bookings, u.RoomID, u.UnitID, start, end) {
			out = append(out, u)
		}
	}
	return out
}

// ScanAvailability checks every unit in units against [start, end).  The
// checks run on a bounded set of goroutines; result i always belongs to
// units[i] regardless of completion order.
func ScanAvailability(bookings []Booking, units []UnitKey, start, end Date) []bool {
	out := make([]bool, len(units))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, u := range units {
		g.Go(func() error {
			out[i] = IsAvailable(bookings, u.RoomID, u.UnitID, start, end)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Classify returns the unit's state on date.  Check-in wins over
// check-out, and both win over plain occupancy, so a turnover day shows
// the arriving guest.
func Classify(bookings []Booking, roomID, unitID ID, date Date) Occupancy {
	checkout, occupied := false, false
	for _, b := range bookings {
		if b.RoomID != roomID || b.UnitID != unitID {
			continue
		}
		switch {
		case b.Arrival == date:
			return CheckIn
		case b.Departure == date:
			checkout = true
		case b.Arrival <= date && date < b.Departure:
			occupied = true
		}
	}
	switch {
	case checkout:
		return CheckOut
	case occupied:
		return Occupied
	}
	return Vacant
}

// Occupant returns the first booking (in input order) that holds the unit
// for the night of date.
func Occupant(bookings []Booking, roomID, unitID ID, date Date) (Booking, bool) {
	for _, b := range bookings {
		if b.RoomID == roomID && b.UnitID == unitID && b.Arrival <= date && date < b.Departure {
			return b, true
		}
	}
	return Booking{}, false
}
