package booking

import (
	"cmp"
	"slices"
	"strings"
)

// SortByArrivalDesc returns a copy ordered by arrival, latest first.  Ties
// fall back to booking id so the order never depends on fetch order.
func SortByArrivalDesc(bookings []Booking) []Booking {
	out := slices.Clone(bookings)
	slices.SortStableFunc(out, func(a, b Booking) int {
		if c := strings.Compare(string(b.Arrival), string(a.Arrival)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// SortByDueDesc returns a copy ordered by outstanding balance, largest
// first, then by arrival descending and booking id.
func SortByDueDesc(bookings []Booking) []Booking {
	out := slices.Clone(bookings)
	slices.SortStableFunc(out, func(a, b Booking) int {
		if c := cmp.Compare(b.Due(), a.Due()); c != 0 {
			return c
		}
		if c := strings.Compare(string(b.Arrival), string(a.Arrival)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
