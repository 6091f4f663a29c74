package booking

import "strings"

// Bucket selects bookings relative to a reference date.
type Bucket string

const (
	BucketAll        Bucket = "all"
	BucketToday      Bucket = "today"
	BucketUpcoming   Bucket = "upcoming"
	BucketPast       Bucket = "past"
	BucketArrivals   Bucket = "arrivals"
	BucketDepartures Bucket = "departures"
	BucketInHouse    Bucket = "inHouse"
)

var buckets = map[Bucket]func(b Booking, ref Date) bool{
	BucketAll:        func(Booking, Date) bool { return true },
	BucketToday:      func(b Booking, ref Date) bool { return b.Arrival == ref || b.Departure == ref },
	BucketUpcoming:   func(b Booking, ref Date) bool { return b.Arrival > ref },
	BucketPast:       func(b Booking, ref Date) bool { return b.Departure < ref },
	BucketArrivals:   func(b Booking, ref Date) bool { return b.Arrival == ref },
	BucketDepartures: func(b Booking, ref Date) bool { return b.Departure == ref },
	BucketInHouse:    func(b Booking, ref Date) bool { return b.Arrival <= ref && ref < b.Departure },
}

// ParseBucket maps a query value to a Bucket.  Matching is
// case-insensitive; an empty string means BucketAll.
func ParseBucket(s string) (Bucket, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BucketAll, true
	}
	for k := range buckets {
		if strings.EqualFold(string(k), s) {
			return k, true
		}
	}
	return "", false
}

// FilterByBucket returns the bookings in bucket relative to ref, in input
// order.  An unknown bucket behaves like BucketAll.
func FilterByBucket(bookings []Booking, bucket Bucket, ref Date) []Booking {
	pred, ok := buckets[bucket]
	if !ok {
		pred = buckets[BucketAll]
	}
	return filter(bookings, func(b Booking) bool { return pred(b, ref) })
}

// ArrivalsBetween returns bookings arriving within [from, to], both ends
// inclusive.
func ArrivalsBetween(bookings []Booking, from, to Date) []Booking {
	return filter(bookings, func(b Booking) bool { return b.Arrival >= from && b.Arrival <= to })
}

// RoomNamer resolves a unit to its display room number.
type RoomNamer func(roomID, unitID ID) string

// Search keeps bookings whose guest name, room number or booking id
// contains query, ignoring case.  A blank query keeps everything.
func Search(bookings []Booking, query string, room RoomNamer) []Booking {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return filter(bookings, func(Booking) bool { return true })
	}
	return filter(bookings, func(b Booking) bool {
		if strings.Contains(strings.ToLower(b.GuestName()), q) {
			return true
		}
		if room != nil && strings.Contains(strings.ToLower(room(b.RoomID, b.UnitID)), q) {
			return true
		}
		return strings.Contains(b.ID.String(), q)
	})
}
