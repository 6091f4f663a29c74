// Package booking holds the front-desk engine: availability, occupancy,
// date buckets, group resolution and financial rollups over a snapshot of
// upstream booking records.  Every function in this package is pure: it
// reads the slice it is given, never mutates it, and never returns an
// error.  Malformed input degrades to zero values instead.
package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used by the reservation API.
const DateLayout = "2006-01-02"

// ID identifies a booking, a room type or a unit.  The reservation API
// sends numbers, but some proxies quote them, so both forms are accepted.
// Anything unparseable decodes to zero.
type ID int64

// UnmarshalJSON accepts a JSON number, a quoted number, or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	*id = ID(parseInt(b))
	return nil
}

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// Count is a small non-money integer such as a head count.
type Count int

// UnmarshalJSON accepts a JSON number, a quoted number, or null.
func (n *Count) UnmarshalJSON(b []byte) error {
	*n = Count(parseInt(b))
	return nil
}

// Amount is a money value.  Upstream sends either a number or a string;
// missing or unparseable values become zero (the ParseError case is
// absorbed here rather than surfaced).
type Amount float64

// UnmarshalJSON never fails.  Non-numeric payloads decode to 0.
func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = Amount(parseFloat(b))
	return nil
}

// Float returns the amount as a float64.
func (a Amount) Float() float64 { return float64(a) }

// Text is an opaque display string that tolerates numbers and null.
type Text string

// UnmarshalJSON stores strings verbatim and numbers in their JSON form.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*t = ""
			return nil
		}
		*t = Text(s)
		return nil
	}
	*t = Text(b)
	return nil
}

// Date is a calendar date in YYYY-MM-DD form.  Comparisons between
// well-formed dates are plain string comparisons, which sort the same way
// as the calendar.
type Date string

// DateOf formats t as a Date in t's own location.
func DateOf(t time.Time) Date { return Date(t.Format(DateLayout)) }

// ParseDate validates s and returns it as a Date.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", false
	}
	return Date(s), true
}

// Time parses the date at UTC midnight.
func (d Date) Time() (time.Time, bool) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Valid reports whether d is a parseable calendar date.
func (d Date) Valid() bool {
	_, ok := d.Time()
	return ok
}

// AddDays returns the date n days after d.  An invalid date is returned
// unchanged.
func (d Date) AddDays(n int) Date {
	t, ok := d.Time()
	if !ok {
		return d
	}
	return DateOf(t.AddDate(0, 0, n))
}

func (d Date) String() string { return string(d) }

// UnitKey names one physical rentable unit.
type UnitKey struct {
	RoomID ID `json:"roomId"`
	UnitID ID `json:"unitId"`
}

// String renders the key the way the housekeeping API indexes room status.
func (k UnitKey) String() string { return fmt.Sprintf("%d-%d", k.RoomID, k.UnitID) }

// Booking is one room-stay segment as returned by the reservation API.
// A multi-room reservation arrives as several bookings sharing MasterID.
type Booking struct {
	ID           ID     `json:"id"`
	MasterID     *ID    `json:"masterId,omitempty"`
	RoomID       ID     `json:"roomId"`
	UnitID       ID     `json:"unitId"`
	Arrival      Date   `json:"arrival"`
	Departure    Date   `json:"departure"`
	Price        Amount `json:"price"`
	Deposit      Amount `json:"deposit"`
	FirstName    Text   `json:"firstName,omitempty"`
	LastName     Text   `json:"lastName,omitempty"`
	Mobile       Text   `json:"mobile,omitempty"`
	Email        Text   `json:"email,omitempty"`
	NumAdult     Count  `json:"numAdult,omitempty"`
	NumChild     Count  `json:"numChild,omitempty"`
	Status       Text   `json:"status,omitempty"`
	APISource    Text   `json:"apiSource,omitempty"`
	Channel      Text   `json:"channel,omitempty"`
	Referer      Text   `json:"referer,omitempty"`
	APIReference Text   `json:"apiReference,omitempty"`
}

// Unit returns the unit the booking occupies.
func (b Booking) Unit() UnitKey { return UnitKey{RoomID: b.RoomID, UnitID: b.UnitID} }

// Due is price minus deposit.  Overpaid bookings yield a negative value.
func (b Booking) Due() float64 { return b.Price.Float() - b.Deposit.Float() }

// GuestName joins first and last name.
func (b Booking) GuestName() string {
	return strings.TrimSpace(string(b.FirstName) + " " + string(b.LastName))
}

// Nights is the number of nights charged, never less than one.
func (b Booking) Nights() int {
	a, ok1 := b.Arrival.Time()
	d, ok2 := b.Departure.Time()
	if !ok1 || !ok2 {
		return 1
	}
	n := int(math.Ceil(d.Sub(a).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}

// Malformed reports bookings whose stay is not a well-formed half-open
// interval.  Such records are still fed through every function in this
// package, but overlap results for them carry no meaning; callers are
// expected to flag them.
func (b Booking) Malformed() bool {
	return !b.Arrival.Valid() || !b.Departure.Valid() || b.Arrival >= b.Departure
}

// Malformed returns the bookings whose interval is invalid, in input order.
func Malformed(bookings []Booking) []Booking {
	return filter(bookings, Booking.Malformed)
}

// filter returns the matching bookings in input order.  The result is
// never nil so it encodes as an empty JSON array.
func filter(bookings []Booking, keep func(Booking) bool) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func unquote(b []byte) string {
	s := string(bytes.TrimSpace(b))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var out string
		if err := json.Unmarshal([]byte(s), &out); err == nil {
			return strings.TrimSpace(out)
		}
		return ""
	}
	return s
}

// numericPrefix matches the leading decimal number of a value such as
// "100abc" or "1,200".
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseFloat reads the longest leading decimal number and ignores the
// rest, so "100 USD" is 100 and "1,200" is 1.  No number, NaN and
// infinities decode to 0.
func parseFloat(b []byte) float64 {
	s := numericPrefix.FindString(unquote(b))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseInt(b []byte) int64 {
	s := unquote(b)
	if s == "" || s == "null" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f := parseFloat(b)
	return int64(f)
}
