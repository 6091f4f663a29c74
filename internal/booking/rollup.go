package booking

import (
	"slices"
	"strings"
)

// Totals is the financial rollup of a booking list.
type Totals struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalPaid    float64 `json:"totalPaid"`
	TotalDue     float64 `json:"totalDue"`
	Count        int     `json:"count"`
}

// Rollup sums price and deposit over bookings.  TotalDue is not clamped,
// so an overpaid list reports a negative balance.
func Rollup(bookings []Booking) Totals {
	var t Totals
	for _, b := range bookings {
		t.TotalRevenue += b.Price.Float()
		t.TotalPaid += b.Deposit.Float()
	}
	t.TotalDue = t.TotalRevenue - t.TotalPaid
	t.Count = len(bookings)
	return t
}

// PaymentPartition splits bookings by how much has been paid.  The three
// lists are disjoint and together hold every input booking.
type PaymentPartition struct {
	FullyPaid     []Booking `json:"fullyPaid"`
	PartiallyPaid []Booking `json:"partiallyPaid"`
	Unpaid        []Booking `json:"unpaid"`
}

// ByPaymentStatus partitions bookings.  Fully paid is tested first
// (deposit >= price), so a zero-price booking with no deposit counts as
// fully paid.  Unpaid means a deposit of exactly zero.
func ByPaymentStatus(bookings []Booking) PaymentPartition {
	p := PaymentPartition{
		FullyPaid:     make([]Booking, 0),
		PartiallyPaid: make([]Booking, 0),
		Unpaid:        make([]Booking, 0),
	}
	for _, b := range bookings {
		switch {
		case b.Deposit >= b.Price:
			p.FullyPaid = append(p.FullyPaid, b)
		case b.Deposit == 0:
			p.Unpaid = append(p.Unpaid, b)
		default:
			p.PartiallyPaid = append(p.PartiallyPaid, b)
		}
	}
	return p
}

// DayTotal is the arrivals breakdown for one date.
type DayTotal struct {
	Date    Date    `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// DailyArrivals buckets bookings arriving in [from, to] by arrival date,
// ascending.  Dates without arrivals are left out.
func DailyArrivals(bookings []Booking, from, to Date) []DayTotal {
	byDay := make(map[Date]*DayTotal)
	for _, b := range ArrivalsBetween(bookings, from, to) {
		d, ok := byDay[b.Arrival]
		if !ok {
			d = &DayTotal{Date: b.Arrival}
			byDay[b.Arrival] = d
		}
		d.Count++
		d.Revenue += b.Price.Float()
	}
	out := make([]DayTotal, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	slices.SortFunc(out, func(a, b DayTotal) int { return strings.Compare(string(a.Date), string(b.Date)) })
	return out
}

// Outstanding returns bookings with a positive balance, largest balance
// first.
func Outstanding(bookings []Booking) []Booking {
	return SortByDueDesc(filter(bookings, func(b Booking) bool { return b.Due() > 0 }))
}
