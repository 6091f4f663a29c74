package handler

import (
	"github.com/iliyamo/frontdesk/internal/booking"
)

// bookingView is a booking as sent to the app: the raw record plus display
// fields.  Price, Deposit and Due are left out for roles that may not see
// money.
type bookingView struct {
	ID           booking.ID    `json:"id"`
	MasterID     *booking.ID   `json:"masterId,omitempty"`
	GroupKey     booking.ID    `json:"groupKey"`
	RoomID       booking.ID    `json:"roomId"`
	UnitID       booking.ID    `json:"unitId"`
	Room         string        `json:"room"`
	RoomName     string        `json:"roomName,omitempty"`
	Arrival      booking.Date  `json:"arrival"`
	Departure    booking.Date  `json:"departure"`
	Nights       int           `json:"nights"`
	Guest        string        `json:"guest"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Mobile       string        `json:"mobile,omitempty"`
	Email        string        `json:"email,omitempty"`
	NumAdult     booking.Count `json:"numAdult"`
	NumChild     booking.Count `json:"numChild"`
	Status       booking.Text  `json:"status,omitempty"`
	Channel      booking.Text  `json:"channel,omitempty"`
	APISource    booking.Text  `json:"apiSource,omitempty"`
	Referer      booking.Text  `json:"referer,omitempty"`
	APIReference booking.Text  `json:"apiReference,omitempty"`
	Malformed    bool          `json:"malformed,omitempty"`

	Price   *float64 `json:"price,omitempty"`
	Deposit *float64 `json:"deposit,omitempty"`
	Due     *float64 `json:"due,omitempty"`
}

func (h *FrontDesk) view(b booking.Booking, money bool) bookingView {
	v := bookingView{
		ID:           b.ID,
		MasterID:     b.MasterID,
		GroupKey:     booking.GroupKey(b),
		RoomID:       b.RoomID,
		UnitID:       b.UnitID,
		Room:         h.Catalog.RoomNumber(b.RoomID, b.UnitID),
		Arrival:      b.Arrival,
		Departure:    b.Departure,
		Nights:       b.Nights(),
		Guest:        b.GuestName(),
		FirstName:    string(b.FirstName),
		LastName:     string(b.LastName),
		Mobile:       string(b.Mobile),
		Email:        string(b.Email),
		NumAdult:     b.NumAdult,
		NumChild:     b.NumChild,
		Status:       b.Status,
		Channel:      b.Channel,
		APISource:    b.APISource,
		Referer:      b.Referer,
		APIReference: b.APIReference,
		Malformed:    b.Malformed(),
	}
	if r, ok := h.Catalog.Room(b.RoomID); ok {
		v.RoomName = r.Name
	}
	if money {
		price, deposit, due := b.Price.Float(), b.Deposit.Float(), b.Due()
		v.Price, v.Deposit, v.Due = &price, &deposit, &due
	}
	return v
}

func (h *FrontDesk) views(list []booking.Booking, money bool) []bookingView {
	out := make([]bookingView, len(list))
	for i, b := range list {
		out[i] = h.view(b, money)
	}
	return out
}
