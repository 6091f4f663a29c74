package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/iliyamo/frontdesk/internal/booking"
)

// FetchBookings returns the full booking list.  Any transport, status or
// decode failure is returned as a *FetchError; it never degrades to an
// empty list.
func (c *Client) FetchBookings(ctx context.Context) ([]booking.Booking, error) {
	target := c.reservations + "/getBookings"
	data, err := c.do(ctx, "getBookings", http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeList[booking.Booking](data, "data")
	if err != nil {
		return nil, &FetchError{Op: "getBookings", URL: target, Err: err}
	}
	return list, nil
}

func (c *Client) writeURL() string {
	return withQuery(c.reservations, url.Values{"endpoint": {"bookings"}, "action": {"write"}})
}

// CreateBookings writes one record per draft in a single request.
func (c *Client) CreateBookings(ctx context.Context, drafts []booking.Draft) (json.RawMessage, error) {
	data, err := c.do(ctx, "createBookings", http.MethodPost, c.writeURL(), drafts)
	if err != nil {
		return nil, err
	}
	c.log.Info("bookings created", zap.Int("count", len(drafts)))
	return ack(data), nil
}

// UpdateBooking writes the patched fields of one booking.
func (c *Client) UpdateBooking(ctx context.Context, id booking.ID, p booking.Patch) (json.RawMessage, error) {
	payload := []map[string]any{p.Fields(id)}
	data, err := c.do(ctx, "updateBooking", http.MethodPost, c.writeURL(), payload)
	if err != nil {
		return nil, err
	}
	c.log.Info("booking updated", zap.Int64("booking_id", int64(id)))
	return ack(data), nil
}

// ack returns the upstream acknowledgement, or null when the body is not
// JSON.
func ack(data []byte) json.RawMessage {
	if json.Valid(data) {
		return json.RawMessage(data)
	}
	return json.RawMessage("null")
}
