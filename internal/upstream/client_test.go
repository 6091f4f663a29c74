package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iliyamo/frontdesk/internal/booking"
	"github.com/iliyamo/frontdesk/internal/housekeeping"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Options{ReservationsURL: srv.URL + "/", HousekeepingURL: srv.URL})
}

func TestFetchBookingsEnvelopes(t *testing.T) {
	bodies := map[string]string{
		"bare array": `[{"id":1,"arrival":"2024-03-01","departure":"2024-03-02","price":"100"}]`,
		"data field": `{"data":[{"id":1,"arrival":"2024-03-01","departure":"2024-03-02","price":100}]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/getBookings" || r.Method != http.MethodGet {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				_, _ = io.WriteString(w, body)
			})
			got, err := c.FetchBookings(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 || got[0].ID != 1 || got[0].Price != 100 {
				t.Fatalf("got %+v", got)
			}
		})
	}
}

func TestFetchBookingsToleratesNumericGuestFields(t *testing.T) {
	body := `{"data":[
		{"id":1,"arrival":"2024-03-01","departure":"2024-03-02","firstName":"Rahim","mobile":8801711000000},
		{"id":2,"arrival":"2024-03-01","departure":"2024-03-03","firstName":1234,"lastName":null,"email":7}
	]}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, body) })
	got, err := c.FetchBookings(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Mobile != "8801711000000" || got[1].GuestName() != "1234" {
		t.Fatalf("got %+v", got)
	}
}

func TestFetchBookingsNullIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, `{"data":null}`) })
	got, err := c.FetchBookings(context.Background())
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestFetchBookingsSurfacesFailures(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
		"not json":     func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, "<html>") },
		"wrong shape":  func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, `{"error":"x"}`) },
	}
	for name, h := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, h)
			got, err := c.FetchBookings(context.Background())
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FetchError, got %v (%v)", err, got)
			}
			if fe.Op != "getBookings" {
				t.Fatalf("op = %s", fe.Op)
			}
		})
	}

	c := New(Options{ReservationsURL: "http://127.0.0.1:1"})
	if _, err := c.FetchBookings(context.Background()); err == nil {
		t.Fatal("unreachable host returned no error")
	}
}

func TestFetchRoomStatusDegrades(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) })
	if m := c.FetchRoomStatus(context.Background()); m == nil || len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestFetchRoomStatusShapes(t *testing.T) {
	for _, body := range []string{`{"status":{"583466-1":"vacant_dirty"}}`, `{"583466-1":"vacant_dirty"}`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, body) })
		m := c.FetchRoomStatus(context.Background())
		if m["583466-1"] != housekeeping.VacantDirty {
			t.Fatalf("%s: got %v", body, m)
		}
	}
}

func TestUpdateBookingSendsOnlyPatchedFields(t *testing.T) {
	var got []map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("endpoint") != "bookings" || r.URL.Query().Get("action") != "write" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	name := "Karim"
	ack, err := c.UpdateBooking(context.Background(), 42, booking.Patch{FirstName: &name})
	if err != nil {
		t.Fatal(err)
	}
	if string(ack) != `{"success":true}` {
		t.Fatalf("ack = %s", ack)
	}
	if len(got) != 1 || got[0]["id"] != float64(42) || got[0]["firstName"] != "Karim" || len(got[0]) != 2 {
		t.Fatalf("payload = %v", got)
	}
}

func TestCreateBookingsPostsArray(t *testing.T) {
	var got []booking.Draft
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content type = %s", r.Header.Get("Content-Type"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, "ok")
	})
	drafts := []booking.Draft{{RoomID: 1, UnitID: 1}, {RoomID: 1, UnitID: 2}}
	ack, err := c.CreateBookings(context.Background(), drafts)
	if err != nil {
		t.Fatal(err)
	}
	if string(ack) != "null" || len(got) != 2 {
		t.Fatalf("ack = %s, payload = %v", ack, got)
	}
}

func TestTasks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"tasks":[{"id":7,"roomId":583466,"unitId":1,"type":"cleaning","status":"open"}]}`)
	})
	mux.HandleFunc("PUT /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "7" {
			t.Errorf("id = %s", r.PathValue("id"))
		}
		_, _ = io.WriteString(w, `{}`)
	})
	c := newTestClient(t, mux.ServeHTTP)
	tasks, err := c.FetchTasks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].ID != "7" || tasks[0].Type != "cleaning" {
		t.Fatalf("tasks = %+v", tasks)
	}
	done := "done"
	if _, err := c.UpdateTask(context.Background(), "7", housekeeping.TaskUpdate{Status: &done}); err != nil {
		t.Fatal(err)
	}
}
