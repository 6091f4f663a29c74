package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormatLine(t *testing.T) {
	ev, err := NewEvent(TypeBookingCreated, "frontdesk", BookingCreated{
		Rooms: []string{"101", "102"}, Arrival: "2024-03-01", Departure: "2024-03-03", Guest: "Karim Haddad",
	})
	if err != nil {
		t.Fatal(err)
	}
	ev.OccurredAt = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	line := formatLine(ev)
	for _, want := range []string{"[2024-03-01T09:30:00Z] booking.created", "by=frontdesk", `guest="Karim Haddad"`, "rooms=[101,102]", "stay=2024-03-01..2024-03-03"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") || strings.Count(line, "\n") != 1 {
		t.Errorf("line not terminated once: %q", line)
	}
}

func TestFormatLineUnknownType(t *testing.T) {
	line := formatLine(Event{Type: "other", Data: json.RawMessage(`{"x":1}`)})
	if !strings.Contains(line, `data={"x":1}`) {
		t.Fatalf("line = %q", line)
	}
}

func TestHandleMessageAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "audit.log")
	for _, status := range []string{"vacant_dirty", "inspected"} {
		ev, _ := NewEvent(TypeRoomStatusUpdated, "hk", RoomStatusUpdated{Room: "101", Unit: "583466-1", Status: status})
		body, _ := json.Marshal(ev)
		if err := handleMessage(path, body); err != nil {
			t.Fatal(err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 2 || !strings.Contains(lines[1], "status=inspected") {
		t.Fatalf("log = %q", data)
	}
	if err := handleMessage(path, []byte("not json")); err == nil {
		t.Fatal("bad payload accepted")
	}
}
