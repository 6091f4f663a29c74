package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/frontdesk/internal/auth"
	"github.com/iliyamo/frontdesk/internal/booking"
	"github.com/iliyamo/frontdesk/internal/catalog"
	"github.com/iliyamo/frontdesk/internal/handler"
	"github.com/iliyamo/frontdesk/internal/housekeeping"
	"github.com/iliyamo/frontdesk/internal/middleware"
	"github.com/iliyamo/frontdesk/internal/model"
	"github.com/iliyamo/frontdesk/internal/queue"
	"github.com/iliyamo/frontdesk/internal/repository"
	"github.com/iliyamo/frontdesk/internal/upstream"
)

type fakeReservations struct {
	mu       sync.Mutex
	bookings []booking.Booking
	fetchErr error
	writeErr error
	created  [][]booking.Draft
	patched  map[booking.ID]booking.Patch
}

func (f *fakeReservations) FetchBookings(context.Context) ([]booking.Booking, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.bookings, nil
}

func (f *fakeReservations) CreateBookings(_ context.Context, d []booking.Draft) (json.RawMessage, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, d)
	return json.RawMessage(`{"success":true}`), nil
}

func (f *fakeReservations) UpdateBooking(_ context.Context, id booking.ID, p booking.Patch) (json.RawMessage, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.patched == nil {
		f.patched = map[booking.ID]booking.Patch{}
	}
	f.patched[id] = p
	return json.RawMessage(`{"success":true}`), nil
}

type fakeHousekeeping struct {
	stored  housekeeping.StatusMap
	updates map[string]housekeeping.Status
	tasks   []housekeeping.Task
}

func (f *fakeHousekeeping) FetchRoomStatus(context.Context) housekeeping.StatusMap {
	if f.stored == nil {
		return housekeeping.StatusMap{}
	}
	return f.stored
}

func (f *fakeHousekeeping) UpdateRoomStatus(_ context.Context, k booking.UnitKey, s housekeeping.Status) (json.RawMessage, error) {
	if f.updates == nil {
		f.updates = map[string]housekeeping.Status{}
	}
	f.updates[k.String()] = s
	return json.RawMessage(`{}`), nil
}

func (f *fakeHousekeeping) FetchTasks(context.Context) ([]housekeeping.Task, error) {
	return f.tasks, nil
}

func (f *fakeHousekeeping) CreateTask(context.Context, housekeeping.NewTask) (json.RawMessage, error) {
	return json.RawMessage(`{"id":1}`), nil
}

func (f *fakeHousekeeping) UpdateTask(context.Context, string, housekeeping.TaskUpdate) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

type recorder struct {
	mu     sync.Mutex
	events []queue.Event
}

func (r *recorder) Publish(_ context.Context, ev queue.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

type fakeUsers map[string]model.User

func (f fakeUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := f[username]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

const testCatalog = `
property_id: 1
rooms:
  - {id: 10, name: Deluxe, units: 2, numbers: {1: 101, 2: 102}}
  - {id: 20, name: Suite, units: 1, numbers: {1: 201}}
`

func master(id booking.ID) *booking.ID { return &id }

func testBookings() []booking.Booking {
	return []booking.Booking{
		{ID: 1, RoomID: 10, UnitID: 1, Arrival: "2024-03-08", Departure: "2024-03-10", Price: 300, Deposit: 300, FirstName: "Ali", LastName: "Rahimi"},
		{ID: 2, RoomID: 10, UnitID: 1, Arrival: "2024-03-10", Departure: "2024-03-12", Price: 200, FirstName: "Sara", LastName: "Karimi"},
		{ID: 3, MasterID: master(3), RoomID: 10, UnitID: 2, Arrival: "2024-03-09", Departure: "2024-03-13", Price: 400, Deposit: 100, FirstName: "Nima", LastName: "Azad"},
		{ID: 4, MasterID: master(3), RoomID: 20, UnitID: 1, Arrival: "2024-03-09", Departure: "2024-03-13", Price: 500, Deposit: 100, FirstName: "Nima", LastName: "Azad"},
	}
}

type fixture struct {
	e      *echo.Echo
	res    *fakeReservations
	hk     *fakeHousekeeping
	events *recorder
	tokens map[string]string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatal(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	users := fakeUsers{}
	for i, role := range auth.Roles {
		users[role] = model.User{ID: uint64(i + 1), Username: role, Name: role, Role: role, IsActive: true, PasswordHash: string(hash)}
	}

	log := zap.NewNop()
	authn := auth.NewAuthenticator(users, auth.NewMemoryStore(), "test-secret", time.Hour, log)
	f := &fixture{
		e:      echo.New(),
		res:    &fakeReservations{bookings: testBookings()},
		hk:     &fakeHousekeeping{},
		events: &recorder{},
		tokens: map[string]string{},
	}
	now := func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }
	fd := handler.NewFrontDesk(f.res, f.hk, cat, f.events, log, now, 0)
	g := Guards{Session: middleware.SessionAuth(authn, log)}

	RegisterRoutes(f.e)
	RegisterAuth(f.e, handler.NewAuthHandler(authn, log), g)
	RegisterFrontDesk(f.e, fd, g)

	for _, role := range auth.Roles {
		rec := f.do(t, http.MethodPost, "/v1/auth/login", "", `{"username":"`+role+`","password":"pw"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("login %s = %d %s", role, rec.Code, rec.Body)
		}
		var body struct {
			Token string `json:"token"`
		}
		decode(t, rec, &body)
		f.tokens[role] = body.Token
	}
	return f
}

func (f *fixture) do(t *testing.T, method, path, role, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if tok := f.tokens[role]; tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body, err)
	}
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(t, http.MethodGet, "/healthz", "", ""); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz = %d %s", rec.Code, rec.Body)
	}
}

func TestLoginAndMe(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(t, http.MethodPost, "/v1/auth/login", "", `{"username":"admin","password":"nope"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password = %d", rec.Code)
	}
	rec := f.do(t, http.MethodGet, "/v1/me", auth.RoleAccounting, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("me = %d", rec.Code)
	}
	var body struct {
		User struct {
			Role              string   `json:"role"`
			Screens           []string `json:"screens"`
			CanEditBookings   bool     `json:"canEditBookings"`
			CanViewFinancials bool     `json:"canViewFinancials"`
		} `json:"user"`
	}
	decode(t, rec, &body)
	if body.User.Role != auth.RoleAccounting || len(body.User.Screens) != 3 || body.User.CanEditBookings || !body.User.CanViewFinancials {
		t.Fatalf("me = %+v", body.User)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(t, http.MethodPost, "/v1/auth/logout", auth.RoleFrontDesk, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("logout = %d", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/v1/today", auth.RoleFrontDesk, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("today after logout = %d", rec.Code)
	}
}

func TestScreenAccess(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		role, method, path string
		want               int
	}{
		{auth.RoleHKTeam, http.MethodGet, "/v1/today", http.StatusForbidden},
		{auth.RoleHKTeam, http.MethodGet, "/v1/housekeeping", http.StatusOK},
		{auth.RoleHKManager, http.MethodGet, "/v1/today", http.StatusOK},
		{auth.RoleHKManager, http.MethodGet, "/v1/bookings", http.StatusForbidden},
		{auth.RoleAccounting, http.MethodGet, "/v1/accounting", http.StatusOK},
		{auth.RoleAccounting, http.MethodGet, "/v1/calendar", http.StatusForbidden},
		{auth.RoleAccounting, http.MethodPatch, "/v1/bookings/2", http.StatusForbidden},
		{auth.RoleFrontDesk, http.MethodGet, "/v1/accounting", http.StatusForbidden},
		{auth.RoleFrontDesk, http.MethodGet, "/v1/availability?checkIn=2024-03-12&checkOut=2024-03-14", http.StatusOK},
		{"", http.MethodGet, "/v1/today", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		body := ""
		if tt.method == http.MethodPatch {
			body = `{"mobile":"123"}`
		}
		if rec := f.do(t, tt.method, tt.path, tt.role, body); rec.Code != tt.want {
			t.Errorf("%s %s as %q = %d, want %d", tt.method, tt.path, tt.role, rec.Code, tt.want)
		}
	}
}

func TestToday(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/v1/today", auth.RoleFrontDesk, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("today = %d %s", rec.Code, rec.Body)
	}
	var body struct {
		Date   string `json:"date"`
		Counts struct {
			Arrivals, Departures, InHouse int
		} `json:"counts"`
		Arrivals []struct {
			ID    int64    `json:"id"`
			Room  string   `json:"room"`
			Price *float64 `json:"price"`
		} `json:"arrivals"`
	}
	decode(t, rec, &body)
	if body.Date != "2024-03-10" || body.Counts.Arrivals != 1 || body.Counts.Departures != 1 || body.Counts.InHouse != 3 {
		t.Fatalf("today = %+v", body)
	}
	if a := body.Arrivals[0]; a.ID != 2 || a.Room != "101" || a.Price == nil || *a.Price != 200 {
		t.Fatalf("arrival = %+v", a)
	}
}

func TestUpstreamFailureIsSurfaced(t *testing.T) {
	f := newFixture(t)
	f.res.fetchErr = &upstream.FetchError{Op: "getBookings", Status: http.StatusInternalServerError}
	for _, path := range []string{"/v1/today", "/v1/bookings", "/v1/accounting", "/v1/housekeeping"} {
		if rec := f.do(t, http.MethodGet, path, auth.RoleAdmin, ""); rec.Code != http.StatusBadGateway {
			t.Errorf("%s = %d, want 502", path, rec.Code)
		}
	}
}

func TestListBookingsFilterAndSearch(t *testing.T) {
	f := newFixture(t)
	var body struct {
		Count    int `json:"count"`
		Groups   int `json:"groups"`
		Bookings []struct {
			ID int64 `json:"id"`
		} `json:"bookings"`
	}
	decode(t, f.do(t, http.MethodGet, "/v1/bookings", auth.RoleFrontDesk, ""), &body)
	if body.Count != 4 || body.Groups != 1 || body.Bookings[0].ID != 2 {
		t.Fatalf("all = %+v", body)
	}
	decode(t, f.do(t, http.MethodGet, "/v1/bookings?filter=inHouse&q=azad", auth.RoleFrontDesk, ""), &body)
	if body.Count != 2 {
		t.Fatalf("inHouse azad = %+v", body)
	}
	decode(t, f.do(t, http.MethodGet, "/v1/bookings?filter=bogus&q=201", auth.RoleFrontDesk, ""), &body)
	if body.Count != 1 || body.Bookings[0].ID != 4 {
		t.Fatalf("room search = %+v", body)
	}
}

func TestBookingDetailGroup(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/v1/bookings/4", auth.RoleAccounting, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("detail = %d", rec.Code)
	}
	var body struct {
		CanEdit bool `json:"canEdit"`
		Group   struct {
			IsGroup bool           `json:"isGroup"`
			Rooms   []string       `json:"rooms"`
			Totals  booking.Totals `json:"totals"`
		} `json:"group"`
	}
	decode(t, rec, &body)
	if body.CanEdit || !body.Group.IsGroup || strings.Join(body.Group.Rooms, ",") != "102,201" {
		t.Fatalf("detail = %+v", body)
	}
	if body.Group.Totals.TotalRevenue != 900 || body.Group.Totals.TotalDue != 700 {
		t.Fatalf("totals = %+v", body.Group.Totals)
	}
	if rec := f.do(t, http.MethodGet, "/v1/bookings/99", auth.RoleAccounting, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing booking = %d", rec.Code)
	}
}

func TestUpdateBooking(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(t, http.MethodPatch, "/v1/bookings/2", auth.RoleFrontDesk, `{"price":0}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("price edit = %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPatch, "/v1/bookings/2", auth.RoleFrontDesk, `{"firstName":" "}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("blank name = %d", rec.Code)
	}

	f.res.writeErr = &upstream.FetchError{Op: "updateBooking", Status: http.StatusBadGateway}
	if rec := f.do(t, http.MethodPatch, "/v1/bookings/2", auth.RoleFrontDesk, `{"mobile":"555"}`); rec.Code != http.StatusBadGateway {
		t.Fatalf("failed write = %d", rec.Code)
	}
	if len(f.events.types()) != 0 {
		t.Fatal("event published for failed write")
	}

	f.res.writeErr = nil
	rec := f.do(t, http.MethodPatch, "/v1/bookings/2", auth.RoleFrontDesk, `{"mobile":"555","numAdult":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d %s", rec.Code, rec.Body)
	}
	var body struct {
		Booking struct {
			Mobile   string `json:"mobile"`
			NumAdult int    `json:"numAdult"`
		} `json:"booking"`
		Updated []string `json:"updated"`
	}
	decode(t, rec, &body)
	if body.Booking.Mobile != "555" || body.Booking.NumAdult != 3 || strings.Join(body.Updated, ",") != "mobile,numAdult" {
		t.Fatalf("update = %+v", body)
	}
	if p := f.res.patched[2]; p.Mobile == nil || *p.Mobile != "555" {
		t.Fatalf("patch sent = %+v", p)
	}
	if got := f.events.types(); len(got) != 1 || got[0] != queue.TypeBookingUpdated {
		t.Fatalf("events = %v", got)
	}
}

func TestAvailabilityAndCreate(t *testing.T) {
	f := newFixture(t)
	var avail struct {
		Available int `json:"available"`
		Nights    int `json:"nights"`
		Units     []struct {
			Number    string `json:"number"`
			Available bool   `json:"available"`
		} `json:"units"`
	}
	decode(t, f.do(t, http.MethodGet, "/v1/availability?checkIn=2024-03-12&checkOut=2024-03-14", auth.RoleFrontDesk, ""), &avail)
	if avail.Available != 1 || avail.Nights != 2 || avail.Units[0].Number != "101" || !avail.Units[0].Available {
		t.Fatalf("availability = %+v", avail)
	}
	if rec := f.do(t, http.MethodGet, "/v1/availability?checkIn=2024-03-14&checkOut=2024-03-12", auth.RoleFrontDesk, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("reversed range = %d", rec.Code)
	}

	form := `"guest":{"firstName":"Leila","mobile":"0912"}`
	rec := f.do(t, http.MethodPost, "/v1/bookings", auth.RoleFrontDesk,
		`{"checkIn":"2024-03-12","checkOut":"2024-03-14","units":[{"roomId":10,"unitId":1},{"roomId":10,"unitId":2}],`+form+`}`)
	if rec.Code != http.StatusConflict || !strings.Contains(rec.Body.String(), `"102"`) {
		t.Fatalf("conflict = %d %s", rec.Code, rec.Body)
	}
	if len(f.res.created) != 0 {
		t.Fatal("bookings written despite conflict")
	}

	rec = f.do(t, http.MethodPost, "/v1/bookings", auth.RoleFrontDesk,
		`{"checkIn":"2024-03-12","checkOut":"2024-03-14","units":[],`+form+`}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Please select at least one room") {
		t.Fatalf("no units = %d %s", rec.Code, rec.Body)
	}

	rec = f.do(t, http.MethodPost, "/v1/bookings", auth.RoleFrontDesk,
		`{"checkIn":"2024-03-12","checkOut":"2024-03-14","units":[{"roomId":10,"unitId":1}],`+form+`}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", rec.Code, rec.Body)
	}
	if len(f.res.created) != 1 || len(f.res.created[0]) != 1 {
		t.Fatalf("created = %+v", f.res.created)
	}
	d := f.res.created[0][0]
	if d.PropertyID != 1 || d.Status != "confirmed" || d.Referer != booking.Referer || d.NumAdult != 2 {
		t.Fatalf("draft = %+v", d)
	}
	if got := f.events.types(); len(got) != 1 || got[0] != queue.TypeBookingCreated {
		t.Fatalf("events = %v", got)
	}
}

func TestCalendar(t *testing.T) {
	f := newFixture(t)
	var body struct {
		Dates []string `json:"dates"`
		Rows  []struct {
			Number string `json:"number"`
			Cells  []struct {
				BookingID int64 `json:"bookingId"`
				CheckIn   bool  `json:"checkIn"`
				CheckOut  bool  `json:"checkOut"`
			} `json:"cells"`
		} `json:"rows"`
	}
	decode(t, f.do(t, http.MethodGet, "/v1/calendar?start=2024-03-09&days=3", auth.RoleFrontDesk, ""), &body)
	if len(body.Dates) != 3 || len(body.Rows) != 3 {
		t.Fatalf("calendar = %+v", body)
	}
	row := body.Rows[0]
	if row.Number != "101" || row.Cells[0].BookingID != 1 || !row.Cells[0].CheckOut || row.Cells[1].BookingID != 2 || !row.Cells[1].CheckIn {
		t.Fatalf("row 101 = %+v", row)
	}
	if rec := f.do(t, http.MethodGet, "/v1/calendar?days=0", auth.RoleFrontDesk, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("days=0 = %d", rec.Code)
	}
}

func TestAccounting(t *testing.T) {
	f := newFixture(t)
	var body struct {
		Month   string         `json:"month"`
		Totals  booking.Totals `json:"totals"`
		Payment struct {
			FullyPaid, PartiallyPaid, Unpaid int
		} `json:"payment"`
		Outstanding []struct {
			ID int64 `json:"id"`
		} `json:"outstanding"`
		Daily []booking.DayTotal `json:"daily"`
	}
	decode(t, f.do(t, http.MethodGet, "/v1/accounting?month=2024-03", auth.RoleAccounting, ""), &body)
	if body.Totals.TotalRevenue != 1400 || body.Totals.TotalPaid != 500 || body.Totals.Count != 4 {
		t.Fatalf("totals = %+v", body.Totals)
	}
	if body.Payment.FullyPaid != 1 || body.Payment.PartiallyPaid != 2 || body.Payment.Unpaid != 1 {
		t.Fatalf("payment = %+v", body.Payment)
	}
	if len(body.Outstanding) != 3 || body.Outstanding[0].ID != 4 || body.Outstanding[2].ID != 2 {
		t.Fatalf("outstanding = %+v", body.Outstanding)
	}
	if len(body.Daily) != 3 || body.Daily[0].Date != "2024-03-08" || body.Daily[1].Count != 2 {
		t.Fatalf("daily = %+v", body.Daily)
	}
	if rec := f.do(t, http.MethodGet, "/v1/accounting?month=March", auth.RoleAccounting, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad month = %d", rec.Code)
	}
}

func TestHousekeepingBoard(t *testing.T) {
	f := newFixture(t)
	f.hk.stored = housekeeping.StatusMap{"10-1": housekeeping.Maintenance}
	rec := f.do(t, http.MethodGet, "/v1/housekeeping", auth.RoleHKTeam, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("board = %d", rec.Code)
	}
	var body struct {
		Units []struct {
			Number  string         `json:"number"`
			Status  string         `json:"status"`
			Booking map[string]any `json:"booking"`
		} `json:"units"`
	}
	decode(t, rec, &body)
	u := body.Units[0]
	if u.Number != "101" || u.Status != string(housekeeping.CheckinToday) {
		t.Fatalf("unit 101 = %+v", u)
	}
	if _, ok := u.Booking["price"]; ok || u.Booking["id"] != float64(2) {
		t.Fatalf("board booking = %v", u.Booking)
	}

	if rec := f.do(t, http.MethodPut, "/v1/housekeeping/rooms/20/1", auth.RoleHKTeam, `{"status":"spotless"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown status = %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPut, "/v1/housekeeping/rooms/99/1", auth.RoleHKTeam, `{"status":"inspected"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown room = %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPut, "/v1/housekeeping/rooms/20/1", auth.RoleHKTeam, `{"status":"inspected"}`); rec.Code != http.StatusOK {
		t.Fatalf("status update = %d", rec.Code)
	}
	if f.hk.updates["20-1"] != housekeeping.Inspected {
		t.Fatalf("updates = %v", f.hk.updates)
	}
}

func TestHousekeepingTasks(t *testing.T) {
	f := newFixture(t)
	f.hk.tasks = []housekeeping.Task{{ID: "7", RoomID: 20, UnitID: 1, Type: "cleaning"}}
	var list struct {
		Tasks []struct {
			Room string `json:"room"`
		} `json:"tasks"`
	}
	decode(t, f.do(t, http.MethodGet, "/v1/housekeeping/tasks", auth.RoleHKManager, ""), &list)
	if len(list.Tasks) != 1 || list.Tasks[0].Room != "201" {
		t.Fatalf("tasks = %+v", list)
	}
	if rec := f.do(t, http.MethodPost, "/v1/housekeeping/tasks", auth.RoleHKManager, `{"roomId":20,"unitId":1,"type":"cleaning"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create task = %d %s", rec.Code, rec.Body)
	}
	if rec := f.do(t, http.MethodPut, "/v1/housekeeping/tasks/7", auth.RoleHKManager, `{"status":"done"}`); rec.Code != http.StatusOK {
		t.Fatalf("update task = %d %s", rec.Code, rec.Body)
	}
	if rec := f.do(t, http.MethodPut, "/v1/housekeeping/tasks/7", auth.RoleHKManager, `{"status":"lost"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad task status = %d", rec.Code)
	}
}
