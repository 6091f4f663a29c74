package booking

import "testing"

func master(id int64) *ID {
	m := ID(id)
	return &m
}

func TestGroupOf(t *testing.T) {
	bookings := []Booking{
		{ID: 10},
		{ID: 11, MasterID: master(10)},
		{ID: 12, MasterID: master(10)},
		{ID: 20},
		{ID: 21, MasterID: master(0)},
		{ID: 30, MasterID: master(30)},
	}
	tests := []struct {
		name  string
		of    Booking
		want  []ID
		group bool
	}{
		{"master record", bookings[0], []ID{10, 11, 12}, true},
		{"child record", bookings[2], []ID{10, 11, 12}, true},
		{"single", bookings[3], []ID{20}, false},
		{"zero master is absent", bookings[4], []ID{21}, false},
		{"master equals id", bookings[5], []ID{30}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupOf(bookings, tt.of)
			if !sameIDs(got, tt.want...) {
				t.Fatalf("GroupOf = %v, want %v", ids(got), tt.want)
			}
			if IsGroup(got) != tt.group {
				t.Fatalf("IsGroup = %v, want %v", IsGroup(got), tt.group)
			}
		})
	}
}

func TestGroupOfIsIdempotent(t *testing.T) {
	bookings := []Booking{
		{ID: 1},
		{ID: 2, MasterID: master(1)},
		{ID: 3, MasterID: master(1)},
		{ID: 4},
		{ID: 5, MasterID: master(99)},
	}
	for _, b := range bookings {
		first := GroupOf(bookings, b)
		again := GroupOf(bookings, first[0])
		if len(first) != len(again) {
			t.Fatalf("booking %d: %d then %d", b.ID, len(first), len(again))
		}
	}
}

func TestGroupOfKeepsRecordsSeparate(t *testing.T) {
	bookings := []Booking{
		{ID: 1, Price: 100, Deposit: 50},
		{ID: 2, MasterID: master(1), Price: 300, Deposit: 0},
	}
	g := GroupOf(bookings, bookings[1])
	totals := Rollup(g)
	if totals.TotalRevenue != 400 || totals.TotalPaid != 50 || totals.Count != 2 {
		t.Fatalf("group totals = %+v", totals)
	}
	if g[0].Price != 100 || g[1].Price != 300 {
		t.Fatal("group members were merged")
	}
}

func TestGroupSizes(t *testing.T) {
	bookings := []Booking{{ID: 1}, {ID: 2, MasterID: master(1)}, {ID: 3}}
	sizes := GroupSizes(bookings)
	if sizes[1] != 2 || sizes[3] != 1 {
		t.Fatalf("GroupSizes = %v", sizes)
	}
}
