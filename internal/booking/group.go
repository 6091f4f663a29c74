package booking

// GroupKey resolves the reservation a booking belongs to: its MasterID
// when set, otherwise its own ID.
func GroupKey(b Booking) ID {
	if b.MasterID != nil && *b.MasterID != 0 {
		return *b.MasterID
	}
	return b.ID
}

// GroupOf returns every booking in the snapshot sharing b's group key.
// The records are not merged; each keeps its own price and deposit.
func GroupOf(bookings []Booking, b Booking) []Booking {
	return GroupByKey(bookings, GroupKey(b))
}

// GroupByKey returns every booking whose resolved group key is key.
func GroupByKey(bookings []Booking, key ID) []Booking {
	return filter(bookings, func(x Booking) bool { return GroupKey(x) == key })
}

// IsGroup reports whether group spans more than one room.
func IsGroup(group []Booking) bool { return len(group) > 1 }

// GroupSizes counts bookings per group key.
func GroupSizes(bookings []Booking) map[ID]int {
	sizes := make(map[ID]int, len(bookings))
	for _, b := range bookings {
		sizes[GroupKey(b)]++
	}
	return sizes
}
