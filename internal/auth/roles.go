// Package auth holds the explicit authentication context of the service:
// who is signed in, which role they hold and which screens that role may
// open.  Capability checks read a static table; nothing here talks to the
// upstream services.
package auth

import "slices"

// Role names as stored on user records.
const (
	RoleAdmin      = "admin"
	RoleFrontDesk  = "front_desk"
	RoleAccounting = "accounting"
	RoleHKManager  = "hk_manager"
	RoleHKTeam     = "hk_team"
)

// Screen identifies one area of the app.  Each maps to a group of routes.
type Screen string

const (
	ScreenToday        Screen = "today"
	ScreenCalendar     Screen = "calendar"
	ScreenBookings     Screen = "bookings"
	ScreenHousekeeping Screen = "housekeeping"
	ScreenAccounting   Screen = "accounting"
	ScreenSearch       Screen = "search"
)

// Roles lists every known role.
var Roles = []string{RoleAdmin, RoleFrontDesk, RoleAccounting, RoleHKManager, RoleHKTeam}

var screensByRole = map[string][]Screen{
	RoleAdmin:      {ScreenToday, ScreenCalendar, ScreenBookings, ScreenHousekeeping, ScreenAccounting, ScreenSearch},
	RoleFrontDesk:  {ScreenToday, ScreenCalendar, ScreenBookings, ScreenSearch},
	RoleAccounting: {ScreenToday, ScreenBookings, ScreenAccounting},
	RoleHKManager:  {ScreenToday, ScreenHousekeeping},
	RoleHKTeam:     {ScreenHousekeeping},
}

// KnownRole reports whether role appears in the capability table.
func KnownRole(role string) bool {
	_, ok := screensByRole[role]
	return ok
}

// Screens returns the screens open to role in display order.  Unknown roles
// get none.
func Screens(role string) []Screen {
	return slices.Clone(screensByRole[role])
}

// CanAccess reports whether role may open screen.
func CanAccess(role string, screen Screen) bool {
	return slices.Contains(screensByRole[role], screen)
}

// CanEditBookings reports whether role may change or create bookings.
func CanEditBookings(role string) bool {
	return role == RoleAdmin || role == RoleFrontDesk
}

// CanViewFinancials reports whether role may see prices, deposits and dues.
func CanViewFinancials(role string) bool {
	return role == RoleAdmin || role == RoleAccounting || role == RoleFrontDesk
}

// IsHousekeeping reports whether role belongs to the housekeeping staff.
func IsHousekeeping(role string) bool {
	return role == RoleHKManager || role == RoleHKTeam
}
