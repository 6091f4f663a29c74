// Package catalog describes the property's rentable inventory: room types,
// how many units each has, and the physical room number painted on each
// door.  The default catalog is embedded; CATALOG_FILE can replace it.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/iliyamo/frontdesk/internal/booking"
)

//go:embed catalog.yaml
var defaultYAML []byte

// Room is one room type.
type Room struct {
	ID      booking.ID  `yaml:"id" validate:"required"`
	Name    string      `yaml:"name" validate:"required"`
	Short   string      `yaml:"short"`
	Units   int         `yaml:"units" validate:"min=1"`
	Numbers map[int]int `yaml:"numbers"`
}

// Catalog is the full inventory of the property.
type Catalog struct {
	PropertyID int64  `yaml:"property_id" validate:"required"`
	Rooms      []Room `yaml:"rooms" validate:"required,min=1,dive"`

	byID map[booking.ID]int
}

// Unit is one rentable unit with its display labels.
type Unit struct {
	RoomID    booking.ID `json:"roomId"`
	UnitID    booking.ID `json:"unitId"`
	Number    string     `json:"number"`
	RoomName  string     `json:"roomName"`
	RoomShort string     `json:"roomShort"`
}

// Key returns the booking-engine key of the unit.
func (u Unit) Key() booking.UnitKey { return booking.UnitKey{RoomID: u.RoomID, UnitID: u.UnitID} }

// Default returns the embedded catalog.  It panics if the embedded file is
// invalid, which can only happen at build time.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path.  An empty path yields the default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("catalog: validate: %w", err)
	}
	c.byID = make(map[booking.ID]int, len(c.Rooms))
	for i, r := range c.Rooms {
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate room id %d", r.ID)
		}
		c.byID[r.ID] = i
	}
	return &c, nil
}

// Room looks up a room type.
func (c *Catalog) Room(id booking.ID) (Room, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Room{}, false
	}
	return c.Rooms[i], true
}

// RoomNumber returns the door number of a unit, or "{roomId}-{unitId}"
// when the catalog has no mapping for it.
func (c *Catalog) RoomNumber(roomID, unitID booking.ID) string {
	if r, ok := c.Room(roomID); ok {
		if n, ok := r.Numbers[int(unitID)]; ok {
			return strconv.Itoa(n)
		}
	}
	return booking.UnitKey{RoomID: roomID, UnitID: unitID}.String()
}

// Units lists every unit ordered by room number.  Numeric room numbers
// sort numerically and come before unmapped units.
func (c *Catalog) Units() []Unit {
	var out []Unit
	for _, r := range c.Rooms {
		for u := 1; u <= r.Units; u++ {
			out = append(out, Unit{
				RoomID:    r.ID,
				UnitID:    booking.ID(u),
				Number:    c.RoomNumber(r.ID, booking.ID(u)),
				RoomName:  r.Name,
				RoomShort: r.Short,
			})
		}
	}
	slices.SortStableFunc(out, func(a, b Unit) int {
		an, aerr := strconv.Atoi(a.Number)
		bn, berr := strconv.Atoi(b.Number)
		switch {
		case aerr == nil && berr == nil:
			return an - bn
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		}
		return strings.Compare(a.Number, b.Number)
	})
	return out
}

// Keys returns the engine keys of units, in order.
func Keys(units []Unit) []booking.UnitKey {
	out := make([]booking.UnitKey, len(units))
	for i, u := range units {
		out[i] = u.Key()
	}
	return out
}

// Has reports whether the unit exists in the catalog.
func (c *Catalog) Has(k booking.UnitKey) bool {
	r, ok := c.Room(k.RoomID)
	return ok && k.UnitID >= 1 && int(k.UnitID) <= r.Units
}
