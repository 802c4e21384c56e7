package model

import "fmt"

// Location is a storage location (SLOC). Only two exist.
type Location string

// Storage locations.
const (
	LocationMain      Location = "1000"
	LocationSecondary Location = "1001"
)

// Locations lists every known location in display order.
var Locations = []Location{LocationMain, LocationSecondary}

// ParseLocation validates a location code.
func ParseLocation(s string) (Location, error) {
	switch Location(s) {
	case LocationMain, LocationSecondary:
		return Location(s), nil
	}
	return "", fmt.Errorf("unknown location %q", s)
}

// Valid reports whether l is one of the known locations.
func (l Location) Valid() bool {
	return l == LocationMain || l == LocationSecondary
}

// Other returns the opposite location.
func (l Location) Other() Location {
	if l == LocationMain {
		return LocationSecondary
	}
	return LocationMain
}

// Label returns a human-readable location name.
func (l Location) Label() string {
	switch l {
	case LocationMain:
		return "Main"
	case LocationSecondary:
		return "Secondary"
	default:
		return string(l)
	}
}
