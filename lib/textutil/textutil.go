package textutil

import (
	"strings"
)

// Normalize trims a raw cell value and maps the usual spreadsheet junk
// values ("nan", "none", "null", case-insensitive) to the empty string.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null":
		return ""
	}
	return s
}

// CombineLocation joins a venue name with its city/state into a single
// display string, dropping whichever parts are missing.
func CombineLocation(name, city, state string) string {
	name = Normalize(name)

	var parts []string
	if city = Normalize(city); city != "" {
		parts = append(parts, city)
	}
	if state = Normalize(state); state != "" {
		parts = append(parts, state)
	}
	place := strings.Join(parts, ", ")

	if name != "" && place != "" {
		return name + " — " + place
	}
	if name != "" {
		return name
	}
	return place
}
