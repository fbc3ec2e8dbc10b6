// Package timeutil provides timezone-aware helpers used for age computation.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// DefaultTimezone is used when no timezone is configured.
const DefaultTimezone = "Africa/Dakar"

// LoadLocation returns the named location, falling back to UTC when the name
// is empty or unknown to the local tz database.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CurrentYear returns the calendar year of now in loc.
func CurrentYear(now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Year()
}
