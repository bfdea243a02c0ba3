// Package clock supplies the "today" value used throughout the store and
// ranker: the number of whole days since the Unix epoch.
//
// Every component that needs the current day takes a Clock instead of
// calling time.Now directly, so tests can pin a fixed day (the scenarios in
// the specification assume today() == 20000) and get deterministic results.
package clock

import "time"

// Clock returns the current day as a count of whole days since the Unix
// epoch (1970-01-01).
type Clock func() uint32

// System is the production Clock, backed by time.Now in UTC.
func System() uint32 {
	return DaysSince(time.Now().UTC())
}

// DaysSince converts a time.Time into a whole-day count since the Unix epoch.
func DaysSince(t time.Time) uint32 {
	secs := t.Unix()
	if secs < 0 {
		return 0
	}

	return uint32(secs / 86400) //nolint:gosec // day counts never approach uint32 overflow range
}

// Fixed returns a Clock that always reports the given day, for tests that
// need a deterministic today().
func Fixed(day uint32) Clock {
	return func() uint32 {
		return day
	}
}
