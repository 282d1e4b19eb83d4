package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// It decides what "today" is for grids, charts and the future-date check.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the calendar day of c.Now() in its own location.
func Today(c Clock) Date {
	return DateOf(c.Now())
}
