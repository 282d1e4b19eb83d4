package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-gymtrack/internal/config"
)

// Date is a calendar day with no time-of-day and no zone.
// The zero value means "no date". Dates are comparable and usable as map keys.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate builds a Date, normalizing out-of-range values the way time.Date does
// (e.g. day 0 is the last day of the previous month).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the wall-clock day of t in t's own location.
// A visit at 23:30 local time belongs to that local day, whatever UTC says.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseDate parses the YYYY-MM-DD wire format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(config.DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return DateOf(t), nil
}

func (d Date) Year() int { return d.year }

func (d Date) Month() time.Month { return d.month }

func (d Date) Day() int { return d.day }

// IsZero reports whether d is the "no date" value.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Weekday() time.Weekday { return d.utc().Weekday() }

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Date) utc() time.Time {
	return d.Time(time.UTC)
}

// AddDays moves d by n days across month and year boundaries.
func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n))
}

// AddMonths moves d by n months, clamping to the last day of the target month
// (Mar 31 minus one month is Feb 28/29, not Mar 3).
func (d Date) AddMonths(n int) Date {
	first := NewDate(d.year, d.month+time.Month(n), 1)
	last := LastOfMonth(first)
	if d.day > last.day {
		return last
	}
	return NewDate(first.year, first.month, d.day)
}

// DaysUntil returns the signed number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.utc().Sub(d.utc()).Hours() / 24)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// SameMonth reports whether both dates fall in the same calendar month.
func (d Date) SameMonth(other Date) bool {
	return d.year == other.year && d.month == other.month
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.utc().Format(config.DateLayout)
}

// Format renders d with a time layout.
func (d Date) Format(layout string) string {
	return d.utc().Format(layout)
}

// MarshalText implements encoding.TextMarshaler (used by encoding/json).
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Full RFC 3339 timestamps are accepted too; only their date part is kept.
func (d *Date) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "" {
		*d = Date{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = DateOf(t)
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// -----------------------------------------------------------------------------
// Week & Month Alignment
// -----------------------------------------------------------------------------

// StartOfWeek returns the first day of the week containing d.
func StartOfWeek(d Date, weekStart time.Weekday) Date {
	offset := (int(d.Weekday()) - int(weekStart) + config.DaysPerWeek) % config.DaysPerWeek
	return d.AddDays(-offset)
}

// EndOfWeek returns the last day of the week containing d.
func EndOfWeek(d Date, weekStart time.Weekday) Date {
	return StartOfWeek(d, weekStart).AddDays(config.DaysPerWeek - 1)
}

// FirstOfMonth returns the first day of d's month.
func FirstOfMonth(d Date) Date {
	return NewDate(d.year, d.month, 1)
}

// LastOfMonth returns the last day of d's month.
func LastOfMonth(d Date) Date {
	return NewDate(d.year, d.month+1, 0)
}

// ShiftMonth returns the first day of the month n months away from d.
func ShiftMonth(d Date, n int) Date {
	return NewDate(d.year, d.month+time.Month(n), 1)
}
