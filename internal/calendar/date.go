// Package calendar provides day-granularity dates and the clock that
// supplies them.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the ISO calendar date format used for persisted dates.
const Layout = "2006-01-02"

// Date is a civil calendar date with no time-of-day or zone.
// The zero value is "unset".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Parse parses an ISO YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// MustParse is Parse for literals in tests and seed data.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats the date as YYYY-MM-DD, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.midnight().Format(Layout)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return FromTime(d.midnight().AddDate(0, 0, n))
}

// DaysSince returns the number of whole days from earlier to d.
// The result is negative when earlier is after d.
func (d Date) DaysSince(earlier Date) int {
	// UTC midnights are exactly 24h apart, DST never applies.
	return int(d.midnight().Sub(earlier.midnight()).Hours() / 24)
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.DaysSince(other) < 0
}

func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
