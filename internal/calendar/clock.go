package calendar

import "time"

// Clock supplies the current calendar date.
type Clock interface {
	Today() Date
}

// SystemClock reads the wall clock in the local timezone.
type SystemClock struct{}

func (SystemClock) Today() Date {
	return FromTime(time.Now().Local())
}

// FixedClock always reports the same date. Tests move it with Advance.
type FixedClock struct {
	Date Date
}

// NewFixedClock returns a FixedClock set to the given ISO date.
func NewFixedClock(iso string) *FixedClock {
	return &FixedClock{Date: MustParse(iso)}
}

func (c *FixedClock) Today() Date {
	return c.Date
}

// Advance moves the clock forward (or backward) by n days.
func (c *FixedClock) Advance(n int) {
	c.Date = c.Date.AddDays(n)
}
