package timex

import "time"

// Clock is the source of "now" for anything that reasons about calendar days.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. Set moves it.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

// Set replaces the instant returned by Now.
func (c *FixedClock) Set(t time.Time) {
	c.T = t
}

// AddDays moves the clock by n calendar days, keeping the wall time.
func (c *FixedClock) AddDays(n int) {
	c.T = c.T.AddDate(0, 0, n)
}
