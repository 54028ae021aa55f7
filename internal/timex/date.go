package timex

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for activity days.
const DateLayout = "2006-01-02"

// DateIn returns the calendar date of t as seen in loc. A nil loc means
// time.Local.
func DateIn(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// ValidDate reports whether s is a well-formed calendar date.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// DaysBetween returns the number of calendar days from earlier to later.
// Both are compared at UTC midnight, so DST shifts never produce
// fractional days. The result is negative when earlier is after later.
func DaysBetween(later, earlier string) (int, error) {
	l, err := ParseDate(later)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(earlier)
	if err != nil {
		return 0, err
	}
	return int(l.Sub(e).Hours() / 24), nil
}

// AddDays shifts a calendar date by n days.
func AddDays(date string, n int) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(DateLayout), nil
}
