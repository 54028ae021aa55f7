// Package streak keeps the consecutive-activity-day counter of a profile.
//
// A streak is derived from two fields: the counter itself and the local
// calendar date of the last qualifying activity. The Tracker recomputes them
// when the application starts and whenever a qualifying activity happens.
// All methods are pure: they take a Progress value and return the next one,
// persistence is up to the caller.
//
// Days are local calendar dates, not rolling 24-hour windows. On the day
// after the last activity the streak is at risk but intact; it resets to
// zero once a whole calendar day has passed with no activity.
package streak

import (
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
)

// Progress is the streak-relevant part of a user profile.
type Progress struct {
	// Streak is the number of consecutive days with at least one qualifying activity.
	Streak int `json:"streak"`
	// LastActivityDate is the YYYY-MM-DD day of the latest qualifying
	// activity, empty when there has been none.
	LastActivityDate string `json:"lastActivityDate,omitempty"`
	// LongestStreak is the best Streak ever reached.
	LongestStreak int `json:"longestStreak"`
}

// Tracker applies the streak rules against an injectable clock.
type Tracker struct {
	clock timex.Clock
	loc   *time.Location
}

// NewTracker returns a Tracker that derives "today" from clock in loc.
// A nil clock uses the system clock and a nil loc uses time.Local.
func NewTracker(clock timex.Clock, loc *time.Location) *Tracker {
	if clock == nil {
		clock = timex.SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{clock: clock, loc: loc}
}

// Today returns the current local calendar date.
func (t *Tracker) Today() string {
	return timex.DateIn(t.clock.Now(), t.loc)
}

// Location returns the time zone calendar days are computed in.
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// EvaluateOnStartup resets the streak if it lapsed while the app was closed.
// It never increments and is idempotent within a day.
func (t *Tracker) EvaluateOnStartup(p Progress) Progress {
	return evaluate(p, t.Today())
}

// RecordActivity registers a qualifying activity for today. The streak grows
// by one on the first activity of a day and stays put on later ones.
func (t *Tracker) RecordActivity(p Progress) Progress {
	today := t.Today()
	next := evaluate(p, today)

	// A last date after today (clock moved back) counts as today.
	days, ok := daysSince(next.LastActivityDate, today)
	switch {
	case !ok || days > 0:
		next.Streak++
	case next.Streak == 0:
		// already stamped today but the counter was lost
		next.Streak = 1
	}

	next.LastActivityDate = today
	if next.Streak > next.LongestStreak {
		next.LongestStreak = next.Streak
	}
	return next
}

// PhaseOf classifies p as of today without changing it.
func (t *Tracker) PhaseOf(p Progress) Phase {
	if p.Streak == 0 {
		return NoStreak
	}
	days, ok := daysSince(p.LastActivityDate, t.Today())
	switch {
	case !ok:
		return NoStreak
	case days <= 0:
		return ActiveToday
	case days == 1:
		return AtRisk
	default:
		return Broken
	}
}

func evaluate(p Progress, today string) Progress {
	days, ok := daysSince(p.LastActivityDate, today)
	if !ok {
		p.LastActivityDate = ""
		p.Streak = 0
		return p
	}
	if days > 1 {
		p.Streak = 0
	}
	return p
}

// daysSince reports how many calendar days lie between last and today.
// ok is false when last is absent or malformed. A last date after today
// (clock moved backwards) yields a negative count.
func daysSince(last, today string) (int, bool) {
	if last == "" {
		return 0, false
	}
	days, err := timex.DaysBetween(today, last)
	if err != nil {
		return 0, false
	}
	return days, true
}
