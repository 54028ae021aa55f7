// Package models defines client-side data models: the locally persisted
// profile and the activity log.
package models

import (
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/streak"
)

// XPPerLevel is the experience needed to advance one level.
const XPPerLevel = 100

// Profile is the locally persisted user profile. The embedded streak
// fields serialize flat, next to the reward counters.
type Profile struct {
	UserID      string `json:"userId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`

	streak.Progress

	// XP and Coins are rewards granted by completed activities.
	XP    int `json:"xp"`
	Coins int `json:"coins"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewProfile returns the profile of a fresh install: no streak, no rewards.
func NewProfile(now time.Time) *Profile {
	return &Profile{CreatedAt: now.UTC(), UpdatedAt: now.UTC()}
}

// Level is derived from XP, starting at 1.
func (p Profile) Level() int {
	if p.XP < 0 {
		return 1
	}
	return p.XP/XPPerLevel + 1
}

// Reward is what a completed activity grants besides the streak.
type Reward struct {
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

// Apply adds r to the profile counters.
func (p *Profile) Apply(r Reward) {
	p.XP += r.XP
	p.Coins += r.Coins
}
