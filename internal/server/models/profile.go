// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/api"
)

// Profile is the latest progress snapshot pushed by a user's device.
type Profile struct {
	UserID           string
	DisplayName      string
	Streak           int
	LastActivityDate string
	LongestStreak    int
	XP               int
	Coins            int
	UpdatedAt        time.Time
}

// RankedProfile is a leaderboard row.
type RankedProfile struct {
	Rank int
	Profile
}

// LeaderboardEntries converts ranked profiles to their wire form, shared by
// the gRPC and HTTP endpoints.
func LeaderboardEntries(top []RankedProfile) []api.LeaderboardEntry {
	out := make([]api.LeaderboardEntry, len(top))
	for i, p := range top {
		out[i] = api.LeaderboardEntry{
			Rank:          p.Rank,
			UserID:        p.UserID,
			DisplayName:   p.DisplayName,
			Streak:        p.Streak,
			LongestStreak: p.LongestStreak,
			XP:            p.XP,
		}
	}
	return out
}
