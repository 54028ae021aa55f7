package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/vitalkeeper/internal/api"
)

func TestLeaderboardEntries(t *testing.T) {
	top := []RankedProfile{
		{Rank: 1, Profile: Profile{UserID: "u-2", DisplayName: "Bob", Streak: 12, LongestStreak: 12, XP: 400, Coins: 80}},
		{Rank: 2, Profile: Profile{UserID: "u-1", DisplayName: "Alice", Streak: 0, LongestStreak: 30, XP: 900}},
	}

	assert.Equal(t, []api.LeaderboardEntry{
		{Rank: 1, UserID: "u-2", DisplayName: "Bob", Streak: 12, LongestStreak: 12, XP: 400},
		{Rank: 2, UserID: "u-1", DisplayName: "Alice", Streak: 0, LongestStreak: 30, XP: 900},
	}, LeaderboardEntries(top))
}

func TestLeaderboardEntries_EmptyIsNotNil(t *testing.T) {
	got := LeaderboardEntries(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
