package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *models.Profile {
	return &models.Profile{
		UserID:           "u-1",
		DisplayName:      "Alice",
		Streak:           3,
		LastActivityDate: "2024-06-10",
		LongestStreak:    5,
		XP:               40,
		Coins:            10,
		UpdatedAt:        june10,
	}
}

func TestProfileService_SaveAndGet(t *testing.T) {
	db, _ := newMockDB(t)
	rm := newFakeRepoManager()
	svc := NewProfileService(db, rm, nil)

	written, err := svc.Save(context.Background(), validProfile())
	require.NoError(t, err)
	assert.True(t, written)

	got, err := svc.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Streak)
}

func TestProfileService_SaveStaleSnapshot(t *testing.T) {
	db, _ := newMockDB(t)
	rm := newFakeRepoManager()
	svc := NewProfileService(db, rm, nil)

	_, err := svc.Save(context.Background(), validProfile())
	require.NoError(t, err)

	old := validProfile()
	old.Streak = 1
	old.UpdatedAt = june10.Add(-1)
	written, err := svc.Save(context.Background(), old)
	require.NoError(t, err)
	assert.False(t, written)

	got, err := svc.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Streak)
}

func TestProfileService_SaveValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *models.Profile)
	}{
		{"no user", func(p *models.Profile) { p.UserID = "" }},
		{"long name", func(p *models.Profile) { p.DisplayName = strings.Repeat("x", 65) }},
		{"negative streak", func(p *models.Profile) { p.Streak = -1 }},
		{"negative coins", func(p *models.Profile) { p.Coins = -1 }},
		{"longest below current", func(p *models.Profile) { p.LongestStreak = 2 }},
		{"bad date", func(p *models.Profile) { p.LastActivityDate = "10.06.2024" }},
		{"streak without date", func(p *models.Profile) { p.LastActivityDate = "" }},
	}

	db, _ := newMockDB(t)
	svc := NewProfileService(db, newFakeRepoManager(), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			_, err := svc.Save(context.Background(), p)
			assert.ErrorIs(t, err, common.ErrInvalidArgument)
		})
	}

	_, err := svc.Save(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestProfileService_SaveRepoError(t *testing.T) {
	db, _ := newMockDB(t)
	rm := newFakeRepoManager()
	rm.profiles.err = errors.New("db error: down")
	svc := NewProfileService(db, rm, nil)

	_, err := svc.Save(context.Background(), validProfile())
	require.EqualError(t, err, "db error: down")
}

func TestProfileService_GetMissing(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewProfileService(db, newFakeRepoManager(), nil)

	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestProfileService_Leaderboard(t *testing.T) {
	db, _ := newMockDB(t)
	rm := newFakeRepoManager()
	rm.profiles.top = []models.Profile{
		{UserID: "u-2", Streak: 9},
		{UserID: "u-1", Streak: 3},
		{UserID: "u-3", Streak: 1},
	}
	svc := NewProfileService(db, rm, nil)

	got, err := svc.Leaderboard(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, "u-2", got[0].UserID)
	assert.Equal(t, 2, got[1].Rank)
	assert.Equal(t, "u-1", got[1].UserID)
}

func TestProfileService_LeaderboardCutsOffLapsedStreaks(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		// 09:00 UTC is still June 9 at UTC-12, so June 8 counts as yesterday there.
		{name: "morning UTC", now: june10, want: "2024-06-08"},
		{name: "afternoon UTC", now: time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC), want: "2024-06-09"},
		{name: "across month", now: time.Date(2024, 7, 1, 23, 0, 0, 0, time.UTC), want: "2024-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _ := newMockDB(t)
			rm := newFakeRepoManager()
			svc := NewProfileService(db, rm, nil)
			svc.clock = &timex.FixedClock{T: tt.now}

			_, err := svc.Leaderboard(context.Background(), 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rm.profiles.since)
		})
	}
}

func TestProfileService_LeaderboardClampsLimit(t *testing.T) {
	db, _ := newMockDB(t)
	rm := newFakeRepoManager()
	svc := NewProfileService(db, rm, nil)

	for in, want := range map[int]int{0: DefaultLeaderboardSize, -5: DefaultLeaderboardSize, 7: 7, 1000: MaxLeaderboardSize} {
		_, err := svc.Leaderboard(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, want, rm.profiles.limit, "limit %d", in)
	}
}

func TestProfileService_LeaderboardError(t *testing.T) {
	db, _ := newMockDB(t)
	rm := newFakeRepoManager()
	rm.profiles.err = errors.New("boom")
	svc := NewProfileService(db, rm, nil)

	_, err := svc.Leaderboard(context.Background(), 10)
	require.Error(t, err)
}
