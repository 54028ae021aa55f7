package api

import (
	"encoding/json"
	"time"
)

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// Activity is one locally recorded log line (journal entry, mood, water, ...).
type Activity struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Day       string          `json:"day"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type PushActivitiesRequest struct {
	Activities []Activity `json:"activities"`
}

// PushActivitiesResponse lists the ids the server now holds, including ones
// it had already stored from an earlier push.
type PushActivitiesResponse struct {
	Accepted []string `json:"accepted"`
}

// Profile is the snapshot of a user's progress kept by the server.
type Profile struct {
	DisplayName      string    `json:"displayName"`
	Streak           int       `json:"streak"`
	LastActivityDate string    `json:"lastActivityDate,omitempty"`
	LongestStreak    int       `json:"longestStreak"`
	XP               int       `json:"xp"`
	Coins            int       `json:"coins"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type PushProfileRequest struct {
	Profile Profile `json:"profile"`
}

type PushProfileResponse struct{}

type LeaderboardRequest struct {
	Limit int `json:"limit"`
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"userId"`
	DisplayName   string `json:"displayName"`
	Streak        int    `json:"streak"`
	LongestStreak int    `json:"longestStreak"`
	XP            int    `json:"xp"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type ExportJournalRequest struct{}

type ExportJournalResponse struct {
	URL     string `json:"url"`
	Key     string `json:"key"`
	Entries int    `json:"entries"`
}
