package models

// LeaderboardEntry is one row of the shared streak ranking.
type LeaderboardEntry struct {
	Rank          int
	UserID        string
	DisplayName   string
	Streak        int
	LongestStreak int
	XP            int
}

// JournalExport points at a journal export produced by the remote service.
type JournalExport struct {
	URL     string
	Key     string
	Entries int
}
