package client

import (
	"context"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	// PushActivities uploads activities and returns the ids the server holds.
	PushActivities(ctx context.Context, activities []models.Activity) ([]string, error)
	PushProfile(ctx context.Context, p models.Profile) error
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	ExportJournal(ctx context.Context) (models.JournalExport, error)
}
