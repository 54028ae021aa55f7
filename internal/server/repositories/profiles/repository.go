package profiles

import (
	"context"

	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
)

type Repository interface {
	// Upsert stores p unless a newer snapshot of the same user is already
	// stored. It reports whether the row was written.
	Upsert(ctx context.Context, p *models.Profile) (bool, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	// Top returns up to limit profiles ranked by streak, longest streak and XP.
	// Streaks whose last activity is before activeSince (YYYY-MM-DD) have
	// lapsed and are returned and ranked as 0.
	Top(ctx context.Context, activeSince string, limit int) ([]models.Profile, error)
}
