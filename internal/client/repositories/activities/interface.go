package activities

import (
	"context"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
)

// Repository stores the local activity log. Rows start pending and are
// flagged synced once the remote service accepts them.
type Repository interface {
	Create(ctx context.Context, a *models.Activity) error
	GetByID(ctx context.Context, id string) (*models.Activity, error)
	ListByDay(ctx context.Context, day string) ([]models.Activity, error)
	ListByKind(ctx context.Context, kind models.ActivityKind) ([]models.Activity, error)
	ListPending(ctx context.Context, limit int) ([]models.Activity, error)
	MarkSynced(ctx context.Context, ids []string) error
	// CountByDay returns the number of activities of kind per day.
	CountByDay(ctx context.Context, kind models.ActivityKind) (map[string]int, error)
}
