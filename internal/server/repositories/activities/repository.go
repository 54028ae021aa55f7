package activities

import (
	"context"

	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
)

type Repository interface {
	// InsertBatch stores activities for userID and returns the ids held for
	// that user afterwards. A re-sent id is accepted again without a second
	// row; an id owned by another user is skipped.
	InsertBatch(ctx context.Context, userID string, activities []models.Activity) ([]string, error)
	ListJournal(ctx context.Context, userID string) ([]models.Activity, error)
}
