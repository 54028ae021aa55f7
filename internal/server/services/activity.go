package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
)

// MaxPushBatch bounds the number of activities accepted in one push.
const MaxPushBatch = 500

type ActivityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewActivityService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *ActivityService {
	return &ActivityService{db: db, repomanager: m, log: logging.Module(log, "activities")}
}

// Push stores a batch of activities for userID in one transaction and
// returns the accepted ids. Malformed activities are skipped and left out of
// the result.
func (s *ActivityService) Push(ctx context.Context, userID string, batch []models.Activity) ([]string, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrInvalidArgument)
	}
	if len(batch) > MaxPushBatch {
		return nil, fmt.Errorf("%w: batch of %d exceeds %d", common.ErrInvalidArgument, len(batch), MaxPushBatch)
	}

	valid := make([]models.Activity, 0, len(batch))
	for _, a := range batch {
		if err := validateActivity(a); err != nil {
			s.log.Warn(ctx, "activity rejected", "user", userID, "id", a.ID, "error", err)
			continue
		}
		valid = append(valid, a)
	}
	if len(valid) == 0 {
		return []string{}, nil
	}

	var accepted []string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		accepted, err = s.repomanager.Activities(tx).InsertBatch(ctx, userID, valid)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "activities stored", "user", userID, "received", len(batch), "accepted", len(accepted))
	return accepted, nil
}

func validateActivity(a models.Activity) error {
	switch {
	case a.ID == "":
		return fmt.Errorf("%w: activity id is required", common.ErrInvalidArgument)
	case !common.ValidID(a.ID):
		return fmt.Errorf("%w: bad activity id %q", common.ErrInvalidArgument, a.ID)
	case !models.ValidKinds[a.Kind]:
		return fmt.Errorf("%w: unknown kind %q", common.ErrInvalidArgument, a.Kind)
	case !timex.ValidDate(a.Day):
		return fmt.Errorf("%w: bad day %q", common.ErrInvalidArgument, a.Day)
	}
	return nil
}
