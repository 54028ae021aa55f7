package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/client"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/activities"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
)

const defaultSyncBatch = 100

type SyncResult struct {
	Pushed        int
	Accepted      int
	ProfilePushed bool
}

type SyncService struct {
	db        *sql.DB
	client    client.Client
	progress  *ProgressService
	log       logging.Logger
	batchSize int
}

func NewSyncService(db *sql.DB, c client.Client, progress *ProgressService, log logging.Logger) *SyncService {
	if log == nil {
		log = logging.Nop{}
	}
	return &SyncService{db: db, client: c, progress: progress, log: log, batchSize: defaultSyncBatch}
}

// Sync uploads pending activities in batches, then the profile snapshot.
// Activities the server acknowledged are no longer pending, even when a
// later step fails.
func (s *SyncService) Sync(ctx context.Context) (SyncResult, error) {
	var res SyncResult
	if s.client == nil {
		return res, client.ErrUnavailable
	}

	repo := activities.NewSQLiteRepository(s.db)
	for {
		pending, err := repo.ListPending(ctx, s.batchSize)
		if err != nil {
			return res, err
		}
		if len(pending) == 0 {
			break
		}

		accepted, err := s.client.PushActivities(ctx, pending)
		if err != nil {
			return res, fmt.Errorf("push activities: %w", err)
		}
		res.Pushed += len(pending)
		res.Accepted += len(accepted)

		if err := repo.MarkSynced(ctx, accepted); err != nil {
			return res, err
		}
		// a partial ack would otherwise resend the same batch forever
		if len(accepted) < len(pending) {
			s.log.Warn(ctx, "server accepted part of a batch", "sent", len(pending), "accepted", len(accepted))
			break
		}
	}

	st, err := s.progress.Status(ctx)
	if err != nil {
		return res, err
	}
	if err := s.client.PushProfile(ctx, st.Profile); err != nil {
		return res, fmt.Errorf("push profile: %w", err)
	}
	res.ProfilePushed = true

	s.log.Info(ctx, "sync finished", "pushed", res.Pushed, "accepted", res.Accepted)
	return res, nil
}

func (s *SyncService) Ping(ctx context.Context) error {
	if s.client == nil {
		return client.ErrUnavailable
	}
	return s.client.Ping(ctx)
}

func (s *SyncService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if s.client == nil {
		return nil, client.ErrUnavailable
	}
	return s.client.Leaderboard(ctx, limit)
}

// ExportJournal asks the server to export the synced journal and returns a
// download link.
func (s *SyncService) ExportJournal(ctx context.Context) (models.JournalExport, error) {
	if s.client == nil {
		return models.JournalExport{}, client.ErrUnavailable
	}
	return s.client.ExportJournal(ctx)
}
