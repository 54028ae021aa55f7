package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/storage"
	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
	"github.com/google/uuid"
)

type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	urlTTL      time.Duration
	clock       timex.Clock
	log         logging.Logger
}

func NewExportService(db *sql.DB, m repomanager.RepositoryManager, store storage.ObjectStore, urlTTL time.Duration, log logging.Logger) *ExportService {
	return &ExportService{
		db:          db,
		repomanager: m,
		store:       store,
		urlTTL:      urlTTL,
		clock:       timex.SystemClock{},
		log:         logging.Module(log, "export"),
	}
}

// ExportKey returns a fresh object key under the user's export prefix.
func ExportKey(userID string) string {
	return fmt.Sprintf("exports/%s/%v.json", userID, uuid.New())
}

// ExportJournal writes every synced journal entry of userID to object
// storage as one JSON document and returns a presigned link to it.
func (s *ExportService) ExportJournal(ctx context.Context, userID string) (*models.ExportResult, error) {
	rows, err := s.repomanager.Activities(s.db).ListJournal(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc := models.JournalExport{
		UserID:     userID,
		ExportedAt: s.clock.Now().UTC(),
		Entries:    make([]models.ExportedEntry, 0, len(rows)),
	}
	for _, a := range rows {
		e := models.ExportedEntry{ID: a.ID, Day: a.Day, CreatedAt: a.CreatedAt}
		if err := json.Unmarshal(a.Payload, &e); err != nil {
			s.log.Warn(ctx, "journal payload unreadable", "user", userID, "id", a.ID, "error", err)
		}
		// the payload must not override the row identity
		e.ID, e.Day, e.CreatedAt = a.ID, a.Day, a.CreatedAt
		doc.Entries = append(doc.Entries, e)
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := ExportKey(userID)
	if err := s.store.Put(ctx, key, body, "application/json"); err != nil {
		return nil, err
	}

	url, err := s.store.PresignGet(ctx, key, s.urlTTL)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "journal exported", "user", userID, "key", key, "entries", len(doc.Entries))
	return &models.ExportResult{Key: key, URL: url, Entries: len(doc.Entries)}, nil
}
