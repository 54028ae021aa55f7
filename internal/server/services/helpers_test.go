package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/repositories/activities"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/repositories/profiles"
)

type fakeProfiles struct {
	mu    sync.Mutex
	rows  map[string]models.Profile
	top   []models.Profile
	since string
	limit int
	err   error
}

func (f *fakeProfiles) Upsert(ctx context.Context, p *models.Profile) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if cur, ok := f.rows[p.UserID]; ok && cur.UpdatedAt.After(p.UpdatedAt) {
		return false, nil
	}
	f.rows[p.UserID] = *p
	return true, nil
}

func (f *fakeProfiles) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (f *fakeProfiles) Top(ctx context.Context, activeSince string, limit int) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.since = activeSince
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	if len(f.top) > limit {
		return f.top[:limit], nil
	}
	return f.top, nil
}

type fakeActivities struct {
	mu       sync.Mutex
	byID     map[string]models.Activity
	insertFn func(userID string, batch []models.Activity) ([]string, error)
	journal  []models.Activity
	err      error
}

func (f *fakeActivities) InsertBatch(ctx context.Context, userID string, batch []models.Activity) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertFn != nil {
		return f.insertFn(userID, batch)
	}
	var ids []string
	for _, a := range batch {
		if cur, ok := f.byID[a.ID]; ok && cur.UserID != userID {
			continue
		}
		a.UserID = userID
		f.byID[a.ID] = a
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func (f *fakeActivities) ListJournal(ctx context.Context, userID string) ([]models.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.journal, nil
}

type fakeRepoManager struct {
	profiles   *fakeProfiles
	activities *fakeActivities
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		profiles:   &fakeProfiles{rows: map[string]models.Profile{}},
		activities: &fakeActivities{byID: map[string]models.Activity{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository     { return m.profiles }
func (m *fakeRepoManager) Activities(dbx.DBTX) activities.Repository { return m.activities }

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New err: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var june10 = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
