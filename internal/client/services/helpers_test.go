package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/store"
	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
)

type fixture struct {
	db       *sql.DB
	clock    *timex.FixedClock
	progress *ProgressService
	acts     *ActivityService
}

func june10() time.Time {
	return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := store.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := &timex.FixedClock{T: june10()}
	progress := NewProgressService(db, clock, time.UTC, nil)
	acts := NewActivityService(db, progress, nil)

	var mu sync.Mutex
	n := 0
	acts.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("act-%03d", n)
	}

	return &fixture{db: db, clock: clock, progress: progress, acts: acts}
}

type fakeClient struct {
	mu sync.Mutex

	pushed   [][]models.Activity
	profiles []models.Profile

	// acceptOnly, when set, limits acknowledged ids to this set
	acceptOnly map[string]bool

	pushErr        error
	profileErr     error
	pingErr        error
	leaderboard    []models.LeaderboardEntry
	leaderboardErr error
	export         models.JournalExport
	exportErr      error
	lastLimit      int
	closed         bool
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) PushActivities(_ context.Context, in []models.Activity) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return nil, f.pushErr
	}
	f.pushed = append(f.pushed, in)
	ids := make([]string, 0, len(in))
	for _, a := range in {
		if f.acceptOnly == nil || f.acceptOnly[a.ID] {
			ids = append(ids, a.ID)
		}
	}
	return ids, nil
}

func (f *fakeClient) PushProfile(_ context.Context, p models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profileErr != nil {
		return f.profileErr
	}
	f.profiles = append(f.profiles, p)
	return nil
}

func (f *fakeClient) Leaderboard(_ context.Context, limit int) ([]models.LeaderboardEntry, error) {
	f.lastLimit = limit
	return f.leaderboard, f.leaderboardErr
}

func (f *fakeClient) ExportJournal(context.Context) (models.JournalExport, error) {
	return f.export, f.exportErr
}
