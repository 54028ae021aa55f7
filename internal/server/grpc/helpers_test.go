package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/auth"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
)

const testSecret = "secret"

type fakeProfiles struct {
	saved   []models.Profile
	top     []models.RankedProfile
	limit   int
	saveErr error
}

func (f *fakeProfiles) Save(ctx context.Context, p *models.Profile) (bool, error) {
	if f.saveErr != nil {
		return false, f.saveErr
	}
	f.saved = append(f.saved, *p)
	return true, nil
}

func (f *fakeProfiles) Leaderboard(ctx context.Context, limit int) ([]models.RankedProfile, error) {
	f.limit = limit
	return f.top, nil
}

type fakeActivities struct {
	userID string
	got    []models.Activity
	err    error
}

func (f *fakeActivities) Push(ctx context.Context, userID string, batch []models.Activity) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.userID = userID
	f.got = batch
	ids := make([]string, len(batch))
	for i, a := range batch {
		ids[i] = a.ID
	}
	return ids, nil
}

type fakeExporter struct {
	userID string
	err    error
}

func (f *fakeExporter) ExportJournal(ctx context.Context, userID string) (*models.ExportResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.userID = userID
	return &models.ExportResult{Key: "exports/" + userID + "/x.json", URL: "https://objects.local/x", Entries: 3}, nil
}

type fixture struct {
	srv        *GRPCServer
	profiles   *fakeProfiles
	activities *fakeActivities
	exports    *fakeExporter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		profiles:   &fakeProfiles{},
		activities: &fakeActivities{},
		exports:    &fakeExporter{},
	}
	f.srv = NewGRPCServer("127.0.0.1:0", logging.Nop{}, f.profiles, f.activities, f.exports, testSecret)
	return f
}

func mustToken(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

var errBoom = errors.New("boom")
