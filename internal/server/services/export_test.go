package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	objects map[string][]byte
	ttl     time.Duration
	putErr  error
	signErr error
}

func (m *memStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = body
	return nil
}

func (m *memStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if m.signErr != nil {
		return "", m.signErr
	}
	m.ttl = ttl
	return "https://objects.local/" + key, nil
}

func newExportFixture(t *testing.T) (*ExportService, *fakeRepoManager, *memStore) {
	t.Helper()
	db, _ := newMockDB(t)
	rm := newFakeRepoManager()
	st := &memStore{objects: map[string][]byte{}}
	svc := NewExportService(db, rm, st, 15*time.Minute, nil)
	svc.clock = &timex.FixedClock{T: june10}
	return svc, rm, st
}

func TestExportService_ExportJournal(t *testing.T) {
	svc, rm, st := newExportFixture(t)
	rm.activities.journal = []models.Activity{
		{ID: "a-1", UserID: "u-1", Kind: "journal", Day: "2024-06-09", Payload: []byte(`{"title":"first","body":"hello","mood":4}`), CreatedAt: june10.AddDate(0, 0, -1)},
		{ID: "a-2", UserID: "u-1", Kind: "journal", Day: "2024-06-10", Payload: []byte(`{"title":"second","id":"spoofed"}`), CreatedAt: june10},
	}

	res, err := svc.ExportJournal(context.Background(), "u-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Key, "exports/u-1/"))
	assert.True(t, strings.HasSuffix(res.Key, ".json"))
	assert.Equal(t, "https://objects.local/"+res.Key, res.URL)
	assert.Equal(t, 2, res.Entries)
	assert.Equal(t, 15*time.Minute, st.ttl)

	var doc models.JournalExport
	require.NoError(t, json.Unmarshal(st.objects[res.Key], &doc))

	want := models.JournalExport{
		UserID:     "u-1",
		ExportedAt: june10,
		Entries: []models.ExportedEntry{
			{ID: "a-1", Day: "2024-06-09", Title: "first", Body: "hello", Mood: 4, CreatedAt: june10.AddDate(0, 0, -1)},
			{ID: "a-2", Day: "2024-06-10", Title: "second", CreatedAt: june10},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestExportService_EmptyJournal(t *testing.T) {
	svc, _, st := newExportFixture(t)

	res, err := svc.ExportJournal(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Zero(t, res.Entries)
	assert.Contains(t, string(st.objects[res.Key]), `"entries": []`)
}

func TestExportService_UnreadablePayloadKeepsRow(t *testing.T) {
	svc, rm, _ := newExportFixture(t)
	rm.activities.journal = []models.Activity{
		{ID: "a-1", Kind: "journal", Day: "2024-06-10", Payload: []byte(`not json`), CreatedAt: june10},
	}

	res, err := svc.ExportJournal(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Entries)
}

func TestExportService_Errors(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		svc, rm, _ := newExportFixture(t)
		rm.activities.err = errors.New("db error: down")
		_, err := svc.ExportJournal(context.Background(), "u-1")
		require.EqualError(t, err, "db error: down")
	})
	t.Run("put", func(t *testing.T) {
		svc, _, st := newExportFixture(t)
		st.putErr = errors.New("s3: put: denied")
		_, err := svc.ExportJournal(context.Background(), "u-1")
		require.ErrorContains(t, err, "denied")
	})
	t.Run("presign", func(t *testing.T) {
		svc, _, st := newExportFixture(t)
		st.signErr = errors.New("s3: presign: nope")
		_, err := svc.ExportJournal(context.Background(), "u-1")
		require.ErrorContains(t, err, "nope")
	})
}

func TestExportKey_Unique(t *testing.T) {
	a, b := ExportKey("u-1"), ExportKey("u-1")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "exports/u-1/"))
}
