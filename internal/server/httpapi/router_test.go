package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/api"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoard struct {
	limit int
	top   []models.RankedProfile
	err   error
}

func (f *fakeBoard) Leaderboard(ctx context.Context, limit int) ([]models.RankedProfile, error) {
	f.limit = limit
	return f.top, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func newTestServer(board *fakeBoard, db Pinger) *httptest.Server {
	s := NewServer("", logging.Nop{}, board, db, []string{"https://app.example"})
	return httptest.NewServer(s.Handler())
}

func TestHealth(t *testing.T) {
	ts := newTestServer(&fakeBoard{}, fakePinger{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealth_DatabaseDown(t *testing.T) {
	ts := newTestServer(&fakeBoard{}, fakePinger{err: errors.New("refused")})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLeaderboard(t *testing.T) {
	board := &fakeBoard{top: []models.RankedProfile{
		{Rank: 1, Profile: models.Profile{UserID: "u-2", DisplayName: "Bob", Streak: 9, LongestStreak: 9, XP: 90}},
		{Rank: 2, Profile: models.Profile{UserID: "u-1", DisplayName: "Alice", Streak: 3, LongestStreak: 5, XP: 40}},
	}}
	ts := newTestServer(board, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/leaderboard?limit=2")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, 2, board.limit)

	var body api.LeaderboardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Entries, 2)
	assert.Equal(t, api.LeaderboardEntry{Rank: 1, UserID: "u-2", DisplayName: "Bob", Streak: 9, LongestStreak: 9, XP: 90}, body.Entries[0])
}

func TestLeaderboard_DefaultLimit(t *testing.T) {
	board := &fakeBoard{}
	ts := newTestServer(board, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/leaderboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, board.limit)
}

func TestLeaderboard_BadLimit(t *testing.T) {
	ts := newTestServer(&fakeBoard{}, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/leaderboard?limit=ten")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLeaderboard_Error(t *testing.T) {
	ts := newTestServer(&fakeBoard{err: errors.New("db error: down")}, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/leaderboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCORS_Preflight(t *testing.T) {
	ts := newTestServer(&fakeBoard{}, nil)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/leaderboard", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "https://app.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(&fakeBoard{}, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServe_StopsOnCancel(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer("", logging.Nop{}, &fakeBoard{}, nil, []string{"*"})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	resp, err := http.Get("http://" + lis.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
