// Package services contains the server-side business logic behind the
// gRPC and HTTP handlers: storing progress snapshots and activity logs,
// ranking the leaderboard and exporting journals to object storage.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
)

const (
	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 100

	maxDisplayName = 64
)

// westernmost is the last zone to reach a new calendar day. Devices report
// local dates and the server does not know their zones, so a streak is
// counted as lapsed only once it has lapsed there too.
var westernmost = time.FixedZone("UTC-12", -12*60*60)

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       timex.Clock
	log         logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *ProfileService {
	return &ProfileService{db: db, repomanager: m, clock: timex.SystemClock{}, log: logging.Module(log, "profiles")}
}

// Save stores the snapshot pushed by a device. A snapshot older than the
// stored one is dropped silently; the return value reports whether it was
// written.
func (s *ProfileService) Save(ctx context.Context, p *models.Profile) (bool, error) {
	if err := validateProfile(p); err != nil {
		return false, err
	}

	written, err := s.repomanager.Profiles(s.db).Upsert(ctx, p)
	if err != nil {
		return false, err
	}
	if !written {
		s.log.Debug(ctx, "stale profile snapshot ignored", "user", p.UserID, "updated_at", p.UpdatedAt)
	}
	return written, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).GetByUserID(ctx, userID)
}

// Leaderboard ranks the top profiles. limit is clamped to 1..MaxLeaderboardSize,
// zero or negative means DefaultLeaderboardSize. Ranks are dense by position.
// Streaks are ranked as of today: one whose last activity is more than a day
// old counts as 0 even though the device has not pushed the reset yet.
func (s *ProfileService) Leaderboard(ctx context.Context, limit int) ([]models.RankedProfile, error) {
	switch {
	case limit <= 0:
		limit = DefaultLeaderboardSize
	case limit > MaxLeaderboardSize:
		limit = MaxLeaderboardSize
	}

	since, err := s.activeSince()
	if err != nil {
		return nil, err
	}

	top, err := s.repomanager.Profiles(s.db).Top(ctx, since, limit)
	if err != nil {
		return nil, err
	}

	out := make([]models.RankedProfile, len(top))
	for i, p := range top {
		out[i] = models.RankedProfile{Rank: i + 1, Profile: p}
	}
	return out, nil
}

// activeSince is the oldest last-activity day that still keeps a streak alive.
func (s *ProfileService) activeSince() (string, error) {
	return timex.AddDays(timex.DateIn(s.clock.Now(), westernmost), -1)
}

func validateProfile(p *models.Profile) error {
	switch {
	case p == nil:
		return fmt.Errorf("%w: profile is required", common.ErrInvalidArgument)
	case p.UserID == "":
		return fmt.Errorf("%w: user id is required", common.ErrInvalidArgument)
	case utf8.RuneCountInString(p.DisplayName) > maxDisplayName:
		return fmt.Errorf("%w: display name longer than %d", common.ErrInvalidArgument, maxDisplayName)
	case p.Streak < 0, p.LongestStreak < 0, p.XP < 0, p.Coins < 0:
		return fmt.Errorf("%w: counters must not be negative", common.ErrInvalidArgument)
	case p.LongestStreak < p.Streak:
		return fmt.Errorf("%w: longest streak below current streak", common.ErrInvalidArgument)
	case p.LastActivityDate != "" && !timex.ValidDate(p.LastActivityDate):
		return fmt.Errorf("%w: bad last activity date %q", common.ErrInvalidArgument, p.LastActivityDate)
	case p.Streak > 0 && p.LastActivityDate == "":
		return fmt.Errorf("%w: streak without last activity date", common.ErrInvalidArgument)
	}
	return nil
}
