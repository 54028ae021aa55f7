package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/streak"
	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
)

const maxDisplayName = 64

// Status is the profile as shown to the user.
type Status struct {
	Profile models.Profile
	Phase   streak.Phase
	Level   int
	Today   string
}

// UpdateFunc mutates p inside the transaction tx. Returning an error rolls
// the transaction back and leaves the in-memory profile untouched.
type UpdateFunc func(ctx context.Context, tx dbx.DBTX, p *models.Profile) error

type ProgressService struct {
	db      *sql.DB
	clock   timex.Clock
	tracker *streak.Tracker
	log     logging.Logger

	mu      sync.Mutex
	loaded  bool
	current models.Profile
}

func NewProgressService(db *sql.DB, clock timex.Clock, loc *time.Location, log logging.Logger) *ProgressService {
	if clock == nil {
		clock = timex.SystemClock{}
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &ProgressService{
		db:      db,
		clock:   clock,
		tracker: streak.NewTracker(clock, loc),
		log:     log,
	}
}

func (s *ProgressService) Tracker() *streak.Tracker {
	return s.tracker
}

// Startup loads the stored profile, resets a streak that lapsed while the
// app was closed and persists the result.
func (s *ProgressService) Startup(ctx context.Context) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.startupLocked(ctx); err != nil {
		return models.Profile{}, err
	}
	return s.current, nil
}

func (s *ProgressService) startupLocked(ctx context.Context) error {
	var next models.Profile
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		store := profiles.NewStore(metadata.NewSQLiteRepository(tx), s.clock)
		p, err := store.Load(ctx)
		if err != nil {
			return err
		}

		before := p.Progress
		p.Progress = s.tracker.EvaluateOnStartup(p.Progress)
		if p.Progress != before {
			p.UpdatedAt = s.clock.Now().UTC()
			if before.Streak > 0 && p.Streak == 0 {
				s.log.Info(ctx, "streak lapsed", "was", before.Streak, "lastActivityDate", before.LastActivityDate)
			}
		}
		next = *p
		return store.Save(ctx, p)
	})
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	s.current = next
	s.loaded = true
	s.log.Debug(ctx, "profile loaded", "streak", next.Streak, "lastActivityDate", next.LastActivityDate)
	return nil
}

// Current returns the in-memory profile. It is the zero value before Startup.
func (s *ProgressService) Current() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update is the only way to change the profile. fn works on a copy; the
// copy is saved in the same transaction and becomes current after commit.
func (s *ProgressService) Update(ctx context.Context, fn UpdateFunc) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.startupLocked(ctx); err != nil {
			return models.Profile{}, err
		}
	}

	next := s.current
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := fn(ctx, tx, &next); err != nil {
			return err
		}
		next.UpdatedAt = s.clock.Now().UTC()
		return profiles.NewStore(metadata.NewSQLiteRepository(tx), s.clock).Save(ctx, &next)
	})
	if err != nil {
		return s.current, err
	}

	s.current = next
	return next, nil
}

// RecordActivity advances the streak for today and applies reward.
func (s *ProgressService) RecordActivity(ctx context.Context, p *models.Profile, reward models.Reward) {
	before := p.Streak
	p.Progress = s.tracker.RecordActivity(p.Progress)
	p.Apply(reward)
	if p.Streak != before {
		s.log.Info(ctx, "streak recorded", "streak", p.Streak, "longest", p.LongestStreak)
	}
}

func (s *ProgressService) Status(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.startupLocked(ctx); err != nil {
			return Status{}, err
		}
	}
	return Status{
		Profile: s.current,
		Phase:   s.tracker.PhaseOf(s.current.Progress),
		Level:   s.current.Level(),
		Today:   s.tracker.Today(),
	}, nil
}

// Reset wipes the stored profile and settings and starts from a fresh
// profile. Logged activities are kept.
func (s *ProgressService) Reset(ctx context.Context) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := *models.NewProfile(s.clock.Now())
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meta := metadata.NewSQLiteRepository(tx)
		if err := meta.Clear(ctx); err != nil {
			return err
		}
		return profiles.NewStore(meta, s.clock).Save(ctx, &fresh)
	})
	if err != nil {
		return s.current, fmt.Errorf("reset: %w", err)
	}

	s.log.Info(ctx, "progress reset", "was", s.current.Streak, "xp", s.current.XP)
	s.current = fresh
	s.loaded = true
	return fresh, nil
}

// SetDisplayName changes the name shown on the leaderboard.
func (s *ProgressService) SetDisplayName(ctx context.Context, name string) (models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxDisplayName {
		return s.Current(), fmt.Errorf("%w: display name must be 1..%d characters", common.ErrInvalidArgument, maxDisplayName)
	}
	return s.Update(ctx, func(_ context.Context, _ dbx.DBTX, p *models.Profile) error {
		p.DisplayName = name
		return nil
	})
}
