package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/activities"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
)

// JournalReward is granted for every journal entry.
var JournalReward = models.Reward{XP: 10, Coins: 5}

const (
	maxTitle    = 200
	maxSleepHrs = 24
)

type ActivityService struct {
	db       *sql.DB
	progress *ProgressService
	log      logging.Logger
	newID    func() string
}

func NewActivityService(db *sql.DB, progress *ProgressService, log logging.Logger) *ActivityService {
	if log == nil {
		log = logging.Nop{}
	}
	return &ActivityService{db: db, progress: progress, log: log, newID: common.NewID}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// AddJournalEntry stores a journal entry and counts it toward the streak.
// mood is optional; 0 means not set.
func (s *ActivityService) AddJournalEntry(ctx context.Context, title, body string, mood int) (models.Profile, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxTitle {
		return s.progress.Current(), invalid("title must be 1..%d characters", maxTitle)
	}
	if mood != 0 && (mood < 1 || mood > 5) {
		return s.progress.Current(), invalid("mood must be between 1 and 5")
	}
	return s.recordQualifying(ctx, models.KindJournal, models.JournalEntry{Title: title, Body: body, Mood: mood}, JournalReward)
}

func (s *ActivityService) CompleteChallenge(ctx context.Context, challengeID string, reward models.Reward) (models.Profile, error) {
	return s.complete(ctx, models.KindChallenge, challengeID, reward)
}

func (s *ActivityService) CompleteTask(ctx context.Context, taskID string, reward models.Reward) (models.Profile, error) {
	return s.complete(ctx, models.KindTask, taskID, reward)
}

func (s *ActivityService) complete(ctx context.Context, kind models.ActivityKind, refID string, reward models.Reward) (models.Profile, error) {
	refID = strings.TrimSpace(refID)
	if refID == "" {
		return s.progress.Current(), invalid("%s id is required", kind)
	}
	if reward.XP < 0 || reward.Coins < 0 {
		return s.progress.Current(), invalid("reward must not be negative")
	}
	return s.recordQualifying(ctx, kind, models.Completion{RefID: refID, Reward: reward}, reward)
}

func (s *ActivityService) recordQualifying(ctx context.Context, kind models.ActivityKind, payload any, reward models.Reward) (models.Profile, error) {
	p, err := s.progress.Update(ctx, func(ctx context.Context, tx dbx.DBTX, p *models.Profile) error {
		a, err := models.NewActivity(s.newID(), kind, s.progress.Tracker().Today(), payload, s.progress.clock.Now())
		if err != nil {
			return err
		}
		if err := activities.NewSQLiteRepository(tx).Create(ctx, a); err != nil {
			return err
		}
		s.progress.RecordActivity(ctx, p, reward)
		return nil
	})
	if err != nil {
		return p, fmt.Errorf("record %s: %w", kind, err)
	}
	return p, nil
}

// LogMood stores a 1..5 mood score. Logs do not affect the streak.
func (s *ActivityService) LogMood(ctx context.Context, score int, note string) (*models.Activity, error) {
	if score < 1 || score > 5 {
		return nil, invalid("mood score must be between 1 and 5")
	}
	return s.insertLog(ctx, models.KindMood, models.MoodLog{Score: score, Note: strings.TrimSpace(note)})
}

func (s *ActivityService) LogSleep(ctx context.Context, hours float64) (*models.Activity, error) {
	if hours <= 0 || hours > maxSleepHrs {
		return nil, invalid("sleep hours must be in (0, %d]", maxSleepHrs)
	}
	return s.insertLog(ctx, models.KindSleep, models.SleepLog{Hours: hours})
}

func (s *ActivityService) LogWater(ctx context.Context, glasses int) (*models.Activity, error) {
	if glasses <= 0 {
		return nil, invalid("glasses must be positive")
	}
	return s.insertLog(ctx, models.KindWater, models.WaterLog{Glasses: glasses})
}

func (s *ActivityService) LogExercise(ctx context.Context, minutes int, kind string) (*models.Activity, error) {
	if minutes <= 0 {
		return nil, invalid("exercise minutes must be positive")
	}
	return s.insertLog(ctx, models.KindExercise, models.ExerciseLog{Minutes: minutes, Kind: strings.TrimSpace(kind)})
}

func (s *ActivityService) insertLog(ctx context.Context, kind models.ActivityKind, payload any) (*models.Activity, error) {
	a, err := models.NewActivity(s.newID(), kind, s.progress.Tracker().Today(), payload, s.progress.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := activities.NewSQLiteRepository(s.db).Create(ctx, a); err != nil {
		return nil, fmt.Errorf("log %s: %w", kind, err)
	}
	s.log.Debug(ctx, "activity logged", "kind", kind, "id", a.ID)
	return a, nil
}

// ListDay returns the activities of day, today when day is empty.
func (s *ActivityService) ListDay(ctx context.Context, day string) ([]models.Activity, error) {
	day, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}
	return activities.NewSQLiteRepository(s.db).ListByDay(ctx, day)
}

// ListJournal returns all journal entries, oldest first.
func (s *ActivityService) ListJournal(ctx context.Context) ([]models.Activity, error) {
	return activities.NewSQLiteRepository(s.db).ListByKind(ctx, models.KindJournal)
}

func (s *ActivityService) DailySummary(ctx context.Context, day string) (models.DailySummary, error) {
	items, err := s.ListDay(ctx, day)
	if err != nil {
		return models.DailySummary{}, err
	}
	day, _ = s.resolveDay(day)

	sum := models.DailySummary{Day: day}
	moodTotal := 0
	for _, a := range items {
		switch a.Kind {
		case models.KindJournal:
			sum.JournalEntries++
		case models.KindChallenge, models.KindTask:
			sum.Completions++
		case models.KindWater:
			v, err := models.Decode[models.WaterLog](a)
			if err != nil {
				s.log.Warn(ctx, "skip unreadable activity", "id", a.ID, "error", err)
				continue
			}
			sum.WaterGlasses += v.Glasses
		case models.KindSleep:
			v, err := models.Decode[models.SleepLog](a)
			if err != nil {
				s.log.Warn(ctx, "skip unreadable activity", "id", a.ID, "error", err)
				continue
			}
			sum.SleepHours += v.Hours
		case models.KindExercise:
			v, err := models.Decode[models.ExerciseLog](a)
			if err != nil {
				s.log.Warn(ctx, "skip unreadable activity", "id", a.ID, "error", err)
				continue
			}
			sum.ExerciseMinutes += v.Minutes
		case models.KindMood:
			v, err := models.Decode[models.MoodLog](a)
			if err != nil {
				s.log.Warn(ctx, "skip unreadable activity", "id", a.ID, "error", err)
				continue
			}
			moodTotal += v.Score
			sum.MoodSamples++
		}
	}
	if sum.MoodSamples > 0 {
		sum.MoodAverage = float64(moodTotal) / float64(sum.MoodSamples)
	}
	return sum, nil
}

// History returns the number of journal entries per day, the data behind
// the streak calendar.
func (s *ActivityService) History(ctx context.Context) (map[string]int, error) {
	return activities.NewSQLiteRepository(s.db).CountByDay(ctx, models.KindJournal)
}

func (s *ActivityService) resolveDay(day string) (string, error) {
	if day == "" {
		return s.progress.Tracker().Today(), nil
	}
	if !timex.ValidDate(day) {
		return "", invalid("day %q is not YYYY-MM-DD", day)
	}
	return day, nil
}
