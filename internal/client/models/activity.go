package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ActivityKind classifies an activity log line.
type ActivityKind string

const (
	KindJournal   ActivityKind = "journal"
	KindChallenge ActivityKind = "challenge"
	KindTask      ActivityKind = "task"
	KindMood      ActivityKind = "mood"
	KindSleep     ActivityKind = "sleep"
	KindWater     ActivityKind = "water"
	KindExercise  ActivityKind = "exercise"
)

var kinds = map[ActivityKind]bool{
	KindJournal:   true,
	KindChallenge: true,
	KindTask:      true,
	KindMood:      false,
	KindSleep:     false,
	KindWater:     false,
	KindExercise:  false,
}

// Valid reports whether k is a known kind.
func (k ActivityKind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Qualifying reports whether completing an activity of kind k advances the streak.
func (k ActivityKind) Qualifying() bool {
	return kinds[k]
}

// Activity is one entry of the local history. Payload holds the
// kind-specific JSON document.
type Activity struct {
	ID        string
	Kind      ActivityKind
	Day       string
	Payload   []byte
	CreatedAt time.Time
	Pending   bool
}

type JournalEntry struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Mood  int    `json:"mood,omitempty"`
}

// Completion records a finished challenge or task.
type Completion struct {
	RefID  string `json:"refId"`
	Reward Reward `json:"reward"`
}

type MoodLog struct {
	Score int    `json:"score"`
	Note  string `json:"note,omitempty"`
}

type SleepLog struct {
	Hours float64 `json:"hours"`
}

type WaterLog struct {
	Glasses int `json:"glasses"`
}

type ExerciseLog struct {
	Minutes int    `json:"minutes"`
	Kind    string `json:"kind,omitempty"`
}

// NewActivity builds a pending activity of the given kind with v encoded as payload.
func NewActivity[T any](id string, kind ActivityKind, day string, v T, now time.Time) (*Activity, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	return &Activity{
		ID:        id,
		Kind:      kind,
		Day:       day,
		Payload:   b,
		CreatedAt: now.UTC(),
		Pending:   true,
	}, nil
}

// Decode unmarshals the payload of a into T.
func Decode[T any](a Activity) (T, error) {
	var v T
	if err := json.Unmarshal(a.Payload, &v); err != nil {
		return v, fmt.Errorf("decode %s payload: %w", a.Kind, err)
	}
	return v, nil
}

// DailySummary aggregates one day of activities.
type DailySummary struct {
	Day             string
	JournalEntries  int
	Completions     int
	WaterGlasses    int
	SleepHours      float64
	ExerciseMinutes int
	MoodAverage     float64
	MoodSamples     int
}
