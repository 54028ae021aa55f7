package activities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
)

const selectColumns = `SELECT id, kind, day, payload, created_at, pending FROM activities`

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, a *models.Activity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activities (id, kind, day, payload, created_at, pending)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.ID, string(a.Kind), a.Day, a.Payload, a.CreatedAt.UTC().Format(timeLayout), a.Pending)
	if err != nil {
		return fmt.Errorf("insert activity %s: %w", a.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get activity %s: %w", id, err)
	}
	return a, nil
}

func (r *SQLiteRepository) ListByDay(ctx context.Context, day string) ([]models.Activity, error) {
	return r.list(ctx, "list activities by day",
		selectColumns+` WHERE day = ? ORDER BY created_at, id`, day)
}

func (r *SQLiteRepository) ListByKind(ctx context.Context, kind models.ActivityKind) ([]models.Activity, error) {
	return r.list(ctx, "list activities by kind",
		selectColumns+` WHERE kind = ? ORDER BY created_at, id`, string(kind))
}

// ListPending returns the oldest unsynced activities first. A non-positive
// limit returns all of them.
func (r *SQLiteRepository) ListPending(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = -1
	}
	return r.list(ctx, "list pending activities",
		selectColumns+` WHERE pending = 1 ORDER BY created_at, id LIMIT ?`, limit)
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	_, err := r.db.ExecContext(ctx, `UPDATE activities SET pending = 0 WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("mark activities synced: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CountByDay(ctx context.Context, kind models.ActivityKind) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT day, COUNT(*) FROM activities WHERE kind = ? GROUP BY day`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("count activities: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("scan activity count: %w", err)
		}
		out[day] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity counts: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) list(ctx context.Context, op, query string, args ...any) ([]models.Activity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(s scanner) (*models.Activity, error) {
	var (
		a       models.Activity
		kind    string
		created string
	)
	if err := s.Scan(&a.ID, &kind, &a.Day, &a.Payload, &created, &a.Pending); err != nil {
		return nil, err
	}
	ts, err := time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of %s: %w", a.ID, err)
	}
	a.Kind = models.ActivityKind(kind)
	a.CreatedAt = ts
	return &a, nil
}
