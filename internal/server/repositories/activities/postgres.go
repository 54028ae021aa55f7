package activities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// The no-op update makes RETURNING report rows re-sent by their owner.
const insertActivity = `INSERT INTO activities (id, user_id, kind, day, payload, created_at)
		 VALUES ($1, $2, $3, $4::date, $5::jsonb, $6)
		 ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		 WHERE activities.user_id = EXCLUDED.user_id
		 RETURNING id
		 `

func (r *PostgresRepository) InsertBatch(ctx context.Context, userID string, activities []models.Activity) ([]string, error) {
	accepted := make([]string, 0, len(activities))

	for _, a := range activities {
		payload := string(a.Payload)
		if payload == "" {
			payload = "{}"
		}

		var id string
		err := r.db.QueryRowContext(ctx, insertActivity, a.ID, userID, a.Kind, a.Day, payload, a.CreatedAt).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		accepted = append(accepted, id)
	}

	return accepted, nil
}

func (r *PostgresRepository) ListJournal(ctx context.Context, userID string) ([]models.Activity, error) {
	query :=
		`SELECT id, user_id, kind, day::text, payload, created_at FROM activities
		 WHERE user_id = $1 AND kind = $2
		 ORDER BY day, created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, models.KindJournal)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Kind, &a.Day, &a.Payload, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
