package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Profile) (bool, error) {
	query :=
		`INSERT INTO profiles (user_id, display_name, streak, last_activity_date, longest_streak, xp, coins, updated_at)
		 VALUES ($1, $2, $3, NULLIF($4, '')::date, $5, $6, $7, $8)
		 ON CONFLICT (user_id) DO UPDATE SET
		   display_name = EXCLUDED.display_name,
		   streak = EXCLUDED.streak,
		   last_activity_date = EXCLUDED.last_activity_date,
		   longest_streak = EXCLUDED.longest_streak,
		   xp = EXCLUDED.xp,
		   coins = EXCLUDED.coins,
		   updated_at = EXCLUDED.updated_at
		 WHERE profiles.updated_at <= EXCLUDED.updated_at
		 `

	res, err := r.db.ExecContext(ctx, query,
		p.UserID, p.DisplayName, p.Streak, p.LastActivityDate, p.LongestStreak, p.XP, p.Coins, p.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

const selectProfile = `SELECT user_id, display_name, streak, COALESCE(last_activity_date::text, ''), longest_streak, xp, coins, updated_at
		 FROM profiles`

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := selectProfile + `
		 WHERE user_id = $1
		 `

	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&p.UserID, &p.DisplayName, &p.Streak, &p.LastActivityDate, &p.LongestStreak, &p.XP, &p.Coins, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

// Top ranks by the streak as it stands on activeSince: a profile whose last
// activity is older than that day counts with streak 0, whatever was pushed.
func (r *PostgresRepository) Top(ctx context.Context, activeSince string, limit int) ([]models.Profile, error) {
	query :=
		`SELECT user_id, display_name,
		   CASE WHEN last_activity_date >= $1::date THEN streak ELSE 0 END AS current_streak,
		   COALESCE(last_activity_date::text, ''), longest_streak, xp, coins, updated_at
		 FROM profiles
		 ORDER BY current_streak DESC, longest_streak DESC, xp DESC, user_id
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, activeSince, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.UserID, &p.DisplayName, &p.Streak, &p.LastActivityDate, &p.LongestStreak, &p.XP, &p.Coins, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
