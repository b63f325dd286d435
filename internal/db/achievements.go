package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careeridream/backend/internal/profile"
)

func scanAchievement(row pgx.Row) (*profile.Achievement, error) {
	var a profile.Achievement
	var achieved *time.Time
	err := row.Scan(&a.ID, &a.Title, &a.Description, &achieved, &a.Order)
	if err != nil {
		return nil, err
	}
	a.Date = dateVal(achieved)
	return &a, nil
}

const achievementColumns = `id, title, description, achieved_on, ord`

// ListAchievements returns a profile's achievements in stored order.
func (db *DB) ListAchievements(ctx context.Context, profileID uuid.UUID) ([]profile.Achievement, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+achievementColumns+` FROM achievements
		 WHERE profile_id = $1 ORDER BY ord, id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	achievements := []profile.Achievement{}
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, *a)
	}
	return achievements, rows.Err()
}

// CreateAchievement inserts one achievement and refreshes the
// completeness score.
func (db *DB) CreateAchievement(ctx context.Context, profileID uuid.UUID, in *profile.AchievementInput) (*profile.Achievement, error) {
	var created *profile.Achievement
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = scanAchievement(tx.QueryRow(ctx,
			`INSERT INTO achievements (profile_id, title, description, achieved_on, ord)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING `+achievementColumns,
			profileID, in.Title, in.Description, dateArg(in.Date), in.Order,
		))
		if err != nil {
			return fmt.Errorf("failed to create achievement: %w", err)
		}
		_, _, err = recomputeCompletenessTx(ctx, tx, profileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateAchievement replaces one achievement's fields. The row must
// belong to the given profile.
func (db *DB) UpdateAchievement(ctx context.Context, profileID, id uuid.UUID, in *profile.AchievementInput) (*profile.Achievement, error) {
	updated, err := scanAchievement(db.pool.QueryRow(ctx,
		`UPDATE achievements SET title = $3, description = $4, achieved_on = $5, ord = $6
		 WHERE id = $2 AND profile_id = $1
		 RETURNING `+achievementColumns,
		profileID, id, in.Title, in.Description, dateArg(in.Date), in.Order,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update achievement: %w", err)
	}
	return updated, nil
}

// DeleteAchievement removes one achievement and refreshes the
// completeness score.
func (db *DB) DeleteAchievement(ctx context.Context, profileID, id uuid.UUID) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM achievements WHERE id = $2 AND profile_id = $1`,
			profileID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to delete achievement: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		_, _, err = recomputeCompletenessTx(ctx, tx, profileID)
		return err
	})
}

func replaceAchievementsTx(ctx context.Context, q querier, profileID uuid.UUID, items []profile.AchievementInput) error {
	if _, err := q.Exec(ctx, `DELETE FROM achievements WHERE profile_id = $1`, profileID); err != nil {
		return fmt.Errorf("failed to clear achievements: %w", err)
	}
	for _, in := range items {
		if _, err := q.Exec(ctx,
			`INSERT INTO achievements (profile_id, title, description, achieved_on, ord)
			 VALUES ($1, $2, $3, $4, $5)`,
			profileID, in.Title, in.Description, dateArg(in.Date), in.Order,
		); err != nil {
			return fmt.Errorf("failed to insert achievement: %w", err)
		}
	}
	return nil
}
