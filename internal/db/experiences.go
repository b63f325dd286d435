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

func scanExperience(row pgx.Row) (*profile.Experience, error) {
	var e profile.Experience
	var start, end *time.Time
	err := row.Scan(&e.ID, &e.Company, &e.Title, &e.Location, &start, &end,
		&e.IsCurrent, &e.Description, &e.Order)
	if err != nil {
		return nil, err
	}
	e.StartDate = dateVal(start)
	e.EndDate = dateVal(end)
	return &e, nil
}

const experienceColumns = `id, company, title, location, start_date, end_date, is_current, description, ord`

// ListExperiences returns a profile's experiences in stored order.
func (db *DB) ListExperiences(ctx context.Context, profileID uuid.UUID) ([]profile.Experience, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+experienceColumns+` FROM experiences
		 WHERE profile_id = $1 ORDER BY ord, id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	experiences := []profile.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		experiences = append(experiences, *e)
	}
	return experiences, rows.Err()
}

// CreateExperience inserts one experience and refreshes the completeness
// score.
func (db *DB) CreateExperience(ctx context.Context, profileID uuid.UUID, in *profile.ExperienceInput) (*profile.Experience, error) {
	var created *profile.Experience
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = scanExperience(tx.QueryRow(ctx,
			`INSERT INTO experiences (profile_id, company, title, location, start_date, end_date, is_current, description, ord)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING `+experienceColumns,
			profileID, in.Company, in.Title, in.Location,
			dateArg(in.StartDate), dateArg(in.EndDate), in.IsCurrent, in.Description, in.Order,
		))
		if err != nil {
			return fmt.Errorf("failed to create experience: %w", err)
		}
		_, _, err = recomputeCompletenessTx(ctx, tx, profileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateExperience replaces one experience's fields. The row must belong
// to the given profile.
func (db *DB) UpdateExperience(ctx context.Context, profileID, id uuid.UUID, in *profile.ExperienceInput) (*profile.Experience, error) {
	updated, err := scanExperience(db.pool.QueryRow(ctx,
		`UPDATE experiences SET company = $3, title = $4, location = $5,
			start_date = $6, end_date = $7, is_current = $8, description = $9, ord = $10
		 WHERE id = $2 AND profile_id = $1
		 RETURNING `+experienceColumns,
		profileID, id, in.Company, in.Title, in.Location,
		dateArg(in.StartDate), dateArg(in.EndDate), in.IsCurrent, in.Description, in.Order,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update experience: %w", err)
	}
	return updated, nil
}

// DeleteExperience removes one experience and refreshes the completeness
// score.
func (db *DB) DeleteExperience(ctx context.Context, profileID, id uuid.UUID) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM experiences WHERE id = $2 AND profile_id = $1`,
			profileID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to delete experience: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		_, _, err = recomputeCompletenessTx(ctx, tx, profileID)
		return err
	})
}

func replaceExperiencesTx(ctx context.Context, q querier, profileID uuid.UUID, items []profile.ExperienceInput) error {
	if _, err := q.Exec(ctx, `DELETE FROM experiences WHERE profile_id = $1`, profileID); err != nil {
		return fmt.Errorf("failed to clear experiences: %w", err)
	}
	for _, in := range items {
		if _, err := q.Exec(ctx,
			`INSERT INTO experiences (profile_id, company, title, location, start_date, end_date, is_current, description, ord)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			profileID, in.Company, in.Title, in.Location,
			dateArg(in.StartDate), dateArg(in.EndDate), in.IsCurrent, in.Description, in.Order,
		); err != nil {
			return fmt.Errorf("failed to insert experience: %w", err)
		}
	}
	return nil
}
