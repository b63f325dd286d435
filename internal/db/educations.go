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

func scanEducation(row pgx.Row) (*profile.Education, error) {
	var e profile.Education
	var start, end *time.Time
	err := row.Scan(&e.ID, &e.School, &e.Degree, &e.FieldOfStudy, &start, &end,
		&e.Description, &e.Order)
	if err != nil {
		return nil, err
	}
	e.StartDate = dateVal(start)
	e.EndDate = dateVal(end)
	return &e, nil
}

const educationColumns = `id, school, degree, field_of_study, start_date, end_date, description, ord`

// ListEducations returns a profile's education entries in stored order.
func (db *DB) ListEducations(ctx context.Context, profileID uuid.UUID) ([]profile.Education, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+educationColumns+` FROM educations
		 WHERE profile_id = $1 ORDER BY ord, id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list educations: %w", err)
	}
	defer rows.Close()

	educations := []profile.Education{}
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan education: %w", err)
		}
		educations = append(educations, *e)
	}
	return educations, rows.Err()
}

// CreateEducation inserts one education entry and refreshes the
// completeness score.
func (db *DB) CreateEducation(ctx context.Context, profileID uuid.UUID, in *profile.EducationInput) (*profile.Education, error) {
	var created *profile.Education
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = scanEducation(tx.QueryRow(ctx,
			`INSERT INTO educations (profile_id, school, degree, field_of_study, start_date, end_date, description, ord)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING `+educationColumns,
			profileID, in.School, in.Degree, in.FieldOfStudy,
			dateArg(in.StartDate), dateArg(in.EndDate), in.Description, in.Order,
		))
		if err != nil {
			return fmt.Errorf("failed to create education: %w", err)
		}
		_, _, err = recomputeCompletenessTx(ctx, tx, profileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateEducation replaces one education entry's fields. The row must
// belong to the given profile.
func (db *DB) UpdateEducation(ctx context.Context, profileID, id uuid.UUID, in *profile.EducationInput) (*profile.Education, error) {
	updated, err := scanEducation(db.pool.QueryRow(ctx,
		`UPDATE educations SET school = $3, degree = $4, field_of_study = $5,
			start_date = $6, end_date = $7, description = $8, ord = $9
		 WHERE id = $2 AND profile_id = $1
		 RETURNING `+educationColumns,
		profileID, id, in.School, in.Degree, in.FieldOfStudy,
		dateArg(in.StartDate), dateArg(in.EndDate), in.Description, in.Order,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update education: %w", err)
	}
	return updated, nil
}

// DeleteEducation removes one education entry and refreshes the
// completeness score.
func (db *DB) DeleteEducation(ctx context.Context, profileID, id uuid.UUID) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM educations WHERE id = $2 AND profile_id = $1`,
			profileID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to delete education: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		_, _, err = recomputeCompletenessTx(ctx, tx, profileID)
		return err
	})
}

func replaceEducationsTx(ctx context.Context, q querier, profileID uuid.UUID, items []profile.EducationInput) error {
	if _, err := q.Exec(ctx, `DELETE FROM educations WHERE profile_id = $1`, profileID); err != nil {
		return fmt.Errorf("failed to clear educations: %w", err)
	}
	for _, in := range items {
		if _, err := q.Exec(ctx,
			`INSERT INTO educations (profile_id, school, degree, field_of_study, start_date, end_date, description, ord)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			profileID, in.School, in.Degree, in.FieldOfStudy,
			dateArg(in.StartDate), dateArg(in.EndDate), in.Description, in.Order,
		); err != nil {
			return fmt.Errorf("failed to insert education: %w", err)
		}
	}
	return nil
}
