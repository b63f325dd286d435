package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careeridream/backend/internal/profile"
)

// ListSkills returns a profile's skills in stored order.
func (db *DB) ListSkills(ctx context.Context, profileID uuid.UUID) ([]profile.Skill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, proficiency, ord FROM skills
		 WHERE profile_id = $1 ORDER BY ord, id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	skills := []profile.Skill{}
	for rows.Next() {
		var s profile.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Proficiency, &s.Order); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// CreateSkill inserts one skill and refreshes the completeness score.
func (db *DB) CreateSkill(ctx context.Context, profileID uuid.UUID, in *profile.SkillInput) (*profile.Skill, error) {
	var created profile.Skill
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO skills (profile_id, name, proficiency, ord)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, name, proficiency, ord`,
			profileID, in.Name, in.Proficiency, in.Order,
		).Scan(&created.ID, &created.Name, &created.Proficiency, &created.Order)
		if err != nil {
			return fmt.Errorf("failed to create skill: %w", err)
		}
		_, _, err = recomputeCompletenessTx(ctx, tx, profileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSkill replaces one skill's fields. The row must belong to the
// given profile.
func (db *DB) UpdateSkill(ctx context.Context, profileID, id uuid.UUID, in *profile.SkillInput) (*profile.Skill, error) {
	var updated profile.Skill
	err := db.pool.QueryRow(ctx,
		`UPDATE skills SET name = $3, proficiency = $4, ord = $5
		 WHERE id = $2 AND profile_id = $1
		 RETURNING id, name, proficiency, ord`,
		profileID, id, in.Name, in.Proficiency, in.Order,
	).Scan(&updated.ID, &updated.Name, &updated.Proficiency, &updated.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}
	return &updated, nil
}

// DeleteSkill removes one skill and refreshes the completeness score.
func (db *DB) DeleteSkill(ctx context.Context, profileID, id uuid.UUID) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM skills WHERE id = $2 AND profile_id = $1`,
			profileID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to delete skill: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		_, _, err = recomputeCompletenessTx(ctx, tx, profileID)
		return err
	})
}

// replaceSkillsTx clears and rewrites the skills section inside an open
// transaction.
func replaceSkillsTx(ctx context.Context, q querier, profileID uuid.UUID, items []profile.SkillInput) error {
	if _, err := q.Exec(ctx, `DELETE FROM skills WHERE profile_id = $1`, profileID); err != nil {
		return fmt.Errorf("failed to clear skills: %w", err)
	}
	for _, in := range items {
		if _, err := q.Exec(ctx,
			`INSERT INTO skills (profile_id, name, proficiency, ord)
			 VALUES ($1, $2, $3, $4)`,
			profileID, in.Name, in.Proficiency, in.Order,
		); err != nil {
			return fmt.Errorf("failed to insert skill: %w", err)
		}
	}
	return nil
}
