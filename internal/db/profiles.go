package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careeridream/backend/internal/profile"
)

const profileColumns = `id, user_id, headline, summary, location, phone,
	profile_completeness, resume_file, created_at, updated_at`

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.Headline, &p.Summary, &p.Location, &p.Phone,
		&p.Completeness, &p.ResumeFile, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// EnsureProfile returns the user's profile, creating an empty one if it
// does not exist yet. Called when the auth service reports a new user.
func (db *DB) EnsureProfile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id)
		 VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = profiles.user_id
		 RETURNING `+profileColumns,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}
	return p, nil
}

// GetProfileByUserID retrieves the profile owned by a user.
// Returns nil without error when the user has no profile.
func (db *DB) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetDetail retrieves the profile and all child collections for a user.
// Returns nil without error when the user has no profile.
func (db *DB) GetDetail(ctx context.Context, userID uuid.UUID) (*profile.Detail, error) {
	p, err := db.GetProfileByUserID(ctx, userID)
	if err != nil || p == nil {
		return nil, err
	}

	detail := &profile.Detail{Profile: *p}

	if detail.Skills, err = db.ListSkills(ctx, p.ID); err != nil {
		return nil, err
	}
	if detail.Experiences, err = db.ListExperiences(ctx, p.ID); err != nil {
		return nil, err
	}
	if detail.Educations, err = db.ListEducations(ctx, p.ID); err != nil {
		return nil, err
	}
	if detail.Certifications, err = db.ListCertifications(ctx, p.ID); err != nil {
		return nil, err
	}
	if detail.Achievements, err = db.ListAchievements(ctx, p.ID); err != nil {
		return nil, err
	}

	return detail, nil
}

// UpdateProfile applies a partial update to the profile's direct fields,
// recomputes completeness, and returns the updated row. Fields left nil
// in the update keep their stored values.
func (db *DB) UpdateProfile(ctx context.Context, profileID uuid.UUID, update *profile.ProfileUpdate, resumeFile *string) (*profile.Profile, error) {
	var updated *profile.Profile
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		if updated, err = updateProfileTx(ctx, tx, profileID, update, resumeFile); err != nil {
			return err
		}

		score, _, err := recomputeCompletenessTx(ctx, tx, profileID)
		if err != nil {
			return err
		}
		updated.Completeness = score
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// updateProfileTx performs the partial field update inside a transaction.
func updateProfileTx(ctx context.Context, q querier, profileID uuid.UUID, update *profile.ProfileUpdate, resumeFile *string) (*profile.Profile, error) {
	if update == nil {
		update = &profile.ProfileUpdate{}
	}

	p, err := scanProfile(q.QueryRow(ctx,
		`UPDATE profiles SET
			headline    = COALESCE($2, headline),
			summary     = COALESCE($3, summary),
			location    = COALESCE($4, location),
			phone       = COALESCE($5, phone),
			resume_file = COALESCE($6, resume_file),
			updated_at  = NOW()
		 WHERE id = $1
		 RETURNING `+profileColumns,
		profileID, update.Headline, update.Summary, update.Location, update.Phone, resumeFile,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return p, nil
}

// recomputeCompletenessTx derives the completeness score from the stored
// profile and the live child-collection counts, persists it, and returns
// the score together with the snapshot it was computed from. Every
// mutating operation calls this before committing so the score never
// drifts from the data it summarizes.
func recomputeCompletenessTx(ctx context.Context, q querier, profileID uuid.UUID) (int, profile.CompletenessInput, error) {
	var in profile.CompletenessInput
	err := q.QueryRow(ctx,
		`SELECT p.headline, p.summary, p.location, p.resume_file,
			(SELECT count(*) FROM skills s WHERE s.profile_id = p.id),
			(SELECT count(*) FROM experiences e WHERE e.profile_id = p.id),
			(SELECT count(*) FROM educations ed WHERE ed.profile_id = p.id),
			(SELECT count(*) FROM certifications c WHERE c.profile_id = p.id),
			(SELECT count(*) FROM achievements a WHERE a.profile_id = p.id)
		 FROM profiles p WHERE p.id = $1`,
		profileID,
	).Scan(&in.Headline, &in.Summary, &in.Location, &in.ResumeFile,
		&in.SkillCount, &in.ExperienceCount, &in.EducationCount,
		&in.CertificationCount, &in.AchievementCount)
	if err != nil {
		return 0, in, fmt.Errorf("failed to load completeness snapshot: %w", err)
	}

	score := profile.CompletenessScore(in)
	if _, err := q.Exec(ctx,
		`UPDATE profiles SET profile_completeness = $2 WHERE id = $1`,
		profileID, score,
	); err != nil {
		return 0, in, fmt.Errorf("failed to persist completeness: %w", err)
	}
	return score, in, nil
}
