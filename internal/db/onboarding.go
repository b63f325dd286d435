package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careeridream/backend/internal/profile"
)

// SectionPayload carries the sections of an aggregate submission. A nil
// pointer means the section was absent and must not be touched; a
// non-nil empty slice clears the section.
type SectionPayload struct {
	Profile       *profile.ProfileUpdate
	ResumeFileRef *string

	Skills         *[]profile.SkillInput
	Experiences    *[]profile.ExperienceInput
	Educations     *[]profile.EducationInput
	Certifications *[]profile.CertificationInput
	Achievements   *[]profile.AchievementInput
}

// SectionCounts reports how many rows each child collection holds after
// a write, whether or not that section was part of it.
type SectionCounts struct {
	Skills         int `json:"skills"`
	Experiences    int `json:"experiences"`
	Educations     int `json:"educations"`
	Certifications int `json:"certifications"`
	Achievements   int `json:"achievements"`
}

// ReplaceSections applies an aggregate submission in one transaction:
// a partial update of the profile's direct fields plus a delete-and-
// rewrite of every section present in the payload. Either all sections
// land or none do. Returns the updated profile and the live counts of
// all five child collections, read inside the same transaction.
func (db *DB) ReplaceSections(ctx context.Context, profileID uuid.UUID, payload *SectionPayload) (*profile.Profile, *SectionCounts, error) {
	var (
		updated *profile.Profile
		counts  SectionCounts
	)
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		if updated, err = updateProfileTx(ctx, tx, profileID, payload.Profile, payload.ResumeFileRef); err != nil {
			return err
		}

		if payload.Skills != nil {
			if err := replaceSkillsTx(ctx, tx, profileID, *payload.Skills); err != nil {
				return err
			}
		}
		if payload.Experiences != nil {
			if err := replaceExperiencesTx(ctx, tx, profileID, *payload.Experiences); err != nil {
				return err
			}
		}
		if payload.Educations != nil {
			if err := replaceEducationsTx(ctx, tx, profileID, *payload.Educations); err != nil {
				return err
			}
		}
		if payload.Certifications != nil {
			if err := replaceCertificationsTx(ctx, tx, profileID, *payload.Certifications); err != nil {
				return err
			}
		}
		if payload.Achievements != nil {
			if err := replaceAchievementsTx(ctx, tx, profileID, *payload.Achievements); err != nil {
				return err
			}
		}

		score, snapshot, err := recomputeCompletenessTx(ctx, tx, profileID)
		if err != nil {
			return err
		}
		updated.Completeness = score
		counts = SectionCounts{
			Skills:         snapshot.SkillCount,
			Experiences:    snapshot.ExperienceCount,
			Educations:     snapshot.EducationCount,
			Certifications: snapshot.CertificationCount,
			Achievements:   snapshot.AchievementCount,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, &counts, nil
}
