// Package onboarding implements the aggregate profile submission: one
// request carrying the profile fields, any subset of the child sections,
// and an optional resume file, applied atomically.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/careeridream/backend/internal/db"
	"github.com/careeridream/backend/internal/profile"
	"github.com/careeridream/backend/internal/storage"
)

// ErrProfileNotFound is returned when the user has no profile to submit
// against.
var ErrProfileNotFound = errors.New("profile not found")

// Store is the database surface the aggregator needs.
type Store interface {
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error)
	ReplaceSections(ctx context.Context, profileID uuid.UUID, payload *db.SectionPayload) (*profile.Profile, *db.SectionCounts, error)
}

// Submission is the aggregate request body. Absent sections are nil and
// stay untouched; present-but-empty sections clear their stored rows.
type Submission struct {
	Profile *profile.ProfileUpdate `json:"profile"`

	Skills         *[]profile.SkillInput         `json:"skills"`
	Experiences    *[]profile.ExperienceInput    `json:"experiences"`
	Educations     *[]profile.EducationInput     `json:"educations"`
	Certifications *[]profile.CertificationInput `json:"certifications"`
	Achievements   *[]profile.AchievementInput   `json:"achievements"`
}

// ResumeUpload is an optional resume file attached to a submission.
type ResumeUpload struct {
	Filename string
	Data     []byte
}

// Result is the response of a successful submission.
type Result struct {
	Profile         *profile.Profile  `json:"profile"`
	Sections        *db.SectionCounts `json:"sections"`
	NeedsOnboarding bool              `json:"needs_onboarding"`
}

// Status reports whether a user still needs onboarding.
type Status struct {
	NeedsOnboarding bool `json:"needs_onboarding"`
	Completeness    int  `json:"profile_completeness"`
}

// Service validates and applies aggregate submissions.
type Service struct {
	store Store
	files storage.FileStore
}

// NewService builds an aggregator over the given store and file store.
func NewService(store Store, files storage.FileStore) *Service {
	return &Service{store: store, files: files}
}

// GetStatus reports the user's onboarding state.
func (s *Service) GetStatus(ctx context.Context, userID uuid.UUID) (*Status, error) {
	p, err := s.store.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return &Status{
		NeedsOnboarding: profile.NeedsOnboarding(p.Completeness),
		Completeness:    p.Completeness,
	}, nil
}

// Submit validates every present section, stores the resume file if one
// was attached, and applies all sections in a single transaction. Any
// validation failure rejects the whole submission before anything is
// written.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, sub *Submission, resume *ResumeUpload) (*Result, error) {
	p, err := s.store.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}

	if err := validate(sub, resume); err != nil {
		return nil, err
	}

	payload := &db.SectionPayload{
		Profile:        sub.Profile,
		Skills:         sub.Skills,
		Experiences:    sub.Experiences,
		Educations:     sub.Educations,
		Certifications: sub.Certifications,
		Achievements:   sub.Achievements,
	}

	if resume != nil {
		ref, err := s.files.Save(userID, resume.Filename, resume.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to store resume file: %w", err)
		}
		payload.ResumeFileRef = &ref
	}

	updated, counts, err := s.store.ReplaceSections(ctx, p.ID, payload)
	if err != nil {
		// The transaction rolled back, so nothing references the file.
		if payload.ResumeFileRef != nil {
			if rmErr := s.files.Remove(*payload.ResumeFileRef); rmErr != nil {
				log.Printf("Failed to remove orphaned resume file %s: %v", *payload.ResumeFileRef, rmErr)
			}
		}
		return nil, err
	}

	return &Result{
		Profile:         updated,
		Sections:        counts,
		NeedsOnboarding: profile.NeedsOnboarding(updated.Completeness),
	}, nil
}

// validate normalizes and checks every present section. The first
// failing section reports; nothing has been persisted at that point.
func validate(sub *Submission, resume *ResumeUpload) error {
	if sub.Profile != nil {
		if err := profile.ValidateProfileUpdate(sub.Profile); err != nil {
			return err
		}
	}
	if sub.Skills != nil {
		if err := profile.ValidateSection[profile.SkillInput](profile.SectionSkills, *sub.Skills); err != nil {
			return err
		}
	}
	if sub.Experiences != nil {
		if err := profile.ValidateSection[profile.ExperienceInput](profile.SectionExperiences, *sub.Experiences); err != nil {
			return err
		}
	}
	if sub.Educations != nil {
		if err := profile.ValidateSection[profile.EducationInput](profile.SectionEducations, *sub.Educations); err != nil {
			return err
		}
	}
	if sub.Certifications != nil {
		if err := profile.ValidateSection[profile.CertificationInput](profile.SectionCertifications, *sub.Certifications); err != nil {
			return err
		}
	}
	if sub.Achievements != nil {
		if err := profile.ValidateSection[profile.AchievementInput](profile.SectionAchievements, *sub.Achievements); err != nil {
			return err
		}
	}

	if resume != nil {
		if resume.Filename == "" {
			return &profile.ValidationError{
				Section: "resume_file",
				Index:   -1,
				Field:   "filename",
				Message: "filename is required",
			}
		}
		if len(resume.Data) > profile.MaxResumeSize {
			return &profile.ValidationError{
				Section: "resume_file",
				Index:   -1,
				Field:   "file",
				Message: fmt.Sprintf("file exceeds %d byte limit", profile.MaxResumeSize),
			}
		}
	}
	return nil
}
