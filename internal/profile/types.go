// Package profile defines the career profile data model, its field
// contracts, and the completeness score derived from it.
package profile

import (
	"time"

	"github.com/google/uuid"
)

// MaxResumeSize is the hard limit for an uploaded profile resume file.
const MaxResumeSize = 5 * 1024 * 1024

// Section names used in payloads and validation errors.
const (
	SectionProfile        = "profile"
	SectionSkills         = "skills"
	SectionExperiences    = "experiences"
	SectionEducations     = "educations"
	SectionCertifications = "certifications"
	SectionAchievements   = "achievements"
)

// Profile is the primary per-user career record and the parent of all
// child collections. Completeness is derived, never set by callers.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"-"`
	Headline     string    `json:"headline"`
	Summary      string    `json:"summary"`
	Location     string    `json:"location"`
	Phone        string    `json:"phone"`
	Completeness int       `json:"profile_completeness"`
	ResumeFile   string    `json:"resume_file,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Skill is a skill entry owned by exactly one profile.
type Skill struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Proficiency string    `json:"proficiency,omitempty"`
	Order       int       `json:"order"`
}

// Experience is a work history entry. A nil EndDate with IsCurrent set
// means the role is ongoing.
type Experience struct {
	ID          uuid.UUID `json:"id"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	StartDate   *Date     `json:"start_date"`
	EndDate     *Date     `json:"end_date"`
	IsCurrent   bool      `json:"is_current"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
}

// Education is an education entry.
type Education struct {
	ID           uuid.UUID `json:"id"`
	School       string    `json:"school"`
	Degree       string    `json:"degree,omitempty"`
	FieldOfStudy string    `json:"field_of_study,omitempty"`
	StartDate    *Date     `json:"start_date"`
	EndDate      *Date     `json:"end_date"`
	Description  string    `json:"description,omitempty"`
	Order        int       `json:"order"`
}

// Certification is a certification entry.
type Certification struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Issuer         string    `json:"issuer,omitempty"`
	IssueDate      *Date     `json:"issue_date"`
	ExpirationDate *Date     `json:"expiration_date"`
	CredentialURL  string    `json:"credential_url,omitempty"`
	Order          int       `json:"order"`
}

// Achievement is an achievement entry.
type Achievement struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        *Date     `json:"date"`
	Order       int       `json:"order"`
}

// Detail is a profile together with all of its child collections, as
// returned by the read endpoints.
type Detail struct {
	Profile
	Skills         []Skill         `json:"skills"`
	Experiences    []Experience    `json:"experiences"`
	Educations     []Education     `json:"educations"`
	Certifications []Certification `json:"certifications"`
	Achievements   []Achievement   `json:"achievements"`
}
