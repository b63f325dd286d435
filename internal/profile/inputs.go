package profile

import "strings"

// ProfileUpdate is a partial update of the profile's direct fields. Nil
// pointers leave the stored value untouched.
type ProfileUpdate struct {
	Headline *string `json:"headline" validate:"omitempty,max=180"`
	Summary  *string `json:"summary"`
	Location *string `json:"location" validate:"omitempty,max=180"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
}

// Normalize trims whitespace on the fields that are present.
func (p *ProfileUpdate) Normalize() {
	trimPtr(p.Headline)
	trimPtr(p.Summary)
	trimPtr(p.Location)
	trimPtr(p.Phone)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// SkillInput is the field contract for one skill row.
type SkillInput struct {
	Name        string `json:"name" validate:"required,max=120"`
	Proficiency string `json:"proficiency" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	Order       int    `json:"order" validate:"gte=0"`
}

// Normalize trims the name and canonicalizes the proficiency enum.
func (s *SkillInput) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Proficiency = NormalizeProficiency(s.Proficiency)
}

// ExperienceInput is the field contract for one experience row.
type ExperienceInput struct {
	Company     string `json:"company" validate:"required,max=180"`
	Title       string `json:"title" validate:"required,max=180"`
	Location    string `json:"location" validate:"omitempty,max=180"`
	StartDate   *Date  `json:"start_date"`
	EndDate     *Date  `json:"end_date"`
	IsCurrent   bool   `json:"is_current"`
	Description string `json:"description"`
	Order       int    `json:"order" validate:"gte=0"`
}

// Normalize trims text fields and clears a zero-valued end date so an
// ongoing role stores NULL rather than the epoch.
func (e *ExperienceInput) Normalize() {
	e.Company = strings.TrimSpace(e.Company)
	e.Title = strings.TrimSpace(e.Title)
	e.Location = strings.TrimSpace(e.Location)
	if e.StartDate != nil && e.StartDate.IsZero() {
		e.StartDate = nil
	}
	if e.EndDate != nil && e.EndDate.IsZero() {
		e.EndDate = nil
	}
	if e.IsCurrent {
		e.EndDate = nil
	}
}

// EducationInput is the field contract for one education row.
type EducationInput struct {
	School       string `json:"school" validate:"required,max=180"`
	Degree       string `json:"degree" validate:"omitempty,max=180"`
	FieldOfStudy string `json:"field_of_study" validate:"omitempty,max=180"`
	StartDate    *Date  `json:"start_date"`
	EndDate      *Date  `json:"end_date"`
	Description  string `json:"description"`
	Order        int    `json:"order" validate:"gte=0"`
}

// Normalize trims text fields and drops zero-valued dates.
func (e *EducationInput) Normalize() {
	e.School = strings.TrimSpace(e.School)
	e.Degree = strings.TrimSpace(e.Degree)
	e.FieldOfStudy = strings.TrimSpace(e.FieldOfStudy)
	if e.StartDate != nil && e.StartDate.IsZero() {
		e.StartDate = nil
	}
	if e.EndDate != nil && e.EndDate.IsZero() {
		e.EndDate = nil
	}
}

// CertificationInput is the field contract for one certification row.
type CertificationInput struct {
	Name           string `json:"name" validate:"required,max=180"`
	Issuer         string `json:"issuer" validate:"omitempty,max=180"`
	IssueDate      *Date  `json:"issue_date"`
	ExpirationDate *Date  `json:"expiration_date"`
	CredentialURL  string `json:"credential_url" validate:"omitempty,url,max=200"`
	Order          int    `json:"order" validate:"gte=0"`
}

// Normalize trims text fields and drops zero-valued dates.
func (c *CertificationInput) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Issuer = strings.TrimSpace(c.Issuer)
	c.CredentialURL = strings.TrimSpace(c.CredentialURL)
	if c.IssueDate != nil && c.IssueDate.IsZero() {
		c.IssueDate = nil
	}
	if c.ExpirationDate != nil && c.ExpirationDate.IsZero() {
		c.ExpirationDate = nil
	}
}

// AchievementInput is the field contract for one achievement row.
type AchievementInput struct {
	Title       string `json:"title" validate:"required,max=180"`
	Description string `json:"description"`
	Date        *Date  `json:"date"`
	Order       int    `json:"order" validate:"gte=0"`
}

// Normalize trims the title and drops a zero-valued date.
func (a *AchievementInput) Normalize() {
	a.Title = strings.TrimSpace(a.Title)
	if a.Date != nil && a.Date.IsZero() {
		a.Date = nil
	}
}
