package pipeline

import "github.com/careeridream/backend/internal/profile"

// ParsedProfile holds the direct profile fields extracted from a resume.
type ParsedProfile struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// ParsedResume is the structured result of resume parsing. Its sections
// reuse the submission input types so a parse result can be reviewed and
// submitted as-is.
type ParsedResume struct {
	Profile        ParsedProfile                `json:"profile"`
	Skills         []profile.SkillInput         `json:"skills"`
	Experiences    []profile.ExperienceInput    `json:"experiences"`
	Educations     []profile.EducationInput     `json:"educations"`
	Certifications []profile.CertificationInput `json:"certifications"`
	Achievements   []profile.AchievementInput   `json:"achievements"`
}

// DraftExperience is one tailored experience entry in a generated resume.
type DraftExperience struct {
	Company   string   `json:"company"`
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	StartDate string   `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	IsCurrent bool     `json:"is_current"`
	Bullets   []string `json:"bullets"`
}

// DraftEducation is one education entry in a generated resume.
type DraftEducation struct {
	School       string  `json:"school"`
	Degree       string  `json:"degree"`
	FieldOfStudy string  `json:"field_of_study"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
}

// ResumeDraft is a generated resume tailored to one job description,
// with the model's own fit assessment attached.
type ResumeDraft struct {
	Headline       string            `json:"headline"`
	Summary        string            `json:"summary"`
	Skills         []string          `json:"skills"`
	Experiences    []DraftExperience `json:"experiences"`
	Education      []DraftEducation  `json:"education"`
	Certifications []string          `json:"certifications"`
	Achievements   []string          `json:"achievements"`
	FitScore       float64           `json:"fit_score"`
	Strengths      []string          `json:"strengths"`
	Weaknesses     []string          `json:"weaknesses"`
}

// CoverLetterDraft is a generated cover letter tailored to one job
// description.
type CoverLetterDraft struct {
	Subject        string   `json:"subject"`
	Greeting       string   `json:"greeting"`
	BodyParagraphs []string `json:"body_paragraphs"`
	Closing        string   `json:"closing"`
	Signature      string   `json:"signature"`
}
