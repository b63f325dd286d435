// Package pipeline turns documents into structured drafts: resume files
// into parsed profile sections, and profiles plus job descriptions into
// tailored resume and cover letter drafts. Every pipeline is a straight
// line: extract text, build the prompt, call the completion API once,
// decode and validate the response.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/careeridream/backend/internal/extract"
	"github.com/careeridream/backend/internal/llm"
	"github.com/careeridream/backend/internal/profile"
	"github.com/careeridream/backend/internal/prompts"
	"github.com/careeridream/backend/internal/schemas"
)

// MaxParseUploadSize bounds resume uploads to the parse endpoint. The
// check runs before any network call so an oversized file costs nothing.
const MaxParseUploadSize = 20 * 1024 * 1024

// DefaultTemplateStyle is used when a generation request names none.
const DefaultTemplateStyle = "modern"

const (
	parseTimeout    = 60 * time.Second
	generateTimeout = 60 * time.Second
)

// Service runs the document pipelines against one completion client.
type Service struct {
	client llm.Client
}

// NewService builds a pipeline service over the given completion client.
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// ParseResume extracts text from an uploaded resume file and asks the
// model to structure it. The result mirrors the aggregate submission
// sections so a reviewed parse can be submitted directly.
func (s *Service) ParseResume(ctx context.Context, data []byte, mimeType string) (*ParsedResume, error) {
	if int64(len(data)) > MaxParseUploadSize {
		return nil, &extract.TooLargeError{Size: int64(len(data)), Limit: MaxParseUploadSize}
	}

	text, err := extract.Text(data, mimeType, MaxParseUploadSize)
	if err != nil {
		return nil, err
	}

	system := prompts.MustGet("extraction.json", "parse-resume")
	user := prompts.Truncate(text, prompts.ResumeTextBudget)

	ctx, cancel := context.WithTimeout(ctx, parseTimeout)
	defer cancel()

	raw, err := s.client.Generate(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var parsed ParsedResume
	if err := decodeChecked(raw, schemas.ParsedResume, &parsed); err != nil {
		return nil, err
	}
	normalizeParsed(&parsed)
	return &parsed, nil
}

// GenerateResume drafts a resume tailored to the job description from
// the stored profile.
func (s *Service) GenerateResume(ctx context.Context, detail *profile.Detail, jobDescription, templateStyle string) (*ResumeDraft, error) {
	system := prompts.Format(prompts.MustGet("generation.json", "generate-resume"), map[string]string{
		"TemplateStyle": styleOrDefault(templateStyle),
	})

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	raw, err := s.client.Generate(ctx, system, generationSubject(detail, jobDescription))
	if err != nil {
		return nil, err
	}

	var draft ResumeDraft
	if err := decodeChecked(raw, schemas.ResumeDraft, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// GenerateCoverLetter drafts a cover letter tailored to the job
// description from the stored profile.
func (s *Service) GenerateCoverLetter(ctx context.Context, detail *profile.Detail, jobDescription, templateStyle string) (*CoverLetterDraft, error) {
	system := prompts.Format(prompts.MustGet("generation.json", "generate-cover-letter"), map[string]string{
		"TemplateStyle": styleOrDefault(templateStyle),
	})

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	raw, err := s.client.Generate(ctx, system, generationSubject(detail, jobDescription))
	if err != nil {
		return nil, err
	}

	var draft CoverLetterDraft
	if err := decodeChecked(raw, schemas.CoverLetterDraft, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// decodeChecked strips the fence, validates the document against the
// named schema, then decodes it. Schema violations surface as decode
// errors carrying the raw model output.
func decodeChecked(raw, schemaName string, v any) error {
	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemaName, []byte(cleaned)); err != nil {
		return &llm.DecodeError{RawOutput: raw, Cause: err}
	}
	return llm.Decode(raw, v)
}

func styleOrDefault(style string) string {
	style = strings.TrimSpace(style)
	if style == "" {
		return DefaultTemplateStyle
	}
	return style
}

// generationSubject renders the stored profile and the truncated job
// description into the user payload for generation prompts.
func generationSubject(detail *profile.Detail, jobDescription string) string {
	var sb strings.Builder

	sb.WriteString("CANDIDATE PROFILE\n")
	writeField(&sb, "Headline", detail.Headline)
	writeField(&sb, "Summary", detail.Summary)
	writeField(&sb, "Location", detail.Location)

	if len(detail.Skills) > 0 {
		names := make([]string, 0, len(detail.Skills))
		for _, s := range detail.Skills {
			names = append(names, s.Name)
		}
		writeField(&sb, "Skills", strings.Join(names, ", "))
	}

	for _, e := range detail.Experiences {
		fmt.Fprintf(&sb, "Experience: %s at %s (%s)\n", e.Title, e.Company, dateRange(e.StartDate, e.EndDate, e.IsCurrent))
		if e.Description != "" {
			sb.WriteString(e.Description + "\n")
		}
	}
	for _, e := range detail.Educations {
		fmt.Fprintf(&sb, "Education: %s, %s %s\n", e.School, e.Degree, e.FieldOfStudy)
	}
	for _, c := range detail.Certifications {
		fmt.Fprintf(&sb, "Certification: %s (%s)\n", c.Name, c.Issuer)
	}
	for _, a := range detail.Achievements {
		fmt.Fprintf(&sb, "Achievement: %s\n", a.Title)
	}

	sb.WriteString("\nJOB DESCRIPTION\n")
	sb.WriteString(prompts.Truncate(jobDescription, prompts.JobDescriptionBudget))

	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(sb, "%s: %s\n", label, value)
	}
}

func dateRange(start, end *profile.Date, current bool) string {
	from := "?"
	if start != nil {
		from = start.String()
	}
	to := "?"
	switch {
	case current:
		to = "present"
	case end != nil:
		to = end.String()
	}
	return from + " to " + to
}

// normalizeParsed canonicalizes every parsed section with the same rules
// as a direct submission, dropping items the model left without their
// required field.
func normalizeParsed(p *ParsedResume) {
	p.Profile.Headline = strings.TrimSpace(p.Profile.Headline)
	p.Profile.Summary = strings.TrimSpace(p.Profile.Summary)
	p.Profile.Location = strings.TrimSpace(p.Profile.Location)
	p.Profile.Phone = strings.TrimSpace(p.Profile.Phone)
	p.Profile.Email = strings.TrimSpace(p.Profile.Email)

	skills := p.Skills[:0]
	for i := range p.Skills {
		p.Skills[i].Normalize()
		if p.Skills[i].Name != "" {
			skills = append(skills, p.Skills[i])
		}
	}
	p.Skills = skills

	experiences := p.Experiences[:0]
	for i := range p.Experiences {
		p.Experiences[i].Normalize()
		if p.Experiences[i].Company != "" && p.Experiences[i].Title != "" {
			experiences = append(experiences, p.Experiences[i])
		}
	}
	p.Experiences = experiences

	educations := p.Educations[:0]
	for i := range p.Educations {
		p.Educations[i].Normalize()
		if p.Educations[i].School != "" {
			educations = append(educations, p.Educations[i])
		}
	}
	p.Educations = educations

	certifications := p.Certifications[:0]
	for i := range p.Certifications {
		p.Certifications[i].Normalize()
		if p.Certifications[i].Name != "" {
			certifications = append(certifications, p.Certifications[i])
		}
	}
	p.Certifications = certifications

	achievements := p.Achievements[:0]
	for i := range p.Achievements {
		p.Achievements[i].Normalize()
		if p.Achievements[i].Title != "" {
			achievements = append(achievements, p.Achievements[i])
		}
	}
	p.Achievements = achievements
}
