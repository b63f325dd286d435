// Package drafts manages saved generation results and enriches new
// drafts with job metadata extracted from the job description.
package drafts

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careeridream/backend/internal/db"
	"github.com/careeridream/backend/internal/llm"
	"github.com/careeridream/backend/internal/prompts"
)

const enrichTimeout = 30 * time.Second

// CreateInput is the request body for saving a draft.
type CreateInput struct {
	DraftType      string          `json:"draft_type" validate:"required,oneof=resume cover_letter"`
	JobTitle       string          `json:"job_title" validate:"omitempty,max=180"`
	Company        string          `json:"company" validate:"omitempty,max=180"`
	SummaryLine    string          `json:"summary_line" validate:"omitempty,max=240"`
	JobDescription string          `json:"job_description" validate:"required"`
	TemplateStyle  string          `json:"template_style" validate:"omitempty,max=50"`
	ResumeFilename string          `json:"resume_filename" validate:"omitempty,max=255"`
	Content        json.RawMessage `json:"content" validate:"required"`
}

// jobMetadata is the metadata-extraction response shape.
type jobMetadata struct {
	JobTitle    string `json:"job_title"`
	Company     string `json:"company"`
	SummaryLine string `json:"summary_line"`
}

// Store is the database surface the drafts service needs.
type Store interface {
	CreateDraft(ctx context.Context, d *db.SavedDraft) (*db.SavedDraft, error)
	ListDrafts(ctx context.Context, userID uuid.UUID, draftType string) ([]db.SavedDraft, error)
	GetDraft(ctx context.Context, userID, id uuid.UUID) (*db.SavedDraft, error)
	UpdateDraft(ctx context.Context, userID, id uuid.UUID, update *db.DraftUpdate) (*db.SavedDraft, error)
	DeleteDraft(ctx context.Context, userID, id uuid.UUID) error
}

// Service stores drafts and fills in missing job metadata on create.
type Service struct {
	store  Store
	client llm.Client
}

// NewService builds a drafts service. client may be a never-configured
// completion client; enrichment then silently skips.
func NewService(store Store, client llm.Client) *Service {
	return &Service{store: store, client: client}
}

// Create saves a new draft. When the job description is present and any
// of job title, company or summary line is missing, one metadata
// extraction call fills only the missing fields. Extraction failures are
// logged and never block the save. Resume drafts without a caller-chosen
// filename get one derived from the company.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in *CreateInput) (*db.SavedDraft, error) {
	draft := &db.SavedDraft{
		UserID:         userID,
		DraftType:      in.DraftType,
		JobTitle:       strings.TrimSpace(in.JobTitle),
		Company:        strings.TrimSpace(in.Company),
		SummaryLine:    strings.TrimSpace(in.SummaryLine),
		JobDescription: in.JobDescription,
		TemplateStyle:  strings.TrimSpace(in.TemplateStyle),
		ResumeFilename: strings.TrimSpace(in.ResumeFilename),
		Content:        in.Content,
	}
	if draft.TemplateStyle == "" {
		draft.TemplateStyle = "modern"
	}

	s.enrich(ctx, draft)
	if draft.DraftType == db.DraftTypeResume && draft.ResumeFilename == "" {
		draft.ResumeFilename = ResumeFilename(draft.Company)
	}

	return s.store.CreateDraft(ctx, draft)
}

// List returns the user's drafts, optionally filtered by type.
func (s *Service) List(ctx context.Context, userID uuid.UUID, draftType string) ([]db.SavedDraft, error) {
	return s.store.ListDrafts(ctx, userID, draftType)
}

// Get returns one draft owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*db.SavedDraft, error) {
	return s.store.GetDraft(ctx, userID, id)
}

// Update applies a partial update. When a resume draft's company changes
// and the caller did not pick a filename, the derived filename follows
// the new company.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, update *db.DraftUpdate) (*db.SavedDraft, error) {
	if update.Company != nil && update.ResumeFilename == nil {
		existing, err := s.store.GetDraft(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if existing.DraftType == db.DraftTypeResume {
			name := ResumeFilename(*update.Company)
			update.ResumeFilename = &name
		}
	}
	return s.store.UpdateDraft(ctx, userID, id, update)
}

// Delete removes one draft owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.store.DeleteDraft(ctx, userID, id)
}

// enrich fills the draft's missing metadata fields from one extraction
// call. Present fields are never overwritten.
func (s *Service) enrich(ctx context.Context, draft *db.SavedDraft) {
	if strings.TrimSpace(draft.JobDescription) == "" {
		return
	}
	if draft.JobTitle != "" && draft.Company != "" && draft.SummaryLine != "" {
		return
	}

	system := prompts.MustGet("extraction.json", "extract-job-metadata")
	user := prompts.Truncate(draft.JobDescription, prompts.MetadataBudget)

	ctx, cancel := context.WithTimeout(ctx, enrichTimeout)
	defer cancel()

	raw, err := s.client.Generate(ctx, system, user)
	if err != nil {
		log.Printf("Draft metadata extraction failed: %v", err)
		return
	}

	var meta jobMetadata
	if err := llm.Decode(raw, &meta); err != nil {
		log.Printf("Draft metadata extraction returned bad JSON: %v", err)
		return
	}

	if draft.JobTitle == "" {
		draft.JobTitle = strings.TrimSpace(meta.JobTitle)
	}
	if draft.Company == "" {
		draft.Company = strings.TrimSpace(meta.Company)
	}
	if draft.SummaryLine == "" {
		draft.SummaryLine = strings.TrimSpace(meta.SummaryLine)
	}
}

// ResumeFilename derives a download filename from a company name:
// lower-cased, runs of non-alphanumerics collapsed to single underscores,
// with "_resume" appended. An unresolvable company yields an empty name.
func ResumeFilename(company string) string {
	slug := slugify(company)
	if slug == "" {
		return ""
	}
	return slug + "_resume"
}

func slugify(s string) string {
	var sb strings.Builder
	lastUnderscore := true // suppress a leading underscore
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimRight(sb.String(), "_")
}
