package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Draft types accepted by the saved_drafts table.
const (
	DraftTypeResume      = "resume"
	DraftTypeCoverLetter = "cover_letter"
)

// SavedDraft is one stored generation result together with the job
// context it was generated for.
type SavedDraft struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"-"`
	DraftType      string          `json:"draft_type"`
	JobTitle       string          `json:"job_title"`
	Company        string          `json:"company"`
	SummaryLine    string          `json:"summary_line"`
	JobDescription string          `json:"job_description"`
	TemplateStyle  string          `json:"template_style"`
	Content        json.RawMessage `json:"content"`
	ResumeFilename string          `json:"resume_filename"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DraftUpdate is a partial update of a draft's mutable fields. The draft
// type is fixed at creation.
type DraftUpdate struct {
	JobTitle       *string         `json:"job_title" validate:"omitempty,max=180"`
	Company        *string         `json:"company" validate:"omitempty,max=180"`
	SummaryLine    *string         `json:"summary_line" validate:"omitempty,max=240"`
	TemplateStyle  *string         `json:"template_style" validate:"omitempty,max=50"`
	Content        json.RawMessage `json:"content"`
	ResumeFilename *string         `json:"resume_filename" validate:"omitempty,max=200"`
}

const draftColumns = `id, user_id, draft_type, job_title, company, summary_line,
	job_description, template_style, content, resume_filename, created_at, updated_at`

func scanDraft(row pgx.Row) (*SavedDraft, error) {
	var d SavedDraft
	err := row.Scan(&d.ID, &d.UserID, &d.DraftType, &d.JobTitle, &d.Company, &d.SummaryLine,
		&d.JobDescription, &d.TemplateStyle, &d.Content, &d.ResumeFilename,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDraft stores one draft for a user.
func (db *DB) CreateDraft(ctx context.Context, d *SavedDraft) (*SavedDraft, error) {
	created, err := scanDraft(db.pool.QueryRow(ctx,
		`INSERT INTO saved_drafts (user_id, draft_type, job_title, company, summary_line,
			job_description, template_style, content, resume_filename)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+draftColumns,
		d.UserID, d.DraftType, d.JobTitle, d.Company, d.SummaryLine,
		d.JobDescription, d.TemplateStyle, d.Content, d.ResumeFilename,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return created, nil
}

// ListDrafts returns a user's drafts, most recently updated first. An
// empty draftType returns both types.
func (db *DB) ListDrafts(ctx context.Context, userID uuid.UUID, draftType string) ([]SavedDraft, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+draftColumns+` FROM saved_drafts
		 WHERE user_id = $1 AND ($2 = '' OR draft_type = $2)
		 ORDER BY updated_at DESC`,
		userID, draftType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	drafts := []SavedDraft{}
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, *d)
	}
	return drafts, rows.Err()
}

// GetDraft retrieves one draft owned by the user.
func (db *DB) GetDraft(ctx context.Context, userID, id uuid.UUID) (*SavedDraft, error) {
	d, err := scanDraft(db.pool.QueryRow(ctx,
		`SELECT `+draftColumns+` FROM saved_drafts WHERE id = $2 AND user_id = $1`,
		userID, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return d, nil
}

// UpdateDraft applies a partial update to a draft's mutable fields.
func (db *DB) UpdateDraft(ctx context.Context, userID, id uuid.UUID, update *DraftUpdate) (*SavedDraft, error) {
	var content any
	if len(update.Content) > 0 {
		content = update.Content
	}
	d, err := scanDraft(db.pool.QueryRow(ctx,
		`UPDATE saved_drafts SET
			job_title       = COALESCE($3, job_title),
			company         = COALESCE($4, company),
			summary_line    = COALESCE($5, summary_line),
			template_style  = COALESCE($6, template_style),
			content         = COALESCE($7, content),
			resume_filename = COALESCE($8, resume_filename),
			updated_at      = NOW()
		 WHERE id = $2 AND user_id = $1
		 RETURNING `+draftColumns,
		userID, id, update.JobTitle, update.Company, update.SummaryLine,
		update.TemplateStyle, content, update.ResumeFilename,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}
	return d, nil
}

// DeleteDraft removes one draft owned by the user.
func (db *DB) DeleteDraft(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM saved_drafts WHERE id = $2 AND user_id = $1`,
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
