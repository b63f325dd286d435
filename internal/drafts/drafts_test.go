package drafts

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/careeridream/backend/internal/db"
	"github.com/careeridream/backend/internal/llm"
)

type fakeStore struct {
	created  *db.SavedDraft
	existing *db.SavedDraft
	updated  *db.DraftUpdate
}

func (f *fakeStore) CreateDraft(_ context.Context, d *db.SavedDraft) (*db.SavedDraft, error) {
	f.created = d
	out := *d
	out.ID = uuid.New()
	return &out, nil
}

func (f *fakeStore) ListDrafts(_ context.Context, _ uuid.UUID, _ string) ([]db.SavedDraft, error) {
	return nil, nil
}

func (f *fakeStore) GetDraft(_ context.Context, _, _ uuid.UUID) (*db.SavedDraft, error) {
	if f.existing == nil {
		return nil, db.ErrNotFound
	}
	return f.existing, nil
}

func (f *fakeStore) UpdateDraft(_ context.Context, _, _ uuid.UUID, update *db.DraftUpdate) (*db.SavedDraft, error) {
	f.updated = update
	return &db.SavedDraft{}, nil
}

func (f *fakeStore) DeleteDraft(_ context.Context, _, _ uuid.UUID) error { return nil }

type fakeClient struct {
	response string
	err      error
	calls    int
	user     string
}

func (f *fakeClient) Generate(_ context.Context, _, user string) (string, error) {
	f.calls++
	f.user = user
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newInput() *CreateInput {
	return &CreateInput{
		DraftType:      db.DraftTypeResume,
		JobDescription: "We need a platform engineer at Acme, Inc.",
		Content:        json.RawMessage(`{"headline": "Engineer"}`),
	}
}

func TestResumeFilename(t *testing.T) {
	tests := []struct {
		company string
		want    string
	}{
		{"Acme, Inc.", "acme_inc_resume"},
		{"ACME", "acme_resume"},
		{"  Foo   Bar  ", "foo_bar_resume"},
		{"B-52s & Friends", "b_52s_friends_resume"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ResumeFilename(tt.company); got != tt.want {
			t.Errorf("ResumeFilename(%q) = %q, want %q", tt.company, got, tt.want)
		}
	}
}

func TestCreateEnrichesMissingFields(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{response: `{"job_title": "Platform Engineer", "company": "Acme, Inc.", "summary_line": "Build the platform."}`}
	svc := NewService(store, client)

	in := newInput()
	in.JobTitle = "Staff Engineer" // already present, must survive

	created, err := svc.Create(context.Background(), uuid.New(), in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if client.calls != 1 {
		t.Fatalf("extraction calls = %d, want 1", client.calls)
	}
	if created.JobTitle != "Staff Engineer" {
		t.Errorf("present JobTitle overwritten: %q", created.JobTitle)
	}
	if created.Company != "Acme, Inc." {
		t.Errorf("Company = %q, want 'Acme, Inc.'", created.Company)
	}
	if created.SummaryLine != "Build the platform." {
		t.Errorf("SummaryLine = %q", created.SummaryLine)
	}
	if created.ResumeFilename != "acme_inc_resume" {
		t.Errorf("ResumeFilename = %q, want 'acme_inc_resume'", created.ResumeFilename)
	}
	if created.TemplateStyle != "modern" {
		t.Errorf("TemplateStyle = %q, want default 'modern'", created.TemplateStyle)
	}
}

func TestCreateSkipsEnrichmentWhenComplete(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{response: `{}`}
	svc := NewService(store, client)

	in := newInput()
	in.JobTitle = "Engineer"
	in.Company = "Acme"
	in.SummaryLine = "A line."

	if _, err := svc.Create(context.Background(), uuid.New(), in); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if client.calls != 0 {
		t.Errorf("extraction calls = %d, want 0", client.calls)
	}
}

func TestCreateSurvivesEnrichmentFailure(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{err: &llm.UpstreamError{Status: 500}}
	svc := NewService(store, client)

	created, err := svc.Create(context.Background(), uuid.New(), newInput())
	if err != nil {
		t.Fatalf("Create failed despite enrichment being best-effort: %v", err)
	}
	if created.JobTitle != "" || created.Company != "" {
		t.Errorf("fields filled despite extraction failure: %+v", created)
	}
}

func TestCreateSurvivesUnavailableClient(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{err: llm.ErrUnavailable}
	svc := NewService(store, client)

	if _, err := svc.Create(context.Background(), uuid.New(), newInput()); err != nil {
		t.Fatalf("Create failed with unconfigured extraction client: %v", err)
	}
}

func TestCreateTruncatesSubject(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{response: `{}`}
	svc := NewService(store, client)

	in := newInput()
	long := make([]byte, 5000)
	for i := range long {
		if i%10 == 9 {
			long[i] = ' '
		} else {
			long[i] = 'x'
		}
	}
	in.JobDescription = string(long)

	if _, err := svc.Create(context.Background(), uuid.New(), in); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(client.user) > 2000 {
		t.Errorf("subject length = %d, want <= 2000", len(client.user))
	}
}

func TestCreateCoverLetterGetsNoFilename(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{response: `{"job_title": "Platform Engineer", "company": "Acme, Inc.", "summary_line": "Build the platform."}`}
	svc := NewService(store, client)

	in := newInput()
	in.DraftType = db.DraftTypeCoverLetter

	created, err := svc.Create(context.Background(), uuid.New(), in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Company != "Acme, Inc." {
		t.Fatalf("Company = %q, enrichment should still fill it", created.Company)
	}
	if created.ResumeFilename != "" {
		t.Errorf("cover letter ResumeFilename = %q, want empty", created.ResumeFilename)
	}
}

func TestCreateKeepsCallerFilename(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeClient{response: `{}`})

	in := newInput()
	in.Company = "Acme, Inc."
	in.ResumeFilename = "acme_platform_role"

	created, err := svc.Create(context.Background(), uuid.New(), in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ResumeFilename != "acme_platform_role" {
		t.Errorf("ResumeFilename = %q, want caller-supplied 'acme_platform_role'", created.ResumeFilename)
	}
}

func TestUpdateFollowsCompanyRename(t *testing.T) {
	store := &fakeStore{existing: &db.SavedDraft{DraftType: db.DraftTypeResume}}
	svc := NewService(store, &fakeClient{})

	company := "Initech LLC"
	if _, err := svc.Update(context.Background(), uuid.New(), uuid.New(), &db.DraftUpdate{Company: &company}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if store.updated.ResumeFilename == nil || *store.updated.ResumeFilename != "initech_llc_resume" {
		t.Errorf("ResumeFilename = %v, want 'initech_llc_resume'", store.updated.ResumeFilename)
	}
}

func TestUpdateCoverLetterIgnoresCompanyRename(t *testing.T) {
	store := &fakeStore{existing: &db.SavedDraft{DraftType: db.DraftTypeCoverLetter}}
	svc := NewService(store, &fakeClient{})

	company := "Initech LLC"
	if _, err := svc.Update(context.Background(), uuid.New(), uuid.New(), &db.DraftUpdate{Company: &company}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if store.updated.ResumeFilename != nil {
		t.Errorf("ResumeFilename = %q, want untouched", *store.updated.ResumeFilename)
	}
}
