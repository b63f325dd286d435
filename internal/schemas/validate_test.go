package schemas

import (
	"errors"
	"testing"
)

func TestValidateParsedResume(t *testing.T) {
	valid := []byte(`{
		"profile": {"headline": "Engineer", "summary": "", "location": "", "phone": "", "email": ""},
		"skills": [{"name": "Go", "proficiency": "expert", "order": 0}],
		"experiences": [{"company": "Acme", "title": "Engineer", "start_date": "2020-01-01", "end_date": null, "is_current": true}],
		"educations": [],
		"certifications": [],
		"achievements": []
	}`)
	if err := Validate(ParsedResume, valid); err != nil {
		t.Fatalf("Validate rejected valid document: %v", err)
	}
}

func TestValidateMissingRequiredKey(t *testing.T) {
	missing := []byte(`{
		"profile": {},
		"skills": [],
		"experiences": [],
		"educations": [],
		"certifications": []
	}`)
	err := Validate(ParsedResume, missing)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Validate = %v, want ValidationError", err)
	}
	if len(ve.Errors) == 0 {
		t.Fatal("ValidationError carries no field errors")
	}
}

func TestValidateMalformedJSON(t *testing.T) {
	var ve *ValidationError
	if err := Validate(ResumeDraft, []byte("not json")); !errors.As(err, &ve) {
		t.Fatalf("Validate = %v, want ValidationError", err)
	}
}

func TestValidateResumeDraftFitScoreBounds(t *testing.T) {
	doc := []byte(`{
		"headline": "Engineer", "summary": "Hi.",
		"skills": [], "experiences": [],
		"fit_score": 120
	}`)
	var ve *ValidationError
	if err := Validate(ResumeDraft, doc); !errors.As(err, &ve) {
		t.Fatalf("Validate = %v, want ValidationError for fit_score 120", err)
	}
}

func TestValidateCoverLetterDraft(t *testing.T) {
	valid := []byte(`{
		"subject": "Application for Platform Engineer",
		"greeting": "Dear Hiring Manager,",
		"body_paragraphs": ["I am writing to apply."],
		"closing": "Sincerely,",
		"signature": "A. Candidate"
	}`)
	if err := Validate(CoverLetterDraft, valid); err != nil {
		t.Fatalf("Validate rejected valid document: %v", err)
	}

	var ve *ValidationError
	if err := Validate(CoverLetterDraft, []byte(`{"subject": "x"}`)); !errors.As(err, &ve) {
		t.Fatalf("Validate = %v, want ValidationError", err)
	}
}

func TestValidateUnknownSchema(t *testing.T) {
	if err := Validate("nonexistent", []byte(`{}`)); err == nil {
		t.Fatal("Validate accepted unknown schema name")
	}
}
