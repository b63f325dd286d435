package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/careeridream/backend/internal/extract"
	"github.com/careeridream/backend/internal/server/middleware"
)

type denyAllValidator struct{}

func (denyAllValidator) ValidateToken(string) (middleware.UserIDGetter, error) {
	return nil, http.ErrNoCookie
}

// TestRoutesRequireAuth verifies no API route is reachable without a
// valid token. The handlers would panic on the nil services, so a 401 is
// also proof the handler never ran.
func TestRoutesRequireAuth(t *testing.T) {
	s := &Server{}
	handler := s.routes(middleware.Auth(denyAllValidator{}))

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/profiles/me"},
		{"PATCH", "/profiles/me"},
		{"GET", "/profiles/me/onboarding"},
		{"POST", "/profiles/me/onboarding"},
		{"POST", "/profiles/me/resume/parse"},
		{"POST", "/profiles/me/resume/generate"},
		{"POST", "/profiles/me/cover-letter/generate"},
		{"GET", "/profiles/me/skills"},
		{"POST", "/profiles/me/skills/bulk"},
		{"PUT", "/profiles/me/experiences/123"},
		{"DELETE", "/profiles/me/achievements/123"},
		{"GET", "/drafts"},
		{"POST", "/drafts"},
		{"DELETE", "/drafts/123"},
	}

	for _, rt := range routes {
		req := httptest.NewRequest(rt.method, rt.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s = %d, want 401", rt.method, rt.path, rec.Code)
		}
	}
}

func TestUploadMIMEType(t *testing.T) {
	tests := []struct {
		contentType string
		filename    string
		want        string
	}{
		{extract.MIMEPDF, "resume.pdf", extract.MIMEPDF},
		{"application/pdf; charset=binary", "resume.pdf", extract.MIMEPDF},
		{"", "resume.pdf", extract.MIMEPDF},
		{"", "Resume.DOCX", extract.MIMEDocx},
		{"application/octet-stream", "resume.docx", extract.MIMEDocx},
		{"", "resume.txt", ""},
		{"text/plain", "notes.txt", "text/plain"},
	}

	for _, tt := range tests {
		if got := uploadMIMEType(tt.contentType, tt.filename); got != tt.want {
			t.Errorf("uploadMIMEType(%q, %q) = %q, want %q", tt.contentType, tt.filename, got, tt.want)
		}
	}
}
