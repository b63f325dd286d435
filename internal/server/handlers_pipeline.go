package server

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/careeridream/backend/internal/extract"
	"github.com/careeridream/backend/internal/pipeline"
)

// handleParseResume extracts structured sections from an uploaded resume
// file via the parsing pipeline.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requestUserID(w, r); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, pipeline.MaxParseUploadSize+maxJSONBody)
	if err := r.ParseMultipartForm(pipeline.MaxParseUploadSize + maxJSONBody); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("resume_file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume_file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read resume file")
		return
	}

	parsed, err := s.pipeline.ParseResume(r.Context(), data, uploadMIMEType(header.Header.Get("Content-Type"), header.Filename))
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, parsed)
}

// uploadMIMEType resolves the file's MIME type from the part header,
// falling back to the filename extension. Unknown stays unknown; the
// extractor rejects it with the type in the error.
func uploadMIMEType(contentType, filename string) string {
	if contentType != "" && contentType != "application/octet-stream" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			return mt
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extract.MIMEPDF
	case ".docx":
		return extract.MIMEDocx
	}
	return contentType
}

// generateRequest is the body of both generation endpoints.
type generateRequest struct {
	JobDescription string `json:"job_description"`
	TemplateStyle  string `json:"template_style"`
}

func (s *Server) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (*generateRequest, bool) {
	var req generateRequest
	if !s.decodeJSON(w, r, &req) {
		return nil, false
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		s.errorResponse(w, http.StatusBadRequest, "job_description is required")
		return nil, false
	}
	return &req, true
}

// handleGenerateResume drafts a resume tailored to a job description
// from the stored profile.
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	p, ok := s.requestProfile(w, r)
	if !ok {
		return
	}
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	detail, err := s.db.GetDetail(r.Context(), p.UserID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	draft, err := s.pipeline.GenerateResume(r.Context(), detail, req.JobDescription, req.TemplateStyle)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, draft)
}

// handleGenerateCoverLetter drafts a cover letter tailored to a job
// description from the stored profile.
func (s *Server) handleGenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	p, ok := s.requestProfile(w, r)
	if !ok {
		return
	}
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	detail, err := s.db.GetDetail(r.Context(), p.UserID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	draft, err := s.pipeline.GenerateCoverLetter(r.Context(), detail, req.JobDescription, req.TemplateStyle)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, draft)
}
