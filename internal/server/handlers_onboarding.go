package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/careeridream/backend/internal/onboarding"
	"github.com/careeridream/backend/internal/profile"
)

// maxOnboardingBody bounds the whole multipart submission: the JSON
// sections plus a resume file within its own limit.
const maxOnboardingBody = profile.MaxResumeSize + maxJSONBody

// handleOnboardingStatus reports whether the user still needs onboarding.
func (s *Server) handleOnboardingStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUserID(w, r)
	if !ok {
		return
	}

	status, err := s.onboarding.GetStatus(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, status)
}

// handleOnboardingSubmit applies an aggregate submission. The body is
// either plain JSON, or multipart form data with the sections under a
// "payload" field and the file under "resume_file".
func (s *Server) handleOnboardingSubmit(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUserID(w, r)
	if !ok {
		return
	}

	var (
		sub    onboarding.Submission
		resume *onboarding.ResumeUpload
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxOnboardingBody)
		if err := r.ParseMultipartForm(maxOnboardingBody); err != nil {
			s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart body: %v", err))
			return
		}

		if payload := r.FormValue("payload"); payload != "" {
			if err := json.Unmarshal([]byte(payload), &sub); err != nil {
				s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid payload field: %v", err))
				return
			}
		}

		file, header, err := r.FormFile("resume_file")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				s.errorResponse(w, http.StatusBadRequest, "failed to read resume file")
				return
			}
			resume = &onboarding.ResumeUpload{Filename: header.Filename, Data: data}
		} else if err != http.ErrMissingFile {
			s.errorResponse(w, http.StatusBadRequest, "invalid resume file")
			return
		}
	} else {
		if !s.decodeJSON(w, r, &sub) {
			return
		}
	}

	result, err := s.onboarding.Submit(r.Context(), userID, &sub, resume)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}
