package server

import (
	"net/http"

	"github.com/careeridream/backend/internal/profile"
)

// handleGetProfile returns the profile with all child collections,
// creating an empty profile on first touch.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUserID(w, r)
	if !ok {
		return
	}

	if _, err := s.db.EnsureProfile(r.Context(), userID); err != nil {
		s.serviceError(w, err)
		return
	}

	detail, err := s.db.GetDetail(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, detail)
}

// handleUpdateProfile applies a partial update to the profile's direct
// fields. Absent fields keep their stored values.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := s.requestProfile(w, r)
	if !ok {
		return
	}

	var update profile.ProfileUpdate
	if !s.decodeJSON(w, r, &update) {
		return
	}
	if err := profile.ValidateProfileUpdate(&update); err != nil {
		s.serviceError(w, err)
		return
	}

	updated, err := s.db.UpdateProfile(r.Context(), p.ID, &update, nil)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}
