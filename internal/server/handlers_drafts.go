package server

import (
	"net/http"

	"github.com/careeridream/backend/internal/db"
	"github.com/careeridream/backend/internal/drafts"
	"github.com/careeridream/backend/internal/profile"
)

// handleListDrafts lists the user's drafts, optionally filtered by the
// "type" query parameter.
func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUserID(w, r)
	if !ok {
		return
	}

	draftType := r.URL.Query().Get("type")
	if draftType != "" && draftType != db.DraftTypeResume && draftType != db.DraftTypeCoverLetter {
		s.errorResponse(w, http.StatusBadRequest, "type must be resume or cover_letter")
		return
	}

	list, err := s.drafts.List(r.Context(), userID, draftType)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, list)
}

// handleCreateDraft saves a new draft, enriching its job metadata.
func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUserID(w, r)
	if !ok {
		return
	}

	var in drafts.CreateInput
	if !s.decodeJSON(w, r, &in) {
		return
	}
	if err := profile.ValidateStruct("draft", &in); err != nil {
		s.serviceError(w, err)
		return
	}

	created, err := s.drafts.Create(r.Context(), userID, &in)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleGetDraft returns one draft.
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUserID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}

	draft, err := s.drafts.Get(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, draft)
}

// handleUpdateDraft applies a partial update to a draft.
func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUserID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}

	var update db.DraftUpdate
	if !s.decodeJSON(w, r, &update) {
		return
	}
	if err := profile.ValidateStruct("draft", &update); err != nil {
		s.serviceError(w, err)
		return
	}

	updated, err := s.drafts.Update(r.Context(), userID, id, &update)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteDraft removes one draft.
func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUserID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}

	if err := s.drafts.Delete(r.Context(), userID, id); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
