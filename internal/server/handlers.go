package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/careeridream/backend/internal/profile"
	"github.com/careeridream/backend/internal/server/middleware"
)

// maxJSONBody bounds plain JSON request bodies.
const maxJSONBody = 1 << 20

// requestUserID resolves the authenticated user, writing a 401 on
// failure. The middleware makes failure unreachable on wired routes.
func (s *Server) requestUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// requestProfile resolves the authenticated user's profile, writing a
// 404 when none exists.
func (s *Server) requestProfile(w http.ResponseWriter, r *http.Request) (*profile.Profile, bool) {
	userID, ok := s.requestUserID(w, r)
	if !ok {
		return nil, false
	}

	p, err := s.db.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		s.serviceError(w, err)
		return nil, false
	}
	if p == nil {
		s.errorResponse(w, http.StatusNotFound, "profile not found")
		return nil, false
	}
	return p, true
}

// decodeJSON reads a bounded JSON body into v, rejecting unknown
// payloads that are not JSON at all.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// pathUUID parses the {id} path segment.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
