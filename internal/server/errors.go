package server

import (
	"errors"
	"net/http"

	"github.com/careeridream/backend/internal/db"
	"github.com/careeridream/backend/internal/extract"
	"github.com/careeridream/backend/internal/llm"
	"github.com/careeridream/backend/internal/onboarding"
	"github.com/careeridream/backend/internal/profile"
	"github.com/careeridream/backend/internal/schemas"
)

// HTTPStatus maps a service error to its HTTP status code.
//
// The distinction between 501 and 502 is deliberate: a missing API key
// is a deployment configuration problem, while transport, upstream and
// decode failures are bad-gateway conditions at runtime.
func HTTPStatus(err error) int {
	var (
		validationErr  *profile.ValidationError
		schemaErr      *schemas.ValidationError
		tooLargeErr    *extract.TooLargeError
		unsupportedErr *extract.UnsupportedTypeError
		extractionErr  *extract.ExtractionError
		transportErr   *llm.TransportError
		upstreamErr    *llm.UpstreamError
		decodeErr      *llm.DecodeError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &schemaErr),
		errors.As(err, &tooLargeErr), errors.As(err, &unsupportedErr):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound), errors.Is(err, onboarding.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, llm.ErrUnavailable):
		return http.StatusNotImplemented
	case errors.As(err, &transportErr), errors.As(err, &upstreamErr), errors.As(err, &decodeErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage picks the client-visible message for an error. Internal
// errors are not leaked.
func errorMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

// serviceError writes the mapped status and message for an error.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	status := s.logIfInternal(err)
	s.errorResponse(w, status, errorMessage(err))
}
