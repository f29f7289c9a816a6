package http

import (
	"errors"
	"net/http"

	"driving-quiz-service/internal/domain"
)

type errorPayload struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// classify maps a service error onto an HTTP status and a stable client-facing code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, domain.ErrUnknownCategory):
		return http.StatusBadRequest, "unknown_category"
	case errors.Is(err, domain.ErrOptionNotFound):
		return http.StatusBadRequest, "option_not_found"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email_taken"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, domain.ErrSessionNotCompleted):
		return http.StatusConflict, "session_not_completed"
	case errors.Is(err, domain.ErrEmptyBank):
		return http.StatusServiceUnavailable, "empty_bank"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
