package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"chatd/internal/llm"
	"chatd/internal/session"
	"chatd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// statusForError maps well-known session errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case session.IsModelNotFound(err):
		return http.StatusNotFound
	case session.IsTooBusy(err):
		return http.StatusTooManyRequests
	case session.IsFormat(err), session.IsTokenize(err):
		return http.StatusUnprocessableEntity
	case session.IsNotResident(err):
		return http.StatusConflict
	case errors.Is(err, llm.ErrNotBuilt):
		return http.StatusServiceUnavailable
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}
