package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kozaktomas/print-layout/internal/constants"
	"github.com/kozaktomas/print-layout/internal/gesture"
	"github.com/kozaktomas/print-layout/internal/imageload"
	"github.com/kozaktomas/print-layout/internal/layout"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return false
	}
	return true
}

// errorStatus maps engine errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, layout.ErrNoLayoutAvailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, layout.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, layout.ErrInvalidGrid),
		errors.Is(err, layout.ErrInvalidImage),
		errors.Is(err, layout.ErrUnknownPageSize),
		errors.Is(err, layout.ErrUnknownOrientation),
		errors.Is(err, layout.ErrTemplateNotApplicable),
		errors.Is(err, gesture.ErrUnknownImage),
		errors.Is(err, gesture.ErrUnknownEvent):
		return http.StatusBadRequest
	case errors.Is(err, imageload.ErrStaleBatch):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondEngineError sends err with the status matching its kind.
func respondEngineError(w http.ResponseWriter, err error) {
	respondError(w, errorStatus(err), err.Error())
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
