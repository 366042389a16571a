package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kozaktomas/print-layout/internal/gesture"
	"github.com/kozaktomas/print-layout/internal/imageload"
	"github.com/kozaktomas/print-layout/internal/layout"
)

func TestRespondJSON_SetsStatusAndContentType(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"OK", http.StatusOK},
		{"Created", http.StatusCreated},
		{"BadRequest", http.StatusBadRequest},
		{"NotFound", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondJSON(recorder, tc.statusCode, map[string]int{"n": 1})

			if recorder.Code != tc.statusCode {
				t.Errorf("expected status %d, got %d", tc.statusCode, recorder.Code)
			}
			if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
			}
		})
	}
}

func TestRespondJSON_NilData(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondJSON(recorder, http.StatusOK, nil)

	if recorder.Body.Len() != 0 {
		t.Errorf("expected empty body, got '%s'", recorder.Body.String())
	}
}

func TestRespondError_ContainsErrorKey(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondError(recorder, http.StatusBadRequest, "something went wrong")

	var result map[string]string
	decodeBody(t, recorder, &result)
	if result["error"] != "something went wrong" {
		t.Errorf("expected error message, got '%s'", result["error"])
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrapped: %w", layout.ErrNoLayoutAvailable), http.StatusUnprocessableEntity},
		{layout.ErrTemplateNotFound, http.StatusNotFound},
		{layout.ErrInvalidGrid, http.StatusBadRequest},
		{layout.ErrInvalidImage, http.StatusBadRequest},
		{layout.ErrUnknownPageSize, http.StatusBadRequest},
		{layout.ErrUnknownOrientation, http.StatusBadRequest},
		{layout.ErrTemplateNotApplicable, http.StatusBadRequest},
		{gesture.ErrUnknownImage, http.StatusBadRequest},
		{gesture.ErrUnknownEvent, http.StatusBadRequest},
		{imageload.ErrStaleBatch, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := errorStatus(tt.err); got != tt.want {
			t.Errorf("errorStatus(%v): expected %d, got %d", tt.err, tt.want, got)
		}
	}
}

func TestDecodeJSON_InvalidBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
	recorder := httptest.NewRecorder()

	var v map[string]any
	if decodeJSON(recorder, req, &v) {
		t.Fatal("expected decode to fail")
	}
	assertStatus(t, recorder, http.StatusBadRequest)
}

func TestSanitizeForLog(t *testing.T) {
	if got := sanitizeForLog("a\nb\rc"); got != "abc" {
		t.Errorf("expected 'abc', got '%s'", got)
	}
}

func TestHealthCheck_ReturnsStatusOk(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	recorder := httptest.NewRecorder()

	HealthCheck(recorder, req)

	assertStatus(t, recorder, http.StatusOK)
	var result map[string]string
	decodeBody(t, recorder, &result)
	if result["status"] != "ok" {
		t.Errorf("expected status 'ok', got '%s'", result["status"])
	}
}
