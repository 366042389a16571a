package handlers

import (
	"fmt"
	"log"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/print-layout/internal/config"
	"github.com/kozaktomas/print-layout/internal/constants"
	"github.com/kozaktomas/print-layout/internal/gesture"
	"github.com/kozaktomas/print-layout/internal/layout"
	"github.com/kozaktomas/print-layout/internal/session"
)

// SessionsHandler manages collage editing sessions. Each session owns a
// gesture model holding the manual transforms of its images.
type SessionsHandler struct {
	config  *config.Config
	catalog *layout.Catalog
	store   *session.MemoryStore[*session.Collage]
}

// NewSessionsHandler creates a new sessions handler
func NewSessionsHandler(cfg *config.Config, catalog *layout.Catalog, store *session.MemoryStore[*session.Collage]) *SessionsHandler {
	return &SessionsHandler{config: cfg, catalog: catalog, store: store}
}

// CreateSessionRequest starts a collage session.
type CreateSessionRequest struct {
	TemplateID string   `json:"template_id"`
	ImageIDs   []string `json:"image_ids"`
}

// EventsRequest carries gesture events applied in order.
type EventsRequest struct {
	Events []gesture.Event `json:"events"`
}

// EventsResponse reports the result of applying events.
type EventsResponse struct {
	Changed []string         `json:"changed"`
	Session session.Snapshot `json:"session"`
}

// SetTemplateRequest selects a different template.
type SetTemplateRequest struct {
	TemplateID string `json:"template_id"`
}

// SetTemplateResponse reports whether transforms were reset.
type SetTemplateResponse struct {
	Reset   bool             `json:"reset"`
	Session session.Snapshot `json:"session"`
}

// resolveTemplate returns the id of the template a session of n images uses.
func (h *SessionsHandler) resolveTemplate(idOrName string, n int) (string, error) {
	tmpl, err := h.catalog.Choose(idOrName, n)
	if err != nil {
		return "", err
	}
	return tmpl.ID, nil
}

// Create starts a new session with default transforms.
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.ImageIDs) == 0 {
		respondError(w, http.StatusBadRequest, "image_ids is required")
		return
	}
	if len(req.ImageIDs) > constants.MaxImagesPerRequest {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("at most %d images per session", constants.MaxImagesPerRequest))
		return
	}
	if hasDuplicates(req.ImageIDs) {
		respondError(w, http.StatusBadRequest, "image_ids must be unique")
		return
	}

	templateID, err := h.resolveTemplate(req.TemplateID, len(req.ImageIDs))
	if err != nil {
		respondEngineError(w, err)
		return
	}

	id := h.store.NewID()
	c := session.NewCollage(id, h.config.Gesture.Model(), templateID, req.ImageIDs)
	if err := h.store.Put(r.Context(), id, c); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store session")
		return
	}
	log.Printf("Collage session %s created with %d images (template %s)", id, len(req.ImageIDs), sanitizeForLog(templateID))

	respondJSON(w, http.StatusCreated, c.Snapshot())
}

// lookup fetches the session named in the URL or writes a 404.
func (h *SessionsHandler) lookup(w http.ResponseWriter, r *http.Request) *session.Collage {
	id := chi.URLParam(r, "id")
	c, ok, err := h.store.Get(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load session")
		return nil
	}
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return nil
	}
	return c
}

// Get returns the current session state.
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	c := h.lookup(w, r)
	if c == nil {
		return
	}
	respondJSON(w, http.StatusOK, c.Snapshot())
}

// Events applies gesture events to the session's transforms.
func (h *SessionsHandler) Events(w http.ResponseWriter, r *http.Request) {
	c := h.lookup(w, r)
	if c == nil {
		return
	}
	var req EventsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Events) > constants.MaxEventsPerRequest {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("at most %d events per request", constants.MaxEventsPerRequest))
		return
	}

	changed, err := c.Apply(req.Events)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	if changed == nil {
		changed = []string{}
	}
	respondJSON(w, http.StatusOK, EventsResponse{Changed: changed, Session: c.Snapshot()})
}

// SetTemplate switches the template; transforms reset when it changes.
func (h *SessionsHandler) SetTemplate(w http.ResponseWriter, r *http.Request) {
	c := h.lookup(w, r)
	if c == nil {
		return
	}
	var req SetTemplateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	templateID, err := h.resolveTemplate(req.TemplateID, len(c.ImageIDs()))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	reset := c.SetTemplate(templateID)
	respondJSON(w, http.StatusOK, SetTemplateResponse{Reset: reset, Session: c.Snapshot()})
}

// Delete ends a session.
func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c := h.lookup(w, r)
	if c == nil {
		return
	}
	if err := h.store.Delete(r.Context(), c.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func hasDuplicates(ids []string) bool {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return len(slices.Compact(sorted)) != len(ids)
}
