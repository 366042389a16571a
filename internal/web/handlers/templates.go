package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/print-layout/internal/constants"
	"github.com/kozaktomas/print-layout/internal/layout"
)

// TemplatesHandler serves the collage template catalog
type TemplatesHandler struct {
	catalog *layout.Catalog
}

// NewTemplatesHandler creates a new templates handler
func NewTemplatesHandler(catalog *layout.Catalog) *TemplatesHandler {
	return &TemplatesHandler{catalog: catalog}
}

// List returns all templates, or with ?count=N the templates selectable for N images.
func (h *TemplatesHandler) List(w http.ResponseWriter, r *http.Request) {
	countParam := r.URL.Query().Get("count")
	if countParam == "" {
		respondJSON(w, http.StatusOK, h.catalog.All())
		return
	}

	count, err := strconv.Atoi(countParam)
	if err != nil || count < 0 {
		respondError(w, http.StatusBadRequest, "count must be a non-negative integer")
		return
	}
	if count > constants.MaxImagesPerRequest {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("count must be at most %d", constants.MaxImagesPerRequest))
		return
	}
	templates := h.catalog.Selectable(count)
	if templates == nil {
		templates = []layout.Template{}
	}
	respondJSON(w, http.StatusOK, templates)
}

// Get returns one template by id or name.
func (h *TemplatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.catalog.Find(chi.URLParam(r, "id"))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tmpl)
}
