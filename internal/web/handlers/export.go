package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kozaktomas/print-layout/internal/config"
	"github.com/kozaktomas/print-layout/internal/constants"
	"github.com/kozaktomas/print-layout/internal/export"
	"github.com/kozaktomas/print-layout/internal/gesture"
	"github.com/kozaktomas/print-layout/internal/imageload"
	"github.com/kozaktomas/print-layout/internal/layout"
)

// ExportHandler renders uploaded images to PDF
type ExportHandler struct {
	config  *config.Config
	catalog *layout.Catalog
}

// NewExportHandler creates a new export handler
func NewExportHandler(cfg *config.Config, catalog *layout.Catalog) *ExportHandler {
	return &ExportHandler{config: cfg, catalog: catalog}
}

// readUploads reads the "files" multipart field into memory.
func readUploads(files []*multipart.FileHeader) ([]imageload.Source, error) {
	sources := make([]imageload.Source, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %s", fileHeader.Filename)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %s", fileHeader.Filename)
		}
		sources = append(sources, imageload.BytesSource{Filename: filepath.Base(fileHeader.Filename), Data: data})
	}
	return sources, nil
}

// loadUploads parses the multipart form and resolves every uploaded image.
// Each request uses its own loader so concurrent requests never supersede each other.
func (h *ExportHandler) loadUploads(w http.ResponseWriter, r *http.Request) ([]layout.Image, bool) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return nil, false
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no files provided")
		return nil, false
	}
	if len(files) > constants.MaxImagesPerRequest {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("at most %d images per request", constants.MaxImagesPerRequest))
		return nil, false
	}

	sources, err := readUploads(files)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	start := time.Now()
	batch, err := imageload.NewLoader(h.config.Loader.Concurrency).Load(r.Context(), sources, nil)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	log.Printf("PDF export: loaded %d images in %s", len(batch.Images), time.Since(start).Round(time.Millisecond))
	return batch.Images, true
}

// formInt parses an optional integer form value; empty means nil.
func formInt(r *http.Request, key string) (*int, error) {
	s := r.FormValue(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", layout.ErrInvalidGrid, key)
	}
	return &n, nil
}

// formBool parses an optional boolean form value; empty means nil.
func formBool(r *http.Request, key string) *bool {
	b, err := strconv.ParseBool(r.FormValue(key))
	if err != nil {
		return nil
	}
	return &b
}

func (h *ExportHandler) gridForm(r *http.Request) (layout.GridConfig, error) {
	rows, err := formInt(r, "rows")
	if err != nil {
		return layout.GridConfig{}, err
	}
	cols, err := formInt(r, "cols")
	if err != nil {
		return layout.GridConfig{}, err
	}
	return gridConfig(h.config, r.FormValue("page_size"), rows, cols, formBool(r, "stretch"))
}

func (h *ExportHandler) respondPDF(w http.ResponseWriter, filename string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		log.Printf("PDF export failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to render PDF")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Grid renders uploaded images as grid pages.
func (h *ExportHandler) Grid(w http.ResponseWriter, r *http.Request) {
	images, ok := h.loadUploads(w, r)
	if !ok {
		return
	}
	gc, err := h.gridForm(r)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	pages, err := layout.BuildGridPages(gc, images)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	h.respondPDF(w, "grid.pdf", func(out io.Writer) error {
		return export.WriteGridPDF(out, pages, h.config.Export.Options())
	})
}

// Flyer renders the first uploaded image repeated over one page.
func (h *ExportHandler) Flyer(w http.ResponseWriter, r *http.Request) {
	images, ok := h.loadUploads(w, r)
	if !ok {
		return
	}
	gc, err := h.gridForm(r)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	page, err := layout.BuildFlyerPage(gc, images[0])
	if err != nil {
		respondEngineError(w, err)
		return
	}
	h.respondPDF(w, "flyer.pdf", func(out io.Writer) error {
		return export.WriteGridPDF(out, []layout.Page{page}, h.config.Export.Options())
	})
}

// Collage renders uploaded images into a template. The optional
// "transforms" field is a JSON object keyed by uploaded file name.
func (h *ExportHandler) Collage(w http.ResponseWriter, r *http.Request) {
	images, ok := h.loadUploads(w, r)
	if !ok {
		return
	}
	cc, err := collageConfig(h.config, r.FormValue("template_id"), r.FormValue("page_size"), r.FormValue("orientation"))
	if err != nil {
		respondEngineError(w, err)
		return
	}

	var transforms map[string]gesture.Transform
	if raw := r.FormValue("transforms"); raw != "" {
		var byName map[string]gesture.Transform
		if err := json.Unmarshal([]byte(raw), &byName); err != nil {
			respondError(w, http.StatusBadRequest, "invalid transforms")
			return
		}
		transforms = make(map[string]gesture.Transform, len(byName))
		for _, img := range images {
			if tr, ok := byName[img.Handle.(imageload.Source).Name()]; ok {
				transforms[img.ID] = tr
			}
		}
	}

	page, err := layout.BuildCollage(cc, h.catalog, images, transforms)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	h.respondPDF(w, "collage.pdf", func(out io.Writer) error {
		return export.WriteCollagePDF(out, page, h.config.Export.Options())
	})
}
