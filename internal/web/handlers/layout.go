package handlers

import (
	"fmt"
	"net/http"

	"github.com/kozaktomas/print-layout/internal/config"
	"github.com/kozaktomas/print-layout/internal/constants"
	"github.com/kozaktomas/print-layout/internal/gesture"
	"github.com/kozaktomas/print-layout/internal/layout"
)

// LayoutHandler computes grid, flyer and collage layouts
type LayoutHandler struct {
	config  *config.Config
	catalog *layout.Catalog
}

// NewLayoutHandler creates a new layout handler
func NewLayoutHandler(cfg *config.Config, catalog *layout.Catalog) *LayoutHandler {
	return &LayoutHandler{config: cfg, catalog: catalog}
}

// ImageInput is an image reference sent by the client.
type ImageInput struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// GridRequest is the body of the grid layout endpoint. Omitted fields fall
// back to the configured defaults; explicit values are validated as sent.
type GridRequest struct {
	Images   []ImageInput `json:"images"`
	PageSize string       `json:"page_size"`
	Rows     *int         `json:"rows"`
	Cols     *int         `json:"cols"`
	Stretch  *bool        `json:"stretch"`
}

// FlyerRequest is the body of the flyer layout endpoint.
type FlyerRequest struct {
	Image    ImageInput `json:"image"`
	PageSize string     `json:"page_size"`
	Rows     *int       `json:"rows"`
	Cols     *int       `json:"cols"`
	Stretch  *bool      `json:"stretch"`
}

// CollageRequest is the body of the collage layout endpoint.
type CollageRequest struct {
	Images      []ImageInput                 `json:"images"`
	TemplateID  string                       `json:"template_id"`
	PageSize    string                       `json:"page_size"`
	Orientation string                       `json:"orientation"`
	Transforms  map[string]gesture.Transform `json:"transforms,omitempty"`
}

// PlacementResponse is one placed image.
type PlacementResponse struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Rotated bool    `json:"rotated"`
	Row     int     `json:"row"`
	Col     int     `json:"col"`
}

// PageResponse is one grid page.
type PageResponse struct {
	Index      int                 `json:"index"`
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	Cell       layout.Cell         `json:"cell"`
	Placements []PlacementResponse `json:"placements"`
}

// GridResponse is returned by the grid and flyer endpoints.
type GridResponse struct {
	Pages    []PageResponse             `json:"pages"`
	Warnings []layout.ValidationWarning `json:"warnings"`
}

// SlotResponse is one image placed into a collage slot.
type SlotResponse struct {
	SlotID    string             `json:"slot_id"`
	ImageID   string             `json:"image_id"`
	X         float64            `json:"x"`
	Y         float64            `json:"y"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Transform *gesture.Transform `json:"transform,omitempty"`
}

// CollageResponse is returned by the collage endpoint.
type CollageResponse struct {
	Template layout.Template            `json:"template"`
	Width    int                        `json:"width"`
	Height   int                        `json:"height"`
	Slots    []SlotResponse             `json:"slots"`
	Warnings []layout.ValidationWarning `json:"warnings"`
}

func toImages(inputs []ImageInput) ([]layout.Image, error) {
	if len(inputs) > constants.MaxImagesPerRequest {
		return nil, fmt.Errorf("%w: at most %d images per request", layout.ErrInvalidImage, constants.MaxImagesPerRequest)
	}
	images := make([]layout.Image, len(inputs))
	for i, in := range inputs {
		id := in.ID
		if id == "" {
			id = fmt.Sprintf("image-%d", i+1)
		}
		images[i] = layout.Image{ID: id, Width: in.Width, Height: in.Height}
	}
	return images, nil
}

// gridConfig resolves request values against the configured defaults. Only
// omitted values are defaulted; zero or negative rows and cols are rejected.
func gridConfig(cfg *config.Config, pageSize string, rows, cols *int, stretch *bool) (layout.GridConfig, error) {
	if pageSize == "" {
		pageSize = cfg.Layout.PageSize
	}
	size, err := layout.PageSizeByName(pageSize)
	if err != nil {
		return layout.GridConfig{}, err
	}
	gc := layout.GridConfig{PageSize: size, Rows: cfg.Layout.Rows, Cols: cfg.Layout.Cols, Stretch: cfg.Layout.Stretch}
	if rows != nil {
		gc.Rows = *rows
	}
	if cols != nil {
		gc.Cols = *cols
	}
	if stretch != nil {
		gc.Stretch = *stretch
	}
	return gc, gc.Validate()
}

// collageConfig resolves request values against the configured defaults.
func collageConfig(cfg *config.Config, templateID, pageSize, orientation string) (layout.CollageConfig, error) {
	if pageSize == "" {
		pageSize = cfg.Layout.CollagePageSize
	}
	size, err := layout.PageSizeByName(pageSize)
	if err != nil {
		return layout.CollageConfig{}, err
	}
	if orientation == "" {
		orientation = cfg.Layout.Orientation
	}
	o, err := layout.ParseOrientation(orientation)
	if err != nil {
		return layout.CollageConfig{}, err
	}
	return layout.CollageConfig{TemplateID: templateID, PageSize: size, Orientation: o}, nil
}

func toGridResponse(pages []layout.Page, minDPI float64) GridResponse {
	resp := GridResponse{
		Pages:    make([]PageResponse, 0, len(pages)),
		Warnings: layout.ValidatePages(pages, minDPI),
	}
	for _, page := range pages {
		pr := PageResponse{
			Index:      page.Index,
			Width:      page.Width,
			Height:     page.Height,
			Cell:       page.Cell,
			Placements: make([]PlacementResponse, 0, len(page.Placements)),
		}
		for _, pi := range page.Placements {
			p := pi.Placement
			pr.Placements = append(pr.Placements, PlacementResponse{
				ID:      pi.Image.ID,
				X:       p.X,
				Y:       p.Y,
				Width:   p.Width,
				Height:  p.Height,
				Rotated: p.Rotated,
				Row:     pi.Row,
				Col:     pi.Col,
			})
		}
		resp.Pages = append(resp.Pages, pr)
	}
	if resp.Warnings == nil {
		resp.Warnings = []layout.ValidationWarning{}
	}
	return resp
}

func toCollageResponse(page layout.CollagePage, minDPI float64) CollageResponse {
	resp := CollageResponse{
		Template: page.Template,
		Width:    page.Width,
		Height:   page.Height,
		Slots:    make([]SlotResponse, 0, len(page.Slots)),
		Warnings: layout.ValidateCollage(page, minDPI),
	}
	for _, s := range page.Slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			SlotID:    s.SlotID,
			ImageID:   s.Image.ID,
			X:         s.Rect.X,
			Y:         s.Rect.Y,
			Width:     s.Rect.Width,
			Height:    s.Rect.Height,
			Transform: s.Transform,
		})
	}
	if resp.Warnings == nil {
		resp.Warnings = []layout.ValidationWarning{}
	}
	return resp
}

// Grid lays images out on as many grid pages as needed.
func (h *LayoutHandler) Grid(w http.ResponseWriter, r *http.Request) {
	var req GridRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	gc, err := gridConfig(h.config, req.PageSize, req.Rows, req.Cols, req.Stretch)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	images, err := toImages(req.Images)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	pages, err := layout.BuildGridPages(gc, images)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toGridResponse(pages, h.config.Export.MinDPI))
}

// Flyer fills one page with copies of a single image.
func (h *LayoutHandler) Flyer(w http.ResponseWriter, r *http.Request) {
	var req FlyerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	gc, err := gridConfig(h.config, req.PageSize, req.Rows, req.Cols, req.Stretch)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	images, err := toImages([]ImageInput{req.Image})
	if err != nil {
		respondEngineError(w, err)
		return
	}
	page, err := layout.BuildFlyerPage(gc, images[0])
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toGridResponse([]layout.Page{page}, h.config.Export.MinDPI))
}

// Collage places images into a template's slots.
func (h *LayoutHandler) Collage(w http.ResponseWriter, r *http.Request) {
	var req CollageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cc, err := collageConfig(h.config, req.TemplateID, req.PageSize, req.Orientation)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	images, err := toImages(req.Images)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	page, err := layout.BuildCollage(cc, h.catalog, images, req.Transforms)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCollageResponse(page, h.config.Export.MinDPI))
}
