package handlers

import (
	"net/http"

	"github.com/kozaktomas/print-layout/internal/config"
	"github.com/kozaktomas/print-layout/internal/constants"
	"github.com/kozaktomas/print-layout/internal/gesture"
	"github.com/kozaktomas/print-layout/internal/layout"
)

// ConfigHandler handles configuration endpoints
type ConfigHandler struct {
	config *config.Config
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{
		config: cfg,
	}
}

// ConfigResponse represents the configuration response
type ConfigResponse struct {
	PageSizes             []layout.PageSize `json:"page_sizes"`
	GridOptions           []int             `json:"grid_options"`
	Defaults              LayoutDefaults    `json:"defaults"`
	Gesture               gesture.Config    `json:"gesture"`
	DefaultTransform      gesture.Transform `json:"default_transform"`
	MinDPI                float64           `json:"min_dpi"`
	RandomLayoutThreshold int               `json:"random_layout_threshold"`
}

// LayoutDefaults are the values used when a request omits them.
type LayoutDefaults struct {
	PageSize        string `json:"page_size"`
	Rows            int    `json:"rows"`
	Cols            int    `json:"cols"`
	Stretch         bool   `json:"stretch"`
	CollagePageSize string `json:"collage_page_size"`
	Orientation     string `json:"orientation"`
}

// Get returns the layout configuration
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	l := h.config.Layout
	response := ConfigResponse{
		PageSizes:   layout.PageSizes(),
		GridOptions: layout.GridOptions(),
		Defaults: LayoutDefaults{
			PageSize:        l.PageSize,
			Rows:            l.Rows,
			Cols:            l.Cols,
			Stretch:         l.Stretch,
			CollagePageSize: l.CollagePageSize,
			Orientation:     l.Orientation,
		},
		Gesture:               h.config.Gesture.Model(),
		DefaultTransform:      gesture.DefaultTransform(),
		MinDPI:                h.config.Export.MinDPI,
		RandomLayoutThreshold: constants.RandomLayoutThreshold,
	}

	respondJSON(w, http.StatusOK, response)
}

// PageSizes returns the supported page sizes
func (h *ConfigHandler) PageSizes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, layout.PageSizes())
}
