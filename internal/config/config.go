package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/print-layout/internal/export"
	"github.com/kozaktomas/print-layout/internal/gesture"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Layout  LayoutConfig  `yaml:"layout"`
	Gesture GestureConfig `yaml:"gesture"`
	Web     WebConfig     `yaml:"web"`
	Export  ExportConfig  `yaml:"export"`
	Loader  LoaderConfig  `yaml:"loader"`
}

type LayoutConfig struct {
	PageSize        string `yaml:"page_size"`
	Rows            int    `yaml:"rows"`
	Cols            int    `yaml:"cols"`
	Stretch         bool   `yaml:"stretch"`
	CollagePageSize string `yaml:"collage_page_size"`
	Orientation     string `yaml:"orientation"`
	TemplatesPath   string `yaml:"templates_path"` // optional YAML catalog replacing the built-in templates
}

type GestureConfig struct {
	MouseDamping    float64 `yaml:"mouse_damping"`
	TouchDamping    float64 `yaml:"touch_damping"`
	MinScale        float64 `yaml:"min_scale"`
	MaxScale        float64 `yaml:"max_scale"`
	WheelZoomStep   float64 `yaml:"wheel_zoom_step"`
	WheelRotateStep float64 `yaml:"wheel_rotate_step"`
}

// Model returns the tuning for gesture models.
func (g GestureConfig) Model() gesture.Config {
	return gesture.Config{
		MouseDamping:    g.MouseDamping,
		TouchDamping:    g.TouchDamping,
		MinScale:        g.MinScale,
		MaxScale:        g.MaxScale,
		WheelZoomStep:   g.WheelZoomStep,
		WheelRotateStep: g.WheelRotateStep,
	}
}

type WebConfig struct {
	Host              string   `yaml:"host"`
	Port              int      `yaml:"port"`
	SessionTTLMinutes int      `yaml:"session_ttl_minutes"`
	AllowedOrigins    []string `yaml:"allowed_origins"` // localhost is always allowed
}

// SessionTTL returns how long idle collage sessions are kept.
func (w WebConfig) SessionTTL() time.Duration {
	return time.Duration(w.SessionTTLMinutes) * time.Minute
}

type ExportConfig struct {
	MinDPI       float64 `yaml:"min_dpi"` // validation warns below this
	JPEGQuality  int     `yaml:"jpeg_quality"`
	MaxImageSide int     `yaml:"max_image_side"`
}

// Options returns the PDF export options.
func (e ExportConfig) Options() export.Options {
	return export.Options{JPEGQuality: e.JPEGQuality, MaxImageSide: e.MaxImageSide}
}

type LoaderConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads a positive float, falling back like envInt.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// envBool accepts anything strconv.ParseBool does.
func envBool(key string, defaultVal bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envList reads a comma-separated list.
func envList(key string, defaultVal []string) []string {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Defaults returns the embedded defaults without environment overrides.
func Defaults() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		// embedded file, covered by tests
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}
	return &cfg
}

func Load() *Config {
	d := Defaults()

	return &Config{
		Layout: LayoutConfig{
			PageSize:        envString("LAYOUT_PAGE_SIZE", d.Layout.PageSize),
			Rows:            envInt("LAYOUT_ROWS", d.Layout.Rows),
			Cols:            envInt("LAYOUT_COLS", d.Layout.Cols),
			Stretch:         envBool("LAYOUT_STRETCH", d.Layout.Stretch),
			CollagePageSize: envString("COLLAGE_PAGE_SIZE", d.Layout.CollagePageSize),
			Orientation:     envString("COLLAGE_ORIENTATION", d.Layout.Orientation),
			TemplatesPath:   envString("TEMPLATES_PATH", d.Layout.TemplatesPath),
		},
		Gesture: GestureConfig{
			MouseDamping:    envFloat("GESTURE_MOUSE_DAMPING", d.Gesture.MouseDamping),
			TouchDamping:    envFloat("GESTURE_TOUCH_DAMPING", d.Gesture.TouchDamping),
			MinScale:        envFloat("GESTURE_MIN_SCALE", d.Gesture.MinScale),
			MaxScale:        envFloat("GESTURE_MAX_SCALE", d.Gesture.MaxScale),
			WheelZoomStep:   envFloat("GESTURE_WHEEL_ZOOM_STEP", d.Gesture.WheelZoomStep),
			WheelRotateStep: envFloat("GESTURE_WHEEL_ROTATE_STEP", d.Gesture.WheelRotateStep),
		},
		Web: WebConfig{
			Host:              envString("WEB_HOST", d.Web.Host),
			Port:              envInt("WEB_PORT", d.Web.Port),
			SessionTTLMinutes: envInt("WEB_SESSION_TTL_MINUTES", d.Web.SessionTTLMinutes),
			AllowedOrigins:    envList("WEB_ALLOWED_ORIGINS", d.Web.AllowedOrigins),
		},
		Export: ExportConfig{
			MinDPI:       envFloat("EXPORT_MIN_DPI", d.Export.MinDPI),
			JPEGQuality:  envInt("EXPORT_JPEG_QUALITY", d.Export.JPEGQuality),
			MaxImageSide: envInt("EXPORT_MAX_IMAGE_SIDE", d.Export.MaxImageSide),
		},
		Loader: LoaderConfig{
			Concurrency: envInt("LOADER_CONCURRENCY", d.Loader.Concurrency),
		},
	}
}
