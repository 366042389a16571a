package layout

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/print-layout/internal/constants"
)

//go:embed templates.yaml
var templatesYAML []byte

var (
	// ErrTemplateNotFound is returned when no template has the requested id or name.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrNoLayoutAvailable is returned when no template fits the image count.
	ErrNoLayoutAvailable = errors.New("no layout available")
	// ErrTemplateNotApplicable is returned when a template does not fit the image count.
	ErrTemplateNotApplicable = errors.New("template not applicable")
	// ErrInvalidCatalog is returned when a template catalog fails validation.
	ErrInvalidCatalog = errors.New("invalid template catalog")
)

// Slot is a template region in fractions of the page area.
type Slot struct {
	ID     string  `yaml:"id" json:"id"`
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Template is a named collage layout for an exact number of images.
type Template struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	ImageCount int    `yaml:"image_count" json:"image_count"`
	Slots      []Slot `yaml:"slots" json:"slots"`
}

// Catalog is a read-only list of collage templates.
type Catalog struct {
	templates []Template
}

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// DefaultCatalog returns the built-in template catalog.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(bytes.NewReader(templatesYAML))
	if err != nil {
		// embedded file, covered by tests
		panic("failed to load embedded templates.yaml: " + err.Error())
	}
	return c
}

// LoadCatalog parses and validates a YAML template catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding template catalog: %w", err)
	}
	c := &Catalog{templates: f.Templates}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	const eps = 0.001
	seen := make(map[string]struct{}, len(c.templates))
	for _, t := range c.templates {
		if t.ID == "" {
			return fmt.Errorf("%w: template without id", ErrInvalidCatalog)
		}
		if t.ID == constants.RandomLayoutID {
			return fmt.Errorf("%w: id %q is reserved", ErrInvalidCatalog, t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, t.ID)
		}
		seen[t.ID] = struct{}{}

		if t.ImageCount <= 0 || len(t.Slots) != t.ImageCount {
			return fmt.Errorf("%w: %s declares %d images but has %d slots", ErrInvalidCatalog, t.ID, t.ImageCount, len(t.Slots))
		}
		for i, s := range t.Slots {
			if s.X < 0 || s.Y < 0 || s.Width <= 0 || s.Height <= 0 ||
				s.X+s.Width > 1+eps || s.Y+s.Height > 1+eps {
				return fmt.Errorf("%w: %s slot %d out of bounds", ErrInvalidCatalog, t.ID, i)
			}
		}
	}
	return nil
}

// All returns a copy of every template in catalog order.
func (c *Catalog) All() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Selectable returns the templates applicable to imageCount images.
//
// Up to RandomLayoutThreshold images only templates with an exact image count
// match. Above it a single synthetic random layout is returned instead.
// An empty result means no layout is available, which includes counts above
// MaxCollageImages.
func (c *Catalog) Selectable(imageCount int) []Template {
	if imageCount <= 0 || imageCount > constants.MaxCollageImages {
		return nil
	}
	if imageCount > constants.RandomLayoutThreshold {
		return []Template{RandomLayout(imageCount)}
	}

	var out []Template
	for _, t := range c.templates {
		if t.ImageCount == imageCount {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the template with the given id, or whose name matches after
// normalization ("4 grid 2x2", "4-Grid-2x2" and "4 Grid 2x2" are the same).
func (c *Catalog) Find(idOrName string) (Template, error) {
	for _, t := range c.templates {
		if t.ID == idOrName {
			return t, nil
		}
	}
	key := NormalizeName(idOrName)
	for _, t := range c.templates {
		if NormalizeName(t.Name) == key || NormalizeName(t.ID) == key {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, idOrName)
}

// Choose picks a template for imageCount images. An empty idOrName selects
// the first applicable template; otherwise the named template must be applicable.
func (c *Catalog) Choose(idOrName string, imageCount int) (Template, error) {
	candidates := c.Selectable(imageCount)
	if len(candidates) == 0 {
		return Template{}, fmt.Errorf("%w for %d images", ErrNoLayoutAvailable, imageCount)
	}
	if idOrName == "" {
		return candidates[0], nil
	}

	key := NormalizeName(idOrName)
	for _, t := range candidates {
		if t.ID == idOrName || NormalizeName(t.ID) == key || NormalizeName(t.Name) == key {
			return t, nil
		}
	}
	if _, err := c.Find(idOrName); err != nil && idOrName != constants.RandomLayoutID {
		return Template{}, err
	}
	return Template{}, fmt.Errorf("%w: %q for %d images", ErrTemplateNotApplicable, idOrName, imageCount)
}

// RandomLayout builds the synthetic template used for large selections:
// a near-square grid with the last row widened to span the page. Counts
// outside [1, MaxCollageImages] yield a template without slots.
func RandomLayout(imageCount int) Template {
	t := Template{
		ID:         constants.RandomLayoutID,
		Name:       constants.RandomLayoutName,
		ImageCount: imageCount,
	}
	if imageCount <= 0 || imageCount > constants.MaxCollageImages {
		return t
	}

	cols := int(math.Ceil(math.Sqrt(float64(imageCount))))
	rows := (imageCount + cols - 1) / cols
	h := 1.0 / float64(rows)
	t.Slots = make([]Slot, 0, imageCount)
	for i := 0; i < imageCount; i++ {
		row, col := CellPosition(i, cols)
		inRow := cols
		if row == rows-1 {
			inRow = imageCount - row*cols
		}
		w := 1.0 / float64(inRow)
		t.Slots = append(t.Slots, Slot{
			ID:     fmt.Sprintf("slot%d", i+1),
			X:      float64(col) * w,
			Y:      float64(row) * h,
			Width:  w,
			Height: h,
		})
	}
	return t
}

// ResolveSlots scales the template's fractional slots to a page of the given pixel size.
func ResolveSlots(t Template, pageWidth, pageHeight int) []Rect {
	w := float64(pageWidth)
	h := float64(pageHeight)
	rects := make([]Rect, len(t.Slots))
	for i, s := range t.Slots {
		rects[i] = Rect{
			X:      s.X * w,
			Y:      s.Y * h,
			Width:  s.Width * w,
			Height: s.Height * h,
		}
	}
	return rects
}

// RemoveDiacritics removes diacritical marks from a string (e.g., "Koláž" -> "Kolaz").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// NormalizeName normalizes a template name or id for comparison
// (lowercase, no diacritics, spaces for dashes and underscores).
func NormalizeName(name string) string {
	name = RemoveDiacritics(name)
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}
