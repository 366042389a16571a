package session

import (
	"slices"
	"sync"

	"github.com/kozaktomas/print-layout/internal/gesture"
)

// Collage is the editing state of one collage: its images and the gesture
// model holding their transforms. Methods are safe for concurrent use.
type Collage struct {
	ID string

	mu       sync.Mutex
	imageIDs []string
	model    *gesture.Model
}

// Snapshot is a read-only copy of a collage session.
type Snapshot struct {
	ID         string                       `json:"id"`
	TemplateID string                       `json:"template_id"`
	ImageIDs   []string                     `json:"image_ids"`
	Transforms map[string]gesture.Transform `json:"transforms"`
}

// NewCollage creates a session with default transforms for every image.
func NewCollage(id string, cfg gesture.Config, templateID string, imageIDs []string) *Collage {
	c := &Collage{
		ID:       id,
		imageIDs: slices.Clone(imageIDs),
		model:    gesture.NewModel(cfg, imageIDs),
	}
	c.model.SetTemplate(templateID, imageIDs)
	return c
}

// ImageIDs returns the session's images in slot order.
func (c *Collage) ImageIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.imageIDs)
}

// Apply feeds events in order and returns the ids of affected images.
// Processing stops at the first failing event; earlier events stay applied.
func (c *Collage) Apply(events []gesture.Event) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var changed []string
	for _, ev := range events {
		id, err := c.model.Apply(ev)
		if err != nil {
			return changed, err
		}
		if id != "" && !slices.Contains(changed, id) {
			changed = append(changed, id)
		}
	}
	return changed, nil
}

// SetTemplate switches the template, resetting transforms if it changed.
func (c *Collage) SetTemplate(templateID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.SetTemplate(templateID, c.imageIDs)
}

// Snapshot returns the current state.
func (c *Collage) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		ID:         c.ID,
		TemplateID: c.model.TemplateID(),
		ImageIDs:   slices.Clone(c.imageIDs),
		Transforms: c.model.Transforms(),
	}
}
