// Package gesture tracks manual per-image adjustments (offset, zoom,
// rotation) of collage images driven by pointer, touch and wheel events.
package gesture

import (
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/kozaktomas/print-layout/internal/constants"
)

var (
	// ErrUnknownImage is returned for events targeting an image the model does not track.
	ErrUnknownImage = errors.New("unknown image")
	// ErrUnknownEvent is returned for unsupported event types.
	ErrUnknownEvent = errors.New("unknown event type")
)

// Transform is the user adjustment of one image inside its slot.
type Transform struct {
	OffsetX  float64 `json:"offset_x"`
	OffsetY  float64 `json:"offset_y"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"` // degrees, in (-360, 360)
}

// DefaultTransform is applied to every image when a template is selected:
// slightly zoomed in and shifted left so the image fills its slot.
func DefaultTransform() Transform {
	return Transform{
		OffsetX:  constants.DefaultOffsetX,
		OffsetY:  constants.DefaultOffsetY,
		Scale:    constants.DefaultScale,
		Rotation: 0,
	}
}

// Config holds the gesture tuning constants.
type Config struct {
	MouseDamping    float64 `json:"mouse_damping"`
	TouchDamping    float64 `json:"touch_damping"`
	MinScale        float64 `json:"min_scale"`
	MaxScale        float64 `json:"max_scale"`
	WheelZoomStep   float64 `json:"wheel_zoom_step"`
	WheelRotateStep float64 `json:"wheel_rotate_step"`
}

// DefaultConfig returns the standard gesture tuning.
func DefaultConfig() Config {
	return Config{
		MouseDamping:    constants.MouseDamping,
		TouchDamping:    constants.TouchDamping,
		MinScale:        constants.MinScale,
		MaxScale:        constants.MaxScale,
		WheelZoomStep:   constants.WheelZoomStep,
		WheelRotateStep: constants.WheelRotateStep,
	}
}

// State of the gesture state machine.
type State int

// State values.
const (
	Idle State = iota
	Dragging
	Pinching
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Pinching:
		return "pinching"
	default:
		return "idle"
	}
}

// Point is a pointer position in screen pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EventType identifies an input event.
type EventType string

// Supported input events.
const (
	PointerDown EventType = "pointer_down"
	PointerMove EventType = "pointer_move"
	PointerUp   EventType = "pointer_up"
	TouchStart  EventType = "touch_start"
	TouchMove   EventType = "touch_move"
	TouchEnd    EventType = "touch_end"
	Wheel       EventType = "wheel"
)

// Event is a discrete input event. Which fields matter depends on Type:
// pointer events use X/Y and Touch, touch events use Points, wheel events
// use DeltaY and Modifier. ImageID is required for events that start a
// gesture (pointer_down, touch_start, wheel).
type Event struct {
	Type     EventType `json:"type"`
	ImageID  string    `json:"image_id,omitempty"`
	X        float64   `json:"x,omitempty"`
	Y        float64   `json:"y,omitempty"`
	Touch    bool      `json:"touch,omitempty"`
	Points   []Point   `json:"points,omitempty"`
	DeltaY   float64   `json:"delta_y,omitempty"`
	Modifier bool      `json:"modifier,omitempty"`
}

// Model holds the transforms of all images of one collage and the active
// gesture. At most one gesture is active at a time; a pinch takes over a
// drag in progress. Model is not safe for concurrent use.
type Model struct {
	cfg        Config
	templateID string
	transforms map[string]Transform

	state  State
	active string
	touch  bool
	last   Point

	pinchDistance float64
	pinchAngle    float64
}

// NewModel creates a model tracking the given images with default transforms.
func NewModel(cfg Config, imageIDs []string) *Model {
	m := &Model{cfg: cfg}
	m.Reset(imageIDs)
	return m
}

// Reset puts every image back to the default transform and ends any gesture.
func (m *Model) Reset(imageIDs []string) {
	m.transforms = make(map[string]Transform, len(imageIDs))
	for _, id := range imageIDs {
		m.transforms[id] = DefaultTransform()
	}
	m.endGesture()
}

// SetTemplate records the selected template. Transforms are reset only when
// the template actually changes; the return value reports whether they were.
func (m *Model) SetTemplate(templateID string, imageIDs []string) bool {
	if templateID == m.templateID {
		return false
	}
	m.templateID = templateID
	m.Reset(imageIDs)
	return true
}

// TemplateID returns the currently selected template.
func (m *Model) TemplateID() string {
	return m.templateID
}

// State returns the gesture state of the given image.
func (m *Model) State(imageID string) State {
	if imageID != m.active {
		return Idle
	}
	return m.state
}

// Transform returns the transform of one image.
func (m *Model) Transform(imageID string) (Transform, bool) {
	t, ok := m.transforms[imageID]
	return t, ok
}

// Transforms returns a copy of all transforms keyed by image id.
func (m *Model) Transforms() map[string]Transform {
	return maps.Clone(m.transforms)
}

// Apply feeds one event into the state machine. It returns the id of the
// affected image, or an empty id when the event was ignored in the current state.
func (m *Model) Apply(ev Event) (string, error) {
	switch ev.Type {
	case PointerDown:
		return m.pointerDown(ev.ImageID, Point{ev.X, ev.Y}, ev.Touch)
	case PointerMove:
		return m.move(Point{ev.X, ev.Y}), nil
	case PointerUp, TouchEnd:
		id := m.active
		m.endGesture()
		return id, nil
	case TouchStart:
		switch len(ev.Points) {
		case 0:
			return "", nil
		case 1:
			return m.pointerDown(ev.ImageID, ev.Points[0], true)
		default:
			return m.pinchStart(ev.ImageID, ev.Points[0], ev.Points[1])
		}
	case TouchMove:
		switch {
		case m.state == Pinching && len(ev.Points) >= 2:
			return m.pinchMove(ev.Points[0], ev.Points[1]), nil
		case m.state == Dragging && len(ev.Points) >= 1:
			return m.move(ev.Points[0]), nil
		}
		return "", nil
	case Wheel:
		return m.wheel(ev.ImageID, ev.DeltaY, ev.Modifier)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
}

func (m *Model) pointerDown(imageID string, p Point, touch bool) (string, error) {
	if _, ok := m.transforms[imageID]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownImage, imageID)
	}
	if m.state == Pinching {
		return "", nil
	}
	m.state = Dragging
	m.active = imageID
	m.touch = touch
	m.last = p
	return imageID, nil
}

func (m *Model) move(p Point) string {
	if m.state != Dragging {
		return ""
	}
	damping := m.cfg.MouseDamping
	if m.touch {
		damping = m.cfg.TouchDamping
	}
	t := m.transforms[m.active]
	t.OffsetX += (p.X - m.last.X) * damping
	t.OffsetY += (p.Y - m.last.Y) * damping
	m.transforms[m.active] = t
	m.last = p
	return m.active
}

func (m *Model) pinchStart(imageID string, a, b Point) (string, error) {
	if _, ok := m.transforms[imageID]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownImage, imageID)
	}
	m.state = Pinching
	m.active = imageID
	m.touch = true
	m.pinchDistance = distance(a, b)
	m.pinchAngle = angle(a, b)
	return imageID, nil
}

func (m *Model) pinchMove(a, b Point) string {
	dist := distance(a, b)
	ang := angle(a, b)

	t := m.transforms[m.active]
	if m.pinchDistance > 0 && dist > 0 {
		t.Scale = m.clampScale(t.Scale * dist / m.pinchDistance)
	}
	t.Rotation = wrapDegrees(t.Rotation + shortestDelta(ang-m.pinchAngle))
	m.transforms[m.active] = t

	m.pinchDistance = dist
	m.pinchAngle = ang
	return m.active
}

func (m *Model) wheel(imageID string, deltaY float64, modifier bool) (string, error) {
	t, ok := m.transforms[imageID]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownImage, imageID)
	}
	if m.state != Idle || deltaY == 0 {
		return "", nil
	}

	// Scrolling up (negative delta) zooms in; with a modifier it rotates counter-clockwise.
	dir := 1.0
	if deltaY < 0 {
		dir = -1.0
	}
	if modifier {
		t.Rotation = wrapDegrees(t.Rotation + dir*m.cfg.WheelRotateStep)
	} else {
		t.Scale = m.clampScale(t.Scale - dir*m.cfg.WheelZoomStep)
	}
	m.transforms[imageID] = t
	return imageID, nil
}

func (m *Model) endGesture() {
	m.state = Idle
	m.active = ""
	m.touch = false
	m.pinchDistance = 0
	m.pinchAngle = 0
}

func (m *Model) clampScale(s float64) float64 {
	return min(max(s, m.cfg.MinScale), m.cfg.MaxScale)
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// angle returns the direction from a to b in degrees.
func angle(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

// shortestDelta maps an angle difference into (-180, 180].
func shortestDelta(d float64) float64 {
	d = math.Mod(d, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}

// wrapDegrees keeps a signed rotation within (-360, 360).
func wrapDegrees(d float64) float64 {
	return math.Mod(d, 360)
}
