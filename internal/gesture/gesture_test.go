package gesture

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func newTestModel() *Model {
	return NewModel(DefaultConfig(), []string{"a", "b"})
}

func mustApply(t *testing.T, m *Model, ev Event) string {
	t.Helper()
	id, err := m.Apply(ev)
	if err != nil {
		t.Fatalf("Apply(%+v): unexpected error: %v", ev, err)
	}
	return id
}

func TestDefaultTransform(t *testing.T) {
	tr := DefaultTransform()
	if tr.OffsetX != -50 || tr.OffsetY != 0 || tr.Scale != 1.2 || tr.Rotation != 0 {
		t.Errorf("unexpected default transform: %+v", tr)
	}
}

func TestNewModel_DefaultsForEveryImage(t *testing.T) {
	m := newTestModel()
	for _, id := range []string{"a", "b"} {
		tr, ok := m.Transform(id)
		if !ok {
			t.Fatalf("expected transform for %s", id)
		}
		if tr != DefaultTransform() {
			t.Errorf("%s: expected default transform, got %+v", id, tr)
		}
	}
	if _, ok := m.Transform("missing"); ok {
		t.Error("expected no transform for unknown image")
	}
}

func TestMouseDrag(t *testing.T) {
	m := newTestModel()
	mustApply(t, m, Event{Type: PointerDown, ImageID: "a", X: 10, Y: 10})
	if m.State("a") != Dragging {
		t.Fatalf("expected dragging, got %s", m.State("a"))
	}
	mustApply(t, m, Event{Type: PointerMove, X: 110, Y: 10})

	tr, _ := m.Transform("a")
	if math.Abs(tr.OffsetX-(-45)) > eps {
		t.Errorf("expected offsetX -45, got %f", tr.OffsetX)
	}
	if math.Abs(tr.OffsetY) > eps {
		t.Errorf("expected offsetY 0, got %f", tr.OffsetY)
	}

	mustApply(t, m, Event{Type: PointerUp})
	if m.State("a") != Idle {
		t.Errorf("expected idle after pointer up, got %s", m.State("a"))
	}

	// Moves after release have no effect.
	mustApply(t, m, Event{Type: PointerMove, X: 500, Y: 500})
	tr2, _ := m.Transform("a")
	if tr2 != tr {
		t.Errorf("expected transform unchanged after release, got %+v", tr2)
	}
}

func TestTouchDragUsesTouchDamping(t *testing.T) {
	m := newTestModel()
	mustApply(t, m, Event{Type: TouchStart, ImageID: "b", Points: []Point{{0, 0}}})
	mustApply(t, m, Event{Type: TouchMove, Points: []Point{{0, 50}}})

	tr, _ := m.Transform("b")
	if math.Abs(tr.OffsetY-10) > eps {
		t.Errorf("expected offsetY 10 (50 * 0.2), got %f", tr.OffsetY)
	}
	if math.Abs(tr.OffsetX-(-50)) > eps {
		t.Errorf("expected offsetX unchanged, got %f", tr.OffsetX)
	}
}

func TestDragIsIncremental(t *testing.T) {
	m := newTestModel()
	mustApply(t, m, Event{Type: PointerDown, ImageID: "a", X: 0, Y: 0})
	mustApply(t, m, Event{Type: PointerMove, X: 20, Y: 0})
	mustApply(t, m, Event{Type: PointerMove, X: 40, Y: 0})

	tr, _ := m.Transform("a")
	// Two 20px steps at 0.05 each.
	if math.Abs(tr.OffsetX-(-48)) > eps {
		t.Errorf("expected offsetX -48, got %f", tr.OffsetX)
	}
}

func TestPinchScalesAndRotates(t *testing.T) {
	m := newTestModel()
	mustApply(t, m, Event{Type: TouchStart, ImageID: "a", Points: []Point{{0, 0}, {100, 0}}})
	if m.State("a") != Pinching {
		t.Fatalf("expected pinching, got %s", m.State("a"))
	}

	// Distance doubles, angle turns 90 degrees.
	mustApply(t, m, Event{Type: TouchMove, Points: []Point{{0, 0}, {0, 200}}})
	tr, _ := m.Transform("a")
	if math.Abs(tr.Scale-2.4) > 1e-6 {
		t.Errorf("expected scale 2.4, got %f", tr.Scale)
	}
	if math.Abs(tr.Rotation-90) > 1e-6 {
		t.Errorf("expected rotation 90, got %f", tr.Rotation)
	}

	mustApply(t, m, Event{Type: TouchEnd})
	if m.State("a") != Idle {
		t.Errorf("expected idle after touch end, got %s", m.State("a"))
	}
}

func TestPinchScaleClamped(t *testing.T) {
	tests := []struct {
		name string
		end  Point
		want float64
	}{
		{"zoom in past max", Point{10000, 0}, 5.0},
		{"zoom out past min", Point{1, 0}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			mustApply(t, m, Event{Type: TouchStart, ImageID: "a", Points: []Point{{0, 0}, {100, 0}}})
			mustApply(t, m, Event{Type: TouchMove, Points: []Point{{0, 0}, tt.end}})
			tr, _ := m.Transform("a")
			if math.Abs(tr.Scale-tt.want) > eps {
				t.Errorf("expected scale %f, got %f", tt.want, tr.Scale)
			}
		})
	}
}

func TestPinchTakesPrecedenceOverDrag(t *testing.T) {
	m := newTestModel()
	mustApply(t, m, Event{Type: PointerDown, ImageID: "a", X: 0, Y: 0, Touch: true})
	mustApply(t, m, Event{Type: TouchStart, ImageID: "a", Points: []Point{{0, 0}, {100, 0}}})
	if m.State("a") != Pinching {
		t.Fatalf("expected pinch to take over drag, got %s", m.State("a"))
	}

	// A new pointer down during the pinch is ignored.
	id := mustApply(t, m, Event{Type: PointerDown, ImageID: "b", X: 0, Y: 0})
	if id != "" {
		t.Errorf("expected pointer down to be ignored while pinching, got %q", id)
	}
	if m.State("a") != Pinching {
		t.Errorf("expected still pinching, got %s", m.State("a"))
	}

	// Pointer moves do not drag during a pinch.
	mustApply(t, m, Event{Type: PointerMove, X: 100, Y: 100})
	tr, _ := m.Transform("a")
	if tr.OffsetX != -50 || tr.OffsetY != 0 {
		t.Errorf("expected offsets untouched during pinch, got %+v", tr)
	}
}

func TestPinchRotationAcrossAtan2Seam(t *testing.T) {
	m := newTestModel()
	// Start just above the negative x axis (179 degrees), end just below (-179 degrees).
	a := Point{0, 0}
	start := Point{math.Cos(179 * math.Pi / 180), math.Sin(179 * math.Pi / 180)}
	end := Point{math.Cos(-179 * math.Pi / 180), math.Sin(-179 * math.Pi / 180)}
	mustApply(t, m, Event{Type: TouchStart, ImageID: "a", Points: []Point{a, start}})
	mustApply(t, m, Event{Type: TouchMove, Points: []Point{a, end}})

	tr, _ := m.Transform("a")
	if math.Abs(tr.Rotation-2) > 1e-6 {
		t.Errorf("expected rotation +2 across the seam, got %f", tr.Rotation)
	}
}

func TestWheel(t *testing.T) {
	tests := []struct {
		name         string
		deltaY       float64
		modifier     bool
		wantScale    float64
		wantRotation float64
	}{
		{"scroll up zooms in", -120, false, 1.25, 0},
		{"scroll down zooms out", 120, false, 1.15, 0},
		{"modifier rotates clockwise", 120, true, 1.2, 5},
		{"modifier rotates counter-clockwise", -3, true, 1.2, -5},
		{"zero delta ignored", 0, false, 1.2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			mustApply(t, m, Event{Type: Wheel, ImageID: "a", DeltaY: tt.deltaY, Modifier: tt.modifier})
			tr, _ := m.Transform("a")
			if math.Abs(tr.Scale-tt.wantScale) > 1e-9 {
				t.Errorf("expected scale %f, got %f", tt.wantScale, tr.Scale)
			}
			if math.Abs(tr.Rotation-tt.wantRotation) > 1e-9 {
				t.Errorf("expected rotation %f, got %f", tt.wantRotation, tr.Rotation)
			}
		})
	}
}

func TestWheelZoomClamped(t *testing.T) {
	m := newTestModel()
	for n := 0; n < 200; n++ {
		mustApply(t, m, Event{Type: Wheel, ImageID: "a", DeltaY: 1})
	}
	tr, _ := m.Transform("a")
	if math.Abs(tr.Scale-0.5) > 1e-9 {
		t.Errorf("expected scale clamped to 0.5, got %f", tr.Scale)
	}
}

func TestWheelRotationWraps(t *testing.T) {
	m := newTestModel()
	for n := 0; n < 73; n++ {
		mustApply(t, m, Event{Type: Wheel, ImageID: "a", DeltaY: 1, Modifier: true})
	}
	tr, _ := m.Transform("a")
	// 73 * 5 = 365 -> 5
	if math.Abs(tr.Rotation-5) > 1e-9 {
		t.Errorf("expected rotation wrapped to 5, got %f", tr.Rotation)
	}

	for n := 0; n < 74; n++ {
		mustApply(t, m, Event{Type: Wheel, ImageID: "a", DeltaY: -1, Modifier: true})
	}
	tr, _ = m.Transform("a")
	// 5 - 370 = -365 -> -5, sign kept
	if math.Abs(tr.Rotation-(-5)) > 1e-9 {
		t.Errorf("expected rotation wrapped to -5, got %f", tr.Rotation)
	}
}

func TestWheelIgnoredDuringGesture(t *testing.T) {
	m := newTestModel()
	mustApply(t, m, Event{Type: PointerDown, ImageID: "a", X: 0, Y: 0})
	id := mustApply(t, m, Event{Type: Wheel, ImageID: "a", DeltaY: -1})
	if id != "" {
		t.Errorf("expected wheel to be ignored while dragging, got %q", id)
	}
	tr, _ := m.Transform("a")
	if tr.Scale != 1.2 {
		t.Errorf("expected scale unchanged, got %f", tr.Scale)
	}
}

func TestUnknownImageAndEvent(t *testing.T) {
	m := newTestModel()
	if _, err := m.Apply(Event{Type: PointerDown, ImageID: "zzz"}); !errors.Is(err, ErrUnknownImage) {
		t.Errorf("expected ErrUnknownImage, got %v", err)
	}
	if _, err := m.Apply(Event{Type: Wheel, ImageID: "zzz", DeltaY: 1}); !errors.Is(err, ErrUnknownImage) {
		t.Errorf("expected ErrUnknownImage for wheel, got %v", err)
	}
	if _, err := m.Apply(Event{Type: "double_tap"}); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestSetTemplateResetsOnlyOnChange(t *testing.T) {
	m := newTestModel()
	if !m.SetTemplate("layout_4_grid_2x2", []string{"a", "b"}) {
		t.Fatal("expected reset on first template selection")
	}

	mustApply(t, m, Event{Type: Wheel, ImageID: "a", DeltaY: -1})
	if m.SetTemplate("layout_4_grid_2x2", []string{"a", "b"}) {
		t.Error("expected no reset when template is unchanged")
	}
	tr, _ := m.Transform("a")
	if tr == DefaultTransform() {
		t.Error("expected adjusted transform to survive unchanged template")
	}

	if !m.SetTemplate("layout_4_horizontal_vertical_mix", []string{"a", "b"}) {
		t.Fatal("expected reset on template change")
	}
	tr, _ = m.Transform("a")
	if tr != DefaultTransform() {
		t.Errorf("expected default transform after template change, got %+v", tr)
	}
	if m.TemplateID() != "layout_4_horizontal_vertical_mix" {
		t.Errorf("unexpected template id %q", m.TemplateID())
	}
}

func TestTransformsReturnsCopy(t *testing.T) {
	m := newTestModel()
	all := m.Transforms()
	all["a"] = Transform{Scale: 3}
	tr, _ := m.Transform("a")
	if tr != DefaultTransform() {
		t.Error("expected model to be unaffected by changes to the returned map")
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Dragging.String() != "dragging" || Pinching.String() != "pinching" {
		t.Error("unexpected state names")
	}
}
