package layout

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/kozaktomas/print-layout/internal/constants"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	all := c.All()
	if len(all) != 11 {
		t.Fatalf("expected 11 templates, got %d", len(all))
	}
	for _, tmpl := range all {
		if len(tmpl.Slots) != tmpl.ImageCount {
			t.Errorf("%s: %d slots for %d images", tmpl.ID, len(tmpl.Slots), tmpl.ImageCount)
		}
	}
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c := DefaultCatalog()
	all := c.All()
	all[0].ID = "changed"
	if c.All()[0].ID == "changed" {
		t.Error("expected All to return a copy")
	}
}

func TestCatalog_Selectable(t *testing.T) {
	c := DefaultCatalog()
	tests := []struct {
		count int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 2},
		{4, 2},
		{5, 2},
		{6, 1},
		{7, 1},
		{8, 1},
		{9, 1},
		{10, 1},
		{constants.MaxCollageImages, 1},
		{constants.MaxCollageImages + 1, 0},
		{math.MaxInt, 0},
	}
	for _, tt := range tests {
		got := c.Selectable(tt.count)
		if len(got) != tt.want {
			t.Errorf("Selectable(%d): expected %d templates, got %d", tt.count, tt.want, len(got))
		}
		for _, tmpl := range got {
			if tmpl.ImageCount != tt.count {
				t.Errorf("Selectable(%d): template %s is for %d images", tt.count, tmpl.ID, tmpl.ImageCount)
			}
		}
	}
}

func TestCatalog_SelectableNine(t *testing.T) {
	got := DefaultCatalog().Selectable(9)
	if len(got) != 1 || got[0].ID != "layout_9_grid_3x3" {
		t.Errorf("expected the 3x3 grid for 9 images, got %+v", got)
	}
}

func TestCatalog_SelectableRandomFallback(t *testing.T) {
	for _, n := range []int{11, 12, 25, 40} {
		got := DefaultCatalog().Selectable(n)
		if len(got) != 1 {
			t.Fatalf("Selectable(%d): expected a single template, got %d", n, len(got))
		}
		if got[0].ID != "random" || got[0].ImageCount != n {
			t.Errorf("Selectable(%d): expected random layout for %d images, got %s/%d", n, n, got[0].ID, got[0].ImageCount)
		}
		if len(got[0].Slots) != n {
			t.Errorf("Selectable(%d): expected %d slots, got %d", n, n, len(got[0].Slots))
		}
	}
}

func TestCatalog_Find(t *testing.T) {
	c := DefaultCatalog()
	for _, key := range []string{"layout_4_grid_2x2", "4 Grid 2x2", "4-grid-2X2", "  4   grid 2x2 "} {
		tmpl, err := c.Find(key)
		if err != nil {
			t.Errorf("Find(%q): unexpected error: %v", key, err)
			continue
		}
		if tmpl.ID != "layout_4_grid_2x2" {
			t.Errorf("Find(%q): expected layout_4_grid_2x2, got %s", key, tmpl.ID)
		}
	}
	if _, err := c.Find("nope"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestCatalog_Choose(t *testing.T) {
	c := DefaultCatalog()

	tmpl, err := c.Choose("", 3)
	if err != nil || tmpl.ID != "layout_3_horizontal" {
		t.Errorf("expected first 3-image template, got %s (%v)", tmpl.ID, err)
	}

	tmpl, err = c.Choose("3 Vertical", 3)
	if err != nil || tmpl.ID != "layout_3_vertical" {
		t.Errorf("expected layout_3_vertical, got %s (%v)", tmpl.ID, err)
	}

	tmpl, err = c.Choose("random", 15)
	if err != nil || tmpl.ID != "random" {
		t.Errorf("expected random layout, got %s (%v)", tmpl.ID, err)
	}

	if _, err := c.Choose("", 2); !errors.Is(err, ErrNoLayoutAvailable) {
		t.Errorf("expected ErrNoLayoutAvailable, got %v", err)
	}
	if _, err := c.Choose("unknown", 4); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
	if _, err := c.Choose("layout_9_grid_3x3", 4); !errors.Is(err, ErrTemplateNotApplicable) {
		t.Errorf("expected ErrTemplateNotApplicable, got %v", err)
	}
	if _, err := c.Choose("random", 4); !errors.Is(err, ErrTemplateNotApplicable) {
		t.Errorf("expected ErrTemplateNotApplicable for random below threshold, got %v", err)
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", `
templates:
  - name: x
    image_count: 1
    slots: [{id: a, x: 0, y: 0, width: 1, height: 1}]
`},
		{"reserved id", `
templates:
  - id: random
    image_count: 1
    slots: [{id: a, x: 0, y: 0, width: 1, height: 1}]
`},
		{"duplicate id", `
templates:
  - id: a
    image_count: 1
    slots: [{id: a, x: 0, y: 0, width: 1, height: 1}]
  - id: a
    image_count: 1
    slots: [{id: a, x: 0, y: 0, width: 1, height: 1}]
`},
		{"slot count mismatch", `
templates:
  - id: a
    image_count: 2
    slots: [{id: a, x: 0, y: 0, width: 1, height: 1}]
`},
		{"slot out of bounds", `
templates:
  - id: a
    image_count: 1
    slots: [{id: a, x: 0.5, y: 0, width: 0.6, height: 1}]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.yaml))
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestLoadCatalog_BadYAML(t *testing.T) {
	if _, err := LoadCatalog(strings.NewReader("templates: [")); err == nil {
		t.Error("expected decode error")
	}
}

func TestRandomLayout_SlotsWithinPage(t *testing.T) {
	for n := 1; n <= 50; n++ {
		tmpl := RandomLayout(n)
		if len(tmpl.Slots) != n {
			t.Fatalf("RandomLayout(%d): expected %d slots, got %d", n, n, len(tmpl.Slots))
		}
		for i, s := range tmpl.Slots {
			if s.X < 0 || s.Y < 0 || s.X+s.Width > 1+1e-9 || s.Y+s.Height > 1+1e-9 {
				t.Errorf("RandomLayout(%d): slot %d out of bounds: %+v", n, i, s)
			}
		}
		for i := range tmpl.Slots {
			for j := i + 1; j < len(tmpl.Slots); j++ {
				a, b := tmpl.Slots[i], tmpl.Slots[j]
				if rectsOverlap(Rect{a.X, a.Y, a.Width, a.Height}, Rect{b.X, b.Y, b.Width, b.Height}, 1e-9) {
					t.Errorf("RandomLayout(%d): slots %d and %d overlap", n, i, j)
				}
			}
		}
	}
}

func TestResolveSlots(t *testing.T) {
	tmpl, err := DefaultCatalog().Find("layout_4_grid_2x2")
	if err != nil {
		t.Fatal(err)
	}
	rects := ResolveSlots(tmpl, 2480, 3508)
	want := Rect{X: 1240, Y: 1754, Width: 1240, Height: 1754}
	if rects[3] != want {
		t.Errorf("expected %+v, got %+v", want, rects[3])
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"4 Grid 2x2", "4 grid 2x2"},
		{"layout_4_grid_2x2", "layout 4 grid 2x2"},
		{"7 L-Shape", "7 l shape"},
		{"Koláž  Čtyři", "kolaz ctyri"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestRandomLayout_OutOfRange(t *testing.T) {
	for _, n := range []int{-1, 0, constants.MaxCollageImages + 1, math.MaxInt} {
		tmpl := RandomLayout(n)
		if len(tmpl.Slots) != 0 {
			t.Errorf("RandomLayout(%d): expected no slots, got %d", n, len(tmpl.Slots))
		}
	}
}

func TestCatalog_ChooseTooManyImages(t *testing.T) {
	if _, err := DefaultCatalog().Choose("", constants.MaxCollageImages+1); !errors.Is(err, ErrNoLayoutAvailable) {
		t.Errorf("expected ErrNoLayoutAvailable, got %v", err)
	}
}
