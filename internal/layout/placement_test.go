package layout

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          Shape
	}{
		{"square", 1000, 1000, ShapeSquare},
		{"slightly wide", 1050, 1000, ShapeSquare},
		{"slightly tall", 1000, 1050, ShapeSquare},
		{"ratio exactly 0.9 is portrait", 900, 1000, ShapePortrait},
		{"ratio exactly 1.1 is landscape", 1100, 1000, ShapeLandscape},
		{"landscape", 4000, 3000, ShapeLandscape},
		{"portrait", 3000, 4000, ShapePortrait},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.width, tt.height); got != tt.want {
				t.Errorf("Classify(%d, %d): expected %s, got %s", tt.width, tt.height, tt.want, got)
			}
		})
	}
}

func TestPlaceImage_Stretch(t *testing.T) {
	cell := Cell{Width: 1240, Height: 1754}
	for _, dims := range [][2]int{{4000, 3000}, {3000, 4000}, {1000, 1000}} {
		p := PlaceImage(dims[0], dims[1], cell, true)
		if p.Width != 1240 || p.Height != 1754 {
			t.Errorf("%v: expected cell size, got %.2fx%.2f", dims, p.Width, p.Height)
		}
		if p.Rotated {
			t.Errorf("%v: stretched images must not rotate", dims)
		}
	}
}

func TestPlaceImage_A3Example(t *testing.T) {
	cell := CellDimensions(A3, 2, 4)
	p := PlaceImage(1754, 1240, cell, false)

	if !p.Rotated {
		t.Fatal("expected landscape image to be rotated")
	}
	if p.Width > float64(cell.Width)+1e-9 {
		t.Errorf("width %.4f exceeds cell width %d", p.Width, cell.Width)
	}
	if math.Abs(p.Width-1240) > 0.5 {
		t.Errorf("expected width ~1240, got %.4f", p.Width)
	}
	if math.Abs(p.Height-1754) > 1.0 {
		t.Errorf("expected height ~1753-1754, got %.4f", p.Height)
	}
}

func TestPlaceImage_LandscapeClampsWidth(t *testing.T) {
	// Rotated aspect 3000/4000 = 0.75; height 1754 gives width 1315.5 > 1240.
	cell := Cell{Width: 1240, Height: 1754}
	p := PlaceImage(4000, 3000, cell, false)
	if !p.Rotated {
		t.Fatal("expected rotation")
	}
	if math.Abs(p.Width-1240) > 1e-9 {
		t.Errorf("expected width clamped to 1240, got %.4f", p.Width)
	}
	wantH := 1240 / 0.75
	if math.Abs(p.Height-wantH) > 1e-9 {
		t.Errorf("expected height %.4f, got %.4f", wantH, p.Height)
	}
}

func TestPlaceImage_LandscapeFitsHeight(t *testing.T) {
	// Rotated aspect 1000/3000; height 1754 gives width 584.67 <= 1240.
	cell := Cell{Width: 1240, Height: 1754}
	p := PlaceImage(3000, 1000, cell, false)
	if math.Abs(p.Height-1754) > 1e-9 {
		t.Errorf("expected height 1754, got %.4f", p.Height)
	}
	if math.Abs(p.Width-1754.0/3) > 1e-9 {
		t.Errorf("expected width %.4f, got %.4f", 1754.0/3, p.Width)
	}
}

func TestPlaceImage_PortraitWidenedToCell(t *testing.T) {
	// Aspect 0.5: height 1754 gives width 877 < 1240, forced to 1240.
	cell := Cell{Width: 1240, Height: 1754}
	p := PlaceImage(1000, 2000, cell, false)
	if p.Rotated {
		t.Error("portrait must not rotate")
	}
	if p.Width != 1240 || p.Height != 1754 {
		t.Errorf("expected 1240x1754, got %.2fx%.2f", p.Width, p.Height)
	}
}

func TestPlaceImage_PortraitScaledDown(t *testing.T) {
	// Aspect 0.85 in a wide, short cell: 1000*0.85 = 850 > 600.
	cell := Cell{Width: 600, Height: 1000}
	p := PlaceImage(850, 1000, cell, false)
	if math.Abs(p.Width-600) > 1e-9 {
		t.Errorf("expected width 600, got %.4f", p.Width)
	}
	wantH := 1000 * (600.0 / 850.0)
	if math.Abs(p.Height-wantH) > 1e-9 {
		t.Errorf("expected height %.4f, got %.4f", wantH, p.Height)
	}
}

func TestPlaceImage_SquareUniformFit(t *testing.T) {
	cell := Cell{Width: 1240, Height: 1754}
	p := PlaceImage(2000, 2000, cell, false)
	if p.Rotated {
		t.Error("square must not rotate")
	}
	if math.Abs(p.Width-1240) > 1e-9 || math.Abs(p.Height-1240) > 1e-9 {
		t.Errorf("expected 1240x1240, got %.2fx%.2f", p.Width, p.Height)
	}
}

func TestPlaceImage_Idempotent(t *testing.T) {
	cell := Cell{Width: 827, Height: 1169}
	inputs := [][2]int{{4000, 3000}, {3000, 4000}, {1000, 1000}, {1754, 1240}, {900, 1000}}
	for _, in := range inputs {
		for _, stretch := range []bool{false, true} {
			a := PlaceImage(in[0], in[1], cell, stretch)
			b := PlaceImage(in[0], in[1], cell, stretch)
			if a != b {
				t.Errorf("%v stretch=%v: results differ: %+v vs %+v", in, stretch, a, b)
			}
		}
	}
}

func TestPlaceImage_AlwaysFitsCell(t *testing.T) {
	const eps = 1e-6
	for _, ps := range PageSizes() {
		for _, rows := range GridOptions() {
			for _, cols := range GridOptions() {
				cell := CellDimensions(ps, rows, cols)
				for _, in := range [][2]int{{6000, 4000}, {4000, 6000}, {3000, 3100}, {640, 480}, {100, 1000}} {
					p := PlaceImage(in[0], in[1], cell, false)
					if p.Width > float64(cell.Width)+eps || p.Height > float64(cell.Height)+eps {
						t.Errorf("%s %dx%d %v: %.2fx%.2f exceeds cell %dx%d",
							ps.Name, rows, cols, in, p.Width, p.Height, cell.Width, cell.Height)
					}
				}
			}
		}
	}
}

func TestCenterInCell(t *testing.T) {
	cell := Cell{Width: 100, Height: 200}
	p := CenterInCell(Placement{Width: 60, Height: 200, Rotated: true}, 300, 400, cell)
	if p.X != 320 || p.Y != 400 {
		t.Errorf("expected (320, 400), got (%.2f, %.2f)", p.X, p.Y)
	}
	if !p.Rotated {
		t.Error("expected rotation flag preserved")
	}
}
