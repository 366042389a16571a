// Package layout computes print layouts: page and cell geometry, image
// placement inside cells, pagination of image sequences, and collage
// template selection. It works on image dimensions only and never touches
// pixel data.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kozaktomas/print-layout/internal/constants"
)

var (
	// ErrInvalidGrid is returned when rows or cols fall outside the allowed range.
	ErrInvalidGrid = errors.New("invalid grid shape")
	// ErrUnknownPageSize is returned for page size names not in the catalog.
	ErrUnknownPageSize = errors.New("unknown page size")
	// ErrInvalidImage is returned for images without positive dimensions.
	ErrInvalidImage = errors.New("invalid image dimensions")
	// ErrUnknownOrientation is returned for orientations other than portrait/landscape.
	ErrUnknownOrientation = errors.New("unknown orientation")
)

// PageSize is a named printable page in pixels at constants.PrintDPI.
// Catalog entries are landscape (Width >= Height).
type PageSize struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Page sizes at 300 DPI: mm * 300 / 25.4.
var (
	A3 = PageSize{Name: "A3", Width: 4961, Height: 3508} // 420 x 297 mm
	A4 = PageSize{Name: "A4", Width: 3508, Height: 2480} // 297 x 210 mm
	A5 = PageSize{Name: "A5", Width: 2480, Height: 1748} // 210 x 148 mm
)

// PageSizes returns the page size catalog in display order.
func PageSizes() []PageSize {
	return []PageSize{A3, A4, A5}
}

// PageSizeByName looks up a catalog page size, ignoring case.
func PageSizeByName(name string) (PageSize, error) {
	for _, ps := range PageSizes() {
		if strings.EqualFold(ps.Name, strings.TrimSpace(name)) {
			return ps, nil
		}
	}
	return PageSize{}, fmt.Errorf("%w: %q", ErrUnknownPageSize, name)
}

// WidthMM returns the physical page width in millimetres.
func (p PageSize) WidthMM() float64 {
	return float64(p.Width) / constants.PrintDPI * constants.MMPerInch
}

// HeightMM returns the physical page height in millimetres.
func (p PageSize) HeightMM() float64 {
	return float64(p.Height) / constants.PrintDPI * constants.MMPerInch
}

// Orientation of a collage page.
type Orientation string

// Orientation values.
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation parses "portrait" or "landscape" (case-insensitive).
// An empty string yields Portrait.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Portrait):
		return Portrait, nil
	case string(Landscape):
		return Landscape, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOrientation, s)
	}
}

// Oriented returns the page with its long edge vertical for Portrait and
// horizontal for Landscape.
func (p PageSize) Oriented(o Orientation) PageSize {
	long, short := max(p.Width, p.Height), min(p.Width, p.Height)
	if o == Landscape {
		p.Width, p.Height = long, short
	} else {
		p.Width, p.Height = short, long
	}
	return p
}

// GridShape is the number of rows and columns of cells on a page.
type GridShape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Validate rejects shapes outside [MinGridSize, MaxGridSize]. Values are never clamped.
func (g GridShape) Validate() error {
	if g.Rows < constants.MinGridSize || g.Rows > constants.MaxGridSize {
		return fmt.Errorf("%w: rows %d not in [%d, %d]", ErrInvalidGrid, g.Rows, constants.MinGridSize, constants.MaxGridSize)
	}
	if g.Cols < constants.MinGridSize || g.Cols > constants.MaxGridSize {
		return fmt.Errorf("%w: cols %d not in [%d, %d]", ErrInvalidGrid, g.Cols, constants.MinGridSize, constants.MaxGridSize)
	}
	return nil
}

// PerPage returns the number of cells on one page.
func (g GridShape) PerPage() int {
	return g.Rows * g.Cols
}

// GridOptions returns the selectable row/column counts.
func GridOptions() []int {
	opts := make([]int, 0, constants.MaxGridSize-constants.MinGridSize+1)
	for n := constants.MinGridSize; n <= constants.MaxGridSize; n++ {
		opts = append(opts, n)
	}
	return opts
}

// Cell is the pixel size of one grid cell.
type Cell struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CellDimensions divides the page into rows x cols cells using floor division.
// Remainder pixels are left as outer margin, not redistributed.
func CellDimensions(size PageSize, rows, cols int) Cell {
	return Cell{
		Width:  size.Width / cols,
		Height: size.Height / rows,
	}
}

// Rect is an absolute rectangle in page pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether r lies within outer, allowing eps of slack.
func (r Rect) Contains(outer Rect, eps float64) bool {
	return r.X >= outer.X-eps &&
		r.Y >= outer.Y-eps &&
		r.X+r.Width <= outer.X+outer.Width+eps &&
		r.Y+r.Height <= outer.Y+outer.Height+eps
}
