package layout

import (
	"github.com/kozaktomas/print-layout/internal/constants"
)

// Shape classifies an image by aspect ratio.
type Shape int

// Shape values.
const (
	ShapePortrait Shape = iota
	ShapeLandscape
	ShapeSquare
)

func (s Shape) String() string {
	switch s {
	case ShapeLandscape:
		return "landscape"
	case ShapeSquare:
		return "square"
	default:
		return "portrait"
	}
}

// Placement is the destination box of an image. Width and Height are the
// post-rotation box when Rotated is set.
type Placement struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Rotated bool    `json:"rotated"`
}

// Rect returns the placement box as a Rect.
func (p Placement) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// Classify returns the shape of a width x height image. Near-square uses
// strict bounds, so aspect ratios of exactly 0.9 and 1.1 are not square.
func Classify(width, height int) Shape {
	aspect := float64(width) / float64(height)
	switch {
	case aspect > constants.NearSquareMin && aspect < constants.NearSquareMax:
		return ShapeSquare
	case width > height:
		return ShapeLandscape
	default:
		return ShapePortrait
	}
}

// PlaceImage computes the size and rotation of an image inside a cell.
// The returned placement has X and Y at zero; see CenterInCell.
//
// Landscape images are rotated 90 degrees and fitted by height first.
// Portrait images fill the cell height and are widened to the cell width
// when narrower than the cell. Square images scale uniformly to fit.
// With stretch the cell is filled exactly and nothing is rotated.
//
// Callers must pass positive natural dimensions.
func PlaceImage(naturalWidth, naturalHeight int, cell Cell, stretch bool) Placement {
	cellW := float64(cell.Width)
	cellH := float64(cell.Height)

	if stretch {
		return Placement{Width: cellW, Height: cellH}
	}

	w := float64(naturalWidth)
	h := float64(naturalHeight)
	aspect := w / h

	switch Classify(naturalWidth, naturalHeight) {
	case ShapeSquare:
		scale := min(cellW/w, cellH/h)
		return Placement{Width: w * scale, Height: h * scale}

	case ShapeLandscape:
		rotatedAspect := h / w
		height := cellH
		width := height * rotatedAspect
		if width > cellW {
			width = cellW
			height = width / rotatedAspect
		}
		return Placement{Width: width, Height: height, Rotated: true}

	default:
		height := cellH
		width := height * aspect
		if width > cellW {
			scale := cellW / width
			return Placement{Width: cellW, Height: height * scale}
		}
		if width < cellW {
			width = cellW
		}
		return Placement{Width: width, Height: height}
	}
}

// CenterInCell positions p centered in the cell whose top-left corner is (cellX, cellY).
func CenterInCell(p Placement, cellX, cellY float64, cell Cell) Placement {
	p.X = cellX + (float64(cell.Width)-p.Width)/2
	p.Y = cellY + (float64(cell.Height)-p.Height)/2
	return p
}
