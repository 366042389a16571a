package layout

import (
	"fmt"
	"math"

	"github.com/kozaktomas/print-layout/internal/constants"
)

// Severity levels of a ValidationWarning.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationWarning describes a layout issue found during validation.
type ValidationWarning struct {
	PageNumber int    `json:"page_number"`
	SlotIndex  int    `json:"slot_index"`
	Message    string `json:"message"`
	Severity   string `json:"severity"` // "error" or "warning"
}

// ValidatePages checks grid pages for placements escaping their cell and for
// images printed below minDPI.
func ValidatePages(pages []Page, minDPI float64) []ValidationWarning {
	var warnings []ValidationWarning
	for _, page := range pages {
		warnings = append(warnings, validatePage(page, minDPI)...)
	}
	return warnings
}

func validatePage(page Page, minDPI float64) []ValidationWarning {
	var warnings []ValidationWarning
	const eps = 0.01
	pageNumber := page.Index + 1
	pageRect := Rect{Width: float64(page.Width), Height: float64(page.Height)}

	for i, pi := range page.Placements {
		box := pi.Placement.Rect()
		cell := page.CellRect(pi.Row, pi.Col)

		if !box.Contains(cell, eps) {
			warnings = append(warnings, ValidationWarning{
				PageNumber: pageNumber,
				SlotIndex:  i,
				Message:    fmt.Sprintf("placement (%.2f, %.2f, %.2fx%.2f) extends past its cell", box.X, box.Y, box.Width, box.Height),
				Severity:   SeverityError,
			})
		}
		if !cell.Contains(pageRect, eps) {
			warnings = append(warnings, ValidationWarning{
				PageNumber: pageNumber,
				SlotIndex:  i,
				Message:    fmt.Sprintf("cell row %d col %d extends past the page", pi.Row, pi.Col),
				Severity:   SeverityError,
			})
		}

		dpi := EffectiveDPI(pi.Image, pi.Placement.Width, pi.Placement.Height, pi.Placement.Rotated)
		if dpi < minDPI {
			warnings = append(warnings, ValidationWarning{
				PageNumber: pageNumber,
				SlotIndex:  i,
				Message:    fmt.Sprintf("image %s: effective DPI %.0f is below %.0f", pi.Image.ID, dpi, minDPI),
				Severity:   SeverityWarning,
			})
		}
	}
	return warnings
}

// ValidateCollage checks collage slots for overlaps, page overflow and low
// effective DPI. Manual zoom lowers the effective DPI proportionally.
func ValidateCollage(page CollagePage, minDPI float64) []ValidationWarning {
	var warnings []ValidationWarning
	const eps = 0.01
	pageRect := Rect{Width: float64(page.Width), Height: float64(page.Height)}

	for i, si := range page.Slots {
		if !si.Rect.Contains(pageRect, eps) {
			warnings = append(warnings, ValidationWarning{
				PageNumber: 1,
				SlotIndex:  i,
				Message:    fmt.Sprintf("slot %s extends past the page", si.SlotID),
				Severity:   SeverityError,
			})
		}
		for j := i + 1; j < len(page.Slots); j++ {
			if rectsOverlap(si.Rect, page.Slots[j].Rect, eps) {
				warnings = append(warnings, ValidationWarning{
					PageNumber: 1,
					SlotIndex:  i,
					Message:    fmt.Sprintf("slot %d overlaps with slot %d", i, j),
					Severity:   SeverityError,
				})
			}
		}

		scale := 1.0
		if si.Transform != nil && si.Transform.Scale > 0 {
			scale = si.Transform.Scale
		}
		dpi := EffectiveDPI(si.Image, si.Rect.Width*scale, si.Rect.Height*scale, false)
		if dpi < minDPI {
			warnings = append(warnings, ValidationWarning{
				PageNumber: 1,
				SlotIndex:  i,
				Message:    fmt.Sprintf("image %s: effective DPI %.0f is below %.0f", si.Image.ID, dpi, minDPI),
				Severity:   SeverityWarning,
			})
		}
	}
	return warnings
}

// EffectiveDPI returns the print resolution of an image drawn into a box of
// width x height page pixels. With rotated the image's height runs along the
// box width. The lower of both axes is reported, rounded to 0.1.
func EffectiveDPI(img Image, width, height float64, rotated bool) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	srcW, srcH := float64(img.Width), float64(img.Height)
	if rotated {
		srcW, srcH = srcH, srcW
	}
	dpiX := srcW / (width / constants.PrintDPI)
	dpiY := srcH / (height / constants.PrintDPI)
	return math.Round(min(dpiX, dpiY)*10) / 10
}

// rectsOverlap checks if two axis-aligned rectangles overlap with tolerance.
func rectsOverlap(a, b Rect, eps float64) bool {
	if a.X+a.Width <= b.X+eps || b.X+b.Width <= a.X+eps {
		return false
	}
	if a.Y+a.Height <= b.Y+eps || b.Y+b.Height <= a.Y+eps {
		return false
	}
	return true
}
