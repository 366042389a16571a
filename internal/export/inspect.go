package export

import (
	"fmt"
	"io"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/kozaktomas/print-layout/internal/constants"
	"github.com/kozaktomas/print-layout/internal/layout"
)

const pointsPerInch = 72.0

func init() {
	// No pdfcpu config directory in the user's home.
	api.DisableConfigDir()
}

// PageInfo is the physical size of one page of a PDF.
type PageInfo struct {
	Number   int     `json:"number"`
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
}

// Inspect reads a PDF back and reports the size of every page.
func Inspect(rs io.ReadSeeker) ([]PageInfo, error) {
	conf := model.NewDefaultConfiguration()
	dims, err := api.PageDims(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF page sizes: %w", err)
	}
	pages := make([]PageInfo, len(dims))
	for i, d := range dims {
		pages[i] = PageInfo{
			Number:   i + 1,
			WidthMM:  d.Width / pointsPerInch * constants.MMPerInch,
			HeightMM: d.Height / pointsPerInch * constants.MMPerInch,
		}
	}
	return pages, nil
}

// PageSizeName returns the catalog page size matching the page in either
// orientation, or "" when none is within toleranceMM.
func (p PageInfo) PageSizeName(toleranceMM float64) string {
	for _, ps := range layout.PageSizes() {
		w, h := ps.WidthMM(), ps.HeightMM()
		if (near(p.WidthMM, w, toleranceMM) && near(p.HeightMM, h, toleranceMM)) ||
			(near(p.WidthMM, h, toleranceMM) && near(p.HeightMM, w, toleranceMM)) {
			return ps.Name
		}
	}
	return ""
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
