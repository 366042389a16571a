package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/kozaktomas/print-layout/internal/layout"
)

func outputJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// gridOutput is the JSON document printed by grid and flyer.
type gridOutput struct {
	PageSize layout.PageSize            `json:"page_size"`
	Rows     int                        `json:"rows"`
	Cols     int                        `json:"cols"`
	Pages    []layout.Page              `json:"pages"`
	Warnings []layout.ValidationWarning `json:"warnings"`
}

// collageOutput is the JSON document printed by collage.
type collageOutput struct {
	Page     layout.CollagePage         `json:"page"`
	Warnings []layout.ValidationWarning `json:"warnings"`
}

func printGridPages(w io.Writer, pages []layout.Page) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tCELL\tIMAGE\tX\tY\tWIDTH\tHEIGHT\tROTATED")
	fmt.Fprintln(tw, "----\t----\t-----\t-\t-\t-----\t------\t-------")
	for _, page := range pages {
		for _, pi := range page.Placements {
			p := pi.Placement
			fmt.Fprintf(tw, "%d\t%d,%d\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%v\n",
				page.Index+1, pi.Row, pi.Col, imageName(pi.Image), p.X, p.Y, p.Width, p.Height, p.Rotated)
		}
	}
	tw.Flush()
}

func printCollage(w io.Writer, page layout.CollagePage) {
	fmt.Fprintf(w, "Template: %s (%s), page %dx%d\n\n", page.Template.Name, page.Template.ID, page.Width, page.Height)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tIMAGE\tX\tY\tWIDTH\tHEIGHT")
	fmt.Fprintln(tw, "----\t-----\t-\t-\t-----\t------")
	for _, s := range page.Slots {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\n",
			s.SlotID, imageName(s.Image), s.Rect.X, s.Rect.Y, s.Rect.Width, s.Rect.Height)
	}
	tw.Flush()
}

func printWarnings(w io.Writer, warnings []layout.ValidationWarning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "\nWarnings: %d\n", len(warnings))
	for _, warn := range warnings {
		fmt.Fprintf(w, "  - [%s] page %d slot %d: %s\n", warn.Severity, warn.PageNumber, warn.SlotIndex+1, warn.Message)
	}
}

// writePDFFile renders into path, removing the file if rendering fails.
func writePDFFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
