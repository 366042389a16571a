package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/print-layout/internal/config"
	"github.com/kozaktomas/print-layout/internal/export"
	"github.com/kozaktomas/print-layout/internal/layout"
)

var gridCmd = &cobra.Command{
	Use:   "grid [images...]",
	Short: "Lay images out in a rows x cols grid over as many pages as needed",
	Long: `Lay images out in a rows x cols grid. Images are placed in order,
row by row, and spill onto further pages when a page is full. Landscape
images are rotated to make the most of portrait cells.

Examples:
  # Default A3 page with a 2x4 grid
  print-layout grid photos/*.jpg

  # A4 page, 3x3 grid, stretched, exported to PDF
  print-layout grid --page A4 --rows 3 --cols 3 --stretch --pdf out.pdf photos/*.jpg

  # Output the layout as JSON
  print-layout grid --json photos/*.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)
	addGridFlags(gridCmd)
}

// gridConfigFromFlags merges flags over the environment configuration.
func gridConfigFromFlags(cmd *cobra.Command, cfg *config.Config) (layout.GridConfig, error) {
	size, err := layout.PageSizeByName(stringOr(cmd, "page", cfg.Layout.PageSize))
	if err != nil {
		return layout.GridConfig{}, err
	}
	gc := layout.GridConfig{
		PageSize: size,
		Rows:     intOr(cmd, "rows", cfg.Layout.Rows),
		Cols:     intOr(cmd, "cols", cfg.Layout.Cols),
		Stretch:  boolOr(cmd, "stretch", cfg.Layout.Stretch),
	}
	if err := gc.Validate(); err != nil {
		return layout.GridConfig{}, err
	}
	return gc, nil
}

func runGrid(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")
	pdfPath := mustGetString(cmd, "pdf")

	cfg := config.Load()
	minDPI := floatOr(cmd, "min-dpi", cfg.Export.MinDPI)

	gc, err := gridConfigFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	images, err := loadImages(cmd.Context(), cfg, args, jsonOutput)
	if err != nil {
		return err
	}

	pages, err := layout.BuildGridPages(gc, images)
	if err != nil {
		return fmt.Errorf("failed to build layout: %w", err)
	}
	if len(pages) == 0 {
		return errors.New("no images to lay out")
	}
	warnings := layout.ValidatePages(pages, minDPI)

	if pdfPath != "" {
		if err := writePDFFile(pdfPath, func(w io.Writer) error {
			return export.WriteGridPDF(w, pages, cfg.Export.Options())
		}); err != nil {
			return err
		}
	}

	if jsonOutput {
		return outputJSON(gridOutput{PageSize: gc.PageSize, Rows: gc.Rows, Cols: gc.Cols, Pages: pages, Warnings: warnings})
	}

	fmt.Printf("Grid %dx%d on %s: %d images on %d pages (cell %dx%d)\n\n",
		gc.Rows, gc.Cols, gc.PageSize.Name, len(images), len(pages), pages[0].Cell.Width, pages[0].Cell.Height)
	printGridPages(os.Stdout, pages)
	printWarnings(os.Stdout, warnings)
	if pdfPath != "" {
		fmt.Printf("\nPDF written to %s\n", pdfPath)
	}
	return nil
}
