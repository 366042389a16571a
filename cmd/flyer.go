package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/print-layout/internal/config"
	"github.com/kozaktomas/print-layout/internal/export"
	"github.com/kozaktomas/print-layout/internal/layout"
)

var flyerCmd = &cobra.Command{
	Use:   "flyer <image>",
	Short: "Fill one page with copies of a single image",
	Long: `Fill every cell of a single page with the same image, e.g. for
printing flyers or stickers.

Examples:
  print-layout flyer --page A4 --rows 4 --cols 2 --pdf flyers.pdf poster.png`,
	Args: cobra.ExactArgs(1),
	RunE: runFlyer,
}

func init() {
	rootCmd.AddCommand(flyerCmd)
	addGridFlags(flyerCmd)
}

func runFlyer(cmd *cobra.Command, args []string) error {
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

	page, err := layout.BuildFlyerPage(gc, images[0])
	if err != nil {
		return fmt.Errorf("failed to build layout: %w", err)
	}
	pages := []layout.Page{page}
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

	fmt.Printf("Flyer %dx%d on %s: %d copies of %s\n\n", gc.Rows, gc.Cols, gc.PageSize.Name, len(page.Placements), imageName(images[0]))
	printGridPages(os.Stdout, pages)
	printWarnings(os.Stdout, warnings)
	if pdfPath != "" {
		fmt.Printf("\nPDF written to %s\n", pdfPath)
	}
	return nil
}
