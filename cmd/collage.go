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

var collageCmd = &cobra.Command{
	Use:   "collage [images...]",
	Short: "Place images into a collage template",
	Long: `Place images into the slots of a collage template. Templates exist
for 3 to 10 images; larger selections use a generated random layout.
Without --template the first template for the image count is used.

Examples:
  print-layout collage a.jpg b.jpg c.jpg d.jpg
  print-layout collage --template "4 Grid 2x2" --orientation landscape --pdf collage.pdf *.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCollage,
}

func init() {
	rootCmd.AddCommand(collageCmd)

	collageCmd.Flags().String("template", "", "Template id or name")
	collageCmd.Flags().String("page", "A4", "Page size (A3, A4, A5)")
	collageCmd.Flags().String("orientation", "portrait", "Page orientation (portrait, landscape)")
	addOutputFlags(collageCmd)
}

func runCollage(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")
	pdfPath := mustGetString(cmd, "pdf")
	templateID := mustGetString(cmd, "template")

	cfg := config.Load()
	minDPI := floatOr(cmd, "min-dpi", cfg.Export.MinDPI)

	size, err := layout.PageSizeByName(stringOr(cmd, "page", cfg.Layout.CollagePageSize))
	if err != nil {
		return err
	}
	orientation, err := layout.ParseOrientation(stringOr(cmd, "orientation", cfg.Layout.Orientation))
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	// Fail before reading any file when no template fits the count.
	if _, err := catalog.Choose(templateID, len(args)); err != nil {
		if errors.Is(err, layout.ErrNoLayoutAvailable) {
			return fmt.Errorf("%w: collages need at least 3 images", err)
		}
		return err
	}

	images, err := loadImages(cmd.Context(), cfg, args, jsonOutput)
	if err != nil {
		return err
	}

	cc := layout.CollageConfig{TemplateID: templateID, PageSize: size, Orientation: orientation}
	page, err := layout.BuildCollage(cc, catalog, images, nil)
	if err != nil {
		return fmt.Errorf("failed to build collage: %w", err)
	}
	warnings := layout.ValidateCollage(page, minDPI)

	if pdfPath != "" {
		if err := writePDFFile(pdfPath, func(w io.Writer) error {
			return export.WriteCollagePDF(w, page, cfg.Export.Options())
		}); err != nil {
			return err
		}
	}

	if jsonOutput {
		return outputJSON(collageOutput{Page: page, Warnings: warnings})
	}

	printCollage(os.Stdout, page)
	printWarnings(os.Stdout, warnings)
	if pdfPath != "" {
		fmt.Printf("\nPDF written to %s\n", pdfPath)
	}
	return nil
}
