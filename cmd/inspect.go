package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/print-layout/internal/export"
)

// pageSizeToleranceMM absorbs rounding of pixel to point conversion.
const pageSizeToleranceMM = 1.0

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Show the page sizes of a PDF",
	Long: `Read a PDF back and list the physical size of every page, e.g. to
check an export before sending it to the printer.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("json", false, "Output as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	f, err := os.Open(filepath.Clean(args[0]))
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pages, err := export.Inspect(f)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(pages)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PAGE\tWIDTH (mm)\tHEIGHT (mm)\tSIZE")
	fmt.Fprintln(w, "----\t----------\t-----------\t----")

	for _, p := range pages {
		size := p.PageSizeName(pageSizeToleranceMM)
		if size == "" {
			size = "-"
		}
		fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%s\n", p.Number, p.WidthMM, p.HeightMM, size)
	}

	w.Flush()

	fmt.Printf("\nTotal: %d pages\n", len(pages))

	return nil
}
