package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/print-layout/internal/config"
	"github.com/kozaktomas/print-layout/internal/constants"
	"github.com/kozaktomas/print-layout/internal/layout"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List collage templates",
	Long: `List the collage templates. With --count only the templates
selectable for that many images are shown.`,
	Args: cobra.NoArgs,
	RunE: runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)

	templatesCmd.Flags().Int("count", 0, "Only show templates for this many images")
	templatesCmd.Flags().Bool("json", false, "Output as JSON")
}

func runTemplates(cmd *cobra.Command, args []string) error {
	count := mustGetInt(cmd, "count")
	jsonOutput := mustGetBool(cmd, "json")

	if cmd.Flags().Changed("count") {
		if err := validateTemplateCount(count); err != nil {
			return err
		}
	}

	catalog, err := loadCatalog(config.Load())
	if err != nil {
		return err
	}

	var templates []layout.Template
	if cmd.Flags().Changed("count") {
		templates = catalog.Selectable(count)
	} else {
		templates = catalog.All()
	}

	if jsonOutput {
		if templates == nil {
			templates = []layout.Template{}
		}
		return outputJSON(templates)
	}

	if len(templates) == 0 {
		fmt.Println("No layout available.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tIMAGES")
	fmt.Fprintln(w, "--\t----\t------")

	for _, t := range templates {
		fmt.Fprintf(w, "%s\t%s\t%d\n", t.ID, t.Name, t.ImageCount)
	}

	w.Flush()

	fmt.Printf("\nTotal: %d templates\n", len(templates))

	return nil
}

// validateTemplateCount bounds --count to the image counts a collage supports.
func validateTemplateCount(count int) error {
	if count < 0 || count > constants.MaxImagesPerRequest {
		return fmt.Errorf("--count must be between 0 and %d, got %d", constants.MaxImagesPerRequest, count)
	}
	return nil
}
