package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/print-layout/internal/constants"
	"github.com/kozaktomas/print-layout/internal/layout"
)

// Build metadata variables, set by -ldflags at compile time.
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

type versionInfo struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	Built     string   `json:"built"`
	PrintDPI  int      `json:"print_dpi"`
	PageSizes []string `json:"page_sizes"`
	Templates int      `json:"templates"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := versionInfo{
			Version:   Version,
			Commit:    CommitSHA,
			Built:     BuildDate,
			PrintDPI:  constants.PrintDPI,
			Templates: len(layout.DefaultCatalog().All()),
		}
		for _, ps := range layout.PageSizes() {
			info.PageSizes = append(info.PageSizes, ps.Name)
		}

		if mustGetBool(cmd, "json") {
			return outputJSON(info)
		}
		fmt.Printf("print-layout %s\n", info.Version)
		fmt.Printf("  Commit:     %s\n", info.Commit)
		fmt.Printf("  Built:      %s\n", info.Built)
		fmt.Printf("  Pages:      %s at %d DPI\n", strings.Join(info.PageSizes, ", "), info.PrintDPI)
		fmt.Printf("  Templates:  %d built-in\n", info.Templates)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("json", false, "Output as JSON")
}
