package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// mustGetBool gets a bool flag value or panics if the flag doesn't exist.
// This is appropriate for flags defined in init() - errors indicate programming bugs.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetInt gets an int flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetString gets a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetFloat64 gets a float64 flag value or panics if the flag doesn't exist.
func mustGetFloat64(cmd *cobra.Command, name string) float64 {
	val, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// stringOr returns the flag value, or def when the flag was not set.
func stringOr(cmd *cobra.Command, name, def string) string {
	if cmd.Flags().Changed(name) {
		return mustGetString(cmd, name)
	}
	return def
}

// intOr returns the flag value, or def when the flag was not set.
func intOr(cmd *cobra.Command, name string, def int) int {
	if cmd.Flags().Changed(name) {
		return mustGetInt(cmd, name)
	}
	return def
}

// boolOr returns the flag value, or def when the flag was not set.
func boolOr(cmd *cobra.Command, name string, def bool) bool {
	if cmd.Flags().Changed(name) {
		return mustGetBool(cmd, name)
	}
	return def
}

// floatOr returns the flag value, or def when the flag was not set.
func floatOr(cmd *cobra.Command, name string, def float64) float64 {
	if cmd.Flags().Changed(name) {
		return mustGetFloat64(cmd, name)
	}
	return def
}

// addGridFlags registers the flags shared by grid and flyer.
func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().String("page", "A3", "Page size (A3, A4, A5)")
	cmd.Flags().Int("rows", 2, "Number of grid rows (2-6)")
	cmd.Flags().Int("cols", 4, "Number of grid columns (2-6)")
	cmd.Flags().Bool("stretch", false, "Stretch images to fill their cells")
	addOutputFlags(cmd)
}

// addOutputFlags registers the output flags shared by all layout commands.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().String("pdf", "", "Write the layout to this PDF file")
	cmd.Flags().Float64("min-dpi", 150, "Warn about images printed below this resolution")
}
