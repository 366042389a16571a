package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "print-layout",
	Short: "Arrange photos onto printable pages",
	Long: `Print Layout arranges photos onto fixed-size printable pages (A3/A4/A5),
either as a rows x cols grid, as a flyer repeating one image, or as a
collage using a named template. Layouts can be printed as JSON, exported
to PDF, or served over an HTTP API.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
