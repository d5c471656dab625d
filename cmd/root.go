package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var envFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Yukesshwaran's portfolio as a web site and a terminal UI",
	Long: `portfolio serves the single-page portfolio over HTTP with an HTMX front end,
or renders the same page in the terminal.

Both front ends share the scroll tracker, the command console, the project filter
and the resume download status.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file read before the environment (skipped when missing)")
}

// getEnvFile returns the dotenv file path.
func getEnvFile() (result string) {
	result = envFile
	return result
}
