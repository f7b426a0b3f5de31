// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "readme-stats",
	Short: "Dynamically generated GitHub stats cards for your READMEs.",
	Long: `readme-stats renders SVG cards (user stats, pinned repositories,
top languages and WakaTime summaries) from the GitHub and WakaTime APIs.
Run "serve" to expose them over HTTP, or "render" to write a single card.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
