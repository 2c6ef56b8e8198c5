// Package cli implements the Memoir command-line interface using Cobra.
// Each subcommand maps to one dashboard capability (stats, badges,
// goals, insights, subjects) plus the serve daemon.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "memoir",
	Short: "Memoir — Track your study time, streaks, and focus",
	Long: `Memoir is a local-first study tracker.
Record timed study sessions and derive streaks, badges, goal progress,
and insights from them. All data stays on your machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
