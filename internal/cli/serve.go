package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/memoir-app/memoir/internal/daemon"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Memoir daemon (HTTP API for the web dashboard)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	return d.Serve(context.Background())
}
