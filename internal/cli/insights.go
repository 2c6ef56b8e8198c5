package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memoir-app/memoir/internal/daemon"
)

func init() {
	rootCmd.AddCommand(insightsCmd)
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show personalized study insights",
	RunE:  runInsights,
}

func runInsights(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	insights, err := d.Summary.Insights()
	if err != nil {
		return err
	}
	if len(insights) == 0 {
		fmt.Println("No insights yet. Record a few sessions first.")
		return nil
	}
	for _, s := range insights {
		fmt.Printf("%s %s\n", s.Icon, s.Text)
	}
	return nil
}
