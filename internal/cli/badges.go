package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memoir-app/memoir/internal/daemon"
)

var badgesAll bool

func init() {
	badgesCmd.Flags().BoolVarP(&badgesAll, "all", "a", false, "include locked badges with progress")
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Show earned badges",
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	// Pick up anything the latest sessions earned.
	if _, err := d.Badges.Sync(); err != nil {
		return err
	}

	progress, err := d.Badges.Progress()
	if err != nil {
		return err
	}

	earned := 0
	for _, p := range progress {
		if p.Earned {
			earned++
		}
	}
	fmt.Printf("Earned %d of %d badges\n\n", earned, len(progress))

	for _, p := range progress {
		switch {
		case p.Earned:
			when := ""
			if p.EarnedAt != nil {
				when = p.EarnedAt.Format("2006-01-02")
			}
			fmt.Printf("  %s %-18s %s  (earned %s)\n", p.Badge.Icon, p.Badge.Name, p.Badge.Description, when)
		case badgesAll:
			fmt.Printf("  🔒 %-18s %s  (%.0f%%)\n", p.Badge.Name, p.Badge.Description, p.Percent)
		}
	}
	return nil
}
