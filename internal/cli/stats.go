package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memoir-app/memoir/internal/daemon"
	"github.com/memoir-app/memoir/internal/domain"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the study dashboard summary",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	sum, err := d.Summary.Build()
	if err != nil {
		return err
	}

	fmt.Printf("Streak:      %d day(s) (longest %d)\n", sum.Streak.Current, sum.Streak.Longest)
	fmt.Printf("Total:       %s over %d session(s) on %d day(s)\n",
		domain.FormatDuration(sum.TotalSeconds), sum.TotalSessions, sum.StudyDays)
	fmt.Printf("Avg focus:   %.0f%%\n", sum.AvgFocus)
	switch {
	case sum.WeekDeltaMin > 0:
		fmt.Printf("This week:   up %d min vs last week\n", sum.WeekDeltaMin)
	case sum.WeekDeltaMin < 0:
		fmt.Printf("This week:   down %d min vs last week\n", -sum.WeekDeltaMin)
	}

	fmt.Println("\nGoals:")
	for _, g := range sum.Goals {
		fmt.Printf("  %-8s %s / %s (%.0f%%)\n", g.Period,
			domain.FormatDuration(g.ActualSeconds),
			domain.FormatDuration(g.TargetSeconds), g.Percentage)
	}

	if len(sum.RecentBadges) > 0 {
		fmt.Println("\nRecent badges:")
		for _, b := range sum.RecentBadges {
			fmt.Printf("  %s %s\n", b.Badge.Icon, b.Badge.Name)
		}
	}
	return nil
}
