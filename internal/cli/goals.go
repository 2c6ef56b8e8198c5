package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memoir-app/memoir/internal/daemon"
	"github.com/memoir-app/memoir/internal/domain"
)

var (
	goalDaily   float64
	goalWeekly  float64
	goalMonthly float64
	goalTotal   float64
)

func init() {
	goalsSetCmd.Flags().Float64Var(&goalDaily, "daily", 0, "daily goal in hours")
	goalsSetCmd.Flags().Float64Var(&goalWeekly, "weekly", 0, "weekly goal in hours")
	goalsSetCmd.Flags().Float64Var(&goalMonthly, "monthly", 0, "monthly goal in hours")
	goalsSetCmd.Flags().Float64Var(&goalTotal, "total", 0, "all-time goal in hours")

	goalsCmd.AddCommand(goalsSetCmd)
	rootCmd.AddCommand(goalsCmd)
}

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show goal progress",
	RunE:  runGoals,
}

var goalsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update goal targets (unset flags keep their current value)",
	RunE:  runGoalsSet,
}

func runGoals(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	progress, err := d.Goals.Progress()
	if err != nil {
		return err
	}
	for _, g := range progress {
		bar := progressBar(g.Percentage, 20)
		fmt.Printf("%-8s %s %5.1f%%  %s / %s\n", g.Period, bar, g.Percentage,
			domain.FormatDuration(g.ActualSeconds), domain.FormatDuration(g.TargetSeconds))
	}
	return nil
}

func runGoalsSet(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goals, err := d.Goals.Get()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("daily") {
		goals.DailyHours = goalDaily
	}
	if cmd.Flags().Changed("weekly") {
		goals.WeeklyHours = goalWeekly
	}
	if cmd.Flags().Changed("monthly") {
		goals.MonthlyHours = goalMonthly
	}
	if cmd.Flags().Changed("total") {
		goals.TotalHours = goalTotal
	}

	if err := d.Goals.Set(goals); err != nil {
		return err
	}
	fmt.Printf("Goals updated: %.1fh daily, %.1fh weekly, %.1fh monthly, %.1fh total\n",
		goals.DailyHours, goals.WeeklyHours, goals.MonthlyHours, goals.TotalHours)
	return nil
}

// progressBar renders a fixed-width text bar for a 0-100 percentage.
func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}
