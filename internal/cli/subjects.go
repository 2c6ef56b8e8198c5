package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memoir-app/memoir/internal/daemon"
	"github.com/memoir-app/memoir/internal/domain"
)

var subjectGoalHours float64

func init() {
	subjectsGoalCmd.Flags().Float64Var(&subjectGoalHours, "hours", domain.DefaultSubjectGoalHours, "goal in hours")
	subjectsCmd.AddCommand(subjectsGoalCmd)
	rootCmd.AddCommand(subjectsCmd)
}

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "Show per-subject progress",
	RunE:  runSubjects,
}

var subjectsGoalCmd = &cobra.Command{
	Use:   "goal SUBJECT",
	Short: "Set a subject's hour goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectsGoal,
}

func runSubjects(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	progress, err := d.Subjects.Progress()
	if err != nil {
		return err
	}
	if len(progress) == 0 {
		fmt.Println("No subjects yet. Record a session first.")
		return nil
	}

	fmt.Printf("%-16s %-10s %-9s %-7s %s\n", "SUBJECT", "STUDIED", "SESSIONS", "FOCUS", "GOAL")
	for _, p := range progress {
		fmt.Printf("%-16s %-10s %-9d %-7s %.0f%% of %.0fh\n",
			p.Subject.Name, domain.FormatDuration(p.StudiedSeconds), p.SessionCount,
			fmt.Sprintf("%.0f%%", p.AvgFocus), p.Percentage, p.Subject.GoalHours)
	}
	return nil
}

func runSubjectsGoal(cmd *cobra.Command, args []string) error {
	if subjectGoalHours < 0 {
		return fmt.Errorf("hours must not be negative")
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Subjects.SetGoal(args[0], subjectGoalHours); err != nil {
		return err
	}
	fmt.Printf("Goal for %s set to %.1fh\n", args[0], subjectGoalHours)
	return nil
}
