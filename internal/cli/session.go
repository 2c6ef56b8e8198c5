package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memoir-app/memoir/internal/daemon"
	"github.com/memoir-app/memoir/internal/domain"
)

var (
	sessionMinutes  int
	sessionSubject  string
	sessionNote     string
	sessionPauses   int
	sessionInactive int
	sessionLimit    int
)

func init() {
	sessionAddCmd.Flags().IntVarP(&sessionMinutes, "minutes", "m", 0, "session length in minutes (required)")
	sessionAddCmd.Flags().StringVarP(&sessionSubject, "subject", "s", "", "subject studied")
	sessionAddCmd.Flags().StringVar(&sessionNote, "note", "", "optional note")
	sessionAddCmd.Flags().IntVar(&sessionPauses, "pauses", 0, "number of pauses")
	sessionAddCmd.Flags().IntVar(&sessionInactive, "distractions", 0, "number of inactivity events")
	sessionAddCmd.MarkFlagRequired("minutes")

	sessionListCmd.Flags().IntVarP(&sessionLimit, "limit", "n", 10, "number of sessions to show")

	sessionCmd.AddCommand(sessionAddCmd)
	sessionCmd.AddCommand(sessionListCmd)
	rootCmd.AddCommand(sessionCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Record and list study sessions",
}

var sessionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a completed study session",
	RunE:  runSessionAdd,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent study sessions",
	RunE:  runSessionList,
}

func runSessionAdd(cmd *cobra.Command, args []string) error {
	if sessionMinutes <= 0 {
		return fmt.Errorf("minutes must be positive")
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	score := domain.ComputeFocusScore(sessionPauses, sessionInactive)
	sess, err := d.Sessions.Record(domain.Session{
		DurationSeconds: sessionMinutes * 60,
		Subject:         sessionSubject,
		Note:            sessionNote,
		PauseCount:      sessionPauses,
		InactiveCount:   sessionInactive,
		FocusScore:      score,
		Productivity:    domain.ProductivityFor(score),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %s of %s (focus %d%%, %s)\n",
		domain.FormatDuration(sess.DurationSeconds), sess.Subject,
		sess.FocusScore, sess.Productivity)

	unlocked, err := d.Badges.Sync()
	if err != nil {
		return err
	}
	for _, b := range unlocked {
		fmt.Printf("  %s Badge unlocked: %s — %s\n", b.Icon, b.Name, b.Description)
	}
	return nil
}

func runSessionList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	sessions, err := d.Sessions.Recent(sessionLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("%-12s %-16s %-8s %-6s %s\n", "DATE", "SUBJECT", "LENGTH", "FOCUS", "RATING")
	for _, s := range sessions {
		fmt.Printf("%-12s %-16s %-8s %-6s %s\n",
			s.Date, s.Subject, domain.FormatDuration(s.DurationSeconds),
			fmt.Sprintf("%d%%", s.FocusScore), s.Productivity)
	}
	return nil
}
