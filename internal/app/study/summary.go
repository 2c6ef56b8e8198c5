package study

import (
	"time"

	"github.com/memoir-app/memoir/internal/app/engine"
	"github.com/memoir-app/memoir/internal/domain"
	"github.com/memoir-app/memoir/internal/infra/metrics"
	"github.com/memoir-app/memoir/internal/infra/sqlite"
)

// Summary is the dashboard payload: every derived figure computed in
// one pass over the stored sessions.
type Summary struct {
	Streak        domain.StreakState     `json:"streak"`
	Goals         []domain.GoalProgress  `json:"goals"`
	Insights      []domain.Suggestion    `json:"insights"`
	RecentBadges  []domain.BadgeProgress `json:"recentBadges"`
	TotalSeconds  int                    `json:"totalSeconds"`
	TotalSessions int                    `json:"totalSessions"`
	StudyDays     int                    `json:"studyDays"`
	AvgFocus      float64                `json:"avgFocus"`
	AvgSessionMin float64                `json:"avgSessionMinutes"`
	WeekDeltaMin  int                    `json:"weekDeltaMinutes"` // this week vs last, minutes
}

// SummaryService assembles the dashboard summary.
type SummaryService struct {
	db     *sqlite.DB
	userID string
	goals  *GoalService
	badges *BadgeService
	now    func() time.Time
}

// NewSummaryService creates a summary service for one user.
func NewSummaryService(db *sqlite.DB, userID string, goals *GoalService, badges *BadgeService) *SummaryService {
	return &SummaryService{db: db, userID: userID, goals: goals, badges: badges, now: time.Now}
}

// Build derives the full summary. Sessions are bucketed once; every
// figure comes from that snapshot.
func (s *SummaryService) Build() (*Summary, error) {
	started := time.Now()
	defer func() {
		metrics.DeriveLatency.Observe(time.Since(started).Seconds())
	}()

	sessions, err := s.db.ListSessions(s.userID)
	if err != nil {
		return nil, err
	}
	goalSet, err := s.goals.Get()
	if err != nil {
		return nil, err
	}

	now := s.now()
	sn := engine.NewSnapshot(sessions, now)

	sum := &Summary{
		Streak:        sn.Streak(),
		Insights:      sn.Insights(),
		TotalSeconds:  sn.TotalSeconds(),
		TotalSessions: len(sessions),
		StudyDays:     sn.StudyDays(),
		WeekDeltaMin:  weekDeltaMinutes(sessions, now),
	}
	for _, period := range domain.Periods() {
		sum.Goals = append(sum.Goals, sn.GoalProgress(period, goalSet.TargetSeconds(period)))
	}
	if len(sessions) > 0 {
		focusSum := 0
		for _, sess := range sessions {
			focusSum += sess.FocusScore
		}
		sum.AvgFocus = float64(focusSum) / float64(len(sessions))
		sum.AvgSessionMin = float64(sum.TotalSeconds) / float64(len(sessions)) / 60
	}

	earned, err := s.badges.Earned()
	if err != nil {
		return nil, err
	}
	if len(earned) > 3 {
		earned = earned[:3]
	}
	sum.RecentBadges = earned

	metrics.CurrentStreak.Set(float64(sum.Streak.Current))
	metrics.LongestStreak.Set(float64(sum.Streak.Longest))
	return sum, nil
}

// Streak derives just the streak figures.
func (s *SummaryService) Streak() (domain.StreakState, error) {
	sessions, err := s.db.ListSessions(s.userID)
	if err != nil {
		return domain.StreakState{}, err
	}
	return engine.Streak(sessions, s.now()), nil
}

// Insights derives just the ranked suggestion list.
func (s *SummaryService) Insights() ([]domain.Suggestion, error) {
	sessions, err := s.db.ListSessions(s.userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return engine.GenerateInsights(sessions, engine.Streak(sessions, now), now), nil
}

// weekDeltaMinutes compares study time in the trailing 7 days against
// the 7 days before that.
func weekDeltaMinutes(sessions []domain.Session, now time.Time) int {
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	thisWeek, lastWeek := 0, 0
	for _, s := range sessions {
		eff := s.EffectiveTime()
		if eff.IsZero() || eff.After(now) {
			continue
		}
		switch {
		case !eff.Before(weekAgo):
			thisWeek += s.DurationSeconds
		case !eff.Before(twoWeeksAgo):
			lastWeek += s.DurationSeconds
		}
	}
	return (thisWeek - lastWeek) / 60
}
