package engine

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/memoir-app/memoir/internal/domain"
)

func timedSession(at time.Time, seconds, focus int, subject string) domain.Session {
	return domain.Session{
		ID:              "t-" + at.Format(time.RFC3339),
		Date:            DayKey(at),
		Timestamp:       at.UnixMilli(),
		DurationSeconds: seconds,
		Subject:         subject,
		FocusScore:      focus,
		Productivity:    domain.ProductivityFor(focus),
	}
}

func findInsight(list []domain.Suggestion, substr string) (domain.Suggestion, bool) {
	for _, s := range list {
		if strings.Contains(s.Text, substr) {
			return s, true
		}
	}
	return domain.Suggestion{}, false
}

func TestGenerateInsightsEmpty(t *testing.T) {
	if got := GenerateInsights(nil, domain.StreakState{}, localDate(2024, 1, 10)); got != nil {
		t.Fatalf("insights for empty history = %v, want nil", got)
	}
}

func TestGenerateInsightsSortedByPriority(t *testing.T) {
	now := localDate(2024, 1, 14)
	var sessions []domain.Session
	for d := 13; d >= 1; d-- {
		sessions = append(sessions,
			timedSession(now.AddDate(0, 0, -d), 1860, 85, "Math"))
	}
	got := GenerateInsights(sessions, domain.StreakState{Current: 5}, now)
	if len(got) == 0 {
		t.Fatal("expected insights, got none")
	}
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Priority < got[j].Priority }) {
		t.Fatalf("insights not sorted by priority: %+v", got)
	}
}

func TestWeekOverWeekInsight(t *testing.T) {
	now := localDate(2024, 1, 14)
	sessions := []domain.Session{
		timedSession(now.AddDate(0, 0, -2), 3600, 85, "Math"),  // this week, 60 min
		timedSession(now.AddDate(0, 0, -10), 1800, 85, "Math"), // last week, 30 min
	}
	s, ok := findInsight(GenerateInsights(sessions, domain.StreakState{}, now), "more than last week")
	if !ok {
		t.Fatal("expected a week-over-week insight")
	}
	if s.Priority != priHigh {
		t.Errorf("priority = %d, want %d", s.Priority, priHigh)
	}
	if !strings.Contains(s.Text, "30 min more") {
		t.Errorf("text = %q, want 30 min delta", s.Text)
	}
}

func TestWeekOverWeekSilentWithoutBaseline(t *testing.T) {
	now := localDate(2024, 1, 14)
	sessions := []domain.Session{
		timedSession(now.AddDate(0, 0, -2), 3600, 85, "Math"),
	}
	got := GenerateInsights(sessions, domain.StreakState{}, now)
	if _, ok := findInsight(got, "last week"); ok {
		t.Fatal("week comparison should stay silent with no prior-week data")
	}
}

func TestPeakHourInsight(t *testing.T) {
	now := localDate(2024, 1, 14)
	morning := time.Date(2024, 1, 12, 9, 0, 0, 0, time.Local)
	evening := time.Date(2024, 1, 12, 20, 0, 0, 0, time.Local)
	sessions := []domain.Session{
		timedSession(morning, 1800, 95, "Math"),
		timedSession(morning.AddDate(0, 0, -1), 1800, 90, "Math"),
		timedSession(evening, 1800, 40, "Math"),
	}
	s, ok := findInsight(GenerateInsights(sessions, domain.StreakState{}, now), "Best focus time")
	if !ok {
		t.Fatal("expected a peak-hour insight")
	}
	if !strings.Contains(s.Text, "9:00") {
		t.Errorf("text = %q, want 9:00 as peak hour", s.Text)
	}
}

func TestBadgeProximityInsight(t *testing.T) {
	now := localDate(2024, 1, 14)
	sessions := []domain.Session{timedSession(now, 1860, 85, "Math")}

	s, ok := findInsight(GenerateInsights(sessions, domain.StreakState{Current: 2}, now), "Streak Starter")
	if !ok {
		t.Fatal("expected a Streak Starter nudge at streak 2")
	}
	if !strings.Contains(s.Text, "1 more") {
		t.Errorf("text = %q, want 1 day remaining", s.Text)
	}

	got := GenerateInsights(sessions, domain.StreakState{Current: 5}, now)
	if _, ok := findInsight(got, "Streak Starter"); ok {
		t.Error("Streak Starter nudge should not fire at streak 5")
	}
	if _, ok := findInsight(got, "Streak Master"); !ok {
		t.Error("expected a Streak Master nudge at streak 5")
	}
}

func TestLowFocusInsight(t *testing.T) {
	now := localDate(2024, 1, 14)
	sessions := []domain.Session{
		timedSession(now.AddDate(0, 0, -1), 1800, 30, "Math"),
		timedSession(now.AddDate(0, 0, -2), 1800, 40, "Math"),
	}
	got := GenerateInsights(sessions, domain.StreakState{}, now)
	s, ok := findInsight(got, "shorter sessions")
	if !ok {
		t.Fatal("expected a low-focus insight at 35% average")
	}
	if s.Priority != priHigh {
		t.Errorf("priority = %d, want %d", s.Priority, priHigh)
	}
	if _, ok := findInsight(got, "Excellent focus"); ok {
		t.Error("high and low focus insights must be mutually exclusive")
	}
}

func TestWeakestSubjectInsight(t *testing.T) {
	now := localDate(2024, 1, 14)
	sessions := []domain.Session{
		timedSession(now.AddDate(0, 0, -1), 1800, 90, "Math"),
		timedSession(now.AddDate(0, 0, -2), 1800, 90, "Math"),
		timedSession(now.AddDate(0, 0, -3), 1800, 40, "History"),
		timedSession(now.AddDate(0, 0, -4), 1800, 40, "History"),
	}
	s, ok := findInsight(GenerateInsights(sessions, domain.StreakState{}, now), "History")
	if !ok {
		t.Fatal("expected a weak-subject insight for History")
	}
	if !strings.Contains(s.Text, "40%") {
		t.Errorf("text = %q, want the 40%% average", s.Text)
	}
}

func TestWeakestSubjectNeedsTwoSessions(t *testing.T) {
	now := localDate(2024, 1, 14)
	sessions := []domain.Session{
		timedSession(now.AddDate(0, 0, -1), 1800, 90, "Math"),
		timedSession(now.AddDate(0, 0, -2), 1800, 90, "Math"),
		timedSession(now.AddDate(0, 0, -3), 1800, 10, "History"), // single bad day
	}
	if _, ok := findInsight(GenerateInsights(sessions, domain.StreakState{}, now), "History"); ok {
		t.Fatal("one session must not condemn a subject")
	}
}

func TestSubjectBalanceInsight(t *testing.T) {
	now := localDate(2024, 1, 14)
	sessions := []domain.Session{
		timedSession(now.AddDate(0, 0, -1), 3300, 85, "Math"),    // 55%
		timedSession(now.AddDate(0, 0, -2), 2700, 85, "History"), // 45%
	}
	s, ok := findInsight(GenerateInsights(sessions, domain.StreakState{}, now), "of your study time")
	if !ok {
		t.Fatal("expected a subject-balance insight with two subjects")
	}
	if !strings.Contains(s.Text, "Math") || !strings.Contains(s.Text, "55%") {
		t.Errorf("text = %q, want Math at 55%%", s.Text)
	}
	if s.Priority != priLow {
		t.Errorf("priority = %d, want %d", s.Priority, priLow)
	}
}

func TestSubjectBalanceNeedsTwoSubjects(t *testing.T) {
	now := localDate(2024, 1, 14)
	sessions := []domain.Session{
		timedSession(now.AddDate(0, 0, -1), 3600, 85, "Math"),
		timedSession(now.AddDate(0, 0, -2), 1800, 85, "Math"),
	}
	if _, ok := findInsight(GenerateInsights(sessions, domain.StreakState{}, now), "of your study time"); ok {
		t.Fatal("balance insight must stay silent with a single subject")
	}
}

func TestConsistencyEncouragementNeedsFourDays(t *testing.T) {
	now := localDate(2024, 1, 14)

	// 2 distinct days over 10 elapsed days: too little history to scold.
	sparse := []domain.Session{
		timedSession(now.AddDate(0, 0, -9), 1800, 85, "Math"),
		timedSession(now.AddDate(0, 0, -5), 1800, 85, "Math"),
	}
	if _, ok := findInsight(GenerateInsights(sparse, domain.StreakState{}, now), "marathons"); ok {
		t.Fatal("consistency encouragement fired with only 2 distinct days")
	}

	// 4 distinct days over 10 elapsed days: 40% ratio, encouragement due.
	spread := []domain.Session{
		timedSession(now.AddDate(0, 0, -9), 1800, 85, "Math"),
		timedSession(now.AddDate(0, 0, -7), 1800, 85, "Math"),
		timedSession(now.AddDate(0, 0, -5), 1800, 85, "Math"),
		timedSession(now.AddDate(0, 0, -3), 1800, 85, "Math"),
	}
	s, ok := findInsight(GenerateInsights(spread, domain.StreakState{}, now), "marathons")
	if !ok {
		t.Fatal("expected the consistency encouragement at 40% over 4 study days")
	}
	if s.Priority != priHigh {
		t.Errorf("priority = %d, want %d", s.Priority, priHigh)
	}
}

func TestTrendInsight(t *testing.T) {
	now := localDate(2024, 1, 14)
	var sessions []domain.Session
	for d := 6; d >= 4; d-- {
		sessions = append(sessions, timedSession(now.AddDate(0, 0, -d), 1800, 50, "Math"))
	}
	for d := 3; d >= 1; d-- {
		sessions = append(sessions, timedSession(now.AddDate(0, 0, -d), 1800, 80, "Math"))
	}
	if _, ok := findInsight(GenerateInsights(sessions, domain.StreakState{}, now), "trending up"); !ok {
		t.Fatal("expected an upward-trend insight for +30 focus")
	}
}

func TestGenerateInsightsDeterministic(t *testing.T) {
	now := localDate(2024, 1, 14)
	var sessions []domain.Session
	for d := 10; d >= 1; d-- {
		sessions = append(sessions, timedSession(now.AddDate(0, 0, -d), 1860, 85, "Math"))
	}
	streak := domain.StreakState{Current: 4}
	a := GenerateInsights(sessions, streak, now)
	b := GenerateInsights(sessions, streak, now)
	if len(a) != len(b) {
		t.Fatalf("run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("insight %d differs across runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
