package engine

import (
	"testing"
	"time"

	"github.com/memoir-app/memoir/internal/domain"
)

func TestPeriodStart(t *testing.T) {
	// Wednesday 2024-01-10.
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.Local)

	tests := []struct {
		period domain.GoalPeriod
		want   time.Time
	}{
		{domain.PeriodDaily, time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)},
		{domain.PeriodWeekly, time.Date(2024, 1, 7, 0, 0, 0, 0, time.Local)}, // Sunday
		{domain.PeriodMonthly, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)},
		{domain.PeriodTotal, time.Time{}},
	}
	for _, tt := range tests {
		if got := PeriodStart(tt.period, now); !got.Equal(tt.want) {
			t.Errorf("PeriodStart(%s) = %v, want %v", tt.period, got, tt.want)
		}
	}
}

func TestPeriodStartOnSunday(t *testing.T) {
	// A Sunday is its own week start.
	now := time.Date(2024, 1, 7, 9, 0, 0, 0, time.Local)
	want := time.Date(2024, 1, 7, 0, 0, 0, 0, time.Local)
	if got := PeriodStart(domain.PeriodWeekly, now); !got.Equal(want) {
		t.Fatalf("PeriodStart(weekly) = %v, want %v", got, want)
	}
}

func TestGoalProgressDaily(t *testing.T) {
	now := localDate(2024, 1, 10)
	sessions := []domain.Session{
		mkSession("2024-01-10", 7200, 85, domain.ProdFocused),
		mkSession("2024-01-09", 3600, 85, domain.ProdFocused), // yesterday, excluded
	}

	p := GoalProgress(sessions, domain.PeriodDaily, 14400, now)
	if p.ActualSeconds != 7200 {
		t.Errorf("ActualSeconds = %d, want 7200", p.ActualSeconds)
	}
	if p.Percentage != 50 {
		t.Errorf("Percentage = %v, want 50", p.Percentage)
	}
}

func TestGoalProgressCapsAtHundred(t *testing.T) {
	now := localDate(2024, 1, 10)
	sessions := []domain.Session{
		mkSession("2024-01-10", 20000, 85, domain.ProdFocused),
	}
	p := GoalProgress(sessions, domain.PeriodDaily, 14400, now)
	if p.Percentage != 100 {
		t.Errorf("Percentage = %v, want 100", p.Percentage)
	}
	if p.ActualSeconds != 20000 {
		t.Errorf("ActualSeconds = %d, want raw 20000", p.ActualSeconds)
	}
}

func TestGoalProgressNonPositiveTarget(t *testing.T) {
	now := localDate(2024, 1, 10)
	sessions := []domain.Session{
		mkSession("2024-01-10", 7200, 85, domain.ProdFocused),
	}
	for _, target := range []int{0, -100} {
		p := GoalProgress(sessions, domain.PeriodDaily, target, now)
		if p.Percentage != 0 {
			t.Errorf("target %d: Percentage = %v, want 0", target, p.Percentage)
		}
	}
}

func TestGoalProgressWeeklySundayBoundary(t *testing.T) {
	// Wednesday 2024-01-10; the week began Sunday 2024-01-07.
	now := localDate(2024, 1, 10)
	sessions := []domain.Session{
		mkSession("2024-01-07", 3600, 85, domain.ProdFocused), // in week
		mkSession("2024-01-06", 3600, 85, domain.ProdFocused), // Saturday, out
	}
	p := GoalProgress(sessions, domain.PeriodWeekly, 72000, now)
	if p.ActualSeconds != 3600 {
		t.Errorf("ActualSeconds = %d, want 3600", p.ActualSeconds)
	}
}

func TestGoalProgressTotalIncludesEverything(t *testing.T) {
	now := localDate(2024, 6, 1)
	sessions := []domain.Session{
		mkSession("2023-01-01", 3600, 85, domain.ProdFocused),
		mkSession("2024-05-31", 3600, 85, domain.ProdFocused),
	}
	p := GoalProgress(sessions, domain.PeriodTotal, 720000, now)
	if p.ActualSeconds != 7200 {
		t.Errorf("ActualSeconds = %d, want 7200", p.ActualSeconds)
	}
}

func TestGoalProgressSkipsUndatableSessions(t *testing.T) {
	now := localDate(2024, 1, 10)
	sessions := []domain.Session{
		{ID: "x", DurationSeconds: 3600}, // no date, no timestamp, no createdAt
		mkSession("2024-01-10", 1800, 85, domain.ProdFocused),
	}
	p := GoalProgress(sessions, domain.PeriodTotal, 7200, now)
	if p.ActualSeconds != 1800 {
		t.Errorf("ActualSeconds = %d, want 1800", p.ActualSeconds)
	}
}
