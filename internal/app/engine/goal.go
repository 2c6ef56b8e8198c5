package engine

import (
	"time"

	"github.com/memoir-app/memoir/internal/domain"
)

// PeriodStart returns the local start instant for a goal period:
// today's midnight, the most recent Sunday's midnight (the goal week
// starts on Sunday, deliberately not the ISO Monday), the first of the
// month, or the zero time for the all-time total.
func PeriodStart(period domain.GoalPeriod, now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch period {
	case domain.PeriodDaily:
		return midnight
	case domain.PeriodWeekly:
		return midnight.AddDate(0, 0, -int(now.Weekday()))
	case domain.PeriodMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}

// GoalProgress sums study time since the period start and reports it
// against the target. A session counts toward the period its effective
// time falls in (timestamp preferred, else date, else createdAt).
// Percentage is capped at 100 and is 0 for a non-positive target.
func GoalProgress(sessions []domain.Session, period domain.GoalPeriod, targetSeconds int, now time.Time) domain.GoalProgress {
	start := PeriodStart(period, now)

	actual := 0
	for _, s := range sessions {
		eff := s.EffectiveTime()
		if eff.IsZero() {
			continue
		}
		if !eff.Before(start) {
			actual += s.DurationSeconds
		}
	}

	p := domain.GoalProgress{
		Period:        period,
		ActualSeconds: actual,
		TargetSeconds: targetSeconds,
	}
	if targetSeconds > 0 {
		p.Percentage = float64(actual) / float64(targetSeconds) * 100
		if p.Percentage > 100 {
			p.Percentage = 100
		}
	}
	return p
}
