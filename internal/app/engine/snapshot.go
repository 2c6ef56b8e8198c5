package engine

import (
	"time"

	"github.com/memoir-app/memoir/internal/domain"
)

// Snapshot holds one bucketing pass over the session set so that a
// caller answering several questions at once (the dashboard summary,
// the post-session sync) does not regroup the same sessions per query.
type Snapshot struct {
	sessions []domain.Session
	buckets  map[string][]domain.Session
	now      time.Time
}

// NewSnapshot buckets the sessions once for the given reference instant.
func NewSnapshot(sessions []domain.Session, now time.Time) *Snapshot {
	return &Snapshot{
		sessions: sessions,
		buckets:  BucketByDay(sessions),
		now:      now,
	}
}

// Streak computes both streak figures from the shared buckets.
func (sn *Snapshot) Streak() domain.StreakState {
	return domain.StreakState{
		Current: currentStreakIn(sn.buckets, sn.now),
		Longest: longestStreakIn(sn.buckets),
	}
}

// GoalProgress reports progress for one period against a target.
func (sn *Snapshot) GoalProgress(period domain.GoalPeriod, targetSeconds int) domain.GoalProgress {
	return GoalProgress(sn.sessions, period, targetSeconds, sn.now)
}

// EvaluateBadges sweeps the catalog using the shared buckets.
func (sn *Snapshot) EvaluateBadges(earned map[string]bool) BadgeEvaluation {
	return evaluateBadgesWith(badgeStatsIn(sn.buckets, sn.sessions, sn.now), earned)
}

// Insights generates the ranked suggestion list.
func (sn *Snapshot) Insights() []domain.Suggestion {
	return GenerateInsights(sn.sessions, sn.Streak(), sn.now)
}

// TotalSeconds sums all session durations.
func (sn *Snapshot) TotalSeconds() int {
	total := 0
	for _, s := range sn.sessions {
		total += s.DurationSeconds
	}
	return total
}

// StudyDays returns the number of distinct calendar days with a session.
func (sn *Snapshot) StudyDays() int {
	return len(sn.buckets)
}
