// Package engine is the pure derivation core: it turns the raw session
// list into day buckets, focus streaks, goal progress, badge unlocks and
// ranked insights. Every function is deterministic and side-effect free;
// the reference instant ("today"/"now") is always an explicit parameter,
// and all calendar-day keys are local-time YYYY-MM-DD. Nothing in here
// touches storage, the clock, or the network.
package engine

import (
	"time"

	"github.com/memoir-app/memoir/internal/domain"
)

// DayKey returns the local calendar-day key for an instant.
func DayKey(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// BucketByDay groups sessions by calendar day. The session's own date
// field wins when it is a valid key; otherwise the key is derived from
// the timestamp in local time. Sessions with neither are dropped (they
// can never qualify a day). Insertion order is preserved within buckets.
func BucketByDay(sessions []domain.Session) map[string][]domain.Session {
	buckets := make(map[string][]domain.Session, len(sessions))
	for _, s := range sessions {
		key := s.Date
		if _, err := time.ParseInLocation(domain.DateLayout, key, time.Local); err != nil {
			if s.Timestamp == 0 {
				continue
			}
			key = DayKey(time.UnixMilli(s.Timestamp))
		}
		buckets[key] = append(buckets[key], s)
	}
	return buckets
}

// DayBucket aggregates one day's sessions. Recomputed on every query,
// never persisted.
type DayBucket struct {
	TotalSeconds int
	TotalMinutes float64
	AvgFocus     float64
	HasFocused   bool
}

// Aggregate folds a day's sessions into a DayBucket. A session missing
// focus data counts as score 0 in the average.
func Aggregate(daySessions []domain.Session) DayBucket {
	var b DayBucket
	if len(daySessions) == 0 {
		return b
	}
	focusSum := 0
	for _, s := range daySessions {
		b.TotalSeconds += s.DurationSeconds
		focusSum += s.FocusScore
		if s.Productivity == domain.ProdFocused {
			b.HasFocused = true
		}
	}
	b.TotalMinutes = float64(b.TotalSeconds) / 60
	b.AvgFocus = float64(focusSum) / float64(len(daySessions))
	return b
}

// Focus-day thresholds. These are the single source of truth for streak
// counting, the calendar's fire indicator, and badge eligibility.
const (
	focusDayMinMinutes  = 30
	focusDayMinAvgFocus = 60
)

// IsFocusDay reports whether a day's sessions qualify it as a focus day:
// at least 30 total minutes, average focus at least 60, and at least one
// Focused session. An empty day never qualifies. Thresholds are
// inclusive.
func IsFocusDay(daySessions []domain.Session) bool {
	if len(daySessions) == 0 {
		return false
	}
	b := Aggregate(daySessions)
	return b.TotalMinutes >= focusDayMinMinutes &&
		b.AvgFocus >= focusDayMinAvgFocus &&
		b.HasFocused
}
