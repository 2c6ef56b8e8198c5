// Package domain holds the core Memoir types: study sessions, badges,
// goals, subjects, and the derived-metric value types the engine produces.
// Everything here is plain data plus the threshold functions that keep
// focusScore and productivity consistent.
package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day key format used everywhere: local-time
// YYYY-MM-DD. Date keys are always built from local wall-clock time, never
// from a UTC conversion.
const DateLayout = "2006-01-02"

// Productivity rates a session from its focus score.
type Productivity string

const (
	ProdFocused    Productivity = "Focused"    // score >= 75
	ProdAverage    Productivity = "Average"    // 40 <= score < 75
	ProdDistracted Productivity = "Distracted" // score < 40
	ProdUnrated    Productivity = "Unrated"    // no focus data recorded
)

// Session is one completed timed study interval. Sessions are immutable
// once saved; the store is append-only.
type Session struct {
	ID              string       `json:"id"`
	Date            string       `json:"date"`      // local YYYY-MM-DD, consistent with Timestamp
	Timestamp       int64        `json:"timestamp"` // ms since epoch, instant the session was saved
	DurationSeconds int          `json:"durationSeconds"`
	Subject         string       `json:"subject"`
	Note            string       `json:"note,omitempty"`
	PauseCount      int          `json:"pauseCount"`
	InactiveCount   int          `json:"inactiveCount"`
	FocusScore      int          `json:"focusScore"`
	Productivity    Productivity `json:"productivity"`
	CreatedAt       int64        `json:"createdAt"` // ms since epoch
}

// Time returns the session's save instant in local time, or the zero time
// if no timestamp was recorded.
func (s Session) Time() time.Time {
	if s.Timestamp == 0 {
		return time.Time{}
	}
	return time.UnixMilli(s.Timestamp)
}

// EffectiveTime resolves the instant a session counts toward: the
// timestamp if present, else the date at local midnight, else createdAt.
// Returns the zero time when nothing usable is recorded.
func (s Session) EffectiveTime() time.Time {
	if s.Timestamp != 0 {
		return time.UnixMilli(s.Timestamp)
	}
	if s.Date != "" {
		if t, err := time.ParseInLocation(DateLayout, s.Date, time.Local); err == nil {
			return t
		}
	}
	if s.CreatedAt != 0 {
		return time.UnixMilli(s.CreatedAt)
	}
	return time.Time{}
}

// ComputeFocusScore derives a 0-100 focus score from pause and
// inactivity counts: 100 − 10 per pause − 15 per inactivity, floored at 0.
func ComputeFocusScore(pauseCount, inactiveCount int) int {
	score := 100 - 10*pauseCount - 15*inactiveCount
	if score < 0 {
		return 0
	}
	return score
}

// ProductivityFor maps a focus score onto its productivity label.
func ProductivityFor(score int) Productivity {
	switch {
	case score >= 75:
		return ProdFocused
	case score >= 40:
		return ProdAverage
	default:
		return ProdDistracted
	}
}

// NoSubject is the label applied to sessions saved without a subject.
const NoSubject = "No subject"

// Normalize repairs a session loaded from storage: missing numeric fields
// default to zero, an empty subject becomes NoSubject, and an unknown
// productivity label becomes Unrated. A malformed record never surfaces an
// error; the worst case is a zero-valued session.
func Normalize(s Session) Session {
	if s.Subject == "" {
		s.Subject = NoSubject
	}
	switch s.Productivity {
	case ProdFocused, ProdAverage, ProdDistracted:
	default:
		s.Productivity = ProdUnrated
	}
	if s.DurationSeconds < 0 {
		s.DurationSeconds = 0
	}
	if s.FocusScore < 0 {
		s.FocusScore = 0
	}
	if s.PauseCount < 0 {
		s.PauseCount = 0
	}
	if s.InactiveCount < 0 {
		s.InactiveCount = 0
	}
	return s
}

// SessionDraft is an in-progress timer session. The timer shim owns one
// draft at a time and counts interruptions into it; nothing is ambient
// module state.
type SessionDraft struct {
	Subject       string
	StartedAt     time.Time
	PauseCount    int
	InactiveCount int
}

// Pause records one user-initiated pause.
func (d *SessionDraft) Pause() { d.PauseCount++ }

// Distraction records one inactivity event (e.g. the tab lost focus).
func (d *SessionDraft) Distraction() { d.InactiveCount++ }

// Complete turns the draft into a Session. Date and Timestamp are both
// derived from the same local instant, so they can never disagree.
func (d SessionDraft) Complete(id string, durationSeconds int, now time.Time) Session {
	score := ComputeFocusScore(d.PauseCount, d.InactiveCount)
	return Session{
		ID:              id,
		Date:            now.Format(DateLayout),
		Timestamp:       now.UnixMilli(),
		DurationSeconds: durationSeconds,
		Subject:         d.Subject,
		PauseCount:      d.PauseCount,
		InactiveCount:   d.InactiveCount,
		FocusScore:      score,
		Productivity:    ProductivityFor(score),
		CreatedAt:       now.UnixMilli(),
	}
}

// FormatDuration renders seconds as "2h 15m" or "45m" for display.
func FormatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
