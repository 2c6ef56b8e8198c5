package domain

import "time"

// DefaultSubjectGoalHours is assigned to subjects auto-created from
// session labels.
const DefaultSubjectGoalHours = 40

// Subject is a named study area with a per-subject hour goal. Subjects
// are auto-created from session labels not already present; their
// progress is always derived from sessions, never stored.
type Subject struct {
	Name      string    `json:"name"`
	GoalHours float64   `json:"goalHours"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubjectProgress is the derived study total for one subject.
type SubjectProgress struct {
	Subject        Subject `json:"subject"`
	StudiedSeconds int     `json:"studiedSeconds"`
	SessionCount   int     `json:"sessionCount"`
	AvgFocus       float64 `json:"avgFocus"`
	Percentage     float64 `json:"percentage"` // vs GoalHours, 0-100 capped
}
