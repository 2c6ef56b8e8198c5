// Package study wires the pure derivation engine to storage and
// notifications: recording sessions, syncing badges, goal and subject
// progress, and the dashboard summary. Services are per-user; every
// derived figure is recomputed from stored sessions on each call.
package study

import (
	"time"

	"github.com/google/uuid"

	"github.com/memoir-app/memoir/internal/domain"
	"github.com/memoir-app/memoir/internal/infra/metrics"
	"github.com/memoir-app/memoir/internal/infra/sqlite"
)

// SessionService records and lists study sessions.
type SessionService struct {
	db     *sqlite.DB
	userID string
	now    func() time.Time
}

// NewSessionService creates a session service for one user.
func NewSessionService(db *sqlite.DB, userID string) *SessionService {
	return &SessionService{db: db, userID: userID, now: time.Now}
}

// Record normalizes and stores a completed session. A missing ID gets a
// fresh UUID; missing date and timestamp are both derived from the same
// instant so they can never disagree.
func (s *SessionService) Record(sess domain.Session) (domain.Session, error) {
	sess = domain.Normalize(sess)
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	now := s.now()
	if sess.Timestamp == 0 && sess.Date == "" {
		sess.Date = now.Format(domain.DateLayout)
		sess.Timestamp = now.UnixMilli()
	}
	if sess.CreatedAt == 0 {
		sess.CreatedAt = now.UnixMilli()
	}

	if err := s.db.InsertSession(s.userID, sess); err != nil {
		return domain.Session{}, err
	}

	metrics.SessionsRecorded.WithLabelValues(string(sess.Productivity)).Inc()
	metrics.StudySeconds.Add(float64(sess.DurationSeconds))
	return sess, nil
}

// Complete finishes a timer draft and records the resulting session.
func (s *SessionService) Complete(draft domain.SessionDraft, durationSeconds int) (domain.Session, error) {
	sess := draft.Complete(uuid.NewString(), durationSeconds, s.now())
	return s.Record(sess)
}

// List returns all sessions, oldest first.
func (s *SessionService) List() ([]domain.Session, error) {
	return s.db.ListSessions(s.userID)
}

// Recent returns the newest sessions, newest first.
func (s *SessionService) Recent(limit int) ([]domain.Session, error) {
	return s.db.ListRecentSessions(s.userID, limit)
}

// Delete removes one session by ID.
func (s *SessionService) Delete(id string) error {
	return s.db.DeleteSession(s.userID, id)
}
